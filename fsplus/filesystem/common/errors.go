package common

import (
	"errors"
	"fmt"
	"io/fs"
)

// Common error types used across filesystem packages
var (
	ErrPathEmpty     = errors.New("path cannot be empty")
	ErrPathTooLong   = errors.New("path too long (max 4096 characters)")
	ErrPathInvalid   = errors.New("path contains invalid characters")
	ErrNotDirectory  = errors.New("path is not a directory")
	ErrAlreadyExists = errors.New("target already exists")
)

// CodeExists is the errno-style code carried by ExistsError
const CodeExists = "EEXIST"

// ExistsError reports a move whose target is an existing, distinct file
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("'%s' already exists.", e.Path)
}

// Code returns the errno-style tag of the error
func (e *ExistsError) Code() string {
	return CodeExists
}

// Is lets errors.Is match both ErrAlreadyExists and fs.ErrExist
func (e *ExistsError) Is(target error) bool {
	return target == ErrAlreadyExists || target == fs.ErrExist
}

// NewExistsError creates an ExistsError for path
func NewExistsError(path string) error {
	return &ExistsError{Path: path}
}

// WrapError wraps an error with additional context
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}

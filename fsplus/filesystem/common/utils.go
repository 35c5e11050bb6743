package common

import (
	"crypto/md5"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"path/filepath"
	"strings"
)

// MaxPathLength is the longest path ValidatePath accepts
const MaxPathLength = 4096

// IsPathValid reports whether a path may be handed to the filesystem.
// Empty paths short-circuit every probe without a system call.
func IsPathValid(path string) bool {
	return path != ""
}

// ValidatePath validates that a path is safe to hand to the filesystem
func ValidatePath(path string) error {
	if path == "" {
		return ErrPathEmpty
	}

	if strings.Contains(path, "\x00") {
		return ErrPathInvalid
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	return nil
}

// Extname returns the extension of the last path element, including the dot.
// Unlike filepath.Ext, a name whose only dot is its first character (".bashrc")
// has no extension.
func Extname(path string) string {
	base := filepath.Base(path)
	if base == ".." {
		return ""
	}
	idx := strings.LastIndex(base, ".")
	if idx <= 0 {
		return ""
	}
	return base[idx:]
}

// NormalizeExtension lowercases nothing; it only guarantees a single leading dot.
// The empty string is preserved and means "no extension".
func NormalizeExtension(ext string) string {
	if ext == "" {
		return ""
	}
	return "." + strings.TrimPrefix(ext, ".")
}

// CalculateChecksum hashes the stream with the named algorithm ("md5" or "sha256")
func CalculateChecksum(r io.Reader, algorithm string) (string, error) {
	var hasher hash.Hash
	switch strings.ToLower(algorithm) {
	case "md5":
		hasher = md5.New()
	case "sha256":
		hasher = sha256.New()
	default:
		return "", fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}

	if _, err := io.Copy(hasher, r); err != nil {
		return "", fmt.Errorf("failed to calculate checksum: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

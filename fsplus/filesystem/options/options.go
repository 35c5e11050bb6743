package options

import (
	"github.com/ZanzyTHEbar/fsplus/fsplus/config"
)

// ResolveParams describes a search for an existing file
type ResolveParams struct {
	LoadPaths  []string // Directories tried in order after an absolute Target
	Target     string   // Path to find, relative or absolute
	Extensions []string // Ordered extensions to try; nil means Target is used as-is
}

// ListOptions filters a flat directory listing
type ListOptions struct {
	Extensions []string // Keep names whose extension is listed; nil disables the filter
	Pattern    string   // Doublestar glob matched against the entry name; empty disables it
}

// CopyOptions configures buffered copies
type CopyOptions struct {
	BufferSize int // Read/write window for CopyFileSync
}

// TraversalOptions configures tree walks
type TraversalOptions struct {
	IgnoreFile string // Name of the ignore file consulted by LoadIgnore
}

// DefaultCopyOptions returns the copy defaults from configuration
func DefaultCopyOptions(cfg *config.Config) CopyOptions {
	if cfg == nil {
		cfg = config.Default()
	}
	return CopyOptions{
		BufferSize: cfg.FSPlus.Copy.BufferSize,
	}
}

// DefaultTraversalOptions returns the traversal defaults from configuration
func DefaultTraversalOptions(cfg *config.Config) TraversalOptions {
	if cfg == nil {
		cfg = config.Default()
	}
	return TraversalOptions{
		IgnoreFile: cfg.FSPlus.Walk.IgnoreFile,
	}
}

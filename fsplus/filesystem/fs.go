// Package filesystem wires the fsplus components over a single FS.
package filesystem

import (
	"context"
	"fmt"
	"os"

	internal "github.com/ZanzyTHEbar/fsplus/fsplus"
	"github.com/ZanzyTHEbar/fsplus/fsplus/config"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/classify"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/fileops"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/interfaces"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/options"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/osfs"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/paths"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/stat"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/types"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/walker"
)

// FileSystem extends an FS with path resolution, safe status queries,
// traversal and copy/move helpers
type FileSystem struct {
	fs     interfaces.FS
	config *config.Config

	probe    *stat.Probe
	resolver *paths.Resolver
	walker   *walker.Walker
	ops      *fileops.FileOps
	batch    *fileops.BatchOps
}

// New creates a FileSystem over fsys using cfg and the process environment.
// A nil cfg uses the built-in defaults.
func New(cfg *config.Config, fsys interfaces.FS) (*FileSystem, error) {
	return NewWithEnvironment(cfg, fsys, paths.DefaultEnvironment())
}

// NewWithEnvironment is New with an explicit platform environment
func NewWithEnvironment(cfg *config.Config, fsys interfaces.FS, env paths.Environment) (*FileSystem, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if fsys == nil {
		return nil, fmt.Errorf("filesystem implementation is required")
	}
	if err := internal.SetLogLevel(cfg.FSPlus.Log.Level); err != nil {
		return nil, err
	}

	probe := stat.NewProbe(fsys, cfg.FSPlus.Probe.CasePath)
	ops := fileops.NewFileOps(probe, options.DefaultCopyOptions(cfg))

	return &FileSystem{
		fs:       fsys,
		config:   cfg,
		probe:    probe,
		resolver: paths.NewResolver(probe, env, cfg.FSPlus.Resolve.LoadPaths, cfg.FSPlus.Resolve.LoadPathEnv),
		walker:   walker.NewWalker(probe, options.DefaultTraversalOptions(cfg)),
		ops:      ops,
		batch:    fileops.NewBatchOps(ops, 0),
	}, nil
}

// NewDefault loads configuration from the standard locations and uses the host filesystem
func NewDefault() (*FileSystem, error) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return New(cfg, osfs.New())
}

// Component accessors

func (f *FileSystem) FS() interfaces.FS        { return f.fs }
func (f *FileSystem) Config() *config.Config   { return f.config }
func (f *FileSystem) Stat() *stat.Probe        { return f.probe }
func (f *FileSystem) Paths() *paths.Resolver   { return f.resolver }
func (f *FileSystem) Walker() *walker.Walker   { return f.walker }
func (f *FileSystem) Ops() *fileops.FileOps    { return f.ops }
func (f *FileSystem) Batch() *fileops.BatchOps { return f.batch }

// GetMetrics returns the walker and file operation counters
func (f *FileSystem) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"walker":  f.walker.Metrics(),
		"fileops": f.ops.GetMetrics(),
	}
}

// Paths

func (f *FileSystem) HomeDirectory() string          { return f.resolver.HomeDirectory() }
func (f *FileSystem) AppDataDirectory() string       { return f.resolver.AppDataDirectory() }
func (f *FileSystem) Absolute(path string) string    { return f.resolver.Absolute(path) }
func (f *FileSystem) Normalize(path string) string   { return f.resolver.Normalize(path) }
func (f *FileSystem) ResolveHome(path string) string { return f.resolver.ResolveHome(path) }
func (f *FileSystem) Tildify(path string) string     { return f.resolver.Tildify(path) }
func (f *FileSystem) IsAbsolute(path string) bool    { return f.resolver.IsAbsolute(path) }

func (f *FileSystem) Resolve(params options.ResolveParams) (string, bool) {
	return f.resolver.Resolve(params)
}

func (f *FileSystem) ResolveExtension(base string, extensions []string) (string, bool) {
	return f.resolver.ResolveExtension(base, extensions)
}

func (f *FileSystem) ResolveOnLoadPath(target string, extensions []string) (string, bool) {
	return f.resolver.ResolveOnLoadPath(target, extensions)
}

// Status

func (f *FileSystem) Exists(path string) bool         { return f.probe.Exists(path) }
func (f *FileSystem) IsDirectory(path string) bool    { return f.probe.IsDirectory(path) }
func (f *FileSystem) IsFile(path string) bool         { return f.probe.IsFile(path) }
func (f *FileSystem) IsSymbolicLink(path string) bool { return f.probe.IsSymbolicLink(path) }
func (f *FileSystem) IsExecutable(path string) bool   { return f.probe.IsExecutable(path) }
func (f *FileSystem) Size(path string) int64          { return f.probe.Size(path) }
func (f *FileSystem) IsCaseInsensitive() bool         { return f.probe.CaseInsensitive() }
func (f *FileSystem) IsCaseSensitive() bool           { return f.probe.CaseSensitive() }

func (f *FileSystem) StatNoException(path string) (types.Status, bool) {
	return f.probe.StatNoException(path)
}

func (f *FileSystem) LstatNoException(path string) (types.Status, bool) {
	return f.probe.LstatNoException(path)
}

// Classification

func (f *FileSystem) IsBinaryExtension(ext string) bool     { return classify.IsBinaryExtension(ext) }
func (f *FileSystem) IsCompressedExtension(ext string) bool { return classify.IsCompressedExtension(ext) }
func (f *FileSystem) IsImageExtension(ext string) bool      { return classify.IsImageExtension(ext) }
func (f *FileSystem) IsMarkdownExtension(ext string) bool   { return classify.IsMarkdownExtension(ext) }
func (f *FileSystem) IsPdfExtension(ext string) bool        { return classify.IsPdfExtension(ext) }
func (f *FileSystem) IsReadmePath(path string) bool         { return classify.IsReadmePath(path) }

func (f *FileSystem) MIMEType(path string) (string, error) {
	return classify.MIMEType(f.fs, path)
}

func (f *FileSystem) IsBinaryContent(path string) (bool, error) {
	return classify.IsBinaryContent(f.fs, path)
}

func (f *FileSystem) ImageMetadata(path string) map[string]string {
	return classify.ImageMetadata(f.fs, path)
}

// Traversal

func (f *FileSystem) TraverseTreeSync(root string, onFile walker.FileFunc, onDirectory walker.DirFunc) error {
	return f.walker.TraverseTreeSync(root, onFile, onDirectory)
}

func (f *FileSystem) TraverseTree(ctx context.Context, root string, onFile walker.FileFunc, onDirectory walker.DirFunc) <-chan error {
	return f.walker.TraverseTree(ctx, root, onFile, onDirectory)
}

func (f *FileSystem) ListTreeSync(root string) ([]string, error) {
	return f.walker.ListTreeSync(root)
}

func (f *FileSystem) ListTree(ctx context.Context, root string) <-chan types.Result[[]string] {
	return f.walker.ListTree(ctx, root)
}

func (f *FileSystem) ListSync(root string, opts options.ListOptions) ([]string, error) {
	return f.walker.ListSync(root, opts)
}

func (f *FileSystem) List(ctx context.Context, root string, opts options.ListOptions) <-chan types.Result[[]string] {
	return f.walker.List(ctx, root, opts)
}

func (f *FileSystem) TreeSize(ctx context.Context, root string) (types.TreeSize, error) {
	return f.walker.TreeSize(ctx, root)
}

// Mutations

func (f *FileSystem) MoveSync(source, target string) error {
	return f.ops.MoveSync(source, target)
}

func (f *FileSystem) Move(ctx context.Context, source, target string) <-chan error {
	return f.ops.Move(ctx, source, target)
}

func (f *FileSystem) CopySync(source, destination string) error {
	return f.ops.CopySync(source, destination)
}

func (f *FileSystem) CopyFileSync(source, destination string, bufferSize int) error {
	return f.ops.CopyFileSync(source, destination, bufferSize)
}

func (f *FileSystem) Copy(ctx context.Context, source, destination string) <-chan error {
	return f.ops.Copy(ctx, source, destination)
}

func (f *FileSystem) RemoveSync(path string) error {
	return f.ops.RemoveSync(path)
}

func (f *FileSystem) Remove(ctx context.Context, path string) <-chan error {
	return f.ops.Remove(ctx, path)
}

func (f *FileSystem) MakeTreeSync(dir string) error {
	return f.ops.MakeTreeSync(dir)
}

func (f *FileSystem) MakeTree(ctx context.Context, dir string) <-chan error {
	return f.ops.MakeTree(ctx, dir)
}

func (f *FileSystem) WriteFileSync(path string, data []byte, perm os.FileMode) error {
	return f.ops.WriteFileSync(path, data, perm)
}

func (f *FileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) <-chan error {
	return f.ops.WriteFile(ctx, path, data, perm)
}

func (f *FileSystem) MD5ForPath(path string) (string, error) {
	return f.ops.MD5ForPath(path)
}

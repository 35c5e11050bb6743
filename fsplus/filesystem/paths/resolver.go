// Package paths expands, normalizes and searches for paths.
package paths

import (
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/fsplus/fsplus"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/options"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/stat"

	"github.com/rs/zerolog"
)

// HomeMarker is the leading path element expanded to the home directory
const HomeMarker = "~"

// Resolver implements home expansion and load-path searches over a Probe
type Resolver struct {
	probe       *stat.Probe
	env         Environment
	loadPaths   []string
	loadPathEnv string
	logger      zerolog.Logger
}

// NewResolver creates a resolver. loadPaths and the directories listed in the
// loadPathEnv variable are the search path of ResolveOnLoadPath.
func NewResolver(probe *stat.Probe, env Environment, loadPaths []string, loadPathEnv string) *Resolver {
	return &Resolver{
		probe:       probe,
		env:         env,
		loadPaths:   append([]string(nil), loadPaths...),
		loadPathEnv: loadPathEnv,
		logger:      internal.ComponentLogger("paths"),
	}
}

// HomeDirectory returns the user's home directory from the environment, or ""
// when it cannot be determined. On windows USERPROFILE is used when HOME is unset.
func (r *Resolver) HomeDirectory() string {
	if r.env.windows() {
		if home := r.env.getenv("HOME"); home != "" {
			return home
		}
		return r.env.getenv("USERPROFILE")
	}
	return r.env.getenv("HOME")
}

// ResolveHome replaces a path equal to "~", or starting with "~" and a
// separator, with the home directory. "~foo" is returned unchanged.
func (r *Resolver) ResolveHome(path string) string {
	if path == HomeMarker {
		return r.HomeDirectory()
	}
	if strings.HasPrefix(path, HomeMarker+r.env.separator()) {
		return r.HomeDirectory() + path[len(HomeMarker):]
	}
	return path
}

// Normalize cleans path lexically and expands the home marker. It does not
// touch the filesystem. The empty path stays empty.
func (r *Resolver) Normalize(path string) string {
	if path == "" {
		return ""
	}
	return r.ResolveHome(filepath.Clean(path))
}

// Absolute expands the home marker and returns the real path with every
// symlink resolved. When that fails the expanded path is returned as is.
func (r *Resolver) Absolute(path string) string {
	if path == "" {
		return ""
	}

	expanded := r.ResolveHome(path)
	resolved, err := r.probe.FS().Realpath(expanded)
	if err != nil {
		return expanded
	}
	return resolved
}

// Tildify collapses a path under the home directory to a "~" form for display
func (r *Resolver) Tildify(path string) string {
	if r.env.windows() {
		return path
	}

	home := r.HomeDirectory()
	if home == "" {
		return path
	}

	normalized := r.Normalize(path)
	if normalized == home {
		return HomeMarker
	}

	sep := r.env.separator()
	prefix := strings.TrimSuffix(home, sep) + sep
	if !strings.HasPrefix(normalized, prefix) {
		return path
	}
	return HomeMarker + sep + normalized[len(prefix):]
}

// IsAbsolute is a lexical test. On windows drive ("C:") and UNC ("\\server")
// forms are absolute; elsewhere a path is absolute when it starts with "/".
func (r *Resolver) IsAbsolute(path string) bool {
	if r.env.windows() {
		if len(path) >= 2 && path[1] == ':' {
			return true
		}
		return strings.HasPrefix(path, `\\`)
	}
	return strings.HasPrefix(path, "/")
}

// Resolve searches for an existing file. An absolute Target is tried first,
// then Target joined to each load path in order. With Extensions set each
// candidate is tried with every extension before moving to the next load path.
// An absolute Target that exists is returned as-is when no extension matches.
func (r *Resolver) Resolve(params options.ResolveParams) (string, bool) {
	target := params.Target
	if target == "" {
		return "", false
	}

	if r.IsAbsolute(target) {
		if params.Extensions != nil {
			if resolved, ok := r.ResolveExtension(target, params.Extensions); ok {
				return resolved, true
			}
		}
		if r.probe.Exists(target) {
			return target, true
		}
	}

	for _, loadPath := range params.LoadPaths {
		candidate := filepath.Join(loadPath, target)
		if params.Extensions != nil {
			if resolved, ok := r.ResolveExtension(candidate, params.Extensions); ok {
				return resolved, true
			}
			continue
		}
		if r.probe.Exists(candidate) {
			return r.Absolute(candidate), true
		}
	}

	r.logger.Debug().Str("target", target).Int("loadPaths", len(params.LoadPaths)).Msg("path not resolved")
	return "", false
}

// ResolveExtension returns the absolute path of the first existing
// base + "." + ext, trying extensions in order. The empty extension tries base
// itself; a leading dot on ext is ignored.
func (r *Resolver) ResolveExtension(base string, extensions []string) (string, bool) {
	for _, ext := range extensions {
		candidate := base
		if ext != "" {
			candidate = base + "." + strings.TrimPrefix(ext, ".")
		}
		if r.probe.Exists(candidate) {
			return r.Absolute(candidate), true
		}
	}
	return "", false
}

// LoadPaths returns the configured load paths followed by the directories
// listed in the load-path environment variable
func (r *Resolver) LoadPaths() []string {
	loadPaths := append([]string(nil), r.loadPaths...)
	if r.loadPathEnv == "" {
		return loadPaths
	}
	for _, dir := range filepath.SplitList(r.env.getenv(r.loadPathEnv)) {
		if dir != "" {
			loadPaths = append(loadPaths, dir)
		}
	}
	return loadPaths
}

// ResolveOnLoadPath is Resolve with LoadPaths as the search path
func (r *Resolver) ResolveOnLoadPath(target string, extensions []string) (string, bool) {
	return r.Resolve(options.ResolveParams{
		LoadPaths:  r.LoadPaths(),
		Target:     target,
		Extensions: extensions,
	})
}

// AppDataDirectory returns the platform directory for application data, or ""
// on platforms without one
func (r *Resolver) AppDataDirectory() string {
	switch r.env.GOOS {
	case "darwin":
		return r.Absolute(filepath.Join(HomeMarker, "Library", "Application Support"))
	case "linux":
		return "/var/lib"
	case "windows":
		return r.env.getenv("APPDATA")
	default:
		return ""
	}
}

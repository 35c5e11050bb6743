package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/options"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/osfs"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/stat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envWith(goos string, vars map[string]string) Environment {
	return Environment{
		GOOS: goos,
		Getenv: func(key string) string {
			return vars[key]
		},
	}
}

func newResolver(env Environment, loadPaths ...string) *Resolver {
	return NewResolver(stat.NewProbe(osfs.New(), ""), env, loadPaths, "FSPLUS_PATH")
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("posix path semantics")
	}
}

// realDir returns a temp dir with symlinks resolved so expectations match Realpath
func realDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0o644))
}

func TestHomeDirectory(t *testing.T) {
	tests := []struct {
		name string
		env  Environment
		want string
	}{
		{"posix home", envWith("linux", map[string]string{"HOME": "/home/me", "USERPROFILE": "/ignored"}), "/home/me"},
		{"posix unset", envWith("linux", map[string]string{"USERPROFILE": "/ignored"}), ""},
		{"windows home wins", envWith("windows", map[string]string{"HOME": `C:\h`, "USERPROFILE": `C:\Users\me`}), `C:\h`},
		{"windows profile fallback", envWith("windows", map[string]string{"USERPROFILE": `C:\Users\me`}), `C:\Users\me`},
		{"nil getenv", Environment{GOOS: "linux"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newResolver(tt.env).HomeDirectory())
		})
	}
}

func TestResolveHome(t *testing.T) {
	r := newResolver(envWith("linux", map[string]string{"HOME": "/home/me"}))

	assert.Equal(t, "/home/me", r.ResolveHome("~"))
	assert.Equal(t, "/home/me/dev/x", r.ResolveHome("~/dev/x"))
	assert.Equal(t, "~foo", r.ResolveHome("~foo"))
	assert.Equal(t, "/a/~/b", r.ResolveHome("/a/~/b"))
	assert.Equal(t, "", r.ResolveHome(""))

	win := newResolver(envWith("windows", map[string]string{"USERPROFILE": `C:\Users\me`}))
	assert.Equal(t, `C:\Users\me\dev`, win.ResolveHome(`~\dev`))
	assert.Equal(t, "~/dev", win.ResolveHome("~/dev"))
}

func TestNormalize(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(envWith("linux", map[string]string{"HOME": "/home/me"}))

	assert.Equal(t, "", r.Normalize(""))
	assert.Equal(t, "/a/c", r.Normalize("/a/b/../c/"))
	assert.Equal(t, "a/c", r.Normalize("./a//c"))
	assert.Equal(t, "/home/me/dev", r.Normalize("~/x/../dev"))
	assert.Equal(t, "/home/me", r.Normalize("~/"))
}

func TestNormalizePreservesAbsoluteness(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(envWith("linux", map[string]string{"HOME": "/home/me"}))

	inputs := []string{"/", "/a/../b", "a/b", "../a", ".", "~", "~/x", "~foo/bar", "//double", "./~/x"}
	for _, in := range inputs {
		expanded := r.ResolveHome(filepath.Clean(in))
		assert.Equal(t, strings.HasPrefix(expanded, "/"), r.IsAbsolute(r.Normalize(in)), in)
	}
}

func TestIsAbsolute(t *testing.T) {
	posix := newResolver(envWith("linux", nil))
	assert.True(t, posix.IsAbsolute("/usr"))
	assert.False(t, posix.IsAbsolute("usr"))
	assert.False(t, posix.IsAbsolute(""))
	assert.False(t, posix.IsAbsolute(`C:\x`))

	win := newResolver(envWith("windows", nil))
	assert.True(t, win.IsAbsolute(`C:\x`))
	assert.True(t, win.IsAbsolute("c:"))
	assert.True(t, win.IsAbsolute(`\\server\share`))
	assert.False(t, win.IsAbsolute(`\single`))
	assert.False(t, win.IsAbsolute("x"))
	assert.False(t, win.IsAbsolute(""))
}

func TestTildify(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(envWith("linux", map[string]string{"HOME": "/home/me"}))

	assert.Equal(t, "~", r.Tildify("/home/me"))
	assert.Equal(t, "~", r.Tildify("/home/me/"))
	assert.Equal(t, "~/dev", r.Tildify("/home/me/dev"))
	assert.Equal(t, "~/dev/x", r.Tildify("/home/me/dev/y/../x"))
	assert.Equal(t, "/unrelated/path", r.Tildify("/unrelated/path"))
	assert.Equal(t, "/home/meow", r.Tildify("/home/meow"))

	noHome := newResolver(envWith("linux", nil))
	assert.Equal(t, "/home/me/dev", noHome.Tildify("/home/me/dev"))

	win := newResolver(envWith("windows", map[string]string{"USERPROFILE": `C:\Users\me`}))
	assert.Equal(t, `C:\Users\me\dev`, win.Tildify(`C:\Users\me\dev`))

	root := newResolver(envWith("linux", map[string]string{"HOME": "/"}))
	assert.Equal(t, "~", root.Tildify("/"))
	assert.Equal(t, "~/etc", root.Tildify("/etc"))
}

func TestTildifyRoundTrip(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(envWith("linux", map[string]string{"HOME": "/home/me"}))

	for _, p := range []string{"/home/me/dev", "/home/me/a/../b/c", "/home/me/x/"} {
		assert.Equal(t, r.Normalize(p), r.ResolveHome(r.Tildify(p)), p)
	}
}

func TestAbsolute(t *testing.T) {
	skipOnWindows(t)
	home := realDir(t)
	target := filepath.Join(home, "target")
	touch(t, target)
	link := filepath.Join(home, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	r := newResolver(envWith("linux", map[string]string{"HOME": home}))

	assert.Equal(t, target, r.Absolute("~/link"))
	assert.Equal(t, home, r.Absolute("~"))
	assert.Equal(t, filepath.Join(home, "missing"), r.Absolute("~/missing"))
	assert.Equal(t, "relative/missing", r.Absolute("relative/missing"))
	assert.Equal(t, "", r.Absolute(""))
}

func TestResolveExtensionPriority(t *testing.T) {
	dir := realDir(t)
	touch(t, filepath.Join(dir, "x.json"))
	touch(t, filepath.Join(dir, "x.js"))

	r := newResolver(DefaultEnvironment())
	base := filepath.Join(dir, "x")

	got, ok := r.ResolveExtension(base, []string{"js", "json"})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "x.js"), got)

	got, ok = r.ResolveExtension(base, []string{".json", "js"})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "x.json"), got)

	_, ok = r.ResolveExtension(base, []string{""})
	assert.False(t, ok)

	_, ok = r.ResolveExtension(base, nil)
	assert.False(t, ok)
}

func TestResolveLoadPathOrdering(t *testing.T) {
	root := realDir(t)
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	touch(t, filepath.Join(a, "x.js"))
	touch(t, filepath.Join(b, "x"))

	r := newResolver(DefaultEnvironment())

	got, ok := r.Resolve(options.ResolveParams{
		LoadPaths:  []string{a, b},
		Target:     "x",
		Extensions: []string{"js", ""},
	})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(a, "x.js"), got)

	got, ok = r.Resolve(options.ResolveParams{
		LoadPaths:  []string{b, a},
		Target:     "x",
		Extensions: []string{"js", ""},
	})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(b, "x"), got, "each load path is exhausted before the next")

	got, ok = r.Resolve(options.ResolveParams{LoadPaths: []string{a, b}, Target: "x"})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(b, "x"), got)
}

func TestResolveAbsoluteTarget(t *testing.T) {
	skipOnWindows(t)
	root := realDir(t)
	other := realDir(t)
	abs := filepath.Join(root, "mod")
	touch(t, abs)
	touch(t, filepath.Join(root, "lib.js"))

	r := newResolver(DefaultEnvironment())

	got, ok := r.Resolve(options.ResolveParams{LoadPaths: []string{other}, Target: abs})
	require.True(t, ok)
	assert.Equal(t, abs, got)

	got, ok = r.Resolve(options.ResolveParams{Target: filepath.Join(root, "lib"), Extensions: []string{"js"}})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "lib.js"), got)

	got, ok = r.Resolve(options.ResolveParams{LoadPaths: []string{other}, Target: abs, Extensions: []string{"js"}})
	require.True(t, ok, "existing absolute target resolves when no extension matches")
	assert.Equal(t, abs, got)

	_, ok = r.Resolve(options.ResolveParams{Target: filepath.Join(root, "nothing")})
	assert.False(t, ok)

	_, ok = r.Resolve(options.ResolveParams{Target: filepath.Join(root, "nothing"), Extensions: []string{"js"}})
	assert.False(t, ok)

	_, ok = r.Resolve(options.ResolveParams{LoadPaths: []string{root}})
	assert.False(t, ok, "empty target never resolves")
}

func TestResolveOnLoadPath(t *testing.T) {
	root := realDir(t)
	configured := filepath.Join(root, "configured")
	fromEnv := filepath.Join(root, "env")
	require.NoError(t, os.MkdirAll(configured, 0o755))
	touch(t, filepath.Join(fromEnv, "tool.sh"))

	env := envWith(runtime.GOOS, map[string]string{
		"FSPLUS_PATH": strings.Join([]string{"", fromEnv}, string(os.PathListSeparator)),
	})
	r := newResolver(env, configured)

	assert.Equal(t, []string{configured, fromEnv}, r.LoadPaths())

	got, ok := r.ResolveOnLoadPath("tool", []string{"sh"})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(fromEnv, "tool.sh"), got)

	_, ok = r.ResolveOnLoadPath("absent", nil)
	assert.False(t, ok)
}

func TestAppDataDirectory(t *testing.T) {
	assert.Equal(t, "/var/lib", newResolver(envWith("linux", nil)).AppDataDirectory())
	assert.Equal(t, `C:\AppData`, newResolver(envWith("windows", map[string]string{"APPDATA": `C:\AppData`})).AppDataDirectory())
	assert.Equal(t, "", newResolver(envWith("plan9", nil)).AppDataDirectory())

	skipOnWindows(t)
	home := realDir(t)
	darwin := newResolver(envWith("darwin", map[string]string{"HOME": home}))
	assert.Equal(t, filepath.Join(home, "Library", "Application Support"), darwin.AppDataDirectory())
}

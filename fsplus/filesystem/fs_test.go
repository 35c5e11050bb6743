package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/fsplus/fsplus/config"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/options"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/osfs"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/paths"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type FileSystemTestSuite struct {
	suite.Suite
	home string
	fs   *FileSystem
}

func (s *FileSystemTestSuite) SetupTest() {
	home, err := filepath.EvalSymlinks(s.T().TempDir())
	s.Require().NoError(err)
	s.home = home

	cfg := config.Default()
	cfg.FSPlus.Resolve.LoadPaths = []string{filepath.Join(home, "lib")}
	cfg.FSPlus.Copy.BufferSize = 1024

	env := paths.Environment{
		GOOS: "linux",
		Getenv: func(key string) string {
			if key == "HOME" {
				return home
			}
			return ""
		},
	}
	s.fs, err = NewWithEnvironment(cfg, osfs.New(), env)
	s.Require().NoError(err)
}

func TestFileSystemTestSuite(t *testing.T) {
	suite.Run(t, new(FileSystemTestSuite))
}

func (s *FileSystemTestSuite) TestWriteListAndTildify() {
	project := filepath.Join(s.home, "project")
	s.Require().NoError(s.fs.WriteFileSync(filepath.Join(project, "README.md"), []byte("# hi"), 0o644))
	s.Require().NoError(s.fs.WriteFileSync(filepath.Join(project, "src", "main.go"), []byte("package main"), 0o644))

	tree, err := s.fs.ListTreeSync(project)
	s.Require().NoError(err)
	s.Equal([]string{
		filepath.Join(project, "README.md"),
		filepath.Join(project, "src"),
		filepath.Join(project, "src", "main.go"),
	}, tree)

	s.True(s.fs.IsReadmePath(tree[0]))
	s.Equal("~/project/src", s.fs.Tildify(tree[1]))
	s.Equal(tree[1], s.fs.ResolveHome("~/project/src"))
	s.Equal(project, s.fs.Absolute("~/project"))
}

func (s *FileSystemTestSuite) TestResolveOnConfiguredLoadPath() {
	s.Require().NoError(s.fs.WriteFileSync(filepath.Join(s.home, "lib", "helper.js"), []byte("x"), 0o644))

	got, ok := s.fs.ResolveOnLoadPath("helper", []string{"coffee", "js"})
	s.Require().True(ok)
	s.Equal(filepath.Join(s.home, "lib", "helper.js"), got)

	_, ok = s.fs.Resolve(options.ResolveParams{LoadPaths: []string{s.home}, Target: "helper"})
	s.False(ok)
}

func (s *FileSystemTestSuite) TestCopyMoveRoundTrip() {
	src := filepath.Join(s.home, "data.bin")
	content := make([]byte, 5000)
	for i := range content {
		content[i] = byte(i % 251)
	}
	s.Require().NoError(os.WriteFile(src, content, 0o644))

	s.Require().NoError(s.fs.CopyFileSync(src, filepath.Join(s.home, "copy", "data.bin"), 0))
	s.Require().NoError(<-s.fs.Copy(context.Background(), src, filepath.Join(s.home, "stream", "data.bin")))

	a, err := s.fs.MD5ForPath(src)
	s.Require().NoError(err)
	b, err := s.fs.MD5ForPath(filepath.Join(s.home, "copy", "data.bin"))
	s.Require().NoError(err)
	c, err := s.fs.MD5ForPath(filepath.Join(s.home, "stream", "data.bin"))
	s.Require().NoError(err)
	s.Equal(a, b)
	s.Equal(a, c)

	s.Require().NoError(s.fs.MoveSync(filepath.Join(s.home, "copy"), filepath.Join(s.home, "moved", "copy")))
	s.True(s.fs.IsFile(filepath.Join(s.home, "moved", "copy", "data.bin")))
	s.False(s.fs.Exists(filepath.Join(s.home, "copy")))
	s.Equal(int64(5000), s.fs.Size(filepath.Join(s.home, "moved", "copy", "data.bin")))

	s.Require().NoError(s.fs.RemoveSync(filepath.Join(s.home, "moved")))
	s.False(s.fs.IsDirectory(filepath.Join(s.home, "moved")))

	metrics := s.fs.GetMetrics()
	s.Contains(metrics, "walker")
	s.Contains(metrics, "fileops")
}

func (s *FileSystemTestSuite) TestAsyncListing() {
	dir := filepath.Join(s.home, "docs")
	s.Require().NoError(s.fs.MakeTreeSync(dir))
	for _, name := range []string{"b.md", "A.md", "c.txt"} {
		s.Require().NoError(s.fs.WriteFileSync(filepath.Join(dir, name), []byte(name), 0o644))
	}

	res := <-s.fs.List(context.Background(), dir, options.ListOptions{Extensions: []string{"md"}})
	s.Require().NoError(res.Err)
	s.Equal([]string{filepath.Join(dir, "A.md"), filepath.Join(dir, "b.md")}, res.Value)

	tree := <-s.fs.ListTree(context.Background(), s.home)
	s.Require().NoError(tree.Err)
	s.Len(tree.Value, 4)
}

func TestNewValidatesInputs(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.FSPlus.Log.Level = "loud"
	_, err = New(cfg, osfs.New())
	assert.Error(t, err)

	fsys, err := New(nil, osfs.New())
	require.NoError(t, err)
	assert.NotNil(t, fsys.Stat())
	assert.NotNil(t, fsys.Paths())
	assert.NotNil(t, fsys.Walker())
	assert.NotNil(t, fsys.Ops())
	assert.NotNil(t, fsys.Batch())
	assert.Equal(t, config.Default(), fsys.Config())
}

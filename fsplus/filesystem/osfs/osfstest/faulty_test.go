package osfstest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/osfs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaultyInjectsAndTracks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	boom := os.ErrPermission
	faulty := NewFaulty(osfs.New())
	faulty.Fail(OpStat, path, boom)

	_, err := faulty.Stat(path)
	assert.ErrorIs(t, err, boom)
	_, err = faulty.Lstat(path)
	assert.NoError(t, err)

	file, err := faulty.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, faulty.OpenDescriptors())
	require.NoError(t, file.Close())
	assert.Equal(t, 0, faulty.OpenDescriptors())
}

func TestFaultyRenameKeysOnTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	faulty := NewFaulty(osfs.New())
	faulty.Fail(OpRename, dst, os.ErrPermission)

	assert.ErrorIs(t, faulty.Rename(src, dst), os.ErrPermission)
	assert.NoError(t, faulty.Rename(src, filepath.Join(dir, "other")))
}

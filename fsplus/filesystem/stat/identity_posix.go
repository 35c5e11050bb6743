//go:build !windows

package stat

import (
	"os"
	"syscall"
)

// identity extracts the device and inode numbers from a FileInfo
func identity(info os.FileInfo) (dev, ino uint64) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(st.Dev), uint64(st.Ino)
	}
	return 0, 0
}

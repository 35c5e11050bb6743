// Package classify maps file extensions and contents to coarse categories.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/common"
)

var binaryExtensions = map[string]struct{}{
	".ds_store": {},
	".a":        {},
	".exe":      {},
	".o":        {},
	".pyc":      {},
	".pyo":      {},
	".so":       {},
	".woff":     {},
}

var compressedExtensions = map[string]struct{}{
	".bz2":  {},
	".egg":  {},
	".epub": {},
	".gem":  {},
	".gz":   {},
	".jar":  {},
	".lz":   {},
	".lzma": {},
	".lzo":  {},
	".rar":  {},
	".tar":  {},
	".tgz":  {},
	".war":  {},
	".whl":  {},
	".xpi":  {},
	".xz":   {},
	".z":    {},
	".zip":  {},
}

var imageExtensions = map[string]struct{}{
	".gif":  {},
	".ico":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

var markdownExtensions = map[string]struct{}{
	".markdown": {},
	".md":       {},
	".mdown":    {},
	".mkd":      {},
	".mkdown":   {},
	".rmd":      {},
	".ron":      {},
}

func lookup(table map[string]struct{}, ext string) bool {
	_, ok := table[strings.ToLower(ext)]
	return ok
}

// IsBinaryExtension reports whether ext (with its leading dot) names a binary format
func IsBinaryExtension(ext string) bool {
	return lookup(binaryExtensions, ext)
}

// IsCompressedExtension reports whether ext names an archive or compressed format
func IsCompressedExtension(ext string) bool {
	return lookup(compressedExtensions, ext)
}

// IsImageExtension reports whether ext names an image format
func IsImageExtension(ext string) bool {
	return lookup(imageExtensions, ext)
}

// IsMarkdownExtension reports whether ext names a markdown flavour
func IsMarkdownExtension(ext string) bool {
	return lookup(markdownExtensions, ext)
}

// IsPdfExtension reports whether ext is ".pdf" in any case
func IsPdfExtension(ext string) bool {
	return strings.EqualFold(ext, ".pdf")
}

// IsReadmePath reports whether the file name is "readme" in any case, either
// without extension or with a markdown one
func IsReadmePath(path string) bool {
	ext := common.Extname(path)
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ext))
	return base == "readme" && (ext == "" || IsMarkdownExtension(ext))
}

package classify

import (
	"fmt"

	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/common"
	"github.com/ZanzyTHEbar/fsplus/fsplus/filesystem/interfaces"

	"github.com/gabriel-vasile/mimetype"
	exiflib "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

func detect(fsys interfaces.FS, path string) (*mimetype.MIME, error) {
	if err := common.ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("mime detection failed for %s: %w", path, err)
	}
	return mtype, nil
}

// MIMEType sniffs the media type of the file at path from its leading bytes
func MIMEType(fsys interfaces.FS, path string) (string, error) {
	mtype, err := detect(fsys, path)
	if err != nil {
		return "", err
	}
	return mtype.String(), nil
}

// IsBinaryContent reports whether the file at path holds something other than
// text. JSON, XML and other text/plain descendants count as text.
func IsBinaryContent(fsys interfaces.FS, path string) (bool, error) {
	mtype, err := detect(fsys, path)
	if err != nil {
		return false, err
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false, nil
		}
	}
	return true, nil
}

// ImageMetadata returns a flat map of EXIF tag names to their string values
// for files with an image extension. On any error (non-image, missing EXIF,
// read failure) it returns nil.
func ImageMetadata(fsys interfaces.FS, path string) map[string]string {
	if !IsImageExtension(common.Extname(path)) {
		return nil
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	x, err := exiflib.Decode(f)
	if err != nil {
		return nil
	}
	out := make(map[string]string)
	_ = x.Walk(exifWalker{m: out})
	if len(out) == 0 {
		return nil
	}
	return out
}

type exifWalker struct{ m map[string]string }

func (w exifWalker) Walk(name exiflib.FieldName, tag *tiff.Tag) error {
	w.m[string(name)] = tag.String()
	return nil
}

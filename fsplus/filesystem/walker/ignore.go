package walker

import (
	"fmt"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreChecker reports whether a path relative to the ignore file's
// directory matches one of its patterns
type IgnoreChecker interface {
	MatchesPath(path string) bool
}

// LoadIgnore compiles the ignore file configured for this walker from dir.
// It returns nil, nil when dir has no ignore file.
func (w *Walker) LoadIgnore(dir string) (IgnoreChecker, error) {
	ignorePath := filepath.Join(dir, w.opts.IgnoreFile)

	res := w.probe.Query(ignorePath)
	if res.Err != nil {
		return nil, fmt.Errorf("error checking for %s: %w", ignorePath, res.Err)
	}
	if !res.Ok() || !res.Status.IsFile() {
		return nil, nil
	}

	data, err := w.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", ignorePath, err)
	}

	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...), nil
}

// SkipIgnored wraps the traversal callbacks so that paths below root matching
// checker are neither reported nor descended into. A nil checker ignores nothing.
func SkipIgnored(root string, checker IgnoreChecker, onFile FileFunc, onDirectory DirFunc) (FileFunc, DirFunc) {
	if onDirectory == nil {
		onDirectory = alwaysDescend(onFile)
	}
	if checker == nil {
		return onFile, onDirectory
	}

	relative := func(path string) (string, bool) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", false
		}
		return filepath.ToSlash(rel), true
	}

	file := func(path string) {
		if rel, ok := relative(path); ok && checker.MatchesPath(rel) {
			return
		}
		onFile(path)
	}
	// "name/" patterns only match with the trailing slash
	dir := func(path string) bool {
		if rel, ok := relative(path); ok && (checker.MatchesPath(rel) || checker.MatchesPath(rel+"/")) {
			return false
		}
		return onDirectory(path)
	}
	return file, dir
}

// TraverseTreeIgnoring is TraverseTreeSync with the ignore file found in root applied
func (w *Walker) TraverseTreeIgnoring(root string, onFile FileFunc, onDirectory DirFunc) error {
	checker, err := w.LoadIgnore(root)
	if err != nil {
		return err
	}
	file, dir := SkipIgnored(root, checker, onFile, onDirectory)
	return w.TraverseTreeSync(root, file, dir)
}

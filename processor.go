package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// Directory names that are never scanned. outputDirName is also the one
// entry the clear operation keeps.
const (
	outputDirName = "output"
	tmpDirName    = "tmp"
)

// resolveRoot makes root absolute and resolves symlinks when it exists.
// A missing root is returned as a cleaned absolute path.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("error resolving root %s: %w", root, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// buildExcludeSet joins each relative exclusion to root and always adds the
// output and tmp directories.
func buildExcludeSet(root string, excludes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(excludes)+2)
	for _, e := range excludes {
		if strings.TrimSpace(e) == "" {
			continue
		}
		set[filepath.Join(root, e)] = struct{}{}
	}
	set[filepath.Join(root, outputDirName)] = struct{}{}
	set[filepath.Join(root, tmpDirName)] = struct{}{}
	return set
}

// isHidden reports whether any component of a root-relative path starts with a dot.
func isHidden(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// loadGitignore parses root/.gitignore. It returns nil when there is none.
func loadGitignore(root string) gitignore.IgnoreMatcher {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	matcher, err := gitignore.NewGitIgnore(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not parse .gitignore")
		return nil
	}
	return matcher
}

// iterFiles walks root top-down and returns the root-relative paths of every
// file that is not excluded and, unless includeHidden is set, not hidden.
// Excluded and hidden directories are pruned before they are opened.
// A missing root yields no files and no error.
func iterFiles(root string, includeHidden bool, exclude map[string]struct{}, ignore gitignore.IgnoreMatcher) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipAll
				}
				return err
			}
			logger.Warn().Err(err).Str("path", path).Msg("error accessing path, skipping")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if path == root {
			if !d.IsDir() {
				// root is a plain file; there is nothing to catalog under it
				return fs.SkipAll
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		_, excluded := exclude[path]
		isDir := d.IsDir()

		if isDir {
			if excluded || (!includeHidden && isHidden(rel)) {
				return fs.SkipDir
			}
			if ignore != nil && ignore.Match(path, true) {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// symlinked directories are neither descended nor cataloged
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				return nil
			}
		}

		if excluded || (!includeHidden && isHidden(rel)) {
			return nil
		}
		if ignore != nil && ignore.Match(path, false) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	logger.Debug().Str("root", root).Int("files", len(files)).Msg("scan complete")
	return files, nil
}

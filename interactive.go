package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// exclusionCandidates lists root-relative paths the user may exclude.
// The always-excluded directories are left out.
func exclusionCandidates(root string, includeHidden bool) ([]string, error) {
	skip := buildExcludeSet(root, nil)
	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return nil
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if _, excluded := skip[path]; excluded || (!includeHidden && isHidden(rel)) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		candidates = append(candidates, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for exclusion candidates: %w", err)
	}
	return candidates, nil
}

// pickExclusions opens a fuzzy finder over the tree under root and returns
// the relative paths the user selected. Aborting selects nothing.
func pickExclusions(root string, includeHidden bool) ([]string, error) {
	candidates, err := exclusionCandidates(root, includeHidden)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPromptString("exclude> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			info, statErr := os.Stat(filepath.Join(root, candidates[i]))
			if statErr != nil {
				return fmt.Sprintf("Path: %s\nError getting info: %v", candidates[i], statErr)
			}
			kind := "File"
			if info.IsDir() {
				kind = "Directory"
			}
			return fmt.Sprintf("Path: %s\nType: %s\nSize: %d bytes", candidates[i], kind, info.Size())
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			logger.Info().Msg("interactive selection aborted, no extra exclusions")
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	picked := make([]string, len(idx))
	for i, index := range idx {
		picked[i] = candidates[index]
	}
	logger.Debug().Strs("exclude", picked).Msg("interactive exclusions")
	return picked, nil
}

package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gitignore "github.com/monochromegane/go-gitignore"
)

// stemOf strips the final extension from a file name. Leading-dot names
// such as ".bashrc" and names ending in a dot keep their full text.
func stemOf(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name
	}
	return name[:i]
}

// newRow builds the row for one root-relative path under the given policy.
func newRow(policy Policy, rel string) Row {
	name := filepath.Base(rel)
	if policy == PolicyFullPath {
		return Row{
			Policy: PolicyFullPath,
			Path:   filepath.ToSlash(rel),
			Name:   name,
			Folder: filepath.ToSlash(filepath.Dir(rel)),
		}
	}
	return Row{Policy: PolicyStem, Stem: stemOf(name)}
}

// buildRows converts traversal output into rows. Rows sharing a key are kept.
func buildRows(policy Policy, relPaths []string) []Row {
	rows := make([]Row, 0, len(relPaths))
	for _, rel := range relPaths {
		rows = append(rows, newRow(policy, rel))
	}
	return rows
}

// sortRows orders rows by their lower-cased key, keeping walk order for ties.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Key()) < strings.ToLower(rows[j].Key())
	})
}

// scanCatalog runs the traversal and row building for one root.
func scanCatalog(opts Options) (*Catalog, error) {
	root, err := resolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	excludes := opts.Excludes
	if opts.Interactive {
		picked, err := pickExclusions(root, opts.IncludeHidden)
		if err != nil {
			return nil, err
		}
		excludes = append(append([]string{}, excludes...), picked...)
	}
	exclude := buildExcludeSet(root, excludes)

	var ignore gitignore.IgnoreMatcher
	if opts.RespectGitignore {
		ignore = loadGitignore(root)
	}
	relPaths, err := iterFiles(root, opts.IncludeHidden, exclude, ignore)
	if err != nil {
		return nil, err
	}

	rows := buildRows(opts.Policy, relPaths)
	sortRows(rows)

	return &Catalog{
		Policy:    opts.Policy,
		Root:      root,
		Title:     strings.TrimSpace(opts.Title),
		Generated: time.Now(),
		Rows:      rows,
	}, nil
}

// runCatalog scans opts.Root and writes every requested catalog file.
func runCatalog(opts Options) (Result, error) {
	if opts.Policy == "" {
		opts.Policy = PolicyStem
	}
	cat, err := scanCatalog(opts)
	if err != nil {
		return Result{}, err
	}
	logger.Info().Str("root", cat.Root).Str("policy", string(cat.Policy)).Int("files", cat.Len()).Msg("catalog built")

	outXLSX, outDOCX := opts.OutXLSX, opts.OutDOCX
	if outXLSX == "" {
		outXLSX = defaultXLSXPath(cat.Root)
	}
	if outDOCX == "" {
		outDOCX = defaultDOCXPath(cat.Root)
	}

	if err := writeExcel(cat, outXLSX); err != nil {
		return Result{}, err
	}
	if err := writeDocx(cat, outDOCX); err != nil {
		return Result{}, err
	}

	res := Result{Total: cat.Len()}
	if res.XLSX, err = filepath.Abs(outXLSX); err != nil {
		return Result{}, fmt.Errorf("error resolving %s: %w", outXLSX, err)
	}
	if res.DOCX, err = filepath.Abs(outDOCX); err != nil {
		return Result{}, fmt.Errorf("error resolving %s: %w", outDOCX, err)
	}

	if opts.OutPDF != "" {
		if err := writePDF(cat, opts.OutPDF); err != nil {
			return Result{}, err
		}
		if res.PDF, err = filepath.Abs(opts.OutPDF); err != nil {
			return Result{}, fmt.Errorf("error resolving %s: %w", opts.OutPDF, err)
		}
	}
	if opts.Clipboard {
		if err := copyListing(cat); err != nil {
			logger.Warn().Err(err).Msg("clipboard copy failed")
		}
	}
	return res, nil
}

func defaultXLSXPath(root string) string {
	return filepath.Join(root, outputDirName, "spreadsheet", "file_catalog.xlsx")
}

func defaultDOCXPath(root string) string {
	return filepath.Join(root, outputDirName, "doc", "file_catalog.docx")
}

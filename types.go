package main

import (
	"fmt"
	"strings"
	"time"
)

// Policy selects the shape of catalog rows and how renderers lay them out.
type Policy string

const (
	// PolicyStem lists each file by its name without extension.
	PolicyStem Policy = "stem"
	// PolicyFullPath lists relative path, file name and parent folder.
	PolicyFullPath Policy = "full-path"
)

// parsePolicy maps a flag or config value onto a Policy.
func parsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyStem:
		return PolicyStem, nil
	case PolicyFullPath, "fullpath", "full":
		return PolicyFullPath, nil
	default:
		return "", fmt.Errorf("unsupported policy: %s. Use 'stem' or 'full-path'", s)
	}
}

// Row is one catalog entry. Which fields are set depends on Policy.
type Row struct {
	Policy Policy
	Stem   string // PolicyStem
	Path   string // PolicyFullPath, slash separated
	Name   string // PolicyFullPath
	Folder string // PolicyFullPath, "." for files directly under root
}

// Key returns the primary field the catalog is sorted by.
func (r Row) Key() string {
	if r.Policy == PolicyFullPath {
		return r.Path
	}
	return r.Stem
}

// Catalog is the sorted row list plus the metadata renderers print.
type Catalog struct {
	Policy    Policy
	Root      string
	Title     string
	Generated time.Time
	Rows      []Row
}

// Len returns the number of files in the catalog.
func (c *Catalog) Len() int {
	return len(c.Rows)
}

// Options holds everything one catalog run needs.
type Options struct {
	Root             string
	OutXLSX          string
	OutDOCX          string
	OutPDF           string
	IncludeHidden    bool
	Excludes         []string
	Title            string
	Policy           Policy
	RespectGitignore bool
	Interactive      bool
	Clipboard        bool
}

// Result describes what a catalog run wrote.
type Result struct {
	XLSX  string
	DOCX  string
	PDF   string // empty when no PDF was requested
	Total int
}

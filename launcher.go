package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ensureTargets creates dir when it is missing and reports whether it did.
func ensureTargets(dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("error accessing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return true, nil
}

// clearTargets deletes every entry inside dir except the output directory.
// It returns the number of top-level entries removed. Callers confirm first.
func clearTargets(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("error reading %s: %w", dir, err)
	}
	removed := 0
	for _, e := range entries {
		if e.Name() == outputDirName {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed++
	}
	logger.Info().Str("dir", dir).Int("removed", removed).Msg("targets cleared")
	return removed, nil
}

// deriveOutputs turns the catalog name typed by the user into a title and
// output paths under targets. A trailing .xlsx and then .docx are stripped.
// Empty outputs mean the generator defaults apply.
func deriveOutputs(targets, name string) (title, outXLSX, outDOCX string) {
	title = strings.TrimSpace(name)
	if strings.HasSuffix(strings.ToLower(title), ".xlsx") {
		title = title[:len(title)-len(".xlsx")]
	}
	if strings.HasSuffix(strings.ToLower(title), ".docx") {
		title = title[:len(title)-len(".docx")]
	}
	if title == "" {
		return "", "", ""
	}
	outXLSX = filepath.Join(targets, outputDirName, "spreadsheet", title+".xlsx")
	outDOCX = filepath.Join(targets, outputDirName, "doc", title+".docx")
	return title, outXLSX, outDOCX
}

// GenerateRequest is one catalog generation asked for by the launcher.
type GenerateRequest struct {
	Root    string
	OutXLSX string
	OutDOCX string
	Title   string
}

// Generator produces catalogs and returns the text to show the user.
type Generator interface {
	Generate(req GenerateRequest) (string, error)
}

// GenerateError is a failed generation with the output captured from it.
type GenerateError struct {
	Stdout string
	Stderr string
	Err    error
}

func (e *GenerateError) Error() string {
	msg := strings.TrimSpace(e.Stdout + "\n" + e.Stderr)
	if msg == "" {
		return "Failed to generate catalog."
	}
	return msg
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// inProcessGenerator calls runCatalog directly with base options overridden
// by the request.
type inProcessGenerator struct {
	base Options
}

func (g inProcessGenerator) Generate(req GenerateRequest) (string, error) {
	opts := g.base
	opts.Root = req.Root
	opts.Title = req.Title
	opts.OutXLSX = req.OutXLSX
	opts.OutDOCX = req.OutDOCX
	opts.Interactive = false
	opts.Clipboard = false

	res, err := runCatalog(opts)
	if err != nil {
		return "", &GenerateError{Stderr: err.Error(), Err: err}
	}
	return formatResult(res), nil
}

// execGenerator runs a standalone generator executable and waits for it.
type execGenerator struct {
	bin string
}

func (g execGenerator) args(req GenerateRequest) []string {
	args := []string{"--root", req.Root}
	if req.OutXLSX != "" && req.OutDOCX != "" {
		args = append(args, "--out-xlsx", req.OutXLSX, "--out-docx", req.OutDOCX)
	}
	if req.Title != "" {
		args = append(args, "--title", req.Title)
	}
	return args
}

func (g execGenerator) Generate(req GenerateRequest) (string, error) {
	cmd := exec.Command(g.bin, g.args(req)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().Str("bin", g.bin).Strs("args", cmd.Args[1:]).Msg("running generator")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &GenerateError{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
		}
		return "", fmt.Errorf("failed to run %s: %w", g.bin, err)
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		out = "Catalog generated."
	}
	return out, nil
}

// isExecutable reports whether path is a regular file with an execute bit.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0111 != 0
}

// newGenerator prefers the standalone executable when bin is usable and
// falls back to generating in process.
func newGenerator(bin string, base Options) Generator {
	if bin != "" && isExecutable(bin) {
		return execGenerator{bin: bin}
	}
	if bin != "" {
		logger.Warn().Str("bin", bin).Msg("generator executable not usable, generating in process")
	}
	return inProcessGenerator{base: base}
}

// launcher backs the desktop window: one targets directory and a generator.
type launcher struct {
	targets string
	gen     Generator
}

// generate makes sure targets exists and produces catalogs named after name.
func (l *launcher) generate(name string) (string, error) {
	if _, err := ensureTargets(l.targets); err != nil {
		return "", err
	}
	title, outXLSX, outDOCX := deriveOutputs(l.targets, name)
	return l.gen.Generate(GenerateRequest{
		Root:    l.targets,
		OutXLSX: outXLSX,
		OutDOCX: outDOCX,
		Title:   title,
	})
}

package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveOutputs(t *testing.T) {
	targets := filepath.Join(string(filepath.Separator), "app", "targets")
	xlsx := func(n string) string { return filepath.Join(targets, "output", "spreadsheet", n+".xlsx") }
	docx := func(n string) string { return filepath.Join(targets, "output", "doc", n+".docx") }

	tests := []struct {
		in, title, xlsx, docx string
	}{
		{"", "", "", ""},
		{"   ", "", "", ""},
		{"Reports", "Reports", xlsx("Reports"), docx("Reports")},
		{"  Reports 2024 ", "Reports 2024", xlsx("Reports 2024"), docx("Reports 2024")},
		{"list.XLSX", "list", xlsx("list"), docx("list")},
		{"list.docx", "list", xlsx("list"), docx("list")},
		{"list.docx.xlsx", "list", xlsx("list"), docx("list")},
		{"list.xlsx.docx", "list.xlsx", xlsx("list.xlsx"), docx("list.xlsx")},
		{".xlsx", "", "", ""},
	}
	for _, tt := range tests {
		title, x, d := deriveOutputs(targets, tt.in)
		assert.Equal(t, tt.title, title, tt.in)
		assert.Equal(t, tt.xlsx, x, tt.in)
		assert.Equal(t, tt.docx, d, tt.in)
	}
}

func TestEnsureTargets(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "targets")

	created, err := ensureTargets(dir)
	require.NoError(t, err)
	assert.True(t, created)
	assert.DirExists(t, dir)

	created, err = ensureTargets(dir)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestClearTargets(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.txt", "sub/b.txt", "tmp/c.txt", ".hidden", "output/doc/keep.docx")

	removed, err := clearTargets(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "output", entries[0].Name())
	assert.FileExists(t, filepath.Join(dir, "output", "doc", "keep.docx"))

	_, err = clearTargets(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestGenerateError(t *testing.T) {
	err := &GenerateError{Stdout: "  partial\n", Stderr: "boom\n\n", Err: errors.New("exit status 1")}
	assert.Equal(t, "partial\n\nboom", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "exit status 1")

	assert.Equal(t, "Failed to generate catalog.", (&GenerateError{}).Error())
}

func TestInProcessGenerator(t *testing.T) {
	targets := t.TempDir()
	writeTree(t, targets, "b.txt", "a.txt")
	l := &launcher{targets: targets, gen: inProcessGenerator{base: Options{Policy: PolicyStem}}}

	out, err := l.generate("March.xlsx")
	require.NoError(t, err)
	assert.Contains(t, out, "March.xlsx")
	assert.Contains(t, out, "Total files:   2")
	assert.FileExists(t, filepath.Join(targets, "output", "spreadsheet", "March.xlsx"))
	assert.FileExists(t, filepath.Join(targets, "output", "doc", "March.docx"))

	out, err = l.generate("")
	require.NoError(t, err)
	assert.Contains(t, out, "file_catalog.xlsx")
}

// writeScript creates an executable shell script in a temp dir.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "gen.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestExecGenerator(t *testing.T) {
	t.Run("passes derived arguments and returns stdout", func(t *testing.T) {
		bin := writeScript(t, `echo "$@"`+"\n")
		gen := execGenerator{bin: bin}

		out, err := gen.Generate(GenerateRequest{Root: "/t", OutXLSX: "/t/x.xlsx", OutDOCX: "/t/x.docx", Title: "x"})
		require.NoError(t, err)
		assert.Equal(t, "--root /t --out-xlsx /t/x.xlsx --out-docx /t/x.docx --title x", out)

		out, err = gen.Generate(GenerateRequest{Root: "/t"})
		require.NoError(t, err)
		assert.Equal(t, "--root /t", out)
	})

	t.Run("empty stdout", func(t *testing.T) {
		gen := execGenerator{bin: writeScript(t, "exit 0\n")}
		out, err := gen.Generate(GenerateRequest{Root: "/t"})
		require.NoError(t, err)
		assert.Equal(t, "Catalog generated.", out)
	})

	t.Run("failure combines stdout and stderr", func(t *testing.T) {
		gen := execGenerator{bin: writeScript(t, "echo out\necho err >&2\nexit 3\n")}
		_, err := gen.Generate(GenerateRequest{Root: "/t"})
		require.Error(t, err)

		var genErr *GenerateError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, "out\n\nerr", genErr.Error())
	})

	t.Run("missing executable", func(t *testing.T) {
		gen := execGenerator{bin: filepath.Join(t.TempDir(), "nope")}
		_, err := gen.Generate(GenerateRequest{Root: "/t"})
		require.Error(t, err)
		var genErr *GenerateError
		assert.False(t, errors.As(err, &genErr))
	})
}

func TestNewGenerator(t *testing.T) {
	assert.IsType(t, inProcessGenerator{}, newGenerator("", Options{}))
	assert.IsType(t, inProcessGenerator{}, newGenerator(filepath.Join(t.TempDir(), "missing"), Options{}))

	bin := writeScript(t, "exit 0\n")
	assert.IsType(t, execGenerator{}, newGenerator(bin, Options{}))
}

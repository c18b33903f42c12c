package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePDF(t *testing.T) {
	tests := []struct {
		name string
		cat  *Catalog
	}{
		{"stem", testCatalog(PolicyStem, "Box 7", "Banana.txt", "apple.txt")},
		{"full-path", testCatalog(PolicyFullPath, "", filepath.Join("docs", "readme.md"), "notes.txt")},
		{"empty", testCatalog(PolicyStem, "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "pdf", tt.name+".pdf")
			require.NoError(t, writePDF(tt.cat, out))

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
		})
	}
}

func TestFitCell(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 9)

	assert.Equal(t, "short", fitCell(pdf, "short", 40))

	long := strings.Repeat("deep/", 40) + "file.txt"
	got := fitCell(pdf, long, 40)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "file.txt"))
	assert.LessOrEqual(t, pdf.GetStringWidth(got), 38.0)
}

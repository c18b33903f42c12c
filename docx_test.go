package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openDocx parses a written document and splits its body into paragraphs and tables.
func openDocx(t *testing.T, path string) ([]*docx.Paragraph, []*docx.Table) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var paras []*docx.Paragraph
	var tables []*docx.Table
	for _, it := range doc.Document.Body.Items {
		switch o := it.(type) {
		case *docx.Paragraph:
			paras = append(paras, o)
		case *docx.Table:
			tables = append(tables, o)
		}
	}
	return paras, tables
}

// runProps returns the properties of the first run in p.
func runProps(t *testing.T, p *docx.Paragraph) *docx.RunProperties {
	t.Helper()
	for _, c := range p.Children {
		if r, ok := c.(*docx.Run); ok {
			require.NotNil(t, r.RunProperties)
			return r.RunProperties
		}
	}
	require.FailNow(t, "paragraph has no run", p.String())
	return nil
}

func cellText(tbl *docx.Table, row, col int) string {
	return tbl.TableRows[row].TableCells[col].Paragraphs[0].String()
}

func TestWriteDocx(t *testing.T) {
	t.Run("package parts", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "doc", "cat.docx")
		require.NoError(t, writeDocx(testCatalog(PolicyStem, ""), out))

		zr, err := zip.OpenReader(out)
		require.NoError(t, err)
		defer zr.Close()
		names := make(map[string]bool)
		for _, f := range zr.File {
			names[f.Name] = true
		}
		for _, name := range []string{
			"[Content_Types].xml",
			"_rels/.rels",
			"word/_rels/document.xml.rels",
			"word/document.xml",
			"word/styles.xml",
		} {
			assert.True(t, names[name], name)
		}
	})

	t.Run("stem policy numbered list", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "cat.docx")
		require.NoError(t, writeDocx(testCatalog(PolicyStem, "", "Banana.txt", "apple.txt"), out))

		paras, tables := openDocx(t, out)
		assert.Empty(t, tables)
		require.Len(t, paras, 5)

		assert.Equal(t, docxHeading, paras[0].String())
		heading := runProps(t, paras[0])
		assert.NotNil(t, heading.Bold)
		require.NotNil(t, heading.Size)
		assert.Equal(t, "36", heading.Size.Val)

		assert.Equal(t, "Generated: 2024-03-09 14:05:07\nTotal files: 2", paras[1].String())
		assert.Equal(t, "Files:", paras[2].String())

		assert.Equal(t, "1. apple", paras[3].String())
		assert.Equal(t, "2. Banana", paras[4].String())
		for _, p := range paras[3:] {
			rp := runProps(t, p)
			require.NotNil(t, rp.Fonts)
			assert.Equal(t, docxEntryFont, rp.Fonts.EastAsia)
			require.NotNil(t, rp.Size)
			assert.Equal(t, "28", rp.Size.Val)
			assert.Nil(t, p.Properties)
		}
	})

	t.Run("title adds a header line and a centered heading", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "cat.docx")
		require.NoError(t, writeDocx(testCatalog(PolicyStem, "R&D <2024>", "a.txt"), out))

		paras, _ := openDocx(t, out)
		require.Len(t, paras, 5)
		assert.Equal(t, docxTitleLabel+": R&D <2024>\nGenerated: 2024-03-09 14:05:07\nTotal files: 1", paras[1].String())

		title := paras[3]
		assert.Equal(t, "R&D <2024>", title.String())
		require.NotNil(t, title.Properties)
		require.NotNil(t, title.Properties.Justification)
		assert.Equal(t, "center", title.Properties.Justification.Val)
		rp := runProps(t, title)
		require.NotNil(t, rp.Fonts)
		assert.Equal(t, docxTitleFont, rp.Fonts.EastAsia)
		require.NotNil(t, rp.Size)
		assert.Equal(t, "32", rp.Size.Val)

		assert.Equal(t, "1. a", paras[4].String())
	})

	t.Run("full-path policy table", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "cat.docx")
		cat := testCatalog(PolicyFullPath, "", filepath.Join("docs", "readme.md"), "notes.txt")
		require.NoError(t, writeDocx(cat, out))

		paras, tables := openDocx(t, out)
		require.Len(t, tables, 1)
		tbl := tables[0]
		require.Len(t, tbl.TableRows, 3)

		for i, h := range []string{"No.", "Relative Path", "File Name", "Folder"} {
			assert.Equal(t, h, cellText(tbl, 0, i))
			assert.NotNil(t, runProps(t, tbl.TableRows[0].TableCells[i].Paragraphs[0]).Bold)
		}
		assert.Equal(t, "1", cellText(tbl, 1, 0))
		assert.Equal(t, "docs/readme.md", cellText(tbl, 1, 1))
		assert.Equal(t, "readme.md", cellText(tbl, 1, 2))
		assert.Equal(t, "docs", cellText(tbl, 1, 3))
		assert.Equal(t, "notes.txt", cellText(tbl, 2, 1))

		for _, p := range paras {
			assert.NotRegexp(t, `^\d+\. `, p.String())
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "cat.docx")
		require.NoError(t, writeDocx(testCatalog(PolicyFullPath, ""), out))

		paras, tables := openDocx(t, out)
		assert.Contains(t, paras[1].String(), "Total files: 0")
		require.Len(t, tables, 1)
		assert.Len(t, tables[0].TableRows, 1)
	})
}

func TestMetadataLines(t *testing.T) {
	cat := testCatalog(PolicyStem, "Box 7", "a.txt")
	assert.Equal(t, []string{
		"目录名称: Box 7",
		"Generated: 2024-03-09 14:05:07",
		"Total files: 1",
	}, metadataLines(cat))
}

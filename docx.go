package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

const (
	docxHeading     = "File Catalog"
	docxTitleLabel  = "目录名称"
	docxTimeLayout  = "2006-01-02 15:04:05"
	docxTitleFont   = "SimHei"
	docxTitleSize   = 16
	docxEntryFont   = "FangSong"
	docxEntrySize   = 14
	docxHeadingSize = 18
	docxTableHeader = "No.|Relative Path|File Name|Folder"
)

// Column widths of the full-path table, in twentieths of a point.
var docxTableWidths = []int64{700, 4300, 2400, 2400}

// halfPoints converts a point size to the half-point string w:sz expects.
func halfPoints(pt int) string {
	return strconv.Itoa(pt * 2)
}

// metadataLines returns the header block printed under the heading.
func metadataLines(cat *Catalog) []string {
	var lines []string
	if cat.Title != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", docxTitleLabel, cat.Title))
	}
	lines = append(lines,
		fmt.Sprintf("Generated: %s", cat.Generated.Format(docxTimeLayout)),
		fmt.Sprintf("Total files: %d", cat.Len()),
	)
	return lines
}

// buildDocx lays out the catalog document.
func buildDocx(cat *Catalog) *docx.Docx {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(docxHeading).Bold().Size(halfPoints(docxHeadingSize)).Color("365F91")
	doc.AddParagraph().AddText(strings.Join(metadataLines(cat), "\n"))
	doc.AddParagraph().AddText("Files:")

	if cat.Title != "" {
		doc.AddParagraph().Justification("center").
			AddText(cat.Title).
			Font(docxTitleFont, docxTitleFont, docxTitleFont, "eastAsia").
			Size(halfPoints(docxTitleSize)).SizeCs(halfPoints(docxTitleSize))
	}

	switch cat.Policy {
	case PolicyFullPath:
		addDocxTable(doc, cat)
	default:
		for i, r := range cat.Rows {
			doc.AddParagraph().
				AddText(fmt.Sprintf("%d. %s", i+1, r.Stem)).
				Font(docxEntryFont, docxEntryFont, docxEntryFont, "eastAsia").
				Size(halfPoints(docxEntrySize)).SizeCs(halfPoints(docxEntrySize))
		}
	}
	return doc
}

// addDocxTable appends the full-path grid; the first row is a bold header.
func addDocxTable(doc *docx.Docx, cat *Catalog) {
	tbl := doc.AddTableTwips(make([]int64, cat.Len()+1), docxTableWidths, 0, nil)

	for i, h := range strings.Split(docxTableHeader, "|") {
		tbl.TableRows[0].TableCells[i].AddParagraph().AddText(h).Bold()
	}
	for i, r := range cat.Rows {
		cells := tbl.TableRows[i+1].TableCells
		for j, v := range []string{strconv.Itoa(i + 1), r.Path, r.Name, r.Folder} {
			cells[j].AddParagraph().AddText(v)
		}
	}
	// Word expects the body to end with a paragraph.
	doc.AddParagraph()
}

// writeDocx renders the catalog as a .docx document at outPath.
func writeDocx(cat *Catalog, outPath string) error {
	logger.Debug().Str("path", outPath).Msg("writing document")

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to save document to %s: %w", outPath, err)
	}
	if _, err := buildDocx(cat).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write document %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to save document to %s: %w", outPath, err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 6   // Line height in mm
	pdfFontSize   = 10
	pdfUTF8Family = "catalog"
)

// Column widths of the full-path table in mm; they add up to the printable width.
var pdfTableWidths = []float64{12, 86, 46, 46}

// pdfFontFile is a TTF used for non-Latin text. When empty the core
// Helvetica font is used and text is translated to cp1252.
var pdfFontFile string

// pdfWriter wraps gofpdf with the font and text translation for one document.
type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
}

func newPDFWriter() *pdfWriter {
	pdf := gofpdf.New("P", "mm", "A4", "") // Portrait, mm, A4, default font dir
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	w := &pdfWriter{pdf: pdf, family: "Helvetica", tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if pdfFontFile != "" {
		pdf.AddUTF8Font(pdfUTF8Family, "", pdfFontFile)
		pdf.AddUTF8Font(pdfUTF8Family, "B", pdfFontFile)
		if pdf.Ok() {
			w.family = pdfUTF8Family
			w.tr = func(s string) string { return s }
		} else {
			logger.Warn().Err(pdf.Error()).Str("font", pdfFontFile).Msg("could not load PDF font, falling back to Helvetica")
			pdf.ClearError()
		}
	}
	pdf.AddPage()
	return w
}

func (w *pdfWriter) font(style string, size float64) {
	w.pdf.SetFont(w.family, style, size)
}

func (w *pdfWriter) line(text, align string) {
	w.pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, w.tr(text), "", align, false)
}

// writePDF renders the catalog as a PDF at outPath.
func writePDF(cat *Catalog, outPath string) error {
	logger.Debug().Str("path", outPath).Msg("writing PDF")

	w := newPDFWriter()

	w.font("B", pdfFontSize+6)
	w.line(docxHeading, "L")
	w.pdf.Ln(pdfLineHeight / 2)

	w.font("", pdfFontSize)
	w.line(strings.Join(metadataLines(cat), "\n"), "L")
	w.pdf.Ln(pdfLineHeight / 2)
	w.line("Files:", "L")

	if cat.Title != "" {
		w.font("B", docxTitleSize)
		w.line(cat.Title, "C")
		w.pdf.Ln(pdfLineHeight / 2)
	}

	switch cat.Policy {
	case PolicyFullPath:
		header := strings.Split(docxTableHeader, "|")
		w.font("B", pdfFontSize)
		for i, h := range header {
			w.pdf.CellFormat(pdfTableWidths[i], pdfLineHeight, w.tr(h), "1", 0, "L", false, 0, "")
		}
		w.pdf.Ln(-1)
		w.font("", pdfFontSize-1)
		for i, r := range cat.Rows {
			cells := []string{strconv.Itoa(i + 1), r.Path, r.Name, r.Folder}
			for j, c := range cells {
				w.pdf.CellFormat(pdfTableWidths[j], pdfLineHeight, w.tr(fitCell(w.pdf, c, pdfTableWidths[j])), "1", 0, "L", false, 0, "")
			}
			w.pdf.Ln(-1)
		}
	default:
		w.font("", pdfFontSize)
		for i, r := range cat.Rows {
			w.line(fmt.Sprintf("%d. %s", i+1, r.Stem), "L")
		}
	}

	if err := w.pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := w.pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outPath, err)
	}
	return nil
}

// fitCell shortens text from the left until it fits a table cell, keeping
// the end of long paths visible.
func fitCell(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth("..."+string(runes)) > limit {
		runes = runes[1:]
	}
	return "..." + string(runes)
}

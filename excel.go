package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const excelSheetName = "File Catalog"

// excelColumn is one spreadsheet column: header text and width.
type excelColumn struct {
	Header string
	Width  float64
}

// excelColumns returns the column layout for a policy.
func excelColumns(policy Policy) []excelColumn {
	if policy == PolicyFullPath {
		return []excelColumn{
			{"No.", 6},
			{"Relative Path", 60},
			{"File Name", 40},
			{"Folder", 40},
		}
	}
	return []excelColumn{
		{"No.", 6},
		{"Name (No Ext)", 60},
	}
}

// excelValues returns the data cells for one row, numbered from 1.
func excelValues(n int, r Row) []interface{} {
	if r.Policy == PolicyFullPath {
		return []interface{}{n, r.Path, r.Name, r.Folder}
	}
	return []interface{}{n, r.Stem}
}

// writeExcel renders the catalog as a single-sheet workbook at outPath.
func writeExcel(cat *Catalog, outPath string) error {
	logger.Debug().Str("path", outPath).Msg("writing spreadsheet")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", excelSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	cols := excelColumns(cat.Policy)
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}
	if err := f.SetSheetRow(excelSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(excelSheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, r := range cat.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := excelValues(i+1, r)
		if err := f.SetSheetRow(excelSheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	for i, c := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(excelSheetName, name, name, c.Width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("failed to save spreadsheet to %s: %w", outPath, err)
	}
	return nil
}

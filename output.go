package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
)

// printResult writes the summary lines shown after a successful run.
func printResult(w io.Writer, res Result) {
	fmt.Fprintf(w, "Excel catalog: %s\n", res.XLSX)
	fmt.Fprintf(w, "Word catalog:  %s\n", res.DOCX)
	if res.PDF != "" {
		fmt.Fprintf(w, "PDF catalog:   %s\n", res.PDF)
	}
	fmt.Fprintf(w, "Total files:   %d\n", res.Total)
}

// formatResult returns the printResult lines without the trailing newline.
func formatResult(res Result) string {
	var b strings.Builder
	printResult(&b, res)
	return strings.TrimRight(b.String(), "\n")
}

// printListing generates the plain-text form of a catalog, one numbered
// row per line, with tab-separated fields for the full-path policy.
func printListing(cat *Catalog) string {
	var builder strings.Builder
	for i, r := range cat.Rows {
		switch r.Policy {
		case PolicyFullPath:
			builder.WriteString(fmt.Sprintf("%d\t%s\t%s\t%s\n", i+1, r.Path, r.Name, r.Folder))
		default:
			builder.WriteString(fmt.Sprintf("%d\t%s\n", i+1, r.Stem))
		}
	}
	return builder.String()
}

// copyListing puts the plain-text listing on the system clipboard.
func copyListing(cat *Catalog) error {
	if err := clipboard.WriteAll(printListing(cat)); err != nil {
		return fmt.Errorf("error writing to clipboard: %w", err)
	}
	logger.Info().Int("files", cat.Len()).Msg("listing copied to clipboard")
	return nil
}

// ABOUTME: Capture history CLI commands
// ABOUTME: Commands for listing, showing, and exporting archived captures
package cli

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/cardsnap/db"
	"github.com/harperreed/cardsnap/sheet"
)

// HistoryListCommand lists archived captures
func HistoryListCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("query", "", "Search by name, company, or email")
	limit := fs.Int("limit", 50, "Maximum number of captures to show")
	_ = fs.Parse(args)

	captures, err := db.SearchCaptures(database, *query, *limit)
	if err != nil {
		return fmt.Errorf("failed to list captures: %w", err)
	}

	if len(captures) == 0 {
		fmt.Println("No captures found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tNEXT DUE\tCAPTURED")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t--------\t--------")

	for _, c := range captures {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Record.DisplayName(), c.Record.Company,
			c.Record.NextContactDue, c.CreatedAt.Format("2006-01-02 15:04"))
	}

	_ = w.Flush()
	return nil
}

// HistoryShowCommand shows one capture in full
func HistoryShowCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("capture ID is required")
	}

	capture, err := db.GetCapture(database, args[0])
	if err != nil {
		return fmt.Errorf("failed to get capture: %w", err)
	}
	if capture == nil {
		return fmt.Errorf("capture not found: %s", args[0])
	}

	fmt.Printf("Capture %s (saved %s)\n\n", capture.ID, capture.CreatedAt.Format("2006-01-02 15:04:05"))
	printRecord(capture.Record)
	return nil
}

// HistoryExportCommand exports captures as CSV in sheet column order
func HistoryExportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	limit := fs.Int("limit", 0, "Maximum number of captures (default: all)")
	_ = fs.Parse(args)

	if *limit <= 0 {
		count, err := db.CountCaptures(database)
		if err != nil {
			return fmt.Errorf("failed to count captures: %w", err)
		}
		*limit = count
	}

	captures, err := db.ListCaptures(database, *limit)
	if err != nil {
		return fmt.Errorf("failed to list captures: %w", err)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	columns := sheet.Columns()
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}

	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	row := make([]string, len(columns))
	for i := len(captures) - 1; i >= 0; i-- {
		for j, col := range columns {
			row[j] = captures[i].Record.Field(col.Key)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if *output != "" {
		fmt.Printf("Exported %d captures to %s\n", len(captures), *output)
	}
	return nil
}


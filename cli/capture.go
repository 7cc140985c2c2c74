// ABOUTME: Capture CLI command
// ABOUTME: Extracts a contact from card photos and voice notes, reviews, and saves
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/cardsnap/capture"
	"github.com/harperreed/cardsnap/config"
	"github.com/harperreed/cardsnap/db"
	"github.com/harperreed/cardsnap/extract"
	"github.com/harperreed/cardsnap/models"
	"github.com/harperreed/cardsnap/session"
	"github.com/harperreed/cardsnap/sheet"
	"github.com/harperreed/cardsnap/tui"
)

// CaptureCommand runs the photograph-to-sheet flow for local files.
// Images and audio are told apart by content type, so files can be
// passed in any order.
func CaptureCommand(database *sql.DB, extractor extract.Extractor, sheets *sheet.Client, settings *config.Settings, args []string) error {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Save without interactive review")
	noSave := fs.Bool("no-save", false, "Extract and print, but do not save")
	_ = fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		return fmt.Errorf("at least one image or audio file is required")
	}

	store := session.NewStore()
	for _, path := range files {
		media, err := capture.FromFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		switch {
		case media.IsImage():
			store.AddImage(media)
		case media.IsAudio():
			store.SetAudio(media)
		default:
			return fmt.Errorf("%s: unsupported content type %s", path, media.MIME)
		}
	}

	fmt.Println("Analyzing...")
	store.SetStatus(session.StatusAnalyzing)

	req := extract.Request{Images: store.Images(), Audio: store.Audio()}
	result, err := extractor.Extract(context.Background(), req)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	store.ApplyExtraction(result)
	store.SetStatus(session.StatusReview)

	if *noSave {
		printRecord(store.Record())
		return nil
	}

	if !*yes {
		confirmed, err := tui.RunReview(store)
		if err != nil {
			return fmt.Errorf("review failed: %w", err)
		}
		if !confirmed {
			fmt.Println("Capture discarded.")
			return nil
		}
	}

	record := store.Record()

	if settings.Connected() {
		if err := sheets.Append(context.Background(), settings.WebhookURL, record); err != nil {
			return fmt.Errorf("failed to send record to sheet: %w", err)
		}
	} else {
		fmt.Println("No webhook endpoint configured; archiving locally only.")
	}

	archived := &db.Capture{SessionID: store.ID(), Record: record}
	if err := db.CreateCapture(database, archived); err != nil {
		return fmt.Errorf("failed to archive capture: %w", err)
	}

	store.SetStatus(session.StatusSuccess)
	fmt.Printf("Saved %s (%s)\n", record.DisplayName(), archived.ID)
	return nil
}

func printRecord(record models.ContactRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, def := range models.ContactFields {
		value := record.Field(def.Key)
		if value == "" {
			value = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", def.Label, value)
	}
	_ = w.Flush()
	fmt.Printf("\nCompleteness: %d%%\n", models.Completeness(record))
}

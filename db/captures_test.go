// ABOUTME: Tests for the capture archive
// ABOUTME: Validates insert, lookup, ordering, and search
package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/cardsnap/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestCreateAndGetCapture(t *testing.T) {
	database := setupTestDB(t)

	record := models.ContactRecord{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Company:          "Analytical Engines",
		Email:            "ada@example.com",
		ContactFrequency: "Every 3 months",
		LastContact:      "2024-06-15",
		NextContactDue:   "2024-09-15",
	}

	capture := &Capture{SessionID: uuid.New(), Record: record}
	if err := CreateCapture(database, capture); err != nil {
		t.Fatalf("CreateCapture failed: %v", err)
	}
	if capture.ID == "" {
		t.Fatal("ID was not assigned")
	}
	if capture.CreatedAt.IsZero() {
		t.Fatal("CreatedAt was not assigned")
	}

	got, err := GetCapture(database, capture.ID)
	if err != nil {
		t.Fatalf("GetCapture failed: %v", err)
	}
	if got == nil {
		t.Fatal("capture not found")
	}
	if got.Record != record {
		t.Errorf("record mismatch: %+v vs %+v", got.Record, record)
	}
	if got.SessionID != capture.SessionID {
		t.Errorf("session ID mismatch: %s vs %s", got.SessionID, capture.SessionID)
	}
}

func TestGetCaptureNotFound(t *testing.T) {
	database := setupTestDB(t)

	got, err := GetCapture(database, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	if err != nil {
		t.Fatalf("GetCapture failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown ID")
	}
}

func TestListCapturesNewestFirst(t *testing.T) {
	database := setupTestDB(t)
	session := uuid.New()

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		c := &Capture{SessionID: session, Record: models.ContactRecord{FirstName: name}}
		if err := CreateCapture(database, c); err != nil {
			t.Fatalf("CreateCapture failed: %v", err)
		}
	}

	captures, err := ListCaptures(database, 10)
	if err != nil {
		t.Fatalf("ListCaptures failed: %v", err)
	}
	if len(captures) != 3 {
		t.Fatalf("expected 3 captures, got %d", len(captures))
	}
	// ULID primary keys sort by creation time, so DESC order is newest first.
	if captures[0].Record.FirstName != "Third" {
		t.Errorf("expected newest capture first, got %s", captures[0].Record.FirstName)
	}
	if captures[2].Record.FirstName != "First" {
		t.Errorf("expected oldest capture last, got %s", captures[2].Record.FirstName)
	}
}

func TestSearchCaptures(t *testing.T) {
	database := setupTestDB(t)
	session := uuid.New()

	records := []models.ContactRecord{
		{FirstName: "Grace", LastName: "Hopper", Company: "Navy"},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@bletchley.uk"},
		{FirstName: "Ada", LastName: "Lovelace", Company: "Analytical Engines"},
	}
	for i := range records {
		if err := CreateCapture(database, &Capture{SessionID: session, Record: records[i]}); err != nil {
			t.Fatalf("CreateCapture failed: %v", err)
		}
	}

	byName, err := SearchCaptures(database, "grace", 10)
	if err != nil {
		t.Fatalf("SearchCaptures failed: %v", err)
	}
	if len(byName) != 1 || byName[0].Record.FirstName != "Grace" {
		t.Errorf("expected Grace, got %+v", byName)
	}

	byEmail, err := SearchCaptures(database, "bletchley", 10)
	if err != nil {
		t.Fatalf("SearchCaptures failed: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].Record.FirstName != "Alan" {
		t.Errorf("expected Alan, got %+v", byEmail)
	}

	all, err := SearchCaptures(database, "", 10)
	if err != nil {
		t.Fatalf("SearchCaptures failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("empty query should list all, got %d", len(all))
	}
}

func TestCountCaptures(t *testing.T) {
	database := setupTestDB(t)

	count, err := CountCaptures(database)
	if err != nil {
		t.Fatalf("CountCaptures failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}

	if err := CreateCapture(database, &Capture{SessionID: uuid.New()}); err != nil {
		t.Fatalf("CreateCapture failed: %v", err)
	}

	count, err = CountCaptures(database)
	if err != nil {
		t.Fatalf("CountCaptures failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1, got %d", count)
	}
}

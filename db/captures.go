// ABOUTME: Capture archive database operations
// ABOUTME: Handles inserting, listing, and searching saved contact records
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/cardsnap/models"
	"github.com/oklog/ulid/v2"
)

// Capture is one archived contact record. IDs are ULIDs so the primary key
// sorts by creation time.
type Capture struct {
	ID        string               `json:"id"`
	SessionID uuid.UUID            `json:"session_id"`
	Record    models.ContactRecord `json:"record"`
	CreatedAt time.Time            `json:"created_at"`
}

// fieldColumns maps catalog keys to their table columns, in catalog order.
var fieldColumns = []struct {
	Key    string
	Column string
}{
	{models.FieldMeetWhen, "meet_when"},
	{models.FieldFirstName, "first_name"},
	{models.FieldLastName, "last_name"},
	{models.FieldTitle, "title"},
	{models.FieldCompany, "company"},
	{models.FieldSchool, "school"},
	{models.FieldIndustry, "industry"},
	{models.FieldCurrentResident, "current_resident"},
	{models.FieldNationality, "nationality"},
	{models.FieldAgeRange, "age_range"},
	{models.FieldBirthday, "birthday"},
	{models.FieldEmail, "email"},
	{models.FieldPhone, "phone"},
	{models.FieldLink, "link"},
	{models.FieldFirstImpression, "first_impression"},
	{models.FieldImportance, "importance"},
	{models.FieldContactFrequency, "contact_frequency"},
	{models.FieldLastContact, "last_contact"},
	{models.FieldLastContactNotes, "last_contact_notes"},
	{models.FieldNotes, "notes"},
	{models.FieldNextContactDue, "next_contact_due"},
}

func columnList() string {
	cols := make([]string, len(fieldColumns))
	for i, fc := range fieldColumns {
		cols[i] = fc.Column
	}
	return strings.Join(cols, ", ")
}

// CreateCapture archives a record, assigning its ID and creation time.
func CreateCapture(db *sql.DB, capture *Capture) error {
	capture.ID = ulid.Make().String()
	capture.CreatedAt = time.Now()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(fieldColumns)), ", ")
	query := fmt.Sprintf(`
		INSERT INTO captures (id, session_id, %s, created_at)
		VALUES (?, ?, %s, ?)
	`, columnList(), placeholders)

	args := make([]interface{}, 0, len(fieldColumns)+3)
	args = append(args, capture.ID, capture.SessionID.String())
	for _, fc := range fieldColumns {
		args = append(args, capture.Record.Field(fc.Key))
	}
	args = append(args, capture.CreatedAt)

	_, err := db.Exec(query, args...)
	return err
}

func scanCapture(scan func(dest ...interface{}) error) (*Capture, error) {
	capture := &Capture{}
	var idStr, sessionIDStr string
	values := make([]string, len(fieldColumns))

	dest := make([]interface{}, 0, len(fieldColumns)+3)
	dest = append(dest, &idStr, &sessionIDStr)
	for i := range values {
		dest = append(dest, &values[i])
	}
	dest = append(dest, &capture.CreatedAt)

	if err := scan(dest...); err != nil {
		return nil, err
	}

	capture.ID = idStr
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session ID: %w", err)
	}
	capture.SessionID = sessionID

	for i, fc := range fieldColumns {
		capture.Record.SetField(fc.Key, values[i])
	}

	return capture, nil
}

// GetCapture retrieves one archived record by ID, or nil when absent.
func GetCapture(db *sql.DB, id string) (*Capture, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, %s, created_at
		FROM captures WHERE id = ?
	`, columnList())

	capture, err := scanCapture(db.QueryRow(query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return capture, nil
}

// ListCaptures returns the most recent captures, newest first.
func ListCaptures(db *sql.DB, limit int) ([]Capture, error) {
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT id, session_id, %s, created_at
		FROM captures
		ORDER BY id DESC
		LIMIT ?
	`, columnList())

	return queryCaptures(db, query, limit)
}

// SearchCaptures finds captures matching a name, company, or email query,
// newest first.
func SearchCaptures(db *sql.DB, search string, limit int) ([]Capture, error) {
	if search == "" {
		return ListCaptures(db, limit)
	}
	if limit <= 0 {
		limit = 50
	}

	pattern := "%" + strings.ToLower(search) + "%"
	query := fmt.Sprintf(`
		SELECT id, session_id, %s, created_at
		FROM captures
		WHERE LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?
		   OR LOWER(company) LIKE ? OR LOWER(email) LIKE ?
		ORDER BY id DESC
		LIMIT ?
	`, columnList())

	return queryCaptures(db, query, pattern, pattern, pattern, pattern, limit)
}

func queryCaptures(db *sql.DB, query string, args ...interface{}) ([]Capture, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var captures []Capture
	for rows.Next() {
		capture, err := scanCapture(rows.Scan)
		if err != nil {
			return nil, err
		}
		captures = append(captures, *capture)
	}

	return captures, rows.Err()
}

// CountCaptures returns the number of archived records.
func CountCaptures(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM captures`).Scan(&count)
	return count, err
}

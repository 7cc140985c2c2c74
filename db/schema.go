// ABOUTME: Database schema definitions
// ABOUTME: Handles SQLite table creation for the capture archive
package db

import (
	"database/sql"
)

// One column per catalog field, in sheet column order. The webhook gives no
// delivery confirmation, so this table is the recoverable copy of every
// record the user saved.
const schema = `
CREATE TABLE IF NOT EXISTS captures (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	meet_when TEXT NOT NULL DEFAULT '',
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	school TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	current_resident TEXT NOT NULL DEFAULT '',
	nationality TEXT NOT NULL DEFAULT '',
	age_range TEXT NOT NULL DEFAULT '',
	birthday TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL DEFAULT '',
	first_impression TEXT NOT NULL DEFAULT '',
	importance TEXT NOT NULL DEFAULT '',
	contact_frequency TEXT NOT NULL DEFAULT '',
	last_contact TEXT NOT NULL DEFAULT '',
	last_contact_notes TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	next_contact_due TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_captures_name ON captures(last_name, first_name);
CREATE INDEX IF NOT EXISTS idx_captures_email ON captures(email);
CREATE INDEX IF NOT EXISTS idx_captures_created_at ON captures(created_at DESC);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

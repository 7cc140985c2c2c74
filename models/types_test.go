// ABOUTME: Tests for the ContactRecord data model
// ABOUTME: Validates field access, initial state, and map round-trips
package models

import (
	"testing"
	"time"
)

func TestFieldAccessorsCoverCatalog(t *testing.T) {
	var r ContactRecord
	for _, key := range FieldKeys() {
		if !r.SetField(key, "v-"+key) {
			t.Errorf("SetField rejected catalog key %s", key)
		}
		if got := r.Field(key); got != "v-"+key {
			t.Errorf("key %s: expected v-%s, got %q", key, key, got)
		}
	}

	if r.SetField("unknownKey", "x") {
		t.Error("SetField must reject unknown keys")
	}
	if got := r.Field("unknownKey"); got != "" {
		t.Errorf("unknown key must read as empty, got %q", got)
	}
}

func TestNewContactRecordInitialState(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	r := NewContactRecordAt(now)

	if r.LastContact != "2024-06-15" {
		t.Errorf("expected lastContact 2024-06-15, got %s", r.LastContact)
	}
	if r.ContactFrequency != DefaultContactFrequency {
		t.Errorf("expected default frequency, got %s", r.ContactFrequency)
	}
	if r.NextContactDue != "2024-10-15" {
		t.Errorf("expected derived nextContactDue 2024-10-15, got %s", r.NextContactDue)
	}

	for _, key := range FieldKeys() {
		switch key {
		case FieldLastContact, FieldContactFrequency, FieldNextContactDue:
			continue
		}
		if r.Field(key) != "" {
			t.Errorf("key %s: expected empty initial value, got %q", key, r.Field(key))
		}
	}
}

func TestRecordMapRoundTrip(t *testing.T) {
	r := NewContactRecordAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	r.FirstName = "Alan"
	r.Email = "alan@example.com"

	m := r.Map()
	if len(m) != len(ContactFields) {
		t.Fatalf("expected %d map entries, got %d", len(ContactFields), len(m))
	}

	back := RecordFromMap(m)
	if back != r {
		t.Errorf("round-trip mismatch: %+v vs %+v", back, r)
	}
}

func TestRecordFromMapIgnoresUnknownKeys(t *testing.T) {
	r := RecordFromMap(map[string]string{
		"firstName": "Ada",
		"bogus":     "value",
	})

	if r.FirstName != "Ada" {
		t.Errorf("expected Ada, got %s", r.FirstName)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		record ContactRecord
		want   string
	}{
		{ContactRecord{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{ContactRecord{FirstName: "Ada"}, "Ada"},
		{ContactRecord{LastName: "Lovelace"}, "Lovelace"},
		{ContactRecord{Company: "Acme"}, "Acme"},
		{ContactRecord{}, "(unnamed)"},
	}

	for _, tt := range tests {
		if got := tt.record.DisplayName(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

// ABOUTME: Tests for the contact record merge engine
// ABOUTME: Validates field precedence, derived recompute, missing set, completeness
package models

import (
	"testing"
	"time"
)

func TestMergeExtractedValuesWin(t *testing.T) {
	prior := NewContactRecordAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	prior.FirstName = "Jane"
	prior.Company = "Old Corp"

	extracted := ExtractionResult{
		FieldFirstName: "John",
		FieldEmail:     "john@acme.com",
		FieldCompany:   "", // empty never blanks out prior data
	}

	result := Merge(prior, extracted)

	if result.FirstName != "John" {
		t.Errorf("expected extracted firstName to win, got %s", result.FirstName)
	}
	if result.Email != "john@acme.com" {
		t.Errorf("expected extracted email, got %s", result.Email)
	}
	if result.Company != "Old Corp" {
		t.Errorf("empty extraction must keep prior company, got %q", result.Company)
	}
}

func TestMergeEveryKeyPrecedence(t *testing.T) {
	prior := ContactRecord{}
	extracted := ExtractionResult{}
	for i, key := range FieldKeys() {
		prior.SetField(key, "prior")
		// Alternate which keys the extraction has an opinion about.
		if i%2 == 0 {
			extracted[key] = "extracted"
		}
	}
	// Keep the derived inputs parseable so the recompute is exercised.
	prior.LastContact = "2024-01-01"
	prior.ContactFrequency = "Every 2 months"
	delete(extracted, FieldLastContact)
	delete(extracted, FieldContactFrequency)

	result := Merge(prior, extracted)

	for i, key := range FieldKeys() {
		switch key {
		case FieldNextContactDue:
			continue
		case FieldLastContact, FieldContactFrequency:
			continue
		default:
			want := "prior"
			if i%2 == 0 {
				want = "extracted"
			}
			if got := result.Field(key); got != want {
				t.Errorf("key %s: expected %q, got %q", key, want, got)
			}
		}
	}
}

func TestMergeRecomputesNextContactDue(t *testing.T) {
	prior := ContactRecord{
		LastContact:      "2024-01-01",
		ContactFrequency: "Every 4 months",
		NextContactDue:   "2024-05-01",
	}

	// Extraction supplies a new lastContact and tries to smuggle in its own
	// nextContactDue; the recompute must use the merged lastContact and
	// ignore the smuggled value.
	extracted := ExtractionResult{
		FieldLastContact:    "2024-06-15",
		FieldNextContactDue: "1999-01-01",
	}

	result := Merge(prior, extracted)

	if result.LastContact != "2024-06-15" {
		t.Errorf("expected merged lastContact 2024-06-15, got %s", result.LastContact)
	}
	if result.NextContactDue != "2024-10-15" {
		t.Errorf("expected recomputed nextContactDue 2024-10-15, got %s", result.NextContactDue)
	}
}

func TestMergeEmptyExtractionIsNoOp(t *testing.T) {
	prior := NewContactRecordAt(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	prior.FirstName = "Ada"
	prior.Notes = "met at conference"

	result := Merge(prior, ExtractionResult{})

	if result != prior {
		t.Errorf("merge with empty extraction must be a no-op, got %+v", result)
	}
}

func TestMergeIgnoresUnknownKeys(t *testing.T) {
	prior := ContactRecord{LastContact: "2024-01-01", ContactFrequency: "Every month"}
	result := Merge(prior, ExtractionResult{
		"graduationYear": "2015",
		"favoriteColor":  "blue",
	})

	if result.Field("graduationYear") != "" {
		t.Error("unknown keys must not be admitted into the record")
	}
	if result.NextContactDue != "2024-02-01" {
		t.Errorf("expected 2024-02-01, got %s", result.NextContactDue)
	}
}

func TestMissingFieldsPartition(t *testing.T) {
	var r ContactRecord
	r.FirstName = "Grace"

	missing := MissingFields(r)

	if len(missing) != len(ContactFields)-1 {
		t.Fatalf("expected %d missing fields, got %d", len(ContactFields)-1, len(missing))
	}
	for _, key := range missing {
		if key == FieldFirstName {
			t.Error("firstName is filled and must not appear in the missing set")
		}
	}
}

func TestCompletenessRounding(t *testing.T) {
	if n := len(ContactFields); n != 21 {
		t.Fatalf("catalog size changed, expected 21 fields, got %d", n)
	}

	var r ContactRecord
	for _, key := range []string{FieldFirstName, FieldLastName, FieldEmail} {
		r.SetField(key, "x")
	}
	// 3/21 = 14.28... -> 14
	if got := Completeness(r); got != 14 {
		t.Errorf("expected 14%%, got %d%%", got)
	}

	r.SetField(FieldPhone, "555")
	r.SetField(FieldCompany, "Acme")
	r.SetField(FieldLastContact, "2024-01-01")
	r.SetField(FieldContactFrequency, "Every month")
	// The derived field counts as filled once a valid lastContact exists.
	r.NextContactDue = ComputeNextDue(r.LastContact, r.ContactFrequency)
	// 8/21 = 38.09... -> 38
	if got := Completeness(r); got != 38 {
		t.Errorf("expected 38%%, got %d%%", got)
	}

	if got := Completeness(ContactRecord{}); got != 0 {
		t.Errorf("expected 0%% for empty record, got %d%%", got)
	}
}

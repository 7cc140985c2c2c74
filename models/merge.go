// ABOUTME: Contact record merge engine
// ABOUTME: Overlays extraction results onto prior state and recomputes derived fields
package models

import "math"

// Merge overlays an extraction result onto a prior record. A non-empty
// extracted value wins; empty or absent values keep the prior value, so
// extraction never blanks out existing data. NextContactDue is always
// recomputed from the merged lastContact and contactFrequency, never taken
// from the extraction even when present there. Unknown keys are ignored.
func Merge(prior ContactRecord, extracted ExtractionResult) ContactRecord {
	result := prior
	for _, f := range ContactFields {
		if f.Key == FieldNextContactDue {
			continue
		}
		if v, ok := extracted[f.Key]; ok && v != "" {
			result.SetField(f.Key, v)
		}
	}
	result.NextContactDue = ComputeNextDue(result.LastContact, result.ContactFrequency)
	return result
}

// MissingFields returns the catalog keys whose value is empty, in catalog
// order. Callers that need the "initially missing" partition snapshot this
// once and never recompute it (see session.Store).
func MissingFields(r ContactRecord) []string {
	var missing []string
	for _, f := range ContactFields {
		if r.Field(f.Key) == "" {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// Completeness returns the percentage of catalog fields with non-empty
// values, rounded to the nearest integer. Unlike the initially-missing set
// this is always computed live against the current record.
func Completeness(r ContactRecord) int {
	filled := 0
	for _, f := range ContactFields {
		if r.Field(f.Key) != "" {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(ContactFields)) * 100))
}

// ABOUTME: Data model for captured contacts
// ABOUTME: Defines the fixed-field ContactRecord and partial ExtractionResult
package models

import "time"

// ContactRecord holds one contact as a closed set of string fields. Empty
// string is the only "unfilled" state; no field is ever null or absent.
// NextContactDue is derived and never set directly by users or extraction.
type ContactRecord struct {
	MeetWhen         string `json:"meetWhen"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Title            string `json:"title"`
	Company          string `json:"company"`
	School           string `json:"school"`
	Industry         string `json:"industry"`
	CurrentResident  string `json:"currentResident"`
	Nationality      string `json:"nationality"`
	AgeRange         string `json:"ageRange"`
	Birthday         string `json:"birthday"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Link             string `json:"link"` // LinkedIn URL or website
	FirstImpression  string `json:"firstImpression"`
	Importance       string `json:"importance"`
	ContactFrequency string `json:"contactFrequency"`
	LastContact      string `json:"lastContact"`
	LastContactNotes string `json:"lastContactNotes"`
	Notes            string `json:"notes"`
	NextContactDue   string `json:"nextContactDue"`
}

// ExtractionResult is a partial record returned by the extraction
// collaborator. Absent keys and empty values both mean "no new information".
type ExtractionResult map[string]string

// NewContactRecord returns the initial record for a fresh session:
// all fields empty except lastContact (today), contactFrequency (default),
// and the derived nextContactDue.
func NewContactRecord() ContactRecord {
	return NewContactRecordAt(time.Now())
}

// NewContactRecordAt is NewContactRecord with an injectable clock.
func NewContactRecordAt(now time.Time) ContactRecord {
	r := ContactRecord{
		ContactFrequency: DefaultContactFrequency,
		LastContact:      now.Format("2006-01-02"),
	}
	r.NextContactDue = ComputeNextDue(r.LastContact, r.ContactFrequency)
	return r
}

// Field returns the value for a catalog key, or "" for unknown keys.
func (r ContactRecord) Field(key string) string {
	switch key {
	case FieldMeetWhen:
		return r.MeetWhen
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldTitle:
		return r.Title
	case FieldCompany:
		return r.Company
	case FieldSchool:
		return r.School
	case FieldIndustry:
		return r.Industry
	case FieldCurrentResident:
		return r.CurrentResident
	case FieldNationality:
		return r.Nationality
	case FieldAgeRange:
		return r.AgeRange
	case FieldBirthday:
		return r.Birthday
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldLink:
		return r.Link
	case FieldFirstImpression:
		return r.FirstImpression
	case FieldImportance:
		return r.Importance
	case FieldContactFrequency:
		return r.ContactFrequency
	case FieldLastContact:
		return r.LastContact
	case FieldLastContactNotes:
		return r.LastContactNotes
	case FieldNotes:
		return r.Notes
	case FieldNextContactDue:
		return r.NextContactDue
	}
	return ""
}

// SetField sets the value for a catalog key. Unknown keys are ignored and
// reported with a false return.
func (r *ContactRecord) SetField(key, value string) bool {
	switch key {
	case FieldMeetWhen:
		r.MeetWhen = value
	case FieldFirstName:
		r.FirstName = value
	case FieldLastName:
		r.LastName = value
	case FieldTitle:
		r.Title = value
	case FieldCompany:
		r.Company = value
	case FieldSchool:
		r.School = value
	case FieldIndustry:
		r.Industry = value
	case FieldCurrentResident:
		r.CurrentResident = value
	case FieldNationality:
		r.Nationality = value
	case FieldAgeRange:
		r.AgeRange = value
	case FieldBirthday:
		r.Birthday = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldLink:
		r.Link = value
	case FieldFirstImpression:
		r.FirstImpression = value
	case FieldImportance:
		r.Importance = value
	case FieldContactFrequency:
		r.ContactFrequency = value
	case FieldLastContact:
		r.LastContact = value
	case FieldLastContactNotes:
		r.LastContactNotes = value
	case FieldNotes:
		r.Notes = value
	case FieldNextContactDue:
		r.NextContactDue = value
	default:
		return false
	}
	return true
}

// Map returns the record as a key/value map, one entry per catalog key.
func (r ContactRecord) Map() map[string]string {
	m := make(map[string]string, len(ContactFields))
	for _, f := range ContactFields {
		m[f.Key] = r.Field(f.Key)
	}
	return m
}

// RecordFromMap builds a record from a key/value map, ignoring unknown keys.
func RecordFromMap(m map[string]string) ContactRecord {
	var r ContactRecord
	for _, f := range ContactFields {
		if v, ok := m[f.Key]; ok {
			r.SetField(f.Key, v)
		}
	}
	return r
}

// DisplayName returns a human-readable name for logs and history listings.
func (r ContactRecord) DisplayName() string {
	switch {
	case r.FirstName != "" && r.LastName != "":
		return r.FirstName + " " + r.LastName
	case r.FirstName != "":
		return r.FirstName
	case r.LastName != "":
		return r.LastName
	case r.Company != "":
		return r.Company
	}
	return "(unnamed)"
}

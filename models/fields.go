// ABOUTME: Static field catalog for contact records
// ABOUTME: Defines field keys, labels, input kinds, and option lists
package models

import "fmt"

// Field keys. The catalog below is the single source of truth for which
// keys exist on a record; everything that walks a record walks the catalog.
const (
	FieldMeetWhen         = "meetWhen"
	FieldFirstName        = "firstName"
	FieldLastName         = "lastName"
	FieldTitle            = "title"
	FieldCompany          = "company"
	FieldSchool           = "school"
	FieldIndustry         = "industry"
	FieldCurrentResident  = "currentResident"
	FieldNationality      = "nationality"
	FieldAgeRange         = "ageRange"
	FieldBirthday         = "birthday"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldLink             = "link"
	FieldFirstImpression  = "firstImpression"
	FieldImportance       = "importance"
	FieldContactFrequency = "contactFrequency"
	FieldLastContact      = "lastContact"
	FieldLastContactNotes = "lastContactNotes"
	FieldNotes            = "notes"
	FieldNextContactDue   = "nextContactDue"
)

// Input kind constants.
const (
	InputText     = "text"
	InputDate     = "date"
	InputEmail    = "email"
	InputURL      = "url"
	InputTel      = "tel"
	InputSelect   = "select"
	InputDatalist = "datalist"
)

// DefaultContactFrequency is applied to every fresh record.
const DefaultContactFrequency = "Every 4 months"

// FieldDefinition describes one contact field for form rendering and
// extraction schema generation.
type FieldDefinition struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder,omitempty"`
	InputKind   string   `json:"input_kind"`
	Options     []string `json:"options,omitempty"`
	ReadOnly    bool     `json:"read_only,omitempty"`
	Hint        string   `json:"hint,omitempty"` // extraction guidance passed to the model
}

// GenerateAgeRanges returns consecutive 5-year bands from 20 to 80:
// "20-25" through "75-80".
func GenerateAgeRanges() []string {
	var ranges []string
	for i := 20; i < 80; i += 5 {
		ranges = append(ranges, fmt.Sprintf("%d-%d", i, i+5))
	}
	return ranges
}

// ContactFields is the ordered field catalog. Order determines display
// order in the review form, the sheet columns, and CSV export.
var ContactFields = []FieldDefinition{
	{Key: FieldMeetWhen, Label: "Meet When", Placeholder: "e.g. Happy Hour Oct 2023", InputKind: InputText,
		Hint: "When the meeting happened or context of meeting if available"},
	{Key: FieldFirstName, Label: "First Name", Placeholder: "John", InputKind: InputText},
	{Key: FieldLastName, Label: "Last Name", Placeholder: "Doe", InputKind: InputText},
	{Key: FieldTitle, Label: "Title", Placeholder: "Senior Engineer", InputKind: InputText},
	{Key: FieldCompany, Label: "Company", Placeholder: "Acme Corp", InputKind: InputText},
	{Key: FieldSchool, Label: "School", Placeholder: "Select or type school", InputKind: InputDatalist,
		Options: []string{"Wharton", "Lauder", "HBS", "CBS", "Stanford", "UCLA", "MIT Sloan", "Booth", "Kellogg", "INSEAD", "LBS", "Yale SOM", "Berkeley Haas"},
		Hint:    "University or Business School name (e.g. Wharton, HBS)"},
	{Key: FieldIndustry, Label: "Industry", Placeholder: "Tech", InputKind: InputText,
		Hint: "Inferred industry based on company or title"},
	{Key: FieldCurrentResident, Label: "Current Resident", Placeholder: "San Francisco, CA", InputKind: InputText,
		Hint: "City or location derived from profile"},
	{Key: FieldNationality, Label: "Nationality", Placeholder: "USA", InputKind: InputText},
	{Key: FieldAgeRange, Label: "Age Range", Placeholder: "Select age range", InputKind: InputSelect,
		Options: GenerateAgeRanges(),
		Hint:    "Estimated age range (e.g. 25-30)"},
	{Key: FieldBirthday, Label: "Birthday", Placeholder: "MM/DD", InputKind: InputText},
	{Key: FieldEmail, Label: "Email", Placeholder: "john@example.com", InputKind: InputEmail},
	{Key: FieldPhone, Label: "Phone", Placeholder: "+1 555-0123", InputKind: InputTel},
	{Key: FieldLink, Label: "Link", Placeholder: "https://linkedin.com/in/...", InputKind: InputURL,
		Hint: "URL found on card or implied LinkedIn URL"},
	{Key: FieldFirstImpression, Label: "First Impression", Placeholder: "Friendly, knowledgeable", InputKind: InputText,
		Hint: "Adjectives describing the person based on photo or bio tone"},
	{Key: FieldImportance, Label: "Importance", Placeholder: "Select importance", InputKind: InputSelect,
		Options: []string{"Very High", "High", "Medium", "Low"}},
	{Key: FieldContactFrequency, Label: "Contact Frequency", Placeholder: "Select frequency", InputKind: InputSelect,
		Options: []string{
			"Every month",
			"Every 2 months",
			"Every 3 months",
			"Every 4 months",
			"Every 6 months",
			"Every 9 months",
			"Every year",
		}},
	{Key: FieldLastContact, Label: "Last Contact", Placeholder: "YYYY-MM-DD", InputKind: InputDate},
	{Key: FieldLastContactNotes, Label: "Last Contact Notes", Placeholder: "Met at coffee shop...", InputKind: InputText},
	{Key: FieldNotes, Label: "Notes", Placeholder: "General notes...", InputKind: InputText,
		Hint: "Summary of skills or bio"},
	{Key: FieldNextContactDue, Label: "Next Contact Due", Placeholder: "YYYY-MM-DD", InputKind: InputDate, ReadOnly: true},
}

// FieldKeys returns the catalog keys in display order.
func FieldKeys() []string {
	keys := make([]string, len(ContactFields))
	for i, f := range ContactFields {
		keys[i] = f.Key
	}
	return keys
}

// DefinitionFor looks up a field definition by key.
func DefinitionFor(key string) (FieldDefinition, bool) {
	for _, f := range ContactFields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// ABOUTME: Prompt construction for contact extraction
// ABOUTME: Encodes the anti-fabrication rules the model must follow
package extract

import (
	"encoding/json"
	"strings"

	"github.com/harperreed/cardsnap/models"
)

// buildPrompt assembles the instruction text sent alongside the media.
// The ordering matters less than the rules: the model must never invent an
// age range or first impression, and never touch the derived due date.
func buildPrompt(prior *models.ContactRecord) string {
	var b strings.Builder

	b.WriteString("Extract contact information and map it to the fields.")

	if prior != nil {
		existing, _ := json.Marshal(prior)
		b.WriteString("\n\nExisting Data JSON: ")
		b.Write(existing)
		b.WriteString("\nUpdate the existing data with the provided input. Merge information intelligently. If the input contradicts the existing data, trust the new input.")
	} else {
		b.WriteString("\nIf a field is not present, leave it as an empty string.")
	}

	b.WriteString("\nFor 'meetWhen', try to infer the date or context.")
	b.WriteString("\nFor 'notes', summarize the bio, skills, or spoken context.")
	b.WriteString("\nFor 'ageRange', DO NOT GUESS based on appearance. Only fill this if explicit age information is available. Otherwise leave EMPTY.")
	b.WriteString("\nFor 'school', extract university or business school (e.g. Wharton, HBS) if visible.")
	b.WriteString("\nFor 'firstImpression', ONLY fill this if explicitly stated or strongly implied by specific visual cues. If unsure or generic, leave EMPTY.")
	b.WriteString("\nDo NOT extract Graduation Year.")
	b.WriteString("\nDo NOT set nextContactDue, this is calculated automatically.")
	b.WriteString("\nIf audio is provided, transcribe relevant details into the fields (e.g. 'This is John from Acme' -> firstName: John, company: Acme).")

	return b.String()
}

// ABOUTME: Recurrence date calculation for contact follow-ups
// ABOUTME: Computes the next contact due date from last contact and frequency
package models

import (
	"strings"
	"time"
	"unicode"
)

// ComputeNextDue adds a frequency-derived number of calendar months to a
// YYYY-MM-DD date and returns the result in the same form. Month addition
// uses standard calendar normalization (Jan 31 + 1 month rolls into March).
// Any unparsable input degrades to "" rather than an error.
func ComputeNextDue(lastContact, frequency string) string {
	if lastContact == "" {
		return ""
	}

	d, err := time.Parse("2006-01-02", lastContact)
	if err != nil {
		return ""
	}

	return d.AddDate(0, frequencyMonths(frequency), 0).Format("2006-01-02")
}

// frequencyMonths extracts a month increment from free-form frequency text.
// The first run of digits wins; otherwise "month" means 1, "year" means 12,
// and anything else falls back to 4.
func frequencyMonths(frequency string) int {
	if n, ok := firstNumber(frequency); ok {
		return n
	}

	lower := strings.ToLower(frequency)
	if strings.Contains(lower, "month") {
		return 1
	}
	if strings.Contains(lower, "year") {
		return 12
	}
	return 4
}

func firstNumber(s string) (int, bool) {
	n := 0
	found := false
	for _, r := range s {
		if unicode.IsDigit(r) {
			n = n*10 + int(r-'0')
			found = true
			continue
		}
		if found {
			break
		}
	}
	return n, found
}

// ABOUTME: Extraction collaborator boundary
// ABOUTME: Defines the request shape and interface for media-to-record extraction
package extract

import (
	"context"

	"github.com/harperreed/cardsnap/capture"
	"github.com/harperreed/cardsnap/models"
)

// Request carries encoded media and optional prior state into an extraction.
type Request struct {
	// Images are business card or profile photos, zero or more.
	Images []capture.Media

	// Audio is an optional voice note.
	Audio *capture.Media

	// Prior, when set, asks the model to merge new input into existing
	// data rather than extract from scratch.
	Prior *models.ContactRecord
}

// HasMedia reports whether the request carries anything to analyze.
func (r Request) HasMedia() bool {
	return len(r.Images) > 0 || r.Audio != nil
}

// Extractor turns captured media into a partial contact record. A failure
// means no partial result may be applied; callers surface it and leave the
// prior record untouched.
type Extractor interface {
	Extract(ctx context.Context, req Request) (models.ExtractionResult, error)
}

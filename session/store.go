// ABOUTME: Session state store for one capture flow
// ABOUTME: Owns the record, media buffers, and the frozen missing-field partition
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/harperreed/cardsnap/capture"
	"github.com/harperreed/cardsnap/models"
)

// Status is the capture flow phase.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusAnalyzing Status = "analyzing"
	StatusReview    Status = "review"
	StatusSaving    Status = "saving"
	StatusSuccess   Status = "success"
)

// Store holds all mutable state for a capture session behind a single
// lock. The app has one user, so there is one Store; every mutation goes
// through a method here rather than ambient globals.
type Store struct {
	mu sync.Mutex

	id     uuid.UUID
	status Status
	record models.ContactRecord

	images []capture.Media
	audio  *capture.Media

	// initiallyMissing partitions the review form into "extracted" and
	// "missing" sections. It freezes the first time the partition is
	// requested and never updates as the user fills fields in.
	initiallyMissing []string
	missingFrozen    bool

	// updating guards concurrent smart-update triggers.
	updating bool
}

// NewStore returns a store holding a fresh session.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset discards all session state and starts a new session.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = uuid.New()
	s.status = StatusIdle
	s.record = models.NewContactRecord()
	s.images = nil
	s.audio = nil
	s.initiallyMissing = nil
	s.missingFrozen = false
	s.updating = false
}

// ID returns the current session's identifier.
func (s *Store) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Status returns the current flow phase.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetStatus moves the flow to a new phase.
func (s *Store) SetStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Record returns a copy of the current record.
func (s *Store) Record() models.ContactRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// SetField applies a direct user edit. Read-only and unknown keys are
// rejected, as is any edit after the record has been persisted. Edits to
// lastContact or contactFrequency recompute the derived due date.
func (s *Store) SetField(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusSuccess {
		return false
	}
	if def, ok := models.DefinitionFor(key); !ok || def.ReadOnly {
		return false
	}

	s.record.SetField(key, value)
	if key == models.FieldLastContact || key == models.FieldContactFrequency {
		s.record.NextContactDue = models.ComputeNextDue(s.record.LastContact, s.record.ContactFrequency)
	}
	return true
}

// ApplyExtraction merges an extraction result into the record and returns
// the merged record. It is a no-op once the record has been persisted.
func (s *Store) ApplyExtraction(result models.ExtractionResult) models.ContactRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusSuccess {
		s.record = models.Merge(s.record, result)
	}
	return s.record
}

// AddImage buffers a captured image and returns its index.
func (s *Store) AddImage(m capture.Media) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, m)
	return len(s.images) - 1
}

// RemoveImage drops a buffered image by index.
func (s *Store) RemoveImage(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.images) {
		return
	}
	s.images = append(s.images[:index], s.images[index+1:]...)
}

// Images returns a copy of the buffered images.
func (s *Store) Images() []capture.Media {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]capture.Media, len(s.images))
	copy(out, s.images)
	return out
}

// ClearMedia empties both media buffers, typically after an analyze.
func (s *Store) ClearMedia() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = nil
	s.audio = nil
}

// SetAudio buffers the voice note, replacing any previous one.
func (s *Store) SetAudio(m capture.Media) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio = &m
}

// Audio returns the buffered voice note, or nil.
func (s *Store) Audio() *capture.Media {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.audio == nil {
		return nil
	}
	clip := *s.audio
	return &clip
}

// ReviewPartition splits the catalog keys into extracted and initially
// missing sections. The split freezes from the live record on first call:
// filling a missing field later does not move it between sections. The
// freeze point is the first render of the review view, so an extraction
// that lands before it shapes the partition.
func (s *Store) ReviewPartition() (extracted, missing []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.missingFrozen {
		s.initiallyMissing = models.MissingFields(s.record)
		s.missingFrozen = true
	}

	missingSet := make(map[string]bool, len(s.initiallyMissing))
	for _, key := range s.initiallyMissing {
		missingSet[key] = true
	}

	for _, key := range models.FieldKeys() {
		if missingSet[key] {
			missing = append(missing, key)
		} else {
			extracted = append(extracted, key)
		}
	}
	return extracted, missing
}

// Completeness returns the live filled-field percentage.
func (s *Store) Completeness() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Completeness(s.record)
}

// TryBeginUpdate marks a smart update in flight. It fails when one is
// already outstanding.
func (s *Store) TryBeginUpdate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updating {
		return false
	}
	s.updating = true
	return true
}

// EndUpdate clears the in-flight smart update flag.
func (s *Store) EndUpdate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = false
}

// Updating reports whether a smart update is in flight.
func (s *Store) Updating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating
}

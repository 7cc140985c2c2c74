// ABOUTME: Capture MCP tool handlers
// ABOUTME: Implements extract_contact, save_contact, compute_next_due, and archive tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/cardsnap/capture"
	"github.com/harperreed/cardsnap/config"
	"github.com/harperreed/cardsnap/db"
	"github.com/harperreed/cardsnap/extract"
	"github.com/harperreed/cardsnap/models"
	"github.com/harperreed/cardsnap/sheet"
)

type CaptureHandlers struct {
	db        *sql.DB
	extractor extract.Extractor
	sheets    *sheet.Client
	settings  *config.Settings
}

func NewCaptureHandlers(database *sql.DB, extractor extract.Extractor, sheets *sheet.Client, settings *config.Settings) *CaptureHandlers {
	return &CaptureHandlers{
		db:        database,
		extractor: extractor,
		sheets:    sheets,
		settings:  settings,
	}
}

type ExtractContactInput struct {
	ImagePaths []string          `json:"image_paths,omitempty" jsonschema:"Paths to business card or profile photos"`
	AudioPath  string            `json:"audio_path,omitempty" jsonschema:"Path to a voice note audio file"`
	Prior      map[string]string `json:"prior,omitempty" jsonschema:"Existing contact fields to merge new input into"`
}

type ExtractContactOutput struct {
	Extracted    map[string]string `json:"extracted"`
	Record       map[string]string `json:"record"`
	Completeness int               `json:"completeness"`
}

func (h *CaptureHandlers) ExtractContact(ctx context.Context, request *mcp.CallToolRequest, input ExtractContactInput) (*mcp.CallToolResult, ExtractContactOutput, error) {
	if len(input.ImagePaths) == 0 && input.AudioPath == "" {
		return nil, ExtractContactOutput{}, fmt.Errorf("at least one image or audio path is required")
	}

	req := extract.Request{}
	for _, path := range input.ImagePaths {
		media, err := capture.FromFile(path)
		if err != nil {
			return nil, ExtractContactOutput{}, fmt.Errorf("failed to load image: %w", err)
		}
		req.Images = append(req.Images, media)
	}
	if input.AudioPath != "" {
		media, err := capture.FromFile(input.AudioPath)
		if err != nil {
			return nil, ExtractContactOutput{}, fmt.Errorf("failed to load audio: %w", err)
		}
		req.Audio = &media
	}

	prior := models.NewContactRecord()
	if len(input.Prior) > 0 {
		prior = models.RecordFromMap(input.Prior)
		req.Prior = &prior
	}

	result, err := h.extractor.Extract(ctx, req)
	if err != nil {
		return nil, ExtractContactOutput{}, fmt.Errorf("extraction failed: %w", err)
	}

	merged := models.Merge(prior, result)

	return nil, ExtractContactOutput{
		Extracted:    result,
		Record:       merged.Map(),
		Completeness: models.Completeness(merged),
	}, nil
}

type ComputeNextDueInput struct {
	LastContact string `json:"last_contact" jsonschema:"Last contact date in YYYY-MM-DD form"`
	Frequency   string `json:"frequency,omitempty" jsonschema:"Contact frequency phrase, e.g. 'Every 3 months'"`
}

type ComputeNextDueOutput struct {
	NextContactDue string `json:"next_contact_due"`
}

func (h *CaptureHandlers) ComputeNextDue(_ context.Context, request *mcp.CallToolRequest, input ComputeNextDueInput) (*mcp.CallToolResult, ComputeNextDueOutput, error) {
	return nil, ComputeNextDueOutput{
		NextContactDue: models.ComputeNextDue(input.LastContact, input.Frequency),
	}, nil
}

type SaveContactInput struct {
	Record map[string]string `json:"record" jsonschema:"Contact fields to save (unknown keys are ignored)"`
}

type SaveContactOutput struct {
	CaptureID string `json:"capture_id"`
	Name      string `json:"name"`
	Delivery  string `json:"delivery"`
}

func (h *CaptureHandlers) SaveContact(ctx context.Context, request *mcp.CallToolRequest, input SaveContactInput) (*mcp.CallToolResult, SaveContactOutput, error) {
	if len(input.Record) == 0 {
		return nil, SaveContactOutput{}, fmt.Errorf("record is required")
	}

	record := models.RecordFromMap(input.Record)
	record.NextContactDue = models.ComputeNextDue(record.LastContact, record.ContactFrequency)

	delivery := "skipped: no webhook endpoint configured"
	if h.settings.Connected() {
		if err := h.sheets.Append(ctx, h.settings.WebhookURL, record); err != nil {
			return nil, SaveContactOutput{}, fmt.Errorf("failed to send record to sheet: %w", err)
		}
		// The webhook cannot confirm delivery; this is the whole truth.
		delivery = "optimistic"
	}

	archived := &db.Capture{SessionID: uuid.New(), Record: record}
	if err := db.CreateCapture(h.db, archived); err != nil {
		return nil, SaveContactOutput{}, fmt.Errorf("failed to archive capture: %w", err)
	}

	return nil, SaveContactOutput{
		CaptureID: archived.ID,
		Name:      record.DisplayName(),
		Delivery:  delivery,
	}, nil
}

type ListCapturesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (name, company, or email)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type CaptureOutput struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Record    map[string]string `json:"record"`
	CreatedAt string            `json:"created_at"`
}

type ListCapturesOutput struct {
	Captures []CaptureOutput `json:"captures"`
}

func (h *CaptureHandlers) ListCaptures(_ context.Context, request *mcp.CallToolRequest, input ListCapturesInput) (*mcp.CallToolResult, ListCapturesOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	captures, err := db.SearchCaptures(h.db, input.Query, limit)
	if err != nil {
		return nil, ListCapturesOutput{}, fmt.Errorf("failed to list captures: %w", err)
	}

	output := ListCapturesOutput{}
	for _, c := range captures {
		output.Captures = append(output.Captures, captureToOutput(&c))
	}
	return nil, output, nil
}

type GetCaptureInput struct {
	ID string `json:"id" jsonschema:"Capture ID"`
}

func (h *CaptureHandlers) GetCapture(_ context.Context, request *mcp.CallToolRequest, input GetCaptureInput) (*mcp.CallToolResult, CaptureOutput, error) {
	if input.ID == "" {
		return nil, CaptureOutput{}, fmt.Errorf("id is required")
	}

	archived, err := db.GetCapture(h.db, input.ID)
	if err != nil {
		return nil, CaptureOutput{}, fmt.Errorf("failed to get capture: %w", err)
	}
	if archived == nil {
		return nil, CaptureOutput{}, fmt.Errorf("capture not found: %s", input.ID)
	}

	return nil, captureToOutput(archived), nil
}

type ListFieldsOutput struct {
	Fields []models.FieldDefinition `json:"fields"`
}

func (h *CaptureHandlers) ListFields(_ context.Context, request *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, ListFieldsOutput, error) {
	return nil, ListFieldsOutput{Fields: models.ContactFields}, nil
}

func captureToOutput(c *db.Capture) CaptureOutput {
	return CaptureOutput{
		ID:        c.ID,
		Name:      c.Record.DisplayName(),
		Record:    c.Record.Map(),
		CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

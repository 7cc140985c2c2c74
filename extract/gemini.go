// ABOUTME: Gemini-backed extraction client
// ABOUTME: Sends media as inline parts and parses structured JSON responses
package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/harperreed/cardsnap/models"
)

// DefaultModel is the multimodal model used for extraction.
const DefaultModel = "gemini-3-flash-preview"

// GeminiExtractor implements Extractor against the Gemini API.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates an extractor with the default model.
func NewGeminiExtractor(ctx context.Context, apiKey string) (*GeminiExtractor, error) {
	return NewGeminiExtractorWithModel(ctx, apiKey, DefaultModel)
}

// NewGeminiExtractorWithModel creates an extractor with a custom model.
func NewGeminiExtractorWithModel(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY)")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiExtractor{client: client, model: model}, nil
}

// Extract sends the request media and prompt to Gemini and parses the
// structured JSON response into a partial record.
func (e *GeminiExtractor) Extract(ctx context.Context, req Request) (models.ExtractionResult, error) {
	if !req.HasMedia() {
		return nil, fmt.Errorf("nothing to analyze: no images or audio provided")
	}

	var parts []*genai.Part
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIME))
	}
	if req.Audio != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Audio.Data, req.Audio.MIME))
	}
	parts = append(parts, genai.NewPartFromText(buildPrompt(req.Prior)))

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   extractionSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no data extracted")
	}

	return parseExtraction([]byte(text))
}

// extractionSchema builds the structured-output schema from the field
// catalog. nextContactDue is deliberately absent: it is derived locally
// and the model is told never to set it.
func extractionSchema() *genai.Schema {
	properties := make(map[string]*genai.Schema)
	for _, f := range models.ContactFields {
		if f.Key == models.FieldNextContactDue {
			continue
		}
		properties[f.Key] = &genai.Schema{
			Type:        genai.TypeString,
			Description: f.Hint,
		}
	}

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   []string{models.FieldFirstName, models.FieldLastName},
	}
}

// parseExtraction decodes the model's JSON object into an ExtractionResult,
// keeping only non-empty string values for known keys and never admitting
// nextContactDue.
func parseExtraction(data []byte) (models.ExtractionResult, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	result := make(models.ExtractionResult)
	for key, value := range raw {
		if key == models.FieldNextContactDue {
			continue
		}
		if _, known := models.DefinitionFor(key); !known {
			continue
		}
		if s, ok := value.(string); ok && s != "" {
			result[key] = s
		}
	}

	return result, nil
}

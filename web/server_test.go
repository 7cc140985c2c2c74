// ABOUTME: Tests for the web UI server
// ABOUTME: Drives the HTTP handlers with a fake extractor and temp database
package web

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/cardsnap/config"
	"github.com/harperreed/cardsnap/db"
	"github.com/harperreed/cardsnap/extract"
	"github.com/harperreed/cardsnap/models"
	"github.com/harperreed/cardsnap/session"
	"github.com/harperreed/cardsnap/sheet"
)

type fakeExtractor struct {
	result  models.ExtractionResult
	err     error
	lastReq extract.Request
}

func (f *fakeExtractor) Extract(_ context.Context, req extract.Request) (models.ExtractionResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func setupServer(t *testing.T, settings *config.Settings, extractor extract.Extractor) *Server {
	t.Helper()

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	if settings == nil {
		settings = &config.Settings{}
	}

	server, err := NewServer(database, extractor, sheet.NewClientWithOptions(http.DefaultClient, 0), settings)
	require.NoError(t, err)
	return server
}

func imageUpload(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="images"; filename="card.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func analyze(t *testing.T, server *Server) {
	t.Helper()

	body, contentType := imageUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestCapturePageRenders(t *testing.T) {
	server := setupServer(t, nil, &fakeExtractor{})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Capture a contact")
	assert.Contains(t, rec.Body.String(), "No sheet connected")
}

func TestAnalyzeMovesToReview(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{
		"firstName": "Ada",
		"company":   "Analytical Engines",
	}}
	server := setupServer(t, nil, extractor)

	analyze(t, server)

	assert.Equal(t, session.StatusReview, server.session.Status())
	assert.Equal(t, "Ada", server.session.Record().FirstName)
	require.Len(t, extractor.lastReq.Images, 1)
	assert.Equal(t, "image/png", extractor.lastReq.Images[0].MIME)

	// The capture page now redirects to review.
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/review", rec.Header().Get("Location"))
}

func TestAnalyzeWithoutMediaFails(t *testing.T) {
	server := setupServer(t, nil, &fakeExtractor{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeExtractionFailure(t *testing.T) {
	server := setupServer(t, nil, &fakeExtractor{err: assert.AnError})

	body, contentType := imageUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, session.StatusIdle, server.session.Status())
}

func TestReviewPageShowsSections(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{"firstName": "Ada"}}
	server := setupServer(t, nil, extractor)
	analyze(t, server)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/review", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "Extracted")
	assert.Contains(t, page, "Still missing")
	assert.Contains(t, page, "Ada")
	assert.Contains(t, page, "Completeness:")
}

func TestReviewRedirectsWhenIdle(t *testing.T) {
	server := setupServer(t, nil, &fakeExtractor{})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/review", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestReviewFieldEdit(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{"firstName": "Ada"}}
	server := setupServer(t, nil, extractor)
	analyze(t, server)

	form := strings.NewReader("key=email&value=ada%40example.com")
	req := httptest.NewRequest(http.MethodPost, "/review/field", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Completeness:")
	assert.Equal(t, "ada@example.com", server.session.Record().Email)
}

func TestReviewFieldRejectsReadOnly(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{"firstName": "Ada"}}
	server := setupServer(t, nil, extractor)
	analyze(t, server)

	form := strings.NewReader("key=nextContactDue&value=2030-01-01")
	req := httptest.NewRequest(http.MethodPost, "/review/field", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveArchivesAndPostsWebhook(t *testing.T) {
	received := make(chan string, 1)
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- string(body)
	}))
	defer webhook.Close()

	extractor := &fakeExtractor{result: models.ExtractionResult{"firstName": "Ada"}}
	server := setupServer(t, &config.Settings{WebhookURL: webhook.URL}, extractor)
	analyze(t, server)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/save", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, session.StatusSuccess, server.session.Status())
	assert.Contains(t, <-received, "Ada")

	count, err := db.CountCaptures(server.db)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveWithoutWebhookArchivesOnly(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{"firstName": "Ada"}}
	server := setupServer(t, nil, extractor)
	analyze(t, server)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/save", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)

	count, err := db.CountCaptures(server.db)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestResetStartsOver(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{"firstName": "Ada"}}
	server := setupServer(t, nil, extractor)
	analyze(t, server)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reset", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, session.StatusIdle, server.session.Status())
	assert.Empty(t, server.session.Record().FirstName)
}

func TestHistoryPage(t *testing.T) {
	server := setupServer(t, nil, &fakeExtractor{})

	record := models.NewContactRecord()
	record.FirstName = "Grace"
	record.Company = "Eckert-Mauchly"
	capture := &db.Capture{SessionID: server.session.ID(), Record: record}
	require.NoError(t, db.CreateCapture(server.db, capture))

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Grace")
	assert.Contains(t, rec.Body.String(), "Eckert-Mauchly")
}

func TestSettingsPageShowsScript(t *testing.T) {
	server := setupServer(t, nil, &fakeExtractor{})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "appendRow")
	assert.Contains(t, rec.Body.String(), "Web app URL")
}

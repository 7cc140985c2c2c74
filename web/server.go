// ABOUTME: Web UI server with embedded templates
// ABOUTME: Serves the capture, review, history, and settings pages at localhost:8080
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/harperreed/cardsnap/capture"
	"github.com/harperreed/cardsnap/config"
	"github.com/harperreed/cardsnap/db"
	"github.com/harperreed/cardsnap/extract"
	"github.com/harperreed/cardsnap/models"
	"github.com/harperreed/cardsnap/session"
	"github.com/harperreed/cardsnap/sheet"
)

//go:embed templates/*
var templatesFS embed.FS

// maxUploadBytes caps one multipart upload (photos plus a voice note)
const maxUploadBytes = 32 << 20

type Server struct {
	db        *sql.DB
	templates *template.Template
	session   *session.Store
	extractor extract.Extractor
	sheets    *sheet.Client
	settings  *config.Settings
}

func NewServer(database *sql.DB, extractor extract.Extractor, sheets *sheet.Client, settings *config.Settings) (*Server, error) {
	funcMap := template.FuncMap{
		"definition": func(key string) models.FieldDefinition {
			def, _ := models.DefinitionFor(key)
			return def
		},
		"dict": func(values ...interface{}) map[string]interface{} {
			m := make(map[string]interface{}, len(values)/2)
			for i := 0; i+1 < len(values); i += 2 {
				key, _ := values[i].(string)
				m[key] = values[i+1]
			}
			return m
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		db:        database,
		templates: tmpl,
		session:   session.NewStore(),
		extractor: extractor,
		sheets:    sheets,
		settings:  settings,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleCapture)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/review", s.handleReview)
	mux.HandleFunc("/review/field", s.handleReviewField)
	mux.HandleFunc("/update", s.handleUpdate)
	mux.HandleFunc("/save", s.handleSave)
	mux.HandleFunc("/reset", s.handleReset)
	mux.HandleFunc("/history", s.handleHistory)
	mux.HandleFunc("/settings", s.handleSettings)

	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting web server at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		log.Printf("Template error rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if s.session.Status() == session.StatusReview {
		http.Redirect(w, r, "/review", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Title":           "Capture",
		"ContentTemplate": "capture-content",
		"ImageCount":      len(s.session.Images()),
		"HasAudio":        s.session.Audio() != nil,
		"Connected":       s.settings.Connected(),
	}

	s.renderTemplate(w, "layout.html", data)
}

// readUpload collects photos and an optional voice note from a
// multipart form. The voice note arrives as a data URL recorded in the
// browser.
func (s *Server) readUpload(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("failed to parse upload: %w", err)
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			f, err := header.Open()
			if err != nil {
				return fmt.Errorf("failed to open upload: %w", err)
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return fmt.Errorf("failed to read upload: %w", err)
			}

			media := capture.FromBytes(data, header.Header.Get("Content-Type"))
			if !media.IsImage() {
				return fmt.Errorf("%s: not an image", header.Filename)
			}
			s.session.AddImage(media)
		}
	}

	if audioData := r.FormValue("audio"); audioData != "" {
		media, err := capture.ParseDataURL(audioData, "audio/webm")
		if err != nil {
			return fmt.Errorf("failed to decode voice note: %w", err)
		}
		s.session.SetAudio(media)
	}

	return nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.readUpload(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := extract.Request{
		Images: s.session.Images(),
		Audio:  s.session.Audio(),
	}
	if !req.HasMedia() {
		http.Error(w, "Add a photo or voice note first", http.StatusBadRequest)
		return
	}

	s.session.SetStatus(session.StatusAnalyzing)

	result, err := s.extractor.Extract(r.Context(), req)
	if err != nil {
		s.session.SetStatus(session.StatusIdle)
		http.Error(w, fmt.Sprintf("Extraction failed: %v", err), http.StatusBadGateway)
		return
	}

	s.session.ApplyExtraction(result)
	s.session.SetStatus(session.StatusReview)

	http.Redirect(w, r, "/review", http.StatusSeeOther)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	if s.session.Status() != session.StatusReview && s.session.Status() != session.StatusSuccess {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	extracted, missing := s.session.ReviewPartition()
	record := s.session.Record()

	data := map[string]interface{}{
		"Title":           "Review",
		"ContentTemplate": "review-content",
		"Record":          record.Map(),
		"Extracted":       extracted,
		"Missing":         missing,
		"Completeness":    s.session.Completeness(),
		"Saved":           s.session.Status() == session.StatusSuccess,
		"Updating":        s.session.Updating(),
		"Connected":       s.settings.Connected(),
		"SheetViewURL":    s.settings.SheetViewURL,
	}

	s.renderTemplate(w, "layout.html", data)
}

// handleReviewField applies one field edit and returns the refreshed
// status bar partial for HTMX swaps
func (s *Server) handleReviewField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := r.FormValue("key")
	value := r.FormValue("value")
	if !s.session.SetField(key, value) {
		http.Error(w, "Unknown or read-only field", http.StatusBadRequest)
		return
	}

	record := s.session.Record()
	data := map[string]interface{}{
		"Completeness":   s.session.Completeness(),
		"NextContactDue": record.NextContactDue,
	}
	s.renderTemplate(w, "status-bar", data)
}

// handleUpdate runs another extraction pass over newly added media,
// merging into the record under review. One update at a time.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.session.TryBeginUpdate() {
		http.Error(w, "An update is already running", http.StatusConflict)
		return
	}
	defer s.session.EndUpdate()

	s.session.ClearMedia()
	if err := s.readUpload(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record := s.session.Record()
	req := extract.Request{
		Images: s.session.Images(),
		Audio:  s.session.Audio(),
		Prior:  &record,
	}
	if !req.HasMedia() {
		http.Error(w, "Add a photo or voice note first", http.StatusBadRequest)
		return
	}

	result, err := s.extractor.Extract(r.Context(), req)
	if err != nil {
		http.Error(w, fmt.Sprintf("Extraction failed: %v", err), http.StatusBadGateway)
		return
	}

	s.session.ApplyExtraction(result)
	http.Redirect(w, r, "/review", http.StatusSeeOther)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.session.Status() != session.StatusReview {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	record := s.session.Record()
	s.session.SetStatus(session.StatusSaving)

	if s.settings.Connected() {
		if err := s.sheets.Append(r.Context(), s.settings.WebhookURL, record); err != nil {
			s.session.SetStatus(session.StatusReview)
			http.Error(w, fmt.Sprintf("Failed to send record to sheet: %v", err), http.StatusBadGateway)
			return
		}
	}

	archived := &db.Capture{SessionID: s.session.ID(), Record: record}
	if err := db.CreateCapture(s.db, archived); err != nil {
		s.session.SetStatus(session.StatusReview)
		http.Error(w, fmt.Sprintf("Failed to archive capture: %v", err), http.StatusInternalServerError)
		return
	}

	s.session.SetStatus(session.StatusSuccess)
	http.Redirect(w, r, "/review", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.session.Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	captures, err := db.SearchCaptures(s.db, query, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	type CaptureView struct {
		ID       string
		Name     string
		Company  string
		NextDue  string
		SavedAt  string
	}

	var views []CaptureView
	for _, c := range captures {
		views = append(views, CaptureView{
			ID:      c.ID,
			Name:    c.Record.DisplayName(),
			Company: c.Record.Company,
			NextDue: c.Record.NextContactDue,
			SavedAt: c.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	data := map[string]interface{}{
		"Title":           "History",
		"ContentTemplate": "history-content",
		"Captures":        views,
		"Query":           query,
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if webhook := r.FormValue("webhook_url"); webhook != s.settings.WebhookURL {
			if err := s.settings.SetWebhookURL(webhook); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		if view := r.FormValue("sheet_view_url"); view != s.settings.SheetViewURL {
			if err := s.settings.SetSheetViewURL(view); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Title":           "Settings",
		"ContentTemplate": "settings-content",
		"WebhookURL":      s.settings.WebhookURL,
		"SheetViewURL":    s.settings.SheetViewURL,
		"Connected":       s.settings.Connected(),
		"Script":          sheet.AppsScript(),
	}

	s.renderTemplate(w, "layout.html", data)
}

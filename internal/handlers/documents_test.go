package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
	"github.com/gorilla/mux"
)

type fakeService struct {
	maxSize   int64
	lastReq   *models.AnalyzeRequest
	lastBody  string
	lastLimit int
	err       error
}

func (s *fakeService) AnalyzeDocument(_ context.Context, req *models.AnalyzeRequest) (*models.Analysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastReq = req
	data, _ := io.ReadAll(req.File.Content)
	s.lastBody = string(data)
	return &models.Analysis{ID: "new-id", Metadata: models.MetadataRecord{FileName: req.File.Name}}, nil
}

func (s *fakeService) GetAnalysis(_ context.Context, id string) (*models.Analysis, error) {
	if id != "known" {
		return nil, utils.NewNotFoundError("Analysis not found")
	}
	return &models.Analysis{ID: id}, nil
}

func (s *fakeService) ListAnalyses(_ context.Context, limit int) ([]models.AnalysisSummary, error) {
	s.lastLimit = limit
	return []models.AnalysisSummary{{ID: "a"}, {ID: "b"}}, nil
}

func (s *fakeService) ExportMetadata(_ context.Context, id string) (*models.ExportFile, error) {
	if id != "known" {
		return nil, utils.NewNotFoundError("Analysis not found")
	}
	return &models.ExportFile{
		FileName:    "report_metadata.json",
		ContentType: "application/json; charset=utf-8",
		Data:        []byte(`{"file_name": "report.pdf"}`),
	}, nil
}

func (s *fakeService) DownloadOriginal(_ context.Context, id string) (*models.ExportFile, error) {
	switch id {
	case "known":
		return &models.ExportFile{FileName: "report.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}, nil
	case "unarchived":
		return nil, utils.NewNotFoundError("Original file was not archived")
	default:
		return nil, utils.NewNotFoundError("Analysis not found")
	}
}

func (s *fakeService) Formats() models.FormatsResponse {
	return models.FormatsResponse{
		Extensions:       []string{".pdf", ".txt"},
		MaxFileSize:      "1 MB",
		MaxFileSizeBytes: s.maxSize,
	}
}

func newTestRouter(svc *fakeService) http.Handler {
	h := NewDocumentHandler(svc, utils.NopLogger())
	r := mux.NewRouter()
	r.HandleFunc("/analyze", h.AnalyzeDocument).Methods(http.MethodPost)
	r.HandleFunc("/documents", h.ListDocuments).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id}", h.GetDocument).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id}/export", h.ExportDocument).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id}/original", h.DownloadOriginal).Methods(http.MethodGet)
	r.HandleFunc("/formats", h.Formats).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	return r
}

func multipartRequest(t *testing.T, target, field, name, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	} else {
		mw.WriteField("note", "no file here")
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func TestAnalyzeDocument(t *testing.T) {
	svc := &fakeService{maxSize: 1 << 20}
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, multipartRequest(t, "/analyze", "file", "notes.txt", "hello world"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.lastReq.File.Name != "notes.txt" || svc.lastReq.File.SizeBytes != 11 {
		t.Errorf("request = %+v", svc.lastReq.File)
	}
	if svc.lastBody != "hello world" || !svc.lastReq.WithInsights {
		t.Errorf("body = %q, insights = %v", svc.lastBody, svc.lastReq.WithInsights)
	}

	var got models.Analysis
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "new-id" {
		t.Errorf("ID = %q", got.ID)
	}
}

func TestAnalyzeDocumentInsightsFlag(t *testing.T) {
	svc := &fakeService{maxSize: 1 << 20}

	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, multipartRequest(t, "/analyze?insights=false", "file", "a.txt", "x"))
	if rec.Code != http.StatusCreated || svc.lastReq.WithInsights {
		t.Errorf("status = %d, insights = %v", rec.Code, svc.lastReq.WithInsights)
	}

	rec = httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, multipartRequest(t, "/analyze?insights=maybe", "file", "a.txt", "x"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid flag status = %d", rec.Code)
	}
}

func TestAnalyzeDocumentMissingFile(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&fakeService{maxSize: 1 << 20}).ServeHTTP(rec, multipartRequest(t, "/analyze", "", "", ""))

	if rec.Code != http.StatusBadRequest || decodeError(t, rec) != "No file provided" {
		t.Errorf("status = %d, error = %q", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeDocumentNotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("plain"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	newTestRouter(&fakeService{maxSize: 1 << 20}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAnalyzeDocumentTooLarge(t *testing.T) {
	svc := &fakeService{maxSize: 10}
	content := strings.Repeat("x", multipartOverhead+100)

	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, multipartRequest(t, "/analyze", "file", "big.txt", content))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "File too large. Max size: 1 MB" {
		t.Errorf("error = %q", msg)
	}
	if svc.lastReq != nil {
		t.Error("service called for oversized request")
	}
}

func TestAnalyzeDocumentServiceError(t *testing.T) {
	svc := &fakeService{maxSize: 1 << 20, err: utils.NewUnsupportedMediaError("Unsupported format. Supported: .pdf, .txt")}
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, multipartRequest(t, "/analyze", "file", "a.gif", "GIF"))

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(decodeError(t, rec), "Unsupported format.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGetDocument(t *testing.T) {
	router := newTestRouter(&fakeService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/known", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("known status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/unknown", nil))
	if rec.Code != http.StatusNotFound || decodeError(t, rec) != "Analysis not found" {
		t.Errorf("unknown status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestListDocuments(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents?limit=5", nil))
	if rec.Code != http.StatusOK || svc.lastLimit != 5 {
		t.Fatalf("status = %d limit = %d", rec.Code, svc.lastLimit)
	}

	var body struct {
		Documents []models.AnalysisSummary `json:"documents"`
		Count     int                      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 2 || len(body.Documents) != 2 {
		t.Errorf("body = %+v", body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents?limit=many", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid limit status = %d", rec.Code)
	}
}

func TestExportDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&fakeService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/known/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=report_metadata.json" {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != `{"file_name": "report.pdf"}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDownloadOriginal(t *testing.T) {
	router := newTestRouter(&fakeService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/known/original", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=report.pdf" {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Header().Get("Content-Length") != "8" || rec.Body.String() != "%PDF-1.4" {
		t.Errorf("body = %q (length header %q)", rec.Body.String(), rec.Header().Get("Content-Length"))
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/unarchived/original", nil))
	if rec.Code != http.StatusNotFound || decodeError(t, rec) != "Original file was not archived" {
		t.Errorf("unarchived status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestFormatsAndHealth(t *testing.T) {
	router := newTestRouter(&fakeService{maxSize: 1 << 20})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/formats", nil))
	var formats models.FormatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &formats); err != nil {
		t.Fatal(err)
	}
	if formats.MaxFileSize != "1 MB" || len(formats.Extensions) != 2 {
		t.Errorf("formats = %+v", formats)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
}

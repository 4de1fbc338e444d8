package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
)

type stubService struct{}

func (stubService) AnalyzeDocument(context.Context, *models.AnalyzeRequest) (*models.Analysis, error) {
	return &models.Analysis{}, nil
}

func (stubService) GetAnalysis(_ context.Context, id string) (*models.Analysis, error) {
	return &models.Analysis{ID: id}, nil
}

func (stubService) ListAnalyses(context.Context, int) ([]models.AnalysisSummary, error) {
	return []models.AnalysisSummary{}, nil
}

func (stubService) ExportMetadata(context.Context, string) (*models.ExportFile, error) {
	return &models.ExportFile{FileName: "x_metadata.json", Data: []byte("{}")}, nil
}

func (stubService) DownloadOriginal(context.Context, string) (*models.ExportFile, error) {
	return &models.ExportFile{FileName: "x.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}, nil
}

func (stubService) Formats() models.FormatsResponse {
	return models.FormatsResponse{MaxFileSize: "300 MB", MaxFileSizeBytes: 300 << 20}
}

func TestRoutes(t *testing.T) {
	handler := NewRouter(stubService{}, utils.NopLogger())

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/api/v1/formats", http.StatusOK},
		{http.MethodGet, "/api/v1/documents", http.StatusOK},
		{http.MethodGet, "/api/v1/documents/abc", http.StatusOK},
		{http.MethodGet, "/api/v1/documents/abc/export", http.StatusOK},
		{http.MethodGet, "/api/v1/documents/abc/original", http.StatusOK},
		{http.MethodOptions, "/api/v1/documents/analyze", http.StatusNoContent},
		{http.MethodGet, "/api/v1/documents/analyze/extra/path", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/documents/abc", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCORSHeaderOnResponses(t *testing.T) {
	handler := NewRouter(stubService{}, utils.NopLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}

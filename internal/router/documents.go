package router

import (
	"net/http"

	"github.com/BerylCAtieno/document-metadata-api/internal/handlers"
	"github.com/BerylCAtieno/document-metadata-api/internal/middleware"
	"github.com/BerylCAtieno/document-metadata-api/internal/services"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(docService services.DocumentService, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	docHandler := handlers.NewDocumentHandler(docService, logger)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", docHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/formats", docHandler.Formats).Methods(http.MethodGet)

	// Document endpoints
	api.HandleFunc("/documents/analyze", docHandler.AnalyzeDocument).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/documents", docHandler.ListDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", docHandler.GetDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/export", docHandler.ExportDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/original", docHandler.DownloadOriginal).Methods(http.MethodGet)

	return r
}

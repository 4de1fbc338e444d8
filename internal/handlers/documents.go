package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/BerylCAtieno/document-metadata-api/internal/services"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
	"github.com/gorilla/mux"
)

const (
	// multipartOverhead is allowed on top of the file limit for the
	// multipart envelope and other form fields.
	multipartOverhead = 1 << 20

	// multipartMemory is kept in memory before parts spill to disk.
	multipartMemory = 32 << 20
)

type DocumentHandler struct {
	service services.DocumentService
	logger  *utils.Logger
}

func NewDocumentHandler(service services.DocumentService, logger *utils.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger,
	}
}

func (h *DocumentHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	limits := h.service.Formats()
	tooLarge := utils.NewPayloadTooLargeError("File too large. Max size: " + limits.MaxFileSize)
	maxBody := limits.MaxFileSizeBytes + multipartOverhead

	// Reject oversized requests before reading the body
	if r.ContentLength > maxBody {
		h.respondError(w, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			h.respondError(w, tooLarge)
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data").Wrap(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	withInsights := true
	if v := r.URL.Query().Get("insights"); v != "" {
		withInsights, err = strconv.ParseBool(v)
		if err != nil {
			h.respondError(w, utils.NewBadRequestError("insights must be true or false"))
			return
		}
	}

	h.logger.Info("File upload",
		"filename", header.Filename,
		"size", header.Size,
		"content_type", header.Header.Get("Content-Type"),
		"insights", withInsights)

	req := &models.AnalyzeRequest{
		File: models.UploadedFile{
			Name:      header.Filename,
			SizeBytes: header.Size,
			Content:   file,
		},
		ContentType:  header.Header.Get("Content-Type"),
		WithInsights: withInsights,
	}

	analysis, err := h.service.AnalyzeDocument(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, analysis)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.respondError(w, utils.NewBadRequestError("Document ID is required"))
		return
	}

	analysis, err := h.service.GetAnalysis(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, analysis)
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.respondError(w, utils.NewBadRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	list, err := h.service.ListAnalyses(r.Context(), limit)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"documents": list,
		"count":     len(list),
	})
}

func (h *DocumentHandler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.respondError(w, utils.NewBadRequestError("Document ID is required"))
		return
	}

	export, err := h.service.ExportMetadata(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondFile(w, export)
}

func (h *DocumentHandler) DownloadOriginal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.respondError(w, utils.NewBadRequestError("Document ID is required"))
		return
	}

	original, err := h.service.DownloadOriginal(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondFile(w, original)
}

func (h *DocumentHandler) Formats(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.Formats())
}

func (h *DocumentHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *DocumentHandler) respondFile(w http.ResponseWriter, file *models.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": file.FileName,
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		h.logger.Error("Failed to write download", "error", err, "filename", file.FileName)
	}
}

func (h *DocumentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *DocumentHandler) respondError(w http.ResponseWriter, err error) {
	appErr := utils.AsAppError(err)

	if appErr.StatusCode >= http.StatusInternalServerError {
		h.logger.Error("Request error", "status", appErr.StatusCode, "error", appErr.Message, "cause", appErr.Err)
	} else {
		h.logger.Warn("Request rejected", "status", appErr.StatusCode, "error", appErr.Message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": appErr.Message})
}

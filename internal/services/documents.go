package services

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/BerylCAtieno/document-metadata-api/internal/format"
	"github.com/BerylCAtieno/document-metadata-api/internal/metadata"
	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/BerylCAtieno/document-metadata-api/internal/pipeline"
	"github.com/BerylCAtieno/document-metadata-api/internal/repository"
	"github.com/BerylCAtieno/document-metadata-api/internal/storage"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type DocumentService interface {
	AnalyzeDocument(ctx context.Context, req *models.AnalyzeRequest) (*models.Analysis, error)
	GetAnalysis(ctx context.Context, id string) (*models.Analysis, error)
	ListAnalyses(ctx context.Context, limit int) ([]models.AnalysisSummary, error)
	ExportMetadata(ctx context.Context, id string) (*models.ExportFile, error)
	DownloadOriginal(ctx context.Context, id string) (*models.ExportFile, error)
	Formats() models.FormatsResponse
}

type documentService struct {
	repo     repository.Repository
	storage  storage.Storage
	pipeline *pipeline.Pipeline
	now      func() time.Time
	logger   *utils.Logger
}

// NewService wires the pipeline to persistence. store may be nil, in
// which case originals are not archived.
func NewService(repo repository.Repository, store storage.Storage, p *pipeline.Pipeline, logger *utils.Logger) DocumentService {
	return &documentService{
		repo:     repo,
		storage:  store,
		pipeline: p,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *documentService) AnalyzeDocument(ctx context.Context, req *models.AnalyzeRequest) (*models.Analysis, error) {
	file := req.File

	if err := s.pipeline.Validate(file); err != nil {
		s.logger.Warn("Rejected upload", "filename", file.Name, "size", file.SizeBytes, "error", err)
		return nil, validationError(err)
	}

	analysis, err := s.pipeline.Run(ctx, file, req.WithInsights)
	if err != nil {
		return nil, validationError(err)
	}

	analysis.ID = utils.GenerateID()
	analysis.CreatedAt = s.now().UTC()

	if s.storage != nil {
		key := storage.ObjectKey(analysis.ID, file.Name)
		if err := s.archive(ctx, key, req); err != nil {
			s.logger.Warn("Failed to archive original", "error", err, "s3_key", key)
		} else {
			analysis.S3Key = key
		}
	}

	if err := s.repo.Create(ctx, analysis); err != nil {
		s.logger.Error("Failed to save analysis", "error", err, "id", analysis.ID)
		if analysis.S3Key != "" {
			_ = s.storage.Delete(ctx, analysis.S3Key)
		}
		return nil, utils.NewInternalError("Failed to save analysis").Wrap(err)
	}

	s.logger.Info("Analysis stored",
		"id", analysis.ID,
		"filename", file.Name,
		"file_type", analysis.Metadata.FileType,
		"archived", analysis.S3Key != "")

	return analysis, nil
}

func (s *documentService) archive(ctx context.Context, key string, req *models.AnalyzeRequest) error {
	if _, err := req.File.Content.Seek(0, io.SeekStart); err != nil {
		return err
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.storage.Upload(ctx, key, req.File.Content, req.File.SizeBytes, contentType)
}

func (s *documentService) GetAnalysis(ctx context.Context, id string) (*models.Analysis, error) {
	analysis, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get analysis", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to retrieve analysis").Wrap(err)
	}
	if analysis == nil {
		return nil, utils.NewNotFoundError("Analysis not found")
	}

	return analysis, nil
}

// ListAnalyses clamps limit to [1, MaxListLimit], using DefaultListLimit
// when it is not positive.
func (s *documentService) ListAnalyses(ctx context.Context, limit int) ([]models.AnalysisSummary, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	list, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list analyses", "error", err)
		return nil, utils.NewInternalError("Failed to list analyses").Wrap(err)
	}

	return list, nil
}

func (s *documentService) ExportMetadata(ctx context.Context, id string) (*models.ExportFile, error) {
	analysis, err := s.GetAnalysis(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := metadata.ExportJSON(analysis.Metadata)
	if err != nil {
		s.logger.Error("Failed to export metadata", "error", err, "id", id)
		return nil, utils.NewInternalError("Failed to export metadata").Wrap(err)
	}

	return &models.ExportFile{
		FileName:    exportName(analysis.Metadata.FileName),
		ContentType: "application/json; charset=utf-8",
		Data:        data,
	}, nil
}

// DownloadOriginal returns the archived upload behind an analysis.
func (s *documentService) DownloadOriginal(ctx context.Context, id string) (*models.ExportFile, error) {
	analysis, err := s.GetAnalysis(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.storage == nil || analysis.S3Key == "" {
		return nil, utils.NewNotFoundError("Original file was not archived")
	}

	data, err := s.storage.Download(ctx, analysis.S3Key)
	if err != nil {
		s.logger.Error("Failed to download original", "error", err, "id", id, "s3_key", analysis.S3Key)
		return nil, utils.NewInternalError("Failed to retrieve original file").Wrap(err)
	}

	contentType := mime.TypeByExtension(format.Extension(analysis.Metadata.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &models.ExportFile{
		FileName:    path.Base(analysis.S3Key),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (s *documentService) Formats() models.FormatsResponse {
	return models.FormatsResponse{
		Extensions:        format.SupportedExtensions(),
		MaxFileSize:       s.pipeline.MaxFileSizeLabel(),
		MaxFileSizeBytes:  s.pipeline.MaxFileSize(),
		InsightsAvailable: s.pipeline.InsightsAvailable(),
	}
}

// exportName derives the download name from the original file name.
func exportName(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "document"
	}
	return base + "_metadata.json"
}

func validationError(err error) error {
	var verr *pipeline.ValidationError
	if !errors.As(err, &verr) {
		return utils.NewInternalError("Failed to analyze document").Wrap(err)
	}

	switch {
	case errors.Is(err, models.ErrOversizeFile):
		return utils.NewPayloadTooLargeError(verr.Reason).Wrap(err)
	case verr.Reason == pipeline.ReasonNoFile:
		return utils.NewBadRequestError(verr.Reason).Wrap(err)
	default:
		return utils.NewUnsupportedMediaError(verr.Reason).Wrap(err)
	}
}

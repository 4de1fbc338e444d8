package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, a *models.Analysis) error
	GetByID(ctx context.Context, id string) (*models.Analysis, error)
	List(ctx context.Context, limit int) ([]models.AnalysisSummary, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// analysisRow mirrors the analyses table. The nested parts of an
// analysis are stored as JSON text.
type analysisRow struct {
	ID         string    `db:"id"`
	FileName   string    `db:"file_name"`
	FileType   string    `db:"file_type"`
	FileSize   int64     `db:"file_size"`
	S3Key      string    `db:"s3_key"`
	Metadata   string    `db:"metadata"`
	Statistics string    `db:"statistics"`
	Language   string    `db:"language"`
	CreatedAt  time.Time `db:"created_at"`
}

func toRow(a *models.Analysis) (*analysisRow, error) {
	metadata, err := json.Marshal(a.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	stats, err := json.Marshal(a.Statistics)
	if err != nil {
		return nil, fmt.Errorf("encode statistics: %w", err)
	}
	lang, err := json.Marshal(a.Language)
	if err != nil {
		return nil, fmt.Errorf("encode language: %w", err)
	}

	return &analysisRow{
		ID:         a.ID,
		FileName:   a.Metadata.FileName,
		FileType:   a.Metadata.FileType,
		FileSize:   a.FileSizeBytes,
		S3Key:      a.S3Key,
		Metadata:   string(metadata),
		Statistics: string(stats),
		Language:   string(lang),
		CreatedAt:  a.CreatedAt.UTC(),
	}, nil
}

func (row *analysisRow) toAnalysis() (*models.Analysis, error) {
	a := &models.Analysis{
		ID:            row.ID,
		FileSizeBytes: row.FileSize,
		S3Key:         row.S3Key,
		CreatedAt:     row.CreatedAt,
	}

	if err := json.Unmarshal([]byte(row.Metadata), &a.Metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Statistics), &a.Statistics); err != nil {
		return nil, fmt.Errorf("decode statistics: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Language), &a.Language); err != nil {
		return nil, fmt.Errorf("decode language: %w", err)
	}

	return a, nil
}

func (r *repository) Create(ctx context.Context, a *models.Analysis) error {
	row, err := toRow(a)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO analyses (id, file_name, file_type, file_size, s3_key, metadata, statistics, language, created_at)
		VALUES (:id, :file_name, :file_type, :file_size, :s3_key, :metadata, :statistics, :language, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, row)
	return err
}

// GetByID returns nil, nil when no analysis has the given id.
func (r *repository) GetByID(ctx context.Context, id string) (*models.Analysis, error) {
	var row analysisRow

	query := `
		SELECT id, file_name, file_type, file_size, s3_key, metadata, statistics, language, created_at
		FROM analyses
		WHERE id = ?
	`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.toAnalysis()
}

// List returns the newest analyses first.
func (r *repository) List(ctx context.Context, limit int) ([]models.AnalysisSummary, error) {
	summaries := []models.AnalysisSummary{}

	query := `
		SELECT id, file_name, file_type, file_size, created_at
		FROM analyses
		ORDER BY created_at DESC, id
		LIMIT ?
	`

	if err := r.db.SelectContext(ctx, &summaries, query, limit); err != nil {
		return nil, err
	}

	return summaries, nil
}

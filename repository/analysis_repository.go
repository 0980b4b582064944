package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"legalaid-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no analysis has the requested id
var ErrNotFound = errors.New("analysis not found")

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListFilter selects a page of analyses, newest first
type ListFilter struct {
	Kind   models.AnalysisKind
	Limit  int
	Offset int
}

// Normalize clamps the page bounds into range
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// AnalysisRepository handles database operations for analyses
type AnalysisRepository struct {
	db *pgxpool.Pool
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

const analysisColumns = `id, kind, hint, input_summary, archive_path, record, status,
			error_message, created_at, updated_at, completed_at`

// Create inserts a new analysis. A zero ID is replaced with a fresh one.
func (r *AnalysisRepository) Create(ctx context.Context, a *models.Analysis) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = models.AnalysisStatusPending
	}

	query := `
		INSERT INTO analyses (
			id, kind, hint, input_summary, archive_path, record, status, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		a.ID,
		a.Kind,
		a.Hint,
		a.InputSummary,
		a.ArchivePath,
		a.Record,
		a.Status,
		a.ErrorMessage,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

// GetByID retrieves an analysis by ID
func (r *AnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = $1`

	a, err := scanAnalysis(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns a page of analyses, optionally of one kind
func (r *AnalysisRepository) List(ctx context.Context, filter ListFilter) ([]*models.Analysis, error) {
	filter = filter.Normalize()
	query := `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, string(filter.Kind), filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]*models.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// Complete stores the normalized record and marks the analysis completed
func (r *AnalysisRepository) Complete(ctx context.Context, id uuid.UUID, record *models.NormalizedRecord, archivePath *string) error {
	now := time.Now()
	query := `
		UPDATE analyses SET
			status = $2,
			record = $3,
			archive_path = COALESCE($4, archive_path),
			completed_at = $5,
			updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, models.AnalysisStatusCompleted, models.StoredRecord{NormalizedRecord: record}, archivePath, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Fail marks an analysis as failed
func (r *AnalysisRepository) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `
		UPDATE analyses SET
			status = $2,
			error_message = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.AnalysisStatusFailed, errorMessage)
	return err
}

func scanAnalysis(row pgx.Row) (*models.Analysis, error) {
	a := &models.Analysis{}
	err := row.Scan(
		&a.ID,
		&a.Kind,
		&a.Hint,
		&a.InputSummary,
		&a.ArchivePath,
		&a.Record,
		&a.Status,
		&a.ErrorMessage,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

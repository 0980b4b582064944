package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalysesSchema creates the analyses table and its indexes
const AnalysesSchema = `
CREATE TABLE IF NOT EXISTS analyses (
    id UUID PRIMARY KEY,
    kind VARCHAR(20) NOT NULL CHECK (kind IN ('document', 'legality', 'penalty')),
    hint VARCHAR(20) NOT NULL,
    input_summary TEXT NOT NULL DEFAULT '',
    archive_path TEXT,

    -- Normalized record, shape selected by hint
    record JSONB,

    status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'completed', 'failed')),
    error_message TEXT,

    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_analyses_kind_created ON analyses (kind, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses (created_at DESC);
`

// CreateSchema applies AnalysesSchema, optionally dropping the table first
func CreateSchema(ctx context.Context, db *pgxpool.Pool, drop bool) error {
	if drop {
		if _, err := db.Exec(ctx, "DROP TABLE IF EXISTS analyses CASCADE"); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	if _, err := db.Exec(ctx, AnalysesSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

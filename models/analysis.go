package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnalysisKind identifies which page of the product produced an analysis
type AnalysisKind string

const (
	KindDocument AnalysisKind = "document"
	KindLegality AnalysisKind = "legality"
	KindPenalty  AnalysisKind = "penalty"
)

// AnalysisStatus represents the status of an analysis
type AnalysisStatus string

const (
	AnalysisStatusPending   AnalysisStatus = "pending"
	AnalysisStatusCompleted AnalysisStatus = "completed"
	AnalysisStatusFailed    AnalysisStatus = "failed"
)

// StoredRecord wraps a NormalizedRecord for a JSONB column
type StoredRecord struct {
	*NormalizedRecord
}

// Value implements driver.Valuer for JSONB
func (r StoredRecord) Value() (driver.Value, error) {
	if r.NormalizedRecord == nil {
		return nil, nil
	}
	return json.Marshal(r.NormalizedRecord)
}

// Scan implements sql.Scanner for JSONB
func (r *StoredRecord) Scan(value interface{}) error {
	if value == nil {
		r.NormalizedRecord = nil
		return nil
	}

	// Handle different types that pgx might return for JSONB
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		r.NormalizedRecord = nil
		return nil
	}

	if len(bytes) == 0 {
		r.NormalizedRecord = nil
		return nil
	}

	rec := &NormalizedRecord{}
	if err := json.Unmarshal(bytes, rec); err != nil {
		return err
	}
	r.NormalizedRecord = rec
	return nil
}

// Analysis represents one request sent to the model and its normalized result
type Analysis struct {
	ID           uuid.UUID      `json:"id"`
	Kind         AnalysisKind   `json:"kind"`
	Hint         SchemaHint     `json:"hint"`
	InputSummary string         `json:"input_summary"`
	ArchivePath  *string        `json:"archive_path,omitempty"`
	Record       StoredRecord   `json:"record"`
	Status       AnalysisStatus `json:"status"`
	ErrorMessage *string        `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}

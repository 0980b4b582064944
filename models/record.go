package models

import "encoding/json"

// RecordSource records which strategy produced a NormalizedRecord
type RecordSource string

const (
	SourceEmpty     RecordSource = "empty"
	SourceJSON      RecordSource = "json"
	SourceHeuristic RecordSource = "heuristic"
)

// NormalizedRecord is the fully-defaulted result of normalizing a model reply.
// Exactly one of Document, Assessment and Penalty is set, selected by Hint.
type NormalizedRecord struct {
	Hint       SchemaHint         `json:"hint"`
	Source     RecordSource       `json:"source"`
	Document   *DocumentAnalysis  `json:"document,omitempty"`
	Assessment *LegalAssessment   `json:"assessment,omitempty"`
	Penalty    *PenaltyAssessment `json:"penalty,omitempty"`
}

// NewNormalizedRecord returns the all-defaults record for hint
func NewNormalizedRecord(hint SchemaHint) *NormalizedRecord {
	rec := &NormalizedRecord{Hint: hint, Source: SourceEmpty}
	switch hint {
	case HintLegalStatus:
		rec.Assessment = NewLegalAssessment()
	case HintPenalty:
		rec.Penalty = NewPenaltyAssessment()
	default:
		rec.Document = NewDocumentAnalysis()
	}
	return rec
}

// Payload returns whichever typed record is populated
func (r *NormalizedRecord) Payload() any {
	switch {
	case r.Assessment != nil:
		return r.Assessment
	case r.Penalty != nil:
		return r.Penalty
	default:
		return r.Document
	}
}

// PayloadJSON encodes only the typed record, in the shape the model is asked
// to produce
func (r *NormalizedRecord) PayloadJSON() ([]byte, error) {
	return json.Marshal(r.Payload())
}

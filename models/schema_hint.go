package models

import "strings"

// SchemaHint selects the record shape a model reply is normalized into
type SchemaHint string

const (
	HintFIR         SchemaHint = "fir"
	HintJudgment    SchemaHint = "judgment"
	HintPetition    SchemaHint = "petition"
	HintContract    SchemaHint = "contract"
	HintOther       SchemaHint = "other"
	HintLegalStatus SchemaHint = "legal-status"
	HintPenalty     SchemaHint = "penalty"
)

// ParseSchemaHint maps a user-supplied type to a SchemaHint.
// Unrecognized values fall back to HintOther.
func ParseSchemaHint(s string) SchemaHint {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fir":
		return HintFIR
	case "judgment", "judgement":
		return HintJudgment
	case "petition":
		return HintPetition
	case "contract":
		return HintContract
	case "legal-status", "legal_status", "legality", "isitlegal":
		return HintLegalStatus
	case "penalty":
		return HintPenalty
	default:
		return HintOther
	}
}

// IsDocument reports whether the hint describes an uploaded legal document
func (h SchemaHint) IsDocument() bool {
	switch h {
	case HintFIR, HintJudgment, HintPetition, HintContract, HintOther:
		return true
	}
	return false
}

// DocumentLabel returns the display name used for a document hint
func (h SchemaHint) DocumentLabel() string {
	switch h {
	case HintFIR:
		return "First Information Report (FIR)"
	case HintJudgment:
		return "Court Judgment"
	case HintPetition:
		return "Legal Petition"
	case HintContract:
		return "Legal Contract"
	default:
		return "Legal Document"
	}
}

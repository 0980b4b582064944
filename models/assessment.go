package models

import (
	"regexp"
	"strings"
)

// LegalStatus is the validity verdict for a described situation
type LegalStatus string

const (
	LegalStatusValid    LegalStatus = "VALID"
	LegalStatusVoid     LegalStatus = "VOID"
	LegalStatusVoidable LegalStatus = "VOIDABLE"
	LegalStatusUnknown  LegalStatus = "Unknown"
)

// LegalAssessment is the normalized answer to "is it legal?"
type LegalAssessment struct {
	Status        LegalStatus `json:"status"`
	SimpleSummary string      `json:"simpleSummary"`
	Explanation   string      `json:"explanation"`
	LegalBasis    string      `json:"legalBasis"`
	Examples      []string    `json:"examples"`
	NextSteps     []string    `json:"nextSteps"`
}

// NewLegalAssessment returns an Unknown assessment with every list initialized
func NewLegalAssessment() *LegalAssessment {
	return &LegalAssessment{
		Status:    LegalStatusUnknown,
		Examples:  []string{},
		NextSteps: []string{},
	}
}

var legalStatusWord = regexp.MustCompile(`(?i)\b(voidable|void|valid)\b`)

// ParseLegalStatus finds the verdict in free text. Text that names none of
// the verdicts yields LegalStatusUnknown.
func ParseLegalStatus(s string) LegalStatus {
	m := legalStatusWord.FindStringSubmatch(s)
	if m == nil {
		return LegalStatusUnknown
	}
	switch strings.ToUpper(m[1]) {
	case "VOIDABLE":
		return LegalStatusVoidable
	case "VOID":
		return LegalStatusVoid
	default:
		return LegalStatusValid
	}
}

// DefaultSummary is the plain-language summary shown when the model gave none
func (s LegalStatus) DefaultSummary() string {
	switch s {
	case LegalStatusValid:
		return "This situation appears to be legally valid according to Indian law."
	case LegalStatusVoid:
		return "This situation appears to be legally void according to Indian law."
	case LegalStatusVoidable:
		return "This situation appears to be voidable under certain conditions according to Indian law."
	default:
		return "This assessment requires further legal analysis."
	}
}

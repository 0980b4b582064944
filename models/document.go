package models

import "strings"

// Party represents a named participant in a legal document
type Party struct {
	Name        string `json:"name"`
	Represented string `json:"represented,omitempty"`
}

// Parties groups the participants of a document by role
type Parties struct {
	Complainant Party   `json:"complainant"`
	Accused     []Party `json:"accused"`
	Petitioners []Party `json:"petitioners"`
	Respondents []Party `json:"respondents"`
}

// DateEvent pairs a date with what happened on it
type DateEvent struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Precedent is a related case referenced by the analysis
type Precedent struct {
	Case    string `json:"case"`
	Outcome string `json:"outcome"`
}

// DocumentAnalysis is the normalized analysis of an FIR, judgment, petition,
// contract or other legal document
type DocumentAnalysis struct {
	DocumentType         string      `json:"documentType"`
	FileNumber           string      `json:"fileNumber"`
	CaseNumber           string      `json:"caseNumber"`
	Station              string      `json:"station"`
	Court                string      `json:"court"`
	IssuingAuthority     string      `json:"issuingAuthority"`
	Bench                string      `json:"bench"`
	Status               string      `json:"status"`
	Subject              string      `json:"subject"`
	JudgmentSummary      string      `json:"judgmentSummary"`
	Parties              Parties     `json:"parties"`
	Dates                []DateEvent `json:"dates"`
	Provisions           []string    `json:"provisions"`
	KeyPoints            []string    `json:"keyPoints"`
	SimpleExplanation    string      `json:"simpleExplanation"`
	HistoricalPrecedents []Precedent `json:"historicalPrecedents"`
	ActionItems          []string    `json:"actionItems"`
}

// NewDocumentAnalysis returns an analysis with every list initialized
func NewDocumentAnalysis() *DocumentAnalysis {
	return &DocumentAnalysis{
		Parties: Parties{
			Accused:     []Party{},
			Petitioners: []Party{},
			Respondents: []Party{},
		},
		Dates:                []DateEvent{},
		Provisions:           []string{},
		KeyPoints:            []string{},
		HistoricalPrecedents: []Precedent{},
		ActionItems:          []string{},
	}
}

// StatusCategory buckets a free-text document status
type StatusCategory string

const (
	StatusCategoryPending  StatusCategory = "pending"
	StatusCategoryResolved StatusCategory = "resolved"
	StatusCategoryRejected StatusCategory = "rejected"
	StatusCategoryAppeal   StatusCategory = "appeal"
	StatusCategoryUnknown  StatusCategory = "unknown"
)

// DocumentStatusCategory classifies a status such as "Pending before the
// Sessions Court" or "Bail granted"
func DocumentStatusCategory(status string) StatusCategory {
	s := strings.ToLower(status)
	switch {
	case s == "":
		return StatusCategoryUnknown
	case containsAny(s, "pending", "in progress"):
		return StatusCategoryPending
	case containsAny(s, "resolved", "completed", "granted", "approved"):
		return StatusCategoryResolved
	case containsAny(s, "rejected", "denied", "dismissed"):
		return StatusCategoryRejected
	case containsAny(s, "appeal", "review"):
		return StatusCategoryAppeal
	default:
		return StatusCategoryUnknown
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

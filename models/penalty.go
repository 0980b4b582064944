package models

// RiskLevel is the overall risk of an offense
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether r is one of the known risk levels
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// MaxSeverityScore is the top of the severity scale
const MaxSeverityScore = 10

// PenaltyAssessment is the normalized penalty prediction for an offense
type PenaltyAssessment struct {
	OffenseLevel         string    `json:"offenseLevel"`
	SeverityScore        float64   `json:"severityScore"`
	MinFine              float64   `json:"minFine"`
	MaxFine              float64   `json:"maxFine"`
	RecommendedFine      float64   `json:"recommendedFine"`
	ImprisonmentPossible bool      `json:"imprisonmentPossible"`
	ImprisonmentDuration string    `json:"imprisonmentDuration"`
	AdditionalPenalties  []string  `json:"additionalPenalties"`
	LegalReferences      []string  `json:"legalReferences"`
	CountrySpecific      string    `json:"countrySpecific"`
	ConsultRecommended   bool      `json:"consultRecommended"`
	RiskLevel            RiskLevel `json:"riskLevel"`
}

// NewPenaltyAssessment returns an assessment with every list initialized
func NewPenaltyAssessment() *PenaltyAssessment {
	return &PenaltyAssessment{
		AdditionalPenalties: []string{},
		LegalReferences:     []string{},
	}
}

// SeverityBand maps the severity score onto the low/medium/high scale
func (p *PenaltyAssessment) SeverityBand() RiskLevel {
	switch {
	case p.SeverityScore <= 3:
		return RiskLow
	case p.SeverityScore <= 6:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// FineBand is one bar of the fine comparison
type FineBand struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FineBreakdown returns the minimum, recommended and maximum fines in display order
func (p *PenaltyAssessment) FineBreakdown() []FineBand {
	return []FineBand{
		{Name: "Minimum Fine", Value: p.MinFine},
		{Name: "Recommended Fine", Value: p.RecommendedFine},
		{Name: "Maximum Fine", Value: p.MaxFine},
	}
}

package normalizer

import (
	"strings"

	"legalaid-backend/models"
)

// applyHeuristic scrapes text and projects the sections onto the record's shape
func applyHeuristic(rec *models.NormalizedRecord, text string) {
	s := scrape(text)
	switch {
	case rec.Assessment != nil:
		projectAssessment(rec.Assessment, s, text)
	case rec.Penalty != nil:
		scrapePenalty(rec.Penalty, text, s)
	default:
		projectDocument(rec.Document, s, rec.Hint)
	}
}

func projectDocument(d *models.DocumentAnalysis, s *scraped, hint models.SchemaHint) {
	d.DocumentType = hint.DocumentLabel()
	d.Parties = s.parties
	d.Dates = s.dates
	d.Provisions = s.provisions
	d.KeyPoints = s.keyPoints
	d.HistoricalPrecedents = s.precedents
	d.ActionItems = s.actionItems
	d.Subject = s.subject
	d.Status = s.status
	d.SimpleExplanation = s.explanation
	if d.SimpleExplanation == "" {
		d.SimpleExplanation = s.summary
	}
	if hint == models.HintJudgment {
		d.JudgmentSummary = s.summary
	}
}

func projectAssessment(a *models.LegalAssessment, s *scraped, text string) {
	a.Status = models.ParseLegalStatus(s.status)
	a.SimpleSummary = s.summary
	a.Explanation = s.explanation
	if a.Explanation == "" {
		a.Explanation = strings.TrimSpace(text)
	}
	a.LegalBasis = strings.Join(s.provisions, "\n")
	for _, p := range s.precedents {
		a.Examples = append(a.Examples, p.Case)
	}
	a.NextSteps = append(a.NextSteps, s.actionItems...)
}

// finalize enforces the record invariants on either path: no nil lists,
// enumerations inside their domain, numbers inside their range.
func finalize(rec *models.NormalizedRecord) {
	switch {
	case rec.Assessment != nil:
		finalizeAssessment(rec.Assessment)
	case rec.Penalty != nil:
		finalizePenalty(rec.Penalty)
	default:
		finalizeDocument(rec.Document)
	}
}

func finalizeDocument(d *models.DocumentAnalysis) {
	d.Parties.Accused = nonNil(d.Parties.Accused)
	d.Parties.Petitioners = nonNil(d.Parties.Petitioners)
	d.Parties.Respondents = nonNil(d.Parties.Respondents)
	d.Dates = nonNil(d.Dates)
	d.Provisions = nonNil(d.Provisions)
	d.KeyPoints = nonNil(d.KeyPoints)
	d.HistoricalPrecedents = nonNil(d.HistoricalPrecedents)
	d.ActionItems = nonNil(d.ActionItems)
}

func finalizeAssessment(a *models.LegalAssessment) {
	a.Status = models.ParseLegalStatus(string(a.Status))
	// Unknown keeps an empty summary so the default record survives a round trip.
	if a.SimpleSummary == "" && a.Status != models.LegalStatusUnknown {
		a.SimpleSummary = a.Status.DefaultSummary()
	}
	a.Examples = nonNil(a.Examples)
	a.NextSteps = nonNil(a.NextSteps)
}

func finalizePenalty(p *models.PenaltyAssessment) {
	switch {
	case p.SeverityScore < 0:
		p.SeverityScore = 0
	case p.SeverityScore > models.MaxSeverityScore:
		p.SeverityScore = models.MaxSeverityScore
	}
	for _, fine := range []*float64{&p.MinFine, &p.MaxFine, &p.RecommendedFine} {
		if *fine < 0 {
			*fine = 0
		}
	}
	p.RiskLevel = models.RiskLevel(strings.ToLower(strings.TrimSpace(string(p.RiskLevel))))
	if !p.RiskLevel.Valid() {
		p.RiskLevel = ""
	}
	p.AdditionalPenalties = nonNil(p.AdditionalPenalties)
	p.LegalReferences = nonNil(p.LegalReferences)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

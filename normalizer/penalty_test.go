package normalizer

import (
	"strings"
	"testing"

	"legalaid-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_PenaltyJSON(t *testing.T) {
	raw := `{
  "offenseLevel": "Misdemeanor Class B",
  "severityScore": 4,
  "minFine": 250,
  "maxFine": "$1,000",
  "recommendedFine": 500.5,
  "imprisonmentPossible": true,
  "imprisonmentDuration": "up to 30 days",
  "additionalPenalties": ["License suspension"],
  "legalReferences": ["Vehicle Code 23152"],
  "countrySpecific": "California treats first offenses leniently",
  "consultRecommended": "yes",
  "riskLevel": "Medium"
}`

	rec := Normalize(raw, models.HintPenalty)
	require.NotNil(t, rec.Penalty)
	assert.Equal(t, models.SourceJSON, rec.Source)

	p := rec.Penalty
	assert.Equal(t, "Misdemeanor Class B", p.OffenseLevel)
	assert.Equal(t, 4.0, p.SeverityScore)
	assert.Equal(t, 250.0, p.MinFine)
	assert.Equal(t, 1000.0, p.MaxFine)
	assert.Equal(t, 500.5, p.RecommendedFine)
	assert.True(t, p.ImprisonmentPossible)
	assert.Equal(t, "up to 30 days", p.ImprisonmentDuration)
	assert.Equal(t, []string{"License suspension"}, p.AdditionalPenalties)
	assert.Equal(t, []string{"Vehicle Code 23152"}, p.LegalReferences)
	assert.True(t, p.ConsultRecommended)
	assert.Equal(t, models.RiskMedium, p.RiskLevel)
}

func TestNormalize_PenaltyNonNumericFieldsKeepDefaults(t *testing.T) {
	raw := `{"offenseLevel": "Felony", "severityScore": "very high", "minFine": "varies", "maxFine": null, "recommendedFine": [1], "riskLevel": "extreme"}`

	p := Normalize(raw, models.HintPenalty).Penalty
	assert.Equal(t, "Felony", p.OffenseLevel)
	assert.Zero(t, p.SeverityScore)
	assert.Zero(t, p.MinFine)
	assert.Zero(t, p.MaxFine)
	assert.Zero(t, p.RecommendedFine)
	assert.Equal(t, models.RiskLevel(""), p.RiskLevel)
}

func TestNormalize_PenaltyClampsRanges(t *testing.T) {
	p := Normalize(`{"severityScore": 14, "minFine": -20}`, models.HintPenalty).Penalty
	assert.Equal(t, float64(models.MaxSeverityScore), p.SeverityScore)
	assert.Zero(t, p.MinFine)
}

func TestNormalize_PenaltyHeuristic(t *testing.T) {
	raw := strings.Join([]string{
		"**Offense Level:** Misdemeanor",
		"**Severity:** 6/10",
		"**Fine Range:** ₹1,000 - ₹5,000",
		"Recommended Fine: ₹2,500",
		"Imprisonment: up to 3 months",
		"Risk Level: HIGH",
		"Consult a lawyer: Yes",
		"",
		"Additional Penalties:",
		"- Community service",
		"- Licence suspension",
		"",
		"Legal References:",
		"- Section 279 of the Indian Penal Code",
	}, "\n")

	rec := Normalize(raw, models.HintPenalty)
	assert.Equal(t, models.SourceHeuristic, rec.Source)

	p := rec.Penalty
	assert.Equal(t, "Misdemeanor", p.OffenseLevel)
	assert.Equal(t, 6.0, p.SeverityScore)
	assert.Equal(t, 1000.0, p.MinFine)
	assert.Equal(t, 5000.0, p.MaxFine)
	assert.Equal(t, 2500.0, p.RecommendedFine)
	assert.True(t, p.ImprisonmentPossible)
	assert.Equal(t, "up to 3 months", p.ImprisonmentDuration)
	assert.Equal(t, models.RiskHigh, p.RiskLevel)
	assert.True(t, p.ConsultRecommended)
	assert.Equal(t, []string{"Community service", "Licence suspension"}, p.AdditionalPenalties)
	assert.Equal(t, []string{"Section 279 of the Indian Penal Code"}, p.LegalReferences)
}

func TestNormalize_PenaltyUnspacedFineRange(t *testing.T) {
	tests := []struct {
		line     string
		min, max float64
	}{
		{"Fine Range: 1000-5000", 1000, 5000},
		{"Fine Range: ₹1,000-₹5,000", 1000, 5000},
		{"Fine Range: 250.50 - 900", 250.5, 900},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			p := Normalize(tt.line+"\nSeverity: 4", models.HintPenalty).Penalty
			assert.Equal(t, tt.min, p.MinFine)
			assert.Equal(t, tt.max, p.MaxFine)
			assert.Equal(t, 4.0, p.SeverityScore)
		})
	}
}

func TestNormalize_PenaltyBlankUnicodeValues(t *testing.T) {
	labels := []string{
		"Offense Level", "Severity", "Fine Range", "Minimum Fine", "Maximum Fine",
		"Recommended Fine", "Imprisonment Duration", "Imprisonment", "Risk Level",
		"Consult a lawyer", "Jurisdiction",
	}
	for _, label := range labels {
		for _, blank := range []string{"\u00a0", "\u2003", "\u00a0\u3000"} {
			t.Run(label, func(t *testing.T) {
				raw := label + ": " + blank + "\nSeverity: 5"

				var rec *models.NormalizedRecord
				require.NotPanics(t, func() {
					rec = Normalize(raw, models.HintPenalty)
				})
				p := rec.Penalty
				assert.Equal(t, 5.0, p.SeverityScore)
				assert.Empty(t, p.OffenseLevel)
				assert.Empty(t, p.RiskLevel)
				assert.Empty(t, p.ImprisonmentDuration)
				assert.False(t, p.ImprisonmentPossible)
				assert.Zero(t, p.MinFine)
				assert.Zero(t, p.MaxFine)
			})
		}
	}
}

func TestNormalize_PenaltyHeuristicNonNumeric(t *testing.T) {
	raw := "Severity Score: high\nMinimum Fine: depends on the court\nMaximum Fine: 2000"

	var p *models.PenaltyAssessment
	require.NotPanics(t, func() {
		p = Normalize(raw, models.HintPenalty).Penalty
	})
	assert.Zero(t, p.SeverityScore)
	assert.Zero(t, p.MinFine)
	assert.Equal(t, 2000.0, p.MaxFine)
	assert.Equal(t, []string{}, p.AdditionalPenalties)
	assert.Equal(t, []string{}, p.LegalReferences)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"500", 500, true},
		{"₹1,00,000", 100000, true},
		{"$2,500.75 USD", 2500.75, true},
		{"7/10", 7, true},
		{"-3", -3, true},
		{"high", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "Yes", "possible"} {
		b, ok := parseBool(s)
		assert.True(t, ok, s)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "No.", "Not applicable"} {
		b, ok := parseBool(s)
		assert.True(t, ok, s)
		assert.False(t, b, s)
	}
	_, ok := parseBool("up to 30 days")
	assert.False(t, ok)
}

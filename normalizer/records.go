package normalizer

import (
	"encoding/json"

	"legalaid-backend/models"
)

func documentFields(d *models.DocumentAnalysis) map[string]fieldDecoder {
	return map[string]fieldDecoder{
		"documentType":     stringField(&d.DocumentType),
		"fileNumber":       stringField(&d.FileNumber),
		"caseNumber":       stringField(&d.CaseNumber),
		"station":          stringField(&d.Station),
		"court":            stringField(&d.Court),
		"issuingAuthority": stringField(&d.IssuingAuthority),
		"bench":            stringField(&d.Bench),
		"status":           stringField(&d.Status),
		"subject":          stringField(&d.Subject),
		"judgmentSummary":  stringField(&d.JudgmentSummary),
		"parties": func(raw json.RawMessage) bool {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
				return false
			}
			mergeFields(obj, map[string]fieldDecoder{
				"complainant": partyField(&d.Parties.Complainant),
				"accused":     partyListField(&d.Parties.Accused),
				"petitioners": partyListField(&d.Parties.Petitioners),
				"respondents": partyListField(&d.Parties.Respondents),
			})
			return true
		},
		"dates":                decodeInto(&d.Dates),
		"provisions":           stringListField(&d.Provisions),
		"keyPoints":            stringListField(&d.KeyPoints),
		"simpleExplanation":    stringField(&d.SimpleExplanation),
		"historicalPrecedents": decodeInto(&d.HistoricalPrecedents),
		"actionItems":          stringListField(&d.ActionItems),
	}
}

func assessmentFields(a *models.LegalAssessment) map[string]fieldDecoder {
	return map[string]fieldDecoder{
		"status": func(raw json.RawMessage) bool {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return false
			}
			a.Status = models.LegalStatus(s)
			return true
		},
		"simpleSummary": stringField(&a.SimpleSummary),
		"explanation":   stringField(&a.Explanation),
		"legalBasis":    stringField(&a.LegalBasis),
		"examples":      stringListField(&a.Examples),
		"nextSteps":     stringListField(&a.NextSteps),
	}
}

func penaltyFields(p *models.PenaltyAssessment) map[string]fieldDecoder {
	return map[string]fieldDecoder{
		"offenseLevel":         stringField(&p.OffenseLevel),
		"severityScore":        numberField(&p.SeverityScore),
		"minFine":              numberField(&p.MinFine),
		"maxFine":              numberField(&p.MaxFine),
		"recommendedFine":      numberField(&p.RecommendedFine),
		"imprisonmentPossible": boolField(&p.ImprisonmentPossible),
		"imprisonmentDuration": stringField(&p.ImprisonmentDuration),
		"additionalPenalties":  stringListField(&p.AdditionalPenalties),
		"legalReferences":      stringListField(&p.LegalReferences),
		"countrySpecific":      stringField(&p.CountrySpecific),
		"consultRecommended":   boolField(&p.ConsultRecommended),
		"riskLevel": func(raw json.RawMessage) bool {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return false
			}
			p.RiskLevel = models.RiskLevel(s)
			return true
		},
	}
}

// applyJSON merges obj over the record's defaults
func applyJSON(rec *models.NormalizedRecord, obj map[string]json.RawMessage) {
	switch {
	case rec.Assessment != nil:
		mergeFields(obj, assessmentFields(rec.Assessment))
	case rec.Penalty != nil:
		mergeFields(obj, penaltyFields(rec.Penalty))
	default:
		mergeFields(obj, documentFields(rec.Document))
	}
}

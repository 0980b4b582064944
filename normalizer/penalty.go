package normalizer

import (
	"regexp"
	"strings"

	"legalaid-backend/models"
)

// labelLine matches "Label: value" lines, tolerating bullets and markdown bold
var labelLine = regexp.MustCompile(`^\s*(?:[-•*]\s+)?\**([A-Za-z][A-Za-z0-9 /()'-]*?)\**\s*:\s*\**\s*(.*?)\s*$`)

type penaltyLabel struct {
	label *regexp.Regexp
	apply func(p *models.PenaltyAssessment, value string)
}

// penaltyLabels is checked in order; the first label that matches wins
var penaltyLabels = []penaltyLabel{
	{regexp.MustCompile(`(?i)offen[cs]e (?:level|class)|classification`), func(p *models.PenaltyAssessment, v string) {
		p.OffenseLevel = v
	}},
	{regexp.MustCompile(`(?i)severity`), func(p *models.PenaltyAssessment, v string) {
		setNumber(&p.SeverityScore, v)
	}},
	{regexp.MustCompile(`(?i)fine range`), func(p *models.PenaltyAssessment, v string) {
		nums := rangeBound.FindAllString(v, 2)
		if len(nums) == 2 {
			setNumber(&p.MinFine, nums[0])
			setNumber(&p.MaxFine, nums[1])
		}
	}},
	{regexp.MustCompile(`(?i)min(?:imum)?\.? fine`), func(p *models.PenaltyAssessment, v string) {
		setNumber(&p.MinFine, v)
	}},
	{regexp.MustCompile(`(?i)max(?:imum)?\.? fine`), func(p *models.PenaltyAssessment, v string) {
		setNumber(&p.MaxFine, v)
	}},
	{regexp.MustCompile(`(?i)(?:recommended|typical) fine`), func(p *models.PenaltyAssessment, v string) {
		setNumber(&p.RecommendedFine, v)
	}},
	{regexp.MustCompile(`(?i)(?:imprisonment|jail|prison) (?:duration|term)`), func(p *models.PenaltyAssessment, v string) {
		p.ImprisonmentDuration = v
	}},
	{regexp.MustCompile(`(?i)imprisonment|jail|prison`), func(p *models.PenaltyAssessment, v string) {
		if b, ok := parseBool(v); ok {
			p.ImprisonmentPossible = b
			return
		}
		if v != "" {
			p.ImprisonmentPossible = true
			p.ImprisonmentDuration = v
		}
	}},
	{regexp.MustCompile(`(?i)risk`), func(p *models.PenaltyAssessment, v string) {
		f := strings.Fields(v)
		if len(f) == 0 {
			return
		}
		p.RiskLevel = models.RiskLevel(strings.ToLower(f[0]))
	}},
	{regexp.MustCompile(`(?i)consult`), func(p *models.PenaltyAssessment, v string) {
		if b, ok := parseBool(v); ok {
			p.ConsultRecommended = b
		}
	}},
	{regexp.MustCompile(`(?i)country|region|jurisdiction`), func(p *models.PenaltyAssessment, v string) {
		p.CountrySpecific = v
	}},
}

// rangeBound is unsigned so the dash in "1000-5000" separates the bounds
var rangeBound = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

var additionalPenaltiesHeading = regexp.MustCompile(`(?i)\badditional penalt(?:y|ies)\b`)

func setNumber(dst *float64, v string) {
	if n, ok := parseNumber(v); ok {
		*dst = n
	}
}

// scrapePenalty reads "Label: value" lines for the penalty fields. Numbers
// that cannot be read leave the field at its default.
func scrapePenalty(p *models.PenaltyAssessment, text string, s *scraped) {
	for _, para := range paragraphs(text) {
		if additionalPenaltiesHeading.MatchString(para) {
			p.AdditionalPenalties = append(p.AdditionalPenalties, bulletLines(para)...)
		}
		for _, line := range lines(para) {
			m := labelLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			value := strings.TrimSpace(m[2])
			if value == "" {
				continue
			}
			for _, pl := range penaltyLabels {
				if pl.label.MatchString(m[1]) {
					pl.apply(p, value)
					break
				}
			}
		}
	}
	for _, ref := range s.provisions {
		p.LegalReferences = append(p.LegalReferences, strings.TrimSpace(bulletPrefix.ReplaceAllString(ref, "")))
	}
}

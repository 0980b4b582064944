package normalizer

import (
	"regexp"
	"strings"

	"legalaid-backend/models"
)

// Category names a kind of section the fallback scraper recognizes
type Category string

const (
	CategoryParties     Category = "parties"
	CategoryDates       Category = "dates"
	CategoryProvisions  Category = "provisions"
	CategoryKeyPoints   Category = "key_points"
	CategoryExplanation Category = "explanation"
	CategoryPrecedents  Category = "precedents"
	CategoryActionItems Category = "action_items"
	CategorySubject     Category = "subject"
	CategoryStatus      Category = "status"
)

// precedentOutcome is recorded for cases found in prose, which never carry
// an outcome of their own
const precedentOutcome = "Referenced in document"

// unknownParty is used when a party line carries no ":<name>"
const unknownParty = "Unknown"

// scraped collects everything the fallback found, before it is projected
// onto a record shape
type scraped struct {
	parties     models.Parties
	dates       []models.DateEvent
	provisions  []string
	keyPoints   []string
	explanation string
	summary     string
	precedents  []models.Precedent
	actionItems []string
	subject     string
	status      string
}

func newScraped() *scraped {
	return &scraped{
		parties: models.Parties{
			Accused:     []models.Party{},
			Petitioners: []models.Party{},
			Respondents: []models.Party{},
		},
		dates:       []models.DateEvent{},
		provisions:  []string{},
		keyPoints:   []string{},
		precedents:  []models.Precedent{},
		actionItems: []string{},
	}
}

// section is one row of the scraper table. The first row whose heading
// matches a paragraph claims it.
type section struct {
	category Category
	heading  *regexp.Regexp
	extract  func(s *scraped, paragraph string, heading []int)
}

func headingPattern(alternatives string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + alternatives + `)\b`)
}

// sections is evaluated top to bottom for every paragraph
var sections = []section{
	{CategoryParties, headingPattern(`part(?:y|ies)|complainants?|accused|petitioners?|respondents?`), extractParties},
	{CategoryDates, headingPattern(`dates?|filing|hearings?`), extractDates},
	{CategoryProvisions, headingPattern(`provisions?|sections?|acts?`), extractProvisions},
	{CategoryKeyPoints, headingPattern(`key points?|main points?|findings?`), func(s *scraped, p string, _ []int) {
		s.keyPoints = append(s.keyPoints, bulletLines(p)...)
	}},
	{CategoryExplanation, headingPattern(`simple explanation|explanation|layman|simplified|simple summary|summary`), extractExplanation},
	{CategoryPrecedents, headingPattern(`precedents?|similar cases?|case law`), extractPrecedents},
	{CategoryActionItems, headingPattern(`action items?|next steps?|recommendations?`), func(s *scraped, p string, _ []int) {
		s.actionItems = append(s.actionItems, bulletLines(p)...)
	}},
	{CategorySubject, headingPattern(`subject|matter|disputes?|issues?`), func(s *scraped, p string, h []int) {
		s.subject = joinText(s.subject, removeHeading(p, h))
	}},
	{CategoryStatus, headingPattern(`status|stage|phase`), func(s *scraped, p string, h []int) {
		s.status = joinText(s.status, removeHeading(p, h))
	}},
}

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)
	bulletPrefix   = regexp.MustCompile(`^\s*[-•*]\s+`)
	datePattern    = regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`)
	versusMarker   = regexp.MustCompile(`(?i)\bv\.|\bvs\.?(?:\s|$)|\bversus\b`)
	partyName      = regexp.MustCompile(`:\s*([^,\n]+)`)
	representedBy  = regexp.MustCompile(`(?i)represented by\s*:?\s*([^,\n]+)`)
	provisionLine  = regexp.MustCompile(`(?i)\b(?:sections?|acts?)\b`)
	complainantRe  = regexp.MustCompile(`(?i)\bcomplainants?\b`)
	accusedRe      = regexp.MustCompile(`(?i)\baccused\b`)
	petitionerRe   = regexp.MustCompile(`(?i)\bpetitioners?\b`)
	respondentRe   = regexp.MustCompile(`(?i)\brespondents?\b`)
)

// paragraphs splits text into blank-line-delimited blocks
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// scrape runs every paragraph through the section table
func scrape(text string) *scraped {
	s := newScraped()
	for _, p := range paragraphs(text) {
		for _, sec := range sections {
			loc := sec.heading.FindStringIndex(p)
			if loc == nil {
				continue
			}
			sec.extract(s, p, loc)
			break
		}
	}
	return s
}

func lines(p string) []string {
	return strings.Split(p, "\n")
}

func extractParties(s *scraped, p string, _ []int) {
	for _, line := range lines(p) {
		switch {
		case complainantRe.MatchString(line):
			s.parties.Complainant = parseParty(line)
		case accusedRe.MatchString(line):
			s.parties.Accused = append(s.parties.Accused, parseParty(line))
		case petitionerRe.MatchString(line):
			s.parties.Petitioners = append(s.parties.Petitioners, parseParty(line))
		case respondentRe.MatchString(line):
			s.parties.Respondents = append(s.parties.Respondents, parseParty(line))
		}
	}
}

func parseParty(line string) models.Party {
	party := models.Party{Name: unknownParty}
	if m := partyName.FindStringSubmatch(line); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			party.Name = name
		}
	}
	if m := representedBy.FindStringSubmatch(line); m != nil {
		party.Represented = strings.TrimSpace(m[1])
	}
	return party
}

func extractDates(s *scraped, p string, _ []int) {
	for _, line := range lines(p) {
		loc := datePattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		s.dates = append(s.dates, models.DateEvent{
			Date:        line[loc[0]:loc[1]],
			Description: strings.TrimSpace(line[:loc[0]] + line[loc[1]:]),
		})
	}
}

func extractProvisions(s *scraped, p string, _ []int) {
	for _, line := range lines(p) {
		if provisionLine.MatchString(line) {
			s.provisions = append(s.provisions, strings.TrimSpace(line))
		}
	}
}

func extractExplanation(s *scraped, p string, h []int) {
	text := removeHeading(p, h)
	if strings.Contains(strings.ToLower(p[h[0]:h[1]]), "summary") {
		s.summary = joinText(s.summary, text)
		return
	}
	s.explanation = joinText(s.explanation, text)
}

func extractPrecedents(s *scraped, p string, _ []int) {
	for _, line := range lines(p) {
		if !versusMarker.MatchString(line) {
			continue
		}
		s.precedents = append(s.precedents, models.Precedent{
			Case:    strings.TrimSpace(bulletPrefix.ReplaceAllString(line, "")),
			Outcome: precedentOutcome,
		})
	}
}

// bulletLines returns the lines marked with -, • or *, marker stripped
func bulletLines(p string) []string {
	var out []string
	for _, line := range lines(p) {
		if bulletPrefix.MatchString(line) {
			out = append(out, strings.TrimSpace(bulletPrefix.ReplaceAllString(line, "")))
		}
	}
	return out
}

// removeHeading drops the matched heading phrase and any separator after it
func removeHeading(p string, loc []int) string {
	rest := strings.TrimLeft(p[loc[1]:], " \t")
	rest = strings.TrimLeft(rest, ":-–*")
	text := strings.TrimSpace(p[:loc[0]] + " " + rest)
	return strings.TrimSpace(strings.Trim(text, "#*"))
}

func joinText(existing, text string) string {
	switch {
	case text == "":
		return existing
	case existing == "":
		return text
	default:
		return existing + "\n\n" + text
	}
}

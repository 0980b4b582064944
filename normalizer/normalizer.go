// Package normalizer turns free-form replies from a text-generation model
// into fully-defaulted records.
//
// A reply is first searched for a JSON span by an ordered list of
// extractors; the first span that parses is merged field by field over the
// record's defaults. When no span parses, the reply is scraped paragraph by
// paragraph against a table of section headings. Normalize never fails:
// whatever it cannot read stays at its default.
//
// Normalize holds no state between calls and is safe for concurrent use.
package normalizer

import (
	"strings"
	"unicode/utf8"

	"legalaid-backend/models"
)

// MaxInputBytes bounds how much of a reply is scanned
const MaxInputBytes = 1 << 20

// Normalize converts raw model text into the record shape selected by hint
func Normalize(raw string, hint models.SchemaHint) *models.NormalizedRecord {
	return NormalizeWith(raw, hint, DefaultExtractors)
}

// NormalizeWith is Normalize with a caller-chosen extractor order
func NormalizeWith(raw string, hint models.SchemaHint, extractors []Extractor) *models.NormalizedRecord {
	rec := models.NewNormalizedRecord(hint)

	text := strings.TrimSpace(truncate(raw, MaxInputBytes))
	if text == "" {
		return rec
	}

	for _, ex := range extractors {
		span, ok := ex.Extract(text)
		if !ok {
			continue
		}
		obj, ok := parseObject(span)
		if !ok {
			continue
		}
		applyJSON(rec, obj)
		rec.Source = models.SourceJSON
		finalize(rec)
		return rec
	}

	applyHeuristic(rec, stripFences(text))
	rec.Source = models.SourceHeuristic
	finalize(rec)
	return rec
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

package normalizer

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Extractor pulls a candidate JSON span out of a model reply
type Extractor interface {
	Name() string
	Extract(text string) (string, bool)
}

// DefaultExtractors is the order in which candidate spans are tried
var DefaultExtractors = []Extractor{
	fenceExtractor{name: "json-fence", re: jsonFence},
	fenceExtractor{name: "code-fence", re: codeFence},
	balancedExtractor{name: "object", open: '{', close: '}'},
	balancedExtractor{name: "array", open: '[', close: ']'},
}

var (
	jsonFence  = regexp.MustCompile("(?is)```json(.*?)```")
	codeFence  = regexp.MustCompile("(?s)```[A-Za-z0-9_-]*(.*?)```")
	strayFence = regexp.MustCompile("```[A-Za-z0-9_-]*")
)

type fenceExtractor struct {
	name string
	re   *regexp.Regexp
}

func (e fenceExtractor) Name() string { return e.name }

func (e fenceExtractor) Extract(text string) (string, bool) {
	m := e.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	body := strings.TrimSpace(m[1])
	if body == "" {
		return "", false
	}
	return body, true
}

// maxBalancedStarts caps how many opening brackets are tried so a reply full
// of unmatched brackets stays linear in practice
const maxBalancedStarts = 64

type balancedExtractor struct {
	name  string
	open  byte
	close byte
}

func (e balancedExtractor) Name() string { return e.name }

// Extract returns the first balanced span that is valid JSON, or the first
// balanced span at all when none is valid.
func (e balancedExtractor) Extract(text string) (string, bool) {
	var first string
	tried := 0
	for i := 0; i < len(text) && tried < maxBalancedStarts; i++ {
		if text[i] != e.open {
			continue
		}
		tried++
		end := matchClose(text, i, e.open, e.close)
		if end < 0 {
			continue
		}
		span := text[i : end+1]
		if json.Valid([]byte(span)) {
			return span, true
		}
		if first == "" {
			first = span
		}
		i = end
	}
	return first, first != ""
}

// matchClose returns the index of the bracket closing the one at start,
// ignoring brackets inside JSON strings, or -1.
func matchClose(text string, start int, open, close byte) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripFences removes fenced blocks that hold JSON-looking content and
// unwraps any other fence, leaving its prose in place.
func stripFences(text string) string {
	text = codeFence.ReplaceAllStringFunc(text, func(block string) string {
		body := codeFence.FindStringSubmatch(block)[1]
		trimmed := strings.TrimSpace(body)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			return "\n\n"
		}
		return "\n\n" + trimmed + "\n\n"
	})
	return strayFence.ReplaceAllString(text, "")
}

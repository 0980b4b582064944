package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractors(t *testing.T) {
	tests := []struct {
		name   string
		ex     Extractor
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "json fence",
			ex:     DefaultExtractors[0],
			text:   "Here you go:\n```json\n{\"a\": 1}\n```\nThanks",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "json fence upper case",
			ex:     DefaultExtractors[0],
			text:   "```JSON\n[1, 2]\n```",
			want:   `[1, 2]`,
			wantOK: true,
		},
		{
			name: "empty json fence",
			ex:   DefaultExtractors[0],
			text: "```json\n```",
		},
		{
			name:   "plain code fence",
			ex:     DefaultExtractors[1],
			text:   "```\n{\"a\": 1}\n```",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "brace inside string",
			ex:     DefaultExtractors[2],
			text:   `Result: {"a": "}"} trailing`,
			want:   `{"a": "}"}`,
			wantOK: true,
		},
		{
			name:   "escaped quote inside string",
			ex:     DefaultExtractors[2],
			text:   `{"a": "say \"}\" now"}`,
			want:   `{"a": "say \"}\" now"}`,
			wantOK: true,
		},
		{
			name:   "skips invalid span for later valid one",
			ex:     DefaultExtractors[2],
			text:   `{not json} and then {"ok": true}`,
			want:   `{"ok": true}`,
			wantOK: true,
		},
		{
			name:   "first balanced span when none is valid",
			ex:     DefaultExtractors[2],
			text:   `{not json} {also not}`,
			want:   `{not json}`,
			wantOK: true,
		},
		{
			name: "unbalanced object",
			ex:   DefaultExtractors[2],
			text: `{"a": 1`,
		},
		{
			name: "no brackets",
			ex:   DefaultExtractors[2],
			text: "nothing structured here",
		},
		{
			name:   "array",
			ex:     DefaultExtractors[3],
			text:   `List: [{"a": [1, 2]}] end`,
			want:   `[{"a": [1, 2]}]`,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ex.Extract(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultExtractorOrder(t *testing.T) {
	var names []string
	for _, ex := range DefaultExtractors {
		names = append(names, ex.Name())
	}
	assert.Equal(t, []string{"json-fence", "code-fence", "object", "array"}, names)
}

func TestMatchClose(t *testing.T) {
	assert.Equal(t, 8, matchClose(`{"a":"{"}`, 0, '{', '}'))
	assert.Equal(t, 12, matchClose(`{"a":{"b":1}}`, 0, '{', '}'))
	assert.Equal(t, -1, matchClose(`{"a":{"b":1}`, 0, '{', '}'))
}

func TestStripFences(t *testing.T) {
	t.Run("drops json blocks", func(t *testing.T) {
		out := stripFences("Intro\n```json\n{\"a\": 1}\n```\nOutro")
		assert.NotContains(t, out, "```")
		assert.NotContains(t, out, "{")
		assert.Contains(t, out, "Intro")
		assert.Contains(t, out, "Outro")
	})

	t.Run("unwraps prose blocks", func(t *testing.T) {
		out := stripFences("```\nSummary: all fine\n```")
		assert.Equal(t, "\n\nSummary: all fine\n\n", out)
	})

	t.Run("removes unterminated fence markers", func(t *testing.T) {
		out := stripFences("```json\n{\"a\":")
		assert.NotContains(t, out, "```")
	})
}

func TestScrape_FirstMatchingSectionWins(t *testing.T) {
	s := scrape("Parties and dates\nComplainant: Asha Verma filed on 01/02/2023")

	assert.Equal(t, "Asha Verma filed on 01/02/2023", s.parties.Complainant.Name)
	assert.Empty(t, s.dates)
}

func TestScrape_RepeatedTextSectionsAreJoined(t *testing.T) {
	s := scrape("Explanation: first part\n\nExplanation: second part")
	assert.Equal(t, "first part\n\nsecond part", s.explanation)
}

func TestScrape_CRLFParagraphs(t *testing.T) {
	s := scrape("Subject: Land dispute\r\n\r\nStatus: Pending")
	assert.Equal(t, "Land dispute", s.subject)
	assert.Equal(t, "Pending", s.status)
}

func TestParseParty(t *testing.T) {
	p := parseParty("Petitioner: Ravi Kumar, represented by Adv. Meena Iyer")
	assert.Equal(t, "Ravi Kumar", p.Name)
	assert.Equal(t, "Adv. Meena Iyer", p.Represented)

	assert.Equal(t, unknownParty, parseParty("The accused remains unidentified").Name)
}

package normalizer

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"legalaid-backend/models"
)

// fieldDecoder decodes one JSON value into a record field. It reports false
// and leaves the field untouched when the value has the wrong shape.
type fieldDecoder func(raw json.RawMessage) bool

// parseObject decodes a candidate span into its top-level fields. Arrays
// contribute their first object element.
func parseObject(span string) (map[string]json.RawMessage, bool) {
	data := []byte(span)
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil && obj != nil {
		return obj, true
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, false
	}
	for _, elem := range arr {
		if err := json.Unmarshal(elem, &obj); err == nil && obj != nil {
			return obj, true
		}
	}
	return nil, false
}

// mergeFields applies each known field present in obj. Unknown keys are ignored.
func mergeFields(obj map[string]json.RawMessage, fields map[string]fieldDecoder) {
	for key, decode := range fields {
		raw, ok := obj[key]
		if !ok || isNull(raw) {
			continue
		}
		decode(raw)
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeInto is the strict decoder: the value must unmarshal into T.
func decodeInto[T any](dst *T) fieldDecoder {
	return func(raw json.RawMessage) bool {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return false
		}
		*dst = v
		return true
	}
}

// stringField accepts strings and also numbers or booleans, which models
// emit for identifiers such as case numbers.
func stringField(dst *string) fieldDecoder {
	return func(raw json.RawMessage) bool {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return false
		}
		switch t := v.(type) {
		case string:
			*dst = t
		case float64:
			*dst = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			*dst = strconv.FormatBool(t)
		default:
			return false
		}
		return true
	}
}

// stringListField keeps string elements of an array. A bare string becomes
// a one-element list.
func stringListField(dst *[]string) fieldDecoder {
	return func(raw json.RawMessage) bool {
		var list []any
		if err := json.Unmarshal(raw, &list); err != nil {
			var single string
			if err := json.Unmarshal(raw, &single); err != nil || single == "" {
				return false
			}
			*dst = []string{single}
			return true
		}
		out := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		*dst = out
		return true
	}
}

// partyField accepts {"name": ...} or a bare name.
func partyField(dst *models.Party) fieldDecoder {
	return func(raw json.RawMessage) bool {
		p, ok := decodeParty(raw)
		if ok {
			*dst = p
		}
		return ok
	}
}

// partyListField accepts a list of parties, a single party, or names.
func partyListField(dst *[]models.Party) fieldDecoder {
	return func(raw json.RawMessage) bool {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			p, ok := decodeParty(raw)
			if !ok {
				return false
			}
			*dst = []models.Party{p}
			return true
		}
		out := make([]models.Party, 0, len(list))
		for _, elem := range list {
			if p, ok := decodeParty(elem); ok {
				out = append(out, p)
			}
		}
		*dst = out
		return true
	}
}

func decodeParty(raw json.RawMessage) (models.Party, bool) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return models.Party{Name: name}, true
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return models.Party{}, false
	}
	var p models.Party
	mergeFields(obj, map[string]fieldDecoder{
		"name":        stringField(&p.Name),
		"represented": stringField(&p.Represented),
	})
	return p, true
}

// numberField accepts JSON numbers and numeric strings such as "₹5,000" or
// "7/10". Anything else leaves the default.
func numberField(dst *float64) fieldDecoder {
	return func(raw json.RawMessage) bool {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return false
		}
		switch t := v.(type) {
		case float64:
			*dst = t
			return true
		case string:
			n, ok := parseNumber(t)
			if ok {
				*dst = n
			}
			return ok
		}
		return false
	}
}

func boolField(dst *bool) fieldDecoder {
	return func(raw json.RawMessage) bool {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return false
		}
		switch t := v.(type) {
		case bool:
			*dst = t
			return true
		case string:
			b, ok := parseBool(t)
			if ok {
				*dst = b
			}
			return ok
		}
		return false
	}
}

var numberToken = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// parseNumber reads the first number in s, ignoring currency symbols and
// thousands separators.
func parseNumber(s string) (float64, bool) {
	tok := numberToken.FindString(s)
	if tok == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(strings.TrimRight(s, "."))) {
	case "true", "yes", "y", "possible", "likely":
		return true, true
	case "false", "no", "n", "none", "not applicable", "n/a", "unlikely":
		return false, true
	}
	return false, false
}

package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when model output contains no JSON object or
// array at all.
var ErrNoJSON = errors.New("no JSON value found in model output")

// ExtractJSON locates the first top-level JSON object or array in raw
// model text. Models wrap payloads in markdown fences or surrounding
// prose often enough that a strict decode of the whole blob is not
// reliable.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if fenced := stripCodeFence(s); fenced != "" {
		s = fenced
	}

	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			open = s[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
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
				return s[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSON
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return ""
	}
	body := s[3:]
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// DecodeObject strictly decodes the first JSON object in raw into v.
func DecodeObject(raw string, v interface{}) error {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(strings.NewReader(payload))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// DecodeStringArray strictly decodes the first JSON array in raw as a
// list of strings.
func DecodeStringArray(raw string) ([]string, error) {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, err
	}
	return out, nil
}

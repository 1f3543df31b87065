package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CategoryScore is one entry of the per-category breakdown.
type CategoryScore struct {
	Name  string
	Score int
}

// CategoryScores is a JSON object of category name to score that keeps the
// order in which the keys appeared on the wire.
type CategoryScores []CategoryScore

// Get returns the score for name.
func (c CategoryScores) Get(name string) (int, bool) {
	for _, cs := range c {
		if cs.Name == name {
			return cs.Score, true
		}
	}
	return 0, false
}

func (c *CategoryScores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("category_scores: %w", err)
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category_scores: expected object, got %v", tok)
	}

	out := CategoryScores{}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("category_scores: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("category_scores: unexpected key %v", tok)
		}
		if seen[name] {
			return fmt.Errorf("category_scores: duplicate category %q", name)
		}
		seen[name] = true

		var score int
		if err := dec.Decode(&score); err != nil {
			return fmt.Errorf("category_scores[%s]: %w", name, err)
		}
		out = append(out, CategoryScore{Name: name, Score: score})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("category_scores: %w", err)
	}

	*c = out
	return nil
}

func (c CategoryScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cs := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(cs.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(cs.Score))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

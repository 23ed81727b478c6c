package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SkillCategory is one named group of skills.
type SkillCategory struct {
	Name   string
	Skills []string
}

// SkillCategories is an ordered mapping from category name to skills. It
// marshals as a JSON object and keeps the key order of the source document, so
// flattening is deterministic.
type SkillCategories []SkillCategory

// Get returns the skills of the named category.
func (c SkillCategories) Get(name string) ([]string, bool) {
	for _, cat := range c {
		if cat.Name == name {
			return cat.Skills, true
		}
	}
	return nil, false
}

// Flatten returns every skill across all categories, in category order, with
// exact duplicates removed.
func (c SkillCategories) Flatten() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, cat := range c {
		for _, s := range cat.Skills {
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// MarshalJSON writes the categories as a JSON object in order.
func (c SkillCategories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		skills := cat.Skills
		if skills == nil {
			skills = []string{}
		}
		val, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of category arrays. Values that are not
// arrays are skipped, as are non-string array elements. A repeated key merges
// into the first occurrence.
func (c *SkillCategories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categorized skills: expected object, got %v", tok)
	}

	out := SkillCategories{}
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categorized skills: unexpected key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var items []any
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		skills := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				skills = append(skills, s)
			}
		}

		if i, exists := index[name]; exists {
			out[i].Skills = append(out[i].Skills, skills...)
			continue
		}
		index[name] = len(out)
		out = append(out, SkillCategory{Name: name, Skills: skills})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

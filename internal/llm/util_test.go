package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "single line fence",
			input:    "```{\"key\": \"value\"}```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `  {"key": "value"}  `,
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "simple object",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
			ok:       true,
		},
		{
			name:     "preamble before object",
			input:    "As requested, here is the JSON:\n{\"company\": \"Acme\"}",
			expected: `{"company": "Acme"}`,
			ok:       true,
		},
		{
			name:     "trailing text",
			input:    "{\"key\": \"value\"}\n\nLet me know if you need anything else! {\"second\": 1}",
			expected: `{"key": "value"}`,
			ok:       true,
		},
		{
			name:     "nested objects",
			input:    `Output: {"a": {"b": {"c": "deep"}}}`,
			expected: `{"a": {"b": {"c": "deep"}}}`,
			ok:       true,
		},
		{
			name:     "braces inside strings",
			input:    `{"template": "Hello {name}! }"}`,
			expected: `{"template": "Hello {name}! }"}`,
			ok:       true,
		},
		{
			name:     "escaped quotes",
			input:    `Result: {"message": "He said \"hi {\""}`,
			expected: `{"message": "He said \"hi {\""}`,
			ok:       true,
		},
		{
			name:  "unterminated",
			input: `{"key": "value"`,
			ok:    false,
		},
		{
			name:  "no object",
			input: "I could not analyze this resume.",
			ok:    false,
		},
		{
			name:  "empty",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

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
		{name: "json code block", input: "```json\n{\"summary\": \"x\"}\n```", expected: `{"summary": "x"}`},
		{name: "generic code block", input: "```\n{\"summary\": \"x\"}\n```", expected: `{"summary": "x"}`},
		{name: "code block with language", input: "```javascript\n{\"summary\": \"x\"}\n```", expected: `{"summary": "x"}`},
		{name: "plain JSON", input: `{"summary": "x"}`, expected: `{"summary": "x"}`},
		{name: "preamble", input: "Here is the resume:\n{\"summary\": \"x\"}", expected: `{"summary": "x"}`},
		{name: "trailing text", input: "{\"summary\": \"x\"}\n\nLet me know if you need changes!", expected: `{"summary": "x"}`},
		{name: "preamble and fence", input: "Sure!\n```json\n{\"a\": {\"b\": 1}}\n```", expected: `{"a": {"b": 1}}`},
		{name: "array", input: "Items:\n[\"Go\", \"SQL\"]", expected: `["Go", "SQL"]`},
		{name: "escaped quotes", input: `Result: {"summary": "He said \"hi\" {ok}"}`, expected: `{"summary": "He said \"hi\" {ok}"}`},
		{name: "no json", input: "I cannot help with that.", expected: "I cannot help with that."},
		{name: "unbalanced", input: `{"summary": "x"`, expected: `{"summary": "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"items": [1, 2]}`, extractJSONObject(`{"items": [1, 2]} tail`))
	assert.Equal(t, `{"t": "a}b"}`, extractJSONObject(`{"t": "a}b"}`))
	assert.Equal(t, "", extractJSONObject("not json"))
	assert.Equal(t, "", extractJSONObject(""))
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[[1, 2], [3]]`, extractJSONArray(`[[1, 2], [3]] extra`))
	assert.Equal(t, `[{"id": 1}]`, extractJSONArray(`[{"id": 1}]`))
	assert.Equal(t, "", extractJSONArray("nope"))
}

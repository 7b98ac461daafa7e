package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModelOutput(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		summary string
	}{
		{name: "plain object", raw: `{"summary": "Engineer"}`, summary: "Engineer"},
		{name: "fenced", raw: "```json\n{\"summary\": \"Engineer\"}\n```", summary: "Engineer"},
		{name: "preamble", raw: "Here is your resume:\n{\"summary\": \"Engineer\"}\nGood luck!", summary: "Engineer"},
		{name: "wrapped", raw: `{"resume": {"summary": "Engineer"}}`, summary: "Engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeModelOutput(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.summary, doc["summary"])
		})
	}
}

func TestDecodeModelOutput_NotJSON(t *testing.T) {
	raw := "I'm sorry, I can only write resumes for real people."

	_, err := DecodeModelOutput(raw)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, raw, parseErr.Excerpt)
	assert.Contains(t, err.Error(), "not a JSON object")
}

func TestDecodeModelOutput_Empty(t *testing.T) {
	_, err := DecodeModelOutput("   ")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "empty")
}

func TestDecodeModelOutput_ArrayIsRejected(t *testing.T) {
	_, err := DecodeModelOutput(`["not", "an", "object"]`)
	assert.Error(t, err)
}

func TestDecodeModelOutput_Null(t *testing.T) {
	_, err := DecodeModelOutput("null")
	assert.Error(t, err)
}

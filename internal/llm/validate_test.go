package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"summary":"Good fit","next_steps":["a","b"],"fit":"strong"}`, true},
		{"optional omitted", `{"summary":"Good fit","next_steps":[]}`, true},
		{"missing required", `{"summary":"Good fit"}`, false},
		{"empty summary", `{"summary":"","next_steps":[]}`, false},
		{"enum violation", `{"summary":"s","next_steps":[],"fit":"perfect"}`, false},
		{"too many steps", `{"summary":"s","next_steps":["a","b","c","d"]}`, false},
		{"extra property", `{"summary":"s","next_steps":[],"extra":1}`, false},
		{"not JSON", `not json`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(insightSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`plain text`)))
}

func TestFinishReportsTruncation(t *testing.T) {
	_, err := finish(Request{}, json.RawMessage(`{"summ`), Usage{}, "m", StopMaxTokens)
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)

	resp, err := finish(Request{}, json.RawMessage(`"text"`), Usage{InputTokens: 3, OutputTokens: 4}, "m", StopEnd)
	assert.NoError(t, err)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
}

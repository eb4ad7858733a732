package spamanalysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdict_NilIsNotSpam(t *testing.T) {
	var v *Verdict

	assert.False(t, v.Analyzed())
	assert.False(t, v.Spam())
	assert.False(t, v.Exceeds(0))
	assert.Nil(t, v.TopRules(3))
}

func TestVerdict_Status(t *testing.T) {
	tests := []struct {
		name     string
		verdict  Verdict
		analyzed bool
		spam     bool
	}{
		{"analyzed spam", Verdict{Status: StatusAnalyzed, Score: 9, Threshold: 6, IsSpam: true}, true, true},
		{"analyzed ham", Verdict{Status: StatusAnalyzed, Score: -1, Threshold: 6}, true, false},
		{"skipped keeps flag off", Verdict{Status: StatusSkipped, IsSpam: true}, false, false},
		{"error", Verdict{Status: StatusError, Info: "scanner unavailable"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.analyzed, tt.verdict.Analyzed())
			assert.Equal(t, tt.spam, tt.verdict.Spam())
		})
	}
}

func TestVerdict_Exceeds(t *testing.T) {
	v := &Verdict{Status: StatusAnalyzed, Score: 4.5, Threshold: 6}

	assert.True(t, v.Exceeds(4.5))
	assert.True(t, v.Exceeds(3))
	assert.False(t, v.Exceeds(5))
}

func TestVerdict_TopRules(t *testing.T) {
	v := &Verdict{
		Status: StatusAnalyzed,
		Rules: []Rule{
			{Name: "DKIM_SIGNED", Score: -0.5},
			{Name: "FORGED_SENDER", Score: 3},
			{Name: "MISSING_DATE", Score: 1},
			{Name: "BAYES_SPAM", Score: 5.1},
			{Name: "INFO", Score: 0},
		},
	}

	top := v.TopRules(2)
	require.Len(t, top, 2)
	assert.Equal(t, "BAYES_SPAM", top[0].Name)
	assert.Equal(t, "FORGED_SENDER", top[1].Name)

	assert.Len(t, v.TopRules(10), 3)
	assert.Nil(t, v.TopRules(0))
}

func TestVerdict_Decode(t *testing.T) {
	payload := `{"status":"analyzed","score":7.2,"threshold":6,"isSpam":true,"rules":[{"name":"BAYES_SPAM","score":5.1}]}`

	var v Verdict
	require.NoError(t, json.Unmarshal([]byte(payload), &v))

	assert.True(t, v.Spam())
	assert.Equal(t, 7.2, v.Score)
	assert.Equal(t, "BAYES_SPAM", v.Rules[0].Name)
}

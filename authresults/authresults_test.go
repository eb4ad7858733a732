package authresults

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passing() *Results {
	return &Results{
		SPF:   &SPF{Result: Pass, Domain: "example.com"},
		DKIM:  []DKIM{{Result: Fail, Domain: "old.example.com"}, {Result: Pass, Domain: "example.com"}},
		DMARC: &DMARC{Result: Pass, Domain: "example.com", Aligned: true},
	}
}

func TestResults_AllPass(t *testing.T) {
	r := passing()

	assert.NoError(t, r.Check())

	s := r.Summarize()
	assert.True(t, s.Passed)
	assert.True(t, s.SPFPassed)
	assert.True(t, s.DKIMPassed)
	assert.True(t, s.DMARCPassed)
	assert.NotNil(t, s.Failures)
	assert.Empty(t, s.Failures)
}

func TestResults_Nil(t *testing.T) {
	var r *Results

	assert.ErrorIs(t, r.Check(), ErrNoAuthResults)

	s := r.Summarize()
	assert.False(t, s.Passed)
	assert.Equal(t, []string{ErrNoAuthResults.Error()}, s.Failures)
}

func TestResults_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Results)
		want    error
		message string
	}{
		{
			name:    "spf softfail",
			mutate:  func(r *Results) { r.SPF.Result = SoftFail },
			want:    ErrSPFFailed,
			message: "SPF check failed: softfail (domain: example.com)",
		},
		{
			name:    "spf missing",
			mutate:  func(r *Results) { r.SPF = nil },
			want:    ErrSPFFailed,
			message: "SPF check failed: missing",
		},
		{
			name:    "no dkim pass",
			mutate:  func(r *Results) { r.DKIM[1].Result = Fail },
			want:    ErrDKIMFailed,
			message: "DKIM check failed: old.example.com, example.com",
		},
		{
			name:    "no dkim signatures",
			mutate:  func(r *Results) { r.DKIM = nil },
			want:    ErrDKIMFailed,
			message: "DKIM check failed: no passing signature",
		},
		{
			name:    "dmarc reject",
			mutate:  func(r *Results) { r.DMARC.Result = Fail; r.DMARC.Policy = "reject" },
			want:    ErrDMARCFailed,
			message: "DMARC check failed: fail (policy: reject)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := passing()
			tt.mutate(r)

			err := r.Check()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.message, err.Error())

			s := r.Summarize()
			assert.False(t, s.Passed)
			assert.Equal(t, []string{tt.message}, s.Failures)
		})
	}
}

func TestResults_MultipleFailuresJoined(t *testing.T) {
	r := &Results{
		SPF:   &SPF{Result: Fail},
		DMARC: &DMARC{Result: None},
	}

	err := r.Check()
	assert.True(t, errors.Is(err, ErrSPFFailed))
	assert.True(t, errors.Is(err, ErrDKIMFailed))
	assert.True(t, errors.Is(err, ErrDMARCFailed))
	assert.Len(t, r.Summarize().Failures, 3)
}

func TestResults_Decode(t *testing.T) {
	payload := `{
		"spf": {"result": "pass", "domain": "example.com", "ip": "192.0.2.1"},
		"dkim": [{"result": "pass", "domain": "example.com", "selector": "s1"}],
		"dmarc": {"result": "pass", "policy": "reject", "domain": "example.com", "aligned": true}
	}`

	var r Results
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	assert.Equal(t, "192.0.2.1", r.SPF.IP)
	assert.Equal(t, "s1", r.DKIM[0].Selector)
	assert.True(t, r.DMARC.Aligned)
	assert.NoError(t, r.Check())
}

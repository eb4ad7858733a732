// Package spamanalysis models the spam verdict VeilMail computes for
// received inbound emails.
package spamanalysis

import (
	"cmp"
	"slices"
)

// Status says whether an email was scored.
type Status string

const (
	// StatusAnalyzed means Score and IsSpam are meaningful.
	StatusAnalyzed Status = "analyzed"
	// StatusSkipped means scoring was disabled for the receiving rule.
	StatusSkipped Status = "skipped"
	// StatusError means the scanner failed; Info carries the reason.
	StatusError Status = "error"
)

// Rule is one scanner rule that contributed to the score. Positive scores
// push toward spam, negative toward ham.
type Rule struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Description string  `json:"description,omitempty"`
}

// Verdict is the spam analysis of an email.
type Verdict struct {
	Status    Status  `json:"status"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	IsSpam    bool    `json:"isSpam"`
	Rules     []Rule  `json:"rules,omitempty"`
	Info      string  `json:"info,omitempty"`
}

// Analyzed reports whether the email was scored.
func (v *Verdict) Analyzed() bool {
	return v != nil && v.Status == StatusAnalyzed
}

// Spam reports whether the email was scored and classified as spam. Emails
// that were not scored are never reported as spam.
func (v *Verdict) Spam() bool {
	return v.Analyzed() && v.IsSpam
}

// Exceeds reports whether the email was scored at or above limit, for
// callers applying a stricter threshold than the server's.
func (v *Verdict) Exceeds(limit float64) bool {
	return v.Analyzed() && v.Score >= limit
}

// TopRules returns up to n rules with the largest positive contribution,
// highest first.
func (v *Verdict) TopRules(n int) []Rule {
	if v == nil || n <= 0 {
		return nil
	}
	var spammy []Rule
	for _, r := range v.Rules {
		if r.Score > 0 {
			spammy = append(spammy, r)
		}
	}
	slices.SortStableFunc(spammy, func(a, b Rule) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(spammy) > n {
		spammy = spammy[:n]
	}
	return spammy
}

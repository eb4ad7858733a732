// Package authresults models the sender authentication verdicts (SPF, DKIM,
// DMARC) that VeilMail attaches to received inbound emails.
package authresults

import (
	"errors"
	"fmt"
	"strings"
)

// Verdict is the outcome of one authentication mechanism.
type Verdict string

const (
	Pass      Verdict = "pass"
	Fail      Verdict = "fail"
	SoftFail  Verdict = "softfail"
	Neutral   Verdict = "neutral"
	None      Verdict = "none"
	TempError Verdict = "temperror"
	PermError Verdict = "permerror"
)

var (
	// ErrSPFFailed is returned when the SPF check did not pass.
	ErrSPFFailed = errors.New("SPF check failed")

	// ErrDKIMFailed is returned when no DKIM signature passed.
	ErrDKIMFailed = errors.New("DKIM check failed")

	// ErrDMARCFailed is returned when the DMARC check did not pass.
	ErrDMARCFailed = errors.New("DMARC check failed")

	// ErrNoAuthResults is returned when the email carries no verdicts.
	ErrNoAuthResults = errors.New("no authentication results available")
)

// SPF is the SPF verdict for the envelope sender.
type SPF struct {
	Result Verdict `json:"result"`
	Domain string  `json:"domain,omitempty"`
	IP     string  `json:"ip,omitempty"`
}

// DKIM is the verdict for one DKIM signature.
type DKIM struct {
	Result   Verdict `json:"result"`
	Domain   string  `json:"domain,omitempty"`
	Selector string  `json:"selector,omitempty"`
}

// DMARC is the DMARC verdict for the From domain.
type DMARC struct {
	Result  Verdict `json:"result"`
	Policy  string  `json:"policy,omitempty"` // none, quarantine, reject
	Domain  string  `json:"domain,omitempty"`
	Aligned bool    `json:"aligned,omitempty"`
}

// Results holds every verdict recorded for an email.
type Results struct {
	SPF   *SPF   `json:"spf,omitempty"`
	DKIM  []DKIM `json:"dkim,omitempty"`
	DMARC *DMARC `json:"dmarc,omitempty"`
}

// Summary condenses Results into pass/fail flags.
type Summary struct {
	// Passed is true when SPF, DKIM and DMARC all passed.
	Passed      bool     `json:"passed"`
	SPFPassed   bool     `json:"spfPassed"`
	DKIMPassed  bool     `json:"dkimPassed"`
	DMARCPassed bool     `json:"dmarcPassed"`
	Failures    []string `json:"failures"`
}

// Summarize reports which mechanisms passed. A missing verdict counts as a
// failure. Failures is never nil.
func (r *Results) Summarize() Summary {
	if r == nil {
		return Summary{Failures: []string{ErrNoAuthResults.Error()}}
	}

	failures := []string{}
	for _, err := range r.errs() {
		failures = append(failures, err.Error())
	}

	s := Summary{
		SPFPassed:   r.SPF != nil && r.SPF.Result == Pass,
		DKIMPassed:  r.dkimPassed(),
		DMARCPassed: r.DMARC != nil && r.DMARC.Result == Pass,
		Failures:    failures,
	}
	s.Passed = s.SPFPassed && s.DKIMPassed && s.DMARCPassed
	return s
}

// Check returns nil when every mechanism passed, otherwise a joined error
// that matches ErrSPFFailed, ErrDKIMFailed and ErrDMARCFailed as appropriate.
func (r *Results) Check() error {
	if r == nil {
		return ErrNoAuthResults
	}
	return errors.Join(r.errs()...)
}

func (r *Results) dkimPassed() bool {
	for _, d := range r.DKIM {
		if d.Result == Pass {
			return true
		}
	}
	return false
}

func (r *Results) errs() []error {
	var errs []error

	switch {
	case r.SPF == nil:
		errs = append(errs, fmt.Errorf("%w: missing", ErrSPFFailed))
	case r.SPF.Result != Pass:
		errs = append(errs, fmt.Errorf("%w: %s%s", ErrSPFFailed, r.SPF.Result, domainSuffix(r.SPF.Domain)))
	}

	if !r.dkimPassed() {
		var domains []string
		for _, d := range r.DKIM {
			if d.Domain != "" {
				domains = append(domains, d.Domain)
			}
		}
		if len(domains) == 0 {
			errs = append(errs, fmt.Errorf("%w: no passing signature", ErrDKIMFailed))
		} else {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDKIMFailed, strings.Join(domains, ", ")))
		}
	}

	switch {
	case r.DMARC == nil:
		errs = append(errs, fmt.Errorf("%w: missing", ErrDMARCFailed))
	case r.DMARC.Result != Pass:
		msg := string(r.DMARC.Result)
		if r.DMARC.Policy != "" {
			msg += " (policy: " + r.DMARC.Policy + ")"
		}
		errs = append(errs, fmt.Errorf("%w: %s", ErrDMARCFailed, msg))
	}

	return errs
}

func domainSuffix(domain string) string {
	if domain == "" {
		return ""
	}
	return " (domain: " + domain + ")"
}

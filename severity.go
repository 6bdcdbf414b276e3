package outbreaksim

import (
	rv "github.com/kentwait/randomvariate"
)

// Severity is the expected case severity a person is assigned once at
// setup (spec §3).
type Severity int

const (
	Asymptomatic Severity = iota
	Mild
	Severe
	Critical
)

func (s Severity) String() string {
	switch s {
	case Asymptomatic:
		return "ASYMPTOMATIC"
	case Mild:
		return "MILD"
	case Severe:
		return "SEVERE"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// AgeCohort is one of the fixed age bands the case-fatality table is
// keyed on: [0,20) [20,40) [40,50) [50,60) [60,70) [70,80) [80,inf).
// Grounded on infection_model.py's draw_expected_case_severity table
// `[(0,20,0.002),(20,40,0.002),(40,50,0.004),(50,60,0.013),
// (60,70,0.036),(70,80,0.08),(80,200,0.148)]`.
type AgeCohort struct {
	Low, High int
	CFR       float64
}

// DefaultAgeCohorts is the case-fatality-rate-by-age table carried
// over verbatim from the original implementation's severity model
// (SPEC_FULL §11).
var DefaultAgeCohorts = []AgeCohort{
	{0, 20, 0.002},
	{20, 40, 0.002},
	{40, 50, 0.004},
	{50, 60, 0.013},
	{60, 70, 0.036},
	{70, 80, 0.08},
	{80, 200, 0.148},
}

func cohortFor(age int, cohorts []AgeCohort) AgeCohort {
	for _, c := range cohorts {
		if age >= c.Low && age < c.High {
			return c
		}
	}
	return cohorts[len(cohorts)-1]
}

// SeverityDistribution is the global {Asymptomatic, Mild, Severe,
// Critical} proportion parameter (spec §4.5, §6).
type SeverityDistribution struct {
	Asymptomatic float64
	Mild         float64
	Severe       float64
	Critical     float64
}

// DrawSeverity computes the person's age-cohort-conditional severity
// vector and draws one multinomial realisation from it (spec §4.5):
// P(Critical|cohort) = CFR/pDeathGivenCritical, the remaining three
// categories are rescaled in proportion to sum to the complement.
// Drawn via the teacher's own randomvariate dependency, rv.Multinomial,
// the same call intrahost_process.go uses for transition sampling.
func DrawSeverity(age int, global SeverityDistribution, pDeathGivenCritical float64, cohorts []AgeCohort) Severity {
	cohort := cohortFor(age, cohorts)
	pCritical := cohort.CFR / pDeathGivenCritical
	if pCritical > 1 {
		pCritical = 1
	}
	remaining := 1 - pCritical
	baseRemaining := global.Asymptomatic + global.Mild + global.Severe
	var pAsym, pMild, pSevere float64
	if baseRemaining > 0 {
		pAsym = global.Asymptomatic / baseRemaining * remaining
		pMild = global.Mild / baseRemaining * remaining
		pSevere = global.Severe / baseRemaining * remaining
	}
	probs := []float64{pAsym, pMild, pSevere, pCritical}
	draw := rv.Multinomial(1, probs)
	for i, v := range draw {
		if v == 1 {
			return Severity(i)
		}
	}
	return Asymptomatic
}

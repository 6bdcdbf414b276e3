package outbreaksim

import "testing"

func TestCohortFor(t *testing.T) {
	c := cohortFor(85, DefaultAgeCohorts)
	if c.CFR != 0.148 {
		t.Errorf(UnequalFloatParameterError, "CFR for 85-year-old", 0.148, c.CFR)
	}
	c2 := cohortFor(0, DefaultAgeCohorts)
	if c2.CFR != 0.002 {
		t.Errorf(UnequalFloatParameterError, "CFR for newborn", 0.002, c2.CFR)
	}
}

func TestDrawSeverity_CriticalProbabilityMatchesCFR(t *testing.T) {
	global := SeverityDistribution{Asymptomatic: 0.4, Mild: 0.4, Severe: 0.15, Critical: 0.05}
	pDeathGivenCritical := 0.5
	cohort := AgeCohort{Low: 80, High: 200, CFR: 0.148}

	const trials = 20000
	critical := 0
	for i := 0; i < trials; i++ {
		if DrawSeverity(85, global, pDeathGivenCritical, []AgeCohort{cohort}) == Critical {
			critical++
		}
	}
	got := float64(critical) / trials
	want := cohort.CFR / pDeathGivenCritical
	if diff := got - want; diff > 0.02 || diff < -0.02 {
		t.Errorf(UnequalFloatParameterError, "P(Critical|cohort)", want, got)
	}
}

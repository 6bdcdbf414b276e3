package outbreaksim

import "testing"

func TestParams_ValidateRejectsBadSeverityTotal(t *testing.T) {
	p := &Params{
		CaseSeverityDistribution: map[SeverityKey]float64{KeyAsymptomatic: 0.5, KeyMild: 0.1},
		MaxTime:                  10,
	}
	if err := p.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating severity probabilities that do not sum to 1")
	}
}

func TestParams_ValidateRejectsMissingProgressionSubkey(t *testing.T) {
	p := &Params{
		MaxTime: 10,
		DiseaseProgression: map[string]map[string]DistributionParams{
			"default": {"T0": {Name: "normal"}, "T1": {Name: "normal"}},
		},
	}
	if err := p.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating a disease_progression block missing T2/TDEATH")
	}
}

func TestParams_ValidateRejectsMaxTimeNotExceedingStartTime(t *testing.T) {
	p := &Params{StartTime: 5, MaxTime: 5}
	if err := p.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating max_time equal to start_time")
	}
}

func TestParams_ValidateAcceptsWellFormedConfig(t *testing.T) {
	p := &Params{
		CaseSeverityDistribution: map[SeverityKey]float64{
			KeyAsymptomatic: 0.7, KeyMild: 0.2, KeySevere: 0.08, KeyCritical: 0.02,
		},
		DiseaseProgression: map[string]map[string]DistributionParams{
			"default": {
				"T0": {Name: "normal"}, "T1": {Name: "normal"},
				"T2": {Name: "normal"}, "TDEATH": {Name: "normal"},
			},
		},
		StartTime: 0,
		MaxTime:   100,
	}
	if err := p.Validate(); err != nil {
		t.Errorf(UnexpectedErrorWhileError, "validating a well-formed config", err.Error())
	}
}

func TestProgressionDistributions_FallsBackToDefault(t *testing.T) {
	p := &Params{
		EpidemicStatus: "lockdown",
		DiseaseProgression: map[string]map[string]DistributionParams{
			"default": {
				"T0": {Name: "normal", Loc: 1}, "T1": {Name: "normal"},
				"T2": {Name: "normal"}, "TDEATH": {Name: "normal"},
			},
		},
	}
	dist, err := p.ProgressionDistributions()
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "resolving progression distributions", err.Error())
	}
	if dist.T0.Loc != 1 {
		t.Errorf(UnequalFloatParameterError, "fallback T0 loc", 1, dist.T0.Loc)
	}
}

func TestRandomSeed_UnmarshalAcceptsIntOrString(t *testing.T) {
	var single RandomSeed
	if err := single.UnmarshalJSON([]byte("42")); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "unmarshaling a bare int seed", err.Error())
	}
	if len(single.Seeds) != 1 || single.Seeds[0] != 42 {
		t.Errorf(UnequalIntParameterError, "single seed value", 42, int(single.Seeds[0]))
	}

	var list RandomSeed
	if err := list.UnmarshalJSON([]byte(`"1,2, 3"`)); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "unmarshaling a seed list string", err.Error())
	}
	if len(list.Seeds) != 3 {
		t.Errorf(UnequalIntParameterError, "seed list length", 3, len(list.Seeds))
	}
}

func TestInitialConditions_UnmarshalAcceptsBothSchemas(t *testing.T) {
	var v1 InitialConditions
	if err := v1.UnmarshalJSON([]byte(`[{"time":1,"person_id":2,"status":"Infectious"}]`)); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "unmarshaling schema-v1 initial conditions", err.Error())
	}
	if len(v1.List) != 1 {
		t.Errorf(UnequalIntParameterError, "schema-v1 record count", 1, len(v1.List))
	}

	var v2 InitialConditions
	if err := v2.UnmarshalJSON([]byte(`{"selection_algorithm":"RandomSelection","cardinalities":{"Infectious":3}}`)); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "unmarshaling schema-v2 initial conditions", err.Error())
	}
	if v2.Selection == nil || v2.Selection.Cardinalities["Infectious"] != 3 {
		t.Errorf(ExpectedErrorWhileError, "parsing schema-v2 cardinalities")
	}
}

func TestKernelTagFromString_KnownNames(t *testing.T) {
	if kernelTagFromString("household") != Household {
		t.Errorf(UnequalStringParameterError, "kernel tag", Household.String(), kernelTagFromString("household").String())
	}
	if kernelTagFromString("constant") != Constant {
		t.Errorf(UnequalStringParameterError, "kernel tag", Constant.String(), kernelTagFromString("constant").String())
	}
}

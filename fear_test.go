package outbreaksim

import "testing"

func TestFearModulator_DisabledIsAlwaysOne(t *testing.T) {
	m := NewFearModulator(map[KernelTag]FearParams{
		Household: {Function: FearDisabled},
	})
	if f := m.Factor(Household, 100, 50); f != 1.0 {
		t.Errorf(UnequalFloatParameterError, "disabled fear factor", 1.0, f)
	}
}

func TestFearModulator_LinearDecreasesWithDetected(t *testing.T) {
	m := NewFearModulator(map[KernelTag]FearParams{
		Constant: {Function: FearLinear, ScaleFactor: 0.01, DetectedMultiplier: 1, LimitValue: 0.1},
	})
	low := m.Factor(Constant, 1, 0)
	m.Reset()
	high := m.Factor(Constant, 50, 0)
	if high >= low {
		t.Errorf(UnequalFloatParameterError, "fear factor at higher detected count", low, high)
	}
}

func TestFearModulator_ClampedAtLimitValue(t *testing.T) {
	m := NewFearModulator(map[KernelTag]FearParams{
		Constant: {Function: FearLinear, ScaleFactor: 10, DetectedMultiplier: 1, LimitValue: 0.2},
	})
	f := m.Factor(Constant, 1000, 0)
	if f != 0.2 {
		t.Errorf(UnequalFloatParameterError, "clamped fear factor", 0.2, f)
	}
}

func TestFearModulator_CachesPerTag(t *testing.T) {
	m := NewFearModulator(map[KernelTag]FearParams{
		Constant: {Function: FearLinear, ScaleFactor: 0.01, DetectedMultiplier: 1, LimitValue: 0},
	})
	first := m.Factor(Constant, 5, 0)
	second := m.Factor(Constant, 500, 0)
	if first != second {
		t.Errorf(UnequalFloatParameterError, "cached fear factor on second call", first, second)
	}
}

func TestFearModulator_EffectiveRateAppliesFactor(t *testing.T) {
	m := NewFearModulator(map[KernelTag]FearParams{
		Household: {Function: FearDisabled},
	})
	rate := m.EffectiveRate(Household, 2.0, 0, 0)
	if rate != 2.0 {
		t.Errorf(UnequalFloatParameterError, "effective rate under disabled fear", 2.0, rate)
	}
}

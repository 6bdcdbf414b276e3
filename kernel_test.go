package outbreaksim

import (
	"math/rand"
	"testing"
)

func TestHouseholdKernel_SchedulesOnlyForHealthyPeers(t *testing.T) {
	people := []*Person{NewPerson(0, 30, Male), NewPerson(1, 31, Female), NewPerson(2, 32, Male)}
	for _, p := range people {
		p.HouseholdID = 0
	}
	e := newTestEngine(people)
	e.households[0] = NewHousehold(0, 3, NonFamily, GenerationPresence{})
	e.members[0] = []int{0, 1, 2}
	e.cfg.Gamma0[Household] = 10
	e.fear = NewFearModulator(map[KernelTag]FearParams{})

	e.status[1] = Hospital
	e.status[0] = Infectious
	e.runHouseholdKernel(0, 1)

	for _, ev := range drainQueue(e) {
		if ev.PersonID == 1 {
			t.Errorf(ExpectedErrorWhileError, "scheduling a household contact against a non-healthy peer")
		}
		if ev.InitiatedThrough != Household {
			t.Errorf(UnequalStringParameterError, "kernel tag", Household.String(), ev.InitiatedThrough.String())
		}
	}
}

func TestHouseholdKernelEnd_FallsBackToT0Plus14(t *testing.T) {
	e := newTestEngine([]*Person{NewPerson(0, 30, Male)})
	end := e.householdKernelEnd(0, 5)
	if end != 19 {
		t.Errorf(UnequalFloatParameterError, "household kernel fallback end", 19, end)
	}
}

func TestSamplePeers_DrawsDistinctMembers(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	pool := []int{1, 2, 3, 4, 5}
	chosen := samplePeers(pool, 3, rng)
	if len(chosen) != 3 {
		t.Errorf(UnequalIntParameterError, "sampled peer count", 3, len(chosen))
	}
	seen := map[int]bool{}
	for _, id := range chosen {
		if seen[id] {
			t.Errorf(ExpectedErrorWhileError, "drawing a peer id more than once")
		}
		seen[id] = true
	}
}

func drainQueue(e *Engine) []Event {
	var evs []Event
	for {
		ev, ok := e.queue.Pop()
		if !ok {
			break
		}
		evs = append(evs, ev)
	}
	return evs
}

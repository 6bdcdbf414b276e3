package outbreaksim

import (
	"math/rand"
	"testing"
)

func newTestEngine(people []*Person) *Engine {
	cfg := EngineConfig{
		StartTime:            0,
		MaxTime:               1000,
		StopThreshold:         0,
		SeverityDistribution:  SeverityDistribution{Asymptomatic: 1},
		DeathProbability:      map[Severity]float64{Asymptomatic: 0, Mild: 0, Severe: 0, Critical: 0},
		Progression: ProgressionDistributions{
			T0:     DistributionSpec{Name: "uniform", Loc: 1, Scale: 2},
			T1:     DistributionSpec{Name: "uniform", Loc: 3, Scale: 4},
			T2:     DistributionSpec{Name: "uniform", Loc: 5, Scale: 6},
			TDeath: DistributionSpec{Name: "uniform", Loc: 7, Scale: 8},
		},
		Cohorts:             DefaultAgeCohorts,
		PDeathGivenCritical: 0.5,
		Gamma0:              map[KernelTag]float64{Household: 0, Constant: 0},
		FearParams:          map[KernelTag]FearParams{},
	}
	rng := rand.New(rand.NewSource(42))
	return NewEngine(cfg, people, nil, map[int][]int{}, rng)
}

func TestEngine_SeedsEveryPersonHealthy(t *testing.T) {
	people := []*Person{NewPerson(0, 30, Male), NewPerson(1, 40, Female)}
	e := newTestEngine(people)
	for _, p := range people {
		if e.Status(p.ID) != Healthy {
			t.Errorf(UnequalStringParameterError, "initial status", Healthy.String(), e.Status(p.ID).String())
		}
	}
}

func TestEngine_TMinus1SeededEventBeginsContraction(t *testing.T) {
	people := []*Person{NewPerson(0, 30, Male)}
	e := newTestEngine(people)
	e.Schedule(Event{Time: 1, PersonID: 0, Type: TMinus1, InitiatedBy: -1, InitiatedThrough: InitialConditions})
	e.Run()
	if e.Affected() != 1 {
		t.Errorf(UnequalIntParameterError, "affected count", 1, e.Affected())
	}
	if len(e.Infections()) != 1 || e.Infections()[0].SourcePersonID != -1 {
		t.Errorf(UnequalIntParameterError, "seeded infection source id", -1, e.Infections()[0].SourcePersonID)
	}
}

func TestEngine_TransmissionRecordsRealSource(t *testing.T) {
	people := []*Person{NewPerson(0, 30, Male), NewPerson(1, 35, Female)}
	e := newTestEngine(people)
	e.status[0] = Infectious
	e.Schedule(Event{Time: 1, PersonID: 1, Type: TMinus1, InitiatedBy: 0, InitiatedThrough: Household})
	e.Run()
	found := false
	for _, rec := range e.Infections() {
		if rec.TargetPersonID == 1 {
			found = true
			if rec.SourcePersonID != 0 {
				t.Errorf(UnequalIntParameterError, "transmission source id", 0, rec.SourcePersonID)
			}
		}
	}
	if !found {
		t.Errorf(ExpectedErrorWhileError, "recording the transmitted infection")
	}
}

func TestEngine_InactiveSourceRecordsAnomaly(t *testing.T) {
	people := []*Person{NewPerson(0, 30, Male), NewPerson(1, 35, Female)}
	e := newTestEngine(people)
	e.Schedule(Event{Time: 1, PersonID: 1, Type: TMinus1, InitiatedBy: 0, InitiatedThrough: Household})
	e.Run()
	if len(e.anomalies) != 1 {
		t.Errorf(UnequalIntParameterError, "anomaly count for an inactive source", 1, len(e.anomalies))
	}
	if e.Status(1) != Healthy {
		t.Errorf(UnequalStringParameterError, "target status after a rejected transmission", Healthy.String(), e.Status(1).String())
	}
}

func TestEngine_T0FromUnexpectedStatusRecordsAnomaly(t *testing.T) {
	people := []*Person{NewPerson(0, 30, Male)}
	e := newTestEngine(people)
	e.status[0] = Hospital
	e.Schedule(Event{Time: 1, PersonID: 0, Type: T0, InitiatedBy: 0, InitiatedThrough: DiseaseProgression})
	e.Run()
	if len(e.anomalies) != 1 {
		t.Errorf(UnequalIntParameterError, "anomaly count for an out-of-order T0", 1, len(e.anomalies))
	}
}

func TestEngine_StopsAtStopThreshold(t *testing.T) {
	people := []*Person{NewPerson(0, 30, Male), NewPerson(1, 31, Male)}
	e := newTestEngine(people)
	e.cfg.StopThreshold = 1
	e.Schedule(Event{Time: 1, PersonID: 0, Type: TMinus1, InitiatedBy: -1, InitiatedThrough: InitialConditions})
	e.Schedule(Event{Time: 2, PersonID: 1, Type: TMinus1, InitiatedBy: -1, InitiatedThrough: InitialConditions})
	reason := e.Run()
	if reason != "threshold" {
		t.Errorf(UnequalStringParameterError, "stop reason", "threshold", reason)
	}
	if e.Affected() < 1 {
		t.Errorf(ExpectedErrorWhileError, "reaching the stop threshold")
	}
}

func TestEngine_EmptyQueueStopsImmediately(t *testing.T) {
	e := newTestEngine([]*Person{NewPerson(0, 30, Male)})
	if reason := e.Run(); reason != "queue_empty" {
		t.Errorf(UnequalStringParameterError, "stop reason for an empty queue", "queue_empty", reason)
	}
}

func TestEngine_EventsPastMaxTimeStopTheRun(t *testing.T) {
	e := newTestEngine([]*Person{NewPerson(0, 30, Male)})
	e.cfg.MaxTime = 5
	e.Schedule(Event{Time: 100, PersonID: 0, Type: TMinus1, InitiatedBy: -1, InitiatedThrough: InitialConditions})
	if reason := e.Run(); reason != "max_time" {
		t.Errorf(UnequalStringParameterError, "stop reason past max time", "max_time", reason)
	}
	if e.Affected() != 0 {
		t.Errorf(UnequalIntParameterError, "affected count when the only event is past max time", 0, e.Affected())
	}
}

func TestEngine_DeathIncrementsCounterOnce(t *testing.T) {
	e := newTestEngine([]*Person{NewPerson(0, 30, Male)})
	e.status[0] = Hospital
	e.Schedule(Event{Time: 1, PersonID: 0, Type: TDeath, InitiatedBy: 0, InitiatedThrough: DiseaseProgression})
	e.Schedule(Event{Time: 2, PersonID: 0, Type: TDeath, InitiatedBy: 0, InitiatedThrough: DiseaseProgression})
	e.Run()
	if e.Deaths() != 1 {
		t.Errorf(UnequalIntParameterError, "death count after a duplicate death event", 1, e.Deaths())
	}
}

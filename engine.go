package outbreaksim

import (
	"math/rand"
)

// ProgressionDistributions are the four named distribution specs the
// disease timeline is drawn from (spec §6 disease_progression block;
// grounded on infection_model.py::generate_disease_progression, which
// reads the same four sub-keys off a single epidemic-status-keyed
// dict).
type ProgressionDistributions struct {
	T0     DistributionSpec
	T1     DistributionSpec
	T2     DistributionSpec
	TDeath DistributionSpec
}

// EngineConfig bundles the parameters a fresh Engine needs for one
// seed iteration (spec §9: "each seed iteration creates a fresh
// engine and discards it on completion; no hidden globals").
type EngineConfig struct {
	StartTime           float64
	MaxTime             float64
	StopThreshold        int
	SeverityDistribution SeverityDistribution
	DeathProbability     map[Severity]float64
	Progression          ProgressionDistributions
	Cohorts               []AgeCohort
	PDeathGivenCritical   float64
	Gamma0                map[KernelTag]float64
	FearParams            map[KernelTag]FearParams
}

// Engine owns every piece of mutable simulation state for a single
// seed run: the event queue, per-person status/progression/severity
// maps, and running counters. Re-architected per spec §9's design note
// out of the original's process-wide globals; the driver constructs
// one Engine per seed and discards it afterward.
type Engine struct {
	cfg EngineConfig
	rng *rand.Rand

	people      map[int]*Person
	households  map[int]*Household
	members     map[int][]int

	queue       *EventQueue
	fear        *FearModulator

	status      map[int]InfectionStatus
	severity    map[int]Severity
	progression map[int]*ProgressionRecord
	infections  []InfectionRecord

	time          float64
	affected      int
	deaths        int
	detected      int
	anomalies     []StateMachineAnomaly
	warnings      []InsufficientCandidatesError
}

// NewEngine builds an engine over a fixed population and household
// set, seeding every person Healthy and drawing their expected
// severity once (spec §3: "drawn once per person at simulation
// setup").
func NewEngine(cfg EngineConfig, people []*Person, households []*Household, members map[int][]int, rng *rand.Rand) *Engine {
	e := &Engine{
		cfg:         cfg,
		rng:         rng,
		people:      make(map[int]*Person, len(people)),
		households:  make(map[int]*Household, len(households)),
		members:     members,
		queue:       NewEventQueue(),
		fear:        NewFearModulator(cfg.FearParams),
		status:      make(map[int]InfectionStatus, len(people)),
		severity:    make(map[int]Severity, len(people)),
		progression: make(map[int]*ProgressionRecord),
		time:        cfg.StartTime,
	}
	for _, p := range people {
		e.people[p.ID] = p
		e.status[p.ID] = Healthy
		e.severity[p.ID] = DrawSeverity(p.Age, cfg.SeverityDistribution, cfg.PDeathGivenCritical, cfg.Cohorts)
	}
	for _, h := range households {
		e.households[h.ID] = h
	}
	return e
}

// Schedule pushes an event onto the queue.
func (e *Engine) Schedule(ev Event) {
	e.queue.Push(ev)
}

// Status returns person id's current infection status.
func (e *Engine) Status(id int) InfectionStatus {
	return e.status[id]
}

// Affected, Deaths, Detected expose the running counters (spec §4.10
// driver accumulation, §9 design note).
func (e *Engine) Affected() int { return e.affected }
func (e *Engine) Deaths() int   { return e.deaths }
func (e *Engine) Detected() int { return e.detected }
func (e *Engine) Time() float64 { return e.time }

// Infections and Progressions expose the append-only logs.
func (e *Engine) Infections() []InfectionRecord       { return e.infections }
func (e *Engine) Progressions() map[int]*ProgressionRecord { return e.progression }

// StatusMap and SeverityMap expose the final per-person maps, used by
// the driver to populate SeedOutcome for the population output table
// (spec §6: "Population output... plus final infection status and
// expected severity").
func (e *Engine) StatusMap() map[int]InfectionStatus { return e.status }
func (e *Engine) SeverityMap() map[int]Severity      { return e.severity }

// Run pops events until the queue is empty, the popped event's time
// exceeds MaxTime, or Affected reaches StopThreshold (spec §4.8,
// §4.10). Returns the reason the loop stopped.
func (e *Engine) Run() string {
	for {
		if e.cfg.StopThreshold > 0 && e.affected >= e.cfg.StopThreshold {
			return "threshold"
		}
		ev, ok := e.queue.Pop()
		if !ok {
			return "queue_empty"
		}
		if ev.Time > e.cfg.MaxTime {
			return "max_time"
		}
		e.time = ev.Time
		e.apply(ev)
	}
}

// apply dispatches one popped event by type, exactly as spec §4.8
// describes.
func (e *Engine) apply(ev Event) {
	switch ev.Type {
	case TMinus1:
		e.applyTMinus1(ev)
	case T0:
		e.applyT0(ev)
	case T1:
		e.applyT1(ev)
	case T2:
		e.applyT2(ev)
	case TDeath:
		e.applyTDeath(ev)
	}
}

func (e *Engine) applyTMinus1(ev Event) {
	target := ev.PersonID
	if ev.InitiatedBy < 0 && ev.InitiatedThrough != DiseaseProgression {
		if e.status[target] == Healthy {
			e.beginInfection(target, -1, ev.Time, Contraction, ev.InitiatedThrough)
		}
		return
	}

	source := ev.InitiatedBy
	if !e.status[source].IsActive() {
		e.anomalies = append(e.anomalies, StateMachineAnomaly{PersonID: source, EventType: ev.Type, Status: e.status[source]})
		return
	}
	if ev.InitiatedThrough != Household && e.status[source] == StayHome {
		return
	}
	if e.status[target] == Healthy {
		e.beginInfection(target, source, ev.Time, Contraction, ev.InitiatedThrough)
	}
}

func (e *Engine) applyT0(ev Event) {
	target := ev.PersonID
	st := e.status[target]
	if st != Healthy && st != Contraction {
		e.anomalies = append(e.anomalies, StateMachineAnomaly{PersonID: target, EventType: ev.Type, Status: st})
		return
	}
	if st == Healthy {
		e.beginInfection(target, -1, ev.Time, Infectious, ev.InitiatedThrough)
		return
	}
	e.status[target] = Infectious
	e.dispatchKernels(target, ev.Time)
}

func (e *Engine) applyT1(ev Event) {
	target := ev.PersonID
	if e.status[target] != Infectious {
		return
	}
	e.status[target] = StayHome
}

func (e *Engine) applyT2(ev Event) {
	target := ev.PersonID
	st := e.status[target]
	if st != Infectious && st != StayHome {
		return
	}
	e.status[target] = Hospital
}

func (e *Engine) applyTDeath(ev Event) {
	target := ev.PersonID
	if e.status[target] == Death {
		return
	}
	e.status[target] = Death
	e.deaths++
}

// beginInfection is the shared subroutine spec §4.8 describes: it
// marks the person's new status, records the infection, draws the
// progression timeline, and schedules the downstream events.
func (e *Engine) beginInfection(personID, source int, eventTime float64, entering InfectionStatus, kernel KernelTag) {
	e.status[personID] = entering
	e.affected++

	e.infections = append(e.infections, InfectionRecord{
		SourcePersonID:  source,
		TargetPersonID:  personID,
		ContractionTime: eventTime,
		Kernel:          kernel,
	})

	rec := &ProgressionRecord{PersonID: personID}
	var t0 float64
	if entering == Contraction {
		rec.TMinus1 = eventTime
		t0 = eventTime + e.sampleOne(e.cfg.Progression.T0)
		rec.T0 = t0
		e.Schedule(Event{Time: t0, PersonID: personID, Type: T0, InitiatedBy: personID, InitiatedThrough: DiseaseProgression, IssuedTime: eventTime})
	} else {
		t0 = eventTime
		rec.T0 = t0
	}

	sev := e.severity[personID]
	var t2 float64
	hasT2 := false
	if sev == Severe || sev == Critical {
		t2 = t0 + e.sampleOne(e.cfg.Progression.T2)
		hasT2 = true
		rec.T2 = t2
		rec.HasT2 = true
		e.Schedule(Event{Time: t2, PersonID: personID, Type: T2, InitiatedBy: personID, InitiatedThrough: DiseaseProgression, IssuedTime: t0})
	}

	t1 := t0 + e.sampleOne(e.cfg.Progression.T1)
	if !hasT2 || t1 < t2 {
		rec.T1 = t1
		rec.HasT1 = true
		e.Schedule(Event{Time: t1, PersonID: personID, Type: T1, InitiatedBy: personID, InitiatedThrough: DiseaseProgression, IssuedTime: t0})
	}

	if e.rng.Float64() <= e.cfg.DeathProbability[sev] {
		tdeath := t0 + e.sampleOne(e.cfg.Progression.TDeath)
		rec.TDeath = tdeath
		rec.HasDeath = true
		e.Schedule(Event{Time: tdeath, PersonID: personID, Type: TDeath, InitiatedBy: personID, InitiatedThrough: DiseaseProgression, IssuedTime: t0})
	}

	e.progression[personID] = rec

	if entering == Infectious {
		e.dispatchKernels(personID, eventTime)
	}
}

func (e *Engine) sampleOne(spec DistributionSpec) float64 {
	values, err := Sample(spec, 1, e.rng)
	if err != nil || len(values) == 0 {
		return 0
	}
	return values[0]
}

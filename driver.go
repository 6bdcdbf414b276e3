package outbreaksim

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// ImportIntensityFunction is the finite, declared set of import
// curves the bisection root-finder can target (spec §4.10, §9 design
// note: tagged variant, no dispatch by string beyond parse time).
type ImportIntensityFunction int

const (
	NoImport ImportIntensityFunction = iota
	Polynomial
	Exponential
)

func importIntensityFunctionFromString(s string) (ImportIntensityFunction, error) {
	switch s {
	case "", "NoImport":
		return NoImport, nil
	case "Polynomial":
		return Polynomial, nil
	case "Exponential":
		return Exponential, nil
	default:
		return 0, NewInvalidParameterError("import_intensity.function", "unrecognized function "+s)
	}
}

func evalImportIntensity(fn ImportIntensityFunction, x, rate, multiplier float64) float64 {
	switch fn {
	case Polynomial:
		return multiplier * rate * x
	case Exponential:
		return multiplier * math.Exp(rate*x)
	default:
		return 0
	}
}

// bisectRootBuffer/bisectMaxIter bound the import-intensity root
// search (spec §7: "must succeed within the configured root buffer or
// fail with InvalidParameter").
const (
	bisectRootBuffer = 100.0
	bisectMaxIter    = 200
	bisectTolerance  = 1e-6
)

// bisectRoot finds x such that f(x) == target within [guess-buffer,
// guess+buffer], grounded on infection_model.py's
// `scipy.optimize.bisect(bisect_fun, root_min, root_max)` call. f must
// be monotone non-decreasing over the bracket, which holds for both
// Polynomial and Exponential with rate,multiplier > 0.
func bisectRoot(f func(float64) float64, target, guess, buffer float64) (float64, error) {
	lo, hi := guess-buffer, guess+buffer
	flo, fhi := f(lo)-target, f(hi)-target
	if flo > 0 == fhi > 0 {
		return 0, errors.New("import intensity root not bracketed within root buffer")
	}
	for i := 0; i < bisectMaxIter; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid) - target
		if math.Abs(fmid) < bisectTolerance {
			return mid, nil
		}
		if (fmid > 0) == (flo > 0) {
			lo, flo = mid, fmid
		} else {
			hi, fhi = mid, fmid
		}
	}
	return 0, errors.New("import intensity bisection did not converge within root buffer")
}

// FillQueueFromImportIntensity implements spec §4.10's import-intensity
// phase: for i=1..cap, bisect F(t)=i to find an event time, then
// schedule a TMINUS1 or T0 for a uniformly random person with
// probability p.Infectious of T0 (grounded on
// infection_model.py::_fill_queue_based_on_auxiliary_functions).
func (e *Engine) FillQueueFromImportIntensity(p ImportIntensityParams) error {
	fn, err := importIntensityFunctionFromString(p.Function)
	if err != nil {
		return err
	}
	if fn == NoImport || p.Cap <= 0 {
		return nil
	}
	ids := e.personIDs()
	for i := 1; i <= p.Cap; i++ {
		target := float64(i)
		root, err := bisectRoot(func(x float64) float64 {
			return evalImportIntensity(fn, x, p.Rate, p.Multiplier)
		}, target, 0, bisectRootBuffer)
		if err != nil {
			return NewInvalidParameterError("import_intensity", err.Error())
		}
		personID := ids[e.rng.Intn(len(ids))]
		evType := TMinus1
		if e.rng.Float64() < p.Infectious {
			evType = T0
		}
		e.Schedule(Event{
			Time:             root,
			PersonID:         personID,
			Type:             evType,
			InitiatedBy:      -1,
			InitiatedThrough: ImportIntensity,
			IssuedTime:       e.time,
		})
	}
	return nil
}

// FillQueueFromInitialConditions implements spec §4.10's initial
// conditions phase for both schemas. Schema v1 (explicit list) is
// scheduled as given; schema v2 (selection_algorithm + cardinalities)
// currently supports RandomSelection, drawing the requested
// cardinality per status without replacement across statuses,
// grounded on infection_model.py::_fill_queue_based_on_initial_conditions.
func (e *Engine) FillQueueFromInitialConditions(ic InitialConditions) error {
	if ic.List != nil {
		for _, rec := range ic.List {
			evType, err := eventTypeForStatus(rec.Status)
			if err != nil {
				return err
			}
			e.Schedule(Event{
				Time:             rec.Time,
				PersonID:         rec.PersonID,
				Type:             evType,
				InitiatedBy:      -1,
				InitiatedThrough: InitialConditions,
				IssuedTime:       e.time,
			})
		}
		return nil
	}
	if ic.Selection == nil {
		return nil
	}
	if ic.Selection.SelectionAlgorithm != "RandomSelection" {
		return NewInvalidParameterError("initial_conditions.selection_algorithm", "unrecognized algorithm "+ic.Selection.SelectionAlgorithm)
	}
	pool := e.personIDs()
	e.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	offset := 0
	for status, cardinality := range ic.Selection.Cardinalities {
		if cardinality <= 0 {
			continue
		}
		evType, err := eventTypeForStatus(status)
		if err != nil {
			return err
		}
		if offset+cardinality > len(pool) {
			return &InsufficientCandidatesError{Cluster: status, Wanted: cardinality, Available: len(pool) - offset}
		}
		for _, id := range pool[offset : offset+cardinality] {
			e.Schedule(Event{
				Time:             e.time,
				PersonID:         id,
				Type:             evType,
				InitiatedBy:      -1,
				InitiatedThrough: InitialConditions,
				IssuedTime:       e.time,
			})
		}
		offset += cardinality
	}
	return nil
}

func eventTypeForStatus(status string) (EventType, error) {
	switch status {
	case "Contraction":
		return TMinus1, nil
	case "Infectious":
		return T0, nil
	default:
		return 0, NewInvalidParameterError("initial_conditions status", "invalid initial infection status "+status)
	}
}

func (e *Engine) personIDs() []int {
	ids := make([]int, 0, len(e.people))
	for id := range e.people {
		ids = append(ids, id)
	}
	return ids
}

// SeedOutcome summarises one seed iteration of the driver loop (spec
// §4.10). RunID is a sortable unique identifier for this iteration,
// grounded on the teacher's genotypeNode.UID() pattern (ksuid.New()
// per record), useful for correlating log rows across a multi-seed
// batch run.
type SeedOutcome struct {
	RunID       string
	Seed        int64
	Outbreak    bool
	StopReason  string
	Affected    int
	Deaths      int
	EndTime     float64
	Infections  []InfectionRecord
	Progressions map[int]*ProgressionRecord
	Status      map[int]InfectionStatus
	Severity    map[int]Severity
}

// RunDriver executes spec §4.10's multi-seed loop: for each seed,
// rebuild a fresh Engine, fill the queue from initial conditions and
// import intensity, run to completion, and collect one SeedOutcome.
// The cross-seed statistics (outbreak probability / mean outbreak
// time / mean affected-on-no-outbreak) are computed by
// SummarizeOutcomes.
// Each seed iteration is fully independent (spec §5: "no shared
// mutable state exists across seeds").
func RunDriver(p *Params, people []*Person, households []*Household, members map[int][]int) ([]SeedOutcome, error) {
	deathProb, err := p.DeathProbabilityBySeverity()
	if err != nil {
		return nil, err
	}
	progression, err := p.ProgressionDistributions()
	if err != nil {
		return nil, err
	}
	fearParams, err := p.FearParamsByKernel()
	if err != nil {
		return nil, err
	}

	cfg := EngineConfig{
		StartTime:            p.StartTime,
		MaxTime:              p.MaxTime,
		StopThreshold:         p.StopSimulationThreshold,
		SeverityDistribution:  p.SeverityDistribution(),
		DeathProbability:      deathProb,
		Progression:           progression,
		Cohorts:               DefaultAgeCohorts,
		PDeathGivenCritical:   p.DeathProbability[KeyCritical],
		Gamma0:                p.Gamma0(),
		FearParams:            fearParams,
	}

	var outcomes []SeedOutcome
	for _, seed := range p.RandomSeed.Seeds {
		rng := rand.New(rand.NewSource(seed))
		engine := NewEngine(cfg, people, households, members, rng)

		if err := engine.FillQueueFromInitialConditions(p.InitialConditions); err != nil {
			return nil, err
		}
		if err := engine.FillQueueFromImportIntensity(p.ImportIntensity); err != nil {
			return nil, err
		}

		reason := engine.Run()
		outbreak := reason == "threshold"
		outcomes = append(outcomes, SeedOutcome{
			RunID:        ksuid.New().String(),
			Seed:         seed,
			Outbreak:     outbreak,
			StopReason:   reason,
			Affected:     engine.Affected(),
			Deaths:       engine.Deaths(),
			EndTime:      engine.Time(),
			Infections:   engine.Infections(),
			Progressions: engine.Progressions(),
			Status:       engine.StatusMap(),
			Severity:     engine.SeverityMap(),
		})
	}
	return outcomes, nil
}

// Summary holds the cross-seed statistics spec §4.10 accumulates over
// a multi-seed batch: the fraction of seeds that reached outbreak, the
// mean end time among outbreak seeds, and the mean affected count
// among non-outbreak seeds, grounded on
// infection_model.py::run_simulation's running averages
// (outbreak_proba/mean_time_when_outbreak/mean_affected_when_no_outbreak).
type Summary struct {
	OutbreakProbability      float64
	MeanOutbreakTime         float64
	MeanAffectedOnNoOutbreak float64
}

// SummarizeOutcomes computes a Summary from a completed multi-seed
// batch. Unlike the Python ground truth's incremental running-average
// update, this folds over the already-collected []SeedOutcome, since
// RunDriver returns the full batch rather than streaming per-seed.
func SummarizeOutcomes(outcomes []SeedOutcome) Summary {
	if len(outcomes) == 0 {
		return Summary{}
	}
	var outbreaks, noOutbreaks int
	var sumOutbreakTime, sumAffectedNoOutbreak float64
	for _, o := range outcomes {
		if o.Outbreak {
			outbreaks++
			sumOutbreakTime += o.EndTime
		} else {
			noOutbreaks++
			sumAffectedNoOutbreak += float64(o.Affected)
		}
	}
	s := Summary{OutbreakProbability: float64(outbreaks) / float64(len(outcomes))}
	if outbreaks > 0 {
		s.MeanOutbreakTime = sumOutbreakTime / float64(outbreaks)
	}
	if noOutbreaks > 0 {
		s.MeanAffectedOnNoOutbreak = sumAffectedNoOutbreak / float64(noOutbreaks)
	}
	return s
}

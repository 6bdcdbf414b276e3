package outbreaksim

import (
	"os"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// SeverityKey names one of the four severity buckets as they appear
// in the parameter file's case_severity_distribution/death_probability
// maps (spec §6).
type SeverityKey string

const (
	KeyAsymptomatic SeverityKey = "Asymptomatic"
	KeyMild         SeverityKey = "Mild"
	KeySevere       SeverityKey = "Severe"
	KeyCritical     SeverityKey = "Critical"
)

func (k SeverityKey) severity() (Severity, error) {
	switch k {
	case KeyAsymptomatic:
		return Asymptomatic, nil
	case KeyMild:
		return Mild, nil
	case KeySevere:
		return Severe, nil
	case KeyCritical:
		return Critical, nil
	default:
		return 0, NewInvalidParameterError("severity", "unrecognized severity key "+string(k))
	}
}

// DistributionParams is the JSON shape of a distribution spec in the
// parameter file: a name plus up to two numeric parameters (spec
// §4.1, §6).
type DistributionParams struct {
	Name  string  `json:"name"`
	Loc   float64 `json:"loc"`
	Scale float64 `json:"scale"`
}

func (d DistributionParams) toSpec() DistributionSpec {
	return DistributionSpec{Name: d.Name, Loc: d.Loc, Scale: d.Scale}
}

// FearFactorParams is the JSON shape of one entry in the
// fear_factors map (spec §6).
type FearFactorParams struct {
	FearFunction       string  `json:"fear_function"`
	LimitValue         float64 `json:"limit_value"`
	ScaleFactor        float64 `json:"scale_factor"`
	DeathsMultiplier   float64 `json:"deaths_multiplier"`
	DetectedMultiplier float64 `json:"detected_multiplier"`
}

func (f FearFactorParams) toParams() (FearParams, error) {
	var fn FearFunction
	switch f.FearFunction {
	case "", "disabled":
		fn = FearDisabled
	case "linear":
		fn = FearLinear
	case "exponential":
		fn = FearExponential
	default:
		return FearParams{}, NewInvalidParameterError("fear_function", "unrecognized function "+f.FearFunction)
	}
	return FearParams{
		Function:           fn,
		LimitValue:         f.LimitValue,
		ScaleFactor:        f.ScaleFactor,
		DeathsMultiplier:   f.DeathsMultiplier,
		DetectedMultiplier: f.DetectedMultiplier,
	}, nil
}

// InitialConditionRecord is one explicit (time, person, status) entry
// of the schema-v1 initial_conditions list (spec §4.10).
type InitialConditionRecord struct {
	Time     float64 `json:"time"`
	PersonID int     `json:"person_id"`
	Status   string  `json:"status"`
}

// InitialConditionsSelection is the schema-v2 {selection_algorithm,
// cardinalities} form of initial_conditions (spec §4.10).
type InitialConditionsSelection struct {
	SelectionAlgorithm string         `json:"selection_algorithm"`
	Cardinalities      map[string]int `json:"cardinalities"`
}

// InitialConditions holds whichever schema the parameter file used;
// exactly one of List or Selection is populated.
type InitialConditions struct {
	List      []InitialConditionRecord
	Selection *InitialConditionsSelection
}

// UnmarshalJSON accepts either a JSON array (schema v1) or a JSON
// object (schema v2), mirroring the original's two supported
// initial_conditions shapes (spec §4.10, §6).
func (ic *InitialConditions) UnmarshalJSON(data []byte) error {
	var list []InitialConditionRecord
	if err := json.Unmarshal(data, &list); err == nil {
		ic.List = list
		return nil
	}
	var sel InitialConditionsSelection
	if err := json.Unmarshal(data, &sel); err != nil {
		return errors.Wrap(err, "initial_conditions matches neither schema")
	}
	ic.Selection = &sel
	return nil
}

// ImportIntensityParams is the JSON shape of the import_intensity
// block (spec §6).
type ImportIntensityParams struct {
	Function   string  `json:"function"`
	Multiplier float64 `json:"multiplier"`
	Rate       float64 `json:"rate"`
	Cap        int     `json:"cap"`
	Infectious float64 `json:"infectious"`
}

// RandomSeed accepts either a single int seed or a string encoding a
// list of seeds (spec §6: "random_seed (int or string encoding a
// list)").
type RandomSeed struct {
	Seeds []int64
}

// UnmarshalJSON parses a bare number into a single-element seed list,
// or a string of comma/space-separated integers into a multi-seed
// list.
func (r *RandomSeed) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		r.Seeds = []int64{n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "random_seed is neither an int nor a string")
	}
	seeds, err := parseSeedList(s)
	if err != nil {
		return err
	}
	r.Seeds = seeds
	return nil
}

func parseSeedList(s string) ([]int64, error) {
	var seeds []int64
	cur := int64(0)
	any := false
	neg := false
	flush := func() error {
		if !any {
			return nil
		}
		if neg {
			cur = -cur
		}
		seeds = append(seeds, cur)
		cur, any, neg = 0, false, false
		return nil
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			cur = cur*10 + int64(r-'0')
			any = true
		case r == '-' && !any:
			neg = true
		case r == ',' || r == ' ':
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			return nil, NewInvalidParameterError("random_seed", "unparseable seed list "+s)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, NewInvalidParameterError("random_seed", "empty seed list")
	}
	return seeds, nil
}

// Params is the top-level parameter file shape (spec §6), decoded with
// github.com/goccy/go-json the way the pack's manifests reach for it
// as an encoding/json drop-in (see DESIGN.md). Mirrors the teacher's
// SingleHostConfig/EvoEpiConfig pattern of a flat tagged struct plus a
// Validate method, translated from toml tags to json tags since the
// parameter file here is JSON (spec §1, §6), not TOML.
type Params struct {
	OutputRootDir           string                        `json:"output_root_dir"`
	ExperimentID            string                        `json:"experiment_id"`
	EpidemicStatus          string                        `json:"epidemic_status"`
	StopSimulationThreshold int                            `json:"stop_simulation_threshold"`
	CaseSeverityDistribution map[SeverityKey]float64      `json:"case_severity_distribution"`
	DeathProbability        map[SeverityKey]float64       `json:"death_probability"`
	DiseaseProgression      map[string]map[string]DistributionParams `json:"disease_progression"`
	TransmissionProbabilities map[string]float64          `json:"transmission_probabilities"`
	FearFactors             map[string]FearFactorParams   `json:"fear_factors"`
	InitialConditions       InitialConditions              `json:"initial_conditions"`
	ImportIntensity         ImportIntensityParams          `json:"import_intensity"`
	StartTime               float64                        `json:"start_time"`
	MaxTime                 float64                        `json:"max_time"`
	RandomSeed              RandomSeed                      `json:"random_seed"`
	SaveInputData           bool                            `json:"save_input_data"`
	LogOutputs              bool                            `json:"log_outputs"`
	Comment                 string                          `json:"comment"`
	AssemblyInputPaths      AssemblyInputPaths              `json:"assembly_input_paths"`

	validated bool
}

// AssemblyInputPaths names the three tabular inputs the population
// and household builders read (spec §4.2, §4.3.1): the age x gender
// marginal table, the per-household specification table, and the
// house-master lookup table. Not one of spec.md §6's required
// top-level keys verbatim, but a direct binding of the file paths
// those components need, in the same spirit as the teacher's own
// LogPath()-style config fields.
type AssemblyInputPaths struct {
	AgeGenderTable    string `json:"age_gender_table"`
	HouseholdTable    string `json:"household_table"`
	MasterLookupTable string `json:"master_lookup_table"`
}

// LoadParams reads and decodes a parameter file from path.
func LoadParams(path string) (*Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening parameter file")
	}
	defer f.Close()
	var p Params
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "decoding parameter file")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate performs Go-level structural validation: the
// case_severity_distribution keys are known severities summing to 1,
// every disease_progression entry carries T0/T1/T2/TDEATH, and max_time
// exceeds start_time. It does not check that required top-level keys
// are present. Unknown keys are rejected earlier, by LoadParams's
// decoder. JSON-schema validation is explicitly out of scope (spec
// §1); this follows the teacher's own SingleHostConfig.Validate style.
func (p *Params) Validate() error {
	sum := 0.0
	for _, v := range p.CaseSeverityDistribution {
		sum += v
	}
	if len(p.CaseSeverityDistribution) > 0 && (sum < 1-1e-9 || sum > 1+1e-9) {
		return NewInvalidParameterError("case_severity_distribution", "probabilities do not sum to 1")
	}
	for key := range p.CaseSeverityDistribution {
		if _, err := key.severity(); err != nil {
			return err
		}
	}
	for _, sub := range p.DiseaseProgression {
		for _, key := range []string{"T0", "T1", "T2", "TDEATH"} {
			if _, ok := sub[key]; !ok {
				return NewInvalidParameterError("disease_progression", "missing sub-key "+key)
			}
		}
	}
	if p.MaxTime <= p.StartTime {
		return NewInvalidParameterError("max_time", "must exceed start_time")
	}
	p.validated = true
	return nil
}

// SeverityDistribution converts the JSON severity-key map into the
// engine's SeverityDistribution.
func (p *Params) SeverityDistribution() SeverityDistribution {
	get := func(k SeverityKey) float64 { return p.CaseSeverityDistribution[k] }
	return SeverityDistribution{
		Asymptomatic: get(KeyAsymptomatic),
		Mild:         get(KeyMild),
		Severe:       get(KeySevere),
		Critical:     get(KeyCritical),
	}
}

// DeathProbabilityBySeverity converts the JSON death_probability map
// keyed by severity name into a Severity-keyed map the engine uses
// directly.
func (p *Params) DeathProbabilityBySeverity() (map[Severity]float64, error) {
	out := make(map[Severity]float64, len(p.DeathProbability))
	for k, v := range p.DeathProbability {
		sev, err := k.severity()
		if err != nil {
			return nil, err
		}
		out[sev] = v
	}
	return out, nil
}

// ProgressionDistributions resolves the per-status disease_progression
// map for the configured epidemic_status, falling back to "default"
// the way infection_model.py's disease_progression property does
// (`self._params[DISEASE_PROGRESSION].get(self.epidemic_status,
// self._params[DISEASE_PROGRESSION][DEFAULT])`).
func (p *Params) ProgressionDistributions() (ProgressionDistributions, error) {
	sub, ok := p.DiseaseProgression[p.EpidemicStatus]
	if !ok {
		sub, ok = p.DiseaseProgression["default"]
	}
	if !ok {
		return ProgressionDistributions{}, NewInvalidParameterError("disease_progression", "no entry for epidemic_status or default")
	}
	return ProgressionDistributions{
		T0:     sub["T0"].toSpec(),
		T1:     sub["T1"].toSpec(),
		T2:     sub["T2"].toSpec(),
		TDeath: sub["TDEATH"].toSpec(),
	}, nil
}

// Gamma0 converts the transmission_probabilities map into a
// KernelTag-keyed map.
func (p *Params) Gamma0() map[KernelTag]float64 {
	out := make(map[KernelTag]float64, len(p.TransmissionProbabilities))
	for k, v := range p.TransmissionProbabilities {
		out[kernelTagFromString(k)] = v
	}
	return out
}

// FearParamsByKernel converts the fear_factors map into a
// KernelTag-keyed map.
func (p *Params) FearParamsByKernel() (map[KernelTag]FearParams, error) {
	out := make(map[KernelTag]FearParams, len(p.FearFactors))
	for k, v := range p.FearFactors {
		fp, err := v.toParams()
		if err != nil {
			return nil, err
		}
		out[kernelTagFromString(k)] = fp
	}
	return out, nil
}

func kernelTagFromString(s string) KernelTag {
	switch s {
	case "household":
		return Household
	case "constant":
		return Constant
	case "transport":
		return Transport
	case "employment":
		return Employment
	case "friendship":
		return Friendship
	case "sporadic":
		return Sporadic
	default:
		return Sporadic
	}
}

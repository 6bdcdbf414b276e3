package outbreaksim

// EventType is the kind of transition an Event carries out (spec §3).
type EventType int

const (
	TMinus1 EventType = iota
	T0
	T1
	T2
	TDeath
)

func (t EventType) String() string {
	switch t {
	case TMinus1:
		return "TMINUS1"
	case T0:
		return "T0"
	case T1:
		return "T1"
	case T2:
		return "T2"
	case TDeath:
		return "TDEATH"
	default:
		return "UNKNOWN"
	}
}

// KernelTag names the transmission pathway that produced an event, or
// the non-kernel origins initial conditions and import intensity can
// also use (spec §3, §4.7).
type KernelTag int

const (
	DiseaseProgression KernelTag = iota
	InitialConditions
	ImportIntensity
	Household
	Constant
	Transport
	Employment
	Friendship
	Sporadic
)

func (k KernelTag) String() string {
	switch k {
	case DiseaseProgression:
		return "DISEASE_PROGRESSION"
	case InitialConditions:
		return "INITIAL_CONDITIONS"
	case ImportIntensity:
		return "IMPORT_INTENSITY"
	case Household:
		return "HOUSEHOLD"
	case Constant:
		return "CONSTANT"
	case Transport:
		return "TRANSPORT"
	case Employment:
		return "EMPLOYMENT"
	case Friendship:
		return "FRIENDSHIP"
	case Sporadic:
		return "SPORADIC"
	default:
		return "UNKNOWN"
	}
}

// InfectionStatus is a person's epidemiological state (spec §3).
type InfectionStatus int

const (
	Healthy InfectionStatus = iota
	Contraction
	Infectious
	StayHome
	Hospital
	Death
)

func (s InfectionStatus) String() string {
	switch s {
	case Healthy:
		return "HEALTHY"
	case Contraction:
		return "CONTRACTION"
	case Infectious:
		return "INFECTIOUS"
	case StayHome:
		return "STAY_HOME"
	case Hospital:
		return "HOSPITAL"
	case Death:
		return "DEATH"
	default:
		return "UNKNOWN"
	}
}

// IsActive reports whether the status belongs to the "active states"
// set {Contraction, Infectious, StayHome, Hospital} (spec §3).
func (s InfectionStatus) IsActive() bool {
	switch s {
	case Contraction, Infectious, StayHome, Hospital:
		return true
	default:
		return false
	}
}

// Event is one scheduled transition (spec §3). Time is the simulation
// clock value it fires at; IssuedTime is when it was scheduled,
// carried for diagnostics and logging parity with the original's
// event records. InitiatedBy is the source person id for
// transmission events, the person's own id for disease-progression
// events, and -1 for initial-condition and import events.
type Event struct {
	Time             float64
	PersonID         int
	Type             EventType
	InitiatedBy      int
	InitiatedThrough KernelTag
	IssuedTime       float64
	EpidemicStatus   string

	seq int
}

package outbreaksim

const (
	UnequalFloatParameterError  = "expected %s %f, instead got %f"
	UnequalIntParameterError    = "expected %s %d, instead got %d"
	UnequalStringParameterError = "expected %s %s, instead got %s"
	UnexpectedErrorWhileError   = "encountered error while %s: %s"
	ExpectedErrorWhileError     = "expected an error while %s, instead got none"
)

// InvalidParameterError reports a configuration or input value that
// fails validation, naming the offending field and why it was rejected.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// NewInvalidParameterError is the constructor used throughout config
// validation and sampling where a single field/reason pair is enough.
func NewInvalidParameterError(field, reason string) error {
	return &InvalidParameterError{Field: field, Reason: reason}
}

// InsufficientCandidatesError reports a selection pool that ran out of
// members before satisfying a requested cardinality, e.g. an initial
// conditions cluster that asks for more persons than remain unassigned.
type InsufficientCandidatesError struct {
	Cluster   string
	Wanted    int
	Available int
}

func (e *InsufficientCandidatesError) Error() string {
	return "insufficient candidates for " + e.Cluster
}

// UnreachableSelectionError reports a household whose family_type,
// headcount, relationship and archetype combination matches no row of
// the house-master priority table.
type UnreachableSelectionError struct {
	HouseholdIndex int
	Detail         string
}

func (e *UnreachableSelectionError) Error() string {
	return "unreachable house-master selection: " + e.Detail
}

// StateMachineAnomaly records an event applied against a person whose
// current infection status did not permit the transition (spec §8's
// guard-logic edge cases). The engine accumulates these rather than
// failing the run.
type StateMachineAnomaly struct {
	PersonID  int
	EventType EventType
	Status    InfectionStatus
}
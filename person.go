package outbreaksim

import "fmt"

// Sentinel values for unassigned Person fields, matching the
// HOUSEHOLD_NOT_ASSIGNED / PROFESSION_NOT_ASSIGNED conventions of
// entities.py.
const (
	HouseholdNotAssigned = -1
	ProfessionNotAssigned = -1
)

// Gender is a person's recorded gender.
type Gender int

// Gender values. NotSet mirrors entities.py's Gender.NOT_SET = -1.
const (
	GenderNotSet Gender = iota - 1
	Male
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "MALE"
	case Female:
		return "FEMALE"
	default:
		return "NOT_SET"
	}
}

// EmploymentStatus is a person's employment status.
type EmploymentStatus int

const (
	EmploymentNotSet EmploymentStatus = iota - 1
	NotEmployed
	Employed
)

func (s EmploymentStatus) String() string {
	switch s {
	case NotEmployed:
		return "NOT_EMPLOYED"
	case Employed:
		return "EMPLOYED"
	default:
		return "NOT_SET"
	}
}

// Generation is the coarse three-bucket age label used for household
// composition constraints (young/middle/elderly), supplied to the
// population builder via a caller-provided age-to-generation mapping
// (spec: "derived via an external mapping table supplied by the
// caller").
type Generation int

const (
	Young Generation = iota
	Middle
	Elderly
)

func (g Generation) String() string {
	switch g {
	case Young:
		return "young"
	case Middle:
		return "middle"
	case Elderly:
		return "elderly"
	default:
		return fmt.Sprintf("Generation(%d)", int(g))
	}
}

// GenerationMap maps an integer age to a coarse Generation bucket.
// The population builder never hard-codes cut-points; the caller
// supplies them (spec §4.2).
type GenerationMap func(age int) Generation

// EconomicGroup is the four-bucket productive/non-productive age
// classification carried over from entities.py's EconomicalGroup
// enum (PRZEDPRODUKCYJNY / PRODUKCYJNY_MOBILNY / PRODUKCYJNY_NIEMOBILNY
// / POPRODUKCYJNY). Distinct from Generation: Generation drives
// household lodging, EconomicGroup drives the employment decorator's
// "production age" restriction (SPEC_FULL §11).
type EconomicGroup int

const (
	PreProductive EconomicGroup = iota
	ProductiveMobile
	ProductiveNonMobile
	PostProductive
)

// Person is a single simulated individual.
type Person struct {
	ID                      int
	Age                     int
	Gender                  Gender
	EmploymentStatus        EmploymentStatus
	SocialCompetence        float64
	PublicTransportUsage    int
	PublicTransportDuration float64
	HouseholdID             int
	ProfessionIndex         int
	Generation              Generation
}

// NewPerson creates a person with age/gender set and all other fields
// at their not-assigned defaults, mirroring entities.py's Node
// defaults.
func NewPerson(id, age int, gender Gender) *Person {
	return &Person{
		ID:               id,
		Age:              age,
		Gender:           gender,
		EmploymentStatus: EmploymentNotSet,
		HouseholdID:      HouseholdNotAssigned,
		ProfessionIndex:  ProfessionNotAssigned,
	}
}

// EconomicGroup classifies the person into the four-bucket productive
// age group used by the employment decorator, following
// entities.py::Node.economical_group exactly: age<18 pre-productive,
// age<45 productive-mobile, then a sex-dependent cutoff (female <60,
// male <65) for productive-non-mobile, else post-productive.
func (p *Person) EconomicGroup() EconomicGroup {
	if p.Age < 18 {
		return PreProductive
	}
	if p.Age < 45 {
		return ProductiveMobile
	}
	if p.Gender == Female && p.Age < 60 {
		return ProductiveNonMobile
	}
	if p.Gender == Male && p.Age < 65 {
		return ProductiveNonMobile
	}
	return PostProductive
}

// InProductionAge reports whether the person belongs to either
// productive economic group, the restriction the employment decorator
// samples from (spec §4.4).
func (p *Person) InProductionAge() bool {
	g := p.EconomicGroup()
	return g == ProductiveMobile || g == ProductiveNonMobile
}

// IsLodged reports whether the person has been assigned a household.
func (p *Person) IsLodged() bool {
	return p.HouseholdID != HouseholdNotAssigned
}

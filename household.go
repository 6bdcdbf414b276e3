package outbreaksim

// FamilyType classifies a household's family structure (spec §3):
// 0 covers non-family/single households, 1-3 the number of family
// units sharing the address.
type FamilyType int

const (
	NonFamily FamilyType = iota
	OneFamily
	TwoFamilies
	ThreeFamilies
)

// GenerationPresence is the (young, middle, elderly) ∈ {0,1}^3 mask
// carried by a household row, read directly off the input table
// (spec §3, §4.3.1).
type GenerationPresence struct {
	Young   bool
	Middle  bool
	Elderly bool
}

// Count returns how many of the three generation flags are set.
func (g GenerationPresence) Count() int {
	n := 0
	if g.Young {
		n++
	}
	if g.Middle {
		n++
	}
	if g.Elderly {
		n++
	}
	return n
}

// Has reports whether the given generation is present.
func (g GenerationPresence) Has(gen Generation) bool {
	switch gen {
	case Young:
		return g.Young
	case Middle:
		return g.Middle
	case Elderly:
		return g.Elderly
	default:
		return false
	}
}

// Relationship tags the household's archetype string used to
// disambiguate the §4.3.1 priority table rows that share a
// (family_type, headcount) pair.
type Relationship string

const (
	RelNone                  Relationship = ""
	RelNoPersonsOutsideFamily Relationship = "no persons outside family"
	RelWithOtherPersons      Relationship = "with other persons"
	RelWithDirectLineElder   Relationship = "with direct-line elder"
	RelDirectLineRelated     Relationship = "direct-line related"
	RelNotDirectLineRelated  Relationship = "not direct-line related"
)

// HouseMasterArchetype further narrows a relationship to the specific
// role a household's house-master plays (§4.3.1 rows for headcount>=3
// and the >=4, two-family rows).
type HouseMasterArchetype string

const (
	ArchetypeNone                  HouseMasterArchetype = ""
	ArchetypeFamilyMember          HouseMasterArchetype = "family member"
	ArchetypeElderGenerationRelative HouseMasterArchetype = "elder-generation relative"
	ArchetypeOtherPerson           HouseMasterArchetype = "other person"
	ArchetypeYoungerGenerationFamilyMember HouseMasterArchetype = "younger-generation family member"
	ArchetypeElderGenerationFamilyMember   HouseMasterArchetype = "elder-generation family member"
)

// Household is one dwelling unit assembled by the household builder
// (spec §3).
type Household struct {
	ID                int
	Headcount         int
	FamilyType        FamilyType
	Presence          GenerationPresence
	Relationship      Relationship
	Archetype         HouseMasterArchetype
	FamilyStructure    [3]string

	HouseMasterID     int
	MasterAgeBucket    AgeBucket
	MasterGender       Gender
}

// NewHousehold creates a household with no master assigned yet.
func NewHousehold(id, headcount int, ft FamilyType, presence GenerationPresence) *Household {
	return &Household{
		ID:            id,
		Headcount:     headcount,
		FamilyType:    ft,
		Presence:      presence,
		HouseMasterID: HouseholdNotAssigned,
	}
}

// AgeBucket is an age-selection predicate. Most buckets are a single
// exact age; the house-master lookup table also uses the three named
// buckets population.py matches by explicit string ("19 lat i mniej",
// "20-24", "25-29") rather than a single age (spec §4.3.1, Open
// Question iii resolved by keeping those three named sets explicit
// rather than guessing a general parser for arbitrary bucket strings).
type AgeBucket struct {
	Label string
	Exact int
	Years []int
}

// ParseAgeBucket turns a lookup-table age-bucket label into an
// AgeBucket. "19 lat i mniej" maps to exactly {18, 19}
// (population.py: `population[...].isin((18, 19))`, not every age 19
// and under despite the label's literal reading); "20-24"/"25-29" map
// to their explicit year sets; anything else is parsed as a literal
// integer age, mirroring the direct int/age comparisons population.py
// falls back to outside its three special-cased strings.
func ParseAgeBucket(label string) AgeBucket {
	switch label {
	case "19 lat i mniej":
		return AgeBucket{Label: label, Years: []int{18, 19}}
	case "20-24":
		return AgeBucket{Label: label, Years: []int{20, 21, 22, 23, 24}}
	case "25-29":
		return AgeBucket{Label: label, Years: []int{25, 26, 27, 28, 29}}
	default:
		age := parseIntOrNegative(label)
		return AgeBucket{Label: label, Exact: age}
	}
}

// Matches reports whether age falls within the bucket.
func (b AgeBucket) Matches(age int) bool {
	if len(b.Years) > 0 {
		for _, y := range b.Years {
			if y == age {
				return true
			}
		}
		return false
	}
	return age == b.Exact
}

func parseIntOrNegative(s string) int {
	n := 0
	neg := false
	any := false
	for _, r := range s {
		if r == '-' && !any {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return -1
		}
		any = true
		n = n*10 + int(r-'0')
	}
	if !any {
		return -1
	}
	if neg {
		return -n
	}
	return n
}

// MasterCandidateRow is one row of the house-master lookup table
// (spec §4.3.1): an age bucket / gender / headcount combination with
// its observed count and within-headcount probability.
type MasterCandidateRow struct {
	AgeBucket   AgeBucket
	Gender      Gender
	Headcount   int
	Count       float64
	Probability float64
	Presence    GenerationPresence
}

package outbreaksim

// AgeGenderRow is one row of the age x gender marginal table that
// seeds the population: the number of males and females of a given
// age, and their sum (spec §4.2). Total is expected to equal
// Males+Females but is taken as given and not recomputed, mirroring
// population.py's direct use of the Total/Males/Females columns.
type AgeGenderRow struct {
	Age     int
	Males   int
	Females int
	Total   int
}

// BuildPopulation expands an age x gender marginal table into one
// Person per unit of Total, in row order, with ids assigned by
// position (spec §4.2: "deterministic given input order").
//
// Grounded on population.py::__age_gender_population, which expands
// ages.extend([row.Age] * row.Total) and genders.extend(...) per
// Males/Females counts. Generation is attached per person via the
// caller-supplied GenerationMap (population.py has no generation
// concept; this spec's §4.2 explicitly routes it through an external
// mapping table instead of embedding cut-points here).
func BuildPopulation(rows []AgeGenderRow, genOf GenerationMap) []*Person {
	var people []*Person
	id := 0
	for _, row := range rows {
		for i := 0; i < row.Males; i++ {
			p := NewPerson(id, row.Age, Male)
			p.Generation = genOf(row.Age)
			people = append(people, p)
			id++
		}
		for i := 0; i < row.Females; i++ {
			p := NewPerson(id, row.Age, Female)
			p.Generation = genOf(row.Age)
			people = append(people, p)
			id++
		}
	}
	return people
}

// DefaultGenerationMap is the coarse young<20, middle<45, else elderly
// cut used by the original's economical_group scaffolding (SPEC_FULL
// §11) when the parameter file supplies no explicit age->generation
// mapping table. Callers are expected to supply their own mapping
// derived from input data per spec §4.2; this is only a sane fallback.
func DefaultGenerationMap(age int) Generation {
	switch {
	case age < 20:
		return Young
	case age < 45:
		return Middle
	default:
		return Elderly
	}
}

// PopulationCount reports the total number of persons expected from an
// age x gender table, used by tests to verify population conservation
// (spec §8 property 1).
func PopulationCount(rows []AgeGenderRow) int {
	total := 0
	for _, row := range rows {
		total += row.Total
	}
	return total
}

package outbreaksim

import (
	"math/rand"
	"sort"
)

// allowedMasterGenerations implements the §4.3.1 priority table: given
// a household's family type, headcount, relationship and archetype
// tags, and its generation-presence mask, returns the set of
// generations a house-master may be drawn from. Rows are tried in the
// table's own priority order; the first matching row wins. An
// unhandled combination is a hard UnreachableSelectionError, per the
// table's "exhaustive; any unhandled combination is a hard error"
// note.
func allowedMasterGenerations(h *Household) ([]Generation, error) {
	p := h.Presence

	if p.Count() == 1 {
		return []Generation{onlyPresent(p)}, nil
	}

	if h.FamilyType == NonFamily || h.FamilyType == ThreeFamilies {
		return presentGenerations(p), nil
	}

	if h.FamilyType == OneFamily && h.Headcount == 2 {
		if p.Elderly {
			return []Generation{Elderly}, nil
		}
		return []Generation{Middle}, nil
	}

	if h.FamilyType == OneFamily && h.Headcount >= 3 {
		switch h.Relationship {
		case RelNoPersonsOutsideFamily:
			switch {
			case p.Elderly && p.Middle && p.Young:
				return []Generation{Middle, Elderly}, nil
			case p.Elderly && p.Middle:
				return []Generation{Elderly}, nil
			case p.Middle && p.Young:
				return []Generation{Middle}, nil
			case p.Elderly && p.Young:
				return []Generation{Elderly}, nil
			}
		case RelWithOtherPersons:
			return presentAdultGenerations(p), nil
		case RelWithDirectLineElder:
			switch h.Archetype {
			case ArchetypeFamilyMember:
				if p.Middle && p.Elderly {
					return []Generation{Middle}, nil
				}
				return []Generation{Young}, nil
			case ArchetypeElderGenerationRelative:
				if p.Elderly {
					return []Generation{Elderly}, nil
				}
				return []Generation{Middle}, nil
			case ArchetypeOtherPerson:
				return presentGenerations(p), nil
			}
		}
	}

	if h.FamilyType == TwoFamilies && h.Headcount >= 4 {
		switch h.Relationship {
		case RelDirectLineRelated:
			switch h.Archetype {
			case ArchetypeYoungerGenerationFamilyMember:
				if p.Elderly && p.Middle {
					return []Generation{Middle}, nil
				}
				return []Generation{Young}, nil
			case ArchetypeElderGenerationFamilyMember:
				if p.Elderly {
					return []Generation{Elderly}, nil
				}
				return []Generation{Middle}, nil
			case ArchetypeOtherPerson:
				return presentGenerations(p), nil
			}
		case RelNotDirectLineRelated:
			return presentGenerations(p), nil
		}
	}

	return nil, &UnreachableSelectionError{
		HouseholdIndex: h.ID,
		Detail:         "no priority-table row matches family_type/headcount/relationship/archetype",
	}
}

func onlyPresent(p GenerationPresence) Generation {
	switch {
	case p.Young:
		return Young
	case p.Middle:
		return Middle
	default:
		return Elderly
	}
}

func presentGenerations(p GenerationPresence) []Generation {
	var gens []Generation
	if p.Young {
		gens = append(gens, Young)
	}
	if p.Middle {
		gens = append(gens, Middle)
	}
	if p.Elderly {
		gens = append(gens, Elderly)
	}
	return gens
}

func presentAdultGenerations(p GenerationPresence) []Generation {
	var gens []Generation
	if p.Middle {
		gens = append(gens, Middle)
	}
	if p.Elderly {
		gens = append(gens, Elderly)
	}
	if len(gens) == 0 {
		gens = presentGenerations(p)
	}
	return gens
}

func generationAllowed(gens []Generation, g Generation) bool {
	for _, x := range gens {
		if x == g {
			return true
		}
	}
	return false
}

// SelectMasterRow narrows rows to the household's headcount and
// presence mask, further narrows by the generations
// allowedMasterGenerations returns, then draws one row with
// probability proportional to its Count (spec §4.3.1: "draw one row
// with probability proportional to its Count/sum(Count)"). genOf
// classifies a row's age bucket into a generation using its
// representative age, the same external mapping the population
// builder uses.
func SelectMasterRow(h *Household, rows []MasterCandidateRow, genOf GenerationMap, rng *rand.Rand) (MasterCandidateRow, error) {
	allowed, err := allowedMasterGenerations(h)
	if err != nil {
		return MasterCandidateRow{}, err
	}

	var candidates []MasterCandidateRow
	for _, row := range rows {
		if row.Headcount != h.Headcount {
			continue
		}
		if row.Presence != h.Presence {
			continue
		}
		if !generationAllowed(allowed, bucketGeneration(row.AgeBucket, genOf)) {
			continue
		}
		candidates = append(candidates, row)
	}
	if len(candidates) == 0 {
		return MasterCandidateRow{}, &UnreachableSelectionError{
			HouseholdIndex: h.ID,
			Detail:         "no house-master lookup row survived narrowing",
		}
	}

	var total float64
	for _, c := range candidates {
		total += c.Count
	}
	if total <= 0 {
		return candidates[0], nil
	}
	draw := rng.Float64() * total
	var cum float64
	for _, c := range candidates {
		cum += c.Count
		if draw <= cum {
			return c, nil
		}
	}
	return candidates[len(candidates)-1], nil
}

func bucketGeneration(b AgeBucket, genOf GenerationMap) Generation {
	if len(b.Years) > 0 {
		return genOf(b.Years[0])
	}
	return genOf(b.Exact)
}

// AssignMasters runs the §4.3.2 pass 1 ("master lodging"): group
// households by (master age bucket, master gender), match candidate
// persons by age/gender within each group, draw the group's demand
// without replacement, and assign household_id/house_master. When a
// group's candidate pool is smaller than its demand, every candidate
// becomes a master and an equal-sized random subset of the group's
// households is served (spec §4.3.2, recoverable "insufficient
// candidates" case); the unserved households are returned so the
// caller can log them.
func AssignMasters(households []*Household, people []*Person, rng *rand.Rand) []*Household {
	type groupKey struct {
		bucket AgeBucket
		gender Gender
	}
	groups := make(map[groupKey][]*Household)
	for _, h := range households {
		key := groupKey{bucket: h.MasterAgeBucket, gender: h.MasterGender}
		groups[key] = append(groups[key], h)
	}

	var unserved []*Household
	for key, group := range groups {
		var candidates []*Person
		for _, p := range people {
			if p.IsLodged() {
				continue
			}
			if p.Gender != key.gender {
				continue
			}
			if !key.bucket.Matches(p.Age) {
				continue
			}
			candidates = append(candidates, p)
		}

		demand := len(group)
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

		if demand > len(candidates) {
			rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
			unserved = append(unserved, group[len(candidates):]...)
			group = group[:len(candidates)]
		}
		for i, h := range group {
			master := candidates[i]
			master.HouseholdID = h.ID
			h.HouseMasterID = master.ID
		}
	}
	return unserved
}

// LodgeMembers runs the §4.3.2 pass 2 ("rest lodging"). For every
// household with a master already assigned, it first guarantees one
// member from every presence-flagged generation, then fills remaining
// seats by repeatedly drawing from the household's still-available
// present generations until headcount is reached or the unlodged pool
// for this household is exhausted. Households that could not be fully
// filled are returned (spec §4.3.2: "record it (warning)").
func LodgeMembers(households []*Household, people []*Person, genOf GenerationMap, rng *rand.Rand) []*Household {
	byGen := map[Generation][]*Person{}
	for _, p := range people {
		if p.IsLodged() {
			continue
		}
		byGen[p.Generation] = append(byGen[p.Generation], p)
	}
	pop := func(gen Generation, rng *rand.Rand) *Person {
		pool := byGen[gen]
		if len(pool) == 0 {
			return nil
		}
		i := rng.Intn(len(pool))
		chosen := pool[i]
		pool[i] = pool[len(pool)-1]
		byGen[gen] = pool[:len(pool)-1]
		return chosen
	}

	var underfilled []*Household
	for _, h := range households {
		if h.HouseMasterID == HouseholdNotAssigned {
			continue
		}
		lodged := 1
		present := presentGenerations(h.Presence)
		for _, gen := range present {
			if masterIsOf(h, people, genOf) == gen {
				continue
			}
			if lodged >= h.Headcount {
				break
			}
			if person := pop(gen, rng); person != nil {
				person.HouseholdID = h.ID
				lodged++
			}
		}

		remaining := present
		for lodged < h.Headcount && len(remaining) > 0 {
			idx := rng.Intn(len(remaining))
			gen := remaining[idx]
			person := pop(gen, rng)
			if person == nil {
				remaining = append(remaining[:idx], remaining[idx+1:]...)
				continue
			}
			person.HouseholdID = h.ID
			lodged++
		}
		if lodged < h.Headcount {
			underfilled = append(underfilled, h)
		}
	}
	return underfilled
}

func masterIsOf(h *Household, people []*Person, genOf GenerationMap) Generation {
	for _, p := range people {
		if p.ID == h.HouseMasterID {
			return p.Generation
		}
	}
	return genOf(0)
}

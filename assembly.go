package outbreaksim

import (
	"encoding/csv"
	"math/rand"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Assembly bundles the fully-built population and household graph the
// driver needs: every person, every household, and the household id
// -> member person ids index the kernel dispatcher uses for household
// peer lookups (spec §4.2-§4.3).
type Assembly struct {
	People     []*Person
	Households []*Household
	Members    map[int][]int
}

// householdInputRow mirrors one row of the per-household input table
// spec §4.3.1 describes (headcount, family_type, young, middle,
// elderly, relationship, house_master, family_structure_regex).
type householdInputRow struct {
	Headcount       int
	FamilyType      FamilyType
	Presence        GenerationPresence
	Relationship    Relationship
	Archetype       HouseMasterArchetype
	FamilyStructure [3]string
}

// LoadAssemblyInputs reads the age x gender table, household
// specification table, and house-master lookup table named by the
// parameter file's AssemblyInputPaths (SPEC_FULL §11 supplement: the
// original spec.md's Individuals/Households tables are external
// collaborators this repo reads via plain CSV, since no third-party
// tabular reader appears anywhere in the retrieved corpus — see
// DESIGN.md), then runs the full §4.2/§4.3 assembly pipeline.
func LoadAssemblyInputs(p *Params) (*Assembly, error) {
	rows, err := loadAgeGenderCSV(p.AssemblyInputPaths.AgeGenderTable)
	if err != nil {
		return nil, err
	}
	people := BuildPopulation(rows, DefaultGenerationMap)

	hhRows, err := loadHouseholdCSV(p.AssemblyInputPaths.HouseholdTable)
	if err != nil {
		return nil, err
	}
	masterRows, err := loadMasterCandidateCSV(p.AssemblyInputPaths.MasterLookupTable)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(1))
	if len(p.RandomSeed.Seeds) > 0 {
		rng = rand.New(rand.NewSource(p.RandomSeed.Seeds[0]))
	}

	households := make([]*Household, len(hhRows))
	for i, row := range hhRows {
		h := NewHousehold(i, row.Headcount, row.FamilyType, row.Presence)
		h.Relationship = row.Relationship
		h.Archetype = row.Archetype
		h.FamilyStructure = row.FamilyStructure
		master, err := SelectMasterRow(h, masterRows, DefaultGenerationMap, rng)
		if err != nil {
			return nil, err
		}
		h.MasterAgeBucket = master.AgeBucket
		h.MasterGender = master.Gender
		households[i] = h
	}

	AssignMasters(households, people, rng)
	LodgeMembers(households, people, DefaultGenerationMap, rng)

	members := make(map[int][]int)
	for _, person := range people {
		if person.IsLodged() {
			members[person.HouseholdID] = append(members[person.HouseholdID], person.ID)
		}
	}

	return &Assembly{People: people, Households: households, Members: members}, nil
}

func loadAgeGenderCSV(path string) ([]AgeGenderRow, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rows := make([]AgeGenderRow, 0, len(records))
	for _, rec := range records {
		age, err := strconv.Atoi(rec["age"])
		if err != nil {
			return nil, errors.Wrap(err, "parsing age")
		}
		males, _ := strconv.Atoi(rec["males"])
		females, _ := strconv.Atoi(rec["females"])
		total, _ := strconv.Atoi(rec["total"])
		rows = append(rows, AgeGenderRow{Age: age, Males: males, Females: females, Total: total})
	}
	return rows, nil
}

func loadHouseholdCSV(path string) ([]householdInputRow, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rows := make([]householdInputRow, 0, len(records))
	for _, rec := range records {
		headcount, _ := strconv.Atoi(rec["household_headcount"])
		familyType, _ := strconv.Atoi(rec["family_type"])
		rows = append(rows, householdInputRow{
			Headcount:  headcount,
			FamilyType: FamilyType(familyType),
			Presence: GenerationPresence{
				Young:   rec["young"] == "1",
				Middle:  rec["middle"] == "1",
				Elderly: rec["elderly"] == "1",
			},
			Relationship: Relationship(rec["relationship"]),
			Archetype:    HouseMasterArchetype(rec["house_master"]),
			FamilyStructure: [3]string{rec["family1"], rec["family2"], rec["family3"]},
		})
	}
	return rows, nil
}

func loadMasterCandidateCSV(path string) ([]MasterCandidateRow, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	rows := make([]MasterCandidateRow, 0, len(records))
	for _, rec := range records {
		headcount, _ := strconv.Atoi(rec["headcount"])
		count, _ := strconv.ParseFloat(rec["count"], 64)
		probability, _ := strconv.ParseFloat(rec["probability"], 64)
		gender := GenderNotSet
		switch rec["gender"] {
		case "MALE":
			gender = Male
		case "FEMALE":
			gender = Female
		}
		rows = append(rows, MasterCandidateRow{
			AgeBucket:   ParseAgeBucket(rec["age_bucket"]),
			Gender:      gender,
			Headcount:   headcount,
			Count:       count,
			Probability: probability,
			Presence: GenerationPresence{
				Young:   rec["young"] == "1",
				Middle:  rec["middle"] == "1",
				Elderly: rec["elderly"] == "1",
			},
		})
	}
	return rows, nil
}

func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	r := csv.NewReader(f)
	all, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(all) == 0 {
		return nil, nil
	}
	header := all[0]
	records := make([]map[string]string, 0, len(all)-1)
	for _, row := range all[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

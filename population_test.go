package outbreaksim

import "testing"

func TestBuildPopulation_Conservation(t *testing.T) {
	rows := []AgeGenderRow{
		{Age: 10, Males: 3, Females: 2, Total: 5},
		{Age: 40, Males: 1, Females: 4, Total: 5},
	}
	people := BuildPopulation(rows, DefaultGenerationMap)
	want := PopulationCount(rows)
	if len(people) != want {
		t.Errorf(UnequalIntParameterError, "population size", want, len(people))
	}

	males, females := 0, 0
	for _, p := range people {
		switch p.Gender {
		case Male:
			males++
		case Female:
			females++
		}
	}
	if males != 4 {
		t.Errorf(UnequalIntParameterError, "male count", 4, males)
	}
	if females != 6 {
		t.Errorf(UnequalIntParameterError, "female count", 6, females)
	}
}

func TestBuildPopulation_IDsSequentialByRowOrder(t *testing.T) {
	rows := []AgeGenderRow{{Age: 5, Males: 2, Females: 1, Total: 3}}
	people := BuildPopulation(rows, DefaultGenerationMap)
	for i, p := range people {
		if p.ID != i {
			t.Errorf(UnequalIntParameterError, "person id", i, p.ID)
		}
		if p.Age != 5 {
			t.Errorf(UnequalIntParameterError, "person age", 5, p.Age)
		}
	}
}

func TestDefaultGenerationMap(t *testing.T) {
	cases := map[int]Generation{
		0:  Young,
		19: Young,
		20: Middle,
		44: Middle,
		45: Elderly,
		90: Elderly,
	}
	for age, want := range cases {
		if got := DefaultGenerationMap(age); got != want {
			t.Errorf(UnequalStringParameterError, "generation", want.String(), got.String())
		}
	}
}

func TestPersonEconomicGroup(t *testing.T) {
	cases := []struct {
		age    int
		gender Gender
		want   EconomicGroup
	}{
		{10, Male, PreProductive},
		{30, Female, ProductiveMobile},
		{50, Female, ProductiveNonMobile},
		{50, Male, ProductiveNonMobile},
		{64, Male, ProductiveNonMobile},
		{65, Male, PostProductive},
		{60, Female, PostProductive},
	}
	for _, c := range cases {
		p := NewPerson(0, c.age, c.gender)
		if got := p.EconomicGroup(); got != c.want {
			t.Errorf(UnequalIntParameterError, "economic group", int(c.want), int(got))
		}
	}
}

package outbreaksim

import (
	"math/rand"
	"testing"
)

func testPeople(n int) []*Person {
	people := make([]*Person, n)
	for i := range people {
		gender := Male
		if i%2 == 1 {
			gender = Female
		}
		people[i] = NewPerson(i, 30+i%40, gender)
	}
	return people
}

func TestApplySocialCompetence_RescalesToUnitInterval(t *testing.T) {
	people := testPeople(30)
	rng := rand.New(rand.NewSource(1))
	if err := ApplySocialCompetence(people, 0, 1, rng); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "applying social competence", err.Error())
	}
	for _, p := range people {
		if p.SocialCompetence < 0 || p.SocialCompetence > 1 {
			t.Errorf(UnequalFloatParameterError, "social competence in [0,1]", 0.5, p.SocialCompetence)
		}
	}
}

func TestApplyPublicTransportUsage_SetsBinaryFlag(t *testing.T) {
	people := testPeople(50)
	ApplyPublicTransportUsage(people)
	for _, p := range people {
		if p.PublicTransportUsage != 0 && p.PublicTransportUsage != 1 {
			t.Errorf(UnequalIntParameterError, "public transport usage flag", 1, p.PublicTransportUsage)
		}
	}
}

func TestApplyPublicTransportDuration_NonUsersStayAtZero(t *testing.T) {
	people := testPeople(10)
	rng := rand.New(rand.NewSource(5))
	if err := ApplyPublicTransportDuration(people, rng); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "applying public transport duration to a zero-user population", err.Error())
	}
	for _, p := range people {
		if p.PublicTransportDuration != 0 {
			t.Errorf(UnequalFloatParameterError, "duration for a non-user", 0, p.PublicTransportDuration)
		}
	}
}

func TestApplyPublicTransportDuration_UsersGetNonNegativeDuration(t *testing.T) {
	people := testPeople(10)
	for i := range people {
		people[i].PublicTransportUsage = 1
	}
	rng := rand.New(rand.NewSource(5))
	if err := ApplyPublicTransportDuration(people, rng); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "applying public transport duration", err.Error())
	}
	for _, p := range people {
		if p.PublicTransportDuration < 0 {
			t.Errorf(UnequalFloatParameterError, "non-negative transport duration", 0, p.PublicTransportDuration)
		}
	}
}

func TestApplyEmployment_ClampsToEligiblePoolSize(t *testing.T) {
	people := []*Person{NewPerson(0, 30, Male), NewPerson(1, 31, Female)}
	rng := rand.New(rand.NewSource(1))
	ApplyEmployment(people, 10, rng)
	employed := 0
	for _, p := range people {
		if p.EmploymentStatus == Employed {
			employed++
		}
	}
	if employed != 2 {
		t.Errorf(UnequalIntParameterError, "employed count clamped to eligible pool", 2, employed)
	}
}

func TestApplyEmployment_LeavesIneligiblePeopleUntouched(t *testing.T) {
	child := NewPerson(0, 10, Male)
	people := []*Person{child}
	rng := rand.New(rand.NewSource(1))
	ApplyEmployment(people, 1, rng)
	if child.EmploymentStatus != EmploymentNotSet {
		t.Errorf(UnequalStringParameterError, "employment status for a child", "NOT_SET", child.EmploymentStatus.String())
	}
}

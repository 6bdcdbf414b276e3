package outbreaksim

import (
	"math/rand"

	rv "github.com/kentwait/randomvariate"
)

// ApplySocialCompetence draws one normal(loc, scale) sample per person,
// min-max rescales the batch to [0,1], and writes it back onto
// SocialCompetence. Grounded on population.py::generate_social_competence,
// which does exactly this with sklearn's MinMaxScaler; here via Sample
// + MinMaxScale (spec §4.4).
func ApplySocialCompetence(people []*Person, loc, scale float64, rng *rand.Rand) error {
	values, err := Sample(DistributionSpec{Name: "normal", Loc: loc, Scale: scale}, len(people), rng)
	if err != nil {
		return err
	}
	MinMaxScale(values)
	for i, p := range people {
		p.SocialCompetence = values[i]
	}
	return nil
}

// PublicTransportUsageProbability is the fixed Bernoulli parameter
// spec §4.4 gives for public-transport usage.
const PublicTransportUsageProbability = 0.28

// ApplyPublicTransportUsage draws one Bernoulli(0.28) per person via
// the teacher's own randomvariate dependency (rv.Binomial(1, p) is the
// teacher's idiom for a single Bernoulli trial, used throughout
// spreader.go and interhost_process.go).
func ApplyPublicTransportUsage(people []*Person) {
	for _, p := range people {
		if rv.Binomial(1, PublicTransportUsageProbability) == 1 {
			p.PublicTransportUsage = 1
		} else {
			p.PublicTransportUsage = 0
		}
	}
}

// publicTransportAllPopulationAverage is the 1.7 * 32 constant spec
// §4.4 spreads over actual users to derive the rescale ceiling.
const publicTransportAllPopulationAverage = 1.7 * 32

// ApplyPublicTransportDuration samples a normal(0,1) for every person
// flagged as a transport user, rescales that subset linearly to
// [0, 2*mu] where mu = allPopulationAverage * N / N' (N = population
// size, N' = user count), and leaves non-users at duration 0 (spec
// §4.4). A zero-user population leaves every duration at 0 and is not
// an error.
func ApplyPublicTransportDuration(people []*Person, rng *rand.Rand) error {
	var users []*Person
	for _, p := range people {
		if p.PublicTransportUsage == 1 {
			users = append(users, p)
		}
	}
	if len(users) == 0 {
		return nil
	}
	values, err := Sample(DistributionSpec{Name: "normal", Loc: 0, Scale: 1}, len(users), rng)
	if err != nil {
		return err
	}
	mu := publicTransportAllPopulationAverage * float64(len(people)) / float64(len(users))
	ceiling := 2 * mu
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	spread := hi - lo
	for i, p := range users {
		if spread == 0 {
			p.PublicTransportDuration = 0
			continue
		}
		p.PublicTransportDuration = (values[i] - lo) / spread * ceiling
	}
	return nil
}

// ApplyEmployment restricts to persons in production age (entities.py's
// economical_group PRODUKCYJNY_MOBILNY / PRODUKCYJNY_NIEMOBILNY), draws
// targetCount distinct rows without replacement via a Fisher-Yates
// shuffle of the eligible pool, marks those EMPLOYED, the rest of the eligible pool
// NOT_EMPLOYED, and leaves everyone outside production age at their
// prior EmploymentStatus (spec §4.4). targetCount is clamped to the
// eligible pool size.
func ApplyEmployment(people []*Person, targetCount int, rng *rand.Rand) {
	var eligible []*Person
	for _, p := range people {
		if p.InProductionAge() {
			eligible = append(eligible, p)
		}
	}
	if targetCount > len(eligible) {
		targetCount = len(eligible)
	}
	rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	for i, p := range eligible {
		if i < targetCount {
			p.EmploymentStatus = Employed
		} else {
			p.EmploymentStatus = NotEmployed
		}
	}
}

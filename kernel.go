package outbreaksim

import (
	"math/rand"

	rv "github.com/kentwait/randomvariate"
)

// dispatchKernels runs every active kernel for person i at the moment
// it transitions to Infectious (spec §4.7: "Invoked on the T0
// (onset-of-infectious) transition of person i").
func (e *Engine) dispatchKernels(personID int, t0 float64) {
	e.runHouseholdKernel(personID, t0)
	e.runConstantKernel(personID, t0)
	// Transport, Employment, Friendship, Sporadic are reserved no-ops
	// per spec §4.7/§9 design note (ii): declared hooks, intentionally
	// empty bodies.
}

// runHouseholdKernel implements spec §4.7's household kernel: expected
// contacts over the window from onset to recovery-or-hospitalisation,
// drawn Poisson and clamped to the household's peer count, then one
// TMINUS1 event scheduled per healthy peer at a uniform time in
// [t0, end).
func (e *Engine) runHouseholdKernel(personID int, t0 float64) {
	p := e.people[personID]
	if p.HouseholdID == HouseholdNotAssigned {
		return
	}
	peers := e.householdPeers(p.HouseholdID, personID)
	if len(peers) == 0 {
		return
	}

	end := e.householdKernelEnd(personID, t0)
	delta := end - t0
	if delta <= 0 {
		return
	}
	gamma := e.fear.EffectiveRate(Household, e.cfg.Gamma0[Household], e.detected, e.deaths)
	lambda := delta * gamma
	n := rv.Poisson(lambda)
	if n > len(peers) {
		n = len(peers)
	}
	if n <= 0 {
		return
	}
	chosen := samplePeers(peers, n, e.rng)
	for _, peerID := range chosen {
		if e.status[peerID] != Healthy {
			continue
		}
		contactTime := t0 + e.rng.Float64()*delta
		e.Schedule(Event{
			Time:             contactTime,
			PersonID:         peerID,
			Type:             TMinus1,
			InitiatedBy:      personID,
			InitiatedThrough: Household,
			IssuedTime:       t0,
		})
	}
}

// householdKernelEnd resolves the household kernel's window end: t2 if
// the person has one scheduled, else t0+14 as a recovery-time
// fallback (spec §9 Open Question i, resolved as the intended simple
// fallback rather than the original's double-counted TODO
// expression).
func (e *Engine) householdKernelEnd(personID int, t0 float64) float64 {
	rec := e.progression[personID]
	if rec != nil && rec.HasT2 {
		return rec.T2
	}
	return t0 + 14
}

// runConstantKernel implements spec §4.7's constant kernel: expected
// contacts over the window from onset to stay-home (preferred) or
// hospitalisation, drawn Poisson against the whole population
// excluding the source.
func (e *Engine) runConstantKernel(personID int, t0 float64) {
	rec := e.progression[personID]
	var end float64
	switch {
	case rec != nil && rec.HasT1:
		end = rec.T1
	case rec != nil && rec.HasT2:
		end = rec.T2
	default:
		return
	}
	delta := end - t0
	if delta <= 0 {
		return
	}
	gamma := e.fear.EffectiveRate(Constant, e.cfg.Gamma0[Constant], e.detected, e.deaths)
	lambda := delta * gamma
	n := rv.Poisson(lambda)
	if n <= 0 {
		return
	}
	targets := e.samplePopulationExcluding(personID, n)
	for _, targetID := range targets {
		contactTime := t0 + e.rng.Float64()*delta
		e.Schedule(Event{
			Time:             contactTime,
			PersonID:         targetID,
			Type:             TMinus1,
			InitiatedBy:      personID,
			InitiatedThrough: Constant,
			IssuedTime:       t0,
		})
	}
}

func (e *Engine) householdPeers(householdID, exclude int) []int {
	members := e.members[householdID]
	peers := make([]int, 0, len(members))
	for _, id := range members {
		if id != exclude {
			peers = append(peers, id)
		}
	}
	return peers
}

func (e *Engine) samplePopulationExcluding(exclude, n int) []int {
	pool := make([]int, 0, len(e.people))
	for id := range e.people {
		if id != exclude {
			pool = append(pool, id)
		}
	}
	if n > len(pool) {
		n = len(pool)
	}
	return samplePeers(pool, n, e.rng)
}

// samplePeers draws n distinct ids from pool without replacement via
// a partial Fisher-Yates shuffle.
func samplePeers(pool []int, n int, rng *rand.Rand) []int {
	cp := make([]int, len(pool))
	copy(cp, pool)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}

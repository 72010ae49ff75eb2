// Package rng implements §6's persistent pseudo-random generator: the
// combined Tausworthe generator taus113 (L'Ecuyer), seeded through a
// short LCG warm-up and ten discarded recurrence steps before first
// use, with its four-word state exposed through GetRNGstate/PutRNGstate
// so a caller can save and replay a run's random sequence exactly (§6,
// §8 scenario coverage).
package rng

// State is taus113's four 32-bit generator words.
type State struct {
	Z1, Z2, Z3, Z4 uint32
}

// minZ1 and minZ234 are the smallest values Z1 and Z2..Z4 may take
// for the recurrence to mix correctly (L'Ecuyer's taus113 constraint).
const (
	minZ1 = 2
	minZ234 = 8
)

// Seed builds a taus113 State from a single integer seed, coercing a
// zero seed to one (§6 "a zero seed is coerced to 1, since taus113's
// recurrence is degenerate at the all-zero state") and warming the
// state up through a short LCG before the first real draw.
func Seed(seed int64) State {
	if seed == 0 {
		seed = 1
	}
	lcg := uint32(seed)
	next := func() uint32 {
		lcg = lcg*1812433253 + 1
		return lcg
	}
	var s State
	for s.Z1 < minZ1 {
		s.Z1 = next()
	}
	for s.Z2 < minZ234 {
		s.Z2 = next()
	}
	for s.Z3 < minZ234 {
		s.Z3 = next()
	}
	for s.Z4 < minZ234 {
		s.Z4 = next()
	}
	for i := 0; i < 10; i++ {
		step(&s)
	}
	return s
}

// step advances s by one taus113 recurrence, combining four
// Tausworthe generators via XOR (the standard L'Ecuyer taus113
// recurrence).
func step(s *State) {
	s.Z1 = ((s.Z1 & 4294967294) << 18) ^ (((s.Z1 << 6) ^ s.Z1) >> 13)
	s.Z2 = ((s.Z2 & 4294967288) << 2) ^ (((s.Z2 << 2) ^ s.Z2) >> 27)
	s.Z3 = ((s.Z3 & 4294967280) << 7) ^ (((s.Z3 << 13) ^ s.Z3) >> 21)
	s.Z4 = ((s.Z4 & 4294967168) << 13) ^ (((s.Z4 << 3) ^ s.Z4) >> 12)
}

// Next advances s by one step and returns a REAL in [0, 1), matching
// the original's NEXT RANDOM contract (§6).
func Next(s *State) float64 {
	step(s)
	combined := s.Z1 ^ s.Z2 ^ s.Z3 ^ s.Z4
	return float64(combined) / 4294967296.0
}

// GetRNGstate returns a snapshot of s.
func GetRNGstate(s *State) State { return *s }

// PutRNGstate restores a previously snapshotted state, e.g. to replay
// a debugging session deterministically (§8).
func PutRNGstate(dst *State, saved State) { *dst = saved }

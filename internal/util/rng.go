package util

import "math/rand"

// New returns a seeded generator. Seed 0 is reserved as "unset" and maps
// to 1 so two default-configured runs still match each other.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// DeriveSeed spreads a base seed across batch workers so parallel runs
// stay reproducible without sharing one generator.
func DeriveSeed(base int64, worker, run int) int64 {
	return base + int64(worker)*7919 + int64(run)
}

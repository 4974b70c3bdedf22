package main

import "github.com/google/uuid"

// GenerateRunID returns a random UUID used to key recorded runs
func GenerateRunID() string {
	return uuid.NewString()
}

// ClampInt restricts v to [min, max]
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package utils

import (
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// RoundToNearest rounds n to the nearest multiple of unit (never negative).
func RoundToNearest(n, unit int) int {
	if unit <= 0 {
		return n
	}
	if n < 0 {
		return 0
	}

	rem := n % unit
	if rem*2 >= unit {
		return n - rem + unit
	}
	return n - rem
}

// Clamp bounds n to [min, max].
func Clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

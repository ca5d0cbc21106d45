// Package numeric provides arithmetic helpers that report bad input as
// errors instead of panicking or dividing by zero.
package numeric

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrEmptyInput is returned by aggregates over an empty sequence.
	ErrEmptyInput = errors.New("empty input")
	// ErrDivisionByZero is returned by Divide when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is returned when the exact result does not fit the type.
	ErrOverflow = errors.New("integer overflow")
	// ErrInvalidBounds is returned by Clamp when lo > hi.
	ErrInvalidBounds = errors.New("invalid bounds")
)

// Average returns the arithmetic mean of xs.
func Average(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("average: %w", ErrEmptyInput)
	}
	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += x
	}
	if !math.IsInf(sum, 0) {
		return sum / n, nil
	}

	// The running sum overflowed; scale each term first.
	var mean float64
	for _, x := range xs {
		mean += x / n
	}
	return mean, nil
}

// Max returns the largest element of xs.
func Max[T cmp.Ordered](xs []T) (T, error) {
	if len(xs) == 0 {
		var zero T
		return zero, fmt.Errorf("max: %w", ErrEmptyInput)
	}
	return slices.Max(xs), nil
}

// Min returns the smallest element of xs.
func Min[T cmp.Ordered](xs []T) (T, error) {
	if len(xs) == 0 {
		var zero T
		return zero, fmt.Errorf("min: %w", ErrEmptyInput)
	}
	return slices.Min(xs), nil
}

// Divide returns a / b truncated toward zero.
//
// MinInt32 / -1 has no int32 representation and yields ErrOverflow.
func Divide(a, b int32) (int32, error) {
	if b == 0 {
		return 0, fmt.Errorf("divide %d by %d: %w", a, b, ErrDivisionByZero)
	}
	if a == math.MinInt32 && b == -1 {
		return 0, fmt.Errorf("divide %d by %d: %w", a, b, ErrOverflow)
	}
	return a / b, nil
}

// Stats is the result of Statistics.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Statistics summarizes xs. The median of an even-length input is the mean
// of the two middle values. xs is not modified.
func Statistics(xs []float64) (Stats, error) {
	if len(xs) == 0 {
		return Stats{}, fmt.Errorf("statistics: %w", ErrEmptyInput)
	}
	mean, _ := Average(xs)

	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = sorted[n/2-1]/2 + sorted[n/2]/2
	}

	return Stats{
		Count:  n,
		Mean:   mean,
		Median: median,
		Min:    sorted[0],
		Max:    sorted[n-1],
	}, nil
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) (T, error) {
	if lo > hi {
		return v, fmt.Errorf("clamp to [%v, %v]: %w", lo, hi, ErrInvalidBounds)
	}
	return min(max(v, lo), hi), nil
}

package errors

import (
	"math"
	"unicode"
)

const (
	// MaxElements bounds the number of elements a single axis problem may
	// have. The solver refactors dense matrices on every active-set step,
	// which stays interactive up to about this size.
	MaxElements = 64

	// MaxBound is the largest min, max, preferred or spacing value a problem
	// may use. It
	// matches axis.MaxBound, which keeps the total of MaxElements elements
	// far below axis.SizeUnlimited.
	MaxBound = 1 << 22

	// MaxSize is the largest axis size a solve may request. Every aggregate
	// of a valid problem stays below it.
	MaxSize = 1 << 29

	// MaxSizes bounds how many sizes one solve may request.
	MaxSizes = 32
)

// ValidateName validates a problem name. Names become cache keys and graph
// titles, so control characters are rejected.
func ValidateName(name string) error {
	if len(name) > 128 {
		return New(ErrCodeInvalidProblem, "problem name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProblem, "problem name contains control characters")
		}
	}
	return nil
}

// ValidateElementIndex checks that index addresses one of n elements.
func ValidateElementIndex(index, n int) error {
	if index < 0 {
		return New(ErrCodeInvalidProblem, "element index %d is negative", index)
	}
	if index >= n {
		return New(ErrCodeInvalidProblem, "element index %d out of range (axis has %d elements)", index, n)
	}
	return nil
}

// ValidateSpan checks that [first, last] is a non-empty range of n elements.
func ValidateSpan(first, last, n int) error {
	if first > last {
		return New(ErrCodeInvalidProblem, "range [%d,%d] is empty", first, last)
	}
	if err := ValidateElementIndex(first, n); err != nil {
		return err
	}
	return ValidateElementIndex(last, n)
}

// ValidateBounds checks optional size bounds. A nil bound is unset.
func ValidateBounds(min, max *int) error {
	if err := validateBound("min", min); err != nil {
		return err
	}
	if err := validateBound("max", max); err != nil {
		return err
	}
	if min != nil && max != nil && *max < *min {
		return New(ErrCodeInvalidProblem, "max %d is below min %d", *max, *min)
	}
	return nil
}

// ValidatePreferred checks an optional preferred size.
func ValidatePreferred(preferred *int) error {
	return validateBound("preferred", preferred)
}

func validateBound(name string, v *int) error {
	switch {
	case v == nil:
		return nil
	case *v < 0:
		return New(ErrCodeInvalidProblem, "%s %d is negative", name, *v)
	case *v > MaxBound:
		return New(ErrCodeInvalidProblem, "%s %d exceeds %d", name, *v, MaxBound)
	}
	return nil
}

// ValidateSpacing checks the gap between elements.
func ValidateSpacing(spacing int) error {
	if spacing < 0 {
		return New(ErrCodeInvalidProblem, "spacing %d is negative", spacing)
	}
	if spacing > MaxBound {
		return New(ErrCodeInvalidProblem, "spacing %d exceeds %d", spacing, MaxBound)
	}
	return nil
}

// ValidateWeight checks that a weight is a finite, non-negative number.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidProblem, "weight %v is not finite", w)
	}
	if w < 0 {
		return New(ErrCodeInvalidProblem, "weight %v is negative", w)
	}
	return nil
}

// ValidateSize checks a requested layout size.
func ValidateSize(size int) error {
	if size < 0 {
		return New(ErrCodeInvalidInput, "size %d is negative", size)
	}
	if size > MaxSize {
		return New(ErrCodeInvalidInput, "size %d exceeds %d", size, MaxSize)
	}
	return nil
}

// ValidateSizeCount checks how many sizes a request asks for.
func ValidateSizeCount(n int) error {
	if n > MaxSizes {
		return New(ErrCodeInvalidInput, "%d sizes requested (max %d)", n, MaxSizes)
	}
	return nil
}

package errors

import (
	"math"
	"strings"
	"testing"
)

func ptr(v int) *int { return &v }

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"simple", "toolbar-columns", false},
		{"unicode", "Spalten", false},
		{"too long", strings.Repeat("a", 129), true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSpan(t *testing.T) {
	tests := []struct {
		name        string
		first, last int
		n           int
		wantErr     bool
	}{
		{"single element", 0, 0, 1, false},
		{"whole axis", 0, 3, 4, false},
		{"reversed", 2, 1, 4, true},
		{"negative first", -1, 1, 4, true},
		{"last out of range", 1, 4, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpan(tt.first, tt.last, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpan(%d, %d, %d) error = %v, wantErr %v", tt.first, tt.last, tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidProblem) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidProblem)
			}
		})
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max *int
		wantErr  bool
	}{
		{"both unset", nil, nil, false},
		{"min only", ptr(3), nil, false},
		{"equal", ptr(5), ptr(5), false},
		{"negative min", ptr(-1), nil, true},
		{"negative max", nil, ptr(-2), true},
		{"max below min", ptr(10), ptr(9), true},
		{"max at limit", nil, ptr(MaxBound), false},
		{"min above limit", ptr(MaxBound + 1), nil, true},
		{"min of two billion", ptr(2_000_000_000), nil, true},
		{"max of two billion", ptr(1), ptr(2_000_000_000), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateBounds(tt.min, tt.max); (err != nil) != tt.wantErr {
				t.Errorf("ValidateBounds() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	for _, w := range []float64{0, 0.5, 1, 1e6} {
		if err := ValidateWeight(w); err != nil {
			t.Errorf("ValidateWeight(%v) = %v, want nil", w, err)
		}
	}
	for _, w := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := ValidateWeight(w); err == nil {
			t.Errorf("ValidateWeight(%v) = nil, want error", w)
		}
	}
}

func TestValidateElementIndexAndSize(t *testing.T) {
	if err := ValidateElementIndex(3, 3); err == nil {
		t.Error("ValidateElementIndex(3, 3) = nil, want error")
	}
	if err := ValidateSize(-1); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateSize(-1) = %v, want INVALID_INPUT", err)
	}
	if err := ValidateSize(0); err != nil {
		t.Errorf("ValidateSize(0) = %v, want nil", err)
	}
	if err := ValidateSize(MaxSize + 1); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateSize(MaxSize+1) = %v, want INVALID_INPUT", err)
	}
}

func TestValidateLimits(t *testing.T) {
	if err := ValidatePreferred(ptr(MaxBound + 1)); !Is(err, ErrCodeInvalidProblem) {
		t.Errorf("ValidatePreferred(MaxBound+1) = %v, want INVALID_PROBLEM", err)
	}
	if err := ValidatePreferred(nil); err != nil {
		t.Errorf("ValidatePreferred(nil) = %v, want nil", err)
	}
	for _, sp := range []int{-1, MaxBound + 1} {
		if err := ValidateSpacing(sp); !Is(err, ErrCodeInvalidProblem) {
			t.Errorf("ValidateSpacing(%d) = %v, want INVALID_PROBLEM", sp, err)
		}
	}
	if err := ValidateSizeCount(MaxSizes); err != nil {
		t.Errorf("ValidateSizeCount(MaxSizes) = %v, want nil", err)
	}
	if err := ValidateSizeCount(MaxSizes + 1); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateSizeCount(MaxSizes+1) = %v, want INVALID_INPUT", err)
	}
	// The worst-case total of a valid problem must fit below MaxSize.
	if worst := MaxElements*MaxBound + (MaxElements-1)*MaxBound; worst > MaxSize {
		t.Errorf("worst-case total %d exceeds MaxSize %d", worst, MaxSize)
	}
}

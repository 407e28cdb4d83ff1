package utils

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// ─── error kinds ────────────────────────────────────────────────────────
// Every validation failure wraps exactly one of these; match with errors.Is.

var (
	// ErrType reports a value of the wrong shape or type (not a scalar,
	// not a 1-D sequence, not a string).
	ErrType = errors.New("type error")

	// ErrValue reports a value of the right shape whose content is
	// invalid (length mismatch, out-of-range code, unparseable token).
	ErrValue = errors.New("value error")

	// ErrDomain reports a numeric transform that produced NaN or ±Inf
	// when the caller asked for strict domain checking.
	ErrDomain = errors.New("numeric domain error")
)

// Domain restricts the accepted range of a scalar.
type Domain int

const (
	AnyValue Domain = iota
	Positive
	StrictlyPositive
	Negative
	StrictlyNegative
)

var domainNames = [...]string{"any", "positive", "strictly positive", "negative", "strictly negative"}

func (d Domain) String() string {
	if int(d) < len(domainNames) {
		return domainNames[d]
	}
	return "unknown"
}

// AsReal converts any Go real scalar to float64. ok is false for every
// other type, including bool and complex.
func AsReal(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// ValidateScalar checks that value is a real scalar inside domain.
func ValidateScalar(name string, value any, domain Domain) (float64, error) {
	f, ok := AsReal(value)
	if !ok {
		return 0, fmt.Errorf("%s should be a scalar floating point value: %w", name, ErrType)
	}

	bad := false
	switch domain {
	case Positive:
		bad = f < 0
	case StrictlyPositive:
		bad = f <= 0
	case Negative:
		bad = f > 0
	case StrictlyNegative:
		bad = f >= 0
	}
	if bad {
		return 0, fmt.Errorf("%s should be %s: %w", name, domain, ErrValue)
	}
	return f, nil
}

// ValidateRange checks that value is a real scalar in [lo, hi].
func ValidateRange(name string, value any, lo, hi float64) (float64, error) {
	f, err := ValidateScalar(name, value, AnyValue)
	if err != nil {
		return 0, err
	}
	if f < lo || f > hi {
		return 0, fmt.Errorf("%s should be in the range [%g:%g]: %w", name, lo, hi, ErrValue)
	}
	return f, nil
}

// ValidateArray converts value to a fresh []float64. Accepted inputs are
// slices of any real element type and []any whose elements are all real
// scalars. A nested or non-slice value fails with ErrType. When length is
// non-negative the result must have exactly that many elements.
func ValidateArray(name string, value any, length int) ([]float64, error) {
	out, ok := asRealSlice(value)
	if !ok {
		return nil, fmt.Errorf("%s should be a 1-d sequence: %w", name, ErrType)
	}
	if length >= 0 && len(out) != length {
		return nil, fmt.Errorf("%s has incorrect length (expected %d but found %d): %w",
			name, length, len(out), ErrValue)
	}
	return out, nil
}

// IsUnset reports whether v stands for "no value": untyped nil or a nil
// slice of any element type.
func IsUnset(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.IsNil()
}

// IsIntegral reports whether f survives truncation unchanged.
func IsIntegral(f float64) bool {
	return !math.IsInf(f, 0) && math.Trunc(f) == f
}

func asRealSlice(value any) ([]float64, bool) {
	switch s := value.(type) {
	case []float64:
		return append(make([]float64, 0, len(s)), s...), true
	case []float32:
		return convert(s), true
	case []int:
		return convert(s), true
	case []int8:
		return convert(s), true
	case []int16:
		return convert(s), true
	case []int32:
		return convert(s), true
	case []int64:
		return convert(s), true
	case []uint:
		return convert(s), true
	case []uint8:
		return convert(s), true
	case []uint16:
		return convert(s), true
	case []uint32:
		return convert(s), true
	case []uint64:
		return convert(s), true
	case []any:
		out := make([]float64, len(s))
		for i, e := range s {
			f, ok := AsReal(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func convert[T number](s []T) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

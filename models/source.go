package models

import (
	"fmt"
	"slices"

	"sed-source/utils"
)

// Error kinds returned by Source setters and the parsers built on them.
var (
	ErrType   = utils.ErrType
	ErrValue  = utils.ErrValue
	ErrDomain = utils.ErrDomain
)

// Source is one photometric observation: a named sky position with a
// flux, error and validity code per wavelength.
//
// Every field may be unset. valid, flux and error, when set, share a
// length; NWav derives it on demand. Setters validate the whole candidate
// before storing it, so a rejected value never alters the record.
type Source struct {
	name  *string
	x, y  *float64
	valid []int
	flux  []float64
	err   []float64
}

// NewSource returns a record with an empty name, x = y = 0 and no arrays.
func NewSource() *Source {
	s := &Source{}
	name, x, y := "", 0.0, 0.0
	s.name, s.x, s.y = &name, &x, &y
	return s
}

// ─── getters ────────────────────────────────────────────────────────────

func (s *Source) Name() (string, bool) {
	if s.name == nil {
		return "", false
	}
	return *s.name, true
}

func (s *Source) X() (float64, bool) {
	if s.x == nil {
		return 0, false
	}
	return *s.x, true
}

func (s *Source) Y() (float64, bool) {
	if s.y == nil {
		return 0, false
	}
	return *s.y, true
}

// Valid returns a copy of the validity codes, nil when unset.
func (s *Source) Valid() []int { return slices.Clone(s.valid) }

// Flux returns a copy of the fluxes, nil when unset.
func (s *Source) Flux() []float64 { return slices.Clone(s.flux) }

// Error returns a copy of the flux errors, nil when unset.
func (s *Source) Error() []float64 { return slices.Clone(s.err) }

// ─── setters ────────────────────────────────────────────────────────────

// SetName accepts a string or nil.
func (s *Source) SetName(v any) error {
	if v == nil {
		s.name = nil
		return nil
	}
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("name should be a string: %w", ErrType)
	}
	s.name = &str
	return nil
}

// SetX accepts any real scalar or nil.
func (s *Source) SetX(v any) error {
	p, err := scalarField("x", v)
	if err != nil {
		return err
	}
	s.x = p
	return nil
}

// SetY accepts any real scalar or nil.
func (s *Source) SetY(v any) error {
	p, err := scalarField("y", v)
	if err != nil {
		return err
	}
	s.y = p
	return nil
}

// SetValid accepts a 1-D sequence of integral codes in [0,4], or nil.
//
// Code 9 (ignored) is refused here even though LogFluxes understands it;
// records read from tables therefore never carry it.
func (s *Source) SetValid(v any) error {
	if utils.IsUnset(v) {
		s.valid = nil
		return nil
	}
	arr, err := utils.ValidateArray("valid", v, s.expectedLen())
	if err != nil {
		return err
	}
	codes := make([]int, len(arr))
	for i, f := range arr {
		if !utils.IsIntegral(f) {
			return fmt.Errorf("valid values should be integers (found %v at %d): %w", f, i, ErrValue)
		}
		if f < minValidCode || f > maxValidCode {
			return fmt.Errorf("valid values should be in the range [%d,%d] (found %v at %d): %w",
				minValidCode, maxValidCode, f, i, ErrValue)
		}
		codes[i] = int(f)
	}
	s.valid = codes
	return nil
}

// SetFlux accepts a 1-D real sequence or nil.
func (s *Source) SetFlux(v any) error {
	arr, err := s.arrayField("flux", v)
	if err != nil {
		return err
	}
	s.flux = arr
	return nil
}

// SetError accepts a 1-D real sequence or nil.
func (s *Source) SetError(v any) error {
	arr, err := s.arrayField("error", v)
	if err != nil {
		return err
	}
	s.err = arr
	return nil
}

func scalarField(name string, v any) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, err := utils.ValidateScalar(name, v, utils.AnyValue)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Source) arrayField(name string, v any) ([]float64, error) {
	if utils.IsUnset(v) {
		return nil, nil
	}
	return utils.ValidateArray(name, v, s.expectedLen())
}

// expectedLen is NWav, or -1 when no array is set.
func (s *Source) expectedLen() int {
	if n, ok := s.NWav(); ok {
		return n
	}
	return -1
}

// ─── derived ────────────────────────────────────────────────────────────

// NWav returns the number of wavelengths, taken from valid, then flux,
// then error. ok is false when none of them is set.
func (s *Source) NWav() (int, bool) {
	switch {
	case s.valid != nil:
		return len(s.valid), true
	case s.flux != nil:
		return len(s.flux), true
	case s.err != nil:
		return len(s.err), true
	}
	return 0, false
}

// NData counts points with validity 1 or 4.
func (s *Source) NData() (int, error) {
	if s.valid == nil {
		return 0, fmt.Errorf("n_data needs valid to be set: %w", ErrValue)
	}
	return CountUsable(s.valid), nil
}

// Complete reports whether every field is set.
func (s *Source) Complete() bool {
	return s.name != nil && s.x != nil && s.y != nil &&
		s.valid != nil && s.flux != nil && s.err != nil
}

// Equal reports whether both records hold the same name, position and
// arrays. An unset field only equals another unset field.
func (s *Source) Equal(o *Source) bool {
	if s == nil || o == nil {
		return s == o
	}
	return ptrEqual(s.name, o.name) &&
		ptrEqual(s.x, o.x) &&
		ptrEqual(s.y, o.y) &&
		sliceEqual(s.valid, o.valid) &&
		sliceEqual(s.flux, o.flux) &&
		sliceEqual(s.err, o.err)
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sliceEqual[T comparable](a, b []T) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}

// ─── mapping ────────────────────────────────────────────────────────────

// Mapping keys.
const (
	KeyName  = "name"
	KeyX     = "x"
	KeyY     = "y"
	KeyValid = "valid"
	KeyFlux  = "flux"
	KeyError = "error"
)

var mappingKeys = []string{KeyName, KeyX, KeyY, KeyValid, KeyFlux, KeyError}

// Mapping is the dictionary form of a Source. Unset fields hold nil.
type Mapping map[string]any

// ToMapping returns the six fields, with arrays copied.
func (s *Source) ToMapping() Mapping {
	m := Mapping{}
	for _, k := range mappingKeys {
		m[k] = nil
	}
	if s.name != nil {
		m[KeyName] = *s.name
	}
	if s.x != nil {
		m[KeyX] = *s.x
	}
	if s.y != nil {
		m[KeyY] = *s.y
	}
	if s.valid != nil {
		m[KeyValid] = s.Valid()
	}
	if s.flux != nil {
		m[KeyFlux] = s.Flux()
	}
	if s.err != nil {
		m[KeyError] = s.Error()
	}
	return m
}

// FromMapping builds a Source by passing every key through its setter.
func FromMapping(m Mapping) (*Source, error) {
	for _, k := range mappingKeys {
		if _, ok := m[k]; !ok {
			return nil, fmt.Errorf("mapping is missing key %q: %w", k, ErrValue)
		}
	}
	s := NewSource()
	steps := []struct {
		key string
		set func(any) error
	}{
		{KeyName, s.SetName},
		{KeyX, s.SetX},
		{KeyY, s.SetY},
		{KeyValid, s.SetValid},
		{KeyFlux, s.SetFlux},
		{KeyError, s.SetError},
	}
	for _, st := range steps {
		if err := st.set(m[st.key]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

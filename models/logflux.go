package models

import (
	"fmt"
	"math"
)

// LogFlux holds the per-point quantities a fitter consumes. Points that no
// branch touches keep zero in all three slices.
type LogFlux struct {
	LogFlux  []float64
	LogError []float64
	Weight   []float64
}

type logFluxOptions struct {
	strict bool
}

// LogFluxOption configures LogFluxes.
type LogFluxOption func(*logFluxOptions)

// WithStrictDomain makes LogFluxes return ErrDomain for the first point
// whose result is NaN or ±Inf. Without it such values are returned as is.
func WithStrictDomain() LogFluxOption {
	return func(o *logFluxOptions) { o.strict = true }
}

// LogFluxes converts linear fluxes and errors to log10 space:
//
//	detection     log10(f) - 0.5(e/f)²/ln10, |e/f|/ln10, 1/σ²
//	lower/upper   log10(f), e, 0
//	already-log   f, e, 1/σ²
//	ignored       as detection, weight 0
//	no-data/other 0, 0, 0
//
// Non-positive flux or zero error on a transformed point is the caller's
// concern; by default the IEEE result propagates.
func LogFluxes(flux, errs []float64, valid []int, opts ...LogFluxOption) (LogFlux, error) {
	var o logFluxOptions
	for _, opt := range opts {
		opt(&o)
	}

	n := len(valid)
	if len(flux) != n || len(errs) != n {
		return LogFlux{}, fmt.Errorf("log fluxes: lengths differ (valid=%d flux=%d error=%d): %w",
			n, len(flux), len(errs), ErrValue)
	}

	out := LogFlux{
		LogFlux:  make([]float64, n),
		LogError: make([]float64, n),
		Weight:   make([]float64, n),
	}

	for i, code := range valid {
		f, e := flux[i], errs[i]
		switch KindOf(code) {
		case KindDetection:
			out.LogFlux[i], out.LogError[i] = linearToLog(f, e)
			out.Weight[i] = inverseVariance(out.LogError[i])
		case KindLowerLimit, KindUpperLimit:
			out.LogFlux[i] = math.Log10(f)
			out.LogError[i] = e
		case KindAlreadyLog:
			out.LogFlux[i] = f
			out.LogError[i] = e
			out.Weight[i] = inverseVariance(e)
		case KindIgnored:
			out.LogFlux[i], out.LogError[i] = linearToLog(f, e)
		case KindNoData, KindOther:
			continue
		}

		if o.strict && !(finite(out.LogFlux[i]) && finite(out.LogError[i]) && finite(out.Weight[i])) {
			return LogFlux{}, fmt.Errorf("log fluxes: point %d (%s, flux=%g, error=%g) is not finite: %w",
				i, KindOf(code), f, e, ErrDomain)
		}
	}
	return out, nil
}

// LogFluxes applies the package-level transform to the record's arrays.
func (s *Source) LogFluxes(opts ...LogFluxOption) (LogFlux, error) {
	if s.valid == nil || s.flux == nil || s.err == nil {
		return LogFlux{}, fmt.Errorf("log fluxes need valid, flux and error to be set: %w", ErrValue)
	}
	return LogFluxes(s.flux, s.err, s.valid, opts...)
}

// linearToLog propagates a Gaussian flux error to first order, including
// the bias term of the log transform.
func linearToLog(f, e float64) (logF, logE float64) {
	ratio := e / f
	logF = math.Log10(f) - 0.5*ratio*ratio/math.Ln10
	logE = math.Abs(ratio) / math.Ln10
	return logF, logE
}

func inverseVariance(sigma float64) float64 {
	return 1 / (sigma * sigma)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package models

import "fmt"

// LogFluxRow pairs a source name with its derived quantities, one line of
// the log-flux table.
type LogFluxRow struct {
	Name  string
	NData int
	LogFlux
}

// NewLogFluxRow transforms s and wraps the result.
func NewLogFluxRow(s *Source, opts ...LogFluxOption) (*LogFluxRow, error) {
	name, _ := s.Name()
	nData, err := s.NData()
	if err != nil {
		return nil, err
	}
	lf, err := s.LogFluxes(opts...)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	return &LogFluxRow{Name: name, NData: nData, LogFlux: lf}, nil
}

// AppendLine writes name and n_data followed by log flux, log error and
// weight for every point.
func (r *LogFluxRow) AppendLine(buf []byte) ([]byte, error) {
	buf = fmt.Appendf(buf, "%-30s %3d ", r.Name, r.NData)
	for j := range r.LogFlux.LogFlux {
		buf = fmt.Appendf(buf, "%8.5f %8.5f %11.3e ", r.LogFlux.LogFlux[j], r.LogError[j], r.Weight[j])
	}
	return append(buf, '\n'), nil
}

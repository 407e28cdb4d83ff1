package views

import "strconv"

// Column layouts for the two tables the prep pipeline writes. They only
// label the optional '#' header line; readers locate columns by position.

// SourceColumns lists the source table columns for nWav wavelengths.
func SourceColumns(nWav int) []string {
	cols := []string{"name", "x", "y"}
	for j := 1; j <= nWav; j++ {
		cols = append(cols, "valid_"+strconv.Itoa(j))
	}
	for j := 1; j <= nWav; j++ {
		n := strconv.Itoa(j)
		cols = append(cols, "flux_"+n, "error_"+n)
	}
	return cols
}

// LogFluxColumns lists the log-flux table columns for nWav wavelengths.
func LogFluxColumns(nWav int) []string {
	cols := []string{"name", "n_data"}
	for j := 1; j <= nWav; j++ {
		n := strconv.Itoa(j)
		cols = append(cols, "log_flux_"+n, "log_error_"+n, "weight_"+n)
	}
	return cols
}

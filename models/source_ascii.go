package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ParseLine replaces the record's content with one table line:
//
//	<name> <x> <y> <v_1>..<v_n> <f_1> <e_1> .. <f_n> <e_n>
//
// n is (tokens-3)/3. A blank line yields io.EOF. The record is left
// untouched on any error.
func (s *Source) ParseLine(line string) error {
	cols := strings.Fields(line)
	if len(cols) == 0 {
		return io.EOF
	}
	if len(cols) < 3 || (len(cols)-3)%3 != 0 {
		return fmt.Errorf("line has %d columns, want 3+3n: %w", len(cols), ErrValue)
	}
	n := (len(cols) - 3) / 3

	x, err := parseFloat("x", cols[1])
	if err != nil {
		return err
	}
	y, err := parseFloat("y", cols[2])
	if err != nil {
		return err
	}

	valid := make([]int, n)
	for i, tok := range cols[3 : 3+n] {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return fmt.Errorf("valid column %d: %q is not an integer: %w", i, tok, ErrValue)
		}
		valid[i] = v
	}

	flux := make([]float64, n)
	errs := make([]float64, n)
	pairs := cols[3+n:]
	for i := 0; i < n; i++ {
		if flux[i], err = parseFloat("flux", pairs[2*i]); err != nil {
			return err
		}
		if errs[i], err = parseFloat("error", pairs[2*i+1]); err != nil {
			return err
		}
	}

	fresh := &Source{}
	if err := fresh.SetName(cols[0]); err != nil {
		return err
	}
	if err := fresh.SetX(x); err != nil {
		return err
	}
	if err := fresh.SetY(y); err != nil {
		return err
	}
	if err := fresh.SetValid(valid); err != nil {
		return err
	}
	if err := fresh.SetFlux(flux); err != nil {
		return err
	}
	if err := fresh.SetError(errs); err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// ReadOneLine reads the next line from r and parses it with ParseLine.
// An empty line or end of stream yields io.EOF.
func (s *Source) ReadOneLine(r *bufio.Reader) error {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read line: %w", err)
	}
	return s.ParseLine(line)
}

func parseFloat(field, tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number: %w", field, tok, ErrValue)
	}
	return f, nil
}

// AppendLine appends the fixed-width table line for s to buf.
func (s *Source) AppendLine(buf []byte) ([]byte, error) {
	if !s.Complete() {
		return buf, fmt.Errorf("cannot write a source with unset fields: %w", ErrValue)
	}
	n, _ := s.NWav()
	if len(s.flux) != n || len(s.err) != n {
		return buf, fmt.Errorf("flux and error must both hold %d values: %w", n, ErrValue)
	}
	// The name is the first whitespace-delimited token on read.
	if *s.name == "" || strings.ContainsFunc(*s.name, unicode.IsSpace) {
		return buf, fmt.Errorf("name %q cannot be written as a single token: %w", *s.name, ErrValue)
	}

	buf = fmt.Appendf(buf, "%-30s ", *s.name)
	buf = fmt.Appendf(buf, "%9.5f %9.5f ", *s.x, *s.y)
	for _, v := range s.valid {
		buf = fmt.Appendf(buf, "%1d ", v)
	}
	for j := 0; j < n; j++ {
		buf = fmt.Appendf(buf, "%11.3e %11.3e ", s.flux[j], s.err[j])
	}
	return append(buf, '\n'), nil
}

// WriteOneLine writes the record as one fixed-width table line, the
// inverse of ParseLine.
func (s *Source) WriteOneLine(w io.Writer) error {
	line, err := s.AppendLine(nil)
	if err != nil {
		return err
	}
	_, err = w.Write(line)
	return err
}

// String renders a readable summary with per-point log fluxes.
func (s *Source) String() string {
	var b strings.Builder
	name, _ := s.Name()
	x, _ := s.X()
	y, _ := s.Y()
	fmt.Fprintf(&b, "Source name : %s\n", name)
	fmt.Fprintf(&b, "RA   / l    : %9.5f\n", x)
	fmt.Fprintf(&b, "Decl / b    : %9.5f\n", y)

	lf, err := s.LogFluxes()
	if err != nil {
		return b.String()
	}
	for j := range s.valid {
		fmt.Fprintf(&b, "F = %12.4e +/- %12.4e mJy (%1d)  Log[F] = %8.5f +/- %8.5f\n",
			s.flux[j], s.err[j], s.valid[j], lf.LogFlux[j], lf.LogError[j])
	}
	return b.String()
}

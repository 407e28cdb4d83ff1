package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"sed-source/models"
	"sed-source/utils"
)

// TableReader parses a source table one line at a time. Blank lines and
// '#' comments are skipped, every row must carry the same number of
// wavelengths as the first one, and a source is kept only when its
// n_data exceeds nMinValid.
type TableReader struct {
	r         *bufio.Reader
	nMinValid int
	nWav      int
	line      int

	Out chan *models.Source
	err error

	read    uint64
	dropped uint64
}

func NewTableReader(r io.Reader, nMinValid, channelBuffer int) *TableReader {
	if channelBuffer <= 0 {
		channelBuffer = 256
	}
	return &TableReader{
		r:         bufio.NewReader(r),
		nMinValid: nMinValid,
		nWav:      -1,
		Out:       make(chan *models.Source, channelBuffer),
	}
}

// Next returns the next source that passes the n_data filter, or io.EOF.
func (t *TableReader) Next() (*models.Source, error) {
	for {
		raw, rerr := t.r.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return nil, fmt.Errorf("line %d: %w", t.line+1, rerr)
		}
		if raw == "" && rerr != nil {
			return nil, io.EOF
		}
		t.line++

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		s := models.NewSource()
		if err := s.ParseLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", t.line, err)
		}
		n, _ := s.NWav()
		if t.nWav < 0 {
			t.nWav = n
		} else if n != t.nWav {
			return nil, fmt.Errorf("line %d: found %d wavelengths, expected %d: %w",
				t.line, n, t.nWav, models.ErrValue)
		}
		atomic.AddUint64(&t.read, 1)

		nData, _ := s.NData()
		if nData <= t.nMinValid {
			atomic.AddUint64(&t.dropped, 1)
			continue
		}
		return s, nil
	}
}

// NWav returns the wavelength count fixed by the first row, or -1 before
// any row has been read.
func (t *TableReader) NWav() int { return t.nWav }

// Start streams kept sources into Out until the table ends, an error
// occurs or ctx is cancelled. Out is closed on return; check Err afterwards.
func (t *TableReader) Start(ctx context.Context) {
	go t.run(ctx)
	utils.L().Debug("table reader started    (n_min_valid=%d, buffer=%d)", t.nMinValid, cap(t.Out))
}

func (t *TableReader) run(ctx context.Context) {
	defer close(t.Out)
	for {
		s, err := t.Next()
		if errors.Is(err, io.EOF) {
			read, dropped := t.Stats()
			utils.L().Info("table reader finished   (read=%d, dropped=%d)", read, dropped)
			return
		}
		if err != nil {
			t.err = err
			utils.L().Error("table reader: %v", err)
			return
		}
		select {
		case <-ctx.Done():
			t.err = ctx.Err()
			return
		case t.Out <- s:
		}
	}
}

// Err reports why streaming stopped early. Valid once Out is closed.
func (t *TableReader) Err() error { return t.err }

// Stats returns rows parsed and rows dropped by the n_data filter.
func (t *TableReader) Stats() (uint64, uint64) {
	return atomic.LoadUint64(&t.read), atomic.LoadUint64(&t.dropped)
}

// ReadSources loads every source in filename whose n_data exceeds
// nMinValid, in file order.
func ReadSources(filename string, nMinValid int) ([]*models.Source, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	defer f.Close()

	t := NewTableReader(f, nMinValid, 1)
	var out []*models.Source
	for {
		s, err := t.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read sources %s: %w", filename, err)
		}
		out = append(out, s)
	}
}

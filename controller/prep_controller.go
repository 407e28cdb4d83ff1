package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"sed-source/models"
	"sed-source/services/ingest"
	"sed-source/utils"
	"sed-source/views"
)

// Output file names inside a session directory.
const (
	SourcesFile = "sources.txt"
	LogFluxFile = "logflux.txt"
	YAMLFile    = "sources.yaml"
)

// PrepController turns a source table into the inputs of a fit. For one
// session it writes:
//   - sources.txt  the sources that passed the n_data filter
//   - logflux.txt  log flux, log error and weight per point
//   - sources.yaml the same sources as mappings (optional)
//
// The per-source transform runs on a bounded worker pool; output order is
// always input order.
type PrepController struct {
	cfg        *utils.PrepConfig
	sessionDir string

	rowsWritten uint64
}

// NewPrepController creates the session directory.
func NewPrepController(cfg *utils.PrepConfig) (*PrepController, error) {
	sessionDir := filepath.Join(cfg.Storage.BaseDir, utils.SessionName(cfg.Storage.SessionPrefix))

	if !cfg.Storage.Overwrite {
		if _, err := os.Stat(sessionDir); err == nil {
			return nil, fmt.Errorf("session dir %s already exists (overwrite=false)", sessionDir)
		}
	}

	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	utils.L().Info("prep controller ready  session=%s", sessionDir)
	return &PrepController{cfg: cfg, sessionDir: sessionDir}, nil
}

// Process streams r into the pipeline. Nothing is written when the
// reader fails.
func (pc *PrepController) Process(ctx context.Context, r *ingest.TableReader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.Start(ctx)
	sources, err := collect(ctx, r.Out)
	if err != nil {
		cancel()
		for range r.Out {
		}
		return err
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return pc.Prepare(ctx, sources)
}

// Run drains in, then behaves like Prepare.
func (pc *PrepController) Run(ctx context.Context, in <-chan *models.Source) error {
	sources, err := collect(ctx, in)
	if err != nil {
		return err
	}
	return pc.Prepare(ctx, sources)
}

// Prepare transforms every source and writes the session files.
func (pc *PrepController) Prepare(ctx context.Context, sources []*models.Source) error {
	utils.L().Info("preparing %d sources  (workers=%d, strict_domain=%v)",
		len(sources), pc.cfg.Transform.Workers, pc.cfg.Transform.StrictDomain)

	rows, err := pc.transform(ctx, sources)
	if err != nil {
		return err
	}
	return pc.write(sources, rows)
}

func collect(ctx context.Context, in <-chan *models.Source) ([]*models.Source, error) {
	var out []*models.Source
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case s, ok := <-in:
			if !ok {
				return out, nil
			}
			out = append(out, s)
		}
	}
}

// transform computes one LogFluxRow per source, index-aligned with sources.
func (pc *PrepController) transform(ctx context.Context, sources []*models.Source) ([]*models.LogFluxRow, error) {
	var opts []models.LogFluxOption
	if pc.cfg.Transform.StrictDomain {
		opts = append(opts, models.WithStrictDomain())
	}

	rows := make([]*models.LogFluxRow, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, pc.cfg.Transform.Workers))
	for i, s := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := models.NewLogFluxRow(s, opts...)
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	return rows, nil
}

func (pc *PrepController) write(sources []*models.Source, rows []*models.LogFluxRow) error {
	st := pc.cfg.Storage
	bufSize := st.BufferSizeKB * 1024

	nWav := 0
	if len(sources) > 0 {
		nWav, _ = sources[0].NWav()
	}
	var srcHeader, lfHeader []string
	if st.WriteHeader {
		srcHeader = views.SourceColumns(nWav)
		lfHeader = views.LogFluxColumns(nWav)
	}

	srcW, err := views.NewTableWriter(filepath.Join(pc.sessionDir, SourcesFile), bufSize, srcHeader)
	if err != nil {
		return err
	}
	lfW, err := views.NewTableWriter(filepath.Join(pc.sessionDir, LogFluxFile), bufSize, lfHeader)
	if err != nil {
		srcW.Close()
		return err
	}

	for i, s := range sources {
		if err := srcW.WriteRow(s); err != nil {
			srcW.Close()
			lfW.Close()
			return fmt.Errorf("write source %d: %w", i, err)
		}
		if err := lfW.WriteRow(rows[i]); err != nil {
			srcW.Close()
			lfW.Close()
			return fmt.Errorf("write log fluxes %d: %w", i, err)
		}
		atomic.AddUint64(&pc.rowsWritten, 1)
	}

	if err := srcW.Close(); err != nil {
		lfW.Close()
		return fmt.Errorf("close %s: %w", SourcesFile, err)
	}
	if err := lfW.Close(); err != nil {
		return fmt.Errorf("close %s: %w", LogFluxFile, err)
	}

	if st.WriteYAML {
		if err := views.WriteYAML(filepath.Join(pc.sessionDir, YAMLFile), sources); err != nil {
			return err
		}
	}

	utils.L().Info("prep controller wrote %d rows  (session=%s)", pc.RowsWritten(), pc.sessionDir)
	return nil
}

// SessionDir returns the path to the session directory.
func (pc *PrepController) SessionDir() string {
	return pc.sessionDir
}

// RowsWritten returns the number of sources persisted.
func (pc *PrepController) RowsWritten() uint64 {
	return atomic.LoadUint64(&pc.rowsWritten)
}

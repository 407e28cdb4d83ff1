package views

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"sed-source/models"
)

// EncodeYAML writes sources as a YAML list of mappings with the keys
// name, x, y, valid, flux and error.
func EncodeYAML(w io.Writer, sources []*models.Source) error {
	docs := make([]models.Mapping, len(sources))
	for i, s := range sources {
		docs[i] = s.ToMapping()
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode sources yaml: %w", err)
	}
	return enc.Close()
}

// DecodeYAML reads a list written by EncodeYAML. Each entry goes through
// models.FromMapping, so every record is validated.
func DecodeYAML(r io.Reader) ([]*models.Source, error) {
	var docs []models.Mapping
	if err := yaml.NewDecoder(r).Decode(&docs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode sources yaml: %w", err)
	}
	out := make([]*models.Source, 0, len(docs))
	for i, m := range docs {
		s, err := models.FromMapping(m)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// WriteYAML creates path and encodes sources into it.
func WriteYAML(path string, sources []*models.Source) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("yaml create %s: %w", path, err)
	}
	if err := EncodeYAML(f, sources); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadYAML decodes the sources stored at path.
func ReadYAML(path string) ([]*models.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("yaml open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeYAML(f)
}

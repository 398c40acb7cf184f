// Package fixtures decodes YAML community datasets and ships the sample
// community used by the CLI and the tests.
package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-social/pkg/types"
	"github.com/goliatone/go-social/store"
)

//go:embed sample.yaml
var sampleYAML []byte

// Decode reads a YAML dataset. Unknown fields are rejected so typos in
// fixture files surface early.
func Decode(r io.Reader) (store.Dataset, error) {
	var ds store.Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		if err == io.EOF {
			return store.Dataset{}, nil
		}
		return store.Dataset{}, fmt.Errorf("fixtures: decode: %w", err)
	}
	for i := range ds.People {
		ds.People[i].Gender = types.ParseGender(string(ds.People[i].Gender))
	}
	return ds, nil
}

// Encode writes the dataset as YAML.
func Encode(w io.Writer, ds store.Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("fixtures: encode: %w", err)
	}
	return enc.Close()
}

// LoadFile decodes the dataset stored at path.
func LoadFile(path string) (store.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.Dataset{}, fmt.Errorf("fixtures: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Sample returns the embedded sample community.
func Sample() (store.Dataset, error) {
	return Decode(bytes.NewReader(sampleYAML))
}

// SampleStore returns an in-memory store seeded with the sample community.
func SampleStore(ctx context.Context) (*store.Memory, error) {
	ds, err := Sample()
	if err != nil {
		return nil, err
	}
	mem := store.NewMemory()
	if err := mem.Seed(ctx, ds); err != nil {
		return nil, err
	}
	return mem, nil
}

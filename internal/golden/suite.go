package golden

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Suite is an ordered set of comparisons sharing one mismatch limit.
type Suite struct {
	Limit int    `yaml:"limit"`
	Pairs []Pair `yaml:"pairs"`
}

// LoadSuite reads a YAML suite file. Relative paths in it are resolved
// against the directory holding the suite file, and a missing limit defaults
// to DefaultLimit.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading suite file: %w", err)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing suite file: %w", err)
	}
	if s.Limit == 0 {
		s.Limit = DefaultLimit
	}

	base := filepath.Dir(path)
	for i := range s.Pairs {
		s.Pairs[i].Actual = resolve(base, s.Pairs[i].Actual)
		s.Pairs[i].Reference = resolve(base, s.Pairs[i].Reference)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks that the suite can be run.
func (s *Suite) Validate() error {
	if s.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", s.Limit)
	}
	if len(s.Pairs) == 0 {
		return errors.New("suite has no pairs")
	}
	for i, p := range s.Pairs {
		if p.Actual == "" || p.Reference == "" {
			return fmt.Errorf("pair %d: actual and reference are both required", i+1)
		}
	}
	return nil
}

// Run compares every pair in order, writing reports to w.
func (s *Suite) Run(w io.Writer) ([]*Report, error) {
	return CompareAll(s.Pairs, s.Limit, w)
}

package golden

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSuite(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "suite.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write suite: %v", err)
	}
	return path
}

func TestLoadSuite(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, `
limit: 3
pairs:
  - actual: out/cross_result.pgm
    reference: golden/cross_sobel.pgm
  - actual: /abs/pattern_result.pgm
    reference: golden/pattern_sobel.pgm
`)

	s, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite failed: %v", err)
	}
	if s.Limit != 3 {
		t.Errorf("Limit: got %d, want 3", s.Limit)
	}
	if len(s.Pairs) != 2 {
		t.Fatalf("Pairs: got %d, want 2", len(s.Pairs))
	}
	if want := filepath.Join(dir, "out", "cross_result.pgm"); s.Pairs[0].Actual != want {
		t.Errorf("relative path: got %s, want %s", s.Pairs[0].Actual, want)
	}
	if s.Pairs[1].Actual != "/abs/pattern_result.pgm" {
		t.Errorf("absolute path changed: %s", s.Pairs[1].Actual)
	}
}

func TestLoadSuite_DefaultLimit(t *testing.T) {
	path := writeSuite(t, t.TempDir(), "pairs:\n  - actual: a\n    reference: b\n")

	s, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite failed: %v", err)
	}
	if s.Limit != DefaultLimit {
		t.Errorf("Limit: got %d, want %d", s.Limit, DefaultLimit)
	}
}

func TestLoadSuite_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no pairs", "limit: 5\n"},
		{"negative limit", "limit: -1\npairs:\n  - actual: a\n    reference: b\n"},
		{"missing reference", "pairs:\n  - actual: a\n"},
		{"not yaml", "pairs: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSuite(t, t.TempDir(), tt.content)
			if _, err := LoadSuite(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadSuite_MissingFile(t *testing.T) {
	if _, err := LoadSuite(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error")
	}
}

func TestSuite_Run(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, dir, "a.pgm", samples(6))
	writeLines(t, dir, "b.pgm", samples(6))
	path := writeSuite(t, dir, "pairs:\n  - actual: a.pgm\n    reference: b.pgm\n")

	s, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite failed: %v", err)
	}
	reports, err := s.Run(nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reports) != 1 || !reports[0].Passed() {
		t.Errorf("got %+v", reports)
	}
}

package golden

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// HeaderLines is the number of leading lines skipped in each file.
const HeaderLines = 3

// DefaultLimit is the mismatch limit used when none is given.
const DefaultLimit = 5

// Summary classifies how a comparison finished.
type Summary int

const (
	// NoMismatches means every compared line matched.
	NoMismatches Summary = iota
	// FewerThanLimit means at least one mismatch was found but the search
	// ran to the end of the shorter file.
	FewerThanLimit
	// StoppedAtLimit means the search stopped at the limit; there may be more.
	StoppedAtLimit
)

func (s Summary) String() string {
	switch s {
	case NoMismatches:
		return "no mismatches"
	case FewerThanLimit:
		return "fewer than limit"
	default:
		return "stopped at limit"
	}
}

// MarshalText makes summaries readable in JSON output.
func (s Summary) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Mismatch is one differing line.
type Mismatch struct {
	Line      int    `json:"line"`
	Actual    string `json:"actual"`
	Reference string `json:"reference"`
}

// Report is the outcome of comparing one pair of files.
type Report struct {
	Actual     string     `json:"actual"`
	Reference  string     `json:"reference"`
	Limit      int        `json:"limit"`
	Mismatches []Mismatch `json:"mismatches"`

	// EndedEarly is set when one file ran out of lines before the other.
	EndedEarly bool `json:"ended_early"`

	Summary Summary `json:"summary"`
}

// Passed reports whether the files matched completely.
func (r *Report) Passed() bool {
	return len(r.Mismatches) == 0 && !r.EndedEarly
}

// Pair names a computed file and the reference it should match.
type Pair struct {
	Actual    string `yaml:"actual" json:"actual"`
	Reference string `yaml:"reference" json:"reference"`
}

// Compare diffs actualPath against referencePath, stopping after limit
// mismatches. Both files are closed before Compare returns.
func Compare(actualPath, referencePath string, limit int) (*Report, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("golden: mismatch limit must be positive, got %d", limit)
	}

	fa, err := os.Open(actualPath)
	if err != nil {
		return nil, fmt.Errorf("golden: %w", err)
	}
	defer fa.Close()

	fr, err := os.Open(referencePath)
	if err != nil {
		return nil, fmt.Errorf("golden: %w", err)
	}
	defer fr.Close()

	report, err := compareReaders(fa, fr, limit)
	if err != nil {
		return nil, fmt.Errorf("golden: comparing %s with %s: %w", actualPath, referencePath, err)
	}
	report.Actual = actualPath
	report.Reference = referencePath
	return report, nil
}

func compareReaders(actual, reference io.Reader, limit int) (*Report, error) {
	report := &Report{Limit: limit, Mismatches: []Mismatch{}}
	ra := bufio.NewReader(actual)
	rr := bufio.NewReader(reference)

	for i := 0; i < HeaderLines; i++ {
		_, okA, err := nextLine(ra)
		if err != nil {
			return nil, err
		}
		_, okR, err := nextLine(rr)
		if err != nil {
			return nil, err
		}
		if !okA || !okR {
			report.EndedEarly = okA != okR
			report.Summary = summarize(0, limit)
			return report, nil
		}
	}

	for line := HeaderLines + 1; len(report.Mismatches) < limit; line++ {
		a, okA, err := nextLine(ra)
		if err != nil {
			return nil, err
		}
		r, okR, err := nextLine(rr)
		if err != nil {
			return nil, err
		}
		if !okA || !okR {
			report.EndedEarly = okA != okR
			break
		}
		if a != r {
			report.Mismatches = append(report.Mismatches, Mismatch{Line: line, Actual: a, Reference: r})
		}
	}

	report.Summary = summarize(len(report.Mismatches), limit)
	return report, nil
}

// nextLine returns the next line trimmed of surrounding whitespace. ok is
// false once the reader is exhausted.
func nextLine(br *bufio.Reader) (line string, ok bool, err error) {
	s, err := br.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if s == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(s), true, nil
}

func summarize(mismatches, limit int) Summary {
	switch {
	case mismatches == 0:
		return NoMismatches
	case mismatches < limit:
		return FewerThanLimit
	default:
		return StoppedAtLimit
	}
}

// WriteTo prints the report in the plain-text layout of the regression tool.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "\nComparing:\n  %s\n  %s\n\n", r.Actual, r.Reference)
	for i, m := range r.Mismatches {
		fmt.Fprintf(&b, "Mismatch %d at line %d:\n", i+1, m.Line)
		fmt.Fprintf(&b, "  File1: %s\n", m.Actual)
		fmt.Fprintf(&b, "  File2: %s\n", m.Reference)
	}
	if r.EndedEarly {
		b.WriteString("Reached end of one file.\n")
	}
	switch r.Summary {
	case NoMismatches:
		b.WriteString("No mismatches found.\n")
	case FewerThanLimit:
		fmt.Fprintf(&b, "Found %d mismatches (less than %d).\n", len(r.Mismatches), r.Limit)
	default:
		fmt.Fprintf(&b, "Stopped after %d mismatches.\n", r.Limit)
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// CompareAll compares each pair in order and writes every report to w (which
// may be nil). A pair that cannot be compared does not stop the run; its
// error is joined into the returned error and it has no report.
func CompareAll(pairs []Pair, limit int, w io.Writer) ([]*Report, error) {
	var (
		reports []*Report
		errs    []error
	)
	for _, p := range pairs {
		report, err := Compare(p.Actual, p.Reference, limit)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reports = append(reports, report)
		if w != nil {
			if _, err := report.WriteTo(w); err != nil {
				return reports, fmt.Errorf("golden: writing report: %w", err)
			}
		}
	}
	return reports, errors.Join(errs...)
}

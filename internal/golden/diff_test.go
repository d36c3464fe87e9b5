package golden

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeLines writes a header plus one sample per line and returns the path.
func writeLines(t *testing.T, dir, name string, samples []string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("P2\n4 4\n255\n")
	for _, s := range samples {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func samples(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprint(i * 3 % 256)
	}
	return out
}

func TestCompare_Identical(t *testing.T) {
	dir := t.TempDir()
	a := writeLines(t, dir, "a.pgm", samples(16))
	b := writeLines(t, dir, "b.pgm", samples(16))

	report, err := Compare(a, b, 5)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if report.Summary != NoMismatches {
		t.Errorf("Summary: got %v, want no mismatches", report.Summary)
	}
	if len(report.Mismatches) != 0 || report.EndedEarly {
		t.Errorf("got %+v", report)
	}
	if !report.Passed() {
		t.Error("Passed: got false, want true")
	}
}

func TestCompare_HeaderIgnored(t *testing.T) {
	dir := t.TempDir()
	a := writeLines(t, dir, "a.pgm", samples(4))
	b := filepath.Join(dir, "b.pgm")
	os.WriteFile(b, []byte("P5\n2 2\n99\n"+strings.Join(samples(4), "\n")+"\n"), 0644)

	report, err := Compare(a, b, 5)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if report.Summary != NoMismatches {
		t.Errorf("Summary: got %v, want no mismatches", report.Summary)
	}
}

func TestCompare_SingleMismatchAtLine10(t *testing.T) {
	dir := t.TempDir()
	want := samples(16)
	got := samples(16)
	got[6] = "999" // sample 6 sits on line 10

	a := writeLines(t, dir, "a.pgm", got)
	b := writeLines(t, dir, "b.pgm", want)

	report, err := Compare(a, b, 5)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(report.Mismatches) != 1 {
		t.Fatalf("mismatches: got %d, want 1", len(report.Mismatches))
	}
	m := report.Mismatches[0]
	if m.Line != 10 || m.Actual != "999" || m.Reference != want[6] {
		t.Errorf("mismatch: got %+v", m)
	}
	if report.Summary != FewerThanLimit {
		t.Errorf("Summary: got %v, want fewer than limit", report.Summary)
	}
	if report.EndedEarly {
		t.Error("EndedEarly: got true for files of equal length")
	}
}

func TestCompare_StopsAtLimit(t *testing.T) {
	dir := t.TempDir()
	got := samples(16)
	for i := range got {
		got[i] = "x" + got[i]
	}
	a := writeLines(t, dir, "a.pgm", got)
	b := writeLines(t, dir, "b.pgm", samples(16))

	report, err := Compare(a, b, 3)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(report.Mismatches) != 3 {
		t.Fatalf("mismatches: got %d, want 3", len(report.Mismatches))
	}
	for i, m := range report.Mismatches {
		if m.Line != 4+i {
			t.Errorf("mismatch %d: line %d, want %d", i, m.Line, 4+i)
		}
	}
	if report.Summary != StoppedAtLimit {
		t.Errorf("Summary: got %v, want stopped at limit", report.Summary)
	}
}

func TestCompare_EarlyTermination(t *testing.T) {
	dir := t.TempDir()
	a := writeLines(t, dir, "a.pgm", samples(10))
	b := writeLines(t, dir, "b.pgm", samples(16))

	report, err := Compare(a, b, 5)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !report.EndedEarly {
		t.Error("EndedEarly: got false, want true")
	}
	if report.Summary != NoMismatches {
		t.Errorf("Summary: got %v", report.Summary)
	}
	if report.Passed() {
		t.Error("Passed: got true for files of different length")
	}
}

func TestCompare_ShortHeader(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pgm")
	os.WriteFile(a, []byte("P2\n"), 0644)
	b := writeLines(t, dir, "b.pgm", samples(4))

	report, err := Compare(a, b, 5)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !report.EndedEarly || len(report.Mismatches) != 0 {
		t.Errorf("got %+v", report)
	}
}

func TestCompare_BothHeadersShort(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pgm")
	b := filepath.Join(dir, "b.pgm")
	os.WriteFile(a, []byte("P2\n2 2\n"), 0644)
	os.WriteFile(b, []byte("P5\n4 4\n"), 0644)

	report, err := Compare(a, b, 5)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if report.EndedEarly {
		t.Error("EndedEarly: got true although both files ended together")
	}
	if len(report.Mismatches) != 0 || report.Summary != NoMismatches {
		t.Errorf("got %+v", report)
	}
}

func TestCompare_WhitespaceTrimmed(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pgm")
	b := filepath.Join(dir, "b.pgm")
	os.WriteFile(a, []byte("P2\n1 2\n255\n  12 \r\n7\n"), 0644)
	os.WriteFile(b, []byte("P2\n1 2\n255\n12\n7"), 0644)

	report, err := Compare(a, b, 5)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !report.Passed() {
		t.Errorf("expected match, got %+v", report)
	}
}

func TestCompare_Errors(t *testing.T) {
	dir := t.TempDir()
	a := writeLines(t, dir, "a.pgm", samples(4))

	if _, err := Compare(a, filepath.Join(dir, "missing.pgm"), 5); err == nil {
		t.Error("expected error for missing reference")
	}
	if _, err := Compare(filepath.Join(dir, "missing.pgm"), a, 5); err == nil {
		t.Error("expected error for missing actual")
	}
	if _, err := Compare(a, a, 0); err == nil {
		t.Error("expected error for zero limit")
	}
}

func TestReport_WriteTo(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   []string
	}{
		{
			"no mismatches",
			Report{Actual: "a", Reference: "b", Limit: 5, Summary: NoMismatches},
			[]string{"Comparing:\n  a\n  b\n", "No mismatches found.\n"},
		},
		{
			"fewer than limit",
			Report{
				Actual: "a", Reference: "b", Limit: 5,
				Mismatches: []Mismatch{{Line: 10, Actual: "1", Reference: "2"}},
				Summary:    FewerThanLimit,
			},
			[]string{"Mismatch 1 at line 10:\n  File1: 1\n  File2: 2\n", "Found 1 mismatches (less than 5).\n"},
		},
		{
			"stopped",
			Report{
				Actual: "a", Reference: "b", Limit: 1,
				Mismatches: []Mismatch{{Line: 4, Actual: "1", Reference: "2"}},
				Summary:    StoppedAtLimit,
			},
			[]string{"Stopped after 1 mismatches.\n"},
		},
		{
			"ended early",
			Report{Actual: "a", Reference: "b", Limit: 5, EndedEarly: true, Summary: NoMismatches},
			[]string{"Reached end of one file.\nNo mismatches found.\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := tt.report.WriteTo(&buf)
			if err != nil {
				t.Fatalf("WriteTo failed: %v", err)
			}
			if n != int64(buf.Len()) {
				t.Errorf("WriteTo returned %d, wrote %d", n, buf.Len())
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestCompareAll(t *testing.T) {
	dir := t.TempDir()
	good := writeLines(t, dir, "good.pgm", samples(8))
	ref := writeLines(t, dir, "ref.pgm", samples(8))
	changed := samples(8)
	changed[0] = "x"
	bad := writeLines(t, dir, "bad.pgm", changed)

	pairs := []Pair{
		{Actual: good, Reference: ref},
		{Actual: filepath.Join(dir, "missing.pgm"), Reference: ref},
		{Actual: bad, Reference: ref},
	}

	var buf bytes.Buffer
	reports, err := CompareAll(pairs, 5, &buf)
	if err == nil {
		t.Error("expected joined error for the missing file")
	}
	if len(reports) != 2 {
		t.Fatalf("reports: got %d, want 2", len(reports))
	}
	if reports[0].Actual != good || !reports[0].Passed() {
		t.Errorf("first report: %+v", reports[0])
	}
	if reports[1].Actual != bad || reports[1].Summary != FewerThanLimit {
		t.Errorf("second report: %+v", reports[1])
	}

	out := buf.String()
	if strings.Index(out, good) > strings.Index(out, bad) {
		t.Error("reports written out of order")
	}
}

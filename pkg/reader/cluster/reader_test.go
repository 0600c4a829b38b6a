package cluster

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ChrisMcGann/adductid/pkg/core"
)

func TestReaderFile(t *testing.T) {
	f, err := os.Open("testdata/clusters.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := NewReader(f, "clusters.txt", core.Positive)

	var features []*core.Feature
	for r.Next() {
		features = append(features, r.Feature())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("read %d features, want 2", len(features))
	}

	pc := features[0]
	wantLipid := core.Lipid{CompoundID: 12, Name: "PC 34:1", Formula: "C42H82NO8P", LipidType: "PC", CarbonCount: 34, DoubleBondsCount: 1}
	if diff := cmp.Diff(wantLipid, pc.Lipid); diff != "" {
		t.Errorf("lipid mismatch (-want +got):\n%s", diff)
	}
	if pc.MZ != 782.5670 || pc.RetentionTime != 5.21 || pc.Intensity != 1200000 {
		t.Errorf("header values = %v, %v, %v", pc.MZ, pc.RetentionTime, pc.Intensity)
	}
	if pc.SourceFile != "clusters.txt" || pc.SourceLine != 2 {
		t.Errorf("source = %s:%d, want clusters.txt:2", pc.SourceFile, pc.SourceLine)
	}
	wantPeaks := []core.Peak{
		{MZ: 760.5851, Intensity: 400000},
		{MZ: 782.5670, Intensity: 1200000},
		{MZ: 1542.1448, Intensity: 50000},
	}
	if diff := cmp.Diff(wantPeaks, pc.Peaks.Peaks()); diff != "" {
		t.Errorf("peaks mismatch (-want +got):\n%s", diff)
	}

	fa := features[1]
	if fa.Lipid.Name != "FA 18:1" || fa.Polarity != core.Negative || fa.MZ != 281.2486 || fa.RetentionTime != 2.75 {
		t.Errorf("second feature = %+v", fa)
	}
	if fa.Peaks.Len() != 2 {
		t.Errorf("second feature has %d peaks, want 2", fa.Peaks.Len())
	}
}

func TestReaderDefaultPolarity(t *testing.T) {
	in := "Name: X\nMZ: 100\nNum peaks: 0\n"
	r := NewReader(strings.NewReader(in), "", core.Negative)
	if !r.Next() {
		t.Fatalf("Next() = false, err = %v", r.Err())
	}
	f := r.Feature()
	if f.Polarity != core.Negative {
		t.Errorf("Polarity = %v, want negative", f.Polarity)
	}
	if f.Peaks.Len() != 0 {
		t.Errorf("Peaks.Len() = %d, want 0", f.Peaks.Len())
	}
	if r.Next() {
		t.Errorf("Next() found a second feature")
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader("\n# nothing here\n\n"), "", core.Positive)
	if r.Next() {
		t.Fatal("Next() = true on empty input")
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantMsg string
	}{
		{"too few peaks", "Name: X\nMZ: 100\nNum peaks: 2\n100 5\n\n", "line 5: expected 2 peaks for 'X', got 1"},
		{"missing num peaks", "Name: X\nMZ: 100\n\n", "ended before 'Num peaks'"},
		{"truncated", "Name: X\nMZ: 100\nNum peaks: 2\n100 5\n", "unexpected end of file"},
		{"bad mz", "Name: X\nMZ: abc\n", "line 2: invalid m/z value 'abc'"},
		{"bad polarity", "Name: X\nPolarity: both\n", "invalid polarity"},
		{"bad num peaks", "Name: X\nNum peaks: -1\n", "invalid num peaks"},
		{"bad header", "Name: X\nnot a header\n", "expected 'Key: value'"},
		{"bad peak", "Name: X\nNum peaks: 1\n100\n", "invalid peak format"},
		{"bad intensity", "Name: X\nNum peaks: 1\n100 lots\n", "invalid intensity value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.in), "", core.Positive)
			for r.Next() {
			}
			if r.Err() == nil || !strings.Contains(r.Err().Error(), tt.wantMsg) {
				t.Errorf("Err() = %v, want it to contain %q", r.Err(), tt.wantMsg)
			}
		})
	}
}

package core

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPeakClusterSortsAndDedups(t *testing.T) {
	c := NewPeakCluster(
		Peak{MZ: 300, Intensity: 10},
		Peak{MZ: 100, Intensity: 50},
		Peak{MZ: 200, Intensity: 20},
		Peak{MZ: 100, Intensity: 50},
		Peak{MZ: 100, Intensity: 5},
	)

	want := []Peak{
		{MZ: 100, Intensity: 5},
		{MZ: 100, Intensity: 50},
		{MZ: 200, Intensity: 20},
		{MZ: 300, Intensity: 10},
	}
	if diff := cmp.Diff(want, c.Peaks()); diff != "" {
		t.Errorf("Peaks() mismatch (-want +got):\n%s", diff)
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
}

func TestPeakClusterIsImmutable(t *testing.T) {
	in := []Peak{{MZ: 100, Intensity: 1}, {MZ: 200, Intensity: 2}}
	c := NewPeakCluster(in...)

	in[0].MZ = 999
	out := c.Peaks()
	out[1].MZ = 999

	if !c.Contains(Peak{MZ: 100, Intensity: 1}) || !c.Contains(Peak{MZ: 200, Intensity: 2}) {
		t.Errorf("cluster changed after caller mutation: %v", c.Peaks())
	}
}

func TestPeakClusterContains(t *testing.T) {
	c := NewPeakCluster(Peak{MZ: 100, Intensity: 1}, Peak{MZ: 200, Intensity: 2})

	tests := []struct {
		name string
		peak Peak
		want bool
	}{
		{"present", Peak{MZ: 200, Intensity: 2}, true},
		{"same mz other intensity", Peak{MZ: 200, Intensity: 3}, false},
		{"absent", Peak{MZ: 150, Intensity: 1}, false},
		{"beyond end", Peak{MZ: 500, Intensity: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.peak); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.peak, got, tt.want)
			}
		})
	}
}

func TestNilPeakCluster(t *testing.T) {
	var c *PeakCluster
	if c.Len() != 0 || c.Peaks() != nil || c.Contains(Peak{MZ: 1}) {
		t.Errorf("nil cluster should behave as empty")
	}
	if _, ok := c.MostIntense(); ok {
		t.Errorf("MostIntense() on nil cluster reported a peak")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() on nil cluster = %v", err)
	}
}

func TestPeakClusterWithout(t *testing.T) {
	c := NewPeakCluster(Peak{MZ: 100, Intensity: 0}, Peak{MZ: 200, Intensity: 5})
	got := c.Without(func(p Peak) bool { return p.Intensity == 0 })

	if diff := cmp.Diff([]Peak{{MZ: 200, Intensity: 5}}, got.Peaks()); diff != "" {
		t.Errorf("Without() mismatch (-want +got):\n%s", diff)
	}
	if c.Len() != 2 {
		t.Errorf("Without() modified the receiver")
	}
}

func TestPeakClusterMostIntense(t *testing.T) {
	c := NewPeakCluster(Peak{MZ: 100, Intensity: 7}, Peak{MZ: 200, Intensity: 9}, Peak{MZ: 300, Intensity: 9})
	got, ok := c.MostIntense()
	if !ok {
		t.Fatal("MostIntense() found nothing")
	}
	if diff := cmp.Diff(Peak{MZ: 200, Intensity: 9}, got); diff != "" {
		t.Errorf("MostIntense() mismatch (-want +got):\n%s", diff)
	}
}

func TestPeakClusterValidate(t *testing.T) {
	tests := []struct {
		name    string
		peaks   []Peak
		wantErr bool
	}{
		{"valid", []Peak{{MZ: 100, Intensity: 1}, {MZ: 200, Intensity: 0}}, false},
		{"zero mz", []Peak{{MZ: 0, Intensity: 1}}, true},
		{"nan mz", []Peak{{MZ: math.NaN(), Intensity: 1}}, true},
		{"negative intensity", []Peak{{MZ: 100, Intensity: -1}}, true},
		{"infinite intensity", []Peak{{MZ: 100, Intensity: math.Inf(1)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPeakCluster(tt.peaks...).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFeatureValidation(t *testing.T) {
	valid := func() *Feature {
		return &Feature{
			Lipid:         Lipid{Name: "PC 34:1", Formula: "C42H82NO8P", CarbonCount: 34, DoubleBondsCount: 1},
			MZ:            760.5851,
			RetentionTime: 12.3,
			Peaks:         NewPeakCluster(Peak{MZ: 760.5851, Intensity: 1e5}),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Feature)
		wantErr bool
	}{
		{"valid feature", func(*Feature) {}, false},
		{"no peaks", func(f *Feature) { f.Peaks = nil }, false},
		{"missing name", func(f *Feature) { f.Lipid.Name = " " }, true},
		{"zero mz", func(f *Feature) { f.MZ = 0 }, true},
		{"negative retention time", func(f *Feature) { f.RetentionTime = -1 }, true},
		{"negative intensity", func(f *Feature) { f.Intensity = -5 }, true},
		{"negative carbons", func(f *Feature) { f.Lipid.CarbonCount = -1 }, true},
		{"bad peak", func(f *Feature) { f.Peaks = NewPeakCluster(Peak{MZ: -1, Intensity: 1}) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(f)
			err := f.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFeatureRepresentativeIntensity(t *testing.T) {
	f := &Feature{Peaks: NewPeakCluster(Peak{MZ: 100, Intensity: 3}, Peak{MZ: 200, Intensity: 8})}
	if got := f.RepresentativeIntensity(); got != 8 {
		t.Errorf("RepresentativeIntensity() = %v, want 8", got)
	}

	f.Intensity = 42
	if got := f.RepresentativeIntensity(); got != 42 {
		t.Errorf("RepresentativeIntensity() = %v, want 42", got)
	}

	empty := &Feature{}
	if got := empty.RepresentativeIntensity(); got != 0 {
		t.Errorf("RepresentativeIntensity() on empty feature = %v, want 0", got)
	}
}

func TestFeatureName(t *testing.T) {
	f := &Feature{Lipid: Lipid{Name: "TG 52:2"}, MZ: 876.80151}
	if got := f.Name(); got != "TG 52:2@876.8015" {
		t.Errorf("Name() = %q", got)
	}
	if got := f.Lipid.String(); got != "TG 52:2" {
		t.Errorf("Lipid.String() = %q", got)
	}
}

package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrisMcGann/adductid/pkg/adduct"
	"github.com/ChrisMcGann/adductid/pkg/core"
	"github.com/ChrisMcGann/adductid/pkg/detect"
)

var pc341 = core.Lipid{Name: "PC 34:1", Formula: "C42H82NO8P", LipidType: "PC", CarbonCount: 34, DoubleBondsCount: 1}

func newDetector(t *testing.T) *detect.Detector {
	t.Helper()
	d, err := detect.New(nil)
	require.NoError(t, err)
	return d
}

func TestNewDetectsAdduct(t *testing.T) {
	a, err := New(newDetector(t), pc341, 522.989218, 2e5, 5.2, core.Positive,
		core.Peak{MZ: 522.989218, Intensity: 2e5},
		core.Peak{MZ: 501.007276, Intensity: 8e4},
		core.Peak{MZ: 1001.007276, Intensity: 1e4},
	)
	require.NoError(t, err)

	assert.Equal(t, "[M+Na]+", a.Adduct())
	assert.Equal(t, 2, a.Explained())
	assert.InDelta(t, 500.0, a.NeutralMass(), 1e-9)
	assert.Equal(t, 3, a.GroupedPeaks().Len())
}

func TestNewWithoutGroupedPeaks(t *testing.T) {
	a, err := New(newDetector(t), pc341, 498.992724, 1e4, 3.0, core.Negative)
	require.NoError(t, err)
	assert.Equal(t, "[M-H]-", a.Adduct())
	assert.Zero(t, a.Explained())
}

func TestNewPropagatesDetectionError(t *testing.T) {
	d, err := detect.New(adduct.NewTable(nil, nil))
	require.NoError(t, err)

	_, err = New(d, pc341, 500, 1, 1, core.Positive)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PC 34:1")
}

func TestSetAdduct(t *testing.T) {
	a, err := New(newDetector(t), pc341, 501.007276, 1, 1, core.Positive)
	require.NoError(t, err)

	a.SetAdduct("[M+K]+")
	assert.Equal(t, "[M+K]+", a.Adduct())
}

func TestScores(t *testing.T) {
	a, err := New(newDetector(t), pc341, 501.007276, 1, 1, core.Positive)
	require.NoError(t, err)
	assert.Zero(t, a.NormalizedScore())

	a.AddScore(3)
	a.AddScore(1)
	a.AddScore(-1)
	assert.Equal(t, 3, a.Score())
	assert.InDelta(t, 1.0, a.NormalizedScore(), 1e-12)

	a.SetScore(9)
	assert.Equal(t, 9, a.Score())
	assert.InDelta(t, 3.0, a.NormalizedScore(), 1e-12)
}

func TestEqual(t *testing.T) {
	d := newDetector(t)
	a, _ := New(d, pc341, 501.007276, 10, 4.5, core.Positive)
	b, _ := New(d, pc341, 501.007276, 99, 4.5, core.Positive, core.Peak{MZ: 522.989218, Intensity: 5})
	c, _ := New(d, pc341, 501.007276, 10, 4.6, core.Positive)

	assert.True(t, a.Equal(b), "intensity and peaks do not affect equality")
	assert.False(t, a.Equal(c), "retention time differs")
	assert.False(t, a.Equal(nil))

	var n *Annotation
	assert.True(t, n.Equal(nil))
}

func TestString(t *testing.T) {
	a, err := New(newDetector(t), pc341, 501.007276, 1234.5, 4.25, core.Positive)
	require.NoError(t, err)

	s := a.String()
	for _, want := range []string{"PC 34:1", "mz=501.0073", "RT=4.25", "adduct=[M+H]+", "intensity=1234.5", "score=0"} {
		assert.True(t, strings.Contains(s, want), "String() = %q, missing %q", s, want)
	}
}

package geometry

import (
	"testing"

	"github.com/conneroisu/headset/internal/errors"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	name   string
	p      v3.Vec
	inside bool
}

func checkProbes(t *testing.T, s sdf.SDF3, probes []probe) {
	t.Helper()
	for _, pr := range probes {
		assert.Equal(t, pr.inside, Contains(s, pr.p), "%s at %v", pr.name, pr.p)
	}
}

func TestSlab(t *testing.T) {
	s, err := Slab(10, 20, 5)
	require.NoError(t, err)

	bb := s.BoundingBox()
	assert.InDelta(t, -5.0, bb.Min.Y, 1e-9)
	assert.InDelta(t, 0.0, bb.Max.Y, 1e-9)
	assert.InDelta(t, 20.0, bb.Max.Z-bb.Min.Z, 1e-9)

	checkProbes(t, s, []probe{
		{"centre", v3.Vec{Y: -2.5}, true},
		{"head side", v3.Vec{Y: 1}, false},
		{"above", v3.Vec{Y: -2.5, Z: 11}, false},
	})
}

func TestHalfTorus(t *testing.T) {
	s, err := HalfTorus(2, 10)
	require.NoError(t, err)

	checkProbes(t, s, []probe{
		{"apex", v3.Vec{Y: -10}, true},
		{"upper end", v3.Vec{Y: -0.5, Z: 10}, true},
		{"lower end", v3.Vec{Y: -0.5, Z: -10}, true},
		{"centre", v3.Vec{}, false},
		{"clipped half", v3.Vec{Y: 10}, false},
		{"off plane", v3.Vec{X: 5, Y: -10}, false},
	})

	bb := s.BoundingBox()
	assert.InDelta(t, -11.0, bb.Min.Y, 1e-6, "box stops at the apex")
	assert.InDelta(t, 0.0, bb.Max.Y, 1e-6, "box stops at the cut plane")
	assert.InDelta(t, -11.0, bb.Min.Z, 1e-6)
	assert.InDelta(t, 11.0, bb.Max.Z, 1e-6)
	assert.InDelta(t, 2.0, bb.Max.X-bb.Min.X, 1e-6)
}

func TestHeadbandArc(t *testing.T) {
	s, err := HeadbandArc(92, 6, 40, 15)
	require.NoError(t, err)

	checkProbes(t, s, []probe{
		{"crown", v3.Vec{Y: 89, Z: 7.5}, true},
		{"side", v3.Vec{X: 89, Y: 1, Z: 7.5}, true},
		{"leg", v3.Vec{X: 89, Y: -20, Z: 7.5}, true},
		{"other leg", v3.Vec{X: -89, Y: -39, Z: 7.5}, true},
		{"past leg end", v3.Vec{X: 89, Y: -41, Z: 7.5}, false},
		{"head", v3.Vec{Z: 7.5}, false},
		{"above band", v3.Vec{Y: 89, Z: 16}, false},
		{"below band", v3.Vec{Y: 89, Z: -1}, false},
	})

	bb := s.BoundingBox()
	assert.InDelta(t, -40.0, bb.Min.Y, 1e-9, "box ends at the leg ends")
	assert.InDelta(t, 92.0, bb.Max.Y, 1e-9)
	assert.InDelta(t, -92.0, bb.Min.X, 1e-9)
	assert.InDelta(t, 92.0, bb.Max.X, 1e-9)
	assert.InDelta(t, 0.0, bb.Min.Z, 1e-9)
	assert.InDelta(t, 15.0, bb.Max.Z, 1e-9)
}

func TestIntersectBoundingBox(t *testing.T) {
	a, err := Box(10, 10, 10)
	require.NoError(t, err)
	b, err := Box(10, 10, 10)
	require.NoError(t, err)

	s := intersect(a, translate(b, 3, -4, 5))
	bb := s.BoundingBox()
	assert.Equal(t, v3.Vec{X: -2, Y: -5, Z: 0}, bb.Min)
	assert.Equal(t, v3.Vec{X: 5, Y: 1, Z: 5}, bb.Max)
	assert.True(t, Contains(s, v3.Vec{X: 1, Y: -2, Z: 2}))
	assert.False(t, Contains(s, v3.Vec{X: -4, Y: -2, Z: 2}))
}

func TestHeadbandArcWithoutExtension(t *testing.T) {
	s, err := HeadbandArc(92, 6, 0, 15)
	require.NoError(t, err)
	assert.False(t, Contains(s, v3.Vec{X: 89, Y: -20, Z: 7.5}))
	assert.True(t, Contains(s, v3.Vec{Y: 89, Z: 7.5}))
}

func TestLegEndCenters(t *testing.T) {
	c := LegEndCenters(92, 6, 40, 15)
	require.Len(t, c, 2)
	assert.Equal(t, v3.Vec{X: 89, Y: -40, Z: 7.5}, c[0])
	assert.Equal(t, v3.Vec{X: -89, Y: -40, Z: 7.5}, c[1])
}

func TestMicClip(t *testing.T) {
	s, err := MicClip(4, 1.6, 10, 3)
	require.NoError(t, err)

	checkProbes(t, s, []probe{
		{"back wall", v3.Vec{Y: -2.8}, true},
		{"side wall", v3.Vec{X: 2.8, Y: 0.5}, true},
		{"opening", v3.Vec{Y: 2.8}, false},
		{"rod", v3.Vec{}, false},
		{"above", v3.Vec{Y: -2.8, Z: 6}, false},
	})
}

func TestWedge(t *testing.T) {
	s, err := Wedge(10, 90, 5)
	require.NoError(t, err)

	checkProbes(t, s, []probe{
		{"axis", v3.Vec{Y: 5, Z: 2.5}, true},
		{"edge of sector", v3.Vec{X: 4, Y: 5, Z: 2.5}, true},
		{"behind tip", v3.Vec{Y: -1, Z: 2.5}, false},
		{"outside angle", v3.Vec{X: 9, Y: 1, Z: 2.5}, false},
		{"past radius", v3.Vec{Y: 11, Z: 2.5}, false},
		{"above", v3.Vec{Y: 5, Z: 6}, false},
	})
}

func TestTweeterFill(t *testing.T) {
	s, err := TweeterFill(35, 41, 10, 90)
	require.NoError(t, err)

	checkProbes(t, s, []probe{
		{"centre", v3.Vec{}, true},
		{"wedge", v3.Vec{Z: -20}, true},
		{"above cone", v3.Vec{Z: 20}, false},
		{"in front", v3.Vec{Y: 6}, false},
		{"behind", v3.Vec{Y: -6}, false},
	})
}

func TestTweeterHousing(t *testing.T) {
	s, err := TweeterHousing(35, 41, 10, 90, 2, 5, 2.5)
	require.NoError(t, err)

	checkProbes(t, s, []probe{
		{"cavity", v3.Vec{}, false},
		{"mouth", v3.Vec{Y: 5.5}, false},
		{"back wall", v3.Vec{Y: -5}, true},
		{"side wall", v3.Vec{X: 21.5}, true},
		{"below wedge", v3.Vec{Z: -21.5}, true},
		{"loop apex", v3.Vec{Y: -9.75}, true},
		{"outside", v3.Vec{X: 23}, false},
	})

	bare, err := TweeterHousing(35, 41, 10, 90, 2, 0, 0)
	require.NoError(t, err)
	assert.False(t, Contains(bare, v3.Vec{Y: -9.75}))
	assert.True(t, Contains(bare, v3.Vec{Y: -5}))
}

func TestHeadboxArc(t *testing.T) {
	s, err := HeadboxArc(69, 60, 95.49, 8)
	require.NoError(t, err)

	bb := s.BoundingBox()
	assert.InDelta(t, 0.0, bb.Min.Y, 1e-9)
	assert.InDelta(t, 8.0, bb.Max.Y, 1e-9)

	checkProbes(t, s, []probe{
		{"corner", v3.Vec{X: 34, Y: 1}, true},
		{"other corner", v3.Vec{X: -34, Y: 1, Z: 25}, true},
		{"head", v3.Vec{Y: 4}, false},
		{"corner above saddle", v3.Vec{X: 34, Y: 7.5}, false},
	})
}

func TestCutoutCylinder(t *testing.T) {
	s, err := CutoutCylinder(100, 36, 3)
	require.NoError(t, err)

	checkProbes(t, s, []probe{
		{"penetrating edge", v3.Vec{Y: -2}, true},
		{"past penetration", v3.Vec{Y: -4}, false},
		{"above", v3.Vec{Y: 10, Z: 19}, false},
	})
}

func TestBatteryHolder(t *testing.T) {
	s, err := BatteryHolder(50, 34, 10, 69, 60)
	require.NoError(t, err)

	checkProbes(t, s, []probe{
		{"frame", v3.Vec{X: 30, Y: -5}, true},
		{"frame top", v3.Vec{Y: -5, Z: 20}, true},
		{"pocket", v3.Vec{Y: -5}, false},
	})
}

func TestControlBoardHolder(t *testing.T) {
	s, err := ControlBoardHolder(65, 56, 14, 69, 60, 2, 20)
	require.NoError(t, err)

	bb := s.BoundingBox()
	assert.InDelta(t, -16.0, bb.Min.Y, 1e-9)

	checkProbes(t, s, []probe{
		{"pocket", v3.Vec{Y: -7}, false},
		{"open top", v3.Vec{Y: -7, Z: 29.5}, false},
		{"back wall", v3.Vec{Y: -15}, true},
		{"bottom lip", v3.Vec{Y: -7, Z: -29}, true},
		{"side wall", v3.Vec{X: 33.5, Y: -7}, true},
		{"ethernet notch", v3.Vec{X: 25, Y: -7, Z: -29}, false},
	})
}

func TestScrewMounts(t *testing.T) {
	mounts, holes, err := ScrewMounts(58, 49, 2.7, 1.5, 3, 2)
	require.NoError(t, err)

	for _, c := range []v3.Vec{{X: 29, Z: 24.5}, {X: -29, Z: 24.5}, {X: 29, Z: -24.5}, {X: -29, Z: -24.5}} {
		assert.True(t, Contains(mounts, c.Add(v3.Vec{X: 2, Y: 1.5})), "standoff at %v", c)
		assert.True(t, Contains(holes, c.Add(v3.Vec{Y: -1})), "hole through wall at %v", c)
		assert.False(t, Contains(holes, c.Add(v3.Vec{Y: -3})), "hole past wall at %v", c)
	}
	assert.False(t, Contains(mounts, v3.Vec{Y: 1.5}))
}

func TestStrapGuide(t *testing.T) {
	s, err := StrapGuide(8, 12, 6, 3, 2)
	require.NoError(t, err)

	checkProbes(t, s, []probe{
		{"bar", v3.Vec{Y: -4.5}, true},
		{"slot", v3.Vec{Y: -1.5}, false},
		{"upper lip", v3.Vec{Y: -1.5, Z: 7}, true},
		{"lower lip", v3.Vec{Y: -1.5, Z: -7}, true},
	})
}

func TestStrapGuidePadding(t *testing.T) {
	tests := []struct {
		name      string
		depth     float64
		clearance float64
		wantErr   bool
	}{
		{"positive padding", 6, 3, false},
		{"zero padding", 3, 3, false},
		{"negative padding", 2, 3, true},
		{"barely negative", 2.99, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := StrapGuide(8, 12, tt.depth, tt.clearance, 2)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotNil(t, s)
				return
			}
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrNegativePadding)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestBindToTopSurface(t *testing.T) {
	box, err := Slab(10, 10, 5)
	require.NoError(t, err)
	target, err := Box(4, 4, 2)
	require.NoError(t, err)

	joined := BindToTopSurface(box, target, false)
	assert.InDelta(t, -7+Overcut, joined.BoundingBox().Min.Y, 1e-9)
	checkProbes(t, joined, []probe{
		{"stacked", v3.Vec{Y: -6.5}, true},
		{"body", v3.Vec{Y: -2}, true},
		{"beside stack", v3.Vec{X: 4, Y: -6.5}, false},
	})

	cut := BindToTopSurface(box, target, true)
	assert.InDelta(t, -5.0, cut.BoundingBox().Min.Y, 1e-9)
	checkProbes(t, cut, []probe{
		{"recess", v3.Vec{Y: -4}, false},
		{"behind recess", v3.Vec{Y: -2}, true},
		{"beside recess", v3.Vec{X: 4, Y: -4}, true},
	})
}

func TestInspect(t *testing.T) {
	cube, err := Box(10, 10, 10)
	require.NoError(t, err)

	r := Inspect(cube, 8)
	assert.Equal(t, 512, r.Samples)
	assert.Equal(t, 512, r.Inside)
	assert.InDelta(t, 1000.0, r.Volume, 1e-6)
	assert.InDelta(t, 1.0, r.Fill(), 1e-12)
	assert.Equal(t, v3.Vec{X: 10, Y: 10, Z: 10}, r.Size())
	assert.False(t, r.Empty())

	big, err := Box(20, 20, 20)
	require.NoError(t, err)
	empty := Inspect(sdf.Difference3D(cube, big), 8)
	assert.True(t, empty.Empty())
	assert.Zero(t, empty.Volume)

	assert.Equal(t, DefaultSamples*DefaultSamples*DefaultSamples, Inspect(cube, 0).Samples)
}

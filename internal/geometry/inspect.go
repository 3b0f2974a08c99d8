package geometry

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultSamples is the per-axis sample count used by Inspect when none is given.
const DefaultSamples = 24

// Report summarises a solid without meshing it.
type Report struct {
	Min     v3.Vec  `yaml:"min" json:"min"`
	Max     v3.Vec  `yaml:"max" json:"max"`
	Samples int     `yaml:"samples" json:"samples"`
	Inside  int     `yaml:"inside" json:"inside"`
	Volume  float64 `yaml:"volume_mm3" json:"volume_mm3"`
}

// Size is the extent of the bounding box.
func (r Report) Size() v3.Vec {
	return r.Max.Sub(r.Min)
}

// Fill is the fraction of samples that fell inside the solid.
func (r Report) Fill() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Inside) / float64(r.Samples)
}

// Empty reports whether no sample landed inside the solid. Distance field
// solids are closed by construction, so a non-empty solid is also watertight.
func (r Report) Empty() bool {
	return r.Inside == 0
}

// Inspect samples the centres of an n x n x n grid over the solid's bounding
// box and estimates its volume from the share of samples inside it.
func Inspect(s sdf.SDF3, n int) Report {
	if n <= 0 {
		n = DefaultSamples
	}
	bb := s.BoundingBox()
	size := bb.Max.Sub(bb.Min)
	r := Report{Min: bb.Min, Max: bb.Max, Samples: n * n * n}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return r
	}

	step := v3.Vec{X: size.X / float64(n), Y: size.Y / float64(n), Z: size.Z / float64(n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				p := v3.Vec{
					X: bb.Min.X + (float64(i)+0.5)*step.X,
					Y: bb.Min.Y + (float64(j)+0.5)*step.Y,
					Z: bb.Min.Z + (float64(k)+0.5)*step.Z,
				}
				if s.Evaluate(p) < 0 {
					r.Inside++
				}
			}
		}
	}
	r.Volume = size.X * size.Y * size.Z * r.Fill()
	return r
}

// Contains reports whether p lies strictly inside s.
func Contains(s sdf.SDF3, p v3.Vec) bool {
	return s.Evaluate(p) < 0
}

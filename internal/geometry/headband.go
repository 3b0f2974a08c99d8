package geometry

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// HeadbandArc returns the headband body: the upper half of an annulus with
// outer radius radius and inner radius radius-thickness, continued by two
// straight legs that reach down to y=-extension. The profile is extruded
// over z in [0, height].
func HeadbandArc(radius, thickness, extension, height float64) (sdf.SDF3, error) {
	outer, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, kernelError("headband outer cylinder", err)
	}
	inner, err := sdf.Cylinder3D(height+2*Overcut, radius-thickness, 0)
	if err != nil {
		return nil, kernelError("headband inner cylinder", err)
	}
	upper, err := Box(2*radius+2*Overcut, height, radius+Overcut)
	if err != nil {
		return nil, err
	}
	arc := intersect(
		sdf.Difference3D(outer, inner),
		translate(upper, 0, (radius+Overcut)/2, 0),
	)

	parts := []sdf.SDF3{arc}
	if extension > 0 {
		// legs overlap the arc by Overcut so the union is one body
		leg, err := Box(thickness, height, extension+Overcut)
		if err != nil {
			return nil, err
		}
		x := radius - thickness/2
		y := -(extension - Overcut) / 2
		parts = append(parts, translate(leg, x, y, 0), translate(leg, -x, y, 0))
	}

	return translate(sdf.Union3D(parts...), 0, 0, height/2), nil
}

// LegEndCenters returns the centres of the two end faces of a HeadbandArc.
// Both faces point in -Y.
func LegEndCenters(radius, thickness, extension, height float64) []v3.Vec {
	x := radius - thickness/2
	return []v3.Vec{
		{X: x, Y: -extension, Z: height / 2},
		{X: -x, Y: -extension, Z: height / 2},
	}
}

// MicClip returns a C-shaped clip for a rod of diameter rod. The clip is a
// ring of wall thickness wall and height width around the Z axis, with an
// opening of gap facing +Y.
func MicClip(rod, wall, width, gap float64) (sdf.SDF3, error) {
	ri := rod / 2
	ro := ri + wall
	outer, err := sdf.Cylinder3D(width, ro, 0)
	if err != nil {
		return nil, kernelError("mic clip outer", err)
	}
	inner, err := sdf.Cylinder3D(width+2*Overcut, ri, 0)
	if err != nil {
		return nil, kernelError("mic clip inner", err)
	}
	clip := sdf.Difference3D(outer, inner)
	if gap <= 0 {
		return clip, nil
	}
	slot, err := Box(gap, width+2*Overcut, ro+Overcut)
	if err != nil {
		return nil, err
	}
	return sdf.Difference3D(clip, translate(slot, 0, (ro+Overcut)/2, 0)), nil
}

package geometry

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

const wedgeFacets = 32

// Wedge returns a circular sector of the given radius spanning angle degrees,
// centred on the +Y axis with its tip on the origin, extruded over z in
// [0, depth].
func Wedge(radius, angle, depth float64) (sdf.SDF3, error) {
	half := sdf.DtoR(angle) / 2
	start := math.Pi/2 - half

	pts := make([]v2.Vec, 0, wedgeFacets+2)
	pts = append(pts, v2.Vec{X: 0, Y: 0})
	for i := 0; i <= wedgeFacets; i++ {
		a := start + 2*half*float64(i)/wedgeFacets
		pts = append(pts, v2.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)})
	}

	profile, err := sdf.Polygon2D(pts)
	if err != nil {
		return nil, kernelError("wedge profile", err)
	}
	return translate(sdf.Extrude3D(profile, depth), 0, 0, depth/2), nil
}

// TweeterFill returns the volume a cone tweeter occupies: a cone growing from
// inner to outer diameter over depth, filled underneath by a wedge of
// wedgeAngle degrees so the cavity prints without overhangs. The result is
// centred on the origin with the cone axis on +Y (wide end at +Y) and the
// wedge hanging towards -Z.
func TweeterFill(inner, outer, depth, wedgeAngle float64) (sdf.SDF3, error) {
	cone, err := sdf.Cone3D(depth, inner/2, outer/2, 0)
	if err != nil {
		return nil, kernelError("tweeter cone", err)
	}
	wedge, err := Wedge(outer/2, wedgeAngle, depth)
	if err != nil {
		return nil, err
	}
	fill := sdf.Union3D(cone, translate(wedge, 0, 0, -depth/2))
	return sdf.Transform3D(fill, sdf.RotateX(-math.Pi/2)), nil
}

// TweeterHousing returns a cup that holds a tweeter: a cylinder of wall
// thickness wall around the tweeter fill, closed at the back (-Y) and open at
// the front (+Y). When loopRadius is positive an attachment loop is added to
// the back so the housing can be tied onto the headband.
func TweeterHousing(inner, outer, depth, wedgeAngle, wall, loopRadius, loopThickness float64) (sdf.SDF3, error) {
	length := depth + wall
	shell, err := yCylinder(outer/2+wall, -length/2, length/2)
	if err != nil {
		return nil, err
	}

	fill, err := TweeterFill(inner, outer, depth, wedgeAngle)
	if err != nil {
		return nil, err
	}
	// the front opening is cleared past the rim
	mouth, err := yCylinder(outer/2, length/2-Overcut, length/2+wall)
	if err != nil {
		return nil, err
	}
	cavity := sdf.Union3D(translate(fill, 0, wall/2, 0), mouth)
	housing := sdf.Difference3D(shell, cavity)

	if loopRadius <= 0 {
		return housing, nil
	}
	loop, err := HalfTorus(loopThickness, loopRadius)
	if err != nil {
		return nil, err
	}
	return sdf.Union3D(housing, translate(loop, 0, -length/2+loopThickness/2, 0)), nil
}

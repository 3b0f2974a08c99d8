// Package geometry builds the headset's sub-assemblies as signed distance
// function solids. Builders are stateless: they take scalar dimensions in
// millimetres and return a new solid.
//
// Axes: X is width, Z is height (up) and Y is depth. The wearer's head is on
// the +Y side, the outside world on -Y.
package geometry

import (
	"math"

	"github.com/conneroisu/headset/internal/errors"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Overcut grows cutting tools past the faces they cut through so that no
// cut leaves a zero-thickness skin, and overlaps stacked bodies so unions fuse.
const Overcut = 0.01

func kernelError(op string, err error) error {
	return errors.NewGeometryError(errors.ErrCodeKernel, op, err)
}

func translate(s sdf.SDF3, x, y, z float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// clipped is an intersection carrying the overlap of its operands' boxes.
// sdf.Intersect3D keeps the first operand's box, which overstates the extent
// of a solid clipped to a half space.
type clipped struct {
	sdf.SDF3
	bb sdf.Box3
}

func (c *clipped) BoundingBox() sdf.Box3 {
	return c.bb
}

// intersect returns a ∩ b bounded by the overlap of their bounding boxes.
func intersect(a, b sdf.SDF3) sdf.SDF3 {
	ba, bb := a.BoundingBox(), b.BoundingBox()
	return &clipped{
		SDF3: sdf.Intersect3D(a, b),
		bb: sdf.Box3{
			Min: v3.Vec{
				X: math.Max(ba.Min.X, bb.Min.X),
				Y: math.Max(ba.Min.Y, bb.Min.Y),
				Z: math.Max(ba.Min.Z, bb.Min.Z),
			},
			Max: v3.Vec{
				X: math.Min(ba.Max.X, bb.Max.X),
				Y: math.Min(ba.Max.Y, bb.Max.Y),
				Z: math.Min(ba.Max.Z, bb.Max.Z),
			},
		},
	}
}

// Box returns a box centred on the origin.
func Box(width, height, depth float64) (sdf.SDF3, error) {
	b, err := sdf.Box3D(v3.Vec{X: width, Y: depth, Z: height}, 0)
	if err != nil {
		return nil, kernelError("box", err)
	}
	return b, nil
}

// Slab returns a box centred in X and Z that spans y in [-depth, 0].
func Slab(width, height, depth float64) (sdf.SDF3, error) {
	b, err := Box(width, height, depth)
	if err != nil {
		return nil, err
	}
	return translate(b, 0, -depth/2, 0), nil
}

// cutter is a Slab grown by Overcut on every side.
func cutter(width, height, depth float64) (sdf.SDF3, error) {
	b, err := Box(width+2*Overcut, height+2*Overcut, depth+2*Overcut)
	if err != nil {
		return nil, err
	}
	return translate(b, 0, -depth/2, 0), nil
}

// yCylinder returns a cylinder whose axis is the Y axis, spanning y in [y0, y1].
func yCylinder(radius, y0, y1 float64) (sdf.SDF3, error) {
	c, err := sdf.Cylinder3D(y1-y0, radius, 0)
	if err != nil {
		return nil, kernelError("cylinder", err)
	}
	c = sdf.Transform3D(c, sdf.RotateX(math.Pi/2))
	return translate(c, 0, (y0+y1)/2, 0), nil
}

// HalfTorus returns half a ring with tube diameter thickness and centreline
// radius radius. The ring lies in the YZ plane: both ends stand on the plane
// y=0 at z=±radius and the apex reaches y=-radius, so the loop can be dropped
// onto any face whose outward normal is -Y.
func HalfTorus(thickness, radius float64) (sdf.SDF3, error) {
	tube, err := sdf.Circle2D(thickness / 2)
	if err != nil {
		return nil, kernelError("half torus tube", err)
	}
	tube = sdf.Transform2D(tube, sdf.Translate2d(v2.Vec{X: radius, Y: 0}))
	ring, err := sdf.Revolve3D(tube)
	if err != nil {
		return nil, kernelError("half torus revolve", err)
	}

	reach := radius + thickness
	half, err := sdf.Box3D(v3.Vec{X: 2 * reach, Y: reach, Z: 2 * thickness}, 0)
	if err != nil {
		return nil, kernelError("half torus clip", err)
	}
	loop := intersect(ring, translate(half, 0, -reach/2, 0))

	// ends at x=±radius move to z=∓radius
	return sdf.Transform3D(loop, sdf.RotateY(math.Pi/2)), nil
}

// BindToTopSurface stacks target onto the outer (-Y) face of box. When cut
// is false the target's +Y face is brought onto that face and the two are
// unioned. When cut is true the target's -Y face is aligned with it instead,
// so the target sinks into box and is subtracted.
func BindToTopSurface(box, target sdf.SDF3, cut bool) sdf.SDF3 {
	face := box.BoundingBox().Min.Y
	bb := target.BoundingBox()
	if cut {
		moved := translate(target, 0, face-bb.Min.Y-Overcut, 0)
		return sdf.Difference3D(box, moved)
	}
	moved := translate(target, 0, face-bb.Max.Y+Overcut, 0)
	return sdf.Union3D(box, moved)
}

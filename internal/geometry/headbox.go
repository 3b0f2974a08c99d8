package geometry

import (
	"fmt"

	"github.com/conneroisu/headset/internal/errors"
	"github.com/deadsy/sdfx/sdf"
)

// ErrNegativePadding is returned by StrapGuide when the guide is shallower
// than the strap it has to hold.
var ErrNegativePadding = errors.NewValidationError(
	errors.ErrCodeNegativePadding,
	"strap guide depth is less than the strap clearance",
)

// HeadboxArc returns the saddle that seats the headbox on the back of the
// head: a width x height slab of depth penetration with a cylinder of
// headRadius removed. The result occupies y in [0, penetration]; the head
// cylinder's axis is at y = headRadius.
func HeadboxArc(width, height, headRadius, penetration float64) (sdf.SDF3, error) {
	box, err := Slab(width, height, penetration)
	if err != nil {
		return nil, err
	}
	head, err := sdf.Cylinder3D(2*height, headRadius, 0)
	if err != nil {
		return nil, kernelError("headbox arc cylinder", err)
	}
	arc := sdf.Difference3D(box, translate(head, 0, headRadius-penetration, 0))
	return translate(arc, 0, penetration, 0), nil
}

// CutoutCylinder returns a vertical cylinder of the given radius whose near
// edge reaches y=-penetration, spanning z in [-height/2, height/2].
func CutoutCylinder(radius, height, penetration float64) (sdf.SDF3, error) {
	c, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, kernelError("cutout cylinder", err)
	}
	return translate(c, 0, radius-penetration, 0), nil
}

// BatteryHolder returns a container-sized frame of depth batteryDepth with a
// through pocket for the battery.
func BatteryHolder(batteryWidth, batteryHeight, batteryDepth, containerWidth, containerHeight float64) (sdf.SDF3, error) {
	outer, err := Slab(containerWidth, containerHeight, batteryDepth)
	if err != nil {
		return nil, err
	}
	pocket, err := cutter(batteryWidth, batteryHeight, batteryDepth)
	if err != nil {
		return nil, err
	}
	return sdf.Difference3D(outer, pocket), nil
}

// ControlBoardHolder returns the board tray: a container of depth
// boardDepth+wall with a pocket open towards +Y and out through the top so
// the board slides in from above, a back wall of thickness wall, and a notch
// for the ethernet jack in the bottom right corner.
func ControlBoardHolder(
	boardWidth, boardHeight, boardDepth float64,
	containerWidth, containerHeight float64,
	wall, ethernetWidth float64,
) (sdf.SDF3, error) {
	outer, err := Slab(containerWidth, containerHeight, boardDepth+wall)
	if err != nil {
		return nil, err
	}
	pocket, err := cutter(boardWidth, boardHeight+2*wall, boardDepth)
	if err != nil {
		return nil, err
	}
	ethernet, err := cutter(ethernetWidth, ethernetWidth, boardDepth)
	if err != nil {
		return nil, err
	}
	ex := (boardWidth - ethernetWidth) / 2
	ez := -(boardHeight-ethernetWidth)/2 - wall

	tray := sdf.Difference3D(outer, translate(pocket, 0, 0, wall))
	return sdf.Difference3D(tray, translate(ethernet, ex, 0, ez)), nil
}

// ScrewMounts returns four standoffs on a spacingX x spacingZ rectangle and
// the matching screw holes. Standoffs have radius holeDiameter/2+padding and
// span y in [0, clearance]; holes run from y=-through to the standoff tops so
// they also pierce the wall the standoffs stand on.
func ScrewMounts(spacingX, spacingZ, holeDiameter, padding, clearance, through float64) (sdf.SDF3, sdf.SDF3, error) {
	var standoffs, bores []sdf.SDF3
	for _, sx := range []float64{-1, 1} {
		for _, sz := range []float64{-1, 1} {
			x, z := sx*spacingX/2, sz*spacingZ/2

			post, err := yCylinder(holeDiameter/2+padding, -Overcut, clearance)
			if err != nil {
				return nil, nil, err
			}
			bore, err := yCylinder(holeDiameter/2, -through-Overcut, clearance+Overcut)
			if err != nil {
				return nil, nil, err
			}
			standoffs = append(standoffs, translate(post, x, 0, z))
			bores = append(bores, translate(bore, x, 0, z))
		}
	}
	return sdf.Union3D(standoffs...), sdf.Union3D(bores...), nil
}

// StrapGuide returns a guide for a strap of height slotHeight running along
// X. The guide is width wide, depth deep and spans y in [-depth, 0]; the slot
// takes the clearance nearest +Y and the remaining depth-clearance is left as
// a bar on the outside. Lips of thickness wall close the slot above and below.
//
// It fails with ErrNegativePadding when depth < clearance.
func StrapGuide(width, slotHeight, depth, clearance, wall float64) (sdf.SDF3, error) {
	padding := depth - clearance
	if padding < 0 {
		return nil, errors.NewValidationError(
			errors.ErrCodeNegativePadding,
			fmt.Sprintf("strap guide depth %.2f is less than the strap clearance %.2f", depth, clearance),
		).WithContext("padding", padding)
	}

	guide, err := Slab(width, slotHeight+2*wall, depth)
	if err != nil {
		return nil, err
	}
	slot, err := Box(width+2*Overcut, slotHeight, clearance+2*Overcut)
	if err != nil {
		return nil, err
	}
	return sdf.Difference3D(guide, translate(slot, 0, -clearance/2, 0)), nil
}

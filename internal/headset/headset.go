// Package headset composes the geometry builders into the printable parts of
// the headset.
package headset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/conneroisu/headset/internal/errors"
	"github.com/conneroisu/headset/internal/geometry"
	"github.com/conneroisu/headset/internal/params"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Part names.
const (
	PartHeadband = "headband"
	PartHeadbox  = "headbox"
	PartTweeter  = "tweeter_housing"
)

type builder func(params.Headset) (sdf.SDF3, error)

var builders = map[string]builder{
	PartHeadband: CreateHeadband,
	PartHeadbox:  CreateHeadbox,
	PartTweeter:  CreateTweeterHousing,
}

// Parts lists every part name in build order.
func Parts() []string {
	return []string{PartHeadband, PartHeadbox, PartTweeter}
}

// Part is a named solid.
type Part struct {
	Name  string
	Solid sdf.SDF3
}

// Assembly is the set of parts produced from one parameter set.
type Assembly struct {
	Params params.Headset
	Parts  []Part
}

// Get returns the solid of the named part.
func (a *Assembly) Get(name string) (sdf.SDF3, bool) {
	for _, p := range a.Parts {
		if p.Name == name {
			return p.Solid, true
		}
	}
	return nil, false
}

// Names returns the names of the parts in the assembly.
func (a *Assembly) Names() []string {
	names := make([]string, len(a.Parts))
	for i, p := range a.Parts {
		names[i] = p.Name
	}
	return names
}

// Build validates hs and builds the requested parts, or every part when none
// is named. Parts are built in the order of Parts regardless of the order
// they were requested in.
func Build(hs params.Headset, parts ...string) (*Assembly, error) {
	if err := hs.Validate(); err != nil {
		return nil, err
	}

	selected, err := selectParts(parts)
	if err != nil {
		return nil, err
	}

	asm := &Assembly{Params: hs}
	for _, name := range selected {
		solid, err := builders[name](hs)
		if err != nil {
			return nil, errors.WrapGeometry(err, errors.ErrCodeKernel, "failed to build part", name)
		}
		asm.Parts = append(asm.Parts, Part{Name: name, Solid: solid})
	}
	return asm, nil
}

func selectParts(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return Parts(), nil
	}
	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		name = strings.TrimSpace(strings.ToLower(name))
		if _, ok := builders[name]; !ok {
			known := Parts()
			sort.Strings(known)
			return nil, errors.ErrUnknownPart(name).WithContext("known", known)
		}
		want[name] = true
	}
	var selected []string
	for _, name := range Parts() {
		if want[name] {
			selected = append(selected, name)
		}
	}
	return selected, nil
}

// CreateHeadband returns the headband: the arc with an attachment loop on
// each leg end, a loop at every tweeter angle on the outer surface, and the
// mic clip.
func CreateHeadband(hs params.Headset) (sdf.SDF3, error) {
	hb := hs.Headband
	radius := hs.Head.Radius()

	band, err := geometry.HeadbandArc(radius, hb.Thickness, hb.ExtensionLength, hb.Height)
	if err != nil {
		return nil, err
	}
	loop, err := geometry.HalfTorus(hb.AttachmentThickness, hb.AttachmentRadius)
	if err != nil {
		return nil, err
	}

	parts := []sdf.SDF3{band}
	sink := hb.AttachmentThickness / 2
	for _, c := range geometry.LegEndCenters(radius, hb.Thickness, hb.ExtensionLength, hb.Height) {
		parts = append(parts, sdf.Transform3D(loop, sdf.Translate3d(c.Add(v3.Vec{Y: sink}))))
	}
	for _, deg := range hb.TweeterAngles {
		parts = append(parts, onArc(loop, radius-sink, deg, hb.Height/2, 0.5*math.Pi))
	}

	mc := hb.MicClip
	clip, err := geometry.MicClip(mc.RodDiameter, mc.WallThickness, mc.Width, mc.GapWidth)
	if err != nil {
		return nil, err
	}
	// the clip ring's outer wall sinks half its thickness into the band
	offset := radius + mc.RodDiameter/2 + mc.WallThickness/2
	parts = append(parts, onArc(clip, offset, mc.Angle, hb.Height/2, -0.5*math.Pi))

	return sdf.Union3D(parts...), nil
}

// onArc rotates s about Z by the arc angle plus turn and moves it to dist
// from the arc centre at the given angle and height.
func onArc(s sdf.SDF3, dist, deg, z, turn float64) sdf.SDF3 {
	a := sdf.DtoR(deg)
	m := sdf.Translate3d(v3.Vec{X: dist * math.Cos(a), Y: dist * math.Sin(a), Z: z}).
		Mul(sdf.RotateZ(a + turn))
	return sdf.Transform3D(s, m)
}

// CreateHeadbox returns the electronics box: body and head saddle with the
// deep relief and strap channel cut, the battery holder and control board
// tray stacked on the outer face, and strap guides on both sides.
func CreateHeadbox(hs params.Headset) (sdf.SDF3, error) {
	box := hs.Headbox
	cb := hs.ControlBoard
	width := hs.HeadboxWidth()
	height := hs.HeadboxHeight()

	arc, err := geometry.HeadboxArc(width, height, hs.BackHead.Radius(), box.HeadPenetration)
	if err != nil {
		return nil, err
	}
	body, err := geometry.Slab(width, height, box.Depth)
	if err != nil {
		return nil, err
	}
	relief, err := geometry.CutoutCylinder(box.DeepCutoutRadius, 3*box.StrapCutoutHeight, box.DeepCutoutPenetration)
	if err != nil {
		return nil, err
	}
	var solid sdf.SDF3 = sdf.Difference3D(sdf.Union3D(body, arc), relief)

	channel, err := geometry.Box(width, box.StrapCutoutHeight, box.StrapCutoutDepth)
	if err != nil {
		return nil, err
	}
	solid = geometry.BindToTopSurface(solid, channel, true)

	battery, err := geometry.BatteryHolder(hs.Battery.Width, hs.Battery.Height, hs.Battery.Depth, width, height)
	if err != nil {
		return nil, err
	}
	solid = geometry.BindToTopSurface(solid, battery, false)

	tray, err := geometry.ControlBoardHolder(
		cb.Width, cb.Height, cb.Depth, width, height, box.WallThickness, cb.EthernetCutoutWidth)
	if err != nil {
		return nil, err
	}
	mounts, holes, err := geometry.ScrewMounts(
		cb.ScrewSpacingX, cb.ScrewSpacingZ, cb.ScrewHoleDiameter,
		cb.ScrewMountPadding, cb.ScrewMountClearance, box.WallThickness)
	if err != nil {
		return nil, err
	}
	floor := sdf.Translate3d(v3.Vec{Y: -cb.Depth})
	tray = sdf.Difference3D(
		sdf.Union3D(tray, sdf.Transform3D(mounts, floor)),
		sdf.Transform3D(holes, floor),
	)
	solid = geometry.BindToTopSurface(solid, tray, false)

	guide, err := geometry.StrapGuide(
		box.StrapGuideWidth, box.StrapCutoutHeight, box.StrapGuideDepth, box.StrapClearance, box.WallThickness)
	if err != nil {
		return nil, err
	}
	// guides sit beside the body with their slots in line with the strap
	// channel, so they are placed after stacking to keep the outer face intact
	gy := -box.Depth + box.StrapClearance
	gx := width/2 + box.StrapGuideWidth/2 - geometry.Overcut
	return sdf.Union3D(solid,
		sdf.Transform3D(guide, sdf.Translate3d(v3.Vec{X: gx, Y: gy})),
		sdf.Transform3D(guide, sdf.Translate3d(v3.Vec{X: -gx, Y: gy})),
	), nil
}

// CreateTweeterHousing returns one tweeter housing. The headset needs two.
func CreateTweeterHousing(hs params.Headset) (sdf.SDF3, error) {
	tw := hs.Tweeter
	return geometry.TweeterHousing(
		tw.InnerDiameter, tw.OuterDiameter, tw.Depth, tw.BottomWedgeAngle, tw.WallThickness,
		hs.Headband.AttachmentRadius, hs.Headband.AttachmentThickness,
	)
}

// Describe returns a one-line summary of the parameters a part depends on.
func Describe(hs params.Headset, part string) string {
	switch part {
	case PartHeadband:
		return fmt.Sprintf("radius %.1f mm, %d tweeter loops, mic clip at %.0f°",
			hs.Head.Radius(), len(hs.Headband.TweeterAngles), hs.Headband.MicClip.Angle)
	case PartHeadbox:
		return fmt.Sprintf("%.1f x %.1f mm, back head radius %.1f mm",
			hs.HeadboxWidth(), hs.HeadboxHeight(), hs.BackHead.Radius())
	case PartTweeter:
		return fmt.Sprintf("%.0f/%.0f mm tweeter, %.0f° wedge",
			hs.Tweeter.InnerDiameter, hs.Tweeter.OuterDiameter, hs.Tweeter.BottomWedgeAngle)
	default:
		return ""
	}
}

package params

import (
	"fmt"

	"github.com/conneroisu/headset/internal/errors"
)

// Validate checks every field and cross-field constraint and reports all
// violations at once. It returns nil or a *errors.HeadsetError of type
// validation.
func (hs Headset) Validate() error {
	var vec errors.ValidationErrorCollection

	positive := func(field string, v float64) {
		if v <= 0 {
			vec.AddField(field, v, "must be greater than zero")
		}
	}
	nonNegative := func(field string, v float64) {
		if v < 0 {
			vec.AddField(field, v, "must not be negative")
		}
	}

	positive("head.circumference", hs.Head.Circumference)
	positive("back_head.circumference", hs.BackHead.Circumference)

	hb := hs.Headband
	positive("headband.thickness", hb.Thickness)
	positive("headband.height", hb.Height)
	nonNegative("headband.extension_length", hb.ExtensionLength)
	positive("headband.attachment_radius", hb.AttachmentRadius)
	positive("headband.attachment_thickness", hb.AttachmentThickness)
	if hb.Thickness >= hs.Head.Radius() {
		vec.AddField("headband.thickness", hb.Thickness, "must be smaller than the head radius")
	}
	if hb.AttachmentThickness >= 2*hb.AttachmentRadius {
		vec.AddField("headband.attachment_thickness", hb.AttachmentThickness,
			"loop tube would fill the loop",
			"keep attachment_thickness below twice attachment_radius")
	}
	if hb.AttachmentRadius+hb.AttachmentThickness/2 > hb.Height/2 {
		vec.AddField("headband.attachment_radius", hb.AttachmentRadius,
			"attachment loop is taller than the headband",
			fmt.Sprintf("use at most %.2f", hb.Height/2-hb.AttachmentThickness/2))
	}
	for i, a := range hb.TweeterAngles {
		if a < 0 || a > 180 {
			vec.AddField(fmt.Sprintf("headband.tweeter_angles[%d]", i), a, "must be within 0..180 degrees")
		}
	}

	mc := hb.MicClip
	positive("headband.mic_clip.rod_diameter", mc.RodDiameter)
	positive("headband.mic_clip.wall_thickness", mc.WallThickness)
	positive("headband.mic_clip.width", mc.Width)
	nonNegative("headband.mic_clip.gap_width", mc.GapWidth)
	if mc.Angle < 0 || mc.Angle > 180 {
		vec.AddField("headband.mic_clip.angle", mc.Angle, "must be within 0..180 degrees")
	}
	if mc.Width > hb.Height {
		vec.AddField("headband.mic_clip.width", mc.Width, "must not exceed the headband height")
	}
	if mc.GapWidth >= mc.RodDiameter {
		vec.AddField("headband.mic_clip.gap_width", mc.GapWidth,
			"clip would not retain the rod",
			"keep gap_width below rod_diameter")
	}

	box := hs.Headbox
	positive("headbox.wall_thickness", box.WallThickness)
	positive("headbox.depth", box.Depth)
	positive("headbox.head_penetration", box.HeadPenetration)
	nonNegative("headbox.deep_cutout_penetration", box.DeepCutoutPenetration)
	positive("headbox.deep_cutout_radius", box.DeepCutoutRadius)
	positive("headbox.strap_cutout_height", box.StrapCutoutHeight)
	positive("headbox.strap_cutout_depth", box.StrapCutoutDepth)
	positive("headbox.strap_clearance", box.StrapClearance)
	positive("headbox.strap_guide_depth", box.StrapGuideDepth)
	positive("headbox.strap_guide_width", box.StrapGuideWidth)
	if box.StrapGuidePadding() < 0 {
		vec.AddField("headbox.strap_guide_depth", box.StrapGuideDepth,
			"strap guide is shallower than the strap clearance",
			fmt.Sprintf("use at least %.2f", box.StrapClearance))
	}
	if box.HeadPenetration >= hs.BackHead.Radius() {
		vec.AddField("headbox.head_penetration", box.HeadPenetration, "must be smaller than the back head radius")
	}
	if box.StrapCutoutDepth >= box.Depth {
		vec.AddField("headbox.strap_cutout_depth", box.StrapCutoutDepth, "must be smaller than the headbox depth")
	}
	if box.StrapCutoutHeight+2*box.WallThickness > hs.HeadboxHeight() {
		vec.AddField("headbox.strap_cutout_height", box.StrapCutoutHeight, "strap guide does not fit beside the headbox")
	}

	cb := hs.ControlBoard
	positive("control_board.width", cb.Width)
	positive("control_board.height", cb.Height)
	positive("control_board.depth", cb.Depth)
	positive("control_board.screw_hole_diameter", cb.ScrewHoleDiameter)
	nonNegative("control_board.screw_spacing_x", cb.ScrewSpacingX)
	nonNegative("control_board.screw_spacing_z", cb.ScrewSpacingZ)
	nonNegative("control_board.screw_mount_padding", cb.ScrewMountPadding)
	positive("control_board.screw_mount_clearance", cb.ScrewMountClearance)
	positive("control_board.ethernet_cutout_width", cb.EthernetCutoutWidth)
	if cb.ScrewMountClearance >= cb.Depth {
		vec.AddField("control_board.screw_mount_clearance", cb.ScrewMountClearance, "standoffs would reach past the board pocket")
	}
	mount := cb.ScrewHoleDiameter/2 + cb.ScrewMountPadding
	if cb.ScrewSpacingX/2+mount > cb.Width/2 || cb.ScrewSpacingZ/2+mount > cb.Height/2 {
		vec.AddField("control_board.screw_spacing_x", cb.ScrewSpacingX, "screw mounts fall outside the board footprint")
	}
	if cb.EthernetCutoutWidth > cb.Width || cb.EthernetCutoutWidth > cb.Height {
		vec.AddField("control_board.ethernet_cutout_width", cb.EthernetCutoutWidth, "must fit within the board footprint")
	}

	bat := hs.Battery
	positive("battery.width", bat.Width)
	positive("battery.height", bat.Height)
	positive("battery.depth", bat.Depth)
	if bat.Width >= hs.HeadboxWidth() {
		vec.AddField("battery.width", bat.Width, "battery is wider than the headbox")
	}
	if bat.Height >= hs.HeadboxHeight() {
		vec.AddField("battery.height", bat.Height, "battery is taller than the headbox")
	}

	tw := hs.Tweeter
	positive("tweeter.inner_diameter", tw.InnerDiameter)
	positive("tweeter.outer_diameter", tw.OuterDiameter)
	positive("tweeter.depth", tw.Depth)
	positive("tweeter.wall_thickness", tw.WallThickness)
	if tw.BottomWedgeAngle <= 0 || tw.BottomWedgeAngle >= 180 {
		vec.AddField("tweeter.bottom_wedge_angle", tw.BottomWedgeAngle, "must be within 0..180 degrees exclusive")
	}
	if tw.InnerDiameter > tw.OuterDiameter {
		vec.AddField("tweeter.inner_diameter", tw.InnerDiameter, "must not exceed the outer diameter")
	}

	if he := vec.ToHeadsetError(); he != nil {
		return he
	}
	return nil
}

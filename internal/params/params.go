// Package params holds the dimensional parameters of the headset. Every
// value is in millimetres (angles in degrees) and the structs are plain
// values: derived dimensions are computed by methods, never stored.
package params

import "math"

// Head describes a head by its circumference.
type Head struct {
	Circumference float64 `mapstructure:"circumference" yaml:"circumference" json:"circumference"`
}

// Diameter of the head when approximated as a circle.
func (h Head) Diameter() float64 {
	return h.Circumference / math.Pi
}

// Radius of the head when approximated as a circle.
func (h Head) Radius() float64 {
	return h.Diameter() / 2
}

// Headband is the arc that sits over the crown.
type Headband struct {
	// Radial thickness of the band.
	Thickness float64 `mapstructure:"thickness" yaml:"thickness" json:"thickness"`
	// Height of the band along the extrusion axis.
	Height float64 `mapstructure:"height" yaml:"height" json:"height"`
	// How far the legs extend past the half circle. Longer legs give a
	// horseshoe shape.
	ExtensionLength float64 `mapstructure:"extension_length" yaml:"extension_length" json:"extension_length"`
	// Centreline radius of the attachment loops.
	AttachmentRadius float64 `mapstructure:"attachment_radius" yaml:"attachment_radius" json:"attachment_radius"`
	// Tube diameter of the attachment loops.
	AttachmentThickness float64 `mapstructure:"attachment_thickness" yaml:"attachment_thickness" json:"attachment_thickness"`
	// Angular positions of the tweeter loops. 0 is the +X leg, 90 the crown.
	TweeterAngles []float64 `mapstructure:"tweeter_angles" yaml:"tweeter_angles" json:"tweeter_angles"`
	MicClip       MicClip   `mapstructure:"mic_clip" yaml:"mic_clip" json:"mic_clip"`
}

// MicClip is the C-clip that holds a microphone boom.
type MicClip struct {
	Angle         float64 `mapstructure:"angle" yaml:"angle" json:"angle"`
	RodDiameter   float64 `mapstructure:"rod_diameter" yaml:"rod_diameter" json:"rod_diameter"`
	WallThickness float64 `mapstructure:"wall_thickness" yaml:"wall_thickness" json:"wall_thickness"`
	Width         float64 `mapstructure:"width" yaml:"width" json:"width"`
	GapWidth      float64 `mapstructure:"gap_width" yaml:"gap_width" json:"gap_width"`
}

// Headbox is the electronics enclosure worn on the back of the head.
type Headbox struct {
	WallThickness float64 `mapstructure:"wall_thickness" yaml:"wall_thickness" json:"wall_thickness"`
	Depth         float64 `mapstructure:"depth" yaml:"depth" json:"depth"`
	// How far the head presses into the box.
	HeadPenetration float64 `mapstructure:"head_penetration" yaml:"head_penetration" json:"head_penetration"`
	// Penetration and radius of the deep strap relief cylinder.
	DeepCutoutPenetration float64 `mapstructure:"deep_cutout_penetration" yaml:"deep_cutout_penetration" json:"deep_cutout_penetration"`
	DeepCutoutRadius      float64 `mapstructure:"deep_cutout_radius" yaml:"deep_cutout_radius" json:"deep_cutout_radius"`
	StrapCutoutHeight     float64 `mapstructure:"strap_cutout_height" yaml:"strap_cutout_height" json:"strap_cutout_height"`
	StrapCutoutDepth      float64 `mapstructure:"strap_cutout_depth" yaml:"strap_cutout_depth" json:"strap_cutout_depth"`
	StrapClearance        float64 `mapstructure:"strap_clearance" yaml:"strap_clearance" json:"strap_clearance"`
	StrapGuideDepth       float64 `mapstructure:"strap_guide_depth" yaml:"strap_guide_depth" json:"strap_guide_depth"`
	StrapGuideWidth       float64 `mapstructure:"strap_guide_width" yaml:"strap_guide_width" json:"strap_guide_width"`
}

// StrapGuidePadding is the material left behind the strap slot.
func (h Headbox) StrapGuidePadding() float64 {
	return h.StrapGuideDepth - h.StrapClearance
}

// ControlBoard is the footprint of the controller PCB and its mounting.
type ControlBoard struct {
	Width               float64 `mapstructure:"width" yaml:"width" json:"width"`
	Height              float64 `mapstructure:"height" yaml:"height" json:"height"`
	Depth               float64 `mapstructure:"depth" yaml:"depth" json:"depth"`
	ScrewSpacingX       float64 `mapstructure:"screw_spacing_x" yaml:"screw_spacing_x" json:"screw_spacing_x"`
	ScrewSpacingZ       float64 `mapstructure:"screw_spacing_z" yaml:"screw_spacing_z" json:"screw_spacing_z"`
	ScrewHoleDiameter   float64 `mapstructure:"screw_hole_diameter" yaml:"screw_hole_diameter" json:"screw_hole_diameter"`
	ScrewMountPadding   float64 `mapstructure:"screw_mount_padding" yaml:"screw_mount_padding" json:"screw_mount_padding"`
	ScrewMountClearance float64 `mapstructure:"screw_mount_clearance" yaml:"screw_mount_clearance" json:"screw_mount_clearance"`
	EthernetCutoutWidth float64 `mapstructure:"ethernet_cutout_width" yaml:"ethernet_cutout_width" json:"ethernet_cutout_width"`
}

// Battery is the footprint of the battery pack.
type Battery struct {
	Width  float64 `mapstructure:"width" yaml:"width" json:"width"`
	Height float64 `mapstructure:"height" yaml:"height" json:"height"`
	Depth  float64 `mapstructure:"depth" yaml:"depth" json:"depth"`
}

// Tweeter describes the driver a tweeter housing is cut for.
type Tweeter struct {
	InnerDiameter    float64 `mapstructure:"inner_diameter" yaml:"inner_diameter" json:"inner_diameter"`
	OuterDiameter    float64 `mapstructure:"outer_diameter" yaml:"outer_diameter" json:"outer_diameter"`
	Depth            float64 `mapstructure:"depth" yaml:"depth" json:"depth"`
	BottomWedgeAngle float64 `mapstructure:"bottom_wedge_angle" yaml:"bottom_wedge_angle" json:"bottom_wedge_angle"`
	WallThickness    float64 `mapstructure:"wall_thickness" yaml:"wall_thickness" json:"wall_thickness"`
}

// Headset groups every parameter needed to generate all parts.
type Headset struct {
	Head         Head         `mapstructure:"head" yaml:"head" json:"head"`
	BackHead     Head         `mapstructure:"back_head" yaml:"back_head" json:"back_head"`
	Headband     Headband     `mapstructure:"headband" yaml:"headband" json:"headband"`
	Headbox      Headbox      `mapstructure:"headbox" yaml:"headbox" json:"headbox"`
	ControlBoard ControlBoard `mapstructure:"control_board" yaml:"control_board" json:"control_board"`
	Battery      Battery      `mapstructure:"battery" yaml:"battery" json:"battery"`
	Tweeter      Tweeter      `mapstructure:"tweeter" yaml:"tweeter" json:"tweeter"`
}

// HeadboxWidth is the outer width of the headbox, sized around the control board.
func (hs Headset) HeadboxWidth() float64 {
	return 2*hs.Headbox.WallThickness + hs.ControlBoard.Width
}

// HeadboxHeight is the outer height of the headbox, sized around the control board.
func (hs Headset) HeadboxHeight() float64 {
	return 2*hs.Headbox.WallThickness + hs.ControlBoard.Height
}

// Derived lists the computed dimensions, keyed the same way as the YAML
// parameter file so they can be printed next to it.
func (hs Headset) Derived() map[string]float64 {
	return map[string]float64{
		"head.diameter":               hs.Head.Diameter(),
		"head.radius":                 hs.Head.Radius(),
		"back_head.diameter":          hs.BackHead.Diameter(),
		"back_head.radius":            hs.BackHead.Radius(),
		"headbox.width":               hs.HeadboxWidth(),
		"headbox.height":              hs.HeadboxHeight(),
		"headbox.strap_guide_padding": hs.Headbox.StrapGuidePadding(),
	}
}

// Default returns a parameter set for an average adult head, a 65x56 mm
// controller and the KEMO 35 mm tweeter.
func Default() Headset {
	return Headset{
		Head:     Head{Circumference: 580},
		BackHead: Head{Circumference: 600},
		Headband: Headband{
			Thickness:           6,
			Height:              15,
			ExtensionLength:     40,
			AttachmentRadius:    5,
			AttachmentThickness: 2.5,
			TweeterAngles:       []float64{30, 150},
			MicClip: MicClip{
				Angle:         20,
				RodDiameter:   4,
				WallThickness: 1.6,
				Width:         10,
				GapWidth:      3,
			},
		},
		Headbox: Headbox{
			WallThickness:         2,
			Depth:                 12,
			HeadPenetration:       8,
			DeepCutoutPenetration: 3,
			DeepCutoutRadius:      100,
			StrapCutoutHeight:     12,
			StrapCutoutDepth:      3,
			StrapClearance:        3,
			StrapGuideDepth:       6,
			StrapGuideWidth:       8,
		},
		ControlBoard: ControlBoard{
			Width:               65,
			Height:              56,
			Depth:               14,
			ScrewSpacingX:       58,
			ScrewSpacingZ:       49,
			ScrewHoleDiameter:   2.7,
			ScrewMountPadding:   1.5,
			ScrewMountClearance: 3,
			EthernetCutoutWidth: 20,
		},
		Battery: Battery{
			Width:  50,
			Height: 34,
			Depth:  10,
		},
		Tweeter: Tweeter{
			InnerDiameter:    35,
			OuterDiameter:    41,
			Depth:            10,
			BottomWedgeAngle: 90,
			WallThickness:    2,
		},
	}
}

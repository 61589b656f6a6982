package wheel

import (
	"math"

	"github.com/ByteArena/box2d"
)

// Vec2 is a 2D point or offset in engine units unless stated otherwise.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Plus returns v + o.
func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Times scales v by s.
func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) b2() box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func fromB2(v box2d.B2Vec2) Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Config describes a wheel in caller units (pixels). It is never mutated after New.
type Config struct {
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
	Diameter       float64 `json:"diameter"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Pegs           int     `json:"pegs"`
}

// Geometry holds every derived dimension of the rig in engine units.
type Geometry struct {
	Scale    float64 // Diameter / StandardSize, in caller units
	Diameter float64
	Center   Vec2
	Viewport Vec2
	Pegs     int

	CoreRadius     float64
	BaseHalfExtent float64
	PegRadius      float64
	PegOrbit       float64

	NeedleWidth  float64
	NeedleHeight float64
	FarNeedle    float64 // needle origin height above the wheel center
	NeedleAttach float64 // needle-local height of the distance joint attachment

	PivotOffset    float64
	AnchorLateral  float64
	AnchorRadius   float64
	DistanceLength float64
}

// NewGeometry derives the rig dimensions from cfg. Every length except the base
// half-extent is linear in the diameter.
func NewGeometry(cfg Config) Geometry {
	d := cfg.Diameter / PPM
	s := d / StandardSize

	g := Geometry{
		Scale:    cfg.Diameter / StandardSize,
		Diameter: d,
		Center:   Vec2{X: cfg.X / PPM, Y: cfg.Y / PPM},
		Viewport: Vec2{X: cfg.ViewportWidth / PPM, Y: cfg.ViewportHeight / PPM},
		Pegs:     cfg.Pegs,

		CoreRadius:     d / 2,
		BaseHalfExtent: BaseHalfExtent,
		PegRadius:      refPegDiameter * s / 2,
		PegOrbit:       PegOrbitFactor * d / 2,

		NeedleWidth:  refNeedleWidth * s,
		NeedleHeight: refNeedleHeight * s,
		FarNeedle:    d / FarNeedleFactor,
		NeedleAttach: refNeedleAttach * s,

		PivotOffset:   refPivotOffset * s,
		AnchorLateral: refAnchorLateral * s,
		AnchorRadius:  refAnchorRadius * s,
	}
	g.DistanceLength = math.Hypot(g.AnchorLateral, g.NeedleAttach+g.PivotOffset)
	return g
}

// PegAngle returns the angle of peg i (0-based) in degrees.
func (g Geometry) PegAngle(i int) float64 {
	if g.Pegs <= 0 {
		return 0
	}
	return 360.0 / float64(g.Pegs) * float64(i)
}

// PegPosition returns the offset of peg i from the core center, in core-local space.
func (g Geometry) PegPosition(i int) Vec2 {
	theta := g.PegAngle(i) * math.Pi / 180
	return Vec2{X: math.Cos(theta) * g.PegOrbit, Y: math.Sin(theta) * g.PegOrbit}
}

// NeedleVertices returns the kite outline in needle-local space. The long point
// extends downward toward the pegs.
func (g Geometry) NeedleVertices() []Vec2 {
	w, h := g.NeedleWidth, g.NeedleHeight
	return []Vec2{
		{X: -w / 2, Y: 0},
		{X: 0, Y: h / 4},
		{X: w / 2, Y: 0},
		{X: 0, Y: -3 * h / 4},
	}
}

// NeedlePosition returns the world position of the needle origin.
func (g Geometry) NeedlePosition() Vec2 {
	return g.Center.Plus(Vec2{Y: g.FarNeedle})
}

// PivotPosition returns the world position of B0, just above the needle origin.
func (g Geometry) PivotPosition() Vec2 {
	return g.Center.Plus(Vec2{Y: g.FarNeedle + g.PivotOffset})
}

// AnchorPosition returns the world position of the left or right needle anchor.
func (g Geometry) AnchorPosition(side Side) Vec2 {
	dx := -g.AnchorLateral
	if side == SideRight {
		dx = g.AnchorLateral
	}
	return g.Center.Plus(Vec2{X: dx, Y: g.FarNeedle})
}

// ToPixels converts an engine-unit point back to caller units.
func (g Geometry) ToPixels(v Vec2) Vec2 {
	return v.Times(PPM)
}

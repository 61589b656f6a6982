package wheel

// Simulation and rig constants.
// Lengths marked "reference" are measured against a StandardSize wheel and are
// multiplied by Diameter/StandardSize before use.
const (
	PPM          = 100.0 // caller units per engine meter
	StandardSize = 512.0 // reference wheel diameter

	TimeStep           = 1.0 / 60.0
	VelocityIterations = 8
	PositionIterations = 2

	MinAngularVelocity = 0.0
	MaxAngularVelocity = 30.0 // above this the needle slips out of its joints

	CoreAngularDamping   = 0.25
	CoreDensity          = 0.25
	CoreFriction         = 0.25
	NeedleAngularDamping = 0.25
	NeedleDensity        = 1.0
	AnchorDensity        = 1.0
	AnchorRestitution    = 1.0
	AnchorFriction       = 1.0

	BaseHalfExtent = 32.0 / PPM // not scaled

	PegOrbitFactor  = 0.90
	FarNeedleFactor = 1.95

	refPegDiameter   = 12.0
	refNeedleWidth   = 30.0
	refNeedleHeight  = 80.0
	refPivotOffset   = 5.0
	refAnchorLateral = 40.0
	refAnchorRadius  = 4.0
	refNeedleAttach  = 15.0
)

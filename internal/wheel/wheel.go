package wheel

import (
	"errors"
	"math"

	"github.com/ByteArena/box2d"
)

// ErrDisposed is the panic value of any call made on a disposed wheel.
var ErrDisposed = errors.New("wheel: used after Dispose")

// Stepper advances a physics world by one fixed step. *box2d.B2World implements it.
type Stepper interface {
	Step(dt float64, velocityIterations int, positionIterations int)
}

// Option customizes a Wheel at construction.
type Option func(*options)

type options struct {
	wrapStepper func(Stepper) Stepper
	observers   []func(ContactEvent)
}

// WithStepper wraps the world's stepper, e.g. to count or trace steps.
func WithStepper(wrap func(Stepper) Stepper) Option {
	return func(o *options) {
		o.wrapStepper = wrap
	}
}

// WithContactObserver registers fn for every contact between rig fixtures.
// fn runs inside Step and must not call back into the wheel.
func WithContactObserver(fn func(ContactEvent)) Option {
	return func(o *options) {
		o.observers = append(o.observers, fn)
	}
}

type rig struct {
	base        *box2d.B2Body
	core        *box2d.B2Body
	needle      *box2d.B2Body
	pivot       *box2d.B2Body
	anchorLeft  *box2d.B2Body
	anchorRight *box2d.B2Body
}

// Pose is the position (engine units) and rotation (radians) of a body.
type Pose struct {
	Position Vec2    `json:"position"`
	Angle    float64 `json:"angle"`
}

// Degrees returns the rotation in degrees.
func (p Pose) Degrees() float64 {
	return p.Angle * 180 / math.Pi
}

// Wheel is one prize wheel and the physics world it owns.
// A Wheel is not safe for concurrent use.
type Wheel struct {
	cfg      Config
	geom     Geometry
	world    *box2d.B2World
	stepper  Stepper
	rig      rig
	pegs     []*box2d.B2Fixture
	selector *Selector
	elements Elements

	observers []func(ContactEvent)
	spun      bool
	disposed  bool
}

// New builds the wheel, its pegs and the needle rig in a fresh zero-gravity world.
func New(cfg Config, opts ...Option) *Wheel {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	world := box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))
	w := &Wheel{
		cfg:       cfg,
		geom:      NewGeometry(cfg),
		world:     &world,
		selector:  NewSelector(cfg.Pegs),
		observers: o.observers,
	}
	w.world.SetContactFilter(&box2d.B2ContactFilter{})
	w.world.SetContactListener(contactListener{w: w})

	w.stepper = w.world
	if o.wrapStepper != nil {
		w.stepper = o.wrapStepper(w.world)
	}

	w.rig.base = createBase(w.world, w.geom)
	w.rig.core = createCore(w.world, w.geom)
	w.pegs = createPegs(w.rig.core, w.geom)
	w.rig.needle = createNeedle(w.world, w.geom)
	w.rig.pivot = createPivot(w.world, w.geom)
	w.rig.anchorLeft = createAnchor(w.world, w.geom, SideLeft)
	w.rig.anchorRight = createAnchor(w.world, w.geom, SideRight)
	assembleJoints(w.world, w.rig, w.geom)

	return w
}

func (w *Wheel) mustLive() {
	if w.disposed {
		panic(ErrDisposed)
	}
}

// Config returns the configuration the wheel was built from.
func (w *Wheel) Config() Config {
	return w.cfg
}

// Geometry returns the derived rig dimensions in engine units.
func (w *Wheel) Geometry() Geometry {
	return w.geom
}

// Spin sets the wheel's angular velocity, clamped to
// [MinAngularVelocity, MaxAngularVelocity], and returns the applied value.
// Calling it again while spinning replaces the velocity.
func (w *Wheel) Spin(omega float64) float64 {
	w.mustLive()

	applied := clampVelocity(omega)
	w.rig.core.SetAngularVelocity(applied)
	if applied != 0 {
		w.rig.core.SetAwake(true)
	}
	w.spun = true
	return applied
}

func clampVelocity(omega float64) float64 {
	if math.IsNaN(omega) {
		return MinAngularVelocity
	}
	return math.Max(MinAngularVelocity, math.Min(MaxAngularVelocity, omega))
}

// Spun reports whether Spin has been called at least once.
func (w *Wheel) Spun() bool {
	w.mustLive()
	return w.spun
}

// AngularVelocity returns the core's current angular velocity in rad/s.
func (w *Wheel) AngularVelocity() float64 {
	w.mustLive()
	return w.rig.core.GetAngularVelocity()
}

// IsAtRest reports whether the engine has put the wheel to sleep.
func (w *Wheel) IsAtRest() bool {
	w.mustLive()
	return !w.rig.core.IsAwake()
}

// AddElement registers result for the pegs a and b, in either order.
func (w *Wheel) AddElement(result any, a, b int) {
	w.mustLive()
	w.elements.Add(result, PegPair{A: a, B: b})
}

// SetElements replaces the whole lookup table.
func (w *Wheel) SetElements(elements []Element) {
	w.mustLive()
	w.elements = append(Elements(nil), elements...)
}

// Selection returns the pegs currently bracketing the needle.
func (w *Wheel) Selection() (PegPair, bool) {
	w.mustLive()
	return w.selector.Pair()
}

// LuckyElement returns the result registered for the current selection.
// ok is false before the needle touched any peg or when nothing matches.
func (w *Wheel) LuckyElement() (any, bool) {
	w.mustLive()
	pair, ok := w.selector.Pair()
	if !ok {
		return nil, false
	}
	return w.elements.Lookup(pair)
}

// WheelPose returns the pose of the spinning core.
func (w *Wheel) WheelPose() Pose {
	w.mustLive()
	return poseOf(w.rig.core)
}

// NeedlePose returns the pose of the needle.
func (w *Wheel) NeedlePose() Pose {
	w.mustLive()
	return poseOf(w.rig.needle)
}

func poseOf(b *box2d.B2Body) Pose {
	return Pose{Position: fromB2(b.GetPosition()), Angle: b.GetAngle()}
}

// NeedleOrigin returns the rotation origin of a needle sprite of the given
// size: horizontally centered, three quarters up from the tip.
func NeedleOrigin(width, height float64) Vec2 {
	return Vec2{X: width / 2, Y: 3 * height / 4}
}

// PegCount returns the number of peg fixtures attached to the core.
func (w *Wheel) PegCount() int {
	w.mustLive()
	return len(w.pegs)
}

// Dispose releases the world with every body, fixture and joint in it.
// The wheel must not be used afterwards.
func (w *Wheel) Dispose() {
	w.mustLive()
	w.world.Destroy()
	w.world = nil
	w.stepper = nil
	w.rig = rig{}
	w.pegs = nil
	w.disposed = true
}

func (w *Wheel) observe(e ContactEvent) {
	for _, fn := range w.observers {
		fn(e)
	}
}

// handleContactEnd updates the selection when the needle leaves a peg.
func (w *Wheel) handleContactEnd(a, b FixtureTag) {
	w.observe(ContactEvent{Phase: ContactEnd, A: a, B: b})

	peg, other, ok := splitPeg(a, b)
	if !ok || other.Body != BodyNeedle {
		return
	}
	w.selector.Release(peg.Label, w.rig.core.GetAngularVelocity())
}

package wheel

import (
	"math"
	"testing"

	"github.com/ByteArena/box2d"
	"github.com/stretchr/testify/require"
)

func testConfig(pegs int) Config {
	return Config{
		ViewportWidth:  360,
		ViewportHeight: 640,
		Diameter:       300,
		X:              180,
		Y:              320,
		Pegs:           pegs,
	}
}

type fixtureInfo struct {
	fixture *box2d.B2Fixture
	tag     FixtureTag
}

func fixturesOf(w *Wheel) []fixtureInfo {
	var out []fixtureInfo
	for b := w.world.GetBodyList(); b != nil; b = b.GetNext() {
		for f := b.GetFixtureList(); f != nil; f = f.GetNext() {
			tag, _ := tagOf(f)
			out = append(out, fixtureInfo{fixture: f, tag: tag})
		}
	}
	return out
}

type countingStepper struct {
	next  Stepper
	calls int
}

func (s *countingStepper) Step(dt float64, velocityIterations int, positionIterations int) {
	s.calls++
	s.next.Step(dt, velocityIterations, positionIterations)
}

func TestNewBuildsRig(t *testing.T) {
	w := New(testConfig(12))
	defer w.Dispose()

	require.Equal(t, 6, w.world.GetBodyCount())
	require.Equal(t, 4, w.world.GetJointCount())
	require.Equal(t, box2d.B2BodyType.B2_dynamicBody, w.rig.core.GetType())
	require.Equal(t, box2d.B2BodyType.B2_dynamicBody, w.rig.needle.GetType())
	require.Equal(t, box2d.B2BodyType.B2_staticBody, w.rig.base.GetType())
	require.Equal(t, box2d.B2BodyType.B2_staticBody, w.rig.pivot.GetType())
	require.True(t, w.rig.needle.IsBullet())
	require.InDelta(t, CoreAngularDamping, w.rig.core.GetAngularDamping(), 1e-12)
	require.False(t, w.Spun())
}

func TestPegFixturesAreLabeledOnce(t *testing.T) {
	for _, n := range []int{0, 1, 2, 8, 12, 37} {
		w := New(testConfig(n))

		require.Equal(t, n, w.PegCount())
		seen := make(map[int]bool)
		for _, fi := range fixturesOf(w) {
			if fi.tag.Kind != KindPeg {
				continue
			}
			require.Equal(t, BodyCore, fi.tag.Body)
			require.GreaterOrEqual(t, fi.tag.Label, 1)
			require.LessOrEqual(t, fi.tag.Label, n)
			require.False(t, seen[fi.tag.Label], "duplicate label %d", fi.tag.Label)
			seen[fi.tag.Label] = true
		}
		require.Len(t, seen, n)

		w.Dispose()
	}
}

func TestOnlyNeedleRigCollides(t *testing.T) {
	w := New(testConfig(8))
	defer w.Dispose()

	cf := &box2d.B2ContactFilter{}
	fixtures := fixturesOf(w)
	for i := range fixtures {
		for j := i + 1; j < len(fixtures); j++ {
			a, b := fixtures[i], fixtures[j]
			if !cf.ShouldCollide(a.fixture, b.fixture) {
				continue
			}
			needle, other := a.tag, b.tag
			if other.Body == BodyNeedle {
				needle, other = other, needle
			}
			require.Equal(t, BodyNeedle, needle.Body, "%s collides with %s", a.tag.Body, b.tag.Body)
			require.Contains(t, []FixtureKind{KindPeg, KindAnchor}, other.Kind)
		}
	}
}

func TestIdleRigKeepsNeutralPose(t *testing.T) {
	w := New(testConfig(8))
	defer w.Dispose()

	for i := 0; i < 120; i++ {
		w.Step()
	}

	for c := w.world.GetContactList(); c != nil; c = c.GetNext() {
		a, okA := tagOf(c.GetFixtureA())
		b, okB := tagOf(c.GetFixtureB())
		require.True(t, okA && okB)

		fa := c.GetFixtureA().GetFilterData()
		fb := c.GetFixtureB().GetFilterData()
		require.NotEqual(t, CategoryInert, fa.CategoryBits, "inert %s in contact", a.Body)
		require.NotEqual(t, CategoryInert, fb.CategoryBits, "inert %s in contact", b.Body)

		if !c.IsTouching() {
			continue
		}
		require.True(t, a.Body == BodyNeedle || b.Body == BodyNeedle, "%s touches %s", a.Body, b.Body)
		require.False(t, a.Kind == KindPeg && b.Kind == KindPeg, "peg touches peg")
		require.False(t, a.Kind == KindPeg && b.Kind == KindAnchor, "peg touches anchor")
		require.False(t, a.Kind == KindAnchor && b.Kind == KindPeg, "anchor touches peg")
	}

	require.InDelta(t, 0, w.NeedlePose().Angle, 1e-2)
	require.InDelta(t, 0, w.WheelPose().Angle, 1e-9)
}

func TestCollidesMatrix(t *testing.T) {
	all := []Filter{FilterInert, FilterPeg, FilterNeedle, FilterAnchorLeft, FilterAnchorRight}
	for _, a := range all {
		for _, b := range all {
			want := (a == FilterNeedle && b != FilterNeedle && b != FilterInert) ||
				(b == FilterNeedle && a != FilterNeedle && a != FilterInert)
			require.Equal(t, want, Collides(a, b), "%+v vs %+v", a, b)
		}
	}
}

func TestSpinClampsVelocity(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-10, 0},
		{0, 0},
		{12.5, 12.5},
		{MaxAngularVelocity, MaxAngularVelocity},
		{1000, MaxAngularVelocity},
		{math.Inf(1), MaxAngularVelocity},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		w := New(testConfig(8))
		got := w.Spin(tt.in)
		require.Equal(t, tt.want, got, "spin(%v)", tt.in)
		require.Equal(t, tt.want, w.AngularVelocity())
		require.GreaterOrEqual(t, got, MinAngularVelocity)
		require.LessOrEqual(t, got, MaxAngularVelocity)
		require.True(t, w.Spun())
		w.Dispose()
	}
}

func TestSpinResetsVelocity(t *testing.T) {
	w := New(testConfig(8))
	defer w.Dispose()

	w.Spin(20)
	for i := 0; i < 30; i++ {
		w.Step()
	}
	require.Less(t, w.AngularVelocity(), 20.0)

	w.Spin(20)
	require.Equal(t, 20.0, w.AngularVelocity())
}

func TestSpinComesToRest(t *testing.T) {
	w := New(testConfig(12))
	defer w.Dispose()

	w.Spin(6)
	require.False(t, w.IsAtRest())

	steps, rested := w.RunToRest(20000)
	require.True(t, rested, "still moving after %d steps", steps)
	require.Greater(t, steps, 0)
	require.True(t, w.IsAtRest())
	require.InDelta(t, 0, w.AngularVelocity(), 0.05)

	steps, rested = w.RunToRest(10)
	require.True(t, rested)
	require.Equal(t, 0, steps)
}

func TestRunToRestHonorsBudget(t *testing.T) {
	w := New(testConfig(12))
	defer w.Dispose()

	w.Spin(MaxAngularVelocity)
	steps, rested := w.RunToRest(5)
	require.Equal(t, 5, steps)
	require.False(t, rested)
}

func TestSpinSettlesOnAdjacentPair(t *testing.T) {
	const pegs = 12
	w := New(testConfig(pegs))
	defer w.Dispose()

	for i := 1; i <= pegs; i++ {
		w.AddElement(i, i, i%pegs+1)
	}

	var ticks int
	w.observers = append(w.observers, func(e ContactEvent) {
		if _, ok := e.Peg(); ok && e.Phase == ContactBegin {
			ticks++
		}
	})

	w.Spin(8)
	_, rested := w.RunToRest(20000)
	require.True(t, rested)
	require.Greater(t, ticks, 0)

	pair, ok := w.Selection()
	require.True(t, ok)
	n := pair.Normalized()
	require.True(t, n.B-n.A == 1 || (n.A == 1 && n.B == pegs), "pair %s is not adjacent", pair)

	result, ok := w.LuckyElement()
	require.True(t, ok)
	require.IsType(t, 0, result)
}

func TestContactsOnlyInvolveNeedle(t *testing.T) {
	var events []ContactEvent
	w := New(testConfig(8), WithContactObserver(func(e ContactEvent) {
		events = append(events, e)
	}))
	defer w.Dispose()

	w.Spin(15)
	for i := 0; i < 600; i++ {
		w.Step()
	}

	require.NotEmpty(t, events)
	for _, e := range events {
		require.True(t, e.A.Body == BodyNeedle || e.B.Body == BodyNeedle, "contact %+v", e)
		require.NotEqual(t, e.A.Kind, e.B.Kind)
	}
}

func TestLuckyElementFollowsContacts(t *testing.T) {
	w := New(testConfig(8))
	defer w.Dispose()

	w.AddElement("R", 3, 4)

	_, ok := w.LuckyElement()
	require.False(t, ok, "no contact yet")

	w.Spin(5)
	needle := plainTag(BodyNeedle)

	// anchors carry no peg label
	w.handleContactEnd(anchorTag(SideLeft), needle)
	_, ok = w.Selection()
	require.False(t, ok)

	w.handleContactEnd(needle, pegTag(4))
	pair, ok := w.Selection()
	require.True(t, ok)
	require.Equal(t, PegPair{A: 4, B: 3}, pair)

	got, ok := w.LuckyElement()
	require.True(t, ok)
	require.Equal(t, "R", got)

	// a peg touching anything but the needle is ignored
	w.handleContactEnd(pegTag(7), plainTag(BodyPivot))
	pair, _ = w.Selection()
	require.Equal(t, PegPair{A: 4, B: 3}, pair)

	w.handleContactEnd(pegTag(7), needle)
	_, ok = w.LuckyElement()
	require.False(t, ok, "pair 7-6 is not registered")

	w.SetElements([]Element{{Pegs: PegPair{A: 6, B: 7}, Result: "G"}})
	got, ok = w.LuckyElement()
	require.True(t, ok)
	require.Equal(t, "G", got)
}

func TestDisposeStopsStepping(t *testing.T) {
	rec := &countingStepper{}
	w := New(testConfig(8), WithStepper(func(s Stepper) Stepper {
		rec.next = s
		return rec
	}))

	w.Spin(10)
	w.Step()
	w.Step()
	w.Step()
	require.Equal(t, 3, rec.calls)

	w.Dispose()

	require.PanicsWithValue(t, ErrDisposed, func() { w.Step() })
	require.PanicsWithValue(t, ErrDisposed, func() { w.RunToRest(100) })
	require.PanicsWithValue(t, ErrDisposed, func() { w.Spin(1) })
	require.PanicsWithValue(t, ErrDisposed, func() { w.IsAtRest() })
	require.PanicsWithValue(t, ErrDisposed, func() { w.Dispose() })
	require.Equal(t, 3, rec.calls)
}

func TestPosesTrackBodies(t *testing.T) {
	w := New(testConfig(8))
	defer w.Dispose()

	g := w.Geometry()
	require.InDelta(t, g.Center.X, w.WheelPose().Position.X, 1e-9)
	require.InDelta(t, g.Center.Y, w.WheelPose().Position.Y, 1e-9)
	require.Equal(t, 0.0, w.WheelPose().Angle)

	w.Spin(10)
	for i := 0; i < 10; i++ {
		w.Step()
	}
	require.Greater(t, w.WheelPose().Angle, 0.0)
	require.InDelta(t, g.Center.X, w.WheelPose().Position.X, 1e-3)
	require.InDelta(t, w.WheelPose().Angle*180/math.Pi, w.WheelPose().Degrees(), 1e-9)
}

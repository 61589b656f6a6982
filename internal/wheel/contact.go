package wheel

import "github.com/ByteArena/box2d"

// ContactPhase tells whether two fixtures started or stopped touching.
type ContactPhase uint8

const (
	ContactBegin ContactPhase = iota
	ContactEnd
)

// ContactEvent is reported to observers for every contact between two fixtures
// of the rig. A peg contact with the needle is the "tick" of the wheel.
type ContactEvent struct {
	Phase ContactPhase
	A     FixtureTag
	B     FixtureTag
}

// Peg returns the peg label involved in a needle/peg contact.
func (e ContactEvent) Peg() (int, bool) {
	peg, other, ok := splitPeg(e.A, e.B)
	if !ok || other.Body != BodyNeedle {
		return 0, false
	}
	return peg.Label, true
}

func splitPeg(a, b FixtureTag) (peg, other FixtureTag, ok bool) {
	switch {
	case a.Kind == KindPeg:
		return a, b, true
	case b.Kind == KindPeg:
		return b, a, true
	}
	return FixtureTag{}, FixtureTag{}, false
}

// contactListener forwards engine callbacks to the wheel. The engine calls it
// synchronously from inside Step.
type contactListener struct {
	w *Wheel
}

func (l contactListener) BeginContact(contact box2d.B2ContactInterface) {
	a, okA := tagOf(contact.GetFixtureA())
	b, okB := tagOf(contact.GetFixtureB())
	if !okA || !okB {
		return
	}
	l.w.observe(ContactEvent{Phase: ContactBegin, A: a, B: b})
}

func (l contactListener) EndContact(contact box2d.B2ContactInterface) {
	a, okA := tagOf(contact.GetFixtureA())
	b, okB := tagOf(contact.GetFixtureB())
	if !okA || !okB {
		return
	}
	l.w.handleContactEnd(a, b)
}

func (l contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
}

func (l contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}

package wheel

import "github.com/ByteArena/box2d"

// Collision categories. Only the needle rig takes part in collisions.
const (
	CategoryInert       uint16 = 0x0001
	CategoryPeg         uint16 = 0x0004
	CategoryNeedle      uint16 = 0x0008
	CategoryAnchorLeft  uint16 = 0x0010
	CategoryAnchorRight uint16 = 0x0020
)

// Filter is the category/mask pair assigned to a fixture.
type Filter struct {
	Category uint16
	Mask     uint16
}

var (
	FilterInert       = Filter{Category: CategoryInert, Mask: 0}
	FilterPeg         = Filter{Category: CategoryPeg, Mask: CategoryNeedle}
	FilterNeedle      = Filter{Category: CategoryNeedle, Mask: CategoryPeg | CategoryAnchorLeft | CategoryAnchorRight}
	FilterAnchorLeft  = Filter{Category: CategoryAnchorLeft, Mask: CategoryNeedle}
	FilterAnchorRight = Filter{Category: CategoryAnchorRight, Mask: CategoryNeedle}
)

// Collides reports whether two fixtures with these filters generate contacts.
// Same rule as the engine's default contact filter with group index 0.
func Collides(a, b Filter) bool {
	return a.Mask&b.Category != 0 && a.Category&b.Mask != 0
}

func (f Filter) b2() box2d.B2Filter {
	return box2d.B2Filter{
		CategoryBits: f.Category,
		MaskBits:     f.Mask,
		GroupIndex:   0,
	}
}

func anchorFilter(side Side) Filter {
	if side == SideRight {
		return FilterAnchorRight
	}
	return FilterAnchorLeft
}

// BodyRole names the six bodies of the rig.
type BodyRole uint8

const (
	BodyBase BodyRole = iota
	BodyCore
	BodyNeedle
	BodyPivot
	BodyAnchorLeft
	BodyAnchorRight
)

func (r BodyRole) String() string {
	switch r {
	case BodyBase:
		return "base"
	case BodyCore:
		return "core"
	case BodyNeedle:
		return "needle"
	case BodyPivot:
		return "pivot"
	case BodyAnchorLeft:
		return "anchor-left"
	case BodyAnchorRight:
		return "anchor-right"
	}
	return "unknown"
}

// Side selects one of the two needle anchors.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// FixtureKind discriminates FixtureTag.
type FixtureKind uint8

const (
	KindNone FixtureKind = iota
	KindPeg
	KindAnchor
)

// FixtureTag is attached as user data to every fixture the wheel creates.
// Label is set only for KindPeg, Side only for KindAnchor.
type FixtureTag struct {
	Body  BodyRole
	Kind  FixtureKind
	Label int
	Side  Side
}

func plainTag(body BodyRole) FixtureTag {
	return FixtureTag{Body: body, Kind: KindNone}
}

func pegTag(label int) FixtureTag {
	return FixtureTag{Body: BodyCore, Kind: KindPeg, Label: label}
}

func anchorTag(side Side) FixtureTag {
	body := BodyAnchorLeft
	if side == SideRight {
		body = BodyAnchorRight
	}
	return FixtureTag{Body: body, Kind: KindAnchor, Side: side}
}

// tagOf reads the tag of a fixture. Fixtures not created by the wheel report ok=false.
func tagOf(f *box2d.B2Fixture) (FixtureTag, bool) {
	if f == nil {
		return FixtureTag{}, false
	}
	tag, ok := f.GetUserData().(FixtureTag)
	return tag, ok
}

package wheel

import "github.com/ByteArena/box2d"

// material is the per-fixture physical setup. Every fixture gets its own value.
type material struct {
	density     float64
	friction    float64
	restitution float64
	filter      Filter
	tag         FixtureTag
}

func attach(body *box2d.B2Body, shape box2d.B2ShapeInterface, m material) *box2d.B2Fixture {
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shape
	fd.Density = m.density
	fd.Friction = m.friction
	fd.Restitution = m.restitution
	fd.Filter = m.filter.b2()
	fd.UserData = m.tag
	return body.CreateFixtureFromDef(&fd)
}

func circle(center Vec2, radius float64) *box2d.B2CircleShape {
	c := box2d.MakeB2CircleShape()
	c.M_p = center.b2()
	c.M_radius = radius
	return &c
}

func staticBody(world *box2d.B2World, pos Vec2, bullet bool) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	bd.Position = pos.b2()
	bd.Bullet = bullet
	return world.CreateBody(&bd)
}

// createBase builds the static square the core spins around.
func createBase(world *box2d.B2World, g Geometry) *box2d.B2Body {
	body := staticBody(world, g.Center, false)

	box := box2d.MakeB2PolygonShape()
	box.SetAsBox(g.BaseHalfExtent, g.BaseHalfExtent)
	attach(body, &box, material{friction: 0.2, filter: FilterInert, tag: plainTag(BodyBase)})
	return body
}

// createCore builds the spinning disc. Angular damping alone brings it to rest.
func createCore(world *box2d.B2World, g Geometry) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = g.Center.b2()
	bd.AngularDamping = CoreAngularDamping
	body := world.CreateBody(&bd)

	attach(body, circle(Vec2{}, g.CoreRadius), material{
		density:  CoreDensity,
		friction: CoreFriction,
		filter:   FilterInert,
		tag:      plainTag(BodyCore),
	})
	return body
}

// createPegs attaches one labeled circle fixture per peg to the core.
// With zero pegs nothing is created.
func createPegs(core *box2d.B2Body, g Geometry) []*box2d.B2Fixture {
	if g.Pegs <= 0 {
		return nil
	}

	pegs := make([]*box2d.B2Fixture, 0, g.Pegs)
	for i := 0; i < g.Pegs; i++ {
		f := attach(core, circle(g.PegPosition(i), g.PegRadius), material{
			filter: FilterPeg,
			tag:    pegTag(i + 1),
		})
		pegs = append(pegs, f)
	}
	return pegs
}

// createNeedle builds the kite-shaped pointer. It is a bullet so fast pegs
// cannot tunnel through it.
func createNeedle(world *box2d.B2World, g Geometry) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = g.NeedlePosition().b2()
	bd.Bullet = true
	bd.AngularDamping = NeedleAngularDamping
	body := world.CreateBody(&bd)

	outline := g.NeedleVertices()
	vertices := make([]box2d.B2Vec2, len(outline))
	for i, v := range outline {
		vertices[i] = v.b2()
	}
	kite := box2d.MakeB2PolygonShape()
	kite.Set(vertices, len(vertices))

	attach(body, &kite, material{
		density: NeedleDensity,
		filter:  FilterNeedle,
		tag:     plainTag(BodyNeedle),
	})
	return body
}

// createPivot builds B0, the static point the needle swings around.
func createPivot(world *box2d.B2World, g Geometry) *box2d.B2Body {
	body := staticBody(world, g.PivotPosition(), false)
	attach(body, circle(Vec2{}, g.AnchorRadius), material{
		filter: FilterInert,
		tag:    plainTag(BodyPivot),
	})
	return body
}

// createAnchor builds B1 (left) or B2 (right). The needle bounces off them.
func createAnchor(world *box2d.B2World, g Geometry, side Side) *box2d.B2Body {
	body := staticBody(world, g.AnchorPosition(side), true)
	attach(body, circle(Vec2{}, g.AnchorRadius), material{
		density:     AnchorDensity,
		friction:    AnchorFriction,
		restitution: AnchorRestitution,
		filter:      anchorFilter(side),
		tag:         anchorTag(side),
	})
	return body
}

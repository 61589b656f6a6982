package wheel

import "github.com/ByteArena/box2d"

// pivot joins two bodies at their origins with a free revolute joint.
func pivot(world *box2d.B2World, a, b *box2d.B2Body, collide bool) box2d.B2JointInterface {
	jd := box2d.MakeB2RevoluteJointDef()
	jd.BodyA = a
	jd.BodyB = b
	jd.LocalAnchorA = box2d.MakeB2Vec2(0, 0)
	jd.LocalAnchorB = box2d.MakeB2Vec2(0, 0)
	jd.CollideConnected = collide
	jd.EnableLimit = false
	jd.EnableMotor = false
	return world.CreateJoint(&jd)
}

// tether holds the needle's upper attachment point at a fixed distance from an anchor.
func tether(world *box2d.B2World, anchor, needle *box2d.B2Body, g Geometry) box2d.B2JointInterface {
	jd := box2d.MakeB2DistanceJointDef()
	jd.BodyA = anchor
	jd.BodyB = needle
	jd.LocalAnchorA = box2d.MakeB2Vec2(0, 0)
	jd.LocalAnchorB = box2d.MakeB2Vec2(0, g.NeedleAttach)
	jd.Length = g.DistanceLength
	jd.FrequencyHz = 0
	jd.DampingRatio = 0
	jd.CollideConnected = true
	return world.CreateJoint(&jd)
}

// assembleJoints wires the four joints of the rig: the spin axis, the needle
// pivot and the two tethers that return the needle to its neutral pose.
func assembleJoints(world *box2d.B2World, b rig, g Geometry) {
	pivot(world, b.base, b.core, false)
	pivot(world, b.pivot, b.needle, false)
	tether(world, b.anchorLeft, b.needle, g)
	tether(world, b.anchorRight, b.needle, g)
}

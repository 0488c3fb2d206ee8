package skeleton

import "math"

// Bone is the mutable local pose of a bone plus its computed world transform.
type Bone struct {
	Data     *BoneData
	Skeleton *Skeleton
	Parent   *Bone
	Children []*Bone

	X, Y           float64
	Rotation       float64
	ScaleX, ScaleY float64
	ShearX, ShearY float64

	// World transform, valid after Skeleton.UpdateWorldTransform.
	A, B, C, D     float64
	WorldX, WorldY float64

	// Active is false when the bone belongs to a skin that is not set.
	Active bool
}

func newBone(data *BoneData, skel *Skeleton, parent *Bone) *Bone {
	b := &Bone{Data: data, Skeleton: skel, Parent: parent, Active: true}
	b.SetToSetupPose()
	return b
}

// SetToSetupPose resets the local transform to the setup values.
func (b *Bone) SetToSetupPose() {
	d := b.Data
	b.X = d.X
	b.Y = d.Y
	b.Rotation = d.Rotation
	b.ScaleX = d.ScaleX
	b.ScaleY = d.ScaleY
	b.ShearX = d.ShearX
	b.ShearY = d.ShearY
}

// UpdateWorldTransform computes the world transform from the local pose and the parent.
func (b *Bone) UpdateWorldTransform() {
	rotationY := b.Rotation + 90 + b.ShearY
	la := cosDeg(b.Rotation+b.ShearX) * b.ScaleX
	lb := cosDeg(rotationY) * b.ScaleY
	lc := sinDeg(b.Rotation+b.ShearX) * b.ScaleX
	ld := sinDeg(rotationY) * b.ScaleY

	parent := b.Parent
	if parent == nil {
		s := b.Skeleton
		b.A = la * s.ScaleX
		b.B = lb * s.ScaleX
		b.C = lc * s.ScaleY
		b.D = ld * s.ScaleY
		b.WorldX = b.X*s.ScaleX + s.X
		b.WorldY = b.Y*s.ScaleY + s.Y
		return
	}

	pa, pb, pc, pd := parent.A, parent.B, parent.C, parent.D
	b.WorldX = pa*b.X + pb*b.Y + parent.WorldX
	b.WorldY = pc*b.X + pd*b.Y + parent.WorldY
	b.A = pa*la + pb*lc
	b.B = pa*lb + pb*ld
	b.C = pc*la + pd*lc
	b.D = pc*lb + pd*ld
}

// TipX returns the world X of the end of the bone.
func (b *Bone) TipX() float64 {
	return b.A*b.Data.Length + b.WorldX
}

// TipY returns the world Y of the end of the bone.
func (b *Bone) TipY() float64 {
	return b.C*b.Data.Length + b.WorldY
}

func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }

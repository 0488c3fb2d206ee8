package skeleton

// IkConstraint holds the animatable state of an IK constraint.
// Solving is outside this package; only the mix values are posed here.
type IkConstraint struct {
	Data          *IkConstraintData
	Mix           float64
	Softness      float64
	BendDirection int
	Compress      bool
	Stretch       bool
	Active        bool
}

// SetToSetupPose restores the setup values.
func (c *IkConstraint) SetToSetupPose() {
	d := c.Data
	c.Mix = d.Mix
	c.Softness = d.Softness
	c.BendDirection = d.BendDirection
	c.Compress = d.Compress
	c.Stretch = d.Stretch
}

// TransformConstraint holds the animatable mix values of a transform constraint.
type TransformConstraint struct {
	Data       *TransformConstraintData
	MixRotate  float64
	MixX, MixY float64
	MixScaleX  float64
	MixScaleY  float64
	MixShearY  float64
	Active     bool
}

// SetToSetupPose restores the setup values.
func (c *TransformConstraint) SetToSetupPose() {
	d := c.Data
	c.MixRotate = d.MixRotate
	c.MixX = d.MixX
	c.MixY = d.MixY
	c.MixScaleX = d.MixScaleX
	c.MixScaleY = d.MixScaleY
	c.MixShearY = d.MixShearY
}

// PathConstraint holds the animatable state of a path constraint.
type PathConstraint struct {
	Data       *PathConstraintData
	Position   float64
	Spacing    float64
	MixRotate  float64
	MixX, MixY float64
	Active     bool
}

// SetToSetupPose restores the setup values.
func (c *PathConstraint) SetToSetupPose() {
	d := c.Data
	c.Position = d.Position
	c.Spacing = d.Spacing
	c.MixRotate = d.MixRotate
	c.MixX = d.MixX
	c.MixY = d.MixY
}

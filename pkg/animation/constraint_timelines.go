package animation

import "github.com/decker502/skelanim/pkg/skeleton"

// IkConstraintTimeline changes an IK constraint's mix, softness, bend
// direction, compress and stretch.
type IkConstraintTimeline struct {
	CurveTimeline
	ConstraintIndex int
}

// NewIkConstraintTimeline creates an IK constraint timeline.
func NewIkConstraintTimeline(frameCount, bezierCount, constraintIndex int) *IkConstraintTimeline {
	return &IkConstraintTimeline{
		newCurveTimeline(frameCount, bezierCount, 6, propertyID(PropertyIkConstraint, constraintIndex)),
		constraintIndex,
	}
}

// SetFrame sets the values of a frame.
func (t *IkConstraintTimeline) SetFrame(frame int, time, mix, softness float64, bendDirection int, compress, stretch bool) {
	frame *= 6
	t.frames[frame] = time
	t.frames[frame+1] = mix
	t.frames[frame+2] = softness
	t.frames[frame+3] = float64(bendDirection)
	t.frames[frame+4] = boolFrame(compress)
	t.frames[frame+5] = boolFrame(stretch)
}

func boolFrame(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Apply implements Timeline.
func (t *IkConstraintTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	c := skel.IkConstraints[t.ConstraintIndex]
	if !c.Active {
		return
	}
	data := c.Data
	frames := t.frames
	if time < frames[0] {
		switch blend {
		case MixBlendSetup:
			c.SetToSetupPose()
		case MixBlendFirst:
			c.Mix += (data.Mix - c.Mix) * alpha
			c.Softness += (data.Softness - c.Softness) * alpha
			c.BendDirection = data.BendDirection
			c.Compress = data.Compress
			c.Stretch = data.Stretch
		}
		return
	}

	var v [2]float64
	i := t.curveValues(time, v[:])
	mix, softness := v[0], v[1]
	if blend == MixBlendSetup {
		c.Mix = data.Mix + (mix-data.Mix)*alpha
		c.Softness = data.Softness + (softness-data.Softness)*alpha
		if direction == MixOut {
			c.BendDirection = data.BendDirection
			c.Compress = data.Compress
			c.Stretch = data.Stretch
		} else {
			c.BendDirection = int(frames[i+3])
			c.Compress = frames[i+4] != 0
			c.Stretch = frames[i+5] != 0
		}
		return
	}
	c.Mix += (mix - c.Mix) * alpha
	c.Softness += (softness - c.Softness) * alpha
	if direction == MixIn {
		c.BendDirection = int(frames[i+3])
		c.Compress = frames[i+4] != 0
		c.Stretch = frames[i+5] != 0
	}
}

// TransformConstraintTimeline changes a transform constraint's mixes.
type TransformConstraintTimeline struct {
	CurveTimeline
	ConstraintIndex int
}

// NewTransformConstraintTimeline creates a transform constraint timeline.
func NewTransformConstraintTimeline(frameCount, bezierCount, constraintIndex int) *TransformConstraintTimeline {
	return &TransformConstraintTimeline{
		newCurveTimeline(frameCount, bezierCount, 7, propertyID(PropertyTransformConstraint, constraintIndex)),
		constraintIndex,
	}
}

// SetFrame sets the values of a frame.
func (t *TransformConstraintTimeline) SetFrame(frame int, time, mixRotate, mixX, mixY, mixScaleX, mixScaleY, mixShearY float64) {
	frame *= 7
	t.frames[frame] = time
	t.frames[frame+1] = mixRotate
	t.frames[frame+2] = mixX
	t.frames[frame+3] = mixY
	t.frames[frame+4] = mixScaleX
	t.frames[frame+5] = mixScaleY
	t.frames[frame+6] = mixShearY
}

// Apply implements Timeline.
func (t *TransformConstraintTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	c := skel.TransformConstraints[t.ConstraintIndex]
	if !c.Active {
		return
	}
	data := c.Data
	if time < t.frames[0] {
		switch blend {
		case MixBlendSetup:
			c.SetToSetupPose()
		case MixBlendFirst:
			c.MixRotate += (data.MixRotate - c.MixRotate) * alpha
			c.MixX += (data.MixX - c.MixX) * alpha
			c.MixY += (data.MixY - c.MixY) * alpha
			c.MixScaleX += (data.MixScaleX - c.MixScaleX) * alpha
			c.MixScaleY += (data.MixScaleY - c.MixScaleY) * alpha
			c.MixShearY += (data.MixShearY - c.MixShearY) * alpha
		}
		return
	}

	var v [6]float64
	t.curveValues(time, v[:])
	if blend == MixBlendSetup {
		c.MixRotate = data.MixRotate + (v[0]-data.MixRotate)*alpha
		c.MixX = data.MixX + (v[1]-data.MixX)*alpha
		c.MixY = data.MixY + (v[2]-data.MixY)*alpha
		c.MixScaleX = data.MixScaleX + (v[3]-data.MixScaleX)*alpha
		c.MixScaleY = data.MixScaleY + (v[4]-data.MixScaleY)*alpha
		c.MixShearY = data.MixShearY + (v[5]-data.MixShearY)*alpha
		return
	}
	c.MixRotate += (v[0] - c.MixRotate) * alpha
	c.MixX += (v[1] - c.MixX) * alpha
	c.MixY += (v[2] - c.MixY) * alpha
	c.MixScaleX += (v[3] - c.MixScaleX) * alpha
	c.MixScaleY += (v[4] - c.MixScaleY) * alpha
	c.MixShearY += (v[5] - c.MixShearY) * alpha
}

// mixAbsolute blends a value keyed as an absolute value, as constraint values are.
func (t *CurveTimeline1) mixAbsolute(time, alpha float64, blend MixBlend, current, setup float64) float64 {
	if time < t.frames[0] {
		switch blend {
		case MixBlendSetup:
			return setup
		case MixBlendFirst:
			return current + (setup-current)*alpha
		}
		return current
	}
	v := t.CurveValue(time)
	if blend == MixBlendSetup {
		return setup + (v-setup)*alpha
	}
	return current + (v-current)*alpha
}

// PathConstraintPositionTimeline changes a path constraint's position.
type PathConstraintPositionTimeline struct {
	CurveTimeline1
	ConstraintIndex int
}

// NewPathConstraintPositionTimeline creates a path position timeline.
func NewPathConstraintPositionTimeline(frameCount, bezierCount, constraintIndex int) *PathConstraintPositionTimeline {
	return &PathConstraintPositionTimeline{
		newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyPathConstraintPosition, constraintIndex)),
		constraintIndex,
	}
}

// Apply implements Timeline.
func (t *PathConstraintPositionTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	c := skel.PathConstraints[t.ConstraintIndex]
	if !c.Active {
		return
	}
	c.Position = t.mixAbsolute(time, alpha, blend, c.Position, c.Data.Position)
}

// PathConstraintSpacingTimeline changes a path constraint's spacing.
type PathConstraintSpacingTimeline struct {
	CurveTimeline1
	ConstraintIndex int
}

// NewPathConstraintSpacingTimeline creates a path spacing timeline.
func NewPathConstraintSpacingTimeline(frameCount, bezierCount, constraintIndex int) *PathConstraintSpacingTimeline {
	return &PathConstraintSpacingTimeline{
		newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyPathConstraintSpacing, constraintIndex)),
		constraintIndex,
	}
}

// Apply implements Timeline.
func (t *PathConstraintSpacingTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	c := skel.PathConstraints[t.ConstraintIndex]
	if !c.Active {
		return
	}
	c.Spacing = t.mixAbsolute(time, alpha, blend, c.Spacing, c.Data.Spacing)
}

// PathConstraintMixTimeline changes a path constraint's rotate, X and Y mixes.
type PathConstraintMixTimeline struct {
	CurveTimeline
	ConstraintIndex int
}

// NewPathConstraintMixTimeline creates a path mix timeline.
func NewPathConstraintMixTimeline(frameCount, bezierCount, constraintIndex int) *PathConstraintMixTimeline {
	return &PathConstraintMixTimeline{
		newCurveTimeline(frameCount, bezierCount, 4, propertyID(PropertyPathConstraintMix, constraintIndex)),
		constraintIndex,
	}
}

// SetFrame sets the values of a frame.
func (t *PathConstraintMixTimeline) SetFrame(frame int, time, mixRotate, mixX, mixY float64) {
	frame <<= 2
	t.frames[frame] = time
	t.frames[frame+1] = mixRotate
	t.frames[frame+2] = mixX
	t.frames[frame+3] = mixY
}

// Apply implements Timeline.
func (t *PathConstraintMixTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	c := skel.PathConstraints[t.ConstraintIndex]
	if !c.Active {
		return
	}
	data := c.Data
	if time < t.frames[0] {
		switch blend {
		case MixBlendSetup:
			c.MixRotate, c.MixX, c.MixY = data.MixRotate, data.MixX, data.MixY
		case MixBlendFirst:
			c.MixRotate += (data.MixRotate - c.MixRotate) * alpha
			c.MixX += (data.MixX - c.MixX) * alpha
			c.MixY += (data.MixY - c.MixY) * alpha
		}
		return
	}

	var v [3]float64
	t.curveValues(time, v[:])
	if blend == MixBlendSetup {
		c.MixRotate = data.MixRotate + (v[0]-data.MixRotate)*alpha
		c.MixX = data.MixX + (v[1]-data.MixX)*alpha
		c.MixY = data.MixY + (v[2]-data.MixY)*alpha
		return
	}
	c.MixRotate += (v[0] - c.MixRotate) * alpha
	c.MixX += (v[1] - c.MixX) * alpha
	c.MixY += (v[2] - c.MixY) * alpha
}

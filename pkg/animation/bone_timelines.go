package animation

import (
	"math"

	"github.com/decker502/skelanim/pkg/skeleton"
)

// BoneTimeline is implemented by timelines that pose a single bone.
type BoneTimeline interface {
	Timeline
	Bone() int
}

// RotateTimeline changes a bone's local rotation. Values are relative to the setup rotation.
type RotateTimeline struct {
	CurveTimeline1
	BoneIndex int
}

// NewRotateTimeline creates a rotate timeline with room for frameCount keys and bezierCount curves.
func NewRotateTimeline(frameCount, bezierCount, boneIndex int) *RotateTimeline {
	return &RotateTimeline{newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyRotate, boneIndex)), boneIndex}
}

// Bone implements BoneTimeline.
func (t *RotateTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *RotateTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	bone.Rotation = t.blendRelative(time, alpha, blend, bone.Rotation, bone.Data.Rotation)
}

// blendRelative mixes a value keyed relative to its setup value.
func (t *CurveTimeline1) blendRelative(time, alpha float64, blend MixBlend, current, setup float64) float64 {
	if time < t.frames[0] {
		switch blend {
		case MixBlendSetup:
			return setup
		case MixBlendFirst:
			return current + (setup-current)*alpha
		case MixBlendAdd:
			// Additive layers hold the first key before it is reached.
			return current + t.frames[1]*alpha
		}
		return current
	}
	v := t.CurveValue(time)
	switch blend {
	case MixBlendSetup:
		return setup + v*alpha
	case MixBlendFirst, MixBlendReplace:
		return current + (setup+v-current)*alpha
	case MixBlendAdd:
		return current + v*alpha
	}
	return current
}

// blendRelative2 is blendRelative for two values keyed together.
func (t *CurveTimeline2) blendRelative2(time, alpha float64, blend MixBlend, current1, current2, setup1, setup2 float64) (float64, float64) {
	if time < t.frames[0] {
		switch blend {
		case MixBlendSetup:
			return setup1, setup2
		case MixBlendFirst:
			return current1 + (setup1-current1)*alpha, current2 + (setup2-current2)*alpha
		case MixBlendAdd:
			return current1 + t.frames[1]*alpha, current2 + t.frames[2]*alpha
		}
		return current1, current2
	}
	v1, v2 := t.curveValue2(time)
	switch blend {
	case MixBlendSetup:
		return setup1 + v1*alpha, setup2 + v2*alpha
	case MixBlendFirst, MixBlendReplace:
		return current1 + (setup1+v1-current1)*alpha, current2 + (setup2+v2-current2)*alpha
	case MixBlendAdd:
		return current1 + v1*alpha, current2 + v2*alpha
	}
	return current1, current2
}

// TranslateTimeline changes a bone's local X and Y.
type TranslateTimeline struct {
	CurveTimeline2
	BoneIndex int
}

// NewTranslateTimeline creates a translate timeline.
func NewTranslateTimeline(frameCount, bezierCount, boneIndex int) *TranslateTimeline {
	return &TranslateTimeline{
		newCurveTimeline2(frameCount, bezierCount, propertyID(PropertyX, boneIndex), propertyID(PropertyY, boneIndex)),
		boneIndex,
	}
}

// Bone implements BoneTimeline.
func (t *TranslateTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *TranslateTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	bone.X, bone.Y = t.blendRelative2(time, alpha, blend, bone.X, bone.Y, bone.Data.X, bone.Data.Y)
}

// TranslateXTimeline changes a bone's local X.
type TranslateXTimeline struct {
	CurveTimeline1
	BoneIndex int
}

// NewTranslateXTimeline creates a translate X timeline.
func NewTranslateXTimeline(frameCount, bezierCount, boneIndex int) *TranslateXTimeline {
	return &TranslateXTimeline{newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyX, boneIndex)), boneIndex}
}

// Bone implements BoneTimeline.
func (t *TranslateXTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *TranslateXTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	bone.X = t.blendRelative(time, alpha, blend, bone.X, bone.Data.X)
}

// TranslateYTimeline changes a bone's local Y.
type TranslateYTimeline struct {
	CurveTimeline1
	BoneIndex int
}

// NewTranslateYTimeline creates a translate Y timeline.
func NewTranslateYTimeline(frameCount, bezierCount, boneIndex int) *TranslateYTimeline {
	return &TranslateYTimeline{newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyY, boneIndex)), boneIndex}
}

// Bone implements BoneTimeline.
func (t *TranslateYTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *TranslateYTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	bone.Y = t.blendRelative(time, alpha, blend, bone.Y, bone.Data.Y)
}

// ShearTimeline changes a bone's local shear X and Y.
type ShearTimeline struct {
	CurveTimeline2
	BoneIndex int
}

// NewShearTimeline creates a shear timeline.
func NewShearTimeline(frameCount, bezierCount, boneIndex int) *ShearTimeline {
	return &ShearTimeline{
		newCurveTimeline2(frameCount, bezierCount, propertyID(PropertyShearX, boneIndex), propertyID(PropertyShearY, boneIndex)),
		boneIndex,
	}
}

// Bone implements BoneTimeline.
func (t *ShearTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *ShearTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	bone.ShearX, bone.ShearY = t.blendRelative2(time, alpha, blend, bone.ShearX, bone.ShearY, bone.Data.ShearX, bone.Data.ShearY)
}

// ShearXTimeline changes a bone's local shear X.
type ShearXTimeline struct {
	CurveTimeline1
	BoneIndex int
}

// NewShearXTimeline creates a shear X timeline.
func NewShearXTimeline(frameCount, bezierCount, boneIndex int) *ShearXTimeline {
	return &ShearXTimeline{newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyShearX, boneIndex)), boneIndex}
}

// Bone implements BoneTimeline.
func (t *ShearXTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *ShearXTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	bone.ShearX = t.blendRelative(time, alpha, blend, bone.ShearX, bone.Data.ShearX)
}

// ShearYTimeline changes a bone's local shear Y.
type ShearYTimeline struct {
	CurveTimeline1
	BoneIndex int
}

// NewShearYTimeline creates a shear Y timeline.
func NewShearYTimeline(frameCount, bezierCount, boneIndex int) *ShearYTimeline {
	return &ShearYTimeline{newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyShearY, boneIndex)), boneIndex}
}

// Bone implements BoneTimeline.
func (t *ShearYTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *ShearYTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	bone.ShearY = t.blendRelative(time, alpha, blend, bone.ShearY, bone.Data.ShearY)
}

// mixScale blends a scale value that is keyed as a multiple of the setup
// scale. x is the keyed value already multiplied by setup. When mixing with
// alpha < 1 the sign of the base is taken from the side the mix starts at so
// scaling through zero does not flip the bone.
func mixScale(x, current, setup, alpha float64, blend MixBlend, direction MixDirection) float64 {
	if alpha == 1 {
		if blend == MixBlendAdd {
			return current + x - setup
		}
		return x
	}
	if direction == MixOut {
		switch blend {
		case MixBlendSetup:
			return setup + (math.Abs(x)*signum(setup)-setup)*alpha
		case MixBlendFirst, MixBlendReplace:
			return current + (math.Abs(x)*signum(current)-current)*alpha
		case MixBlendAdd:
			return current + (x-setup)*alpha
		}
		return current
	}
	switch blend {
	case MixBlendSetup:
		bx := math.Abs(setup) * signum(x)
		return bx + (x-bx)*alpha
	case MixBlendFirst, MixBlendReplace:
		bx := math.Abs(current) * signum(x)
		return bx + (x-bx)*alpha
	case MixBlendAdd:
		return current + (x-setup)*alpha
	}
	return current
}

// scaleBeforeFirst poses a scale before the first key. first is the first
// key's multiple of the setup scale.
func scaleBeforeFirst(current, setup, first, alpha float64, blend MixBlend) float64 {
	switch blend {
	case MixBlendSetup:
		return setup
	case MixBlendFirst:
		return current + (setup-current)*alpha
	case MixBlendAdd:
		return current + (first*setup-setup)*alpha
	}
	return current
}

// ScaleTimeline changes a bone's local scale X and Y. Values are multiples of the setup scale.
type ScaleTimeline struct {
	CurveTimeline2
	BoneIndex int
}

// NewScaleTimeline creates a scale timeline.
func NewScaleTimeline(frameCount, bezierCount, boneIndex int) *ScaleTimeline {
	return &ScaleTimeline{
		newCurveTimeline2(frameCount, bezierCount, propertyID(PropertyScaleX, boneIndex), propertyID(PropertyScaleY, boneIndex)),
		boneIndex,
	}
}

// Bone implements BoneTimeline.
func (t *ScaleTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *ScaleTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	if time < t.frames[0] {
		bone.ScaleX = scaleBeforeFirst(bone.ScaleX, bone.Data.ScaleX, t.frames[1], alpha, blend)
		bone.ScaleY = scaleBeforeFirst(bone.ScaleY, bone.Data.ScaleY, t.frames[2], alpha, blend)
		return
	}
	x, y := t.curveValue2(time)
	bone.ScaleX = mixScale(x*bone.Data.ScaleX, bone.ScaleX, bone.Data.ScaleX, alpha, blend, direction)
	bone.ScaleY = mixScale(y*bone.Data.ScaleY, bone.ScaleY, bone.Data.ScaleY, alpha, blend, direction)
}

// ScaleXTimeline changes a bone's local scale X.
type ScaleXTimeline struct {
	CurveTimeline1
	BoneIndex int
}

// NewScaleXTimeline creates a scale X timeline.
func NewScaleXTimeline(frameCount, bezierCount, boneIndex int) *ScaleXTimeline {
	return &ScaleXTimeline{newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyScaleX, boneIndex)), boneIndex}
}

// Bone implements BoneTimeline.
func (t *ScaleXTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *ScaleXTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	if time < t.frames[0] {
		bone.ScaleX = scaleBeforeFirst(bone.ScaleX, bone.Data.ScaleX, t.frames[1], alpha, blend)
		return
	}
	x := t.CurveValue(time) * bone.Data.ScaleX
	bone.ScaleX = mixScale(x, bone.ScaleX, bone.Data.ScaleX, alpha, blend, direction)
}

// ScaleYTimeline changes a bone's local scale Y.
type ScaleYTimeline struct {
	CurveTimeline1
	BoneIndex int
}

// NewScaleYTimeline creates a scale Y timeline.
func NewScaleYTimeline(frameCount, bezierCount, boneIndex int) *ScaleYTimeline {
	return &ScaleYTimeline{newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyScaleY, boneIndex)), boneIndex}
}

// Bone implements BoneTimeline.
func (t *ScaleYTimeline) Bone() int { return t.BoneIndex }

// Apply implements Timeline.
func (t *ScaleYTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	bone := skel.Bones[t.BoneIndex]
	if !bone.Active {
		return
	}
	if time < t.frames[0] {
		bone.ScaleY = scaleBeforeFirst(bone.ScaleY, bone.Data.ScaleY, t.frames[1], alpha, blend)
		return
	}
	y := t.CurveValue(time) * bone.Data.ScaleY
	bone.ScaleY = mixScale(y, bone.ScaleY, bone.Data.ScaleY, alpha, blend, direction)
}

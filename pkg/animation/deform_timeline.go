package animation

import (
	"github.com/decker502/skelanim/pkg/skeleton"
	"github.com/tanema/gween/ease"
)

// DeformTimeline changes the vertex positions of a VertexAttachment.
//
// For unweighted attachments the keyed vertices are absolute positions and
// mixing happens toward the bind pose. For weighted attachments they are
// offsets and mixing happens toward zero.
type DeformTimeline struct {
	CurveTimeline
	SlotIndex  int
	Attachment *skeleton.VertexAttachment
	Vertices   [][]float64
}

// NewDeformTimeline creates a deform timeline. Curves store percentages, not values.
func NewDeformTimeline(frameCount, bezierCount, slotIndex int, attachment *skeleton.VertexAttachment) *DeformTimeline {
	return &DeformTimeline{
		CurveTimeline: newCurveTimeline(frameCount, bezierCount, 1, propertyID(PropertyDeform, slotIndex, attachment.ID)),
		SlotIndex:     slotIndex,
		Attachment:    attachment,
		Vertices:      make([][]float64, frameCount),
	}
}

// Slot implements SlotTimeline.
func (t *DeformTimeline) Slot() int { return t.SlotIndex }

// SetFrame sets the time and vertices of a frame.
func (t *DeformTimeline) SetFrame(frame int, time float64, vertices []float64) {
	t.frames[frame] = time
	t.Vertices[frame] = vertices
}

// SetBezier stores a curve whose values are the 0..1 percent between two frames.
func (t *DeformTimeline) SetBezier(bezier, frame, value int, time1, value1, cx1, cy1, cx2, cy2, time2, value2 float64) {
	curves := t.curves
	i := t.FrameCount() + bezier*BezierSize
	if value == 0 {
		curves[frame] = float64(CurveBezier + i)
	}
	tmpx := (time1 - cx1*2 + cx2) * 0.03
	tmpy := cy2*0.03 - cy1*0.06
	dddx := ((cx1-cx2)*3 - time1 + time2) * 0.006
	dddy := (cy1 - cy2 + 0.33333333) * 0.018
	ddx := tmpx*2 + dddx
	ddy := tmpy*2 + dddy
	dx := (cx1-time1)*0.3 + tmpx + dddx*0.16666667
	dy := cy1*0.3 + tmpy + dddy*0.16666667
	x := time1 + dx
	y := dy
	for n := i + BezierSize; i < n; i += 2 {
		curves[i] = x
		curves[i+1] = y
		dx += ddx
		dy += ddy
		ddx += dddx
		ddy += dddy
		x += dx
		y += dy
	}
}

// SetEase stores an eased percent curve between frame and the next frame.
func (t *DeformTimeline) SetEase(bezier, frame int, time1, time2 float64, fn ease.TweenFunc) {
	t.CurveTimeline.SetEase(bezier, frame, 0, time1, 0, time2, 1, fn)
}

func (t *DeformTimeline) curvePercent(time float64, frame int) float64 {
	curves := t.curves
	i := int(curves[frame])
	switch i {
	case CurveLinear:
		x := t.frames[frame]
		return (time - x) / (t.frames[frame+t.entries] - x)
	case CurveStepped:
		return 0
	}
	i -= CurveBezier
	if curves[i] > time {
		x := t.frames[frame]
		return curves[i+1] * (time - x) / (curves[i] - x)
	}
	n := i + BezierSize
	for i += 2; i < n; i += 2 {
		if curves[i] >= time {
			x := curves[i-2]
			y := curves[i-1]
			return y + (time-x)/(curves[i]-x)*(curves[i+1]-y)
		}
	}
	x := curves[n-2]
	y := curves[n-1]
	return y + (1-y)*(time-x)/(t.frames[frame+t.entries]-x)
}

// Apply implements Timeline. It is a no-op unless the slot shows the
// timeline's attachment or one that deforms through it.
func (t *DeformTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	slot := skel.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}
	va, ok := slot.Attachment().(*skeleton.VertexAttachment)
	if !ok || va.DeformAttachment != t.Attachment {
		return
	}

	if len(slot.Deform) == 0 {
		blend = MixBlendSetup
	}
	vertexCount := len(t.Vertices[0])
	weighted := va.Bones != nil
	setupVertices := va.Vertices
	frames := t.frames

	if time < frames[0] {
		switch blend {
		case MixBlendSetup:
			slot.Deform = slot.Deform[:0]
		case MixBlendFirst:
			if alpha == 1 {
				slot.Deform = slot.Deform[:0]
				return
			}
			deform := setArraySize(slot.Deform, vertexCount)
			slot.Deform = deform
			if !weighted {
				for i := range deform {
					deform[i] += (setupVertices[i] - deform[i]) * alpha
				}
			} else {
				keep := 1 - alpha
				for i := range deform {
					deform[i] *= keep
				}
			}
		}
		return
	}

	deform := setArraySize(slot.Deform, vertexCount)
	slot.Deform = deform

	if time >= frames[len(frames)-1] {
		last := t.Vertices[len(frames)-1]
		mixDeform(deform, func(i int) float64 { return last[i] }, setupVertices, weighted, alpha, blend)
		return
	}

	frame := search1(frames, time)
	percent := t.curvePercent(time, frame)
	prev := t.Vertices[frame]
	next := t.Vertices[frame+1]
	mixDeform(deform, func(i int) float64 {
		p := prev[i]
		return p + (next[i]-p)*percent
	}, setupVertices, weighted, alpha, blend)
}

// mixDeform writes the keyed vertices into deform according to blend.
func mixDeform(deform []float64, keyed func(int) float64, setupVertices []float64, weighted bool, alpha float64, blend MixBlend) {
	if alpha == 1 {
		if blend == MixBlendAdd {
			if !weighted {
				for i := range deform {
					deform[i] += keyed(i) - setupVertices[i]
				}
			} else {
				for i := range deform {
					deform[i] += keyed(i)
				}
			}
			return
		}
		for i := range deform {
			deform[i] = keyed(i)
		}
		return
	}

	switch blend {
	case MixBlendSetup:
		if !weighted {
			for i := range deform {
				setup := setupVertices[i]
				deform[i] = setup + (keyed(i)-setup)*alpha
			}
		} else {
			for i := range deform {
				deform[i] = keyed(i) * alpha
			}
		}
	case MixBlendFirst, MixBlendReplace:
		for i := range deform {
			deform[i] += (keyed(i) - deform[i]) * alpha
		}
	case MixBlendAdd:
		if !weighted {
			for i := range deform {
				deform[i] += (keyed(i) - setupVertices[i]) * alpha
			}
		} else {
			for i := range deform {
				deform[i] += keyed(i) * alpha
			}
		}
	}
}

package animation

import "github.com/decker502/skelanim/pkg/skeleton"

// SlotTimeline is implemented by timelines that pose a single slot.
type SlotTimeline interface {
	Timeline
	Slot() int
}

// RGBATimeline changes a slot's color.
type RGBATimeline struct {
	CurveTimeline
	SlotIndex int
}

// NewRGBATimeline creates a color timeline.
func NewRGBATimeline(frameCount, bezierCount, slotIndex int) *RGBATimeline {
	return &RGBATimeline{
		newCurveTimeline(frameCount, bezierCount, 5, propertyID(PropertyRGB, slotIndex), propertyID(PropertyAlpha, slotIndex)),
		slotIndex,
	}
}

// Slot implements SlotTimeline.
func (t *RGBATimeline) Slot() int { return t.SlotIndex }

// SetFrame sets the time and color of a frame.
func (t *RGBATimeline) SetFrame(frame int, time, r, g, b, a float64) {
	frame *= 5
	t.frames[frame] = time
	t.frames[frame+1] = r
	t.frames[frame+2] = g
	t.frames[frame+3] = b
	t.frames[frame+4] = a
}

// Apply implements Timeline.
func (t *RGBATimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	slot := skel.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}
	color := &slot.Color
	if time < t.frames[0] {
		setup := slot.Data.Color
		switch blend {
		case MixBlendSetup:
			color.SetFromColor(setup)
		case MixBlendFirst:
			color.Add((setup.R-color.R)*alpha, (setup.G-color.G)*alpha, (setup.B-color.B)*alpha, (setup.A-color.A)*alpha)
		}
		return
	}

	var v [4]float64
	t.curveValues(time, v[:])
	if alpha == 1 {
		color.Set(v[0], v[1], v[2], v[3])
		return
	}
	if blend == MixBlendSetup {
		color.SetFromColor(slot.Data.Color)
	}
	color.Add((v[0]-color.R)*alpha, (v[1]-color.G)*alpha, (v[2]-color.B)*alpha, (v[3]-color.A)*alpha)
}

// RGBTimeline changes a slot's color without touching alpha.
type RGBTimeline struct {
	CurveTimeline
	SlotIndex int
}

// NewRGBTimeline creates an RGB timeline.
func NewRGBTimeline(frameCount, bezierCount, slotIndex int) *RGBTimeline {
	return &RGBTimeline{newCurveTimeline(frameCount, bezierCount, 4, propertyID(PropertyRGB, slotIndex)), slotIndex}
}

// Slot implements SlotTimeline.
func (t *RGBTimeline) Slot() int { return t.SlotIndex }

// SetFrame sets the time and color of a frame.
func (t *RGBTimeline) SetFrame(frame int, time, r, g, b float64) {
	frame <<= 2
	t.frames[frame] = time
	t.frames[frame+1] = r
	t.frames[frame+2] = g
	t.frames[frame+3] = b
}

// Apply implements Timeline.
func (t *RGBTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	slot := skel.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}
	color := &slot.Color
	if time < t.frames[0] {
		setup := slot.Data.Color
		switch blend {
		case MixBlendSetup:
			color.R, color.G, color.B = setup.R, setup.G, setup.B
		case MixBlendFirst:
			color.R += (setup.R - color.R) * alpha
			color.G += (setup.G - color.G) * alpha
			color.B += (setup.B - color.B) * alpha
		}
		return
	}

	var v [3]float64
	t.curveValues(time, v[:])
	if alpha == 1 {
		color.R, color.G, color.B = v[0], v[1], v[2]
		return
	}
	if blend == MixBlendSetup {
		setup := slot.Data.Color
		color.R, color.G, color.B = setup.R, setup.G, setup.B
	}
	color.R += (v[0] - color.R) * alpha
	color.G += (v[1] - color.G) * alpha
	color.B += (v[2] - color.B) * alpha
}

// AlphaTimeline changes a slot's alpha.
type AlphaTimeline struct {
	CurveTimeline1
	SlotIndex int
}

// NewAlphaTimeline creates an alpha timeline.
func NewAlphaTimeline(frameCount, bezierCount, slotIndex int) *AlphaTimeline {
	return &AlphaTimeline{newCurveTimeline1(frameCount, bezierCount, propertyID(PropertyAlpha, slotIndex)), slotIndex}
}

// Slot implements SlotTimeline.
func (t *AlphaTimeline) Slot() int { return t.SlotIndex }

// Apply implements Timeline.
func (t *AlphaTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	slot := skel.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}
	color := &slot.Color
	if time < t.frames[0] {
		setup := slot.Data.Color
		switch blend {
		case MixBlendSetup:
			color.A = setup.A
		case MixBlendFirst:
			color.A += (setup.A - color.A) * alpha
		}
		return
	}

	a := t.CurveValue(time)
	if alpha == 1 {
		color.A = a
		return
	}
	if blend == MixBlendSetup {
		color.A = slot.Data.Color.A
	}
	color.A += (a - color.A) * alpha
}

// RGBA2Timeline changes a slot's light color and the RGB of its dark color
// for two color tinting.
type RGBA2Timeline struct {
	CurveTimeline
	SlotIndex int
}

// NewRGBA2Timeline creates a two color timeline.
func NewRGBA2Timeline(frameCount, bezierCount, slotIndex int) *RGBA2Timeline {
	return &RGBA2Timeline{
		newCurveTimeline(frameCount, bezierCount, 8,
			propertyID(PropertyRGB, slotIndex), propertyID(PropertyAlpha, slotIndex), propertyID(PropertyRGB2, slotIndex)),
		slotIndex,
	}
}

// Slot implements SlotTimeline.
func (t *RGBA2Timeline) Slot() int { return t.SlotIndex }

// SetFrame sets the time, light color and dark color of a frame.
func (t *RGBA2Timeline) SetFrame(frame int, time, r, g, b, a, r2, g2, b2 float64) {
	frame <<= 3
	t.frames[frame] = time
	t.frames[frame+1] = r
	t.frames[frame+2] = g
	t.frames[frame+3] = b
	t.frames[frame+4] = a
	t.frames[frame+5] = r2
	t.frames[frame+6] = g2
	t.frames[frame+7] = b2
}

// Apply implements Timeline.
func (t *RGBA2Timeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	slot := skel.Slots[t.SlotIndex]
	if !slot.Bone.Active || slot.DarkColor == nil || slot.Data.DarkColor == nil {
		return
	}
	light, dark := &slot.Color, slot.DarkColor
	if time < t.frames[0] {
		setupLight, setupDark := slot.Data.Color, slot.Data.DarkColor
		switch blend {
		case MixBlendSetup:
			light.SetFromColor(setupLight)
			dark.R, dark.G, dark.B = setupDark.R, setupDark.G, setupDark.B
		case MixBlendFirst:
			light.Add((setupLight.R-light.R)*alpha, (setupLight.G-light.G)*alpha, (setupLight.B-light.B)*alpha, (setupLight.A-light.A)*alpha)
			dark.R += (setupDark.R - dark.R) * alpha
			dark.G += (setupDark.G - dark.G) * alpha
			dark.B += (setupDark.B - dark.B) * alpha
		}
		return
	}

	var v [7]float64
	t.curveValues(time, v[:])
	if alpha == 1 {
		light.Set(v[0], v[1], v[2], v[3])
		dark.R, dark.G, dark.B = v[4], v[5], v[6]
		return
	}
	if blend == MixBlendSetup {
		light.SetFromColor(slot.Data.Color)
		setupDark := slot.Data.DarkColor
		dark.R, dark.G, dark.B = setupDark.R, setupDark.G, setupDark.B
	}
	light.Add((v[0]-light.R)*alpha, (v[1]-light.G)*alpha, (v[2]-light.B)*alpha, (v[3]-light.A)*alpha)
	dark.R += (v[4] - dark.R) * alpha
	dark.G += (v[5] - dark.G) * alpha
	dark.B += (v[6] - dark.B) * alpha
}

// RGB2Timeline changes the RGB of a slot's light and dark colors.
type RGB2Timeline struct {
	CurveTimeline
	SlotIndex int
}

// NewRGB2Timeline creates a two color RGB timeline.
func NewRGB2Timeline(frameCount, bezierCount, slotIndex int) *RGB2Timeline {
	return &RGB2Timeline{
		newCurveTimeline(frameCount, bezierCount, 7, propertyID(PropertyRGB, slotIndex), propertyID(PropertyRGB2, slotIndex)),
		slotIndex,
	}
}

// Slot implements SlotTimeline.
func (t *RGB2Timeline) Slot() int { return t.SlotIndex }

// SetFrame sets the time, light RGB and dark RGB of a frame.
func (t *RGB2Timeline) SetFrame(frame int, time, r, g, b, r2, g2, b2 float64) {
	frame *= 7
	t.frames[frame] = time
	t.frames[frame+1] = r
	t.frames[frame+2] = g
	t.frames[frame+3] = b
	t.frames[frame+4] = r2
	t.frames[frame+5] = g2
	t.frames[frame+6] = b2
}

// Apply implements Timeline.
func (t *RGB2Timeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	slot := skel.Slots[t.SlotIndex]
	if !slot.Bone.Active || slot.DarkColor == nil || slot.Data.DarkColor == nil {
		return
	}
	light, dark := &slot.Color, slot.DarkColor
	if time < t.frames[0] {
		setupLight, setupDark := slot.Data.Color, slot.Data.DarkColor
		switch blend {
		case MixBlendSetup:
			light.R, light.G, light.B = setupLight.R, setupLight.G, setupLight.B
			dark.R, dark.G, dark.B = setupDark.R, setupDark.G, setupDark.B
		case MixBlendFirst:
			light.R += (setupLight.R - light.R) * alpha
			light.G += (setupLight.G - light.G) * alpha
			light.B += (setupLight.B - light.B) * alpha
			dark.R += (setupDark.R - dark.R) * alpha
			dark.G += (setupDark.G - dark.G) * alpha
			dark.B += (setupDark.B - dark.B) * alpha
		}
		return
	}

	var v [6]float64
	t.curveValues(time, v[:])
	if alpha == 1 {
		light.R, light.G, light.B = v[0], v[1], v[2]
		dark.R, dark.G, dark.B = v[3], v[4], v[5]
		return
	}
	if blend == MixBlendSetup {
		setupLight, setupDark := slot.Data.Color, slot.Data.DarkColor
		light.R, light.G, light.B = setupLight.R, setupLight.G, setupLight.B
		dark.R, dark.G, dark.B = setupDark.R, setupDark.G, setupDark.B
	}
	light.R += (v[0] - light.R) * alpha
	light.G += (v[1] - light.G) * alpha
	light.B += (v[2] - light.B) * alpha
	dark.R += (v[3] - dark.R) * alpha
	dark.G += (v[4] - dark.G) * alpha
	dark.B += (v[5] - dark.B) * alpha
}

// AttachmentTimeline changes a slot's attachment. Keys are not interpolated.
type AttachmentTimeline struct {
	timelineBase
	SlotIndex       int
	AttachmentNames []string
}

// NewAttachmentTimeline creates an attachment timeline.
func NewAttachmentTimeline(frameCount, slotIndex int) *AttachmentTimeline {
	return &AttachmentTimeline{
		timelineBase:    newTimelineBase(frameCount, 1, propertyID(PropertyAttachment, slotIndex)),
		SlotIndex:       slotIndex,
		AttachmentNames: make([]string, frameCount),
	}
}

// Slot implements SlotTimeline.
func (t *AttachmentTimeline) Slot() int { return t.SlotIndex }

// SetFrame sets the time and attachment name of a frame. An empty name clears the attachment.
func (t *AttachmentTimeline) SetFrame(frame int, time float64, attachmentName string) {
	t.frames[frame] = time
	t.AttachmentNames[frame] = attachmentName
}

// NameAt returns the attachment name keyed at or before time. ok is false
// when time is before the first key.
func (t *AttachmentTimeline) NameAt(time float64) (name string, ok bool) {
	if time < t.frames[0] {
		return "", false
	}
	return t.AttachmentNames[search1(t.frames, time)], true
}

// Apply implements Timeline. While mixing out with the setup blend the setup
// attachment is restored, so attachments set only by this animation are cleared.
func (t *AttachmentTimeline) Apply(skel *skeleton.Skeleton, lastTime, time float64, events *[]*Event, alpha float64, blend MixBlend, direction MixDirection) {
	slot := skel.Slots[t.SlotIndex]
	if !slot.Bone.Active {
		return
	}
	if direction == MixOut {
		if blend == MixBlendSetup {
			t.setAttachment(skel, slot, slot.Data.AttachmentName)
		}
		return
	}
	name, ok := t.NameAt(time)
	if !ok {
		if blend == MixBlendSetup || blend == MixBlendFirst {
			t.setAttachment(skel, slot, slot.Data.AttachmentName)
		}
		return
	}
	t.setAttachment(skel, slot, name)
}

func (t *AttachmentTimeline) setAttachment(skel *skeleton.Skeleton, slot *skeleton.Slot, name string) {
	if name == "" {
		slot.SetAttachment(nil)
		return
	}
	slot.SetAttachment(skel.GetAttachment(t.SlotIndex, name))
}

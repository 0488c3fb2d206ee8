package animation

import "github.com/tanema/gween/ease"

// Curve types stored in CurveTimeline.curves. Values >= CurveBezier are
// CurveBezier plus the index of the first sample of the curve.
const (
	CurveLinear  = 0
	CurveStepped = 1
	CurveBezier  = 2

	// BezierSize is the number of values stored per curve: 9 x,y samples.
	BezierSize = 18
)

// CurveTimeline is the base for timelines whose keys are interpolated.
//
// curves holds one type slot per frame followed by BezierSize samples for
// each Bezier curve. A curve describes the segment from its frame to the next.
type CurveTimeline struct {
	timelineBase
	curves []float64
}

func newCurveTimeline(frameCount, bezierCount, entries int, propertyIDs ...string) CurveTimeline {
	t := CurveTimeline{
		timelineBase: newTimelineBase(frameCount, entries, propertyIDs...),
		curves:       make([]float64, frameCount+bezierCount*BezierSize),
	}
	if frameCount > 0 {
		t.curves[frameCount-1] = CurveStepped
	}
	return t
}

// SetLinear makes the segment starting at frame interpolate linearly.
func (t *CurveTimeline) SetLinear(frame int) {
	t.curves[frame] = CurveLinear
}

// SetStepped makes the segment starting at frame hold its value until the next key.
func (t *CurveTimeline) SetStepped(frame int) {
	t.curves[frame] = CurveStepped
}

// CurveType returns CurveLinear, CurveStepped or a value >= CurveBezier for the frame.
func (t *CurveTimeline) CurveType(frame int) int {
	return int(t.curves[frame])
}

// Shrink trims unused Bezier storage when fewer curves were set than allocated.
func (t *CurveTimeline) Shrink(bezierCount int) {
	size := t.FrameCount() + bezierCount*BezierSize
	if len(t.curves) > size {
		t.curves = t.curves[:size]
	}
}

// SetBezier stores the samples of a cubic Bezier from (time1,value1) to
// (time2,value2) with control points (cx1,cy1) and (cx2,cy2).
//
// bezier is the index of the curve storage to use and value the index of the
// frame value the curve is for; value 0 also marks the frame as Bezier.
// The curve is sampled with forward differences so lookups never solve the cubic.
func (t *CurveTimeline) SetBezier(bezier, frame, value int, time1, value1, cx1, cy1, cx2, cy2, time2, value2 float64) {
	curves := t.curves
	i := t.FrameCount() + bezier*BezierSize
	if value == 0 {
		curves[frame] = float64(CurveBezier + i)
	}
	tmpx := (time1 - cx1*2 + cx2) * 0.03
	tmpy := (value1 - cy1*2 + cy2) * 0.03
	dddx := ((cx1-cx2)*3 - time1 + time2) * 0.006
	dddy := ((cy1-cy2)*3 - value1 + value2) * 0.006
	ddx := tmpx*2 + dddx
	ddy := tmpy*2 + dddy
	dx := (cx1-time1)*0.3 + tmpx + dddx*0.16666667
	dy := (cy1-value1)*0.3 + tmpy + dddy*0.16666667
	x := time1 + dx
	y := value1 + dy
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

// SetEase fills the curve storage with samples of a tween function, so a
// segment can follow a named easing such as ease.OutQuad.
func (t *CurveTimeline) SetEase(bezier, frame, value int, time1, value1, time2, value2 float64, fn ease.TweenFunc) {
	curves := t.curves
	i := t.FrameCount() + bezier*BezierSize
	if value == 0 {
		curves[frame] = float64(CurveBezier + i)
	}
	const steps = BezierSize/2 + 1
	change := value2 - value1
	for k := 1; k < steps; k, i = k+1, i+2 {
		curves[i] = time1 + (time2-time1)*float64(k)/steps
		curves[i+1] = value1 + change*float64(fn(float32(k), 0, 1, steps))
	}
}

// bezierValue interpolates within the sampled curve that starts at curves[i].
// Past the last sample it interpolates toward the next frame's value.
func (t *CurveTimeline) bezierValue(time float64, frameIndex, valueOffset, i int) float64 {
	curves := t.curves
	if curves[i] > time {
		x := t.frames[frameIndex]
		y := t.frames[frameIndex+valueOffset]
		return y + (time-x)/(curves[i]-x)*(curves[i+1]-y)
	}
	n := i + BezierSize
	for i += 2; i < n; i += 2 {
		if curves[i] >= time {
			x := curves[i-2]
			y := curves[i-1]
			return y + (time-x)/(curves[i]-x)*(curves[i+1]-y)
		}
	}
	frameIndex += t.entries
	x := curves[n-2]
	y := curves[n-1]
	return y + (time-x)/(t.frames[frameIndex]-x)*(t.frames[frameIndex+valueOffset]-y)
}

// curveValues fills out with the interpolated values of the frame containing
// time, starting at frame offset 1, and returns the index of that frame.
func (t *CurveTimeline) curveValues(time float64, out []float64) int {
	frames := t.frames
	entries := t.entries
	i := search(frames, time, entries)
	curveType := int(t.curves[i/entries])
	switch curveType {
	case CurveLinear:
		before := frames[i]
		percent := (time - before) / (frames[i+entries] - before)
		for k := range out {
			v := frames[i+1+k]
			out[k] = v + (frames[i+entries+1+k]-v)*percent
		}
	case CurveStepped:
		for k := range out {
			out[k] = frames[i+1+k]
		}
	default:
		b := curveType - CurveBezier
		for k := range out {
			out[k] = t.bezierValue(time, i, 1+k, b+k*BezierSize)
		}
	}
	return i
}

// CurveTimeline1 is a curve timeline with a single value per frame.
type CurveTimeline1 struct {
	CurveTimeline
}

func newCurveTimeline1(frameCount, bezierCount int, propertyID string) CurveTimeline1 {
	return CurveTimeline1{newCurveTimeline(frameCount, bezierCount, 2, propertyID)}
}

// SetFrame sets the time and value of a frame.
func (t *CurveTimeline1) SetFrame(frame int, time, value float64) {
	frame <<= 1
	t.frames[frame] = time
	t.frames[frame+1] = value
}

// CurveValue returns the interpolated value for time. time must not be before the first frame.
func (t *CurveTimeline1) CurveValue(time float64) float64 {
	frames := t.frames
	i := len(frames) - 2
	for ii := 2; ii <= i; ii += 2 {
		if frames[ii] > time {
			i = ii - 2
			break
		}
	}
	curveType := int(t.curves[i>>1])
	switch curveType {
	case CurveLinear:
		before := frames[i]
		value := frames[i+1]
		return value + (time-before)/(frames[i+2]-before)*(frames[i+3]-value)
	case CurveStepped:
		return frames[i+1]
	}
	return t.bezierValue(time, i, 1, curveType-CurveBezier)
}

// CurveTimeline2 is a curve timeline with two values per frame.
type CurveTimeline2 struct {
	CurveTimeline
}

func newCurveTimeline2(frameCount, bezierCount int, propertyID1, propertyID2 string) CurveTimeline2 {
	return CurveTimeline2{newCurveTimeline(frameCount, bezierCount, 3, propertyID1, propertyID2)}
}

// SetFrame sets the time and both values of a frame.
func (t *CurveTimeline2) SetFrame(frame int, time, value1, value2 float64) {
	frame *= 3
	t.frames[frame] = time
	t.frames[frame+1] = value1
	t.frames[frame+2] = value2
}

func (t *CurveTimeline2) curveValue2(time float64) (float64, float64) {
	var v [2]float64
	t.curveValues(time, v[:])
	return v[0], v[1]
}

package animstate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/skeleton"
)

// testRig is a two bone skeleton with one slot and a handful of animations:
//
//	hold    rotate 10, x 5 (constant), 1s
//	turn    rotate 30 (constant), 1s
//	slide   x 0..10 linear, 1s
//	walk    events "step" at 0.1 and "lift" at 0.9, 1s
//	swap    attachment "alt" on slot 0, 1s
//	spinA   rotate 170, 1s
//	spinB   rotate -170, 1s
type testRig struct {
	data *skeleton.SkeletonData
	lib  *animation.Library
}

func constRotate(bone int, value float64) *animation.RotateTimeline {
	t := animation.NewRotateTimeline(2, 0, bone)
	t.SetFrame(0, 0, value)
	t.SetFrame(1, 1, value)
	return t
}

func constX(bone int, value float64) *animation.TranslateXTimeline {
	t := animation.NewTranslateXTimeline(2, 0, bone)
	t.SetFrame(0, 0, value)
	t.SetFrame(1, 1, value)
	return t
}

func newTestRig() *testRig {
	root := skeleton.NewBoneData(0, "root", nil)
	arm := skeleton.NewBoneData(1, "arm", root)
	slot := skeleton.NewSlotData(0, "hand", arm)
	slot.AttachmentName = "body"

	skin := skeleton.NewSkin("default")
	skin.SetAttachment(0, "body", &skeleton.RegionAttachment{Name: "body"})
	skin.SetAttachment(0, "alt", &skeleton.RegionAttachment{Name: "alt"})

	data := &skeleton.SkeletonData{
		Name:        "rig",
		Bones:       []*skeleton.BoneData{root, arm},
		Slots:       []*skeleton.SlotData{slot},
		Skins:       []*skeleton.Skin{skin},
		DefaultSkin: skin,
	}

	step := animation.NewEventData("step")
	lift := animation.NewEventData("lift")
	events := animation.NewEventTimeline(2)
	events.SetFrame(0, animation.NewEvent(0.1, step))
	events.SetFrame(1, animation.NewEvent(0.9, lift))

	slide := animation.NewTranslateXTimeline(2, 0, 1)
	slide.SetFrame(0, 0, 0)
	slide.SetFrame(1, 1, 10)

	swap := animation.NewAttachmentTimeline(1, 0)
	swap.SetFrame(0, 0, "alt")

	lib := &animation.Library{
		Skeleton: data,
		Events:   []*animation.EventData{step, lift},
		Animations: []*animation.Animation{
			animation.New("hold", []animation.Timeline{constRotate(1, 10), constX(1, 5)}, 1),
			animation.New("turn", []animation.Timeline{constRotate(1, 30)}, 1),
			animation.New("slide", []animation.Timeline{slide}, 1),
			animation.New("walk", []animation.Timeline{events}, 1),
			animation.New("swap", []animation.Timeline{swap}, 1),
			animation.New("spinA", []animation.Timeline{constRotate(1, 170)}, 1),
			animation.New("spinB", []animation.Timeline{constRotate(1, -170)}, 1),
		},
	}
	return &testRig{data: data, lib: lib}
}

func (r *testRig) anim(t *testing.T, name string) *animation.Animation {
	t.Helper()
	a := r.lib.FindAnimation(name)
	require.NotNil(t, a, name)
	return a
}

func (r *testRig) newState(t *testing.T) (*AnimationState, *skeleton.Skeleton) {
	t.Helper()
	state, err := New(NewStateData(r.lib))
	require.NoError(t, err)
	skel, err := skeleton.New(r.data)
	require.NoError(t, err)
	return state, skel
}

// step runs one frame.
func step(t *testing.T, state *AnimationState, skel *skeleton.Skeleton, delta float64) {
	t.Helper()
	state.Update(delta)
	_, err := state.Apply(skel)
	require.NoError(t, err)
}

// recorder logs every callback as "kind:animation[:event]".
type recorder struct {
	name string
	log  []string
}

func (r *recorder) add(kind string, entry *TrackEntry) {
	r.log = append(r.log, r.name+kind+":"+entry.Animation.Name)
}

func (r *recorder) Start(entry *TrackEntry)     { r.add("start", entry) }
func (r *recorder) Interrupt(entry *TrackEntry) { r.add("interrupt", entry) }
func (r *recorder) End(entry *TrackEntry)       { r.add("end", entry) }
func (r *recorder) Dispose(entry *TrackEntry)   { r.add("dispose", entry) }
func (r *recorder) Complete(entry *TrackEntry)  { r.add("complete", entry) }

func (r *recorder) Event(entry *TrackEntry, event *animation.Event) {
	r.log = append(r.log, fmt.Sprintf("%sevent:%s:%s", r.name, entry.Animation.Name, event.Data.Name))
}

// only returns the log entries starting with prefix.
func (r *recorder) only(prefix string) []string {
	var out []string
	for _, l := range r.log {
		if strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	return out
}

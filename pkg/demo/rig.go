// Package demo builds the stick figure rig and animations used by the
// viewer and the verify_state tool.
package demo

import (
	"github.com/tanema/gween/ease"

	"github.com/decker502/skelanim/pkg/animation"
	"github.com/decker502/skelanim/pkg/skeleton"
)

// Bone indices of the rig.
const (
	Root = iota
	Hip
	Torso
	Head
	UpperArm
	LowerArm
	LeftThigh
	LeftShin
	RightThigh
	RightShin
)

// Animation names.
const (
	Idle = "idle"
	Walk = "walk"
	Run  = "run"
	Jump = "jump"
	Wave = "wave"
)

// HeadSlot is the slot index of the face attachment.
const HeadSlot = 0

// Skeleton returns the setup pose of the rig. Y points up; the hip is 100
// above the root and limbs hang from it.
func Skeleton() *skeleton.SkeletonData {
	bone := func(index int, name string, parent *skeleton.BoneData, x, rotation, length float64) *skeleton.BoneData {
		b := skeleton.NewBoneData(index, name, parent)
		b.X = x
		b.Rotation = rotation
		b.Length = length
		return b
	}
	root := bone(Root, "root", nil, 0, 0, 0)
	hip := bone(Hip, "hip", root, 0, 90, 0)
	hip.X, hip.Y = 0, 100
	torso := bone(Torso, "torso", hip, 0, 0, 60)
	head := bone(Head, "head", torso, 60, 0, 25)
	upperArm := bone(UpperArm, "upper_arm", torso, 55, 160, 35)
	lowerArm := bone(LowerArm, "lower_arm", upperArm, 35, 10, 30)
	leftThigh := bone(LeftThigh, "left_thigh", hip, 0, 180, 50)
	leftShin := bone(LeftShin, "left_shin", leftThigh, 50, 0, 45)
	rightThigh := bone(RightThigh, "right_thigh", hip, 0, 180, 50)
	rightShin := bone(RightShin, "right_shin", rightThigh, 50, 0, 45)

	face := skeleton.NewSlotData(HeadSlot, "face", head)
	face.AttachmentName = "eyes_open"
	skin := skeleton.NewSkin("default")
	skin.SetAttachment(HeadSlot, "eyes_open", &skeleton.RegionAttachment{Name: "eyes_open"})
	skin.SetAttachment(HeadSlot, "eyes_closed", &skeleton.RegionAttachment{Name: "eyes_closed"})

	return &skeleton.SkeletonData{
		Name: "stickman",
		Bones: []*skeleton.BoneData{
			root, hip, torso, head, upperArm, lowerArm,
			leftThigh, leftShin, rightThigh, rightShin,
		},
		Slots:       []*skeleton.SlotData{face},
		Skins:       []*skeleton.Skin{skin},
		DefaultSkin: skin,
	}
}

// Library returns the rig with its animations and events.
func Library() *animation.Library {
	footstep := animation.NewEventData("footstep")
	takeoff := animation.NewEventData("takeoff")
	land := animation.NewEventData("land")
	land.Volume = 0.8

	return &animation.Library{
		Skeleton: Skeleton(),
		Animations: []*animation.Animation{
			idle(),
			walk(footstep, 1, 25, 30),
			run(footstep),
			jump(takeoff, land),
			wave(),
		},
		Events: []*animation.EventData{footstep, takeoff, land},
	}
}

// rotate builds a linear rotate timeline from time, value pairs.
func rotate(bone int, keys ...float64) *animation.RotateTimeline {
	t := animation.NewRotateTimeline(len(keys)/2, 0, bone)
	for i := 0; i < len(keys); i += 2 {
		t.SetFrame(i/2, keys[i], keys[i+1])
	}
	return t
}

func steps(data *animation.EventData, times ...float64) *animation.EventTimeline {
	t := animation.NewEventTimeline(len(times))
	for i, time := range times {
		e := animation.NewEvent(time, data)
		if i%2 == 0 {
			e.StringValue = "left"
		} else {
			e.StringValue = "right"
		}
		t.SetFrame(i, e)
	}
	return t
}

func idle() *animation.Animation {
	// Breathing eases in and out of each key.
	breathe := animation.NewRotateTimeline(3, 2, Torso)
	breathe.SetFrame(0, 0, 0)
	breathe.SetFrame(1, 1, 3)
	breathe.SetFrame(2, 2, 0)
	breathe.SetEase(0, 0, 0, 0, 0, 1, 3, ease.InOutSine)
	breathe.SetEase(1, 1, 0, 1, 3, 2, 0, ease.InOutSine)

	blink := animation.NewAttachmentTimeline(3, HeadSlot)
	blink.SetFrame(0, 0, "eyes_open")
	blink.SetFrame(1, 1.8, "eyes_closed")
	blink.SetFrame(2, 1.9, "eyes_open")

	return animation.New(Idle, []animation.Timeline{
		breathe,
		rotate(UpperArm, 0, 0, 1, 4, 2, 0),
		blink,
	}, 2)
}

func walk(footstep *animation.EventData, duration, thigh, arm float64) *animation.Animation {
	half := duration / 2
	return animation.New(Walk, []animation.Timeline{
		rotate(LeftThigh, 0, thigh, half, -thigh, duration, thigh),
		rotate(RightThigh, 0, -thigh, half, thigh, duration, -thigh),
		rotate(LeftShin, 0, 0, half/2, 20, half, 0, duration, 0),
		rotate(RightShin, 0, 0, half, 0, half+half/2, 20, duration, 0),
		rotate(UpperArm, 0, -arm, half, arm, duration, -arm),
		steps(footstep, 0, half),
	}, duration)
}

func run(footstep *animation.EventData) *animation.Animation {
	a := walk(footstep, 0.6, 40, 50)
	a.Name = Run
	lean := rotate(Torso, 0, -10)
	bend := rotate(LowerArm, 0, 70)
	a.SetTimelines(append(a.Timelines, lean, bend))
	return a
}

func jump(takeoff, land *animation.EventData) *animation.Animation {
	// The hip dips, rises with a slow top and drops back.
	height := animation.NewTranslateYTimeline(4, 1, Hip)
	height.SetFrame(0, 0, 0)
	height.SetFrame(1, 0.2, -10)
	height.SetFrame(2, 0.5, 60)
	height.SetFrame(3, 0.8, 0)
	height.SetBezier(0, 1, 0, 0.2, -10, 0.3, 40, 0.4, 60, 0.5, 60)

	events := animation.NewEventTimeline(2)
	events.SetFrame(0, animation.NewEvent(0.2, takeoff))
	events.SetFrame(1, animation.NewEvent(0.8, land))

	return animation.New(Jump, []animation.Timeline{
		height,
		rotate(LeftThigh, 0, 0, 0.2, 30, 0.5, -20, 0.8, 0),
		rotate(RightThigh, 0, 0, 0.2, 30, 0.5, -20, 0.8, 0),
		rotate(LeftShin, 0, 0, 0.2, -50, 0.5, -10, 0.8, 0),
		rotate(RightShin, 0, 0, 0.2, -50, 0.5, -10, 0.8, 0),
		rotate(UpperArm, 0, 0, 0.5, -120, 0.8, 0),
		events,
	}, 0.8)
}

// wave only keys the arm, so it can play on a higher track over any
// other animation.
func wave() *animation.Animation {
	return animation.New(Wave, []animation.Timeline{
		rotate(UpperArm, 0, -140, 0.5, -165, 1, -140),
		rotate(LowerArm, 0, 30, 0.5, -30, 1, 30),
	}, 1)
}

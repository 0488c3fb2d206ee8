package app

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/demo"
	"github.com/decker502/skelanim/pkg/skeleton"
)

var (
	boneColor  = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	jointColor = color.RGBA{R: 240, G: 160, B: 60, A: 255}
	groundLine = color.RGBA{R: 90, G: 110, B: 90, A: 255}
	eyeColor   = color.RGBA{R: 30, G: 32, B: 40, A: 255}
)

const helpText = "1 idle  2 walk  3 run  4 jump  space jump+back\n" +
	"W wave  E stop wave  T slow motion  P pause  S save  L load  F11 fullscreen"

func drawGround(screen *ebiten.Image) {
	vector.StrokeLine(screen, 0, groundY, ScreenWidth, groundY, 2, groundLine, false)
}

func drawSkeleton(screen *ebiten.Image, skel *skeleton.Skeleton) {
	for _, b := range skel.Bones {
		if !b.Active || b.Data.Length == 0 {
			continue
		}
		x0, y0 := float32(b.WorldX), float32(b.WorldY)
		x1, y1 := float32(b.TipX()), float32(b.TipY())
		if b.Data.Index == demo.Head {
			drawHead(screen, skel, x0, y0, x1, y1)
			continue
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, 4, boneColor, true)
		vector.DrawFilledCircle(screen, x0, y0, 3, jointColor, true)
	}
}

// drawHead draws the head bone as a circle along the bone, with eyes when the
// face slot shows eyes_open.
func drawHead(screen *ebiten.Image, skel *skeleton.Skeleton, x0, y0, x1, y1 float32) {
	cx, cy := (x0+x1)/2, (y0+y1)/2
	r := float32(skel.Bones[demo.Head].Data.Length / 2)
	vector.DrawFilledCircle(screen, cx, cy, r, boneColor, true)

	att := skel.Slots[demo.HeadSlot].Attachment()
	if att != nil && att.AttachmentName() == "eyes_open" {
		vector.DrawFilledCircle(screen, cx-r/3, cy-r/4, 2, eyeColor, true)
		vector.DrawFilledCircle(screen, cx+r/3, cy-r/4, 2, eyeColor, true)
	} else {
		vector.StrokeLine(screen, cx-r/2, cy-r/4, cx-r/6, cy-r/4, 1, eyeColor, true)
		vector.StrokeLine(screen, cx+r/6, cy-r/4, cx+r/2, cy-r/4, 1, eyeColor, true)
	}
}

func describeTrack(e *animstate.TrackEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "track %d: %s t=%.2f", e.TrackIndex, e.Animation.Name, e.TrackTime)
	if e.Loop > 0 && e.Loop != animstate.LoopForever {
		fmt.Fprintf(&b, " loops=%d", e.Loop)
	}
	if from := e.MixingFrom(); from != nil && e.MixDuration > 0 {
		fmt.Fprintf(&b, " <- %s %.0f%%", from.Animation.Name, 100*e.MixTime/e.MixDuration)
	}
	for next := e.Next(); next != nil; next = next.Next() {
		fmt.Fprintf(&b, " | %s", next.Animation.Name)
	}
	return b.String()
}

func drawStatus(screen *ebiten.Image, a *App) {
	var b strings.Builder
	b.WriteString(helpText)
	fmt.Fprintf(&b, "\n\nfps %.0f  time scale %.2f", ebiten.ActualFPS(), a.anim.State.TimeScale)
	if a.anim.Paused {
		b.WriteString("  paused")
	}
	if a.status != "" {
		b.WriteString("  " + a.status)
	}
	b.WriteString("\n")
	for _, e := range a.anim.State.Tracks() {
		if e != nil {
			b.WriteString("\n" + describeTrack(e))
		}
	}
	b.WriteString("\n")
	for _, line := range a.events {
		b.WriteString("\n" + line)
	}
	ebitenutil.DebugPrint(screen, b.String())
}

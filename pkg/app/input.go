package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerJustPressed reports a new touch or left click and where it happened.
// Touch wins when both occur in the same frame.
func pointerJustPressed() (bool, int, int) {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// tapZone maps a tap on the logical screen to an action for devices without
// a keyboard: the left third cycles track 0, the middle third jumps and the
// right third toggles the wave on track 1.
type tapZone int

const (
	tapCycle tapZone = iota
	tapJump
	tapWave
)

func zoneAt(x int) tapZone {
	switch {
	case x < ScreenWidth/3:
		return tapCycle
	case x < 2*ScreenWidth/3:
		return tapJump
	default:
		return tapWave
	}
}

// nextAnimation returns the animation after current in the key order,
// wrapping around. Unknown names start over at the first.
func nextAnimation(current string) string {
	for i, k := range animationKeys {
		if k.name == current {
			return animationKeys[(i+1)%len(animationKeys)].name
		}
	}
	return animationKeys[0].name
}

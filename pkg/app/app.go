// Package app is the debug viewer shared by the desktop binary and the mobile
// binding. It plays the demo rig through the ECS animation system and draws
// its bones.
package app

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/components"
	"github.com/decker502/skelanim/pkg/config"
	"github.com/decker502/skelanim/pkg/demo"
	"github.com/decker502/skelanim/pkg/ecs"
	"github.com/decker502/skelanim/pkg/skeleton"
	"github.com/decker502/skelanim/pkg/snapshot"
	"github.com/decker502/skelanim/pkg/systems"
)

// Logical screen size.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

const (
	groundY       = 480
	slowMotion    = 0.25
	tweenDuration = 0.5
	maxEventLines = 8
	snapshotKey   = "viewer"
)

// Config defines how the viewer starts.
type Config struct {
	// MixConfig is the path of the mix configuration inside the embedded
	// data FS. Empty means data/mix.yaml.
	MixConfig string
	// AppName names the snapshot save directory. Empty disables saving.
	AppName string
}

// SetupLogging routes zerolog to a console writer on stderr.
func SetupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// App implements ebiten.Game.
type App struct {
	entityManager *ecs.EntityManager
	system        *systems.AnimationSystem
	config        *config.Manager
	store         *snapshot.Store

	entity ecs.EntityID
	anim   *components.SkeletonAnimationComponent

	// timeScale eases the state's TimeScale between normal and slow motion.
	timeScale *gween.Tween
	slow      bool

	events []string
	status string

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp builds the viewer.
//
// embedded.Init must be called first.
func NewApp(cfg Config) (*App, error) {
	path := cfg.MixConfig
	if path == "" {
		path = "data/mix.yaml"
	}
	mixes, err := config.NewManager(path)
	if err != nil {
		return nil, fmt.Errorf("load mix config: %w", err)
	}
	data, err := mixes.StateData(demo.Library())
	if err != nil {
		return nil, fmt.Errorf("build state data: %w", err)
	}
	state, err := animstate.New(data)
	if err != nil {
		return nil, err
	}
	skel, err := skeleton.New(demo.Skeleton())
	if err != nil {
		return nil, err
	}
	// The rig is Y up.
	skel.X, skel.Y = ScreenWidth/2, groundY
	skel.ScaleY = -1

	anim, err := components.NewSkeletonAnimationComponent(skel, state)
	if err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, anim)
	ecs.AddComponent(em, id, &components.AnimationCommandComponent{Animation: demo.Idle})

	a := &App{
		entityManager: em,
		system:        systems.NewAnimationSystem(em, mixes),
		config:        mixes,
		store:         snapshot.NewStore(nil),
		entity:        id,
		anim:          anim,
	}
	if cfg.AppName != "" {
		store, err := snapshot.Open(cfg.AppName)
		if err != nil {
			log.Warn().Str("component", "App").Err(err).Msg("snapshot store unavailable")
		} else {
			a.store = store
		}
	}
	log.Info().Str("component", "App").Strs("animations", mixes.Animations()).Msg("viewer ready")
	return a, nil
}

var animationKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.Key1, demo.Idle},
	{ebiten.Key2, demo.Walk},
	{ebiten.Key3, demo.Run},
	{ebiten.Key4, demo.Jump},
}

func (a *App) command(cmd *components.AnimationCommandComponent) {
	ecs.AddComponent(a.entityManager, a.entity, cmd)
}

func (a *App) handleInput() {
	for _, k := range animationKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			a.command(&components.AnimationCommandComponent{Animation: k.name})
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.jump()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		a.command(&components.AnimationCommandComponent{Track: 1, Animation: demo.Wave})
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		a.command(&components.AnimationCommandComponent{Track: 1, Empty: true, MixDuration: 0.3})
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.anim.Paused = !a.anim.Paused
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		a.toggleSlowMotion()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := a.store.SaveState(snapshotKey, a.anim.State); err != nil {
			a.status = "save failed: " + err.Error()
		} else {
			a.status = "saved"
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		if err := a.store.RestoreState(snapshotKey, a.anim.State); err != nil {
			a.status = "load failed: " + err.Error()
		} else {
			a.status = "loaded"
		}
	}
	if pressed, x, _ := pointerJustPressed(); pressed {
		a.tap(zoneAt(x))
	}
}

func (a *App) tap(zone tapZone) {
	switch zone {
	case tapCycle:
		name := ""
		if cur := a.anim.State.Current(0); cur != nil {
			name = cur.Animation.Name
		}
		a.command(&components.AnimationCommandComponent{Animation: nextAnimation(name)})
	case tapJump:
		a.jump()
	case tapWave:
		if a.anim.State.Current(1) != nil {
			a.command(&components.AnimationCommandComponent{Track: 1, Empty: true, MixDuration: 0.3})
		} else {
			a.command(&components.AnimationCommandComponent{Track: 1, Animation: demo.Wave})
		}
	}
}

// jump plays the jump now and queues whatever track 0 was playing after it.
func (a *App) jump() {
	back := demo.Idle
	if cur := a.anim.State.Current(0); cur != nil && cur.Animation.Name != demo.Jump {
		back = cur.Animation.Name
	}
	if _, err := a.config.Play(a.anim.State, 0, demo.Jump); err != nil {
		a.status = err.Error()
		return
	}
	if _, err := a.config.Queue(a.anim.State, 0, back, 0); err != nil {
		a.status = err.Error()
	}
}

func (a *App) toggleSlowMotion() {
	from := float32(a.anim.State.TimeScale)
	to := float32(1)
	if !a.slow {
		to = slowMotion
	}
	a.slow = !a.slow
	a.timeScale = gween.New(from, to, tweenDuration, ease.InOutQuad)
}

// Update advances the viewer one tick.
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// The window manager needs a few frames before the size sticks.
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.handleInput()

	dt := 1.0 / float64(ebiten.TPS())
	if a.timeScale != nil {
		v, done := a.timeScale.Update(float32(dt))
		a.anim.State.TimeScale = float64(v)
		if done {
			a.timeScale = nil
		}
	}

	a.system.Update(dt)

	if cmd, ok := ecs.GetComponent[*components.AnimationCommandComponent](a.entityManager, a.entity); ok && cmd.Processed {
		if cmd.Err != nil {
			a.status = cmd.Err.Error()
		}
		ecs.RemoveComponent[*components.AnimationCommandComponent](a.entityManager, a.entity)
	}
	for _, ev := range a.anim.DrainEvents() {
		a.pushEvent(ev)
	}
	return nil
}

func (a *App) pushEvent(ev components.AnimationEvent) {
	line := fmt.Sprintf("[%d] %s %s", ev.Track, ev.Animation, ev.Kind)
	if ev.Event != nil {
		line += " " + ev.Event.Data.Name
	}
	a.events = append(a.events, line)
	if len(a.events) > maxEventLines {
		a.events = a.events[len(a.events)-maxEventLines:]
	}
}

// Draw renders the skeleton and the status text.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 32, B: 40, A: 255})
	drawGround(screen)
	drawSkeleton(screen, a.anim.Skeleton)
	drawStatus(screen, a)
}

// DrawFinalScreen letterboxes the logical screen with black bars.
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout returns the logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// State returns the animation state being viewed.
func (a *App) State() *animstate.AnimationState {
	return a.anim.State
}

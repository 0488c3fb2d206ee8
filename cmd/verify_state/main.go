// verify_state runs the demo rig headless through a few playback scenarios
// and prints a PASS/FAIL report. It exits with status 1 if any check fails.
//
//	go run ./cmd/verify_state -config data/mix.yaml
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/decker502/skelanim/pkg/animstate"
	"github.com/decker502/skelanim/pkg/components"
	"github.com/decker502/skelanim/pkg/config"
	"github.com/decker502/skelanim/pkg/demo"
	"github.com/decker502/skelanim/pkg/ecs"
	"github.com/decker502/skelanim/pkg/skeleton"
	"github.com/decker502/skelanim/pkg/snapshot"
	"github.com/decker502/skelanim/pkg/systems"
)

const frame = 1.0 / 60

// maxStep is the largest rotation change per frame, in degrees, that still
// counts as continuous motion.
const maxStep = 10.0

type report struct {
	name    string
	passed  bool
	message string
}

var reports []report

func addReport(name string, passed bool, message string) {
	reports = append(reports, report{name: name, passed: passed, message: message})
	ev := log.Info()
	status := "PASS"
	if !passed {
		ev = log.Error()
		status = "FAIL"
	}
	ev.Str("status", status).Str("check", name).Msg(message)
}

// rig is one entity driven by its own AnimationSystem.
type rig struct {
	em     *ecs.EntityManager
	system *systems.AnimationSystem
	id     ecs.EntityID
	anim   *components.SkeletonAnimationComponent
}

func newRig(cfg *config.Manager) (*rig, error) {
	data, err := cfg.StateData(demo.Library())
	if err != nil {
		return nil, err
	}
	state, err := animstate.New(data)
	if err != nil {
		return nil, err
	}
	skel, err := skeleton.New(demo.Skeleton())
	if err != nil {
		return nil, err
	}
	anim, err := components.NewSkeletonAnimationComponent(skel, state)
	if err != nil {
		return nil, err
	}
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, anim)
	return &rig{em: em, system: systems.NewAnimationSystem(em, cfg), id: id, anim: anim}, nil
}

func (r *rig) command(cmd *components.AnimationCommandComponent) {
	ecs.AddComponent(r.em, r.id, cmd)
}

// step advances n frames and returns the first command error, if any.
func (r *rig) step(n int) error {
	for i := 0; i < n; i++ {
		r.system.Update(frame)
		if cmd, ok := ecs.GetComponent[*components.AnimationCommandComponent](r.em, r.id); ok && cmd.Processed {
			ecs.RemoveComponent[*components.AnimationCommandComponent](r.em, r.id)
			if cmd.Err != nil {
				return cmd.Err
			}
		}
	}
	return nil
}

func (r *rig) rotation(bone int) float64 {
	return r.anim.Skeleton.Bones[bone].Rotation
}

func (r *rig) sawEvent(kind components.AnimationEventKind, animationName, eventName string) bool {
	for _, ev := range r.anim.Events {
		if ev.Kind != kind || ev.Animation != animationName {
			continue
		}
		if eventName == "" || (ev.Event != nil && ev.Event.Data.Name == eventName) {
			return true
		}
	}
	return false
}

func verifyCrossfade(cfg *config.Manager) {
	r, err := newRig(cfg)
	if err != nil {
		addReport("crossfade", false, err.Error())
		return
	}
	r.command(&components.AnimationCommandComponent{Animation: demo.Walk})
	if err := r.step(30); err != nil {
		addReport("crossfade", false, err.Error())
		return
	}
	r.command(&components.AnimationCommandComponent{Animation: demo.Run})

	worst := 0.0
	last := r.rotation(demo.LeftThigh)
	for i := 0; i < 30; i++ {
		if err := r.step(1); err != nil {
			addReport("crossfade", false, err.Error())
			return
		}
		cur := r.rotation(demo.LeftThigh)
		worst = math.Max(worst, math.Abs(cur-last))
		last = cur
	}
	addReport("crossfade", worst < maxStep, fmt.Sprintf("largest thigh step %.2f deg", worst))
}

func verifyQueue(cfg *config.Manager) {
	r, err := newRig(cfg)
	if err != nil {
		addReport("queue", false, err.Error())
		return
	}
	r.command(&components.AnimationCommandComponent{Animation: demo.Jump})
	if err := r.step(1); err != nil {
		addReport("queue", false, err.Error())
		return
	}
	r.command(&components.AnimationCommandComponent{Animation: demo.Idle, Queue: true})
	if err := r.step(90); err != nil {
		addReport("queue", false, err.Error())
		return
	}

	cur := r.anim.State.Current(0)
	switch {
	case cur == nil || cur.Animation.Name != demo.Idle:
		addReport("queue", false, "idle is not current after the jump")
	case !r.sawEvent(components.AnimationKeyed, demo.Jump, "takeoff"):
		addReport("queue", false, "takeoff event missing")
	case !r.sawEvent(components.AnimationEnded, demo.Jump, ""):
		addReport("queue", false, "jump never ended")
	default:
		addReport("queue", true, "jump then idle")
	}
}

func verifyEmptyTrack(cfg *config.Manager) {
	r, err := newRig(cfg)
	if err != nil {
		addReport("empty track", false, err.Error())
		return
	}
	r.command(&components.AnimationCommandComponent{Animation: demo.Walk})
	err = r.step(1)
	if err == nil {
		r.command(&components.AnimationCommandComponent{Track: 1, Animation: demo.Wave})
		err = r.step(30)
	}
	if err == nil {
		r.command(&components.AnimationCommandComponent{Track: 1, Empty: true, MixDuration: 0.3})
		err = r.step(30)
	}
	if err != nil {
		addReport("empty track", false, err.Error())
		return
	}

	if r.anim.State.Current(1) != nil {
		addReport("empty track", false, "track 1 still has an entry")
		return
	}
	addReport("empty track", r.sawEvent(components.AnimationEnded, demo.Wave, ""), "wave mixed out and track 1 cleared")
}

func verifySnapshot(cfg *config.Manager) {
	a, err := newRig(cfg)
	if err != nil {
		addReport("snapshot", false, err.Error())
		return
	}
	a.command(&components.AnimationCommandComponent{Animation: demo.Walk})
	err = a.step(1)
	if err == nil {
		a.command(&components.AnimationCommandComponent{Animation: demo.Run, Queue: true})
		err = a.step(20)
	}
	if err != nil {
		addReport("snapshot", false, err.Error())
		return
	}

	b, err := newRig(cfg)
	if err != nil {
		addReport("snapshot", false, err.Error())
		return
	}
	if err := snapshot.Restore(b.anim.State, snapshot.Capture(a.anim.State)); err != nil {
		addReport("snapshot", false, err.Error())
		return
	}

	worst := 0.0
	for i := 0; i < 60; i++ {
		_ = a.step(1)
		_ = b.step(1)
		for bone := range a.anim.Skeleton.Bones {
			worst = math.Max(worst, math.Abs(a.rotation(bone)-b.rotation(bone)))
		}
	}
	addReport("snapshot", worst < 1e-6, fmt.Sprintf("largest rotation difference %.2g deg", worst))
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	configPath := flag.String("config", "data/mix.yaml", "mix configuration file or directory")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("cannot load mix config")
	}

	verifyCrossfade(cfg)
	verifyQueue(cfg)
	verifyEmptyTrack(cfg)
	verifySnapshot(cfg)

	passed := 0
	for _, r := range reports {
		if r.passed {
			passed++
		}
	}
	log.Info().Int("passed", passed).Int("failed", len(reports)-passed).Msg("verification finished")
	if passed != len(reports) {
		os.Exit(1)
	}
}

package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/decker502/skelanim/pkg/app"
	"github.com/decker502/skelanim/pkg/embedded"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	mixConfig := flag.String("config", "data/mix.yaml", "mix configuration inside the embedded data directory")
	flag.Parse()

	app.SetupLogging(*verbose)
	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{
		MixConfig: *mixConfig,
		AppName:   "skelanim",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("viewer setup failed")
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("skelanim viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

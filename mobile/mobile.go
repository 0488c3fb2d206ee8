//go:build mobile

// Package mobile is the ebitenmobile binding of the viewer.
//
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.skelanim -o build/android/skelanim.aar ./mobile
//	cp -r data mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/Skelanim.xcframework ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/rs/zerolog/log"

	"github.com/decker502/skelanim/pkg/app"
	"github.com/decker502/skelanim/pkg/embedded"
)

func init() {
	app.SetupLogging(false)
	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{AppName: "skelanim"})
	if err != nil {
		log.Fatal().Err(err).Msg("viewer setup failed")
	}
	mobile.SetGame(viewer)
}

// Dummy gives ebitenmobile an exported symbol to bind.
func Dummy() {}

package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlays")
	watch := flag.Bool("watch", false, "hot reload prefabs/ on change")
	configPath := flag.String("config", "", "campfire spec yaml (defaults to prefabs/campfire.yaml)")
	flag.Parse()

	game, err := NewGame(Options{
		ConfigPath: *configPath,
		Debug:      *debug,
		Watch:      *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.width*2, game.height*2)
	ebiten.SetWindowTitle("campfire")

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

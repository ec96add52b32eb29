//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ekg/itsliquid/internal/app"
	"github.com/ekg/itsliquid/internal/core"
	_ "github.com/ekg/itsliquid/internal/sims/fluid"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	sim := factory(map[string]string{
		"w":    strconv.Itoa(cfg.Width),
		"h":    strconv.Itoa(cfg.Height),
		"seed": strconv.FormatInt(cfg.Seed, 10),
	})
	fieldSim, ok := sim.(app.Simulation)
	if !ok {
		log.Fatalf("sim %q does not expose its fields for rendering", cfg.Sim)
	}
	fieldSim.Reset(cfg.Seed)

	game := app.New(fieldSim, cfg.Scale, cfg.Seed)
	size := fieldSim.Size()

	ebiten.SetWindowTitle("itsliquid — " + fieldSim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+220, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

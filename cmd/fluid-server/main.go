// Command fluid-server runs the solver headless and streams frames to
// websocket clients, which may inject dye and forces remotely.
package main

import (
	"flag"
	"log"

	"github.com/ekg/itsliquid/internal/server"
	"github.com/ekg/itsliquid/internal/sims/fluid"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	width := flag.Int("w", 256, "grid width in cells")
	height := flag.Int("h", 256, "grid height in cells")
	tps := flag.Int("tps", 30, "simulation ticks (and frames) per second")
	seed := flag.Int64("seed", 1337, "initial-conditions seed")
	flag.Parse()

	cfg := fluid.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed

	sim, err := fluid.NewWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sim.Reset(*seed)

	log.Fatal(server.New(sim, *tps).Run(*addr))
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/vusic/internal/audio"
	"github.com/iburimskiy/vusic/internal/config"
	"github.com/iburimskiy/vusic/internal/engine"
	"github.com/iburimskiy/vusic/internal/game"
	"github.com/iburimskiy/vusic/internal/logging"
	"github.com/iburimskiy/vusic/internal/shape"
)

var (
	debugFlag     = flag.Bool("debug", false, "write logs to logs/vusic.log")
	shapeFlag     = flag.String("shape", "", "initial shape (sphere, cube, pyramid, flower, dna, spiral, shell, mobius, tree)")
	fileFlag      = flag.String("file", "", "audio file to play on start")
	seedFlag      = flag.Uint64("seed", 1, "random seed for shapes, noise and jitter")
	fixedStepFlag = flag.Bool("fixed-step", false, "advance transitions per frame at 60 Hz instead of by elapsed time")
	blendFlag     = flag.Bool("blend-snapshot", false, "start an interrupted morph from the displayed blend")
)

func main() {
	flag.Parse()

	if f := logging.Setup(*debugFlag); f != nil {
		defer f.Close()
	}

	s := config.LoadSettings()
	if *shapeFlag != "" {
		k, err := shape.ParseKind(*shapeFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		s.VisualShape = k
	}

	opts := engine.DefaultOptions()
	opts.Seed = *seedFlag
	opts.BlendSnapshot = *blendFlag
	if *fixedStepFlag {
		opts.FixedTickRate = engine.AssumedFrameRate
	}

	e, err := engine.New(config.ParticleCount, s, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	player := audio.NewPlayer(config.FFTSize)
	defer player.Close()

	g := game.New(e, player, s)
	if *fileFlag != "" {
		// the HUD shows the failure, keep running
		_ = g.LoadFile(*fileFlag)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("vusic - Open File to play, Space: Play/Pause, N/P: Shape, Esc/Q: Quit")
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("run: %v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

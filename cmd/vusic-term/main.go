package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/vusic/internal/audio"
	"github.com/iburimskiy/vusic/internal/config"
	"github.com/iburimskiy/vusic/internal/engine"
	"github.com/iburimskiy/vusic/internal/logging"
	"github.com/iburimskiy/vusic/internal/shape"
	"github.com/iburimskiy/vusic/internal/term"
)

// The terminal cannot draw the full cloud at useful density.
const termParticles = 1500

var (
	debugFlag = flag.Bool("debug", false, "write logs to logs/vusic.log")
	shapeFlag = flag.String("shape", "", "initial shape")
	seedFlag  = flag.Uint64("seed", 1, "random seed")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [audio files...]\n", os.Args[0])
		flag.PrintDefaults()
	}
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
	opts.DustCount = config.DustCount / 4
	e, err := engine.New(termParticles, s, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	player := audio.NewPlayer(config.FFTSize)
	defer player.Close()
	if paths := flag.Args(); len(paths) > 0 {
		if err := player.AddTracks(paths...); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		log.Printf("queued %d tracks", len(paths))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// restore the terminal before reporting a crash
	defer func() {
		r := recover()
		screen.Fini()
		if r != nil {
			fmt.Fprintf(os.Stderr, "vusic-term crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	term.New(screen, e, player, s).Run()
}

// Package main provides a headless verification tool for the slot renderer's
// move / flip / lift animation.
//
// Usage:
//
//	go run ./cmd/verify_slot_animation [flags]
//
// Flags:
//
//	--cards <list>     Pile contents, bottom to top (default: "AS 2H 3D")
//	--exposed <n>      Exposed card count (default: 1)
//	--dx, --dy <px>    Per-card offset (default: 0, 18)
//	--x, --y <px>      Start position of the moving cards (default: 100, 50)
//	--count <n>        Number of moving cards (default: 1)
//	--face-down        Cards start face down (forces a flip for face-up cards)
//	--fps <n>          Frame rate used to step the timeline (default: 60)
//	--every <n>        Print every n-th frame (default: 3)
//	--dump             Dump the scene graph at start and end
//	--verbose          Enable renderer logging
//
// Purpose:
//   - Inspect per-frame position, Y rotation, depth and visible face of each card
//   - Verify that the batch is torn down exactly when the timeline completes
//   - Check that texture cache references are balanced afterwards
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gonewx/solitaire/pkg/actors"
	"github.com/gonewx/solitaire/pkg/cache"
	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/config"
	"github.com/gonewx/solitaire/pkg/scene"
	"github.com/gonewx/solitaire/pkg/slot"
)

var (
	cardsFlag    = flag.String("cards", "AS 2H 3D", "Pile contents, bottom to top")
	exposedFlag  = flag.Int("exposed", 1, "Exposed card count")
	dxFlag       = flag.Int("dx", 0, "Horizontal per-card offset")
	dyFlag       = flag.Int("dy", 18, "Vertical per-card offset")
	xFlag        = flag.Int("x", 100, "Start X of the moving cards")
	yFlag        = flag.Int("y", 50, "Start Y of the moving cards")
	countFlag    = flag.Int("count", 1, "Number of moving cards")
	faceDownFlag = flag.Bool("face-down", true, "Moving cards start face down")
	fpsFlag      = flag.Int("fps", 60, "Frames per second")
	everyFlag    = flag.Int("every", 3, "Print every n-th frame")
	dumpFlag     = flag.Bool("dump", false, "Dump the scene graph")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}
	if err := run(); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cards, err := card.ParseList(*cardsFlag)
	if err != nil {
		return err
	}
	pile := &card.Slot{Cards: cards, Exposed: *exposedFlag, PixelDX: *dxFlag, PixelDY: *dyFlag}
	if err := pile.Validate(); err != nil {
		return err
	}

	theme := config.DefaultThemeConfig()
	cardCache, err := cache.NewCardCache(theme)
	if err != nil {
		return err
	}
	defer cardCache.Unref()

	stage := scene.NewStage(float64(theme.Table.Width), float64(theme.Table.Height))
	r, err := slot.New(cardCache, pile)
	if err != nil {
		return err
	}
	defer r.Dispose()
	if err := stage.Add(r); err != nil {
		return err
	}

	starts := make([]slot.AnimStart, *countFlag)
	for i := range starts {
		starts[i] = slot.AnimStart{X: *xFlag, Y: *yFlag + i*(*dyFlag), FaceDown: *faceDownFlag}
	}
	if err := r.SetAnimations(starts); err != nil {
		return err
	}

	fmt.Printf("pile: %v exposed=%d offset=(%d,%d)\n", cards, pile.Exposed, pile.PixelDX, pile.PixelDY)
	fmt.Printf("animations: %d  cache refs: %d\n", r.AnimationCount(), cardCache.RefCount())
	if *dumpFlag {
		fmt.Print(scene.Dump(stage))
	}

	fps := *fpsFlag
	if fps <= 0 {
		fps = 60
	}
	dt := time.Second / time.Duration(fps)
	every := *everyFlag
	if every <= 0 {
		every = 1
	}

	fmt.Printf("%5s %8s  %-4s %16s %8s %8s %6s\n", "frame", "progress", "card", "position", "angle", "depth", "face")
	frame := 0
	for r.Animating() {
		if frame%every == 0 {
			printFrame(frame, r)
		}
		r.Update(dt)
		frame++
		if frame > fps*10 {
			return fmt.Errorf("animation did not finish after %d frames", frame)
		}
	}

	fmt.Printf("finished after %d frames (%s)\n", frame, time.Duration(frame)*dt)
	fmt.Printf("animations: %d  cache refs: %d  redraws: %d\n", r.AnimationCount(), cardCache.RefCount(), stage.TakeRedraw())
	if *dumpFlag {
		fmt.Print(scene.Dump(stage))
	}
	if cardCache.RefCount() != 2 {
		return fmt.Errorf("unbalanced cache references: %d", cardCache.RefCount())
	}
	fmt.Println("✅ batch torn down, references balanced")
	return nil
}

func printFrame(frame int, r *slot.Renderer) {
	r.ForEachChild(func(n scene.Node) {
		a, ok := n.(*actors.CardActor)
		if !ok {
			return
		}
		x, y := a.Position()
		angle, _, _ := a.RotationY()
		face := "front"
		if a.ShowingBack() != a.Card().FaceDown() {
			face = "back"
		}
		fmt.Printf("%5d %8.3f  %-4s %7.1f,%7.1f %8.1f %8.1f %6s\n",
			frame, r.Progress(), a.Card(), x, y, angle, a.Depth(), face)
	})
}

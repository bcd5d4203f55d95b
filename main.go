package main

import (
	"flag"
	"log"

	"github.com/gonewx/solitaire/pkg/app"
	"github.com/gonewx/solitaire/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
	themeFlag    = flag.String("theme", "", "Theme config path (default: embedded data/theme.yaml)")
	scenarioFlag = flag.String("scenario", "", "Scenario script path (default: embedded data/scenarios/klondike.tengo)")
	watchFlag    = flag.Bool("watch", false, "Reload theme / scenario when the files change")
	loopFlag     = flag.Bool("loop", true, "Replay the scenario when it finishes")
	debugFlag    = flag.Bool("debug", false, "Show debug overlay")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:      *verboseFlag,
		ThemePath:    *themeFlag,
		ScenarioPath: *scenarioFlag,
		Watch:        *watchFlag,
		Loop:         *loopFlag,
		ShowDebug:    *debugFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer game.Close()

	w, h := game.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Solitaire - slot animation demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

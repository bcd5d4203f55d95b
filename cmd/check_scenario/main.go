// check_scenario 检查主题配置和演示脚本，并打印脚本编译出的步骤
//
// 用法:
//
//	go run ./cmd/check_scenario [--theme data/theme.yaml] [--scenario data/scenarios/klondike.tengo]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/solitaire/internal/scenario"
	"github.com/gonewx/solitaire/pkg/config"
)

func main() {
	themePath := flag.String("theme", config.DefaultThemePath, "theme config path")
	scenarioPath := flag.String("scenario", scenario.DefaultPath, "scenario script path")
	flag.Parse()

	theme, err := config.LoadThemeConfig(*themePath)
	if err != nil {
		fmt.Printf("❌ 主题配置错误: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 主题配置正确: 牌面 %dx%d, 牌桌 %dx%d\n",
		theme.CardWidth, theme.CardHeight, theme.Table.Width, theme.Table.Height)

	steps, err := scenario.Load(*scenarioPath)
	if err != nil {
		fmt.Printf("❌ 脚本错误: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 脚本编译成功: %d 个步骤\n", len(steps))
	for i, s := range steps {
		fmt.Printf("  %3d  %s\n", i+1, s)
	}
}

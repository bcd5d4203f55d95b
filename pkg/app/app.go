// Package app 提供演示程序的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/gonewx/solitaire/internal/scenario"
	"github.com/gonewx/solitaire/pkg/cache"
	"github.com/gonewx/solitaire/pkg/config"
	"github.com/gonewx/solitaire/pkg/table"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ThemePath 主题配置路径，为空时使用内置主题
	ThemePath string
	// ScenarioPath 演示脚本路径，为空时使用内置脚本
	ScenarioPath string
	// Watch 监视主题和脚本所在目录，文件变化时热重载
	Watch bool
	// Loop 脚本结束后从头重放
	Loop bool
	// ShowDebug 在左上角显示调试信息
	ShowDebug bool
}

// App 演示程序，实现 ebiten.Game 接口
type App struct {
	cfg     Config
	theme   *config.ThemeConfig
	palette config.Palette
	cache   *cache.CardCache
	table   *table.Table
	watcher *config.Watcher

	lastErr                  error
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化演示程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.ThemePath == "" {
		cfg.ThemePath = config.DefaultThemePath
	}
	if cfg.ScenarioPath == "" {
		cfg.ScenarioPath = scenario.DefaultPath
	}

	theme, err := config.LoadThemeConfig(cfg.ThemePath)
	if err != nil {
		return nil, fmt.Errorf("主题加载失败: %w", err)
	}
	palette, err := theme.Palette()
	if err != nil {
		return nil, fmt.Errorf("主题颜色解析失败: %w", err)
	}
	log.Printf("[Config] 加载主题: %s (%dx%d)", cfg.ThemePath, theme.CardWidth, theme.CardHeight)

	cardCache, err := cache.NewCardCache(theme)
	if err != nil {
		return nil, fmt.Errorf("纹理缓存创建失败: %w", err)
	}

	tbl, err := table.New(cardCache, theme)
	if err != nil {
		cardCache.Unref()
		return nil, fmt.Errorf("牌桌创建失败: %w", err)
	}
	tbl.Loop = cfg.Loop

	steps, err := scenario.Load(cfg.ScenarioPath)
	if err != nil {
		tbl.Dispose()
		cardCache.Unref()
		return nil, fmt.Errorf("演示脚本加载失败: %w", err)
	}
	tbl.Play(steps)

	a := &App{
		cfg:     cfg,
		theme:   theme,
		palette: palette,
		cache:   cardCache,
		table:   tbl,
	}

	if cfg.Watch {
		dirs := uniqueDirs(cfg.ThemePath, cfg.ScenarioPath)
		w, err := config.NewWatcher(dirs...)
		if err != nil {
			// 热重载只是开发辅助，失败时继续运行
			log.Printf("[App] 无法监视 %v: %v", dirs, err)
		} else {
			a.watcher = w
			log.Printf("[App] 监视目录: %v", dirs)
		}
	}

	return a, nil
}

func uniqueDirs(paths ...string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		d := filepath.Dir(p)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Update 更新演示逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.theme.Table.Width, a.theme.Table.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.pollWatcher()

	dt := time.Second / time.Duration(ebiten.TPS())
	if err := a.table.Update(dt); err != nil {
		// 脚本错误不终止程序，停在出错的位置等待热重载
		if a.lastErr == nil || a.lastErr.Error() != err.Error() {
			log.Printf("[App] %v", err)
		}
		a.lastErr = err
	}
	return nil
}

func (a *App) pollWatcher() {
	if a.watcher == nil {
		return
	}
	select {
	case err, ok := <-a.watcher.Errors:
		if ok {
			log.Printf("[App] watcher: %v", err)
		}
	default:
	}

	for _, name := range a.watcher.Poll() {
		switch filepath.Ext(name) {
		case ".tengo":
			if sameFile(name, a.cfg.ScenarioPath) {
				a.ReloadScenario()
			}
		default:
			if sameFile(name, a.cfg.ThemePath) {
				a.ReloadTheme()
			}
		}
	}
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// ReloadTheme 重新读取主题；失败时保留当前主题
func (a *App) ReloadTheme() {
	theme, err := config.LoadThemeConfig(a.cfg.ThemePath)
	if err != nil {
		log.Printf("[App] 主题重载失败: %v", err)
		return
	}
	palette, err := theme.Palette()
	if err != nil {
		log.Printf("[App] 主题重载失败: %v", err)
		return
	}
	if err := a.cache.SetTheme(theme); err != nil {
		log.Printf("[App] 主题重载失败: %v", err)
		return
	}
	a.theme = theme
	a.palette = palette
	a.table.SetTheme(theme)
	log.Printf("[App] 主题已重载: %s", a.cfg.ThemePath)
}

// ReloadScenario 重新编译脚本并从头播放；失败时继续播放当前脚本
func (a *App) ReloadScenario() {
	steps, err := scenario.Load(a.cfg.ScenarioPath)
	if err != nil {
		log.Printf("[App] 脚本重载失败: %v", err)
		return
	}
	a.lastErr = nil
	a.table.Play(steps)
	log.Printf("[App] 脚本已重载: %s (%d steps)", a.cfg.ScenarioPath, len(steps))
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.palette.Table)
	a.table.Draw(screen)

	if a.cfg.ShowDebug {
		msg := fmt.Sprintf("TPS: %.0f  animating: %t", ebiten.ActualTPS(), a.table.Animating())
		if a.lastErr != nil {
			msg += "\n" + a.lastErr.Error()
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.theme.Table.Width, a.theme.Table.Height
}

// WindowSize 主题中配置的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.theme.Table.Width, a.theme.Table.Height
}

// Table 牌桌
func (a *App) Table() *table.Table {
	return a.table
}

// Close 停止监视并释放所有纹理
func (a *App) Close() error {
	var err error
	if a.watcher != nil {
		err = a.watcher.Close()
		a.watcher = nil
	}
	if a.table != nil {
		a.table.Dispose()
		a.table = nil
		a.cache.Unref()
	}
	return err
}

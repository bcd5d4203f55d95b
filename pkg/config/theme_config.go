package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gonewx/solitaire/pkg/embedded"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// DefaultThemePath 默认主题配置（嵌入）
const DefaultThemePath = "data/theme.yaml"

// ThemeConfig 牌面主题与牌桌布局配置
//
// 配置文件位置: data/theme.yaml
type ThemeConfig struct {
	// CardWidth / CardHeight 牌面纹理尺寸（像素）
	CardWidth  int `yaml:"card_width"`
	CardHeight int `yaml:"card_height"`

	// CornerRadius 程序绘制牌面时的圆角半径
	CornerRadius float64 `yaml:"corner_radius"`

	// CardSheet 可选的整张牌面贴图（13 列 × 5 行），为空时程序绘制牌面
	// 行顺序：梅花、方块、红桃、黑桃、牌背（第 5 行第 1 格为牌背，第 2 格为空槽）
	CardSheet string `yaml:"card_sheet,omitempty"`

	// Perspective 观察者到牌桌平面的距离（像素），深度动画按 d/(d-z) 缩放
	Perspective float64 `yaml:"perspective"`

	// Colors 颜色配置，支持 "#rrggbb" / "#rrggbbaa" 或 colornames 中的名称
	Colors ColorConfig `yaml:"colors"`

	// Table 牌桌布局
	Table TableConfig `yaml:"table"`
}

// ColorConfig 颜色名称配置
type ColorConfig struct {
	Table     string `yaml:"table"`
	Face      string `yaml:"face"`
	Back      string `yaml:"back"`
	BackInner string `yaml:"back_inner"`
	Red       string `yaml:"red"`
	Black     string `yaml:"black"`
	Border    string `yaml:"border"`
	Slot      string `yaml:"slot"`
	Highlight string `yaml:"highlight"`
}

// TableConfig 牌桌布局配置
type TableConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Margin  int `yaml:"margin"`
	Spacing int `yaml:"spacing"`

	// FanDX / FanDY 列（tableau）中相邻可见牌的错位
	FanDX int `yaml:"fan_dx"`
	FanDY int `yaml:"fan_dy"`
}

// Palette 解析后的颜色
type Palette struct {
	Table     color.RGBA
	Face      color.RGBA
	Back      color.RGBA
	BackInner color.RGBA
	Red       color.RGBA
	Black     color.RGBA
	Border    color.RGBA
	Slot      color.RGBA
	Highlight color.RGBA
}

// DefaultThemeConfig 返回内置默认值
func DefaultThemeConfig() *ThemeConfig {
	return &ThemeConfig{
		CardWidth:    71,
		CardHeight:   96,
		CornerRadius: 6,
		Perspective:  520,
		Colors: ColorConfig{
			Table:     "darkgreen",
			Face:      "ivory",
			Back:      "darkslateblue",
			BackInner: "slateblue",
			Red:       "firebrick",
			Black:     "black",
			Border:    "dimgray",
			Slot:      "seagreen",
			Highlight: "#8080ffff",
		},
		Table: TableConfig{
			Width:   800,
			Height:  600,
			Margin:  16,
			Spacing: 16,
			FanDX:   0,
			FanDY:   18,
		},
	}
}

// LoadThemeConfig 加载主题配置
//
// 参数:
//   - path: 配置文件路径（磁盘优先，"data/" 路径回退到嵌入文件）
//
// 返回:
//   - *ThemeConfig: 应用默认值并通过验证的配置
//   - error: 读取、解析或验证失败
func LoadThemeConfig(path string) (*ThemeConfig, error) {
	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme config: %w", err)
	}
	cfg, err := ParseThemeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("theme config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseThemeConfig 解析 YAML，缺省字段使用默认值
func ParseThemeConfig(data []byte) (*ThemeConfig, error) {
	cfg := DefaultThemeConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse theme config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 牌面尺寸为正
//   - 透视距离大于牌高（否则抬起到最高点时缩放发散）
//   - 所有颜色都能解析
func (c *ThemeConfig) Validate() error {
	if c.CardWidth <= 0 || c.CardHeight <= 0 {
		return fmt.Errorf("card size must be positive, got %dx%d", c.CardWidth, c.CardHeight)
	}
	if c.CornerRadius < 0 {
		return fmt.Errorf("corner radius must not be negative, got %.1f", c.CornerRadius)
	}
	if c.Perspective <= float64(c.CardHeight) {
		return fmt.Errorf("perspective (%.1f) must be greater than card height (%d)", c.Perspective, c.CardHeight)
	}
	if c.Table.Width <= 0 || c.Table.Height <= 0 {
		return fmt.Errorf("table size must be positive, got %dx%d", c.Table.Width, c.Table.Height)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Palette 解析全部颜色
func (c *ThemeConfig) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		name  string
		value string
		dst   *color.RGBA
	}{
		{"table", c.Colors.Table, &p.Table},
		{"face", c.Colors.Face, &p.Face},
		{"back", c.Colors.Back, &p.Back},
		{"back_inner", c.Colors.BackInner, &p.BackInner},
		{"red", c.Colors.Red, &p.Red},
		{"black", c.Colors.Black, &p.Black},
		{"border", c.Colors.Border, &p.Border},
		{"slot", c.Colors.Slot, &p.Slot},
		{"highlight", c.Colors.Highlight, &p.Highlight},
	}
	for _, f := range fields {
		clr, err := ParseColor(f.value)
		if err != nil {
			return Palette{}, fmt.Errorf("colors.%s: %w", f.name, err)
		}
		*f.dst = clr
	}
	return p, nil
}

// ParseColor 解析 "#rrggbb"、"#rrggbbaa" 或 colornames 中的颜色名
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}

	if clr, ok := colornames.Map[s]; ok {
		return clr, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color name %q", s)
}

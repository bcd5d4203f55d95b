// Package cache 提供牌面纹理缓存。
//
// CardCache 被多个牌堆渲染器和卡牌 actor 共享，使用显式的引用计数管理生命周期：
// 创建者持有第一个引用，每个使用者在构造时 Ref、销毁时 Unref，
// 计数归零时释放全部 GPU 纹理。
package cache

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"log"

	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/config"
	"github.com/gonewx/solitaire/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 牌面贴图布局：13 列 × 5 行
const (
	sheetColumns = 13
	sheetRows    = 5
	sheetBackRow = 4
	sheetBackCol = 0
	sheetSlotCol = 1
)

type textureKey struct {
	code        card.Card
	back        bool
	highlighted bool
}

// CardCache 牌面与空槽纹理缓存
//
// 纹理在第一次请求时生成，按 (牌, 是否高亮) 缓存。背面朝上的牌共用牌背纹理。
//
// Thread Safety Note:
// 与游戏循环一样是单线程的，不做任何加锁。
type CardCache struct {
	theme   *config.ThemeConfig
	palette config.Palette

	refs     int
	released bool

	sheet      *ebiten.Image
	cards      map[textureKey]*ebiten.Image
	slots      [2]*ebiten.Image
	fontSource *text.GoTextFaceSource
}

// NewCardCache 按主题创建缓存，返回时引用计数为 1（归调用者所有）
//
// 主题指定了 CardSheet 时加载贴图；否则程序绘制牌面。
func NewCardCache(theme *config.ThemeConfig) (*CardCache, error) {
	if theme == nil {
		theme = config.DefaultThemeConfig()
	}
	c := &CardCache{
		refs:  1,
		cards: make(map[textureKey]*ebiten.Image),
	}
	if err := c.SetTheme(theme); err != nil {
		return nil, err
	}
	return c, nil
}

// SetTheme 切换主题并丢弃已生成的纹理（热重载）
func (c *CardCache) SetTheme(theme *config.ThemeConfig) error {
	palette, err := theme.Palette()
	if err != nil {
		return fmt.Errorf("card cache theme: %w", err)
	}

	var sheet *ebiten.Image
	if theme.CardSheet != "" {
		sheet, err = loadSheet(theme.CardSheet)
		if err != nil {
			return err
		}
	}

	c.Invalidate()
	if c.sheet != nil {
		c.sheet.Deallocate()
	}
	c.theme = theme
	c.palette = palette
	c.sheet = sheet
	log.Printf("[CardCache] theme applied: card %dx%d, sheet=%q", theme.CardWidth, theme.CardHeight, theme.CardSheet)
	return nil
}

// Theme 当前主题
func (c *CardCache) Theme() *config.ThemeConfig {
	return c.theme
}

// Ref 增加一个引用
func (c *CardCache) Ref() {
	if c.released {
		log.Printf("[CardCache] CRITICAL: Ref on released cache")
		return
	}
	c.refs++
}

// Unref 释放一个引用，归零时释放全部纹理
func (c *CardCache) Unref() {
	if c.released {
		log.Printf("[CardCache] CRITICAL: Unref on released cache")
		return
	}
	c.refs--
	if c.refs > 0 {
		return
	}
	c.Invalidate()
	if c.sheet != nil {
		c.sheet.Deallocate()
		c.sheet = nil
	}
	c.released = true
	log.Printf("[CardCache] released")
}

// RefCount 当前引用数
func (c *CardCache) RefCount() int {
	return c.refs
}

// Released 引用计数是否已归零
func (c *CardCache) Released() bool {
	return c.released
}

// Invalidate 丢弃所有已生成的纹理，下次请求时重新生成
func (c *CardCache) Invalidate() {
	for k, img := range c.cards {
		img.Deallocate()
		delete(c.cards, k)
	}
	for i, img := range c.slots {
		if img != nil {
			img.Deallocate()
			c.slots[i] = nil
		}
	}
}

// TextureCount 已生成的纹理数量
func (c *CardCache) TextureCount() int {
	n := len(c.cards)
	for _, img := range c.slots {
		if img != nil {
			n++
		}
	}
	return n
}

// CardSize 纹理的固有尺寸
func (c *CardCache) CardSize() (w, h int) {
	if c.sheet != nil {
		b := c.sheet.Bounds()
		return b.Dx() / sheetColumns, b.Dy() / sheetRows
	}
	return c.theme.CardWidth, c.theme.CardHeight
}

// SlotTexture 空槽纹理
func (c *CardCache) SlotTexture(highlighted bool) *ebiten.Image {
	if c.released {
		log.Printf("[CardCache] CRITICAL: SlotTexture on released cache")
		return nil
	}
	i := 0
	if highlighted {
		i = 1
	}
	if c.slots[i] != nil {
		return c.slots[i]
	}

	var img *ebiten.Image
	if highlighted {
		img = c.tinted(c.SlotTexture(false))
	} else if c.sheet != nil {
		img = c.sheetCell(sheetBackRow, sheetSlotCol)
	} else {
		img = c.drawSlot()
	}
	c.slots[i] = img
	return img
}

// CardTexture 单张牌的纹理
func (c *CardCache) CardTexture(cd card.Card, highlighted bool) *ebiten.Image {
	if c.released {
		log.Printf("[CardCache] CRITICAL: CardTexture(%s) on released cache", cd)
		return nil
	}
	key := textureKey{code: cd, highlighted: highlighted}
	if cd.FaceDown() {
		key = textureKey{back: true, highlighted: highlighted}
	}
	if img, ok := c.cards[key]; ok {
		return img
	}

	var img *ebiten.Image
	switch {
	case highlighted:
		img = c.tinted(c.CardTexture(cd, false))
	case key.back && c.sheet != nil:
		img = c.sheetCell(sheetBackRow, sheetBackCol)
	case key.back:
		img = c.drawBack()
	case c.sheet != nil:
		img = c.sheetCell(sheetRowForSuit(cd.Suit()), sheetColumnForRank(cd.Rank()))
	default:
		img = c.drawFace(cd)
	}
	c.cards[key] = img
	return img
}

func sheetRowForSuit(s card.Suit) int {
	return int(s)
}

func sheetColumnForRank(rank int) int {
	if rank < card.Ace || rank > card.King {
		return 0
	}
	return rank - 1
}

// sheetCell 从贴图中复制一格，复制后的纹理可以独立释放
func (c *CardCache) sheetCell(row, col int) *ebiten.Image {
	w, h := c.CardSize()
	r := image.Rect(col*w, row*h, (col+1)*w, (row+1)*h)
	sub := c.sheet.SubImage(r).(*ebiten.Image)

	img := ebiten.NewImage(w, h)
	img.DrawImage(sub, &ebiten.DrawImageOptions{})
	return img
}

// tinted 生成高亮变体：按高亮色做颜色乘法
func (c *CardCache) tinted(src *ebiten.Image) *ebiten.Image {
	b := src.Bounds()
	img := ebiten.NewImage(b.Dx(), b.Dy())
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(c.palette.Highlight)
	img.DrawImage(src, op)
	return img
}

// loadSheet 读取 PNG 牌面贴图
func loadSheet(path string) (*ebiten.Image, error) {
	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open card sheet %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode card sheet %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx()%sheetColumns != 0 || b.Dy()%sheetRows != 0 {
		return nil, fmt.Errorf("card sheet %s is %dx%d, not a %dx%d grid", path, b.Dx(), b.Dy(), sheetColumns, sheetRows)
	}
	return ebiten.NewImageFromImage(img), nil
}

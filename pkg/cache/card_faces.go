package cache

import (
	"bytes"
	"image/color"
	"log"
	"strconv"

	"github.com/gonewx/solitaire/pkg/card"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
)

var suitSymbols = [...]string{
	card.Clubs:    "♣",
	card.Diamonds: "♦",
	card.Hearts:   "♥",
	card.Spades:   "♠",
}

func rankLabel(rank int) string {
	switch rank {
	case card.Ace:
		return "A"
	case card.Jack:
		return "J"
	case card.Queen:
		return "Q"
	case card.King:
		return "K"
	case card.Joker:
		return "★"
	}
	return strconv.Itoa(rank)
}

// font 懒加载 Go Bold 字体
func (c *CardCache) font() *text.GoTextFaceSource {
	if c.fontSource != nil {
		return c.fontSource
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Printf("[CardCache] failed to load card font: %v", err)
		return nil
	}
	c.fontSource = src
	return src
}

// fillRoundedRect 用两个矩形加四个圆角拼出圆角矩形
func fillRoundedRect(dst *ebiten.Image, x, y, w, h, r float32, clr color.Color) {
	if r <= 0 {
		vector.DrawFilledRect(dst, x, y, w, h, clr, true)
		return
	}
	vector.DrawFilledRect(dst, x+r, y, w-2*r, h, clr, true)
	vector.DrawFilledRect(dst, x, y+r, w, h-2*r, clr, true)
	vector.DrawFilledCircle(dst, x+r, y+r, r, clr, true)
	vector.DrawFilledCircle(dst, x+w-r, y+r, r, clr, true)
	vector.DrawFilledCircle(dst, x+r, y+h-r, r, clr, true)
	vector.DrawFilledCircle(dst, x+w-r, y+h-r, r, clr, true)
}

// cardBase 牌的外框：边框色的圆角矩形内嵌一层填充色
func (c *CardCache) cardBase(fill color.Color) *ebiten.Image {
	w, h := c.theme.CardWidth, c.theme.CardHeight
	r := float32(c.theme.CornerRadius)
	img := ebiten.NewImage(w, h)
	fillRoundedRect(img, 0, 0, float32(w), float32(h), r, c.palette.Border)
	fillRoundedRect(img, 1, 1, float32(w)-2, float32(h)-2, max(r-1, 0), fill)
	return img
}

func (c *CardCache) drawText(dst *ebiten.Image, s string, size, x, y float64, align text.Align, clr color.Color) {
	src := c.font()
	if src == nil {
		return
	}
	face := &text.GoTextFace{Source: src, Size: size}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(dst, s, face, op)
}

// drawFace 程序绘制牌面：左上角点数与花色，中间大号花色
func (c *CardCache) drawFace(cd card.Card) *ebiten.Image {
	img := c.cardBase(c.palette.Face)
	w, h := float64(c.theme.CardWidth), float64(c.theme.CardHeight)

	ink := c.palette.Black
	if cd.IsRed() {
		ink = c.palette.Red
	}

	corner := h * 0.16
	c.drawText(img, rankLabel(cd.Rank()), corner, 4, 2, text.AlignStart, ink)
	if cd.Rank() == card.Joker {
		c.drawText(img, "JOKER", h*0.14, w/2, h/2-h*0.07, text.AlignCenter, ink)
		return img
	}
	suit := suitSymbols[cd.Suit()]
	c.drawText(img, suit, corner, 4, 2+corner, text.AlignStart, ink)
	c.drawText(img, suit, h*0.4, w/2, h/2-h*0.22, text.AlignCenter, ink)
	return img
}

// drawBack 程序绘制牌背：内框加对角线纹理
func (c *CardCache) drawBack() *ebiten.Image {
	img := c.cardBase(c.palette.Back)
	w, h := float32(c.theme.CardWidth), float32(c.theme.CardHeight)
	inset := float32(5)

	vector.StrokeRect(img, inset, inset, w-2*inset, h-2*inset, 2, c.palette.BackInner, true)
	for x := inset; x < w-inset; x += 8 {
		vector.StrokeLine(img, x, inset, x+(h-2*inset)/4, h-inset, 1, c.palette.BackInner, true)
	}
	return img
}

// drawSlot 程序绘制空槽：半透明底色加描边
func (c *CardCache) drawSlot() *ebiten.Image {
	w, h := c.theme.CardWidth, c.theme.CardHeight
	img := ebiten.NewImage(w, h)
	slot := c.palette.Slot
	fill := color.NRGBA{R: slot.R, G: slot.G, B: slot.B, A: slot.A / 2}
	fillRoundedRect(img, 0, 0, float32(w), float32(h), float32(c.theme.CornerRadius), fill)
	vector.StrokeRect(img, 1, 1, float32(w)-2, float32(h)-2, 2, c.palette.Slot, true)
	return img
}

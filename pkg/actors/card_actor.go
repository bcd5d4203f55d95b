// Package actors 包含可以挂到场景图上的具体 actor。
package actors

import (
	"math"

	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultPerspective 默认观察距离（像素），与 800x600 舞台 60° 视角一致
const DefaultPerspective = 520.0

// TextureCache 卡牌 actor 需要的纹理缓存能力
type TextureCache interface {
	Ref()
	Unref()
	CardTexture(c card.Card, highlighted bool) *ebiten.Image
}

// CardActor 绘制单张牌的 actor
//
// Y 轴旋转用水平压缩 |cos θ| 表现，cos θ < 0 时显示另一面；
// 深度按透视 d/(d-z) 以牌中心缩放。
type CardActor struct {
	scene.Actor

	cache       TextureCache
	card        card.Card
	perspective float64
	destroyed   bool
}

// NewCardActor 创建卡牌 actor，持有 cache 的一个引用直到 Destroy
func NewCardActor(cache TextureCache, c card.Card) *CardActor {
	cache.Ref()
	a := &CardActor{
		cache:       cache,
		card:        c,
		perspective: DefaultPerspective,
	}
	a.SetName(c.String())
	w, h := a.PreferredSize()
	a.SetSize(w, h)
	return a
}

// Card 绘制的牌
func (a *CardActor) Card() card.Card {
	return a.card
}

// SetPerspective 设置观察距离，非正值恢复默认
func (a *CardActor) SetPerspective(d float64) {
	if d <= 0 {
		d = DefaultPerspective
	}
	a.perspective = d
}

// PreferredSize 纹理的固有尺寸
func (a *CardActor) PreferredSize() (w, h float64) {
	if a.destroyed {
		return 0, 0
	}
	tex := a.cache.CardTexture(a.card, false)
	if tex == nil {
		return 0, 0
	}
	b := tex.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// AllocatePreferredSize 在当前位置按固有尺寸分配
func (a *CardActor) AllocatePreferredSize() {
	x, y := a.Position()
	w, h := a.PreferredSize()
	a.Allocate(scene.Box{X1: x, Y1: y, X2: x + w, Y2: y + h})
}

// ShowingBack 当前旋转角度下是否显示另一面
func (a *CardActor) ShowingBack() bool {
	angle, _, _ := a.RotationY()
	return math.Cos(angle*math.Pi/180) < 0
}

// DepthScale 当前深度对应的透视缩放
func (a *CardActor) DepthScale() float64 {
	z := a.Depth()
	if z >= a.perspective {
		z = a.perspective - 1
	}
	return a.perspective / (a.perspective - z)
}

// Paint 实现 scene.Node
func (a *CardActor) Paint(dst scene.Canvas, geom ebiten.GeoM) {
	if a.destroyed {
		return
	}
	shown := a.card
	if a.ShowingBack() {
		shown = a.card.WithFaceDown(!a.card.FaceDown())
	}
	tex := a.cache.CardTexture(shown, false)
	if tex == nil {
		return
	}

	b := tex.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	angle, cx, cy := a.RotationY()

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear

	// 绕旋转中心水平压缩
	op.GeoM.Translate(-cx, -cy)
	op.GeoM.Scale(math.Abs(math.Cos(angle*math.Pi/180)), 1)
	op.GeoM.Translate(cx, cy)

	// 以牌中心做透视缩放
	s := a.DepthScale()
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(w/2, h/2)

	x, y := a.Position()
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geom)

	dst.DrawImage(tex, op)
}

// Destroy 脱离父节点并释放缓存引用，可重复调用
func (a *CardActor) Destroy() {
	if a.destroyed {
		return
	}
	a.Unparent()
	a.cache.Unref()
	a.destroyed = true
}

// Destroyed 是否已销毁
func (a *CardActor) Destroyed() bool {
	return a.destroyed
}

package slot

import (
	"log"

	"github.com/gonewx/solitaire/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
)

// Paint 实现 scene.Node
//
// 先画牌位背景或翻开的牌，再按批次顺序叠加可见的动画牌。只读，不修改任何状态。
func (r *Renderer) Paint(dst scene.Canvas, geom ebiten.GeoM) {
	if r.disposed {
		log.Printf("[SlotRenderer] CRITICAL: %s: paint after dispose", r.Name())
		return
	}

	local := r.LocalGeoM()
	local.Concat(geom)

	r.paintPile(dst, local)

	for _, rec := range r.records {
		if rec.actor.IsVisible() {
			rec.actor.Paint(dst, local)
		}
	}
}

func (r *Renderer) paintPile(dst scene.Canvas, geom ebiten.GeoM) {
	if err := r.slot.Validate(); err != nil {
		log.Printf("[SlotRenderer] CRITICAL: %s: %v", r.Name(), err)
		return
	}

	n := r.slot.Len()

	if n == 0 {
		drawTexture(dst, r.cache.SlotTexture(r.showHighlight()), 0, 0, geom)
		return
	}

	x, y := 0, 0
	for i := r.slot.FirstExposed(); i < n; i++ {
		highlighted := r.showHighlight() && i >= r.highlight
		drawTexture(dst, r.cache.CardTexture(r.slot.Cards[i], highlighted), x, y, geom)
		x += r.slot.PixelDX
		y += r.slot.PixelDY
	}
}

func drawTexture(dst scene.Canvas, tex *ebiten.Image, x, y int, geom ebiten.GeoM) {
	if tex == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.GeoM.Concat(geom)
	dst.DrawImage(tex, op)
}

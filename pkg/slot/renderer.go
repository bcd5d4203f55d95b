// Package slot 实现牌堆渲染器：绘制一个牌位（发牌堆、收牌堆、牌列）的静态牌面，
// 并管理移入该牌位的牌的移动 / 翻转 / 抬起动画。
//
// 同一时刻最多只有一批动画；整批动画共享一条 500ms 的时间轴，
// 时间轴结束后整批丢弃，这些牌改由静态绘制负责。
package slot

import (
	"log"
	"time"

	"github.com/gonewx/solitaire/pkg/actors"
	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/scene"
	"github.com/gonewx/solitaire/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationDuration 每批动画的时长
const AnimationDuration = 500 * time.Millisecond

// NoHighlight 关闭高亮
const NoHighlight = -1

// TextureCache 渲染器使用的共享纹理缓存（引用计数）
type TextureCache interface {
	Ref()
	Unref()
	SlotTexture(highlighted bool) *ebiten.Image
	CardTexture(c card.Card, highlighted bool) *ebiten.Image
}

// Renderer 牌堆渲染器
//
// 渲染器持有缓存的一个引用（New 时获取，Dispose 时释放），
// 不拥有 *card.Slot，牌堆数据由调用方维护。
type Renderer struct {
	scene.Actor

	cache    TextureCache
	slot     *card.Slot
	timeline *timeline.Timeline
	records  []*animationRecord

	highlight   int
	perspective float64
	disposed    bool
}

var _ scene.Container = (*Renderer)(nil)

// New 创建渲染器
func New(cache TextureCache, s *card.Slot) (*Renderer, error) {
	if cache == nil {
		return nil, ErrNilCache
	}
	if s == nil {
		return nil, ErrNilSlot
	}

	cache.Ref()
	r := &Renderer{
		cache:       cache,
		slot:        s,
		timeline:    timeline.New(AnimationDuration),
		highlight:   NoHighlight,
		perspective: actors.DefaultPerspective,
	}
	r.SetName("slot")
	r.timeline.OnCompleted(r.completed)
	return r, nil
}

// Dispose 丢弃当前动画、停止时间轴并释放缓存引用，可重复调用
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.clearAnimations()
	r.timeline.Stop()
	r.timeline.OnCompleted(nil)
	r.cache.Unref()
	r.disposed = true
}

// Disposed 是否已释放
func (r *Renderer) Disposed() bool {
	return r.disposed
}

// Slot 渲染的牌堆
func (r *Renderer) Slot() *card.Slot {
	return r.slot
}

// Update 由宿主每帧调用，推进动画时间轴
func (r *Renderer) Update(dt time.Duration) {
	if r.disposed {
		return
	}
	r.timeline.Advance(dt)
}

// SetHighlight 从 index 开始的牌使用高亮纹理，NoHighlight（或任意负数）关闭
func (r *Renderer) SetHighlight(index int) {
	if index < 0 {
		index = NoHighlight
	}
	r.highlight = index
	r.QueueRedraw()
}

// Highlight 当前高亮起点，未高亮时返回 NoHighlight
func (r *Renderer) Highlight() int {
	return r.highlight
}

func (r *Renderer) showHighlight() bool {
	return r.highlight != NoHighlight
}

// SetPerspective 设置动画牌的观察距离，同时作用于进行中的动画
func (r *Renderer) SetPerspective(d float64) {
	if d <= 0 {
		d = actors.DefaultPerspective
	}
	r.perspective = d
	for _, rec := range r.records {
		rec.actor.SetPerspective(d)
	}
}

// Allocate 记录分配区域，并按固有尺寸分配每张动画牌
func (r *Renderer) Allocate(box scene.Box) {
	r.Actor.Allocate(box)
	for _, rec := range r.records {
		rec.actor.AllocatePreferredSize()
	}
}

func (r *Renderer) completed() {
	// 整批动画结束：清空后由静态绘制接手这些牌
	if err := r.SetAnimations(nil); err != nil {
		log.Printf("[SlotRenderer] %s: clear animations on completion: %v", r.Name(), err)
	}
	r.QueueRedraw()
}

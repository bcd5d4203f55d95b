// Package table 是牌堆渲染器的宿主：持有若干命名牌堆及其渲染器，
// 按脚本步骤修改牌堆数据、计算动画起点，并从 Ebitengine 循环驱动所有渲染器。
package table

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gonewx/solitaire/internal/scenario"
	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/config"
	"github.com/gonewx/solitaire/pkg/scene"
	"github.com/gonewx/solitaire/pkg/slot"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrUnknownSlot 牌堆名不存在
	ErrUnknownSlot = errors.New("unknown slot")
	// ErrNotEnoughCards 牌堆中的牌不够
	ErrNotEnoughCards = errors.New("not enough cards")
)

// Pile 一个命名牌堆
type Pile struct {
	Name     string
	Slot     *card.Slot
	Renderer *slot.Renderer
}

// Table 牌桌
type Table struct {
	stage  *scene.Stage
	piles  []*Pile
	byName map[string]*Pile

	steps   []scenario.Step
	next    int
	waiting time.Duration

	// Loop 脚本结束后从头重放
	Loop bool
}

// New 按主题布局创建牌桌，每个牌堆一个渲染器
func New(cache slot.TextureCache, theme *config.ThemeConfig) (*Table, error) {
	t := &Table{
		stage:  scene.NewStage(float64(theme.Table.Width), float64(theme.Table.Height)),
		byName: make(map[string]*Pile),
	}

	for _, l := range KlondikeLayout(theme) {
		s := &card.Slot{PixelDX: l.DX, PixelDY: l.DY}
		r, err := slot.New(cache, s)
		if err != nil {
			t.Dispose()
			return nil, fmt.Errorf("create slot %s: %w", l.Name, err)
		}
		r.SetName(l.Name)
		r.SetPosition(l.X, l.Y)
		r.SetPerspective(theme.Perspective)
		if err := t.stage.Add(r); err != nil {
			r.Dispose()
			t.Dispose()
			return nil, err
		}

		p := &Pile{Name: l.Name, Slot: s, Renderer: r}
		t.piles = append(t.piles, p)
		t.byName[l.Name] = p
	}

	log.Printf("[Table] created %d slots", len(t.piles))
	return t, nil
}

// Stage 场景根节点
func (t *Table) Stage() *scene.Stage {
	return t.stage
}

// Piles 全部牌堆，按布局顺序
func (t *Table) Piles() []*Pile {
	return t.piles
}

// Pile 按名称查找牌堆，不存在时返回 nil
func (t *Table) Pile(name string) *Pile {
	return t.byName[name]
}

func (t *Table) lookup(name string) (*Pile, error) {
	p := t.byName[name]
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
	}
	return p, nil
}

// SetTheme 按新主题重新布局，牌堆内容不变
func (t *Table) SetTheme(theme *config.ThemeConfig) {
	for _, l := range KlondikeLayout(theme) {
		p := t.byName[l.Name]
		if p == nil {
			continue
		}
		p.Slot.PixelDX, p.Slot.PixelDY = l.DX, l.DY
		p.Renderer.SetPosition(l.X, l.Y)
		p.Renderer.SetPerspective(theme.Perspective)
	}
	t.stage.QueueRelayout()
}

// Reset 清空所有牌堆并取消进行中的动画
func (t *Table) Reset() {
	for _, p := range t.piles {
		if err := p.Renderer.SetAnimations(nil); err != nil {
			log.Printf("[Table] reset %s: %v", p.Name, err)
		}
		p.Slot.Cards = nil
		p.Slot.Exposed = 0
		p.Renderer.SetHighlight(slot.NoHighlight)
	}
}

// Play 清空牌桌并从头执行 steps
func (t *Table) Play(steps []scenario.Step) {
	t.Reset()
	t.steps = steps
	t.next = 0
	t.waiting = 0
	log.Printf("[Table] playing %d steps", len(steps))
}

// Playing 脚本是否还有未执行的步骤
func (t *Table) Playing() bool {
	return t.next < len(t.steps) || t.waiting > 0
}

// Animating 是否有牌堆正在播放动画
func (t *Table) Animating() bool {
	for _, p := range t.piles {
		if p.Renderer.Animating() {
			return true
		}
	}
	return false
}

// Update 推进所有渲染器，然后在空闲时执行下一个步骤
//
// 上一步的动画结束（以及 wait 到期）之前不会执行下一步。
func (t *Table) Update(dt time.Duration) error {
	for _, p := range t.piles {
		p.Renderer.Update(dt)
	}

	if t.waiting > 0 {
		t.waiting -= dt
		if t.waiting > 0 {
			return nil
		}
		t.waiting = 0
	}

	for t.next < len(t.steps) && t.waiting == 0 && !t.Animating() {
		step := t.steps[t.next]
		t.next++
		if err := t.Apply(step); err != nil {
			return fmt.Errorf("step %d %s: %w", t.next, step, err)
		}
	}

	if t.Loop && len(t.steps) > 0 && !t.Playing() && !t.Animating() {
		t.Play(t.steps)
	}
	return nil
}

// Draw 绘制整个牌桌
func (t *Table) Draw(dst scene.Canvas) {
	t.stage.Paint(dst, ebiten.GeoM{})
}

// Dispose 释放所有渲染器
func (t *Table) Dispose() {
	for _, p := range t.piles {
		if err := t.stage.Remove(p.Renderer); err != nil {
			log.Printf("[Table] dispose %s: %v", p.Name, err)
		}
		p.Renderer.Dispose()
	}
	t.piles = nil
	t.byName = make(map[string]*Pile)
}

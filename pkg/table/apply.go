package table

import (
	"fmt"
	"log"

	"github.com/gonewx/solitaire/internal/scenario"
	"github.com/gonewx/solitaire/pkg/slot"
)

// Apply 执行一个步骤：修改牌堆数据，并为移动 / 翻转的牌启动动画
func (t *Table) Apply(step scenario.Step) error {
	log.Printf("[Table] %s", step)

	switch step.Op {
	case scenario.OpDeal:
		return t.deal(step)
	case scenario.OpMove:
		return t.move(step)
	case scenario.OpFlip:
		return t.flip(step)
	case scenario.OpHighlight:
		p, err := t.lookup(step.Slot)
		if err != nil {
			return err
		}
		p.Renderer.SetHighlight(step.Index)
		return nil
	case scenario.OpWait:
		t.waiting = step.Wait
		return nil
	}
	return fmt.Errorf("unsupported step %s", step.Op)
}

func (t *Table) deal(step scenario.Step) error {
	p, err := t.lookup(step.Slot)
	if err != nil {
		return err
	}
	if err := p.Renderer.SetAnimations(nil); err != nil {
		return err
	}

	p.Slot.Cards = append(p.Slot.Cards[:0:0], step.Cards...)
	p.Slot.Exposed = step.Exposed
	if p.Slot.Exposed == scenario.AllExposed || p.Slot.Exposed > len(p.Slot.Cards) {
		p.Slot.Exposed = len(p.Slot.Cards)
	}
	p.Renderer.QueueRedraw()
	return nil
}

func (t *Table) move(step scenario.Step) error {
	src, err := t.lookup(step.From)
	if err != nil {
		return err
	}
	dst, err := t.lookup(step.To)
	if err != nil {
		return err
	}
	if src == dst {
		return fmt.Errorf("move %s onto itself", src.Name)
	}
	if step.Count > src.Slot.Len() {
		return fmt.Errorf("move %d from %s (%d cards): %w", step.Count, src.Name, src.Slot.Len(), ErrNotEnoughCards)
	}

	starts := t.startsFor(src, dst, step.Count)

	if err := src.Renderer.SetAnimations(nil); err != nil {
		return err
	}
	cards := src.Slot.Take(step.Count)
	if src.Slot.Len() > 0 && src.Slot.Exposed == 0 {
		// 叠放的牌堆至少露出顶牌
		src.Slot.Exposed = 1
	}
	if step.Reveal {
		for i := range cards {
			cards[i] = cards[i].WithFaceDown(false)
		}
	}
	dst.Slot.Push(cards...)
	src.Renderer.QueueRedraw()

	return dst.Renderer.SetAnimations(starts)
}

func (t *Table) flip(step scenario.Step) error {
	p, err := t.lookup(step.Slot)
	if err != nil {
		return err
	}
	n := p.Slot.Len()
	if n == 0 {
		return fmt.Errorf("flip %s: %w", p.Name, ErrNotEnoughCards)
	}

	x, y := staticOffset(p, n-1)
	top := p.Slot.Cards[n-1]
	start := slot.AnimStart{X: x, Y: y, FaceDown: top.FaceDown()}

	p.Slot.Cards[n-1] = top.WithFaceDown(!top.FaceDown())
	if p.Slot.Exposed == 0 {
		p.Slot.Exposed = 1
	}
	return p.Renderer.SetAnimations([]slot.AnimStart{start})
}

// startsFor 计算 src 顶部 count 张牌在 dst 局部坐标中的当前位置
func (t *Table) startsFor(src, dst *Pile, count int) []slot.AnimStart {
	sx, sy := src.Renderer.Position()
	dx, dy := dst.Renderer.Position()
	offX, offY := int(sx-dx), int(sy-dy)

	n := src.Slot.Len()
	starts := make([]slot.AnimStart, 0, count)
	for i := n - count; i < n; i++ {
		x, y := staticOffset(src, i)
		starts = append(starts, slot.AnimStart{
			X:        x + offX,
			Y:        y + offY,
			FaceDown: src.Slot.Cards[i].FaceDown(),
		})
	}
	return starts
}

// staticOffset 第 i 张牌被静态绘制时相对牌堆原点的位置，未翻开的牌压在原点
func staticOffset(p *Pile, i int) (x, y int) {
	first := p.Slot.FirstExposed()
	if i < first {
		return 0, 0
	}
	k := i - first
	return k * p.Slot.PixelDX, k * p.Slot.PixelDY
}

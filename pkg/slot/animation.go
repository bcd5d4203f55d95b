package slot

import (
	"fmt"
	"log"

	"github.com/gonewx/solitaire/pkg/actors"
	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/timeline"
	"github.com/gonewx/solitaire/pkg/utils"
)

// AnimStart 一张移入牌的起始状态：渲染器局部坐标中的位置，以及移动前是否背面朝上
type AnimStart struct {
	X, Y     int
	FaceDown bool
}

// animationRecord 一张动画牌及其行为，rotate 只在翻面时存在
type animationRecord struct {
	actor  *actors.CardActor
	move   *timeline.PathBehaviour
	rotate *timeline.RotateBehaviour
	depth  *timeline.DepthBehaviour
}

func (a *animationRecord) release() {
	a.move.Release()
	if a.rotate != nil {
		a.rotate.Release()
	}
	a.depth.Release()
}

// SetAnimations 用新的一批动画替换当前批次
//
// starts[i] 对应牌堆最后 len(starts) 张牌中的第 i 张（从旧到新）。
// 数量超过翻开的牌数时返回 *TooManyAnimationsError，当前批次保持不变。
// 传入空列表只清空当前批次，牌堆数据损坏时也一样。
func (r *Renderer) SetAnimations(starts []AnimStart) error {
	if r.disposed {
		log.Printf("[SlotRenderer] CRITICAL: %s: set animations after dispose", r.Name())
		return ErrDisposed
	}
	if len(starts) == 0 {
		r.clearAnimations()
		r.QueueRedraw()
		return nil
	}
	if err := r.slot.Validate(); err != nil {
		log.Printf("[SlotRenderer] CRITICAL: %s: %v", r.Name(), err)
		return fmt.Errorf("%s: %w: %w", r.Name(), ErrCorruptSlot, err)
	}
	if len(starts) > r.slot.Exposed {
		err := &TooManyAnimationsError{Requested: len(starts), Exposed: r.slot.Exposed}
		log.Printf("[SlotRenderer] CRITICAL: %s: %v", r.Name(), err)
		return err
	}

	r.clearAnimations()

	cardNum := r.slot.Len() - len(starts)
	for _, start := range starts {
		r.records = append(r.records, r.newRecord(r.slot.Cards[cardNum], cardNum, start))
		cardNum++
	}

	log.Printf("[SlotRenderer] %s: %d animations", r.Name(), len(starts))
	r.timeline.Rewind()
	r.timeline.Start()

	r.QueueRedraw()
	return nil
}

func (r *Renderer) newRecord(c card.Card, cardNum int, start AnimStart) *animationRecord {
	actor := actors.NewCardActor(r.cache, c)
	actor.SetPerspective(r.perspective)
	if err := actor.SetParent(&r.Actor); err != nil {
		log.Printf("[SlotRenderer] CRITICAL: %s: parent %s: %v", r.Name(), actor.Name(), err)
	}

	w, h := actor.PreferredSize()
	sx, sy := float64(start.X), float64(start.Y)
	actor.SetPosition(sx, sy)

	rec := &animationRecord{actor: actor}

	dx, dy := r.slot.CardOffset(cardNum)
	ramp := timeline.NewAlpha(r.timeline, utils.EaseRamp)
	rec.move = timeline.NewPathBehaviour(ramp,
		timeline.Knot{X: sx, Y: sy},
		timeline.Knot{X: float64(dx), Y: float64(dy)})
	rec.move.Apply(actor)

	if start.FaceDown != c.FaceDown() {
		// 从另一面开始，旋转到 0° 时正好露出牌的实际朝向
		cx, cy := float64(int(w)/2), float64(int(h)/2)
		actor.SetRotationY(180, cx, cy)

		rec.rotate = timeline.NewRotateBehaviour(ramp, timeline.RotateCW, 180, 0)
		rec.rotate.SetCenter(cx, cy)
		rec.rotate.Apply(actor)
	}

	sine := timeline.NewAlpha(r.timeline, utils.EaseSine)
	rec.depth = timeline.NewDepthBehaviour(sine, 0, h)
	rec.depth.Apply(actor)

	return rec
}

func (r *Renderer) clearAnimations() {
	for _, rec := range r.records {
		rec.release()
		rec.actor.Destroy()
	}
	r.records = nil
}

// Animating 是否有进行中的动画批次
func (r *Renderer) Animating() bool {
	return len(r.records) > 0
}

// AnimationCount 当前批次的动画牌数量
func (r *Renderer) AnimationCount() int {
	return len(r.records)
}

// Progress 当前批次的进度 [0, 1]，没有动画时为 0
func (r *Renderer) Progress() float64 {
	if len(r.records) == 0 {
		return 0
	}
	return r.timeline.Progress()
}

package slot

import (
	"fmt"
	"log"
	"reflect"

	"github.com/gonewx/solitaire/pkg/scene"
)

// Children 当前批次的动画牌，按批次顺序
func (r *Renderer) Children() []scene.Node {
	nodes := make([]scene.Node, 0, len(r.records))
	for _, rec := range r.records {
		nodes = append(nodes, rec.actor)
	}
	return nodes
}

// ForEachChild 按批次顺序遍历动画牌
func (r *Renderer) ForEachChild(fn func(scene.Node)) {
	for _, rec := range r.records {
		fn(rec.actor)
	}
}

// Add 总是拒绝：子节点只能由 SetAnimations 创建
func (r *Renderer) Add(child scene.Node) error {
	log.Printf("[SlotRenderer] CRITICAL: do not add actors to slot renderer %s directly", r.Name())
	return ErrChildrenManaged
}

// Remove 强制摘下一张动画牌
//
// 对应的记录从批次中移除并释放其行为，actor 本身不销毁，由调用方接管。
func (r *Renderer) Remove(child scene.Node) error {
	if isNilNode(child) {
		return fmt.Errorf("remove <nil> from %s: %w", r.Name(), ErrNotChild)
	}
	for i, rec := range r.records {
		if child.Base() != &rec.actor.Actor {
			continue
		}
		rec.release()
		r.records = append(r.records[:i], r.records[i+1:]...)
		rec.actor.Unparent()

		r.QueueRelayout()
		if r.IsVisible() {
			r.QueueRedraw()
		}
		return nil
	}

	return fmt.Errorf("remove %q from %s: %w", child.Base().Name(), r.Name(), ErrNotChild)
}

// isNilNode 同时识别 nil 接口和包着 nil 指针的接口
func isNilNode(n scene.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

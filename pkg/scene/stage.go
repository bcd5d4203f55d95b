package scene

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stage 场景根节点
//
// 按添加顺序绘制顶层节点，并统计子树发出的重绘 / 重新布局请求。
type Stage struct {
	Actor
	children []Node

	redraws   int
	relayouts int
}

// NewStage 创建舞台
func NewStage(width, height float64) *Stage {
	s := &Stage{}
	s.stage = s
	s.name = "stage"
	s.width, s.height = width, height
	return s
}

// Add 添加顶层节点
func (s *Stage) Add(child Node) error {
	if err := child.Base().SetParent(&s.Actor); err != nil {
		return fmt.Errorf("stage add %q: %w", child.Base().Name(), err)
	}
	s.children = append(s.children, child)
	s.QueueRedraw()
	return nil
}

// Remove 移除顶层节点
func (s *Stage) Remove(child Node) error {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			child.Base().Unparent()
			s.QueueRedraw()
			return nil
		}
	}
	return fmt.Errorf("stage remove %q: not a child", child.Base().Name())
}

// Children 顶层节点
func (s *Stage) Children() []Node {
	return append([]Node(nil), s.children...)
}

// Paint 绘制全部可见的顶层节点
func (s *Stage) Paint(dst Canvas, geom ebiten.GeoM) {
	for _, c := range s.children {
		if c.Base().IsVisible() {
			c.Paint(dst, geom)
		}
	}
}

// TakeRedraw 返回并清除自上次调用以来的重绘请求数
func (s *Stage) TakeRedraw() int {
	n := s.redraws
	s.redraws = 0
	return n
}

// TakeRelayout 返回并清除自上次调用以来的重新布局请求数
func (s *Stage) TakeRelayout() int {
	n := s.relayouts
	s.relayouts = 0
	return n
}

// Walk 深度优先遍历 n 及其子节点
func Walk(n Node, fn func(n Node, level int)) {
	walk(n, 0, fn)
}

func walk(n Node, level int, fn func(Node, int)) {
	fn(n, level)
	c, ok := n.(interface{ Children() []Node })
	if !ok {
		return
	}
	for _, child := range c.Children() {
		walk(child, level+1, fn)
	}
}

// Dump 以缩进文本列出子树，用于调试
func Dump(n Node) string {
	var b strings.Builder
	Walk(n, func(n Node, level int) {
		a := n.Base()
		x, y := a.Position()
		fmt.Fprintf(&b, "%s%s (%.1f, %.1f) rotY=%.1f z=%.1f visible=%t\n",
			strings.Repeat("  ", level), a.Name(), x, y, a.angleY, a.depth, a.IsVisible())
	})
	return b.String()
}

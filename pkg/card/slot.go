package card

import "fmt"

// Slot 一个牌堆（发牌堆、收牌堆、列等）
//
// Cards 从底到顶排列。Exposed 表示顶部可见（可交互）的牌数，
// PixelDX/PixelDY 是相邻两张可见牌之间的像素错位。
type Slot struct {
	Cards   []Card
	Exposed int
	PixelDX int
	PixelDY int
}

// Len 牌数
func (s *Slot) Len() int {
	return len(s.Cards)
}

// FirstExposed 第一张可见牌的下标
func (s *Slot) FirstExposed() int {
	return len(s.Cards) - s.Exposed
}

// Validate 检查 0 <= Exposed <= len(Cards)
func (s *Slot) Validate() error {
	if s.Exposed < 0 {
		return fmt.Errorf("slot exposed count %d is negative", s.Exposed)
	}
	if s.Exposed > len(s.Cards) {
		return fmt.Errorf("slot exposed count %d exceeds card count %d", s.Exposed, len(s.Cards))
	}
	return nil
}

// CardOffset 第 index 张牌（在整个牌堆中的下标）相对牌堆原点的偏移
func (s *Slot) CardOffset(index int) (x, y int) {
	return s.PixelDX * index, s.PixelDY * index
}

// Take 从顶部取走 n 张牌并返回（保持原顺序），Exposed 同步减少
func (s *Slot) Take(n int) []Card {
	if n > len(s.Cards) {
		n = len(s.Cards)
	}
	if n <= 0 {
		return nil
	}
	start := len(s.Cards) - n
	taken := append([]Card(nil), s.Cards[start:]...)
	s.Cards = s.Cards[:start]
	s.Exposed -= n
	if s.Exposed < 0 {
		s.Exposed = 0
	}
	return taken
}

// Push 把牌放到顶部，新牌全部可见
func (s *Slot) Push(cards ...Card) {
	s.Cards = append(s.Cards, cards...)
	s.Exposed += len(cards)
	if s.Exposed > len(s.Cards) {
		s.Exposed = len(s.Cards)
	}
}

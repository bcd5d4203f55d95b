package table

import "github.com/gonewx/solitaire/pkg/config"

// SlotLayout 一个牌堆在牌桌上的位置和错位
type SlotLayout struct {
	Name   string
	X, Y   float64
	DX, DY int
}

// KlondikeLayout 经典接龙布局
//
//	stock waste  .  f1 f2 f3 f4
//	t1    t2    t3  t4 t5 t6 t7
func KlondikeLayout(theme *config.ThemeConfig) []SlotLayout {
	tc := theme.Table
	col := func(i int) float64 {
		return float64(tc.Margin + i*(theme.CardWidth+tc.Spacing))
	}
	top := float64(tc.Margin)
	bottom := float64(tc.Margin + theme.CardHeight + tc.Spacing)

	layout := []SlotLayout{
		{Name: "stock", X: col(0), Y: top},
		{Name: "waste", X: col(1), Y: top},
	}
	for i := 0; i < 4; i++ {
		layout = append(layout, SlotLayout{Name: foundationName(i), X: col(3 + i), Y: top})
	}
	for i := 0; i < 7; i++ {
		layout = append(layout, SlotLayout{
			Name: tableauName(i),
			X:    col(i),
			Y:    bottom,
			DX:   tc.FanDX,
			DY:   tc.FanDY,
		})
	}
	return layout
}

func foundationName(i int) string {
	return string([]byte{'f', byte('1' + i)})
}

func tableauName(i int) string {
	return string([]byte{'t', byte('1' + i)})
}

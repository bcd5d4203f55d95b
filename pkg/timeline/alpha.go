package timeline

import "github.com/gonewx/solitaire/pkg/utils"

// Alpha 把时间轴进度映射成行为使用的 alpha 值
type Alpha struct {
	timeline *Timeline
	ease     utils.EaseFunc
}

// NewAlpha 创建 alpha，ease 为 nil 时使用线性曲线
func NewAlpha(t *Timeline, ease utils.EaseFunc) *Alpha {
	if ease == nil {
		ease = utils.EaseRamp
	}
	return &Alpha{timeline: t, ease: ease}
}

// Timeline 驱动此 alpha 的时间轴
func (a *Alpha) Timeline() *Timeline {
	return a.timeline
}

// Value 当前 alpha 值
func (a *Alpha) Value() float64 {
	return a.ease(a.timeline.Progress())
}

// At 指定进度下的 alpha 值
func (a *Alpha) At(progress float64) float64 {
	return a.ease(progress)
}

package utils

import "math"

// Easing Functions (缓动函数)
//
// 动画时间轴的 alpha 曲线。所有函数接受进度 t ∈ [0, 1]，
// 超出范围的输入会先被截断。

// EaseFunc 缓动函数签名
type EaseFunc func(t float64) float64

// EaseRamp 线性上升（匀速），移动与翻转共用这一条曲线
func EaseRamp(t float64) float64 {
	return Clamp01(t)
}

// EaseSine 正弦起落曲线：0 → 1 → 0
// 公式：f(t) = (sin(2πt - π/2) + 1) / 2 = (1 - cos 2πt) / 2
// t = 0.5 时达到峰值，用于卡牌"抬起再落下"的深度效果
func EaseSine(t float64) float64 {
	t = Clamp01(t)
	return (math.Sin(2*math.Pi*t-math.Pi/2) + 1) / 2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

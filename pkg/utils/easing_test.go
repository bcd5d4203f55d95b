package utils

import (
	"math"
	"testing"
)

// TestEaseRamp 测试线性缓动函数
func TestEaseRamp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
		{"四分之一", 0.25, 0.25},
		{"负数截断", -0.5, 0.0},
		{"超出截断", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseRamp(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseRamp(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseSine 测试正弦起落曲线
func TestEaseSine(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"四分之一", 0.25, 0.5},
		{"峰值", 0.5, 1.0},
		{"四分之三", 0.75, 0.5},
		{"终点回落", 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseSine(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseSine(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseSineSymmetric 曲线关于 t=0.5 对称
func TestEaseSineSymmetric(t *testing.T) {
	for i := 0; i <= 50; i++ {
		x := float64(i) / 100
		a := EaseSine(x)
		b := EaseSine(1 - x)
		if math.Abs(a-b) > 1e-9 {
			t.Fatalf("EaseSine(%v)=%v, EaseSine(%v)=%v, 应该相等", x, a, 1-x, b)
		}
	}
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	if v := Lerp(100, 0, 0.25); v != 75 {
		t.Errorf("Lerp(100, 0, 0.25) = %v, 期望 75", v)
	}
	if v := Lerp(0, 36, 1); v != 36 {
		t.Errorf("Lerp(0, 36, 1) = %v, 期望 36", v)
	}
}

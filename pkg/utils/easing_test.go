package utils

import (
	"math"
	"testing"
)

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875},
		{"超出上限", 2.0, 1.0},
		{"低于下限", -1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"四分之一", 0.25, 0.0625},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if Lerp(10, 20, 0) != 10 || Lerp(10, 20, 1) != 20 || Lerp(10, 20, 0.5) != 15 {
		t.Error("Lerp 结果错误")
	}
}

func TestApproach(t *testing.T) {
	tests := []struct {
		name                  string
		current, target, step float64
		want                  float64
	}{
		{"向上靠近", 0, 1, 0.25, 0.25},
		{"向下靠近", 1, 0, 0.25, 0.75},
		{"不越过目标", 0.9, 1, 0.25, 1},
		{"已到达", 1, 1, 0.25, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Approach(tt.current, tt.target, tt.step); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Approach = %v, want %v", got, tt.want)
			}
		})
	}
}

package utils

import "math"

// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]

// EaseOutCubic 三次方缓出，开始快结束慢
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-Clamp01(t), 3)
}

// EaseInOutCubic 三次方缓入缓出
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Approach 让 current 以不超过 step 的幅度靠近 target
func Approach(current, target, step float64) float64 {
	if current < target {
		return math.Min(current+step, target)
	}
	return math.Max(current-step, target)
}

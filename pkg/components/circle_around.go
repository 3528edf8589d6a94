package components

import "github.com/go-gl/mathgl/mgl64"

// CircleAroundComponent 绕中心点做圆周运动
// 角度 = Direction × 关卡时间 + TimeOffset
type CircleAroundComponent struct {
	Center     mgl64.Vec2
	Radius     float64
	Direction  float64 // +1 逆时针，-1 顺时针
	TimeOffset float64
}

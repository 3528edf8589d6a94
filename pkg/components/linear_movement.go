package components

import "github.com/go-gl/mathgl/mgl64"

// LinearMovementComponent 按轴独立的匀（加）速直线运动
// 每个轴可以有目标值：越过目标时位置被夹到目标上并标记到达。
// 速度为 0 且有目标的轴视为立即到达。
type LinearMovementComponent struct {
	Velocity     mgl64.Vec2 // 速度（像素/秒）
	Acceleration mgl64.Vec2 // 加速度（像素/秒²）

	Target     mgl64.Vec2 // 目标位置
	HasTargetX bool       // X 轴是否有目标
	HasTargetY bool       // Y 轴是否有目标
	ReachedX   bool       // X 轴已到达
	ReachedY   bool       // Y 轴已到达
}

// NewLinearMovementTo 创建朝向目标、两轴都有到达检测的运动
func NewLinearMovementTo(target, velocity mgl64.Vec2) *LinearMovementComponent {
	return &LinearMovementComponent{
		Velocity:   velocity,
		Target:     target,
		HasTargetX: true,
		HasTargetY: true,
	}
}

// Reached 所有有目标的轴都已到达
func (m *LinearMovementComponent) Reached() bool {
	return (!m.HasTargetX || m.ReachedX) && (!m.HasTargetY || m.ReachedY)
}

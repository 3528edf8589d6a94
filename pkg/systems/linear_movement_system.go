package systems

import (
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

// LinearMovementSystem 按轴推进匀速/匀加速运动
// 摄像机、敌人移动和敌人攻击共用此系统
type LinearMovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewLinearMovementSystem 创建直线运动系统
func NewLinearMovementSystem(em *ecs.EntityManager) *LinearMovementSystem {
	return &LinearMovementSystem{entityManager: em}
}

// Update 推进所有带 LinearMovementComponent 的实体
// 有目标的轴在越过目标时被夹到目标上并标记到达，之后不再移动
//
// 参数：
//   - deltaTime: 关卡时间增量（秒）
func (s *LinearMovementSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}

	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.LinearMovementComponent](s.entityManager)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		movement, _ := ecs.GetComponent[*components.LinearMovementComponent](s.entityManager, id)

		var vx, vy float64
		pos.X, vx, movement.ReachedX = stepAxis(pos.X, movement.Velocity.X(), movement.Acceleration.X(),
			movement.Target.X(), movement.HasTargetX, movement.ReachedX, deltaTime)
		pos.Y, vy, movement.ReachedY = stepAxis(pos.Y, movement.Velocity.Y(), movement.Acceleration.Y(),
			movement.Target.Y(), movement.HasTargetY, movement.ReachedY, deltaTime)
		movement.Velocity[0] = vx
		movement.Velocity[1] = vy
	}
}

// stepAxis 推进单个轴，返回新位置、新速度和是否到达
func stepAxis(pos, velocity, acceleration, target float64, hasTarget, reached bool, dt float64) (float64, float64, bool) {
	if hasTarget && reached {
		return pos, velocity, true
	}

	next := pos + velocity*dt + 0.5*acceleration*dt*dt
	velocity += acceleration * dt

	if !hasTarget {
		return next, velocity, false
	}
	if velocity == 0 && acceleration == 0 {
		return pos, velocity, true
	}
	if (next-target)*(pos-target) <= 0 {
		return target, velocity, true
	}
	return next, velocity, false
}

package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

// CircleAroundSystem 让实体绕中心点做圆周运动
// 位置 = 中心 + 半径 × (cos a, sin a)，a = 方向 × 关卡时间 + 时间偏移
type CircleAroundSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
}

// NewCircleAroundSystem 创建绕圈系统
func NewCircleAroundSystem(em *ecs.EntityManager, gs *game.GameState) *CircleAroundSystem {
	return &CircleAroundSystem{entityManager: em, gameState: gs}
}

// CircleAngle 返回某一关卡时间的绕圈角度（弧度）
func CircleAngle(direction, elapsed, timeOffset float64) float64 {
	return direction*elapsed + timeOffset
}

// CirclePosition 返回绕圈的位置
func CirclePosition(center mgl64.Vec2, radius, angle float64) mgl64.Vec2 {
	return center.Add(mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(radius))
}

// Update 根据关卡时间重新计算位置
func (s *CircleAroundSystem) Update(deltaTime float64) {
	elapsed := s.gameState.StageElapsed
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.CircleAroundComponent](s.entityManager)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		circle, _ := ecs.GetComponent[*components.CircleAroundComponent](s.entityManager, id)
		angle := CircleAngle(circle.Direction, elapsed, circle.TimeOffset)
		pos.SetVec(CirclePosition(circle.Center, circle.Radius, angle))
	}
}

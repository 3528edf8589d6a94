package systems

import (
	"math"

	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

// DepthSystem 推进实体在深度方向上的移动
// 连续进度越过半个单位时整数深度随之改变，到达目标深度后停止
type DepthSystem struct {
	entityManager *ecs.EntityManager
}

// NewDepthSystem 创建深度系统
func NewDepthSystem(em *ecs.EntityManager) *DepthSystem {
	return &DepthSystem{entityManager: em}
}

// Update 推进深度进度
//
// 参数：
//   - deltaTime: 关卡时间增量（秒）
func (s *DepthSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[*components.DepthComponent, *components.DepthMovementComponent](s.entityManager)
	for _, id := range ids {
		depth, _ := ecs.GetComponent[*components.DepthComponent](s.entityManager, id)
		movement, _ := ecs.GetComponent[*components.DepthMovementComponent](s.entityManager, id)
		if movement.Reached {
			continue
		}

		movement.Progress += movement.Speed * deltaTime
		target := float64(movement.Target)
		if (movement.Speed <= 0 && movement.Progress <= target) || (movement.Speed >= 0 && movement.Progress >= target) {
			movement.Progress = target
			movement.Reached = true
		}

		next := int(math.Round(movement.Progress))
		if next != depth.Depth {
			depth.Depth = next
			s.rescale(id, next)
		}
	}
}

// rescale 深度变化后更新攻击实体的绘制和碰撞半径
func (s *DepthSystem) rescale(id ecs.EntityID, depth int) {
	attack, ok := ecs.GetComponent[*components.EnemyAttackComponent](s.entityManager, id)
	if !ok {
		return
	}
	radius := attack.Radius * components.DepthScale(depth)
	if render, ok := ecs.GetComponent[*components.RenderComponent](s.entityManager, id); ok {
		render.Radius = radius
	}
	if collision, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
		collision.Radius = radius
	}
}

package systems

import (
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

// LifetimeSystem 管理限时实体（玩家攻击判定、死亡特效）
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 累计存在时间，过期的实体标记待删除
// 死亡特效的圆环随进度扩散
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			s.entityManager.DestroyEntity(id)
			continue
		}

		effect, ok := ecs.GetComponent[*components.DeathEffectComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if render, ok := ecs.GetComponent[*components.RenderComponent](s.entityManager, id); ok && lifetime.MaxLifetime > 0 {
			progress := lifetime.CurrentLifetime / lifetime.MaxLifetime
			render.Radius = effect.Radius * (0.5 + progress)
		}
	}
}

package systems

import (
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

// FlashEffectSystem 受击闪烁系统
// 闪烁期间交替隐藏实体，结束后恢复显示并移除组件
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashEffectSystem 创建闪烁效果系统
func NewFlashEffectSystem(em *ecs.EntityManager) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
	}
}

// Update 更新所有闪烁效果
// 参数：
//   - dt: 时间增量（秒）
func (s *FlashEffectSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager)

	for _, entity := range entities {
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if !ok || !flashComp.IsActive {
			continue
		}

		flashComp.Elapsed += dt
		render, hasRender := ecs.GetComponent[*components.RenderComponent](s.entityManager, entity)

		if flashComp.Elapsed >= flashComp.Duration {
			if hasRender {
				render.Hidden = false
			}
			ecs.RemoveComponent[*components.FlashEffectComponent](s.entityManager, entity)
			continue
		}
		if hasRender {
			render.Hidden = !flashComp.Visible()
		}
	}
}

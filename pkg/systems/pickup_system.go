package systems

import (
	"github.com/marcotoniut/carcenisation/internal/audio"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

// PickupSystem 结算被玩家击中的拾取物：回复玩家生命（不超过上限）后消失
type PickupSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
}

// NewPickupSystem 创建拾取系统
func NewPickupSystem(em *ecs.EntityManager, gs *game.GameState) *PickupSystem {
	return &PickupSystem{entityManager: em, gameState: gs}
}

// Update 处理已被击中的拾取物
func (s *PickupSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[*components.PickupComponent, *components.DeadComponent](s.entityManager)
	for _, id := range ids {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		pickup, _ := ecs.GetComponent[*components.PickupComponent](s.entityManager, id)

		for _, playerID := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.HealthComponent](s.entityManager) {
			health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, playerID)
			health.Heal(pickup.Heal)
		}
		s.gameState.PlaySound(audio.SoundPickup)
		s.entityManager.DestroyEntity(id)
	}
}

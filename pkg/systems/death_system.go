package systems

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/internal/audio"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/entities"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

// DeathSystem 处理被标记死亡的实体
//
//   - 敌人：加分、释放掉落物、播放死亡特效
//   - 可破坏物：释放掉落物、播放破碎特效
//   - 敌人攻击：直接消失
//
// 拾取物的死亡由 PickupSystem 处理
type DeathSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	stats         *config.EnemyStatsConfig
}

// NewDeathSystem 创建死亡系统
// stats 用于生成掉落的敌人
func NewDeathSystem(em *ecs.EntityManager, gs *game.GameState, stats *config.EnemyStatsConfig) *DeathSystem {
	return &DeathSystem{entityManager: em, gameState: gs, stats: stats}
}

// Update 结算本帧死亡的实体
func (s *DeathSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith1[*components.DeadComponent](s.entityManager)
	for _, id := range ids {
		if s.entityManager.IsPendingDestroy(id) || ecs.HasComponent[*components.PickupComponent](s.entityManager, id) {
			continue
		}

		switch {
		case ecs.HasComponent[*components.EnemyComponent](s.entityManager, id):
			enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
			s.gameState.AddScore(enemy.KillScore)
			s.gameState.PlaySound(audio.SoundEnemyDeath)
			s.spawnEffect(id)
			s.releaseDrop(id)
			log.Printf("[DeathSystem] 敌人 %d (%s) 被击杀，得分 +%d", id, enemy.Type, enemy.KillScore)
		case ecs.HasComponent[*components.DestructibleComponent](s.entityManager, id):
			s.gameState.PlaySound(audio.SoundBreak)
			s.spawnEffect(id)
			s.releaseDrop(id)
		}

		s.entityManager.DestroyEntity(id)
	}
}

// hitCenter 返回实体碰撞体中心的世界坐标
func (s *DeathSystem) hitCenter(id ecs.EntityID) (mgl64.Vec2, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return mgl64.Vec2{}, false
	}
	center := pos.Vec()
	if collision, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
		center = center.Add(mgl64.Vec2{collision.OffsetX, collision.OffsetY})
	}
	return center, true
}

// spawnEffect 在死亡位置播放扩散圆环
func (s *DeathSystem) spawnEffect(id ecs.EntityID) {
	center, ok := s.hitCenter(id)
	if !ok {
		return
	}
	depth := 1
	if d, ok := ecs.GetComponent[*components.DepthComponent](s.entityManager, id); ok {
		depth = d.Depth
	}
	radius := 6.0
	if collision, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
		if collision.Shape == components.CollisionBox {
			radius = collision.Height / 2
		} else {
			radius = collision.Radius
		}
	}
	if _, err := entities.NewDeathEffect(s.entityManager, center, depth, radius); err != nil {
		log.Printf("[DeathSystem] Failed to create death effect: %v", err)
	}
}

// releaseDrop 在持有者位置生成掉落物，掉落物自身的坐标被忽略
func (s *DeathSystem) releaseDrop(id ecs.EntityID) {
	drop, ok := ecs.GetComponent[*components.SpawnDropComponent](s.entityManager, id)
	if !ok {
		return
	}
	spawn := drop.Contains.Spawn()
	if spawn == nil {
		return
	}
	center, ok := s.hitCenter(id)
	if !ok {
		return
	}
	dropped := *spawn
	if dropped.Depth == 0 {
		if d, ok := ecs.GetComponent[*components.DepthComponent](s.entityManager, id); ok {
			dropped.Depth = d.Depth
		}
	}
	if _, err := entities.SpawnFromStage(s.entityManager, s.stats, &dropped, center); err != nil {
		log.Printf("[DeathSystem] Failed to release drop of %d: %v", id, err)
	}
}

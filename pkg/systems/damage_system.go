package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/internal/audio"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/entities"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// DamageSystem 结算玩家攻击对可命中实体的伤害
// 每次攻击对每个实体只检测一次（命中列表），命中后扣血并闪烁，生命归零时标记死亡
type DamageSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
}

// NewDamageSystem 创建伤害系统
func NewDamageSystem(em *ecs.EntityManager, gs *game.GameState) *DamageSystem {
	return &DamageSystem{entityManager: em, gameState: gs}
}

// Update 检测所有存活的玩家攻击
func (s *DamageSystem) Update(deltaTime float64) {
	attacks := ecs.GetEntitiesWith2[*components.PlayerAttackComponent, *components.PositionComponent](s.entityManager)
	if len(attacks) == 0 {
		return
	}
	targets := ecs.GetEntitiesWith4[*components.HittableComponent, *components.PositionComponent,
		*components.CollisionComponent, *components.HealthComponent](s.entityManager)

	for _, attackID := range attacks {
		if s.entityManager.IsPendingDestroy(attackID) {
			continue
		}
		attack, _ := ecs.GetComponent[*components.PlayerAttackComponent](s.entityManager, attackID)
		attackPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, attackID)

		for _, targetID := range targets {
			if s.entityManager.IsPendingDestroy(targetID) || ecs.HasComponent[*components.DeadComponent](s.entityManager, targetID) {
				continue
			}
			if attack.MarkTested(targetID) {
				continue
			}
			pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, targetID)
			collision, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, targetID)
			if !IsHit(attackPos.Vec(), attack.Radius, pos.Vec(), collision) {
				continue
			}
			s.hit(targetID, attack.Damage)
		}
	}
}

// hit 对目标造成伤害
func (s *DamageSystem) hit(id ecs.EntityID, damage int) {
	health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if health.TakeDamage(damage) {
		ecs.AddComponent(s.entityManager, id, &components.DeadComponent{})
		return
	}
	entities.StartFlash(s.entityManager, id)
	s.gameState.PlaySound(audio.SoundEnemyHit)
}

// IsHit 判断攻击点是否命中碰撞体
// 圆形：距离小于两者半径之和；矩形：攻击点落在按攻击半径扩展后的矩形内
func IsHit(attackPos mgl64.Vec2, attackRadius float64, targetPos mgl64.Vec2, collision *components.CollisionComponent) bool {
	center := targetPos.Add(mgl64.Vec2{collision.OffsetX, collision.OffsetY})
	switch collision.Shape {
	case components.CollisionBox:
		return utils.PointInRect(attackPos, center, collision.Width+2*attackRadius, collision.Height+2*attackRadius)
	default:
		return utils.PointInCircle(attackPos, center, collision.Radius+attackRadius)
	}
}

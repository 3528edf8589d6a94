package systems

import (
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/internal/audio"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/entities"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

// EnemyAttackSystem 负责敌人开火和攻击命中结算
//
// 开火时机：
//   - attack 行为开始时立即开火一次
//   - idle 行为期间冷却结束即开火
//   - 移动/跳跃行为标记 Attacking 时同样按冷却开火
//
// 攻击到达目标深度时，若在可视区域内则伤害玩家，否则判为落空
type EnemyAttackSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	camera        *CameraSystem
	rng           *rand.Rand
}

// NewEnemyAttackSystem 创建敌人攻击系统
// rng 为 nil 时使用按当前时间播种的随机源
func NewEnemyAttackSystem(em *ecs.EntityManager, gs *game.GameState, camera *CameraSystem, rng *rand.Rand) *EnemyAttackSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &EnemyAttackSystem{
		entityManager: em,
		gameState:     gs,
		camera:        camera,
		rng:           rng,
	}
}

// Update 处理开火和命中
func (s *EnemyAttackSystem) Update(deltaTime float64) {
	s.fire()
	s.resolve()
}

// fire 检查每个敌人是否应当开火
func (s *EnemyAttackSystem) fire() {
	now := s.gameState.StageElapsed
	ids := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.EnemyAttackingComponent, *components.EnemyCurrentBehaviorComponent](s.entityManager)

	for _, id := range ids {
		if s.entityManager.IsPendingDestroy(id) || ecs.HasComponent[*components.DeadComponent](s.entityManager, id) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		if enemy.Attack.Kind == config.AttackNone {
			continue
		}
		attacking, _ := ecs.GetComponent[*components.EnemyAttackingComponent](s.entityManager, id)
		current, _ := ecs.GetComponent[*components.EnemyCurrentBehaviorComponent](s.entityManager, id)

		shouldFire := false
		switch current.Step.Kind {
		case config.EnemyStepAttack:
			shouldFire = attacking.IsAttacking
			attacking.IsAttacking = false
		case config.EnemyStepIdle:
			shouldFire = attacking.CanAttack(now, enemy.Attack.Cooldown)
		case config.EnemyStepLinearMovement, config.EnemyStepJump:
			shouldFire = current.Step.Attacking && attacking.CanAttack(now, enemy.Attack.Cooldown)
		}
		if !shouldFire {
			continue
		}

		if err := s.spawnAttack(id, enemy); err != nil {
			log.Printf("[EnemyAttackSystem] Failed to spawn attack for enemy %d: %v", id, err)
			continue
		}
		attacking.LastAttackStarted = now
		attacking.HasAttacked = true
	}
}

// spawnAttack 从敌人位置向屏幕中心发射攻击
func (s *EnemyAttackSystem) spawnAttack(id ecs.EntityID, enemy *components.EnemyComponent) error {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	depth := config.MaxDepth
	if d, ok := ecs.GetComponent[*components.DepthComponent](s.entityManager, id); ok {
		depth = d.Depth
	}

	target := s.gameState.Camera().Add(config.CameraCenter())
	if enemy.Attack.Kind == config.AttackBoulder && enemy.Attack.Randomness > 0 {
		target = target.Add(mgl64.Vec2{
			(s.rng.Float64()*2 - 1) * enemy.Attack.Randomness,
			(s.rng.Float64()*2 - 1) * enemy.Attack.Randomness,
		})
	}

	if _, err := entities.NewEnemyAttack(s.entityManager, enemy.Attack, pos.Vec(), depth, target); err != nil {
		return err
	}

	sound := audio.SoundBloodShot
	if enemy.Attack.Kind == config.AttackBoulder {
		sound = audio.SoundBoulderThrow
	}
	s.gameState.PlaySound(sound)
	return nil
}

// resolve 结算已到达目标深度的攻击
func (s *EnemyAttackSystem) resolve() {
	ids := ecs.GetEntitiesWith3[*components.EnemyAttackComponent, *components.DepthMovementComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		movement, _ := ecs.GetComponent[*components.DepthMovementComponent](s.entityManager, id)
		if !movement.Reached {
			continue
		}
		attack, _ := ecs.GetComponent[*components.EnemyAttackComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if s.camera.ViewContains(pos.Vec()) {
			s.damagePlayer(attack.Damage)
			s.gameState.PlaySound(audio.SoundPlayerHit)
		} else {
			s.gameState.PlaySound(audio.SoundMiss)
		}
		s.entityManager.DestroyEntity(id)
	}
}

// damagePlayer 对所有玩家实体造成伤害，生命值不会低于 0
func (s *EnemyAttackSystem) damagePlayer(amount int) {
	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.HealthComponent](s.entityManager)
	for _, id := range ids {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		health.TakeDamage(amount)
		entities.StartFlash(s.entityManager, id)
	}
}

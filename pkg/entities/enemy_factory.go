package entities

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

// enemyFlashDuration 受击闪烁时长（秒）
const enemyFlashDuration = 0.2

// NewEnemy 根据生成项和类型属性创建敌人实体
//
// 参数：
//
//	em - 实体管理器
//	stats - 敌人类型属性
//	spawn - 关卡脚本中的生成项（Health、Depth 非零时覆盖默认值）
//	world - 生成位置的世界坐标
//
// 返回：
//
//	ecs.EntityID - 敌人实体 ID
//	error - 参数非法时返回错误
func NewEnemy(em *ecs.EntityManager, stats *config.EnemyStats, spawn *config.StageSpawn, world mgl64.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if stats == nil {
		return 0, fmt.Errorf("enemy stats cannot be nil")
	}
	if spawn == nil {
		return 0, fmt.Errorf("enemy spawn cannot be nil")
	}

	health := stats.Health
	if spawn.Health > 0 {
		health = spawn.Health
	}
	depth := stats.Depth
	if spawn.Depth > 0 {
		depth = spawn.Depth
	}
	baseSpeed := spawn.BaseSpeed
	if baseSpeed <= 0 {
		baseSpeed = 1.0
	}
	radius := stats.Radius * components.DepthScale(depth)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: world.X(), Y: world.Y()})
	ecs.AddComponent(em, id, &components.DepthComponent{Depth: depth})
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Type:            spawn.EnemyType,
		BaseSpeed:       baseSpeed,
		KillScore:       stats.KillScore,
		Boss:            stats.Boss,
		Radius:          stats.Radius,
		Palette:         stats.Palette,
		Attack:          stats.Attack,
		CircleRadius:    spawn.Radius,
		CircleDirection: spawn.Direction,
		TimeOffset:      spawn.TimeOffset,
	})
	steps := make([]config.EnemyStep, len(spawn.Steps))
	copy(steps, spawn.Steps)
	ecs.AddComponent(em, id, &components.EnemyBehaviorsComponent{Steps: steps})
	ecs.AddComponent(em, id, &components.EnemyAttackingComponent{})
	ecs.AddComponent(em, id, &components.HealthComponent{CurrentHealth: health, MaxHealth: health})
	ecs.AddComponent(em, id, &components.HittableComponent{})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Shape:  components.CollisionCircle,
		Radius: radius,
	})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Layer:   components.DepthLayer(depth),
		Canvas:  components.CanvasWorld,
		Shape:   components.ShapeCircle,
		Radius:  radius,
		Palette: stats.Palette,
	})
	if spawn.Contains != nil {
		ecs.AddComponent(em, id, &components.SpawnDropComponent{Contains: *spawn.Contains})
	}
	ecs.AddComponent(em, id, &components.StageEntityComponent{})

	log.Printf("[EnemyFactory] 创建敌人 %d: type=%s depth=%d health=%d boss=%v pos=(%.1f, %.1f)",
		id, spawn.EnemyType, depth, health, stats.Boss, world.X(), world.Y())
	return id, nil
}

// StartFlash 为实体添加（或重置）受击闪烁
func StartFlash(em *ecs.EntityManager, id ecs.EntityID) {
	ecs.AddComponent(em, id, &components.FlashEffectComponent{
		Duration: enemyFlashDuration,
		IsActive: true,
	})
}

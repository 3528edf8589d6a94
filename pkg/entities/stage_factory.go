package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

// DeathEffectDuration 死亡特效的存在时间（秒）
const DeathEffectDuration = 0.3

// objectShape 装饰物的尺寸和默认深度
type objectShape struct {
	width, height float64
	depth         int
	palette       config.PaletteIndex
}

var objectShapes = map[config.ObjectType]objectShape{
	config.ObjectFibertree:  {width: 20, height: 40, depth: 7, palette: config.PaletteDark},
	config.ObjectBenchBig:   {width: 24, height: 10, depth: 5, palette: config.PaletteDarkest},
	config.ObjectBenchSmall: {width: 14, height: 8, depth: 5, palette: config.PaletteDarkest},
}

// SpawnFromStage 根据生成项类型分派到对应的工厂函数
//
// 参数：
//
//	em - 实体管理器
//	stats - 敌人与可破坏物属性表
//	spawn - 生成项
//	world - 生成位置的世界坐标
//
// 返回：
//
//	ecs.EntityID - 新实体 ID
//	error - 未知类型或属性缺失时返回错误
func SpawnFromStage(em *ecs.EntityManager, stats *config.EnemyStatsConfig, spawn *config.StageSpawn, world mgl64.Vec2) (ecs.EntityID, error) {
	if spawn == nil {
		return 0, fmt.Errorf("spawn cannot be nil")
	}
	if stats == nil {
		stats = &config.EnemyStatsConfig{}
	}

	switch spawn.Kind {
	case config.SpawnObject:
		return NewObject(em, spawn, world)
	case config.SpawnDestructible:
		return NewDestructible(em, stats.GetDestructibleStats(spawn.DestructibleType), spawn, world)
	case config.SpawnPickup:
		return NewPickup(em, spawn, world)
	case config.SpawnEnemy:
		enemyStats, ok := stats.GetEnemyStats(spawn.EnemyType)
		if !ok {
			return 0, fmt.Errorf("no stats for enemy type %q", spawn.EnemyType)
		}
		return NewEnemy(em, enemyStats, spawn, world)
	}
	return 0, fmt.Errorf("unknown spawn kind %q", spawn.Kind)
}

// NewObject 创建不可交互的装饰物，位置为底边中点
func NewObject(em *ecs.EntityManager, spawn *config.StageSpawn, world mgl64.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	shape, ok := objectShapes[spawn.ObjectType]
	if !ok {
		return 0, fmt.Errorf("unknown object type %q", spawn.ObjectType)
	}
	depth := shape.depth
	if spawn.Depth > 0 {
		depth = spawn.Depth
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: world.X(), Y: world.Y()})
	ecs.AddComponent(em, id, &components.DepthComponent{Depth: depth})
	ecs.AddComponent(em, id, &components.ObjectComponent{Type: spawn.ObjectType})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Layer:   components.DepthLayer(depth),
		Canvas:  components.CanvasWorld,
		Shape:   components.ShapeRect,
		Width:   shape.width,
		Height:  shape.height,
		Palette: shape.palette,
	})
	ecs.AddComponent(em, id, &components.StageEntityComponent{})
	return id, nil
}

// NewDestructible 创建可破坏物，位置为底边中点，碰撞盒向上偏移半个高度
//
// 参数：
//
//	em - 实体管理器
//	stats - 可破坏物类型属性
//	spawn - 生成项（Health、Depth 非零时覆盖默认值）
//	world - 世界坐标
//
// 返回：
//
//	ecs.EntityID - 实体 ID
//	error - em 为 nil 时返回错误
func NewDestructible(em *ecs.EntityManager, stats config.DestructibleStats, spawn *config.StageSpawn, world mgl64.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	health := stats.Health
	if spawn.Health > 0 {
		health = spawn.Health
	}
	depth := stats.Depth
	if spawn.Depth > 0 {
		depth = spawn.Depth
	}
	scale := components.DepthScale(depth)
	width, height := stats.Width*scale, stats.Height*scale

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: world.X(), Y: world.Y()})
	ecs.AddComponent(em, id, &components.DepthComponent{Depth: depth})
	ecs.AddComponent(em, id, &components.DestructibleComponent{Type: spawn.DestructibleType})
	ecs.AddComponent(em, id, &components.HealthComponent{CurrentHealth: health, MaxHealth: health})
	ecs.AddComponent(em, id, &components.HittableComponent{})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Shape:   components.CollisionBox,
		Width:   width,
		Height:  height,
		OffsetY: height / 2,
	})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Layer:   components.DepthLayer(depth),
		Canvas:  components.CanvasWorld,
		Shape:   components.ShapeRect,
		Width:   width,
		Height:  height,
		Palette: config.PaletteDark,
	})
	if spawn.Contains != nil {
		ecs.AddComponent(em, id, &components.SpawnDropComponent{Contains: *spawn.Contains})
	}
	ecs.AddComponent(em, id, &components.StageEntityComponent{})
	return id, nil
}

// pickupHeal 返回拾取物的回复量
func pickupHeal(t config.PickupType) int {
	if t == config.PickupBigHealthpack {
		return config.BigHealthpackHeal
	}
	return config.SmallHealthpackHeal
}

// NewPickup 创建血包，被玩家击中后回复生命
func NewPickup(em *ecs.EntityManager, spawn *config.StageSpawn, world mgl64.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	depth := spawn.Depth
	if depth <= 0 {
		depth = 1
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: world.X(), Y: world.Y()})
	ecs.AddComponent(em, id, &components.DepthComponent{Depth: depth})
	ecs.AddComponent(em, id, &components.PickupComponent{
		Type: spawn.PickupType,
		Heal: pickupHeal(spawn.PickupType),
	})
	ecs.AddComponent(em, id, &components.HealthComponent{CurrentHealth: 1, MaxHealth: 1})
	ecs.AddComponent(em, id, &components.HittableComponent{})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Shape:  components.CollisionCircle,
		Radius: config.PickupRadius,
	})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Layer:   components.LayerPickups,
		Canvas:  components.CanvasWorld,
		Shape:   components.ShapeRing,
		Radius:  config.PickupRadius,
		Palette: config.PaletteLightest,
	})
	ecs.AddComponent(em, id, &components.StageEntityComponent{})
	return id, nil
}

// NewDeathEffect 在死亡位置创建短暂的扩散圆环
func NewDeathEffect(em *ecs.EntityManager, world mgl64.Vec2, depth int, radius float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: world.X(), Y: world.Y()})
	ecs.AddComponent(em, id, &components.DepthComponent{Depth: depth})
	ecs.AddComponent(em, id, &components.DeathEffectComponent{Radius: radius})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: DeathEffectDuration})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Layer:   components.DepthLayer(depth),
		Canvas:  components.CanvasWorld,
		Shape:   components.ShapeRing,
		Radius:  radius,
		Palette: config.PaletteLightest,
	})
	ecs.AddComponent(em, id, &components.StageEntityComponent{})
	return id, nil
}

package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

// NewCamera 创建摄像机实体
// 摄像机位置即视野左下角的世界坐标（含 HUD 区域）
//
// 参数：
//
//	em - 实体管理器
//	start - 初始世界坐标
//
// 返回：
//
//	ecs.EntityID - 摄像机实体 ID
//	error - em 为 nil 时返回错误
func NewCamera(em *ecs.EntityManager, start mgl64.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: start.X(), Y: start.Y()})
	ecs.AddComponent(em, id, &components.CameraComponent{Target: start})
	return id, nil
}

// NewPlayer 创建玩家准星实体
// 准星使用摄像机坐标，初始位于可视区域中心
//
// 参数：
//
//	em - 实体管理器
//	crosshairIndex - 准星样式索引（来自设置）
//
// 返回：
//
//	ecs.EntityID - 玩家实体 ID
//	error - em 为 nil 时返回错误
func NewPlayer(em *ecs.EntityManager, crosshairIndex int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	center := config.CameraCenter()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: center.X(), Y: center.Y()})
	ecs.AddComponent(em, id, &components.PlayerComponent{CrosshairIndex: crosshairIndex})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: config.PlayerMaxHealth,
		MaxHealth:     config.PlayerMaxHealth,
	})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Layer:   components.LayerFront,
		Canvas:  components.CanvasCamera,
		Shape:   components.ShapeCrosshair,
		Radius:  config.PlayerCrosshairSize / 2,
		Palette: config.PaletteDarkest,
	})
	ecs.AddComponent(em, id, &components.StageEntityComponent{})
	return id, nil
}

// weaponStats 返回武器的伤害和判定半径
func weaponStats(weapon components.Weapon) (int, float64) {
	if weapon == components.WeaponGun {
		return config.GunDamage, config.GunRadius
	}
	return config.PincerDamage, config.PincerRadius
}

// NewPlayerAttack 在世界坐标处创建一次玩家攻击判定
// 判定实体只存在很短时间，期间由伤害系统逐个检测可命中实体
//
// 参数：
//
//	em - 实体管理器
//	weapon - 武器类型
//	world - 攻击点的世界坐标（摄像机位置 + 准星位置）
//
// 返回：
//
//	ecs.EntityID - 攻击实体 ID
//	error - em 为 nil 时返回错误
func NewPlayerAttack(em *ecs.EntityManager, weapon components.Weapon, world mgl64.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	damage, radius := weaponStats(weapon)
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: world.X(), Y: world.Y()})
	ecs.AddComponent(em, id, components.NewPlayerAttackComponent(weapon, damage, radius))
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: config.PlayerAttackDuration})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Layer:   components.LayerFront,
		Canvas:  components.CanvasWorld,
		Shape:   components.ShapeRing,
		Radius:  radius,
		Palette: config.PaletteDark,
	})
	ecs.AddComponent(em, id, &components.StageEntityComponent{})
	return id, nil
}

package entities

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

// minFlightTime 攻击飞行时间下限，避免深度差为零时速度无穷大
const minFlightTime = 0.1

// defaultBoulderGravity 未配置重力时石块使用的加速度
const defaultBoulderGravity = -60.0

// AttackTargetDepth 返回攻击飞行的目标深度
// 石块落在玩家前一层，血弹直达玩家平面
func AttackTargetDepth(kind config.AttackKind) int {
	if kind == config.AttackBoulder {
		return config.PlayerDepth + 1
	}
	return config.PlayerDepth
}

// FlightTime 根据深度差和深度速度计算飞行时间
func FlightTime(depth, targetDepth int, depthSpeed float64) float64 {
	if depthSpeed <= 0 {
		return minFlightTime
	}
	t := math.Abs(float64(depth-targetDepth)) / depthSpeed
	return math.Max(t, minFlightTime)
}

// BallisticVelocity 求解抛物线初速度
// 水平匀速，竖直方向在重力 gravity 下经过 t 秒抵达 delta，竖直初速度不小于 0
func BallisticVelocity(delta mgl64.Vec2, gravity, t float64) mgl64.Vec2 {
	vx := delta.X() / t
	vy := math.Max(0, (delta.Y()-0.5*gravity*t*t)/t)
	return mgl64.Vec2{vx, vy}
}

// NewEnemyAttack 创建敌人攻击实体（血弹或石块）
// 攻击沿深度方向飞向玩家，到达目标深度时由攻击系统结算命中
//
// 参数：
//
//	em - 实体管理器
//	attack - 攻击参数
//	origin - 发射点世界坐标
//	depth - 发射者所在深度
//	target - 瞄准点世界坐标（石块的随机偏移由调用方加入）
//
// 返回：
//
//	ecs.EntityID - 攻击实体 ID
//	error - em 为 nil 或攻击方式未知时返回错误
func NewEnemyAttack(em *ecs.EntityManager, attack config.AttackStats, origin mgl64.Vec2, depth int, target mgl64.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	targetDepth := AttackTargetDepth(attack.Kind)
	t := FlightTime(depth, targetDepth, attack.DepthSpeed)
	delta := target.Sub(origin)

	movement := &components.LinearMovementComponent{}
	switch attack.Kind {
	case config.AttackBlood:
		movement.Velocity = delta.Mul(1 / t)
	case config.AttackBoulder:
		gravity := attack.Gravity
		if gravity == 0 {
			gravity = defaultBoulderGravity
		}
		movement.Velocity = BallisticVelocity(delta, gravity, t)
		movement.Acceleration = mgl64.Vec2{0, gravity}
	default:
		return 0, fmt.Errorf("unknown attack kind %q", attack.Kind)
	}

	depthSpeed := attack.DepthSpeed
	if depth > targetDepth {
		depthSpeed = -depthSpeed
	}
	health := attack.Health
	if health <= 0 {
		health = 1
	}
	radius := attack.Radius * components.DepthScale(depth)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: origin.X(), Y: origin.Y()})
	ecs.AddComponent(em, id, &components.DepthComponent{Depth: depth})
	ecs.AddComponent(em, id, &components.DepthMovementComponent{
		Progress: float64(depth),
		Speed:    depthSpeed,
		Target:   targetDepth,
		Reached:  depth == targetDepth,
	})
	ecs.AddComponent(em, id, movement)
	ecs.AddComponent(em, id, &components.EnemyAttackComponent{
		Kind:   attack.Kind,
		Damage: attack.Damage,
		Radius: attack.Radius,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{CurrentHealth: health, MaxHealth: health})
	ecs.AddComponent(em, id, &components.HittableComponent{})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Shape:  components.CollisionCircle,
		Radius: radius,
	})
	ecs.AddComponent(em, id, &components.RenderComponent{
		Layer:   components.LayerAttack,
		Canvas:  components.CanvasWorld,
		Shape:   components.ShapeCircle,
		Radius:  radius,
		Palette: config.PaletteDarkest,
	})
	ecs.AddComponent(em, id, &components.StageEntityComponent{})
	return id, nil
}

package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

const (
	// JumpGravity 跳跃时的竖直加速度（像素/秒²）
	JumpGravity = -120.0
	// MinJumpDuration 跳跃的最短时长（秒）
	MinJumpDuration = 0.5
)

// EnemyBehaviorSystem 依次执行敌人的行为步骤
// 行为列表循环执行；列表为空时敌人一直绕圈
type EnemyBehaviorSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	floorHeight   func(depth int) float64
}

// NewEnemyBehaviorSystem 创建敌人行为系统
// floorHeight 可为 nil，用于跳跃落地时贴合对应深度的地面
func NewEnemyBehaviorSystem(em *ecs.EntityManager, gs *game.GameState, floorHeight func(depth int) float64) *EnemyBehaviorSystem {
	return &EnemyBehaviorSystem{
		entityManager: em,
		gameState:     gs,
		floorHeight:   floorHeight,
	}
}

// Update 结束到时的行为并为空闲的敌人开始下一个行为
func (s *EnemyBehaviorSystem) Update(deltaTime float64) {
	now := s.gameState.StageElapsed
	ids := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.EnemyBehaviorsComponent](s.entityManager)

	for _, id := range ids {
		if s.entityManager.IsPendingDestroy(id) || ecs.HasComponent[*components.DeadComponent](s.entityManager, id) {
			continue
		}

		current, ok := ecs.GetComponent[*components.EnemyCurrentBehaviorComponent](s.entityManager, id)
		if ok {
			if !s.isFinished(id, current, now) {
				continue
			}
			s.finish(id, current)
		}
		s.begin(id, now)
	}
}

// isFinished 判断当前行为是否结束
func (s *EnemyBehaviorSystem) isFinished(id ecs.EntityID, current *components.EnemyCurrentBehaviorComponent, now float64) bool {
	switch current.Step.Kind {
	case config.EnemyStepLinearMovement:
		movement, ok := ecs.GetComponent[*components.LinearMovementComponent](s.entityManager, id)
		return !ok || movement.Reached()
	default:
		return current.Expired(now)
	}
}

// finish 清理当前行为留下的运动组件
func (s *EnemyBehaviorSystem) finish(id ecs.EntityID, current *components.EnemyCurrentBehaviorComponent) {
	if current.Step.Kind == config.EnemyStepJump {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
			pos.SetVec(current.Target)
		}
	}
	ecs.RemoveComponent[*components.EnemyCurrentBehaviorComponent](s.entityManager, id)
	ecs.RemoveComponent[*components.CircleAroundComponent](s.entityManager, id)
	ecs.RemoveComponent[*components.LinearMovementComponent](s.entityManager, id)
}

// begin 取出下一个行为并应用
func (s *EnemyBehaviorSystem) begin(id ecs.EntityID, now float64) {
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	behaviors, _ := ecs.GetComponent[*components.EnemyBehaviorsComponent](s.entityManager, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

	step := behaviors.Next()
	current := &components.EnemyCurrentBehaviorComponent{Step: step, Started: now}

	if attacking, ok := ecs.GetComponent[*components.EnemyAttackingComponent](s.entityManager, id); ok {
		attacking.IsAttacking = step.Kind == config.EnemyStepAttack
	}

	switch step.Kind {
	case config.EnemyStepIdle, config.EnemyStepAttack:
		current.Duration = step.Duration

	case config.EnemyStepLinearMovement:
		velocity := utils.NormalizeOrZero(step.Coordinates).Mul(step.Speed * enemy.BaseSpeed)
		movement := components.NewLinearMovementTo(pos.Vec().Add(step.Coordinates), velocity)
		movement.ReachedX = velocity.X() == 0
		movement.ReachedY = velocity.Y() == 0
		ecs.AddComponent(s.entityManager, id, movement)

	case config.EnemyStepCircle:
		current.Duration = step.Duration
		ecs.AddComponent(s.entityManager, id, newCircleAround(enemy, step, pos.Vec(), now))

	case config.EnemyStepJump:
		target := pos.Vec().Add(step.Coordinates)
		if s.floorHeight != nil {
			if depth, ok := ecs.GetComponent[*components.DepthComponent](s.entityManager, id); ok {
				target[1] = math.Max(target.Y(), s.floorHeight(depth.Depth))
			}
		}
		duration, velocity := jumpSolution(target.Sub(pos.Vec()), step.Speed*enemy.BaseSpeed)
		current.Duration = duration
		current.Target = target
		ecs.AddComponent(s.entityManager, id, &components.LinearMovementComponent{
			Velocity:     velocity,
			Acceleration: mgl64.Vec2{0, JumpGravity},
		})
	}

	ecs.AddComponent(s.entityManager, id, current)
}

// newCircleAround 创建绕圈组件，中心点选在让敌人从当前位置开始绕圈的位置
func newCircleAround(enemy *components.EnemyComponent, step config.EnemyStep, pos mgl64.Vec2, now float64) *components.CircleAroundComponent {
	radius := step.Radius
	if radius == 0 {
		radius = enemy.CircleRadius
	}
	direction := step.Direction
	if direction == "" {
		direction = enemy.CircleDirection
	}

	sign := direction.Sign()
	angle := CircleAngle(sign, now, enemy.TimeOffset)
	center := pos.Sub(mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(radius))
	return &components.CircleAroundComponent{
		Center:     center,
		Radius:     radius,
		Direction:  sign,
		TimeOffset: enemy.TimeOffset,
	}
}

// jumpSolution 计算跳跃时长和初速度
// 时长 = 距离 / 速度（不短于 MinJumpDuration），在 JumpGravity 下恰好于时长结束时抵达
func jumpSolution(delta mgl64.Vec2, speed float64) (float64, mgl64.Vec2) {
	duration := MinJumpDuration
	if speed > 0 {
		duration = math.Max(MinJumpDuration, delta.Len()/speed)
	}
	velocity := mgl64.Vec2{
		delta.X() / duration,
		delta.Y()/duration - 0.5*JumpGravity*duration,
	}
	return duration, velocity
}

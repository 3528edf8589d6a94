package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/config"
)

// EnemyComponent 敌人的基础属性
type EnemyComponent struct {
	Type      config.EnemyType
	BaseSpeed float64
	KillScore int
	Boss      bool
	Radius    float64 // 命中半径（深度 1 时）
	Palette   config.PaletteIndex
	Attack    config.AttackStats

	// 生成项给出的绕圈参数，用于未指定半径或方向的 circle 步骤
	CircleRadius    float64
	CircleDirection config.MovementDirection
	TimeOffset      float64
}

// EnemyBehaviorsComponent 敌人的行为步骤列表，循环执行
type EnemyBehaviorsComponent struct {
	Steps []config.EnemyStep
	Index int
}

// Next 返回下一个行为步骤
// 步骤列表为空时返回一个不限时的绕圈步骤
func (b *EnemyBehaviorsComponent) Next() config.EnemyStep {
	if len(b.Steps) == 0 {
		return config.EnemyStep{Kind: config.EnemyStepCircle}
	}
	step := b.Steps[b.Index%len(b.Steps)]
	b.Index = (b.Index + 1) % len(b.Steps)
	return step
}

// EnemyCurrentBehaviorComponent 当前正在执行的行为步骤
type EnemyCurrentBehaviorComponent struct {
	Step     config.EnemyStep
	Started  float64    // 开始时的关卡时间
	Duration float64    // 限时行为的时长，0 表示由移动到达决定或不限时
	Target   mgl64.Vec2 // 跳跃落点（世界坐标）
}

// Expired 判断限时行为是否已到时
func (b *EnemyCurrentBehaviorComponent) Expired(now float64) bool {
	return b.Duration > 0 && now-b.Started >= b.Duration
}

// EnemyAttackingComponent 敌人的攻击状态
type EnemyAttackingComponent struct {
	// IsAttacking 当前 attack 步骤是否已经出手
	IsAttacking bool
	// LastAttackStarted 上次出手的关卡时间
	LastAttackStarted float64
	// HasAttacked 是否出过手，第一次自动攻击不受冷却限制
	HasAttacked bool
}

// CanAttack 冷却是否已结束
func (a *EnemyAttackingComponent) CanAttack(now, cooldown float64) bool {
	if !a.HasAttacked {
		return true
	}
	return now-a.LastAttackStarted >= cooldown
}

// EnemyAttackComponent 敌人发出的攻击（血弹、石块）
type EnemyAttackComponent struct {
	Kind   config.AttackKind
	Damage int
	Radius float64 // 深度 1 时的半径，随深度缩放
}

package components

import "github.com/marcotoniut/carcenisation/pkg/ecs"

// Weapon 玩家武器
type Weapon int

const (
	// WeaponPincer 钳击（A 键），范围大、冷却长
	WeaponPincer Weapon = iota
	// WeaponGun 枪击（B 键），范围小、冷却短
	WeaponGun
)

// String 返回武器名称
func (w Weapon) String() string {
	switch w {
	case WeaponPincer:
		return "pincer"
	case WeaponGun:
		return "gun"
	}
	return "unknown"
}

// PlayerComponent 玩家（准星）
// 玩家位置是摄像机坐标，攻击位置 = 摄像机位置 + 玩家位置
type PlayerComponent struct {
	CrosshairIndex int

	// 每种武器剩余的冷却时间（秒）
	PincerCooldown float64
	GunCooldown    float64
}

// PlayerAttackComponent 玩家攻击的判定实体
// HitList 记录已经检测过的实体，每个实体只会被同一次攻击检测一次
type PlayerAttackComponent struct {
	Weapon  Weapon
	Damage  int
	Radius  float64
	HitList map[ecs.EntityID]struct{}
}

// NewPlayerAttackComponent 创建攻击判定
func NewPlayerAttackComponent(weapon Weapon, damage int, radius float64) *PlayerAttackComponent {
	return &PlayerAttackComponent{
		Weapon:  weapon,
		Damage:  damage,
		Radius:  radius,
		HitList: make(map[ecs.EntityID]struct{}),
	}
}

// MarkTested 记录实体已检测，返回该实体此前是否已检测过
func (a *PlayerAttackComponent) MarkTested(id ecs.EntityID) bool {
	if _, ok := a.HitList[id]; ok {
		return true
	}
	a.HitList[id] = struct{}{}
	return false
}

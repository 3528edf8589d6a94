package components

import "github.com/marcotoniut/carcenisation/pkg/config"

// StageEntityComponent 标记属于当前关卡的实体，关卡结束或重开时统一清理
type StageEntityComponent struct{}

// DestructibleComponent 可破坏物（路灯、植物、窗户、水晶、蘑菇）
type DestructibleComponent struct {
	Type config.DestructibleType
}

// ObjectComponent 纯装饰物体
type ObjectComponent struct {
	Type config.ObjectType
}

// PickupComponent 拾取物，被玩家击中后生效
type PickupComponent struct {
	Type config.PickupType
	Heal int
}

// SpawnDropComponent 实体死亡时释放的掉落物
type SpawnDropComponent struct {
	Contains config.ContainerSpawn
}

// DeathEffectComponent 死亡特效，只用于绘制
type DeathEffectComponent struct {
	Radius float64
}

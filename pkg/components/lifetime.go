package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理短暂存在的实体（死亡特效、玩家攻击判定）
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}

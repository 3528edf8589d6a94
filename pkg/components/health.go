package components

// HealthComponent 存储实体的生命值信息
// 用于玩家、敌人、可破坏物和可被击落的敌方攻击
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// TakeDamage 扣除生命值，最低为 0
// 返回：扣除后是否归零
func (h *HealthComponent) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	h.CurrentHealth -= amount
	if h.CurrentHealth < 0 {
		h.CurrentHealth = 0
	}
	return h.CurrentHealth == 0
}

// Heal 回复生命值，不超过最大值
func (h *HealthComponent) Heal(amount int) {
	h.CurrentHealth += amount
	if h.MaxHealth > 0 && h.CurrentHealth > h.MaxHealth {
		h.CurrentHealth = h.MaxHealth
	}
}

// IsDead 生命值是否归零
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}

// HittableComponent 标记可以被玩家攻击命中的实体
type HittableComponent struct{}

// DeadComponent 标记生命值归零、等待死亡处理的实体
type DeadComponent struct{}

// DamageComponent 命中时造成的伤害
type DamageComponent struct {
	Amount int
}

package config

import (
	"fmt"

	"github.com/marcotoniut/carcenisation/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// AttackKind 敌人攻击方式
type AttackKind string

const (
	// AttackNone 不会主动攻击
	AttackNone AttackKind = ""
	// AttackBlood 蚊子的远程血弹，直线飞向屏幕中央
	AttackBlood AttackKind = "blood"
	// AttackBoulder 水熊虫的抛石，带重力的弹道
	AttackBoulder AttackKind = "boulder"
)

// AttackStats 攻击参数
type AttackStats struct {
	Kind       AttackKind `yaml:"kind"`       // 攻击方式
	Cooldown   float64    `yaml:"cooldown"`   // 空闲时自动攻击的间隔（秒）
	Damage     int        `yaml:"damage"`     // 命中玩家造成的伤害
	DepthSpeed float64    `yaml:"depthSpeed"` // 深度速度（层/秒）
	Radius     float64    `yaml:"radius"`     // 攻击实体的命中半径（可被玩家击落）
	Health     int        `yaml:"health"`     // 攻击实体生命值
	Gravity    float64    `yaml:"gravity"`    // Y 轴加速度（负数向下）
	Randomness float64    `yaml:"randomness"` // 目标点随机偏移
}

// EnemyStats 单个敌人类型的属性配置
type EnemyStats struct {
	Health    int          `yaml:"health"`    // 生命值
	Radius    float64      `yaml:"radius"`    // 命中半径（深度 1 时）
	KillScore int          `yaml:"killScore"` // 击杀得分
	Boss      bool         `yaml:"boss"`      // 是否为 Boss
	Depth     int          `yaml:"depth"`     // 默认深度层
	Palette   PaletteIndex `yaml:"palette"`   // 绘制颜色
	Attack    AttackStats  `yaml:"attack"`    // 攻击参数
}

// DestructibleStats 可破坏物属性
type DestructibleStats struct {
	Health int     `yaml:"health"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  int     `yaml:"depth"`
}

// EnemyStatsConfig 敌人属性配置文件结构
type EnemyStatsConfig struct {
	Enemies       map[EnemyType]EnemyStats               `yaml:"enemies"`
	Destructibles map[DestructibleType]DestructibleStats `yaml:"destructibles"`
}

// LoadEnemyStats 从 YAML 文件加载敌人属性配置
// 参数：
//
//	filepath - 配置文件路径（以 "data/" 开头）
//
// 返回：
//
//	*EnemyStatsConfig - 解析后的配置对象
//	error - 如果文件读取或解析失败，返回错误信息
func LoadEnemyStats(filepath string) (*EnemyStatsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy stats file %s: %w", filepath, err)
	}
	return ParseEnemyStats(data, filepath)
}

// ParseEnemyStats 解析敌人属性 YAML
func ParseEnemyStats(data []byte, source string) (*EnemyStatsConfig, error) {
	var cfg EnemyStatsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse enemy stats YAML from %s: %w", source, err)
	}

	if err := validateEnemyStats(&cfg); err != nil {
		return nil, fmt.Errorf("invalid enemy stats in %s: %w", source, err)
	}

	return &cfg, nil
}

// validateEnemyStats 验证敌人属性配置的完整性和合法性
func validateEnemyStats(cfg *EnemyStatsConfig) error {
	if len(cfg.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}

	for enemyType, stats := range cfg.Enemies {
		if !validEnemyTypes[enemyType] {
			return fmt.Errorf("unknown enemy type %q", enemyType)
		}
		if stats.Health <= 0 {
			return fmt.Errorf("enemy %s: health must be positive, got %d", enemyType, stats.Health)
		}
		if stats.Radius <= 0 {
			return fmt.Errorf("enemy %s: radius must be positive, got %v", enemyType, stats.Radius)
		}
		if stats.Depth < MinDepth || stats.Depth > MaxDepth {
			return fmt.Errorf("enemy %s: depth must be between %d and %d, got %d", enemyType, MinDepth, MaxDepth, stats.Depth)
		}
		switch stats.Attack.Kind {
		case AttackNone:
		case AttackBlood, AttackBoulder:
			if stats.Attack.DepthSpeed <= 0 {
				return fmt.Errorf("enemy %s: attack depthSpeed must be positive", enemyType)
			}
			if stats.Attack.Cooldown < 0 {
				return fmt.Errorf("enemy %s: attack cooldown cannot be negative", enemyType)
			}
		default:
			return fmt.Errorf("enemy %s: unknown attack kind %q", enemyType, stats.Attack.Kind)
		}
	}

	for destructibleType, stats := range cfg.Destructibles {
		if !validDestructibleTypes[destructibleType] {
			return fmt.Errorf("unknown destructible type %q", destructibleType)
		}
		if stats.Health <= 0 {
			return fmt.Errorf("destructible %s: health must be positive, got %d", destructibleType, stats.Health)
		}
	}

	return nil
}

// GetEnemyStats 获取指定敌人类型的属性
// 如果类型不存在，返回 nil 和 false
func (c *EnemyStatsConfig) GetEnemyStats(enemyType EnemyType) (*EnemyStats, bool) {
	stats, ok := c.Enemies[enemyType]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// GetDestructibleStats 获取可破坏物属性，未配置的类型返回一个小型默认值
func (c *EnemyStatsConfig) GetDestructibleStats(destructibleType DestructibleType) DestructibleStats {
	if stats, ok := c.Destructibles[destructibleType]; ok {
		return stats
	}
	return DestructibleStats{Health: 20, Width: 8, Height: 16, Depth: 1}
}

package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// StepKind 关卡步骤类型
type StepKind string

const (
	StepMovement  StepKind = "movement"
	StepStop      StepKind = "stop"
	StepCinematic StepKind = "cinematic"
)

// SpawnKind 生成项类型
type SpawnKind string

const (
	SpawnObject       SpawnKind = "object"
	SpawnDestructible SpawnKind = "destructible"
	SpawnPickup       SpawnKind = "pickup"
	SpawnEnemy        SpawnKind = "enemy"
)

// ObjectType 纯装饰物体类型
type ObjectType string

const (
	ObjectFibertree  ObjectType = "fibertree"
	ObjectBenchBig   ObjectType = "bench_big"
	ObjectBenchSmall ObjectType = "bench_small"
)

// DestructibleType 可破坏物类型
type DestructibleType string

const (
	DestructibleLamp     DestructibleType = "lamp"
	DestructiblePlant    DestructibleType = "plant"
	DestructibleWindow   DestructibleType = "window"
	DestructibleCrystal  DestructibleType = "crystal"
	DestructibleMushroom DestructibleType = "mushroom"
)

// PickupType 拾取物类型
type PickupType string

const (
	PickupSmallHealthpack PickupType = "small_healthpack"
	PickupBigHealthpack   PickupType = "big_healthpack"
)

// EnemyType 敌人类型
type EnemyType string

const (
	EnemyMosquito    EnemyType = "mosquito"
	EnemyTardigrade  EnemyType = "tardigrade"
	EnemyKyle        EnemyType = "kyle"
	EnemyMarauder    EnemyType = "marauder"
	EnemySpidey      EnemyType = "spidey"
	EnemySpidomonsta EnemyType = "spidomonsta"
)

// MovementDirection 绕圈方向，right/left 是 positive/negative 的别名
type MovementDirection string

const (
	DirectionPositive MovementDirection = "positive"
	DirectionNegative MovementDirection = "negative"
)

// Sign 返回方向对应的符号
func (d MovementDirection) Sign() float64 {
	if d == DirectionNegative {
		return -1
	}
	return 1
}

// EnemyStepKind 敌人行为步骤类型
type EnemyStepKind string

const (
	EnemyStepLinearMovement EnemyStepKind = "linear_movement"
	EnemyStepIdle           EnemyStepKind = "idle"
	EnemyStepAttack         EnemyStepKind = "attack"
	EnemyStepCircle         EnemyStepKind = "circle"
	EnemyStepJump           EnemyStepKind = "jump"
)

// StageConfig 单个关卡的完整脚本
type StageConfig struct {
	Name             string       `yaml:"name"`             // 关卡名称，如 "Park"
	Music            string       `yaml:"music"`            // 关卡音乐 ID
	Background       Background   `yaml:"background"`       // 背景参数
	Skybox           Skybox       `yaml:"skybox"`           // 天空盒参数
	StartCoordinates mgl64.Vec2   `yaml:"startCoordinates"` // 摄像机起点，默认 [0, 0]
	FloorDepths      []float64    `yaml:"floorDepths"`      // 可选：各深度层的地面高度
	Spawns           []StageSpawn `yaml:"spawns"`           // 关卡开始时生成的实体（世界坐标）
	Steps            []StageStep  `yaml:"steps"`            // 关卡步骤序列
}

// Background 程序化背景参数
type Background struct {
	Width   float64      `yaml:"width"`   // 背景宽度，决定地面纹理重复周期
	Horizon float64      `yaml:"horizon"` // 地平线高度（世界坐标）
	Ground  PaletteIndex `yaml:"ground"`  // 地面颜色
}

// Skybox 程序化天空盒参数
type Skybox struct {
	Frames        int          `yaml:"frames"`        // 动画帧数，默认 1
	FrameDuration float64      `yaml:"frameDuration"` // 每帧时长（秒），默认 0.5
	Color         PaletteIndex `yaml:"color"`         // 天空颜色
}

// StageStep 关卡步骤，按 Kind 区分字段
type StageStep struct {
	Kind StepKind `yaml:"kind"`

	// movement
	Coordinates mgl64.Vec2 `yaml:"coordinates"` // 摄像机目标位置
	BaseSpeed   float64    `yaml:"baseSpeed"`   // 速度乘数，默认 1.0

	// stop
	KillAll     bool     `yaml:"killAll"`     // 恢复条件：消灭全部敌人
	KillBoss    bool     `yaml:"killBoss"`    // 恢复条件：消灭 Boss
	MaxDuration *float64 `yaml:"maxDuration"` // 可选：最长停留时间（秒）

	// cinematic
	Cinematic *CinematicConfig `yaml:"cinematic"`

	Spawns      []StageSpawn `yaml:"spawns"`      // 步骤开始后按顺序生成
	FloorDepths []float64    `yaml:"floorDepths"` // 可选：覆盖地面高度
}

// HasResumeConditions 检查停止步骤是否配置了任何恢复条件
func (s *StageStep) HasResumeConditions() bool {
	return s.KillAll || s.KillBoss
}

// CinematicConfig 过场动画
type CinematicConfig struct {
	Name   string           `yaml:"name"`
	Music  string           `yaml:"music"`
	Frames []CinematicFrame `yaml:"frames"`
}

// TotalDuration 返回过场动画总时长
func (c *CinematicConfig) TotalDuration() float64 {
	total := 0.0
	for _, f := range c.Frames {
		total += f.Duration
	}
	return total
}

// CinematicFrame 过场动画的一帧
type CinematicFrame struct {
	Caption  string       `yaml:"caption"`  // 字幕
	Duration float64      `yaml:"duration"` // 时长（秒）
	Palette  PaletteIndex `yaml:"palette"`  // 底色
}

// StageSpawn 生成项，按 Kind 区分字段
type StageSpawn struct {
	Kind        SpawnKind  `yaml:"kind"`
	Coordinates mgl64.Vec2 `yaml:"coordinates"`
	Elapsed     float64    `yaml:"elapsed"` // 距离上一个生成项的延迟（秒）

	ObjectType       ObjectType       `yaml:"objectType"`
	DestructibleType DestructibleType `yaml:"destructibleType"`
	PickupType       PickupType       `yaml:"pickupType"`
	EnemyType        EnemyType        `yaml:"enemyType"`

	Health int `yaml:"health"` // 可选：覆盖默认生命值
	Depth  int `yaml:"depth"`  // 可选：深度层，0 表示使用类型默认值

	// enemy
	BaseSpeed  float64           `yaml:"baseSpeed"`
	Steps      []EnemyStep       `yaml:"steps"`
	Direction  MovementDirection `yaml:"direction"`
	Radius     float64           `yaml:"radius"`
	TimeOffset float64           `yaml:"timeOffset"`

	Contains *ContainerSpawn `yaml:"contains"` // 死亡掉落
}

// ContainerSpawn 掉落物，Enemy 和 Pickup 二选一
type ContainerSpawn struct {
	Enemy  *StageSpawn `yaml:"enemy"`
	Pickup *StageSpawn `yaml:"pickup"`
}

// Spawn 返回掉落物实际对应的生成项
func (c *ContainerSpawn) Spawn() *StageSpawn {
	if c.Enemy != nil {
		return c.Enemy
	}
	return c.Pickup
}

// EnemyStep 敌人行为步骤
type EnemyStep struct {
	Kind        EnemyStepKind     `yaml:"kind"`
	Duration    float64           `yaml:"duration"`    // idle/attack/circle 时长，circle 为 0 表示不限时
	Coordinates mgl64.Vec2        `yaml:"coordinates"` // linear_movement/jump 的相对位移
	Speed       float64           `yaml:"speed"`       // 移动速度乘数
	Attacking   bool              `yaml:"attacking"`   // 移动中是否允许攻击
	Radius      float64           `yaml:"radius"`      // circle 半径，0 表示使用生成项半径
	Direction   MovementDirection `yaml:"direction"`   // circle 方向，空表示使用生成项方向
}

// LoadStageConfig 从嵌入资源加载关卡脚本
// 参数：
//
//	filepath - 关卡文件路径（以 "data/" 开头）
//
// 返回：
//
//	*StageConfig - 已填充默认值并通过校验的关卡
//	error - 读取、解析或校验失败时返回
func LoadStageConfig(filepath string) (*StageConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage file %s: %w", filepath, err)
	}
	return ParseStageConfig(data, filepath)
}

// ParseStageConfig 解析 YAML 格式的关卡脚本
// source 仅用于错误信息
func ParseStageConfig(data []byte, source string) (*StageConfig, error) {
	var stage StageConfig
	if err := yaml.Unmarshal(data, &stage); err != nil {
		return nil, fmt.Errorf("failed to parse stage YAML from %s: %w", source, err)
	}

	applyStageDefaults(&stage)

	if err := ValidateStageConfig(&stage); err != nil {
		return nil, fmt.Errorf("invalid stage in %s: %w", source, err)
	}

	return &stage, nil
}

// applyStageDefaults 为缺失的可选字段设置默认值
func applyStageDefaults(stage *StageConfig) {
	if stage.Skybox.Frames <= 0 {
		stage.Skybox.Frames = 1
	}
	if stage.Skybox.FrameDuration <= 0 {
		stage.Skybox.FrameDuration = 0.5
	}
	if stage.Background.Width <= 0 {
		stage.Background.Width = ScreenWidth * 3
	}

	for i := range stage.Spawns {
		applySpawnDefaults(&stage.Spawns[i])
	}
	for i := range stage.Steps {
		step := &stage.Steps[i]
		if step.Kind == StepMovement && step.BaseSpeed == 0 {
			step.BaseSpeed = 1.0
		}
		for j := range step.Spawns {
			applySpawnDefaults(&step.Spawns[j])
		}
	}
}

func applySpawnDefaults(spawn *StageSpawn) {
	if spawn.Kind == SpawnEnemy {
		if spawn.BaseSpeed == 0 {
			spawn.BaseSpeed = 1.0
		}
		if spawn.Direction == "" {
			spawn.Direction = DirectionPositive
		}
		for i := range spawn.Steps {
			if spawn.Steps[i].Speed == 0 {
				spawn.Steps[i].Speed = 1.0
			}
		}
	}
	spawn.Direction = normalizeDirection(spawn.Direction)
	for i := range spawn.Steps {
		spawn.Steps[i].Direction = normalizeDirection(spawn.Steps[i].Direction)
	}
	if spawn.Contains != nil {
		if spawn.Contains.Enemy != nil {
			spawn.Contains.Enemy.Kind = SpawnEnemy
			applySpawnDefaults(spawn.Contains.Enemy)
		}
		if spawn.Contains.Pickup != nil {
			spawn.Contains.Pickup.Kind = SpawnPickup
			applySpawnDefaults(spawn.Contains.Pickup)
		}
	}
}

func normalizeDirection(d MovementDirection) MovementDirection {
	switch d {
	case "right":
		return DirectionPositive
	case "left":
		return DirectionNegative
	}
	return d
}

// ValidateStageConfig 验证关卡脚本的完整性和合法性
func ValidateStageConfig(stage *StageConfig) error {
	if stage.Name == "" {
		return fmt.Errorf("stage name is required")
	}
	if len(stage.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}

	for i := range stage.Spawns {
		if err := validateSpawn(&stage.Spawns[i]); err != nil {
			return fmt.Errorf("spawns[%d]: %w", i, err)
		}
	}

	for i := range stage.Steps {
		if err := validateStep(&stage.Steps[i]); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	return nil
}

func validateStep(step *StageStep) error {
	switch step.Kind {
	case StepMovement:
		if step.BaseSpeed <= 0 {
			return fmt.Errorf("movement baseSpeed must be positive, got %v", step.BaseSpeed)
		}
	case StepStop:
		if step.MaxDuration != nil && *step.MaxDuration < 0 {
			return fmt.Errorf("stop maxDuration cannot be negative, got %v", *step.MaxDuration)
		}
		if step.MaxDuration == nil && !step.HasResumeConditions() {
			return fmt.Errorf("stop step needs a resume condition or a maxDuration")
		}
	case StepCinematic:
		if step.Cinematic == nil || len(step.Cinematic.Frames) == 0 {
			return fmt.Errorf("cinematic step needs at least one frame")
		}
		for j, f := range step.Cinematic.Frames {
			if f.Duration <= 0 {
				return fmt.Errorf("cinematic frame %d: duration must be positive, got %v", j, f.Duration)
			}
		}
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}

	for i := range step.FloorDepths {
		if step.FloorDepths[i] < 0 {
			return fmt.Errorf("floorDepths[%d] cannot be negative", i)
		}
	}

	for j := range step.Spawns {
		if err := validateSpawn(&step.Spawns[j]); err != nil {
			return fmt.Errorf("spawns[%d]: %w", j, err)
		}
	}
	return nil
}

var (
	validObjectTypes = map[ObjectType]bool{
		ObjectFibertree: true, ObjectBenchBig: true, ObjectBenchSmall: true,
	}
	validDestructibleTypes = map[DestructibleType]bool{
		DestructibleLamp: true, DestructiblePlant: true, DestructibleWindow: true,
		DestructibleCrystal: true, DestructibleMushroom: true,
	}
	validPickupTypes = map[PickupType]bool{
		PickupSmallHealthpack: true, PickupBigHealthpack: true,
	}
	validEnemyTypes = map[EnemyType]bool{
		EnemyMosquito: true, EnemyTardigrade: true, EnemyKyle: true,
		EnemyMarauder: true, EnemySpidey: true, EnemySpidomonsta: true,
	}
)

func validateSpawn(spawn *StageSpawn) error {
	if spawn.Elapsed < 0 {
		return fmt.Errorf("elapsed cannot be negative, got %v", spawn.Elapsed)
	}
	if spawn.Depth < 0 || spawn.Depth > MaxDepth {
		return fmt.Errorf("depth must be between 0 and %d, got %d", MaxDepth, spawn.Depth)
	}

	switch spawn.Kind {
	case SpawnObject:
		if !validObjectTypes[spawn.ObjectType] {
			return fmt.Errorf("unknown objectType %q", spawn.ObjectType)
		}
	case SpawnDestructible:
		if !validDestructibleTypes[spawn.DestructibleType] {
			return fmt.Errorf("unknown destructibleType %q", spawn.DestructibleType)
		}
	case SpawnPickup:
		if !validPickupTypes[spawn.PickupType] {
			return fmt.Errorf("unknown pickupType %q", spawn.PickupType)
		}
	case SpawnEnemy:
		if !validEnemyTypes[spawn.EnemyType] {
			return fmt.Errorf("unknown enemyType %q", spawn.EnemyType)
		}
		if spawn.BaseSpeed < 0 {
			return fmt.Errorf("enemy baseSpeed cannot be negative, got %v", spawn.BaseSpeed)
		}
		if spawn.Radius < 0 {
			return fmt.Errorf("enemy radius cannot be negative, got %v", spawn.Radius)
		}
		if spawn.Direction != DirectionPositive && spawn.Direction != DirectionNegative {
			return fmt.Errorf("unknown direction %q", spawn.Direction)
		}
		for i := range spawn.Steps {
			if err := validateEnemyStep(&spawn.Steps[i]); err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unknown spawn kind %q", spawn.Kind)
	}

	if spawn.Contains != nil {
		if spawn.Kind == SpawnObject || spawn.Kind == SpawnPickup {
			return fmt.Errorf("%s spawns cannot contain drops", spawn.Kind)
		}
		hasEnemy := spawn.Contains.Enemy != nil
		hasPickup := spawn.Contains.Pickup != nil
		if hasEnemy == hasPickup {
			return fmt.Errorf("contains must hold exactly one of enemy or pickup")
		}
		if err := validateSpawn(spawn.Contains.Spawn()); err != nil {
			return fmt.Errorf("contains: %w", err)
		}
	}
	return nil
}

func validateEnemyStep(step *EnemyStep) error {
	if step.Duration < 0 {
		return fmt.Errorf("duration cannot be negative, got %v", step.Duration)
	}
	switch step.Kind {
	case EnemyStepIdle, EnemyStepAttack:
		if step.Duration <= 0 {
			return fmt.Errorf("%s needs a positive duration", step.Kind)
		}
	case EnemyStepLinearMovement, EnemyStepJump:
		if step.Speed <= 0 {
			return fmt.Errorf("%s speed must be positive, got %v", step.Kind, step.Speed)
		}
	case EnemyStepCircle:
		if step.Radius < 0 {
			return fmt.Errorf("circle radius cannot be negative, got %v", step.Radius)
		}
		if step.Direction != "" && step.Direction != DirectionPositive && step.Direction != DirectionNegative {
			return fmt.Errorf("unknown circle direction %q", step.Direction)
		}
	default:
		return fmt.Errorf("unknown enemy step kind %q", step.Kind)
	}
	return nil
}

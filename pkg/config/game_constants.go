package config

import "github.com/go-gl/mathgl/mgl64"

// 屏幕与 HUD 布局
// 世界坐标系 Y 轴向上，原点在摄像机视野左下角（含 HUD 区域）
const (
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth = 160
	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight = 144
	// HUDHeight 屏幕底部 HUD 的高度
	HUDHeight = 14
	// CameraWidth 摄像机可视区域宽度（去掉 HUD）
	CameraWidth = ScreenWidth
	// CameraHeight 摄像机可视区域高度（去掉 HUD）
	CameraHeight = ScreenHeight - HUDHeight

	// WindowScale 桌面窗口放大倍数
	WindowScale = 4
	// GameWindowWidth 桌面窗口默认宽度
	GameWindowWidth = ScreenWidth * WindowScale
	// GameWindowHeight 桌面窗口默认高度
	GameWindowHeight = ScreenHeight * WindowScale

	// FontSize 字体行高
	FontSize = 10
)

// 时间与速度
const (
	// FixedDeltaTime 每个逻辑帧的固定时长（秒）
	FixedDeltaTime = 1.0 / 60.0
	// GameBaseSpeed 移动步骤的基础速度乘数（像素/秒）
	GameBaseSpeed = 10.0
)

// 玩家
const (
	// PlayerSpeed 准星移动速度（像素/秒）
	PlayerSpeed = 100.0
	// PlayerDepth 玩家所在的深度平面
	PlayerDepth = 0
	// PlayerMaxHealth 玩家最大生命值
	PlayerMaxHealth = 100
	// PlayerCrosshairSize 准星大小，用于限制移动范围
	PlayerCrosshairSize = 8.0
	// DefaultLives 新游戏的初始命数
	DefaultLives = 3
	// DeathScorePenalty 每次死亡扣除的分数
	DeathScorePenalty = 150

	// PincerRecoil 钳击的冷却时间（秒）
	PincerRecoil = 0.8
	// PincerDamage 钳击伤害
	PincerDamage = 70
	// PincerRadius 钳击判定半径
	PincerRadius = 12.0
	// GunRecoil 枪击的冷却时间（秒）
	GunRecoil = 0.08
	// GunDamage 枪击伤害
	GunDamage = 5
	// GunRadius 枪击判定半径
	GunRadius = 2.0
	// PlayerAttackDuration 攻击判定实体的存在时间（秒）
	PlayerAttackDuration = 0.06
)

// 深度
const (
	// MinDepth 最近的深度层
	MinDepth = 0
	// MaxDepth 最远的深度层
	MaxDepth = 9
)

// 拾取物
const (
	// SmallHealthpackHeal 小血包回复量
	SmallHealthpackHeal = 30
	// BigHealthpackHeal 大血包回复量
	BigHealthpackHeal = 100
	// PickupRadius 拾取物的命中半径
	PickupRadius = 6.0
)

// 默认设置
const (
	// DefaultMasterVolume 默认主音量
	DefaultMasterVolume = 0.8
	// DefaultSFXVolume 默认音效音量
	DefaultSFXVolume = 0.08
	// DefaultMusicVolume 默认音乐音量
	DefaultMusicVolume = 0.06
	// DefaultCrosshairIndex 默认准星样式
	DefaultCrosshairIndex = 1
	// CrosshairStyleCount 可选准星样式数量
	CrosshairStyleCount = 3
	// DebugStageStep 默认关闭步骤调试日志
	DebugStageStep = false
)

// 覆盖层
const (
	// OverlayInputDelay 覆盖层出现后屏蔽输入的时间（秒）
	OverlayInputDelay = 0.4
	// OverlayBlinkPeriod 提示文字闪烁周期（秒）
	OverlayBlinkPeriod = 1.0
	// HighScoreRows 标题画面显示的记录条数
	HighScoreRows = 5
)

// HUDOffset 返回 HUD 在世界坐标系中的偏移
func HUDOffset() mgl64.Vec2 {
	return mgl64.Vec2{0, HUDHeight}
}

// CameraCenter 返回摄像机可视区域中心（相对摄像机位置）
func CameraCenter() mgl64.Vec2 {
	return mgl64.Vec2{CameraWidth / 2.0, CameraHeight/2.0 + HUDHeight}
}

// IsInsideArea 判断点是否位于由左下角和右上角确定的矩形内（含边界）
func IsInsideArea(position, bottomLeft, topRight mgl64.Vec2) bool {
	return position.X() >= bottomLeft.X() &&
		position.X() <= topRight.X() &&
		position.Y() >= bottomLeft.Y() &&
		position.Y() <= topRight.Y()
}

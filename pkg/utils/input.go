// Package utils 提供通用工具函数
package utils

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action 掌机风格的按键动作
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionA
	ActionB
	ActionStart
	ActionSelect
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionA:
		return "A"
	case ActionB:
		return "B"
	case ActionStart:
		return "Start"
	case ActionSelect:
		return "Select"
	default:
		return "Unknown"
	}
}

// KeySource 提供每个动作当前是否按下
// 测试中用假实现替代真实设备
type KeySource interface {
	IsPressed(a Action) bool
}

// ActionState 存储当前帧与上一帧的按键状态
type ActionState struct {
	current  [actionCount]bool
	previous [actionCount]bool
}

// Update 读取 KeySource，每帧调用一次
func (s *ActionState) Update(src KeySource) {
	s.previous = s.current
	for a := Action(0); a < actionCount; a++ {
		s.current[a] = src.IsPressed(a)
	}
}

// Pressed 动作当前是否按下
func (s *ActionState) Pressed(a Action) bool {
	return s.current[a]
}

// JustPressed 动作是否在本帧刚按下
func (s *ActionState) JustPressed(a Action) bool {
	return s.current[a] && !s.previous[a]
}

// JustReleased 动作是否在本帧刚松开
func (s *ActionState) JustReleased(a Action) bool {
	return !s.current[a] && s.previous[a]
}

// Direction 方向键合成的方向向量（y 轴向上），未归一化
// 相反方向同时按下时互相抵消
func (s *ActionState) Direction() mgl64.Vec2 {
	var d mgl64.Vec2
	if s.current[ActionRight] {
		d[0]++
	}
	if s.current[ActionLeft] {
		d[0]--
	}
	if s.current[ActionUp] {
		d[1]++
	}
	if s.current[ActionDown] {
		d[1]--
	}
	return d
}

// Reset 清除所有状态，场景切换时调用避免按键穿透
func (s *ActionState) Reset() {
	s.current = [actionCount]bool{}
	s.previous = [actionCount]bool{}
}

// keyMap 键盘映射
var keyMap = map[Action][]ebiten.Key{
	ActionUp:     {ebiten.KeyArrowUp, ebiten.KeyW},
	ActionDown:   {ebiten.KeyArrowDown, ebiten.KeyS},
	ActionLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
	ActionRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
	ActionA:      {ebiten.KeyX, ebiten.KeyJ},
	ActionB:      {ebiten.KeyZ, ebiten.KeyK},
	ActionStart:  {ebiten.KeyEnter, ebiten.KeyEscape},
	ActionSelect: {ebiten.KeyShiftRight, ebiten.KeyTab},
}

// gamepadMap 标准手柄映射
var gamepadMap = map[Action][]ebiten.StandardGamepadButton{
	ActionUp:     {ebiten.StandardGamepadButtonLeftTop},
	ActionDown:   {ebiten.StandardGamepadButtonLeftBottom},
	ActionLeft:   {ebiten.StandardGamepadButtonLeftLeft},
	ActionRight:  {ebiten.StandardGamepadButtonLeftRight},
	ActionA:      {ebiten.StandardGamepadButtonRightBottom},
	ActionB:      {ebiten.StandardGamepadButtonRightRight},
	ActionStart:  {ebiten.StandardGamepadButtonCenterRight},
	ActionSelect: {ebiten.StandardGamepadButtonCenterLeft},
}

// DeviceSource 读取键盘、标准手柄和指针
// 鼠标左键或触摸视为 A 键
type DeviceSource struct {
	gamepads []ebiten.GamepadID
}

// NewDeviceSource 创建设备输入源
func NewDeviceSource() *DeviceSource {
	return &DeviceSource{}
}

// Refresh 刷新已连接的手柄列表，每帧在读取前调用
func (d *DeviceSource) Refresh() {
	d.gamepads = ebiten.AppendGamepadIDs(d.gamepads[:0])
}

// IsPressed 实现 KeySource
func (d *DeviceSource) IsPressed(a Action) bool {
	for _, k := range keyMap[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	for _, id := range d.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range gamepadMap[a] {
			if ebiten.IsStandardGamepadButtonPressed(id, b) {
				return true
			}
		}
	}
	if a == ActionA && IsPointerPressed() {
		return true
	}
	return false
}

// IsPointerPressed 检查是否有指针按下（鼠标左键或触摸）
func IsPointerPressed() bool {
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

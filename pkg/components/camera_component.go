package components

import "github.com/go-gl/mathgl/mgl64"

// CameraComponent 标记摄像机实体，记录当前移动步骤的目标
// 摄像机位置是可视区域左下角（含 HUD）的世界坐标
type CameraComponent struct {
	// Target 当前移动目标（世界坐标）
	Target mgl64.Vec2

	// IsMoving 是否正在执行移动步骤
	IsMoving bool
}

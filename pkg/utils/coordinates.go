package utils

// 坐标系统：
//   - 世界坐标：y 轴向上，原点在关卡起点
//   - 摄像机坐标：相对摄像机左下角（含 HUD），y 轴向上；准星使用此坐标
//   - 屏幕坐标：相对窗口左上角，y 轴向下（Ebitengine 默认）
//
// 转换公式：
//
//	camera = world - cameraPos
//	screen = (camera.X, ScreenHeight - camera.Y)

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/config"
)

// WorldToScreen 世界坐标转屏幕坐标
func WorldToScreen(world, camera mgl64.Vec2) mgl64.Vec2 {
	return CameraToScreen(world.Sub(camera))
}

// CameraToScreen 摄像机坐标转屏幕坐标
func CameraToScreen(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{p.X(), config.ScreenHeight - p.Y()}
}

// ScreenToCamera 屏幕坐标转摄像机坐标
func ScreenToCamera(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{p.X(), config.ScreenHeight - p.Y()}
}

// NormalizeOrZero 归一化向量，零向量返回零向量
func NormalizeOrZero(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return mgl64.Vec2{}
	}
	return v.Mul(1 / l)
}

// ClampVec 把向量限制在 [min, max] 矩形内
func ClampVec(v, min, max mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		mgl64.Clamp(v.X(), min.X(), max.X()),
		mgl64.Clamp(v.Y(), min.Y(), max.Y()),
	}
}

// PointInCircle 点是否严格位于圆内
func PointInCircle(p, center mgl64.Vec2, radius float64) bool {
	return p.Sub(center).Len() < radius
}

// PointInRect 点是否位于中心为 center 的矩形内（含边界）
func PointInRect(p, center mgl64.Vec2, width, height float64) bool {
	return math.Abs(p.X()-center.X()) <= width/2 && math.Abs(p.Y()-center.Y()) <= height/2
}

package components

import "github.com/go-gl/mathgl/mgl64"

// PositionComponent 实体的位置
// 世界实体使用世界坐标（Y 轴向上），玩家准星使用摄像机坐标
type PositionComponent struct {
	X float64
	Y float64
}

// Vec 返回位置向量
func (p *PositionComponent) Vec() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// SetVec 设置位置
func (p *PositionComponent) SetVec(v mgl64.Vec2) {
	p.X = v.X()
	p.Y = v.Y()
}

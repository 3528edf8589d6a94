package components

// CollisionShape 碰撞形状
type CollisionShape int

const (
	// CollisionCircle 以位置为圆心的圆
	CollisionCircle CollisionShape = iota
	// CollisionBox 以位置为底边中点的矩形
	CollisionBox
)

// CollisionComponent 定义实体的命中区域
// 用于玩家攻击与敌人、可破坏物、敌方飞行物之间的命中检测
type CollisionComponent struct {
	Shape   CollisionShape
	Radius  float64 // 圆形半径（像素）
	Width   float64 // 矩形宽度（像素）
	Height  float64 // 矩形高度（像素）
	OffsetX float64 // 相对实体位置的 X 偏移
	OffsetY float64 // 相对实体位置的 Y 偏移，正值向上
}

package components

// DepthComponent 实体所在的深度层，0 为玩家平面，越大越远
type DepthComponent struct {
	Depth int
}

// DepthMovementComponent 在深度方向上匀速移动
type DepthMovementComponent struct {
	Progress float64 // 连续深度值
	Speed    float64 // 深度速度（层/秒），带符号
	Target   int     // 目标深度
	Reached  bool    // 是否到达目标深度
}

// DepthScale 返回深度对应的缩放系数，深度 1 为 1.0
func DepthScale(depth int) float64 {
	if depth <= 1 {
		return 1.0
	}
	return 1.0 / (1.0 + 0.15*float64(depth-1))
}

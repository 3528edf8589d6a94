package components

// FlashEffectComponent 受击闪烁
// 激活期间渲染系统会按固定频率反转实体颜色
type FlashEffectComponent struct {
	// Duration 闪烁持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// IsActive 是否激活
	IsActive bool
}

// Visible 返回当前帧是否显示反色
func (f *FlashEffectComponent) Visible() bool {
	if !f.IsActive {
		return false
	}
	return int(f.Elapsed/0.05)%2 == 0
}

package components

import "github.com/marcotoniut/carcenisation/pkg/config"

// CutsceneComponent 正在播放的过场动画
type CutsceneComponent struct {
	Cinematic    *config.CinematicConfig
	FrameIndex   int
	FrameElapsed float64
	Finished     bool
}

// CurrentFrame 返回当前帧，播放结束时返回 nil
func (c *CutsceneComponent) CurrentFrame() *config.CinematicFrame {
	if c.Finished || c.Cinematic == nil || c.FrameIndex >= len(c.Cinematic.Frames) {
		return nil
	}
	return &c.Cinematic.Frames[c.FrameIndex]
}

// LetterboxComponent 过场时屏幕上下的黑边
// Progress 在 0 到 1 之间向 Target 插值
type LetterboxComponent struct {
	Progress float64
	Target   float64
	Speed    float64
}

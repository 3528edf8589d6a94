package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

// groundTileWidth 地面纹理的重复间距（像素）
const groundTileWidth = 16.0

// BackgroundRenderSystem 绘制程序化的天空盒、地面和各深度地面线
type BackgroundRenderSystem struct {
	gameState   *game.GameState
	stage       *config.StageConfig
	floorDepths func() []float64
}

// NewBackgroundRenderSystem 创建背景渲染系统
// floorDepths 返回当前生效的地面高度表，可为 nil
func NewBackgroundRenderSystem(gs *game.GameState, stage *config.StageConfig, floorDepths func() []float64) *BackgroundRenderSystem {
	return &BackgroundRenderSystem{gameState: gs, stage: stage, floorDepths: floorDepths}
}

// SkyboxFrame 返回关卡时间对应的天空盒帧
func SkyboxFrame(skybox config.Skybox, elapsed float64) int {
	if skybox.Frames <= 1 || skybox.FrameDuration <= 0 {
		return 0
	}
	return int(elapsed/skybox.FrameDuration) % skybox.Frames
}

// GroundScroll 返回地面纹理相对屏幕左边的偏移，随摄像机 x 滚动
func GroundScroll(cameraX float64) float64 {
	offset := math.Mod(cameraX, groundTileWidth)
	if offset < 0 {
		offset += groundTileWidth
	}
	return -offset
}

// Draw 绘制背景
func (s *BackgroundRenderSystem) Draw(screen *ebiten.Image) {
	camera := s.gameState.Camera()
	screen.Fill(s.stage.Skybox.Color.Color())

	// 天空盒的动画帧用水平条纹表现
	frame := SkyboxFrame(s.stage.Skybox, s.gameState.StageElapsed)
	stripe := s.stage.Skybox.Color + 1
	for y := float32(4 + frame*3); y < config.ScreenHeight; y += 12 {
		vector.DrawFilledRect(screen, 0, y, config.ScreenWidth, 1, stripe.Color(), false)
	}

	horizon := float32(config.ScreenHeight - (s.stage.Background.Horizon - camera.Y()))
	if horizon < config.ScreenHeight {
		top := float32(math.Max(0, float64(horizon)))
		vector.DrawFilledRect(screen, 0, top, config.ScreenWidth, config.ScreenHeight-top, s.stage.Background.Ground.Color(), false)
		mark := (s.stage.Background.Ground + 1).Color()
		for x := GroundScroll(camera.X()); x < config.ScreenWidth; x += groundTileWidth {
			vector.StrokeLine(screen, float32(x), top, float32(x-4), config.ScreenHeight, 1, mark, false)
		}
	}

	if s.floorDepths == nil {
		return
	}
	line := (s.stage.Background.Ground + 1).Color()
	for _, h := range s.floorDepths() {
		y := float32(config.ScreenHeight - (h - camera.Y()))
		if y < 0 || y > config.ScreenHeight {
			continue
		}
		vector.StrokeLine(screen, 0, y, config.ScreenWidth, y, 1, line, false)
	}
}

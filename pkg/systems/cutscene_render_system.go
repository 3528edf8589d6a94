package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// letterboxHeight 黑边完全展开时的高度
const letterboxHeight = 24.0

// CutsceneRenderSystem 绘制过场动画的底色、黑边和字幕
type CutsceneRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
}

// NewCutsceneRenderSystem 创建过场渲染系统
func NewCutsceneRenderSystem(em *ecs.EntityManager, face text.Face) *CutsceneRenderSystem {
	return &CutsceneRenderSystem{entityManager: em, face: face}
}

// Draw 绘制所有过场实体
func (s *CutsceneRenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.CutsceneComponent](s.entityManager) {
		cutscene, _ := ecs.GetComponent[*components.CutsceneComponent](s.entityManager, id)
		frame := cutscene.CurrentFrame()
		if frame != nil {
			screen.Fill(frame.Palette.Color())
		}

		if letterbox, ok := ecs.GetComponent[*components.LetterboxComponent](s.entityManager, id); ok && letterbox.Progress > 0 {
			h := float32(letterboxHeight * utils.EaseOutCubic(letterbox.Progress))
			black := config.PaletteDarkest.Color()
			vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, h, black, false)
			vector.DrawFilledRect(screen, 0, config.ScreenHeight-h, config.ScreenWidth, h, black, false)
		}

		if frame == nil || frame.Caption == "" || s.face == nil {
			continue
		}
		lines := utils.WrapText(frame.Caption, s.face, config.ScreenWidth-8)
		y := float64(config.ScreenHeight - letterboxHeight + 2)
		for _, line := range lines {
			utils.DrawCenteredText(screen, line, s.face, config.ScreenWidth/2, y, config.PaletteLightest.Color())
			y += config.FontSize
		}
	}
}

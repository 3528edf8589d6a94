package systems

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// hudHealthBarWidth 生命条的最大宽度
const hudHealthBarWidth = 40.0

// HUDRenderSystem 绘制屏幕底部的 HUD：生命条、分数和命数
type HUDRenderSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	face          text.Face
}

// NewHUDRenderSystem 创建 HUD 渲染系统
func NewHUDRenderSystem(em *ecs.EntityManager, gs *game.GameState, face text.Face) *HUDRenderSystem {
	return &HUDRenderSystem{entityManager: em, gameState: gs, face: face}
}

// PlayerHealthRatio 返回玩家生命比例，没有玩家时为 0
func (s *HUDRenderSystem) PlayerHealthRatio() float64 {
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.HealthComponent](s.entityManager) {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		if health.MaxHealth <= 0 {
			return 0
		}
		return float64(health.CurrentHealth) / float64(health.MaxHealth)
	}
	return 0
}

// Draw 绘制 HUD
func (s *HUDRenderSystem) Draw(screen *ebiten.Image) {
	top := float32(config.ScreenHeight - config.HUDHeight)
	vector.DrawFilledRect(screen, 0, top, config.ScreenWidth, config.HUDHeight, config.PaletteDarkest.Color(), false)

	barY := top + 4
	vector.StrokeRect(screen, 3, barY, hudHealthBarWidth+2, 6, 1, config.PaletteLight.Color(), false)
	width := float32(hudHealthBarWidth * s.PlayerHealthRatio())
	if width > 0 {
		vector.DrawFilledRect(screen, 4, barY+1, width, 4, config.PaletteLightest.Color(), false)
	}

	if s.face == nil {
		return
	}
	utils.DrawText(screen, fmt.Sprintf("%06d", s.gameState.Score), s.face, 50, float64(top), config.PaletteLightest.Color())
	utils.DrawText(screen, fmt.Sprintf("x%d", s.gameState.Lives), s.face, 136, float64(top), config.PaletteLightest.Color())
}

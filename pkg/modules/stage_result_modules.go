package modules

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/marcotoniut/carcenisation/internal/audio"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// StageClearedModule 通关画面
// Start 键继续（下一关或标题画面，由场景决定）
type StageClearedModule struct {
	panel      overlayPanel
	onContinue func()
}

// NewStageClearedModule 创建通关画面模块
func NewStageClearedModule(gs *game.GameState, actions *utils.ActionState, face text.Face, onContinue func()) *StageClearedModule {
	return &StageClearedModule{
		panel: newOverlayPanel("StageClearedModule", gs, actions, face, func(gs *game.GameState) bool {
			return gs.StageProgress == game.StageCleared
		}),
		onContinue: onContinue,
	}
}

// Update 处理 Start 键
func (m *StageClearedModule) Update(deltaTime float64) {
	if _, ready := m.panel.update(deltaTime); ready && m.panel.justPressed(utils.ActionStart) {
		m.panel.gameState.PlaySound(audio.SoundMenuSelect)
		if m.onContinue != nil {
			m.onContinue()
		}
	}
}

// Draw 渲染通关画面
func (m *StageClearedModule) Draw(screen *ebiten.Image) {
	m.panel.draw(screen, []overlayLine{
		{text: "STAGE CLEARED", color: config.PaletteLightest},
		{text: fmt.Sprintf("SCORE %06d", m.panel.gameState.Score), color: config.PaletteLight},
		{text: "PRESS START", color: config.PaletteLight, blink: true},
	})
}

// IsActive 通关画面是否显示
func (m *StageClearedModule) IsActive() bool {
	return m.panel.isActive()
}

// DeathScreenModule 死亡画面
// 还有剩余命数时显示，Start 键重新开始本关
type DeathScreenModule struct {
	panel   overlayPanel
	onRetry func()
}

// NewDeathScreenModule 创建死亡画面模块
func NewDeathScreenModule(gs *game.GameState, actions *utils.ActionState, face text.Face, onRetry func()) *DeathScreenModule {
	return &DeathScreenModule{
		panel: newOverlayPanel("DeathScreenModule", gs, actions, face, func(gs *game.GameState) bool {
			return gs.StageProgress == game.StageDeath
		}),
		onRetry: onRetry,
	}
}

// Update 处理 Start 键
func (m *DeathScreenModule) Update(deltaTime float64) {
	if _, ready := m.panel.update(deltaTime); ready && m.panel.justPressed(utils.ActionStart) {
		m.panel.gameState.PlaySound(audio.SoundMenuSelect)
		if m.onRetry != nil {
			m.onRetry()
		}
	}
}

// Draw 渲染死亡画面
func (m *DeathScreenModule) Draw(screen *ebiten.Image) {
	gs := m.panel.gameState
	m.panel.draw(screen, []overlayLine{
		{text: "YOU DIED", color: config.PaletteLightest},
		{text: fmt.Sprintf("LIVES x%d", gs.Lives), color: config.PaletteLight},
		{text: fmt.Sprintf("SCORE %06d", gs.Score), color: config.PaletteLight},
		{text: "PRESS START", color: config.PaletteLight, blink: true},
	})
}

// IsActive 死亡画面是否显示
func (m *DeathScreenModule) IsActive() bool {
	return m.panel.isActive()
}

// GameOverModule 游戏结束画面
// 显示最终分数与最高分，Start 键返回标题画面
type GameOverModule struct {
	panel   overlayPanel
	onTitle func()
}

// NewGameOverModule 创建游戏结束画面模块
func NewGameOverModule(gs *game.GameState, actions *utils.ActionState, face text.Face, onTitle func()) *GameOverModule {
	return &GameOverModule{
		panel: newOverlayPanel("GameOverModule", gs, actions, face, func(gs *game.GameState) bool {
			return gs.StageProgress == game.StageGameOver
		}),
		onTitle: onTitle,
	}
}

// Update 处理 Start 键
func (m *GameOverModule) Update(deltaTime float64) {
	if _, ready := m.panel.update(deltaTime); ready && m.panel.justPressed(utils.ActionStart) {
		m.panel.gameState.PlaySound(audio.SoundMenuSelect)
		if m.onTitle != nil {
			m.onTitle()
		}
	}
}

// BestScore 记录中的最高分，至少为本局分数
func (m *GameOverModule) BestScore() int {
	gs := m.panel.gameState
	best := gs.Score
	if rm := gs.GetRecordManager(); rm != nil && rm.BestScore() > best {
		best = rm.BestScore()
	}
	return best
}

// Draw 渲染游戏结束画面
func (m *GameOverModule) Draw(screen *ebiten.Image) {
	m.panel.draw(screen, []overlayLine{
		{text: "GAME OVER", color: config.PaletteLightest},
		{text: fmt.Sprintf("SCORE %06d", m.panel.gameState.Score), color: config.PaletteLight},
		{text: fmt.Sprintf("BEST  %06d", m.BestScore()), color: config.PaletteLight},
		{text: "PRESS START", color: config.PaletteLight, blink: true},
	})
}

// IsActive 游戏结束画面是否显示
func (m *GameOverModule) IsActive() bool {
	return m.panel.isActive()
}

package modules

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/marcotoniut/carcenisation/internal/audio"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// PauseMenuModule 暂停菜单模块
// 暂停由 InputSystem 的 Start 键切换，本模块只负责显示与菜单内按键：
//   - B: 切换准星样式（写入设置）
//   - Select: 返回标题画面
type PauseMenuModule struct {
	panel overlayPanel

	// 回调函数（由外部场景提供）
	onMainMenu         func()
	onCrosshairChanged func(index int)
}

// PauseMenuCallbacks 暂停菜单回调函数集合
type PauseMenuCallbacks struct {
	OnMainMenu         func()          // Select 键：返回标题画面
	OnCrosshairChanged func(index int) // B 键：准星样式已切换（可选）
}

// NewPauseMenuModule 创建暂停菜单模块
//
// 参数：
//   - gs: GameState 实例（读取暂停状态）
//   - actions: 本帧按键状态（来自 InputSystem）
//   - face: 文字字体，nil 时只绘制面板
//   - callbacks: 回调函数集合
func NewPauseMenuModule(gs *game.GameState, actions *utils.ActionState, face text.Face, callbacks PauseMenuCallbacks) *PauseMenuModule {
	return &PauseMenuModule{
		panel: newOverlayPanel("PauseMenuModule", gs, actions, face, func(gs *game.GameState) bool {
			return gs.GameProgress == game.GamePaused
		}),
		onMainMenu:         callbacks.OnMainMenu,
		onCrosshairChanged: callbacks.OnCrosshairChanged,
	}
}

// Update 同步暂停状态并处理菜单按键
func (m *PauseMenuModule) Update(deltaTime float64) {
	active, ready := m.panel.update(deltaTime)
	if !active || !ready {
		return
	}

	gs := m.panel.gameState
	switch {
	case m.panel.justPressed(utils.ActionSelect):
		log.Printf("[PauseMenuModule] Return to title")
		gs.PlaySound(audio.SoundMenuSelect)
		gs.TogglePause()
		if m.onMainMenu != nil {
			m.onMainMenu()
		}
	case m.panel.justPressed(utils.ActionB):
		sm := gs.GetSettingsManager()
		if sm == nil {
			return
		}
		index := sm.CycleCrosshair()
		if err := sm.Save(); err != nil {
			log.Printf("[PauseMenuModule] Warning: failed to save settings: %v", err)
		}
		gs.PlaySound(audio.SoundMenuSelect)
		if m.onCrosshairChanged != nil {
			m.onCrosshairChanged(index)
		}
	}
}

// Draw 渲染暂停菜单
func (m *PauseMenuModule) Draw(screen *ebiten.Image) {
	gs := m.panel.gameState
	m.panel.draw(screen, []overlayLine{
		{text: "PAUSED", color: config.PaletteLightest},
		{text: fmt.Sprintf("SCORE %06d", gs.Score), color: config.PaletteLight},
		{text: fmt.Sprintf("B AIM %d", gs.CrosshairIndex()+1), color: config.PaletteLight},
		{text: "SELECT QUIT", color: config.PaletteLight},
	})
}

// IsActive 暂停菜单是否显示
func (m *PauseMenuModule) IsActive() bool {
	return m.panel.isActive()
}

package systems

import (
	"log"

	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// InputSystem 每帧读取输入设备并处理全局按键
// Start 键：有过场时跳过过场，否则切换暂停
type InputSystem struct {
	gameState *game.GameState
	source    utils.KeySource
	actions   *utils.ActionState
	stage     *StageSystem
}

// NewInputSystem 创建输入系统
// source 为 nil 时不读取设备（测试中直接操作 Actions）
func NewInputSystem(gs *game.GameState, source utils.KeySource, stage *StageSystem) *InputSystem {
	return &InputSystem{
		gameState: gs,
		source:    source,
		actions:   &utils.ActionState{},
		stage:     stage,
	}
}

// Actions 返回本帧的按键状态
func (s *InputSystem) Actions() *utils.ActionState {
	return s.actions
}

// Update 刷新按键状态并处理 Start 键
func (s *InputSystem) Update(deltaTime float64) {
	if s.source != nil {
		if d, ok := s.source.(*utils.DeviceSource); ok {
			d.Refresh()
		}
		s.actions.Update(s.source)
	}

	if !s.actions.JustPressed(utils.ActionStart) || s.stage == nil {
		return
	}
	if s.gameState.StageProgress != game.StageRunning {
		return
	}
	if s.gameState.IsRunning() && s.stage.SkipCutscene() {
		return
	}
	if paused := s.stage.TogglePause(); paused {
		log.Printf("[InputSystem] 游戏暂停")
	} else {
		log.Printf("[InputSystem] 游戏恢复")
	}
}

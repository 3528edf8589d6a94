package modules

import (
	"testing"

	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

type fakeKeys map[utils.Action]bool

func (f fakeKeys) IsPressed(a utils.Action) bool { return f[a] }

type updater interface {
	Update(deltaTime float64)
}

// newTestGameState 创建不带存储、正在运行关卡的 GameState
func newTestGameState() *game.GameState {
	gs := game.NewGameStateWithStorage(nil)
	gs.NewRun(config.DefaultLives)
	gs.BeginStage("data/stages/park.yaml", 0)
	gs.StageProgress = game.StageRunning
	return gs
}

// press 模拟一次完整的按下（上一帧松开，本帧按下）
func press(m updater, actions *utils.ActionState, a utils.Action) {
	actions.Update(fakeKeys{})
	m.Update(config.FixedDeltaTime)
	actions.Update(fakeKeys{a: true})
	m.Update(config.FixedDeltaTime)
}

// waitInputDelay 等待覆盖层的输入屏蔽结束
func waitInputDelay(m updater, actions *utils.ActionState) {
	actions.Update(fakeKeys{})
	m.Update(config.OverlayInputDelay + 0.1)
}

func TestPauseMenuModule_IsActive(t *testing.T) {
	gs := newTestGameState()
	actions := &utils.ActionState{}
	module := NewPauseMenuModule(gs, actions, nil, PauseMenuCallbacks{})

	module.Update(config.FixedDeltaTime)
	if module.IsActive() {
		t.Error("Expected IsActive() to return false when not paused")
	}

	gs.TogglePause()
	module.Update(config.FixedDeltaTime)
	if !module.IsActive() {
		t.Error("Expected IsActive() to return true when paused")
	}

	gs.TogglePause()
	module.Update(config.FixedDeltaTime)
	if module.IsActive() {
		t.Error("Expected IsActive() to return false after resume")
	}
}

func TestPauseMenuModule_MainMenu(t *testing.T) {
	gs := newTestGameState()
	actions := &utils.ActionState{}
	called := 0
	module := NewPauseMenuModule(gs, actions, nil, PauseMenuCallbacks{
		OnMainMenu: func() { called++ },
	})

	gs.TogglePause()
	press(module, actions, utils.ActionSelect)
	if called != 0 {
		t.Fatal("Select must be ignored right after the menu opens")
	}

	waitInputDelay(module, actions)
	press(module, actions, utils.ActionSelect)
	if called != 1 {
		t.Fatalf("OnMainMenu called %d times, want 1", called)
	}
	if gs.GameProgress != game.GameRunning {
		t.Errorf("GameProgress = %v, want Running after leaving the menu", gs.GameProgress)
	}
}

func TestPauseMenuModule_CycleCrosshair(t *testing.T) {
	gs := newTestGameState()
	actions := &utils.ActionState{}
	got := -1
	module := NewPauseMenuModule(gs, actions, nil, PauseMenuCallbacks{
		OnCrosshairChanged: func(index int) { got = index },
	})

	gs.TogglePause()
	module.Update(config.FixedDeltaTime)
	waitInputDelay(module, actions)

	tests := []struct {
		name string
		want int
	}{
		{"切换到下一个样式", 2},
		{"循环回第一个样式", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			press(module, actions, utils.ActionB)
			if got != tt.want {
				t.Errorf("callback index = %d, want %d", got, tt.want)
			}
			if gs.CrosshairIndex() != tt.want {
				t.Errorf("CrosshairIndex() = %d, want %d", gs.CrosshairIndex(), tt.want)
			}
		})
	}
}

func TestStageResultModules_Start(t *testing.T) {
	tests := []struct {
		name     string
		progress game.StageProgress
		build    func(gs *game.GameState, actions *utils.ActionState, cb func()) updater
	}{
		{
			name:     "通关画面继续",
			progress: game.StageCleared,
			build: func(gs *game.GameState, actions *utils.ActionState, cb func()) updater {
				return NewStageClearedModule(gs, actions, nil, cb)
			},
		},
		{
			name:     "死亡画面重试",
			progress: game.StageDeath,
			build: func(gs *game.GameState, actions *utils.ActionState, cb func()) updater {
				return NewDeathScreenModule(gs, actions, nil, cb)
			},
		},
		{
			name:     "游戏结束返回标题",
			progress: game.StageGameOver,
			build: func(gs *game.GameState, actions *utils.ActionState, cb func()) updater {
				return NewGameOverModule(gs, actions, nil, cb)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := newTestGameState()
			actions := &utils.ActionState{}
			called := 0
			module := tt.build(gs, actions, func() { called++ })

			// 关卡运行中按 Start 无效
			press(module, actions, utils.ActionStart)
			if called != 0 {
				t.Fatal("Start must be ignored while the overlay is hidden")
			}

			gs.StageProgress = tt.progress
			press(module, actions, utils.ActionStart)
			if called != 0 {
				t.Fatal("Start must be ignored during the input delay")
			}

			waitInputDelay(module, actions)
			press(module, actions, utils.ActionStart)
			if called != 1 {
				t.Errorf("callback called %d times, want 1", called)
			}
		})
	}
}

func TestGameOverModule_BestScore(t *testing.T) {
	gs := newTestGameState()
	module := NewGameOverModule(gs, nil, nil, nil)

	gs.Score = 120
	if got := module.BestScore(); got != 120 {
		t.Errorf("BestScore() without records = %d, want 120", got)
	}

	gs.GetRecordManager().AddRecord(500, "park", false)
	if got := module.BestScore(); got != 500 {
		t.Errorf("BestScore() = %d, want 500", got)
	}
}

func TestOverlayPanel_Blink(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
		want    bool
	}{
		{"周期前半段显示", 0.2, true},
		{"周期后半段隐藏", 0.7, false},
		{"下一周期再次显示", 1.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := overlayPanel{elapsed: tt.elapsed}
			if got := p.blinkVisible(); got != tt.want {
				t.Errorf("blinkVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}

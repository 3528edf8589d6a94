package scenes

import (
	"os"
	"testing"

	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/embedded"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

type fakeKeys map[utils.Action]bool

func (f fakeKeys) IsPressed(a utils.Action) bool { return f[a] }

func TestMain(m *testing.M) {
	embedded.Init(os.DirFS("../.."))
	os.Exit(m.Run())
}

// loadedStage 记录场景工厂收到的请求
type loadedStage struct {
	path  string
	index int
}

type sceneHarness struct {
	sm       *game.SceneManager
	gs       *game.GameState
	loads    []loadedStage
	titles   int
	campaign *config.CampaignConfig
	stats    *config.EnemyStatsConfig
}

func newSceneHarness(t *testing.T) *sceneHarness {
	t.Helper()
	stats, err := config.LoadEnemyStats("data/enemy_stats.yaml")
	if err != nil {
		t.Fatalf("LoadEnemyStats: %v", err)
	}
	h := &sceneHarness{
		sm:    game.NewSceneManager(),
		gs:    game.NewGameStateWithStorage(nil),
		stats: stats,
		campaign: &config.CampaignConfig{
			Stages:        []string{"data/stages/park.yaml", "data/stages/asteroid.yaml"},
			StartingLives: 2,
		},
	}
	h.sm.SetSceneFactory(func(path string, index int) game.Scene {
		h.loads = append(h.loads, loadedStage{path, index})
		return &TitleScene{}
	})
	h.sm.SetTitleFactory(func() game.Scene {
		h.titles++
		return &TitleScene{}
	})
	return h
}

func (h *sceneHarness) options(keys fakeKeys) StageSceneOptions {
	return StageSceneOptions{
		SceneManager: h.sm,
		GameState:    h.gs,
		Campaign:     h.campaign,
		EnemyStats:   h.stats,
		Input:        keys,
	}
}

func TestNewStageScene(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"调试关卡", "data/stages/debug.yaml", false},
		{"公园关卡", "data/stages/park.yaml", false},
		{"文件不存在", "data/stages/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newSceneHarness(t)
			scene, err := NewStageScene(h.options(fakeKeys{}), tt.path, -1)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStageScene: %v", err)
			}
			if h.gs.StagePath != tt.path || h.gs.StageProgress != game.StageInitial {
				t.Errorf("state = %q/%v, want %q/Initial", h.gs.StagePath, h.gs.StageProgress, tt.path)
			}

			scene.Update(config.FixedDeltaTime)
			if h.gs.StageProgress != game.StageRunning {
				t.Errorf("StageProgress = %v, want Running after the first frame", h.gs.StageProgress)
			}
			player := scene.StageSystem().Player()
			if !ecs.HasComponent[*components.PlayerComponent](scene.EntityManager(), player) {
				t.Error("player should be spawned on the first frame")
			}
		})
	}
}

func TestStageScene_PausedFreezesStageTime(t *testing.T) {
	h := newSceneHarness(t)
	keys := fakeKeys{}
	scene, err := NewStageScene(h.options(keys), "data/stages/debug.yaml", -1)
	if err != nil {
		t.Fatal(err)
	}
	scene.Update(config.FixedDeltaTime)
	scene.Update(config.FixedDeltaTime)

	keys[utils.ActionStart] = true
	scene.Update(config.FixedDeltaTime)
	if h.gs.GameProgress != game.GamePaused {
		t.Fatalf("GameProgress = %v, want Paused", h.gs.GameProgress)
	}
	elapsed := h.gs.StageElapsed
	for i := 0; i < 10; i++ {
		scene.Update(config.FixedDeltaTime)
	}
	if h.gs.StageElapsed != elapsed {
		t.Error("stage time should not advance while paused")
	}
	if !scene.pauseMenu.IsActive() {
		t.Error("pause menu should be shown")
	}
}

func TestStageScene_ContinueCampaign(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		index      int
		wantLoad   *loadedStage
		wantTitle  int
		wantRecord bool
	}{
		{"进入下一关", "data/stages/park.yaml", 0, &loadedStage{"data/stages/asteroid.yaml", 1}, 0, false},
		{"战役结束返回标题", "data/stages/asteroid.yaml", 1, nil, 1, true},
		{"独立关卡返回标题", "data/stages/debug.yaml", -1, nil, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newSceneHarness(t)
			h.gs.NewRun(3)
			h.gs.Score = 300
			scene, err := NewStageScene(h.options(fakeKeys{}), tt.path, tt.index)
			if err != nil {
				t.Fatal(err)
			}

			scene.continueCampaign()

			if tt.wantLoad != nil {
				if len(h.loads) != 1 || h.loads[0] != *tt.wantLoad {
					t.Errorf("loads = %v, want %v", h.loads, *tt.wantLoad)
				}
			} else if len(h.loads) != 0 {
				t.Errorf("unexpected stage loads %v", h.loads)
			}
			if h.titles != tt.wantTitle {
				t.Errorf("title loads = %d, want %d", h.titles, tt.wantTitle)
			}
			if got := h.gs.GetRecordManager().BestScore() == 300; got != tt.wantRecord {
				t.Errorf("score recorded = %v, want %v", got, tt.wantRecord)
			}
		})
	}
}

func TestStageScene_ApplyCrosshair(t *testing.T) {
	h := newSceneHarness(t)
	scene, err := NewStageScene(h.options(fakeKeys{}), "data/stages/debug.yaml", -1)
	if err != nil {
		t.Fatal(err)
	}
	scene.Update(config.FixedDeltaTime)

	scene.applyCrosshair(2)
	player, ok := ecs.GetComponent[*components.PlayerComponent](scene.EntityManager(), scene.StageSystem().Player())
	if !ok {
		t.Fatal("player missing")
	}
	if player.CrosshairIndex != 2 {
		t.Errorf("CrosshairIndex = %d, want 2", player.CrosshairIndex)
	}
}

func TestTitleScene_Start(t *testing.T) {
	h := newSceneHarness(t)
	keys := fakeKeys{}
	scene := NewTitleScene(nil, h.sm, h.gs, h.campaign, keys)

	keys[utils.ActionStart] = true
	scene.Update(config.FixedDeltaTime)
	if scene.Started() {
		t.Fatal("Start must be ignored right after the title appears")
	}

	keys[utils.ActionStart] = false
	scene.Update(config.OverlayInputDelay)
	keys[utils.ActionStart] = true
	scene.Update(config.FixedDeltaTime)

	if !scene.Started() {
		t.Fatal("Start should begin a new game")
	}
	if h.gs.Lives != 2 || h.gs.Score != 0 {
		t.Errorf("run = lives %d score %d, want 2/0", h.gs.Lives, h.gs.Score)
	}
	if len(h.loads) != 1 || h.loads[0] != (loadedStage{"data/stages/park.yaml", 0}) {
		t.Errorf("loads = %v, want the first campaign stage", h.loads)
	}

	// 重复按键不会再次加载
	keys[utils.ActionStart] = false
	scene.Update(config.FixedDeltaTime)
	keys[utils.ActionStart] = true
	scene.Update(config.FixedDeltaTime)
	if len(h.loads) != 1 {
		t.Errorf("loads = %d, want 1", len(h.loads))
	}
}

func TestTitleScene_HighScoreLines(t *testing.T) {
	h := newSceneHarness(t)
	scene := NewTitleScene(nil, h.sm, h.gs, h.campaign, fakeKeys{})

	if len(scene.HighScoreLines()) != 0 {
		t.Fatal("no records should produce no lines")
	}

	rm := h.gs.GetRecordManager()
	rm.AddRecord(120, "Park", false)
	rm.AddRecord(900, "Asteroid", true)

	want := []string{"1 000900*", "2 000120 "}
	got := scene.HighScoreLines()
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

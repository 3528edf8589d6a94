package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/scenes"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// noInput 不产生任何按键的输入源
type noInput struct{}

func (noInput) IsPressed(utils.Action) bool { return false }

// simOptions 模拟参数
type simOptions struct {
	AutoKill  bool    // 敌人存活 KillDelay 秒后自动击杀
	KillDelay float64 // 自动击杀延迟（关卡时间）
	God       bool    // 玩家每帧回满血
	Limit     float64 // 模拟时长上限（秒）
}

// simSnapshot 某一时刻的关卡状态
type simSnapshot struct {
	Stage     string
	Progress  game.StageProgress
	Step      int // 从 1 开始，0 表示尚未开始
	Steps     int
	StepKind  config.StepKind
	StageTime float64
	SimTime   float64
	Camera    mgl64.Vec2
	Score     int
	Lives     int
	Health    int
	Enemies   int
	Entities  int
}

// Ratio 步骤完成比例
func (s simSnapshot) Ratio() float64 {
	if s.Progress == game.StageClear || s.Progress == game.StageCleared {
		return 1
	}
	if s.Steps == 0 || s.Step == 0 {
		return 0
	}
	return float64(s.Step-1) / float64(s.Steps)
}

// simulator 无窗口地运行一个关卡场景
type simulator struct {
	scene *scenes.StageScene
	gs    *game.GameState
	opts  simOptions

	ticks     int
	enemyAge  map[ecs.EntityID]float64
	events    []string
	lastStep  int
	lastState game.StageProgress
	kills     int
}

func newSimulator(stagePath string, stats *config.EnemyStatsConfig, opts simOptions) (*simulator, error) {
	gs := game.NewGameStateWithStorage(nil)
	gs.NewRun(config.DefaultLives)

	scene, err := scenes.NewStageScene(scenes.StageSceneOptions{
		GameState:  gs,
		EnemyStats: stats,
		Input:      noInput{},
	}, stagePath, -1)
	if err != nil {
		return nil, err
	}

	return &simulator{
		scene:     scene,
		gs:        gs,
		opts:      opts,
		enemyAge:  make(map[ecs.EntityID]float64),
		lastStep:  -1,
		lastState: gs.StageProgress,
	}, nil
}

// simTime 已模拟的时间（秒）
func (s *simulator) simTime() float64 {
	return float64(s.ticks) * config.FixedDeltaTime
}

// done 关卡结束或达到时长上限
func (s *simulator) done() bool {
	switch s.gs.StageProgress {
	case game.StageCleared, game.StageDeath, game.StageGameOver:
		return true
	}
	return s.opts.Limit > 0 && s.simTime() >= s.opts.Limit
}

// step 推进一帧
func (s *simulator) step() {
	if s.done() {
		return
	}
	s.scene.Update(config.FixedDeltaTime)
	s.ticks++

	em := s.scene.EntityManager()
	if s.opts.God {
		if health, ok := ecs.GetComponent[*components.HealthComponent](em, s.scene.StageSystem().Player()); ok {
			health.CurrentHealth = health.MaxHealth
		}
	}
	if s.opts.AutoKill {
		s.autoKill(em)
	}
	s.trackEvents()
}

// run 推进最多 n 帧，返回实际推进的帧数
func (s *simulator) run(n int) int {
	i := 0
	for ; i < n && !s.done(); i++ {
		s.step()
	}
	return i
}

// runToEnd 一直推进到结束
func (s *simulator) runToEnd() {
	for !s.done() {
		s.step()
	}
}

func (s *simulator) autoKill(em *ecs.EntityManager) {
	dt := s.gs.StageDelta
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](em) {
		if em.IsPendingDestroy(id) || ecs.HasComponent[*components.DeadComponent](em, id) {
			continue
		}
		s.enemyAge[id] += dt
		if s.enemyAge[id] < s.opts.KillDelay {
			continue
		}
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		health.CurrentHealth = 0
		ecs.AddComponent(em, id, &components.DeadComponent{})
		delete(s.enemyAge, id)
		s.kills++
	}
}

func (s *simulator) trackEvents() {
	snap := s.snapshot()
	if snap.Step != s.lastStep && snap.Step > 0 {
		s.events = append(s.events, fmt.Sprintf("%6.2fs  step %d/%d %s", snap.StageTime, snap.Step, snap.Steps, snap.StepKind))
		s.lastStep = snap.Step
	}
	if snap.Progress != s.lastState {
		s.events = append(s.events, fmt.Sprintf("%6.2fs  %s -> %s", snap.StageTime, s.lastState, snap.Progress))
		s.lastState = snap.Progress
	}
}

// recentEvents 最近 n 条事件
func (s *simulator) recentEvents(n int) []string {
	if len(s.events) <= n {
		return s.events
	}
	return s.events[len(s.events)-n:]
}

func (s *simulator) snapshot() simSnapshot {
	em := s.scene.EntityManager()
	stage := s.scene.Stage()
	stageSystem := s.scene.StageSystem()

	snap := simSnapshot{
		Stage:     stage.Name,
		Progress:  s.gs.StageProgress,
		Steps:     len(stage.Steps),
		StageTime: s.gs.StageElapsed,
		SimTime:   s.simTime(),
		Camera:    s.gs.Camera(),
		Score:     s.gs.Score,
		Lives:     s.gs.Lives,
		Enemies:   ecs.CountEntitiesWith1[*components.EnemyComponent](em),
		Entities:  ecs.CountEntitiesWith1[*components.StageEntityComponent](em),
	}
	if current := stageSystem.CurrentStep(); current != nil {
		snap.Step = current.Index + 1
		snap.StepKind = stage.Steps[current.Index].Kind
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, stageSystem.Player()); ok {
		snap.Health = health.CurrentHealth
	}
	return snap
}

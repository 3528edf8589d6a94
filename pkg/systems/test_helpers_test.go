package systems

import (
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// fakeKeys 测试用的按键源
type fakeKeys map[utils.Action]bool

func (f fakeKeys) IsPressed(a utils.Action) bool {
	return f[a]
}

// newTestGameState 创建不带存储的 GameState，并进入运行中的关卡
func newTestGameState() *game.GameState {
	gs := game.NewGameStateWithStorage(nil)
	gs.NewRun(config.DefaultLives)
	gs.BeginStage("data/stages/test.yaml", -1)
	gs.StageProgress = game.StageRunning
	return gs
}

// newTestStats 返回测试用的敌人属性表
func newTestStats() *config.EnemyStatsConfig {
	return &config.EnemyStatsConfig{
		Enemies: map[config.EnemyType]config.EnemyStats{
			config.EnemyMosquito: {
				Health: 40, Radius: 7, KillScore: 100, Depth: 3,
				Attack: config.AttackStats{
					Kind: config.AttackBlood, Cooldown: 3, Damage: 20, DepthSpeed: 1.5, Radius: 3, Health: 1,
				},
			},
			config.EnemyTardigrade: {
				Health: 100, Radius: 10, KillScore: 150, Depth: 4,
				Attack: config.AttackStats{
					Kind: config.AttackBoulder, Cooldown: 4, Damage: 30, DepthSpeed: 2, Radius: 4,
					Health: 10, Gravity: -60, Randomness: 12,
				},
			},
			config.EnemyKyle: {Health: 60, Radius: 8, KillScore: 120, Depth: 2},
			config.EnemySpidomonsta: {
				Health: 600, Radius: 18, KillScore: 2000, Boss: true, Depth: 5,
			},
		},
	}
}

// stageWorld 按关卡场景的顺序串起所有玩法系统，便于无界面测试
type stageWorld struct {
	em       *ecs.EntityManager
	gs       *game.GameState
	keys     fakeKeys
	input    *InputSystem
	camera   *CameraSystem
	spawner  *StageSpawnSystem
	cutscene *CutsceneSystem
	stage    *StageSystem

	player   *PlayerSystem
	behavior *EnemyBehaviorSystem
	movement *LinearMovementSystem
	circle   *CircleAroundSystem
	depth    *DepthSystem
	attack   *EnemyAttackSystem
	damage   *DamageSystem
	pickup   *PickupSystem
	death    *DeathSystem
	lifetime *LifetimeSystem
	flash    *FlashEffectSystem
}

// newStageWorld 创建处于 Initial 状态的关卡
func newStageWorld(stage *config.StageConfig) *stageWorld {
	em := ecs.NewEntityManager()
	gs := newTestGameState()
	gs.StageProgress = game.StageInitial
	stats := newTestStats()

	w := &stageWorld{em: em, gs: gs, keys: fakeKeys{}}
	w.camera = NewCameraSystem(em, gs)
	w.spawner = NewStageSpawnSystem(em, gs, stats)
	w.cutscene = NewCutsceneSystem(em, gs)
	w.stage = NewStageSystem(em, gs, w.spawner, w.camera, w.cutscene, stage)
	w.input = NewInputSystem(gs, w.keys, w.stage)
	w.player = NewPlayerSystem(em, gs, w.input.Actions())
	w.behavior = NewEnemyBehaviorSystem(em, gs, w.stage.FloorHeight)
	w.movement = NewLinearMovementSystem(em)
	w.circle = NewCircleAroundSystem(em, gs)
	w.depth = NewDepthSystem(em)
	w.attack = NewEnemyAttackSystem(em, gs, w.camera, nil)
	w.damage = NewDamageSystem(em, gs)
	w.pickup = NewPickupSystem(em, gs)
	w.death = NewDeathSystem(em, gs, stats)
	w.lifetime = NewLifetimeSystem(em)
	w.flash = NewFlashEffectSystem(em)
	return w
}

// tick 按场景顺序推进一帧
func (w *stageWorld) tick(dt float64) {
	w.input.Update(dt)
	w.stage.Update(dt)
	stageDt := w.gs.StageDelta
	w.player.Update(stageDt)
	w.behavior.Update(stageDt)
	w.movement.Update(stageDt)
	w.circle.Update(stageDt)
	w.depth.Update(stageDt)
	w.camera.Update(stageDt)
	w.cutscene.Update(stageDt)
	w.attack.Update(stageDt)
	w.damage.Update(stageDt)
	w.pickup.Update(stageDt)
	w.death.Update(stageDt)
	w.lifetime.Update(stageDt)
	w.flash.Update(stageDt)
	w.em.RemoveMarkedEntities()
}

// run 以固定步长推进若干秒
func (w *stageWorld) run(seconds float64) {
	for t := 0.0; t < seconds; t += config.FixedDeltaTime {
		w.tick(config.FixedDeltaTime)
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

package systems

import (
	"log"

	"github.com/marcotoniut/carcenisation/internal/audio"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/entities"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

// CurrentStageStep 正在执行的关卡步骤
type CurrentStageStep struct {
	Index   int
	Started float64 // 开始时的关卡时间
}

// StageSystem 关卡步骤状态机
//
// 状态流转：
//   - Initial：生成初始实体和玩家，摄像机就位，播放关卡音乐 → Running
//   - Running：推进关卡时间，依次开始步骤、按时生成、检查步骤完成和玩家死亡
//   - Clear：清理关卡实体，播放通关曲 → Cleared
//   - 玩家死亡：还有命 → Death，否则 → GameOver
type StageSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	spawner       *StageSpawnSystem
	camera        *CameraSystem
	cutscene      *CutsceneSystem
	stage         *config.StageConfig

	stepIndex   int
	current     *CurrentStageStep
	floorDepths []float64
	player      ecs.EntityID
}

// NewStageSystem 创建关卡状态机
//
// 参数：
//   - em: 实体管理器
//   - gs: 全局状态（关卡进度、时间、分数、命数）
//   - spawner: 步骤生成器
//   - camera: 摄像机系统
//   - cutscene: 过场动画系统
//   - stage: 已校验的关卡脚本
func NewStageSystem(em *ecs.EntityManager, gs *game.GameState, spawner *StageSpawnSystem, camera *CameraSystem, cutscene *CutsceneSystem, stage *config.StageConfig) *StageSystem {
	return &StageSystem{
		entityManager: em,
		gameState:     gs,
		spawner:       spawner,
		camera:        camera,
		cutscene:      cutscene,
		stage:         stage,
		floorDepths:   stage.FloorDepths,
	}
}

// Stage 返回关卡脚本
func (s *StageSystem) Stage() *config.StageConfig {
	return s.stage
}

// StepIndex 返回下一个（或当前）步骤的序号
func (s *StageSystem) StepIndex() int {
	return s.stepIndex
}

// CurrentStep 返回正在执行的步骤，没有时返回 nil
func (s *StageSystem) CurrentStep() *CurrentStageStep {
	return s.current
}

// Player 返回玩家实体 ID
func (s *StageSystem) Player() ecs.EntityID {
	return s.player
}

// FloorHeight 返回某一深度的地面高度，没有配置时为 0
func (s *StageSystem) FloorHeight(depth int) float64 {
	if depth < 0 || depth >= len(s.floorDepths) {
		return 0
	}
	return s.floorDepths[depth]
}

// FloorDepths 返回当前生效的地面高度表
func (s *StageSystem) FloorDepths() []float64 {
	return s.floorDepths
}

// Update 推进状态机
//
// 参数：
//   - deltaTime: 帧时间（秒），只有关卡运行且未暂停时才计入关卡时间
func (s *StageSystem) Update(deltaTime float64) {
	s.gameState.AdvanceStageTime(deltaTime)
	if !s.gameState.IsRunning() {
		return
	}

	switch s.gameState.StageProgress {
	case game.StageInitial:
		s.start()
	case game.StageRunning:
		s.run()
	case game.StageClear:
		s.clear()
	}
}

// start 进入关卡
func (s *StageSystem) start() {
	s.camera.Reset(s.stage.StartCoordinates)
	s.floorDepths = s.stage.FloorDepths
	s.stepIndex = 0
	s.current = nil

	spawned := s.spawner.SpawnImmediate(s.stage.Spawns)
	player, err := entities.NewPlayer(s.entityManager, s.gameState.CrosshairIndex())
	if err != nil {
		log.Printf("[StageSystem] Failed to create player: %v", err)
	}
	s.player = player

	if s.stage.Music != "" {
		s.gameState.PlayMusic(s.stage.Music)
	}
	s.gameState.StageProgress = game.StageRunning
	log.Printf("[StageSystem] 关卡 %q 开始：%d 个步骤，%d 个初始实体", s.stage.Name, len(s.stage.Steps), spawned)
}

// run 执行 Running 状态的一帧
func (s *StageSystem) run() {
	if s.current == nil {
		if s.stepIndex >= len(s.stage.Steps) {
			s.gameState.StageProgress = game.StageClear
			return
		}
		s.beginStep(s.stepIndex)
	}

	s.spawner.Update(s.gameState.StageDelta)

	if s.checkDeath() {
		return
	}
	if s.isStepComplete() {
		s.endStep()
	}
}

// beginStep 开始第 index 个步骤
func (s *StageSystem) beginStep(index int) {
	step := &s.stage.Steps[index]
	s.current = &CurrentStageStep{Index: index, Started: s.gameState.StageElapsed}

	s.spawner.Queue(step.Spawns)
	if len(step.FloorDepths) > 0 {
		s.floorDepths = step.FloorDepths
	}

	switch step.Kind {
	case config.StepMovement:
		s.camera.MoveTo(step.Coordinates, step.BaseSpeed*config.GameBaseSpeed)
	case config.StepStop:
		s.camera.Stop()
	case config.StepCinematic:
		if err := s.cutscene.Start(step.Cinematic); err != nil {
			log.Printf("[StageSystem] Failed to start cinematic: %v", err)
		}
	}

	if s.gameState.DebugStageStep {
		log.Printf("[StageSystem] 步骤 %d/%d 开始：%s，关卡时间 %.2f", index+1, len(s.stage.Steps), step.Kind, s.current.Started)
	}
}

// isStepComplete 判断当前步骤是否完成
func (s *StageSystem) isStepComplete() bool {
	if s.current == nil {
		return false
	}
	step := &s.stage.Steps[s.current.Index]

	switch step.Kind {
	case config.StepMovement:
		return s.camera.IsReached()
	case config.StepStop:
		if step.MaxDuration != nil && s.current.Started+*step.MaxDuration <= s.gameState.StageElapsed {
			return true
		}
		if !step.HasResumeConditions() {
			return false
		}
		if step.KillAll && !s.allEnemiesKilled() {
			return false
		}
		if step.KillBoss && !s.bossKilled() {
			return false
		}
		return true
	case config.StepCinematic:
		return s.cutscene.IsFinished()
	}
	return true
}

// allEnemiesKilled 没有存活的敌人且没有等待生成的敌人
func (s *StageSystem) allEnemiesKilled() bool {
	return s.countLivingEnemies(false) == 0 && s.spawner.PendingEnemies() == 0
}

// bossKilled 没有存活的 Boss 且没有等待生成的 Boss
func (s *StageSystem) bossKilled() bool {
	return s.countLivingEnemies(true) == 0 && s.spawner.PendingBosses() == 0
}

// countLivingEnemies 统计存活敌人，bossOnly 时只统计 Boss
func (s *StageSystem) countLivingEnemies(bossOnly bool) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		if s.entityManager.IsPendingDestroy(id) || ecs.HasComponent[*components.DeadComponent](s.entityManager, id) {
			continue
		}
		if bossOnly {
			enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
			if !enemy.Boss {
				continue
			}
		}
		count++
	}
	return count
}

// endStep 结束当前步骤，最后一步结束后进入 Clear
func (s *StageSystem) endStep() {
	step := &s.stage.Steps[s.current.Index]
	if s.gameState.DebugStageStep {
		log.Printf("[StageSystem] 步骤 %d/%d 结束：%s，用时 %.2f 秒", s.current.Index+1, len(s.stage.Steps),
			step.Kind, s.gameState.StageElapsed-s.current.Started)
	}
	if step.Kind == config.StepCinematic {
		s.cutscene.Clear()
		if s.stage.Music != "" && step.Cinematic != nil && step.Cinematic.Music != "" {
			s.gameState.PlayMusic(s.stage.Music)
		}
	}

	s.camera.Stop()
	s.current = nil
	s.stepIndex++
	if s.stepIndex >= len(s.stage.Steps) {
		s.gameState.StageProgress = game.StageClear
	}
}

// SkipCutscene 跳过正在播放的过场，没有过场时返回 false
func (s *StageSystem) SkipCutscene() bool {
	if !s.cutscene.IsActive() {
		return false
	}
	s.cutscene.Skip()
	return true
}

// checkDeath 玩家生命归零时结算死亡
func (s *StageSystem) checkDeath() bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, s.player)
	if !ok || !health.IsDead() {
		return false
	}

	lives := s.gameState.ApplyDeath()
	s.despawnStage()
	s.gameState.StopMusic()

	if lives <= 0 {
		s.gameState.StageProgress = game.StageGameOver
		s.gameState.PlayMusic(audio.MusicGameOver)
		if rm := s.gameState.GetRecordManager(); rm != nil {
			_, rank := rm.AddRecord(s.gameState.Score, s.stage.Name, false)
			log.Printf("[StageSystem] 游戏结束，分数 %d，排名 %d", s.gameState.Score, rank+1)
		}
	} else {
		s.gameState.StageProgress = game.StageDeath
		log.Printf("[StageSystem] 玩家死亡，剩余 %d 条命", lives)
	}
	return true
}

// clear 通关结算
func (s *StageSystem) clear() {
	s.despawnStage()
	s.gameState.StopMusic()
	s.gameState.PlayMusic(audio.MusicCleared)

	if rm := s.gameState.GetRecordManager(); rm != nil {
		rm.MarkStageCleared(s.stage.Name)
	}
	s.gameState.StageProgress = game.StageCleared
	log.Printf("[StageSystem] 关卡 %q 通关，分数 %d", s.stage.Name, s.gameState.Score)
}

// despawnStage 移除所有关卡实体并重置步骤
func (s *StageSystem) despawnStage() {
	for _, id := range ecs.GetEntitiesWith1[*components.StageEntityComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.spawner.Clear()
	s.cutscene.Clear()
	s.camera.Stop()
	s.current = nil
	s.player = ecs.InvalidEntity
}

// Restart 从 Initial 重新开始同一关卡，分数和命数保持不变
func (s *StageSystem) Restart() {
	s.despawnStage()
	s.stepIndex = 0
	s.floorDepths = s.stage.FloorDepths
	s.gameState.BeginStage(s.gameState.StagePath, s.gameState.StageIndex)
	log.Printf("[StageSystem] 重新开始关卡 %q", s.stage.Name)
}

// TogglePause 在运行和暂停之间切换，返回切换后是否暂停
func (s *StageSystem) TogglePause() bool {
	paused := s.gameState.TogglePause()
	s.gameState.PlaySound(audio.SoundPause)
	return paused
}

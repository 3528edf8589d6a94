package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/modules"
	"github.com/marcotoniut/carcenisation/pkg/systems"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// StageScene 关卡场景
// 持有一个关卡的 ECS 世界和全部系统，按固定顺序更新：
// 输入 → 关卡状态机 → 玩家与敌人 → 移动 → 摄像机与过场 → 战斗 → 清理
type StageScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	gameState       *game.GameState
	campaign        *config.CampaignConfig

	entityManager *ecs.EntityManager
	stage         *config.StageConfig

	// 逻辑系统
	inputSystem    *systems.InputSystem
	stageSystem    *systems.StageSystem
	spawnSystem    *systems.StageSpawnSystem
	cameraSystem   *systems.CameraSystem
	cutsceneSystem *systems.CutsceneSystem
	playerSystem   *systems.PlayerSystem
	behaviorSystem *systems.EnemyBehaviorSystem
	movementSystem *systems.LinearMovementSystem
	circleSystem   *systems.CircleAroundSystem
	depthSystem    *systems.DepthSystem
	attackSystem   *systems.EnemyAttackSystem
	damageSystem   *systems.DamageSystem
	pickupSystem   *systems.PickupSystem
	deathSystem    *systems.DeathSystem
	lifetimeSystem *systems.LifetimeSystem
	flashSystem    *systems.FlashEffectSystem

	// 渲染系统
	backgroundRender *systems.BackgroundRenderSystem
	renderSystem     *systems.RenderSystem
	hudRender        *systems.HUDRenderSystem
	cutsceneRender   *systems.CutsceneRenderSystem

	// 覆盖层
	pauseMenu    *modules.PauseMenuModule
	clearedPanel *modules.StageClearedModule
	deathPanel   *modules.DeathScreenModule
	gameOver     *modules.GameOverModule
}

// StageSceneOptions 创建关卡场景所需的依赖
type StageSceneOptions struct {
	ResourceManager *game.ResourceManager // 可为 nil（无字体、无音频）
	SceneManager    *game.SceneManager
	GameState       *game.GameState
	Campaign        *config.CampaignConfig // 可为 nil，此时通关后返回标题
	EnemyStats      *config.EnemyStatsConfig
	Input           utils.KeySource // nil 时使用键盘和手柄
}

// NewStageScene 加载关卡文件并创建关卡场景
//
// 参数：
//   - opts: 场景依赖
//   - stagePath: 关卡 YAML 路径
//   - index: 在战役中的序号，-1 表示独立关卡
//
// 返回：
//   - *StageScene: 新场景，关卡处于 Initial 状态
//   - error: 关卡文件无法加载或校验失败
func NewStageScene(opts StageSceneOptions, stagePath string, index int) (*StageScene, error) {
	stage, err := config.LoadStageConfig(stagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", stagePath, err)
	}
	return NewStageSceneFromConfig(opts, stage, stagePath, index), nil
}

// NewStageSceneFromConfig 用已加载的关卡配置创建场景
func NewStageSceneFromConfig(opts StageSceneOptions, stage *config.StageConfig, stagePath string, index int) *StageScene {
	gs := opts.GameState
	em := ecs.NewEntityManager()
	s := &StageScene{
		resourceManager: opts.ResourceManager,
		sceneManager:    opts.SceneManager,
		gameState:       gs,
		campaign:        opts.Campaign,
		entityManager:   em,
		stage:           stage,
	}

	gs.BeginStage(stagePath, index)

	source := opts.Input
	if source == nil {
		source = utils.NewDeviceSource()
	}

	s.cameraSystem = systems.NewCameraSystem(em, gs)
	s.spawnSystem = systems.NewStageSpawnSystem(em, gs, opts.EnemyStats)
	s.cutsceneSystem = systems.NewCutsceneSystem(em, gs)
	s.stageSystem = systems.NewStageSystem(em, gs, s.spawnSystem, s.cameraSystem, s.cutsceneSystem, stage)
	s.inputSystem = systems.NewInputSystem(gs, source, s.stageSystem)
	s.playerSystem = systems.NewPlayerSystem(em, gs, s.inputSystem.Actions())
	s.behaviorSystem = systems.NewEnemyBehaviorSystem(em, gs, s.stageSystem.FloorHeight)
	s.movementSystem = systems.NewLinearMovementSystem(em)
	s.circleSystem = systems.NewCircleAroundSystem(em, gs)
	s.depthSystem = systems.NewDepthSystem(em)
	s.attackSystem = systems.NewEnemyAttackSystem(em, gs, s.cameraSystem, nil)
	s.damageSystem = systems.NewDamageSystem(em, gs)
	s.pickupSystem = systems.NewPickupSystem(em, gs)
	s.deathSystem = systems.NewDeathSystem(em, gs, opts.EnemyStats)
	s.lifetimeSystem = systems.NewLifetimeSystem(em)
	s.flashSystem = systems.NewFlashEffectSystem(em)

	var face text.Face
	if opts.ResourceManager != nil {
		face = opts.ResourceManager.GetFont()
	}
	s.backgroundRender = systems.NewBackgroundRenderSystem(gs, stage, s.stageSystem.FloorDepths)
	s.renderSystem = systems.NewRenderSystem(em, gs)
	s.hudRender = systems.NewHUDRenderSystem(em, gs, face)
	s.cutsceneRender = systems.NewCutsceneRenderSystem(em, face)

	actions := s.inputSystem.Actions()
	s.pauseMenu = modules.NewPauseMenuModule(gs, actions, face, modules.PauseMenuCallbacks{
		OnMainMenu:         s.quitToTitle,
		OnCrosshairChanged: s.applyCrosshair,
	})
	s.clearedPanel = modules.NewStageClearedModule(gs, actions, face, s.continueCampaign)
	s.deathPanel = modules.NewDeathScreenModule(gs, actions, face, s.stageSystem.Restart)
	s.gameOver = modules.NewGameOverModule(gs, actions, face, s.returnToTitle)

	log.Printf("[StageScene] 关卡 %q 已创建（序号 %d）", stage.Name, index)
	return s
}

// Update 按固定顺序更新所有系统
// 关卡时间停止时（暂停、过场结束、结算画面）逻辑系统收到的时间步长为 0
func (s *StageScene) Update(deltaTime float64) {
	s.inputSystem.Update(deltaTime)
	s.stageSystem.Update(deltaTime)

	stageDt := s.gameState.StageDelta
	s.playerSystem.Update(stageDt)
	s.behaviorSystem.Update(stageDt)
	s.movementSystem.Update(stageDt)
	s.circleSystem.Update(stageDt)
	s.depthSystem.Update(stageDt)
	s.cameraSystem.Update(stageDt)
	s.cutsceneSystem.Update(stageDt)
	s.attackSystem.Update(stageDt)
	s.damageSystem.Update(stageDt)
	s.pickupSystem.Update(stageDt)
	s.deathSystem.Update(stageDt)
	s.lifetimeSystem.Update(stageDt)
	s.flashSystem.Update(stageDt)
	s.entityManager.RemoveMarkedEntities()

	s.pauseMenu.Update(deltaTime)
	s.clearedPanel.Update(deltaTime)
	s.deathPanel.Update(deltaTime)
	s.gameOver.Update(deltaTime)
}

// Draw 渲染顺序（从后到前）：
// 背景 → 实体 → HUD → 过场字幕 → 覆盖层
func (s *StageScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.PaletteDarkest.Color())
	s.backgroundRender.Draw(screen)
	s.renderSystem.Draw(screen)
	s.hudRender.Draw(screen)
	s.cutsceneRender.Draw(screen)

	s.pauseMenu.Draw(screen)
	s.clearedPanel.Draw(screen)
	s.deathPanel.Draw(screen)
	s.gameOver.Draw(screen)
}

// Close 离开场景时停止音乐
func (s *StageScene) Close() {
	s.gameState.StopMusic()
	log.Printf("[StageScene] 关卡 %q 已关闭", s.stage.Name)
}

// Stage 返回关卡配置
func (s *StageScene) Stage() *config.StageConfig {
	return s.stage
}

// StageSystem 返回关卡状态机
func (s *StageScene) StageSystem() *systems.StageSystem {
	return s.stageSystem
}

// EntityManager 返回场景的实体管理器
func (s *StageScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// continueCampaign 通关后进入下一关，战役结束时记录分数并返回标题
func (s *StageScene) continueCampaign() {
	next := s.gameState.StageIndex + 1
	if s.campaign != nil && s.gameState.StageIndex >= 0 && next < len(s.campaign.Stages) {
		s.loadStage(s.campaign.Stages[next], next)
		return
	}

	s.recordScore(true)
	s.returnToTitle()
}

// quitToTitle 从暂停菜单放弃本局
func (s *StageScene) quitToTitle() {
	s.recordScore(false)
	s.returnToTitle()
}

func (s *StageScene) recordScore(cleared bool) {
	rm := s.gameState.GetRecordManager()
	if rm == nil || s.gameState.Score <= 0 {
		return
	}
	_, rank := rm.AddRecord(s.gameState.Score, s.stage.Name, cleared)
	log.Printf("[StageScene] 记录分数 %d，排名 %d", s.gameState.Score, rank+1)
}

func (s *StageScene) loadStage(path string, index int) {
	if s.sceneManager == nil {
		return
	}
	s.sceneManager.LoadStage(path, index)
}

func (s *StageScene) returnToTitle() {
	if s.sceneManager == nil {
		return
	}
	s.sceneManager.LoadTitle()
}

// applyCrosshair 把新的准星样式应用到当前玩家
func (s *StageScene) applyCrosshair(index int) {
	if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.stageSystem.Player()); ok {
		player.CrosshairIndex = index
	}
}

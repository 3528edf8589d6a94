// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/scenes"
)

// DefaultCampaignPath 默认战役配置文件
const DefaultCampaignPath = "data/campaign.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Stage 直接进入的关卡（路径或名称，如 "park"），为空则显示标题画面
	Stage string
	// SkipTitle 跳过标题画面，从战役第一关开始
	SkipTitle bool
	// DebugSteps 打印每次关卡步骤切换
	DebugSteps bool
	// CampaignPath 战役配置文件，为空时使用 DefaultCampaignPath
	CampaignPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	gameState                *game.GameState
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	campaignPath := cfg.CampaignPath
	if campaignPath == "" {
		campaignPath = DefaultCampaignPath
	}
	campaign, err := config.LoadCampaign(campaignPath)
	if err != nil {
		return nil, fmt.Errorf("战役配置加载失败: %w", err)
	}
	stats, err := config.LoadEnemyStats(campaign.EnemyStats)
	if err != nil {
		return nil, fmt.Errorf("敌人属性加载失败: %w", err)
	}
	log.Printf("[Config] 战役共 %d 关，%d 种敌人", len(campaign.Stages), len(stats.Enemies))

	// 初始化音频上下文与资源管理器
	audioContext := audio.NewContext(game.SampleRate)
	resourceManager := game.NewResourceManager(audioContext)

	// 初始化 AudioManager 并设置到 GameState
	gameState := game.GetGameState()
	gameState.DebugStageStep = cfg.DebugSteps
	audioManager := game.NewAudioManager(resourceManager, gameState.GetSettingsManager())
	gameState.SetAudioManager(audioManager)
	log.Printf("[App] AudioManager initialized")

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(stagePath string, index int) game.Scene {
		scene, err := scenes.NewStageScene(scenes.StageSceneOptions{
			ResourceManager: resourceManager,
			SceneManager:    sceneManager,
			GameState:       gameState,
			Campaign:        campaign,
			EnemyStats:      stats,
		}, stagePath, index)
		if err != nil {
			log.Printf("[App] 错误: %v", err)
			return nil
		}
		return scene
	})
	sceneManager.SetTitleFactory(func() game.Scene {
		return scenes.NewTitleScene(resourceManager, sceneManager, gameState, campaign, nil)
	})

	// 根据配置决定启动场景
	path, index, err := resolveStartStage(cfg, campaign)
	if err != nil {
		return nil, err
	}
	if path == "" {
		sceneManager.LoadTitle()
	} else {
		log.Printf("[App] Starting stage: %s", path)
		gameState.NewRun(campaign.StartingLives)
		sceneManager.LoadStage(path, index)
	}

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
		verbose:      cfg.Verbose,
	}, nil
}

// resolveStartStage 根据启动参数确定第一个关卡
//
// 返回：
//   - path: 关卡路径，为空表示显示标题画面
//   - index: 在战役中的序号，不在战役中时为 -1
//   - error: 指定的关卡不存在
func resolveStartStage(cfg Config, campaign *config.CampaignConfig) (string, int, error) {
	if cfg.Stage == "" {
		if cfg.SkipTitle {
			return campaign.Stages[0], 0, nil
		}
		return "", -1, nil
	}

	if index := campaign.IndexOf(cfg.Stage); index >= 0 {
		return campaign.Stages[index], index, nil
	}
	path := cfg.Stage
	if _, err := config.LoadStageConfig(path); err != nil {
		path = "data/stages/" + cfg.Stage + ".yaml"
		if _, err := config.LoadStageConfig(path); err != nil {
			return "", -1, fmt.Errorf("unknown stage %q: %w", cfg.Stage, err)
		}
	}
	return path, -1, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(config.FixedDeltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	if sm := a.gameState.GetSettingsManager(); sm != nil {
		sm.SetFullscreen(fullscreen)
		if err := sm.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 像素画面使用最近邻缩放，全屏时两侧填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时停止音乐
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

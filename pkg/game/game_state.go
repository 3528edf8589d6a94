package game

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// GameProgress 游戏整体运行状态
type GameProgress int

const (
	GameLoading GameProgress = iota
	GameRunning
	GamePaused
)

func (p GameProgress) String() string {
	switch p {
	case GameLoading:
		return "Loading"
	case GameRunning:
		return "Running"
	case GamePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// StageProgress 当前关卡的进度状态
type StageProgress int

const (
	StageInitial StageProgress = iota
	StageRunning
	StageClear
	StageCleared
	StageDeath
	StageGameOver
)

func (p StageProgress) String() string {
	switch p {
	case StageInitial:
		return "Initial"
	case StageRunning:
		return "Running"
	case StageClear:
		return "Clear"
	case StageCleared:
		return "Cleared"
	case StageDeath:
		return "Death"
	case StageGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	GameProgress  GameProgress
	StageProgress StageProgress

	Score int // 当前分数
	Lives int // 剩余命数

	StagePath  string // 当前关卡文件
	StageIndex int    // 在战役中的序号，-1 表示独立关卡

	// 关卡时间：只在关卡运行且未暂停时推进
	StageElapsed float64
	StageDelta   float64

	// 摄像机位置（世界坐标，y 轴向上，指向画面左下角）
	CameraX float64
	CameraY float64

	// DebugStageStep 打印每次步骤切换
	DebugStageStep bool

	gdataManager    *gdata.Manager
	settingsManager *SettingsManager
	recordManager   *RecordManager
	audioManager    *AudioManager
}

const storageAppName = "carcinisation"

// 全局单例实例
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，首次调用时打开 gdata 存储并加载设置与记录
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = newGameState(openStorage())
	}
	return globalGameState
}

// NewGameStateWithStorage 用指定存储创建一个独立的 GameState
// 主要用于测试，gdataManager 可为 nil（降级模式）
func NewGameStateWithStorage(gdataManager *gdata.Manager) *GameState {
	return newGameState(gdataManager)
}

func newGameState(gdataManager *gdata.Manager) *GameState {
	gs := &GameState{
		GameProgress:   GameLoading,
		StageProgress:  StageInitial,
		Lives:          config.DefaultLives,
		StageIndex:     -1,
		DebugStageStep: config.DebugStageStep,
		gdataManager:   gdataManager,
	}

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[GameState] Warning: settings unavailable: %v", err)
	}
	gs.settingsManager = sm

	rm, err := NewRecordManager(gdataManager)
	if err != nil {
		log.Printf("[GameState] Warning: records unavailable: %v", err)
	}
	gs.recordManager = rm

	return gs
}

// openStorage 打开 gdata 存储，失败时返回 nil 进入降级模式
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(storageAppName); err != nil {
		log.Printf("[GameState] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: storageAppName})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable, running without persistence: %v", err)
		return nil
	}
	return m
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetRecordManager 返回记录管理器
func (gs *GameState) GetRecordManager() *RecordManager {
	return gs.recordManager
}

// SetAudioManager 由 App 在音频上下文创建后注入
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 返回音频管理器，未初始化时为 nil
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}

// PlaySound 播放音效，音频未初始化时静默忽略
func (gs *GameState) PlaySound(id string) {
	if gs.audioManager != nil {
		gs.audioManager.PlaySound(id)
	}
}

// PlayMusic 播放音乐，音频未初始化时静默忽略
func (gs *GameState) PlayMusic(id string) {
	if gs.audioManager != nil && id != "" {
		gs.audioManager.PlayMusic(id)
	}
}

// StopMusic 停止音乐
func (gs *GameState) StopMusic() {
	if gs.audioManager != nil {
		gs.audioManager.StopMusic()
	}
}

// NewRun 开始新一局：分数清零，命数重置
//
// 参数：
//   - lives: 初始命数，<= 0 时使用默认值
func (gs *GameState) NewRun(lives int) {
	if lives <= 0 {
		lives = config.DefaultLives
	}
	gs.Score = 0
	gs.Lives = lives
	gs.StageIndex = -1
	gs.StagePath = ""
}

// BeginStage 进入关卡的初始状态，分数和命数保持不变
func (gs *GameState) BeginStage(path string, index int) {
	gs.StagePath = path
	gs.StageIndex = index
	gs.StageProgress = StageInitial
	gs.GameProgress = GameRunning
	gs.StageElapsed = 0
	gs.StageDelta = 0
	gs.CameraX = 0
	gs.CameraY = 0
}

// IsRunning 游戏处于运行状态（未暂停、未加载）
func (gs *GameState) IsRunning() bool {
	return gs.GameProgress == GameRunning
}

// IsStageActive 关卡正在进行中且游戏未暂停
func (gs *GameState) IsStageActive() bool {
	return gs.IsRunning() && gs.StageProgress == StageRunning
}

// TogglePause 在 Running 和 Paused 之间切换
//
// 返回：
//   - bool: 切换后是否处于暂停状态
func (gs *GameState) TogglePause() bool {
	switch gs.GameProgress {
	case GameRunning:
		gs.GameProgress = GamePaused
		if gs.audioManager != nil {
			gs.audioManager.PauseMusic()
		}
	case GamePaused:
		gs.GameProgress = GameRunning
		if gs.audioManager != nil {
			gs.audioManager.ResumeMusic()
		}
	}
	return gs.GameProgress == GamePaused
}

// AdvanceStageTime 推进关卡时间
// 只有在关卡运行中才会推进，返回本帧实际推进的时长
func (gs *GameState) AdvanceStageTime(dt float64) float64 {
	if !gs.IsStageActive() {
		gs.StageDelta = 0
		return 0
	}
	gs.StageDelta = dt
	gs.StageElapsed += dt
	return dt
}

// AddScore 增加分数
func (gs *GameState) AddScore(amount int) {
	gs.Score += amount
	if gs.Score < 0 {
		gs.Score = 0
	}
}

// ApplyDeath 扣除死亡惩罚分数并减少一条命
// 分数不会低于 0
//
// 返回：
//   - int: 剩余命数
func (gs *GameState) ApplyDeath() int {
	gs.Score -= config.DeathScorePenalty
	if gs.Score < 0 {
		gs.Score = 0
	}
	if gs.Lives > 0 {
		gs.Lives--
	}
	return gs.Lives
}

// Camera 返回摄像机位置
func (gs *GameState) Camera() mgl64.Vec2 {
	return mgl64.Vec2{gs.CameraX, gs.CameraY}
}

// SetCamera 设置摄像机位置
func (gs *GameState) SetCamera(pos mgl64.Vec2) {
	gs.CameraX = pos.X()
	gs.CameraY = pos.Y()
}

// CrosshairIndex 当前准星样式
func (gs *GameState) CrosshairIndex() int {
	if gs.settingsManager == nil {
		return config.DefaultCrosshairIndex
	}
	return gs.settingsManager.GetSettings().CrosshairIndex
}

package scenes

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/marcotoniut/carcenisation/internal/audio"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// GameTitle 标题画面显示的游戏名
const GameTitle = "CARCINISATION"

// TitleScene 标题画面
// 显示游戏名、开始提示和最高分榜；Start 键开始新的战役
type TitleScene struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState
	campaign     *config.CampaignConfig

	source  utils.KeySource
	actions *utils.ActionState
	face    text.Face

	elapsed float64
	started bool
}

// NewTitleScene 创建标题画面并播放标题音乐
//
// 参数：
//   - rm: 资源管理器，可为 nil（不绘制文字）
//   - sm: 场景管理器
//   - gs: 全局状态
//   - campaign: 战役配置，Start 键从第一关开始
//   - source: 按键来源，nil 时使用键盘和手柄
func NewTitleScene(rm *game.ResourceManager, sm *game.SceneManager, gs *game.GameState, campaign *config.CampaignConfig, source utils.KeySource) *TitleScene {
	if source == nil {
		source = utils.NewDeviceSource()
	}
	var face text.Face
	if rm != nil {
		face = rm.GetFont()
	}

	gs.GameProgress = game.GameLoading
	gs.StopMusic()
	gs.PlayMusic(audio.MusicTitle)

	return &TitleScene{
		sceneManager: sm,
		gameState:    gs,
		campaign:     campaign,
		source:       source,
		actions:      &utils.ActionState{},
		face:         face,
	}
}

// Update 等待 Start 键（移动端为点击屏幕）
func (s *TitleScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	touched := false
	if d, ok := s.source.(*utils.DeviceSource); ok {
		d.Refresh()
		touched, _, _ = utils.IsJustTouchedOrClicked()
	}
	s.actions.Update(s.source)

	if s.started || s.elapsed < config.OverlayInputDelay {
		return
	}
	if touched || s.actions.JustPressed(utils.ActionStart) || s.actions.JustPressed(utils.ActionA) {
		s.start()
	}
}

// start 开始新的一局
func (s *TitleScene) start() {
	if s.campaign == nil || len(s.campaign.Stages) == 0 {
		log.Printf("[TitleScene] 错误: 没有可用的关卡")
		return
	}
	s.started = true
	s.gameState.PlaySound(audio.SoundMenuSelect)
	s.gameState.NewRun(s.campaign.StartingLives)
	log.Printf("[TitleScene] 开始新游戏")
	if s.sceneManager != nil {
		s.sceneManager.LoadStage(s.campaign.Stages[0], 0)
	}
}

// Started 是否已经请求开始游戏
func (s *TitleScene) Started() bool {
	return s.started
}

// HighScoreLines 最高分榜的文字行
func (s *TitleScene) HighScoreLines() []string {
	rm := s.gameState.GetRecordManager()
	if rm == nil {
		return nil
	}
	records := rm.TopRecords(config.HighScoreRows)
	lines := make([]string, 0, len(records))
	for i, r := range records {
		mark := " "
		if r.Cleared {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%d %06d%s", i+1, r.Score, mark))
	}
	return lines
}

// Draw 绘制标题画面
func (s *TitleScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.PaletteDarkest.Color())
	s.drawCrab(screen, config.ScreenWidth/2, 46)

	if s.face == nil {
		return
	}
	utils.DrawCenteredText(screen, GameTitle, s.face, config.ScreenWidth/2, 8, config.PaletteLightest.Color())
	if math.Mod(s.elapsed, config.OverlayBlinkPeriod) < config.OverlayBlinkPeriod/2 {
		utils.DrawCenteredText(screen, startPrompt(), s.face, config.ScreenWidth/2, 66, config.PaletteLight.Color())
	}

	lines := s.HighScoreLines()
	if len(lines) == 0 {
		return
	}
	y := 84.0
	utils.DrawCenteredText(screen, "HI-SCORES", s.face, config.ScreenWidth/2, y, config.PaletteLightest.Color())
	for _, line := range lines {
		y += config.FontSize
		utils.DrawCenteredText(screen, line, s.face, config.ScreenWidth/2, y, config.PaletteLight.Color())
	}
}

// drawCrab 用基本图形画一只螃蟹，钳子随时间开合
func (s *TitleScene) drawCrab(screen *ebiten.Image, cx, cy float32) {
	body := config.PaletteLight.Color()
	claw := config.PaletteLightest.Color()
	open := float32(2 + 2*math.Sin(s.elapsed*4))

	vector.DrawFilledCircle(screen, cx, cy, 10, body, false)
	for _, side := range []float32{-1, 1} {
		vector.StrokeLine(screen, cx+side*8, cy, cx+side*16, cy-6, 2, body, false)
		vector.DrawFilledCircle(screen, cx+side*18, cy-8-open, 3, claw, false)
		vector.DrawFilledCircle(screen, cx+side*18, cy-8+open, 3, claw, false)
		for leg := float32(0); leg < 3; leg++ {
			vector.StrokeLine(screen, cx+side*6, cy+4+leg*2, cx+side*14, cy+8+leg*3, 1, body, false)
		}
	}
	vector.DrawFilledCircle(screen, cx-4, cy-8, 2, claw, false)
	vector.DrawFilledCircle(screen, cx+4, cy-8, 2, claw, false)
}

func startPrompt() string {
	if utils.IsMobile() {
		return "TAP TO START"
	}
	return "PRESS START"
}

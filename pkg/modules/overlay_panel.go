package modules

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// overlayLine 面板中的一行文字
type overlayLine struct {
	text  string
	color config.PaletteIndex
	blink bool // 按 OverlayBlinkPeriod 闪烁
}

// overlayPanel 覆盖层模块的公共部分
// 负责检测激活状态变化、激活后的输入屏蔽，以及居中面板的绘制
type overlayPanel struct {
	name      string
	gameState *game.GameState
	actions   *utils.ActionState
	face      text.Face

	activeWhen func(gs *game.GameState) bool

	// 内部状态（用于检测状态变化）
	wasActive  bool
	inputDelay float64 // 剩余的输入屏蔽时间
	elapsed    float64 // 本次激活后经过的时间
}

func newOverlayPanel(name string, gs *game.GameState, actions *utils.ActionState, face text.Face, activeWhen func(gs *game.GameState) bool) overlayPanel {
	return overlayPanel{
		name:       name,
		gameState:  gs,
		actions:    actions,
		face:       face,
		activeWhen: activeWhen,
	}
}

// update 同步激活状态
//
// 返回：
//   - active: 覆盖层当前是否显示
//   - ready: 输入屏蔽已结束，可以响应按键
func (p *overlayPanel) update(deltaTime float64) (active, ready bool) {
	active = p.activeWhen(p.gameState)
	if active != p.wasActive {
		if active {
			p.inputDelay = config.OverlayInputDelay
			p.elapsed = 0
			log.Printf("[%s] shown", p.name)
		} else {
			log.Printf("[%s] hidden", p.name)
		}
		p.wasActive = active
	}
	if !active {
		return false, false
	}

	p.elapsed += deltaTime
	if p.inputDelay > 0 {
		p.inputDelay -= deltaTime
		return true, false
	}
	return true, true
}

// justPressed 输入屏蔽结束后某个按键是否刚按下
func (p *overlayPanel) justPressed(a utils.Action) bool {
	return p.actions != nil && p.actions.JustPressed(a)
}

// isActive 覆盖层是否显示
func (p *overlayPanel) isActive() bool {
	return p.wasActive
}

// blinkVisible 闪烁文字当前是否可见
func (p *overlayPanel) blinkVisible() bool {
	phase := p.elapsed / config.OverlayBlinkPeriod
	return phase-float64(int(phase)) < 0.5
}

// draw 在游戏画面中央绘制面板
func (p *overlayPanel) draw(screen *ebiten.Image, lines []overlayLine) {
	if !p.wasActive {
		return
	}

	const (
		padding    = 6
		lineHeight = config.FontSize + 2
		width      = config.ScreenWidth - 24
	)
	height := float32(len(lines)*lineHeight + padding*2)
	x := float32(config.ScreenWidth-width) / 2
	y := (float32(config.CameraHeight) - height) / 2

	vector.DrawFilledRect(screen, x, y, width, height, config.PaletteDarkest.Color(), false)
	vector.StrokeRect(screen, x, y, width, height, 1, config.PaletteLight.Color(), false)

	if p.face == nil {
		return
	}
	for i, line := range lines {
		if line.blink && !p.blinkVisible() {
			continue
		}
		ly := float64(y) + padding + float64(i*lineHeight)
		utils.DrawCenteredText(screen, line.text, p.face, config.ScreenWidth/2, ly, line.color.Color())
	}
}

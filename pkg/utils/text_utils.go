package utils

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度按单词换行
//
// 参数:
//   - textStr: 要换行的文本，保留原有的换行符
//   - face: 字体，为 nil 时不换行
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本行
//
// 单个单词超过最大宽度时独占一行
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if face == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if measureTextWidth(candidate, face) > maxWidth {
				lines = append(lines, current)
				current = w
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}

// DrawText 以左上角为锚点绘制文字
func DrawText(screen *ebiten.Image, str string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// DrawCenteredText 以水平中点为锚点绘制文字
func DrawCenteredText(screen *ebiten.Image, str string, face text.Face, centerX, y float64, clr color.Color) {
	DrawText(screen, str, face, centerX-measureTextWidth(str, face)/2, y, clr)
}

package config

import "image/color"

// PaletteIndex 掌机四色调色板索引，0 最亮，3 最暗
type PaletteIndex int

const (
	PaletteLightest PaletteIndex = iota
	PaletteLight
	PaletteDark
	PaletteDarkest
)

var palette = [4]color.RGBA{
	{R: 0x9b, G: 0xbc, B: 0x0f, A: 0xff},
	{R: 0x8b, G: 0xac, B: 0x0f, A: 0xff},
	{R: 0x30, G: 0x62, B: 0x30, A: 0xff},
	{R: 0x0f, G: 0x38, B: 0x0f, A: 0xff},
}

// Color 返回调色板颜色，越界索引会被夹到合法范围
func (p PaletteIndex) Color() color.RGBA {
	if p < PaletteLightest {
		p = PaletteLightest
	}
	if p > PaletteDarkest {
		p = PaletteDarkest
	}
	return palette[p]
}

// Invert 返回明暗反转的索引，用于受击闪烁
func (p PaletteIndex) Invert() PaletteIndex {
	return PaletteDarkest - p
}

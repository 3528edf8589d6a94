package components

import "github.com/marcotoniut/carcenisation/pkg/config"

// Layer 绘制层，数值越小越先绘制
type Layer int

const (
	LayerSkybox Layer = iota
	layerPreBackgroundDepth9
	layerPreBackgroundDepth8
	layerPreBackgroundDepth7
	LayerBackground
	layerMidDepth6
	layerMidDepth5
	layerMidDepth4
	layerMidDepth3
	layerMidDepth2
	layerMidDepth1
	layerMidDepth0
	LayerAttack
	LayerFront
	LayerHUDBackground
	LayerHUD
	LayerPickups
	LayerUIBackground
	LayerUI
	LayerCutscene
	LayerTransition
)

// DepthLayer 返回深度对应的绘制层
// 深度 7 到 9 画在背景之前，0 到 6 画在背景之后
func DepthLayer(depth int) Layer {
	switch {
	case depth >= 9:
		return layerPreBackgroundDepth9
	case depth >= 7:
		return layerPreBackgroundDepth9 + Layer(9-depth)
	case depth < 0:
		return layerMidDepth0
	default:
		return layerMidDepth6 + Layer(6-depth)
	}
}

// Canvas 绘制坐标空间
type Canvas int

const (
	// CanvasWorld 世界坐标，随摄像机移动
	CanvasWorld Canvas = iota
	// CanvasCamera 摄像机坐标（y 轴向上），固定在屏幕上
	CanvasCamera
)

// ShapeKind 程序化绘制的形状
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
	ShapeCrosshair
	ShapeRing
)

// RenderComponent 程序化绘制参数
type RenderComponent struct {
	Layer   Layer
	Canvas  Canvas
	Shape   ShapeKind
	Radius  float64
	Width   float64
	Height  float64
	Palette config.PaletteIndex
	Hidden  bool
}

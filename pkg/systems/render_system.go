package systems

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// RenderSystem 绘制带 RenderComponent 的实体
//
// 绘制顺序：先按图层，同图层内深度越远越先画，最后按创建顺序。
// 世界画布上的实体相对摄像机绘制，摄像机画布（准星）直接按摄像机坐标绘制
type RenderSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager, gs *game.GameState) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		gameState:     gs,
	}
}

// renderItem 排序用的绘制条目
type renderItem struct {
	id    ecs.EntityID
	layer components.Layer
	depth int
}

// RenderOrder 返回可见实体的绘制顺序
func (s *RenderSystem) RenderOrder() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.RenderComponent, *components.PositionComponent](s.entityManager)
	items := make([]renderItem, 0, len(ids))
	for _, id := range ids {
		render, _ := ecs.GetComponent[*components.RenderComponent](s.entityManager, id)
		if render.Hidden {
			continue
		}
		item := renderItem{id: id, layer: render.Layer}
		if depth, ok := ecs.GetComponent[*components.DepthComponent](s.entityManager, id); ok {
			item.depth = depth.Depth
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		if items[i].depth != items[j].depth {
			return items[i].depth > items[j].depth
		}
		return items[i].id < items[j].id
	})

	order := make([]ecs.EntityID, len(items))
	for i, item := range items {
		order[i] = item.id
	}
	return order
}

// Draw 按顺序绘制所有实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	camera := s.gameState.Camera()
	for _, id := range s.RenderOrder() {
		render, _ := ecs.GetComponent[*components.RenderComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		var p mgl64.Vec2
		if render.Canvas == components.CanvasCamera {
			p = utils.CameraToScreen(pos.Vec())
		} else {
			p = utils.WorldToScreen(pos.Vec(), camera)
		}
		s.drawShape(screen, id, render, p)
	}
}

// drawShape 在屏幕坐标 p 处绘制形状
func (s *RenderSystem) drawShape(screen *ebiten.Image, id ecs.EntityID, render *components.RenderComponent, p mgl64.Vec2) {
	clr := render.Palette.Color()
	x, y := float32(p.X()), float32(p.Y())

	switch render.Shape {
	case components.ShapeCircle:
		vector.DrawFilledCircle(screen, x, y, float32(render.Radius), clr, false)
	case components.ShapeRing:
		vector.StrokeCircle(screen, x, y, float32(render.Radius), 1, clr, false)
	case components.ShapeRect:
		// 位置为底边中点
		w, h := float32(render.Width), float32(render.Height)
		vector.DrawFilledRect(screen, x-w/2, y-h, w, h, clr, false)
	case components.ShapeCrosshair:
		style := config.DefaultCrosshairIndex
		if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id); ok {
			style = player.CrosshairIndex
		}
		drawCrosshair(screen, x, y, float32(render.Radius), style, render)
	}
}

// drawCrosshair 绘制三种准星样式之一
func drawCrosshair(screen *ebiten.Image, x, y, r float32, style int, render *components.RenderComponent) {
	clr := render.Palette.Color()
	switch style {
	case 0:
		vector.StrokeLine(screen, x-r, y, x+r, y, 1, clr, false)
		vector.StrokeLine(screen, x, y-r, x, y+r, 1, clr, false)
	case 2:
		vector.StrokeRect(screen, x-r, y-r, 2*r, 2*r, 1, clr, false)
		vector.DrawFilledRect(screen, x-0.5, y-0.5, 1, 1, clr, false)
	default:
		vector.StrokeCircle(screen, x, y, r, 1, clr, false)
		vector.StrokeLine(screen, x-r-2, y, x-r/2, y, 1, clr, false)
		vector.StrokeLine(screen, x+r/2, y, x+r+2, y, 1, clr, false)
		vector.StrokeLine(screen, x, y-r-2, x, y-r/2, 1, clr, false)
		vector.StrokeLine(screen, x, y+r/2, x, y+r+2, 1, clr, false)
	}
}

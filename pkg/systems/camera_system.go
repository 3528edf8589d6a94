package systems

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/entities"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// CameraSystem 管理摄像机实体的移动
// 移动本身由 LinearMovementSystem 推进，这里负责发起、停止和同步到 GameState
type CameraSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cameraEntity  ecs.EntityID // 镜头实体ID
}

// NewCameraSystem 创建镜头控制系统，并在 GameState 当前摄像机位置创建镜头实体
func NewCameraSystem(em *ecs.EntityManager, gs *game.GameState) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		gameState:     gs,
	}

	id, err := entities.NewCamera(em, gs.Camera())
	if err != nil {
		log.Printf("[CameraSystem] Failed to create camera: %v", err)
	}
	cs.cameraEntity = id
	return cs
}

// Entity 返回镜头实体 ID
func (cs *CameraSystem) Entity() ecs.EntityID {
	return cs.cameraEntity
}

// Position 返回镜头当前的世界坐标
func (cs *CameraSystem) Position() mgl64.Vec2 {
	pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return cs.gameState.Camera()
	}
	return pos.Vec()
}

// Reset 停止移动并把镜头放到指定位置
func (cs *CameraSystem) Reset(pos mgl64.Vec2) {
	cs.Stop()
	if p, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, cs.cameraEntity); ok {
		p.SetVec(pos)
	}
	if cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity); ok {
		cam.Target = pos
	}
	cs.gameState.SetCamera(pos)
}

// MoveTo 让镜头匀速移向目标
// 速度方向为 normalize(target - 当前位置)，没有位移的轴立即视为到达
//
// 参数：
//   - target: 目标世界坐标
//   - speed: 移动速度（像素/秒）
func (cs *CameraSystem) MoveTo(target mgl64.Vec2, speed float64) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	velocity := utils.NormalizeOrZero(target.Sub(cs.Position())).Mul(speed)
	movement := components.NewLinearMovementTo(target, velocity)
	movement.ReachedX = velocity.X() == 0
	movement.ReachedY = velocity.Y() == 0
	ecs.AddComponent(cs.entityManager, cs.cameraEntity, movement)

	cam.Target = target
	cam.IsMoving = !movement.Reached()
}

// Stop 清除镜头的移动
func (cs *CameraSystem) Stop() {
	ecs.RemoveComponent[*components.LinearMovementComponent](cs.entityManager, cs.cameraEntity)
	if cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity); ok {
		cam.IsMoving = false
	}
}

// IsReached 镜头没有移动或两个轴都已到达目标
func (cs *CameraSystem) IsReached() bool {
	movement, ok := ecs.GetComponent[*components.LinearMovementComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return true
	}
	return movement.Reached()
}

// IsMoving 返回镜头是否正在移动
func (cs *CameraSystem) IsMoving() bool {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return ok && cam.IsMoving
}

// ViewContains 判断世界坐标是否在 HUD 上方的可视区域内
func (cs *CameraSystem) ViewContains(world mgl64.Vec2) bool {
	camera := cs.gameState.Camera()
	bottomLeft := camera.Add(config.HUDOffset())
	topRight := camera.Add(mgl64.Vec2{config.ScreenWidth, config.ScreenHeight})
	return config.IsInsideArea(world, bottomLeft, topRight)
}

// Update 同步镜头位置到 GameState，到达目标后结束移动状态
func (cs *CameraSystem) Update(deltaTime float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	cs.gameState.SetCamera(pos.Vec())

	if cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity); ok && cam.IsMoving && cs.IsReached() {
		cam.IsMoving = false
	}
}

package entities

import (
	"fmt"

	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

// letterboxSpeed 黑边展开速度（进度/秒）
const letterboxSpeed = 3.0

// NewCutscene 创建过场动画实体，附带逐渐展开的上下黑边
//
// 参数：
//
//	em - 实体管理器
//	cinematic - 过场动画内容，至少包含一帧
//
// 返回：
//
//	ecs.EntityID - 过场实体 ID
//	error - 参数非法时返回错误
func NewCutscene(em *ecs.EntityManager, cinematic *config.CinematicConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cinematic == nil || len(cinematic.Frames) == 0 {
		return 0, fmt.Errorf("cinematic needs at least one frame")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CutsceneComponent{Cinematic: cinematic})
	ecs.AddComponent(em, id, &components.LetterboxComponent{
		Target: 1,
		Speed:  letterboxSpeed,
	})
	return id, nil
}

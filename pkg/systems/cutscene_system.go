package systems

import (
	"log"

	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/entities"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// CutsceneSystem 播放过场动画：逐帧显示字幕，上下黑边展开，Start 键跳过
type CutsceneSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cutscene      ecs.EntityID
}

// NewCutsceneSystem 创建过场动画系统
func NewCutsceneSystem(em *ecs.EntityManager, gs *game.GameState) *CutsceneSystem {
	return &CutsceneSystem{entityManager: em, gameState: gs}
}

// Start 开始播放过场动画，已有的过场会被替换
func (s *CutsceneSystem) Start(cinematic *config.CinematicConfig) error {
	s.Clear()
	id, err := entities.NewCutscene(s.entityManager, cinematic)
	if err != nil {
		return err
	}
	s.cutscene = id
	if cinematic.Music != "" {
		s.gameState.PlayMusic(cinematic.Music)
	}
	log.Printf("[CutsceneSystem] 开始过场 %q（%d 帧，%.1f 秒）", cinematic.Name, len(cinematic.Frames), cinematic.TotalDuration())
	return nil
}

// component 返回当前过场组件
func (s *CutsceneSystem) component() (*components.CutsceneComponent, bool) {
	if s.cutscene == ecs.InvalidEntity {
		return nil, false
	}
	return ecs.GetComponent[*components.CutsceneComponent](s.entityManager, s.cutscene)
}

// IsActive 是否有正在播放的过场
func (s *CutsceneSystem) IsActive() bool {
	c, ok := s.component()
	return ok && !c.Finished
}

// IsFinished 过场是否已播放完或被跳过
func (s *CutsceneSystem) IsFinished() bool {
	c, ok := s.component()
	return !ok || c.Finished
}

// Skip 立即结束当前过场
func (s *CutsceneSystem) Skip() {
	if c, ok := s.component(); ok && !c.Finished {
		c.Finished = true
		log.Printf("[CutsceneSystem] 跳过过场")
	}
}

// Clear 移除过场实体
func (s *CutsceneSystem) Clear() {
	if s.cutscene != ecs.InvalidEntity {
		s.entityManager.DestroyEntity(s.cutscene)
		s.cutscene = ecs.InvalidEntity
	}
}

// Update 推进帧计时和黑边动画
func (s *CutsceneSystem) Update(deltaTime float64) {
	c, ok := s.component()
	if !ok {
		return
	}

	if !c.Finished {
		c.FrameElapsed += deltaTime
		for c.FrameIndex < len(c.Cinematic.Frames) && c.FrameElapsed >= c.Cinematic.Frames[c.FrameIndex].Duration {
			c.FrameElapsed -= c.Cinematic.Frames[c.FrameIndex].Duration
			c.FrameIndex++
		}
		if c.FrameIndex >= len(c.Cinematic.Frames) {
			c.Finished = true
		}
	}

	if letterbox, ok := ecs.GetComponent[*components.LetterboxComponent](s.entityManager, s.cutscene); ok {
		if c.Finished {
			letterbox.Target = 0
		}
		letterbox.Progress = utils.Approach(letterbox.Progress, letterbox.Target, letterbox.Speed*deltaTime)
	}
}

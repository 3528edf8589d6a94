package systems

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/entities"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

// StageSpawnSystem 按关卡时间依次生成步骤中的实体
//
// 每个生成项的 Elapsed 是相对上一个生成项的延迟，延迟为 0 的生成项在同一帧生成。
// 生成坐标相对于生成时刻的摄像机位置
type StageSpawnSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	stats         *config.EnemyStatsConfig

	queue     []config.StageSpawn
	sinceLast float64 // 距离上一次生成经过的关卡时间
}

// NewStageSpawnSystem 创建生成系统
func NewStageSpawnSystem(em *ecs.EntityManager, gs *game.GameState, stats *config.EnemyStatsConfig) *StageSpawnSystem {
	return &StageSpawnSystem{
		entityManager: em,
		gameState:     gs,
		stats:         stats,
	}
}

// Queue 用新步骤的生成项替换等待队列
func (s *StageSpawnSystem) Queue(spawns []config.StageSpawn) {
	if len(s.queue) > 0 {
		log.Printf("[StageSpawnSystem] 丢弃 %d 个未生成的生成项", len(s.queue))
	}
	s.queue = append(s.queue[:0:0], spawns...)
	s.sinceLast = 0
}

// SpawnImmediate 立即在绝对世界坐标生成全部生成项（关卡开始时使用）
func (s *StageSpawnSystem) SpawnImmediate(spawns []config.StageSpawn) int {
	count := 0
	for i := range spawns {
		if s.spawn(&spawns[i], spawns[i].Coordinates) {
			count++
		}
	}
	return count
}

// Update 推进计时并生成到期的生成项
//
// 参数：
//   - deltaTime: 关卡时间增量（秒）
func (s *StageSpawnSystem) Update(deltaTime float64) {
	if len(s.queue) == 0 {
		return
	}
	s.sinceLast += deltaTime

	camera := s.gameState.Camera()
	for len(s.queue) > 0 && s.sinceLast >= s.queue[0].Elapsed {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.sinceLast -= next.Elapsed
		s.spawn(&next, next.Coordinates.Add(camera))
	}
	if len(s.queue) == 0 {
		s.sinceLast = 0
	}
}

// spawn 创建单个实体，失败时记录日志并跳过
func (s *StageSpawnSystem) spawn(spawn *config.StageSpawn, world mgl64.Vec2) bool {
	if _, err := entities.SpawnFromStage(s.entityManager, s.stats, spawn, world); err != nil {
		log.Printf("[StageSpawnSystem] Failed to spawn %s: %v", spawn.Kind, err)
		return false
	}
	return true
}

// Pending 返回等待生成的数量
func (s *StageSpawnSystem) Pending() int {
	return len(s.queue)
}

// PendingEnemies 返回等待生成的敌人数量
func (s *StageSpawnSystem) PendingEnemies() int {
	count := 0
	for i := range s.queue {
		if s.queue[i].Kind == config.SpawnEnemy {
			count++
		}
	}
	return count
}

// PendingBosses 返回等待生成的 Boss 数量
func (s *StageSpawnSystem) PendingBosses() int {
	count := 0
	for i := range s.queue {
		if s.queue[i].Kind == config.SpawnEnemy && s.isBoss(s.queue[i].EnemyType) {
			count++
		}
	}
	return count
}

func (s *StageSpawnSystem) isBoss(t config.EnemyType) bool {
	if s.stats == nil {
		return false
	}
	stats, ok := s.stats.GetEnemyStats(t)
	return ok && stats.Boss
}

// Clear 清空等待队列
func (s *StageSpawnSystem) Clear() {
	s.queue = nil
	s.sinceLast = 0
}

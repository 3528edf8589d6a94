package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

func objectSpawn(elapsed float64, coords mgl64.Vec2) config.StageSpawn {
	return config.StageSpawn{Kind: config.SpawnObject, ObjectType: config.ObjectBenchSmall, Elapsed: elapsed, Coordinates: coords}
}

func countObjects(em *ecs.EntityManager) int {
	return ecs.CountEntitiesWith1[*components.ObjectComponent](em)
}

func TestStageSpawnSystem_CumulativeDelays(t *testing.T) {
	em := ecs.NewEntityManager()
	gs := newTestGameState()
	sys := NewStageSpawnSystem(em, gs, newTestStats())

	sys.Queue([]config.StageSpawn{
		objectSpawn(0.5, mgl64.Vec2{}),
		objectSpawn(0.5, mgl64.Vec2{}),
		objectSpawn(0, mgl64.Vec2{}),
	})

	steps := []struct {
		name    string
		dt      float64
		want    int
		pending int
	}{
		{"延迟未到", 0.4, 0, 3},
		{"第一个到期", 0.2, 1, 2},
		{"延迟从上一个生成开始计算", 0.3, 1, 2},
		{"零延迟的生成项同帧生成", 0.2, 3, 0},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			sys.Update(step.dt)
			if got := countObjects(em); got != step.want {
				t.Errorf("objects = %d, want %d", got, step.want)
			}
			if got := sys.Pending(); got != step.pending {
				t.Errorf("pending = %d, want %d", got, step.pending)
			}
		})
	}
}

func TestStageSpawnSystem_CameraRelative(t *testing.T) {
	em := ecs.NewEntityManager()
	gs := newTestGameState()
	sys := NewStageSpawnSystem(em, gs, newTestStats())

	gs.SetCamera(mgl64.Vec2{100, 0})
	sys.Queue([]config.StageSpawn{objectSpawn(0, mgl64.Vec2{10, 20})})
	sys.Update(config.FixedDeltaTime)

	ids := ecs.GetEntitiesWith1[*components.ObjectComponent](em)
	if len(ids) != 1 {
		t.Fatalf("objects = %d, want 1", len(ids))
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, ids[0])
	if pos.Vec() != (mgl64.Vec2{110, 20}) {
		t.Errorf("position = %v, want camera-relative (110, 20)", pos.Vec())
	}
}

func TestStageSpawnSystem_QueueReplacesPending(t *testing.T) {
	em := ecs.NewEntityManager()
	gs := newTestGameState()
	sys := NewStageSpawnSystem(em, gs, newTestStats())

	sys.Queue([]config.StageSpawn{
		enemySpawn(config.EnemyKyle, 1, mgl64.Vec2{}),
		enemySpawn(config.EnemySpidomonsta, 1, mgl64.Vec2{}),
		objectSpawn(1, mgl64.Vec2{}),
	})
	if sys.Pending() != 3 || sys.PendingEnemies() != 2 || sys.PendingBosses() != 1 {
		t.Fatalf("pending = %d/%d/%d, want 3/2/1", sys.Pending(), sys.PendingEnemies(), sys.PendingBosses())
	}

	sys.Update(0.9)
	sys.Queue([]config.StageSpawn{objectSpawn(0.5, mgl64.Vec2{})})
	if sys.Pending() != 1 || sys.PendingEnemies() != 0 {
		t.Errorf("queue should be replaced, pending = %d", sys.Pending())
	}

	// 计时随新队列重置
	sys.Update(0.4)
	if countObjects(em) != 0 {
		t.Error("timer should restart with the new queue")
	}

	sys.Clear()
	if sys.Pending() != 0 {
		t.Error("Clear should empty the queue")
	}
}

func TestStageSpawnSystem_SpawnImmediate(t *testing.T) {
	em := ecs.NewEntityManager()
	gs := newTestGameState()
	sys := NewStageSpawnSystem(em, gs, newTestStats())
	gs.SetCamera(mgl64.Vec2{500, 0})

	count := sys.SpawnImmediate([]config.StageSpawn{
		objectSpawn(3, mgl64.Vec2{10, 20}),
		enemySpawn(config.EnemyKyle, 0, mgl64.Vec2{40, 60}),
		enemySpawn(config.EnemyMarauder, 0, mgl64.Vec2{40, 60}),
	})

	if count != 2 {
		t.Errorf("spawned %d, want 2 (marauder has no stats)", count)
	}
	ids := ecs.GetEntitiesWith1[*components.ObjectComponent](em)
	if len(ids) != 1 {
		t.Fatalf("objects = %d, want 1", len(ids))
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, ids[0])
	if pos.Vec() != (mgl64.Vec2{10, 20}) {
		t.Errorf("position = %v, want absolute (10, 20)", pos.Vec())
	}
	if sys.Pending() != 0 {
		t.Error("immediate spawns must not be queued")
	}
}

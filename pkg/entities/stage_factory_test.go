package entities

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
)

func TestSpawnFromStage(t *testing.T) {
	stats := newTestStats()

	tests := []struct {
		name    string
		spawn   config.StageSpawn
		check   func(em *ecs.EntityManager, id ecs.EntityID) bool
		wantErr bool
	}{
		{
			name:  "装饰物",
			spawn: config.StageSpawn{Kind: config.SpawnObject, ObjectType: config.ObjectFibertree},
			check: func(em *ecs.EntityManager, id ecs.EntityID) bool {
				return ecs.HasComponent[*components.ObjectComponent](em, id) &&
					!ecs.HasComponent[*components.HittableComponent](em, id)
			},
		},
		{
			name:  "可破坏物",
			spawn: config.StageSpawn{Kind: config.SpawnDestructible, DestructibleType: config.DestructibleLamp},
			check: func(em *ecs.EntityManager, id ecs.EntityID) bool {
				return ecs.HasComponent[*components.DestructibleComponent](em, id) &&
					ecs.HasComponent[*components.HittableComponent](em, id)
			},
		},
		{
			name:  "拾取物",
			spawn: config.StageSpawn{Kind: config.SpawnPickup, PickupType: config.PickupBigHealthpack},
			check: func(em *ecs.EntityManager, id ecs.EntityID) bool {
				pickup, ok := ecs.GetComponent[*components.PickupComponent](em, id)
				return ok && pickup.Heal == config.BigHealthpackHeal
			},
		},
		{
			name:  "敌人",
			spawn: config.StageSpawn{Kind: config.SpawnEnemy, EnemyType: config.EnemyTardigrade},
			check: func(em *ecs.EntityManager, id ecs.EntityID) bool {
				return ecs.HasComponent[*components.EnemyComponent](em, id)
			},
		},
		{
			name:    "缺少属性的敌人类型",
			spawn:   config.StageSpawn{Kind: config.SpawnEnemy, EnemyType: config.EnemyKyle},
			wantErr: true,
		},
		{
			name:    "未知生成类型",
			spawn:   config.StageSpawn{Kind: "ghost"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			id, err := SpawnFromStage(em, stats, &tt.spawn, mgl64.Vec2{10, 20})
			if (err != nil) != tt.wantErr {
				t.Fatalf("SpawnFromStage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !tt.check(em, id) {
				t.Errorf("entity %d does not have the expected components", id)
			}
			pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
			if !ok || pos.X != 10 || pos.Y != 20 {
				t.Errorf("position = %+v, want (10, 20)", pos)
			}
			if !ecs.HasComponent[*components.StageEntityComponent](em, id) {
				t.Error("stage spawns must be tagged as stage entities")
			}
		})
	}
}

func TestNewDestructible_Overrides(t *testing.T) {
	em := ecs.NewEntityManager()
	stats := newTestStats().GetDestructibleStats(config.DestructibleLamp)
	spawn := &config.StageSpawn{
		Kind: config.SpawnDestructible, DestructibleType: config.DestructibleLamp,
		Health: 99, Depth: 1,
		Contains: &config.ContainerSpawn{Pickup: &config.StageSpawn{Kind: config.SpawnPickup, PickupType: config.PickupSmallHealthpack}},
	}

	id, err := NewDestructible(em, stats, spawn, mgl64.Vec2{})
	if err != nil {
		t.Fatalf("NewDestructible() error = %v", err)
	}

	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	if health.CurrentHealth != 99 {
		t.Errorf("health = %d, want 99", health.CurrentHealth)
	}
	collision, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
	if collision.Shape != components.CollisionBox || collision.OffsetY != collision.Height/2 {
		t.Errorf("collision = %+v, want a box lifted by half its height", collision)
	}
	if !ecs.HasComponent[*components.SpawnDropComponent](em, id) {
		t.Error("destructible should keep its drop")
	}
}

func TestGetDestructibleStats_Fallback(t *testing.T) {
	stats := newTestStats().GetDestructibleStats(config.DestructibleCrystal)
	if stats.Health <= 0 || stats.Width <= 0 || stats.Height <= 0 {
		t.Errorf("fallback stats = %+v, want positive values", stats)
	}
}

func TestNewObject_UnknownType(t *testing.T) {
	em := ecs.NewEntityManager()
	if _, err := NewObject(em, &config.StageSpawn{Kind: config.SpawnObject, ObjectType: "rock"}, mgl64.Vec2{}); err == nil {
		t.Error("expected error for unknown object type")
	}
}

func TestNewPickup_Heal(t *testing.T) {
	tests := []struct {
		name       string
		pickupType config.PickupType
		want       int
	}{
		{"小血包", config.PickupSmallHealthpack, config.SmallHealthpackHeal},
		{"大血包", config.PickupBigHealthpack, config.BigHealthpackHeal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			id, err := NewPickup(em, &config.StageSpawn{Kind: config.SpawnPickup, PickupType: tt.pickupType}, mgl64.Vec2{})
			if err != nil {
				t.Fatalf("NewPickup() error = %v", err)
			}
			pickup, _ := ecs.GetComponent[*components.PickupComponent](em, id)
			if pickup.Heal != tt.want {
				t.Errorf("heal = %d, want %d", pickup.Heal, tt.want)
			}
		})
	}
}

func TestNewDeathEffect(t *testing.T) {
	em := ecs.NewEntityManager()
	id, err := NewDeathEffect(em, mgl64.Vec2{3, 4}, 2, 6)
	if err != nil {
		t.Fatalf("NewDeathEffect() error = %v", err)
	}
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok || lifetime.MaxLifetime != DeathEffectDuration {
		t.Errorf("lifetime = %+v, want %v", lifetime, DeathEffectDuration)
	}
	if !ecs.HasComponent[*components.DeathEffectComponent](em, id) {
		t.Error("missing DeathEffectComponent")
	}
}

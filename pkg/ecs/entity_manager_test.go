package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testHealthComponent struct {
	Current int
}

type testTagComponent struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 == InvalidEntity {
		t.Error("First entity ID must not be the invalid ID")
	}
	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{X: 100, Y: 20})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	pos := comp.(*testPositionComponent)
	if pos.X != 100 || pos.Y != 20 {
		t.Errorf("Component data mismatch, got (%f, %f)", pos.X, pos.Y)
	}

	// 同类型组件替换
	em.AddComponent(id, &testPositionComponent{X: 1})
	comp, _ = em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if comp.(*testPositionComponent).X != 1 {
		t.Error("AddComponent should replace a component of the same type")
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(EntityID(42), &testTagComponent{})
	if em.HasComponent(EntityID(42), reflect.TypeOf(&testTagComponent{})) {
		t.Error("Unknown entity must not receive components")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsPendingDestroy(id) {
		t.Error("Entity should be marked for destruction")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsPendingDestroy(id) {
		t.Error("Pending mark should be cleared after cleanup")
	}
}

func TestGetEntitiesWithIsOrdered(t *testing.T) {
	em := NewEntityManager()
	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testTagComponent{})
		ids = append(ids, id)
	}

	got := em.GetEntitiesWith(reflect.TypeOf(&testTagComponent{}))
	if len(got) != len(ids) {
		t.Fatalf("Expected %d entities, got %d", len(ids), len(got))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("Entities should be returned in creation order, index %d: got %d want %d", i, got[i], ids[i])
		}
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()

	both := em.CreateEntity()
	AddComponent(em, both, &testPositionComponent{X: 5})
	AddComponent(em, both, &testHealthComponent{Current: 3})

	onlyPos := em.CreateEntity()
	AddComponent(em, onlyPos, &testPositionComponent{})

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"一种组件", len(GetEntitiesWith1[*testPositionComponent](em)), 2},
		{"两种组件", len(GetEntitiesWith2[*testPositionComponent, *testHealthComponent](em)), 1},
		{"三种组件", len(GetEntitiesWith3[*testPositionComponent, *testHealthComponent, *testTagComponent](em)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}

	pos, ok := GetComponent[*testPositionComponent](em, both)
	if !ok || pos.X != 5 {
		t.Errorf("GetComponent returned %+v, %v", pos, ok)
	}

	RemoveComponent[*testHealthComponent](em, both)
	if HasComponent[*testHealthComponent](em, both) {
		t.Error("Health component should be removed")
	}

	em.DestroyEntity(onlyPos)
	if n := CountEntitiesWith1[*testPositionComponent](em); n != 1 {
		t.Errorf("Count should skip entities pending destruction, got %d", n)
	}
}

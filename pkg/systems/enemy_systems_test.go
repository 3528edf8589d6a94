package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/entities"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

// enemyWorld 只包含敌人相关系统的测试环境
type enemyWorld struct {
	em       *ecs.EntityManager
	gs       *game.GameState
	camera   *CameraSystem
	behavior *EnemyBehaviorSystem
	movement *LinearMovementSystem
	circle   *CircleAroundSystem
	depth    *DepthSystem
	attack   *EnemyAttackSystem
}

func newEnemyWorld(floorHeight func(int) float64) *enemyWorld {
	em := ecs.NewEntityManager()
	gs := newTestGameState()
	w := &enemyWorld{em: em, gs: gs}
	w.camera = NewCameraSystem(em, gs)
	w.behavior = NewEnemyBehaviorSystem(em, gs, floorHeight)
	w.movement = NewLinearMovementSystem(em)
	w.circle = NewCircleAroundSystem(em, gs)
	w.depth = NewDepthSystem(em)
	w.attack = NewEnemyAttackSystem(em, gs, w.camera, rand.New(rand.NewSource(1)))
	return w
}

func (w *enemyWorld) spawn(t *testing.T, enemyType config.EnemyType, pos mgl64.Vec2, steps ...config.EnemyStep) ecs.EntityID {
	t.Helper()
	stats, ok := newTestStats().GetEnemyStats(enemyType)
	if !ok {
		t.Fatalf("no stats for %s", enemyType)
	}
	spawn := enemySpawn(enemyType, 0, pos)
	spawn.Steps = steps
	spawn.Radius = 10
	id, err := entities.NewEnemy(w.em, stats, &spawn, pos)
	if err != nil {
		t.Fatalf("NewEnemy failed: %v", err)
	}
	return id
}

func (w *enemyWorld) tick(dt float64) {
	w.gs.AdvanceStageTime(dt)
	w.behavior.Update(dt)
	w.movement.Update(dt)
	w.circle.Update(dt)
	w.depth.Update(dt)
	w.camera.Update(dt)
	w.attack.Update(dt)
	w.em.RemoveMarkedEntities()
}

func (w *enemyWorld) run(seconds float64) {
	for t := 0.0; t < seconds; t += config.FixedDeltaTime {
		w.tick(config.FixedDeltaTime)
	}
}

func (w *enemyWorld) position(id ecs.EntityID) mgl64.Vec2 {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	return pos.Vec()
}

func (w *enemyWorld) currentKind(id ecs.EntityID) config.EnemyStepKind {
	current, ok := ecs.GetComponent[*components.EnemyCurrentBehaviorComponent](w.em, id)
	if !ok {
		return ""
	}
	return current.Step.Kind
}

func TestEnemyBehavior_LinearMovement(t *testing.T) {
	w := newEnemyWorld(nil)
	id := w.spawn(t, config.EnemyKyle, mgl64.Vec2{50, 50},
		config.EnemyStep{Kind: config.EnemyStepLinearMovement, Coordinates: mgl64.Vec2{10, 0}, Speed: 10},
		config.EnemyStep{Kind: config.EnemyStepIdle, Duration: 10},
	)

	w.run(0.5)
	if w.currentKind(id) != config.EnemyStepLinearMovement {
		t.Fatalf("current step = %q, want linear_movement", w.currentKind(id))
	}
	if x := w.position(id).X(); x < 54 || x > 56 {
		t.Errorf("x after 0.5s = %v, want about 55", x)
	}

	w.run(0.7)
	if got := w.position(id); got != (mgl64.Vec2{60, 50}) {
		t.Errorf("position = %v, want (60, 50)", got)
	}
	if w.currentKind(id) != config.EnemyStepIdle {
		t.Errorf("current step = %q, want idle after reaching", w.currentKind(id))
	}
	if ecs.HasComponent[*components.LinearMovementComponent](w.em, id) {
		t.Error("linear movement should be removed after the step")
	}
}

func TestEnemyBehavior_Cycle(t *testing.T) {
	w := newEnemyWorld(nil)
	id := w.spawn(t, config.EnemyKyle, mgl64.Vec2{50, 50},
		config.EnemyStep{Kind: config.EnemyStepIdle, Duration: 0.5},
		config.EnemyStep{Kind: config.EnemyStepAttack, Duration: 0.5},
	)

	tests := []struct {
		name    string
		seconds float64
		want    config.EnemyStepKind
	}{
		{"第一步", 0.2, config.EnemyStepIdle},
		{"第二步", 0.5, config.EnemyStepAttack},
		{"回到第一步", 0.5, config.EnemyStepIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.run(tt.seconds)
			if got := w.currentKind(id); got != tt.want {
				t.Errorf("current step = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnemyBehavior_EndlessCircle(t *testing.T) {
	w := newEnemyWorld(nil)
	start := mgl64.Vec2{80, 80}
	id := w.spawn(t, config.EnemyKyle, start)

	w.tick(config.FixedDeltaTime)
	if got := w.position(id); !got.ApproxEqualThreshold(start, 1e-9) {
		t.Fatalf("circle should start at the spawn position, got %v", got)
	}
	circle, ok := ecs.GetComponent[*components.CircleAroundComponent](w.em, id)
	if !ok {
		t.Fatal("enemy without steps should circle")
	}
	center := circle.Center
	current, _ := ecs.GetComponent[*components.EnemyCurrentBehaviorComponent](w.em, id)
	started := current.Started

	w.run(5)
	if d := w.position(id).Sub(center).Len(); math.Abs(d-10) > 1e-6 {
		t.Errorf("distance from center = %v, want radius 10", d)
	}
	current, _ = ecs.GetComponent[*components.EnemyCurrentBehaviorComponent](w.em, id)
	if current.Started != started {
		t.Error("endless circle should never be replaced")
	}
}

func TestEnemyBehavior_Jump(t *testing.T) {
	tests := []struct {
		name        string
		floorHeight func(int) float64
		want        mgl64.Vec2
	}{
		{"平地跳跃", nil, mgl64.Vec2{70, 50}},
		{"落在更高的地面上", func(int) float64 { return 80 }, mgl64.Vec2{70, 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEnemyWorld(tt.floorHeight)
			id := w.spawn(t, config.EnemyKyle, mgl64.Vec2{50, 50},
				config.EnemyStep{Kind: config.EnemyStepJump, Coordinates: mgl64.Vec2{20, 0}, Speed: 10},
				config.EnemyStep{Kind: config.EnemyStepIdle, Duration: 10},
			)

			w.run(1)
			if y := w.position(id).Y(); y <= 50 {
				t.Errorf("enemy should be airborne mid-jump, y = %v", y)
			}

			w.run(3)
			if got := w.position(id); !got.ApproxEqualThreshold(tt.want, 1e-9) {
				t.Errorf("landing = %v, want %v", got, tt.want)
			}
			if w.currentKind(id) != config.EnemyStepIdle {
				t.Errorf("current step = %q, want idle after landing", w.currentKind(id))
			}
		})
	}
}

func TestJumpSolution(t *testing.T) {
	tests := []struct {
		name         string
		delta        mgl64.Vec2
		speed        float64
		wantDuration float64
	}{
		{"按距离计算时长", mgl64.Vec2{30, 40}, 10, 5},
		{"短距离使用最短时长", mgl64.Vec2{1, 0}, 10, MinJumpDuration},
		{"速度为零", mgl64.Vec2{30, 40}, 0, MinJumpDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			duration, velocity := jumpSolution(tt.delta, tt.speed)
			if duration != tt.wantDuration {
				t.Fatalf("duration = %v, want %v", duration, tt.wantDuration)
			}
			// 在 JumpGravity 下经过 duration 后正好抵达
			end := velocity.Mul(duration).Add(mgl64.Vec2{0, 0.5 * JumpGravity * duration * duration})
			if !end.ApproxEqualThreshold(tt.delta, 1e-9) {
				t.Errorf("landing offset = %v, want %v", end, tt.delta)
			}
		})
	}
}

func countAttacks(em *ecs.EntityManager) int {
	return ecs.CountEntitiesWith1[*components.EnemyAttackComponent](em)
}

func TestEnemyAttack_Firing(t *testing.T) {
	tests := []struct {
		name    string
		enemy   config.EnemyType
		steps   []config.EnemyStep
		seconds float64
		want    int
	}{
		{
			name:    "attack 步骤开始时出手一次",
			enemy:   config.EnemyMosquito,
			steps:   []config.EnemyStep{{Kind: config.EnemyStepAttack, Duration: 5}},
			seconds: 1,
			want:    1,
		},
		{
			name:    "idle 期间按冷却出手",
			enemy:   config.EnemyMosquito,
			steps:   []config.EnemyStep{{Kind: config.EnemyStepIdle, Duration: 20}},
			seconds: 3.5,
			want:    2,
		},
		{
			name:    "没有攻击类型的敌人不出手",
			enemy:   config.EnemyKyle,
			steps:   []config.EnemyStep{{Kind: config.EnemyStepAttack, Duration: 5}},
			seconds: 1,
			want:    0,
		},
		{
			name:    "移动中未标记攻击时不出手",
			enemy:   config.EnemyMosquito,
			steps:   []config.EnemyStep{{Kind: config.EnemyStepLinearMovement, Coordinates: mgl64.Vec2{100, 0}, Speed: 1}},
			seconds: 1,
			want:    0,
		},
		{
			name:  "移动中标记攻击时出手",
			enemy: config.EnemyMosquito,
			steps: []config.EnemyStep{{
				Kind: config.EnemyStepLinearMovement, Coordinates: mgl64.Vec2{100, 0}, Speed: 1, Attacking: true,
			}},
			seconds: 1,
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEnemyWorld(nil)
			w.spawn(t, tt.enemy, mgl64.Vec2{80, 80}, tt.steps...)
			fired := 0
			for elapsed := 0.0; elapsed < tt.seconds; elapsed += config.FixedDeltaTime {
				before := countAttacks(w.em)
				w.gs.AdvanceStageTime(config.FixedDeltaTime)
				w.behavior.Update(config.FixedDeltaTime)
				w.attack.fire()
				fired += countAttacks(w.em) - before
			}
			if fired != tt.want {
				t.Errorf("fired %d attacks, want %d", fired, tt.want)
			}
		})
	}
}

func TestEnemyAttack_Resolve(t *testing.T) {
	blood := newTestStats().Enemies[config.EnemyMosquito].Attack

	tests := []struct {
		name       string
		origin     mgl64.Vec2
		target     mgl64.Vec2
		wantHealth int
	}{
		{"命中可视区域内的玩家", mgl64.Vec2{80, 80}, mgl64.Vec2{80, 86}, 100 - blood.Damage},
		{"画面外落空", mgl64.Vec2{500, 80}, mgl64.Vec2{500, 80}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEnemyWorld(nil)
			player, err := entities.NewPlayer(w.em, 0)
			if err != nil {
				t.Fatal(err)
			}
			id, err := entities.NewEnemyAttack(w.em, blood, tt.origin, 1, tt.target)
			if err != nil {
				t.Fatal(err)
			}

			w.run(1)

			if w.em.Exists(id) {
				t.Error("attack should be destroyed after reaching the player depth")
			}
			health, _ := ecs.GetComponent[*components.HealthComponent](w.em, player)
			if health.CurrentHealth != tt.wantHealth {
				t.Errorf("player health = %d, want %d", health.CurrentHealth, tt.wantHealth)
			}
			flashing := ecs.HasComponent[*components.FlashEffectComponent](w.em, player)
			if flashing != (tt.wantHealth < 100) {
				t.Errorf("player flash = %v", flashing)
			}
		})
	}
}

func TestEnemyAttack_BoulderSpread(t *testing.T) {
	w := newEnemyWorld(nil)
	w.spawn(t, config.EnemyTardigrade, mgl64.Vec2{80, 80}, config.EnemyStep{Kind: config.EnemyStepAttack, Duration: 5})

	w.tick(config.FixedDeltaTime)

	ids := ecs.GetEntitiesWith1[*components.EnemyAttackComponent](w.em)
	if len(ids) != 1 {
		t.Fatalf("attacks = %d, want 1", len(ids))
	}
	attack, _ := ecs.GetComponent[*components.EnemyAttackComponent](w.em, ids[0])
	if attack.Kind != config.AttackBoulder {
		t.Errorf("kind = %q, want boulder", attack.Kind)
	}
	depth, _ := ecs.GetComponent[*components.DepthMovementComponent](w.em, ids[0])
	if depth.Target != config.PlayerDepth+1 {
		t.Errorf("boulder target depth = %d, want %d", depth.Target, config.PlayerDepth+1)
	}
	movement, _ := ecs.GetComponent[*components.LinearMovementComponent](w.em, ids[0])
	if movement.Acceleration.Y() >= 0 {
		t.Error("boulder should fall under gravity")
	}
}

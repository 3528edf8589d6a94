package systems

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/marcotoniut/carcenisation/internal/audio"
	"github.com/marcotoniut/carcenisation/pkg/components"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/ecs"
	"github.com/marcotoniut/carcenisation/pkg/entities"
	"github.com/marcotoniut/carcenisation/pkg/game"
	"github.com/marcotoniut/carcenisation/pkg/utils"
)

// PlayerSystem 处理准星移动和开火
//
// 按键：
//   - 方向键：移动准星，限制在 HUD 上方的屏幕范围内
//   - A：钳击（近战，0.8 秒后坐）
//   - B：枪击（按住连射，0.08 秒后坐）
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	input         *utils.ActionState
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(em *ecs.EntityManager, gs *game.GameState, input *utils.ActionState) *PlayerSystem {
	return &PlayerSystem{
		entityManager: em,
		gameState:     gs,
		input:         input,
	}
}

// PlayerBounds 返回准星可活动范围（摄像机坐标）
func PlayerBounds() (mgl64.Vec2, mgl64.Vec2) {
	return mgl64.Vec2{0, config.HUDHeight}, mgl64.Vec2{config.ScreenWidth, config.ScreenHeight}
}

// Update 移动准星并处理开火
//
// 参数：
//   - deltaTime: 关卡时间增量（秒），暂停时为 0
func (s *PlayerSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}

	ids := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		direction := utils.NormalizeOrZero(s.input.Direction())
		lo, hi := PlayerBounds()
		pos.SetVec(utils.ClampVec(pos.Vec().Add(direction.Mul(config.PlayerSpeed*deltaTime)), lo, hi))

		player.PincerCooldown = max0(player.PincerCooldown - deltaTime)
		player.GunCooldown = max0(player.GunCooldown - deltaTime)

		world := s.gameState.Camera().Add(pos.Vec())
		if s.input.JustPressed(utils.ActionA) && player.PincerCooldown == 0 && !s.hasLiveAttack(components.WeaponPincer) {
			if s.attack(components.WeaponPincer, world) {
				player.PincerCooldown = config.PincerRecoil
				s.gameState.PlaySound(audio.SoundPincer)
			}
		}
		if s.input.Pressed(utils.ActionB) && player.GunCooldown == 0 && !s.hasLiveAttack(components.WeaponGun) {
			if s.attack(components.WeaponGun, world) {
				player.GunCooldown = config.GunRecoil
				s.gameState.PlaySound(audio.SoundGun)
			}
		}
	}
}

// attack 创建攻击判定实体
func (s *PlayerSystem) attack(weapon components.Weapon, world mgl64.Vec2) bool {
	if _, err := entities.NewPlayerAttack(s.entityManager, weapon, world); err != nil {
		log.Printf("[PlayerSystem] Failed to create %s attack: %v", weapon, err)
		return false
	}
	return true
}

// hasLiveAttack 同一武器同时只能有一个攻击判定
func (s *PlayerSystem) hasLiveAttack(weapon components.Weapon) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.PlayerAttackComponent](s.entityManager) {
		if s.entityManager.IsPendingDestroy(id) {
			continue
		}
		attack, _ := ecs.GetComponent[*components.PlayerAttackComponent](s.entityManager, id)
		if attack.Weapon == weapon {
			return true
		}
	}
	return false
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

package entities

import (
	"github.com/marcotoniut/carcenisation/pkg/config"
)

// newTestStats 返回测试用的敌人属性表
// 这是一个测试辅助函数，被多个测试文件共享使用
func newTestStats() *config.EnemyStatsConfig {
	return &config.EnemyStatsConfig{
		Enemies: map[config.EnemyType]config.EnemyStats{
			config.EnemyMosquito: {
				Health: 40, Radius: 7, KillScore: 100, Depth: 3, Palette: config.PaletteDarkest,
				Attack: config.AttackStats{
					Kind: config.AttackBlood, Cooldown: 3, Damage: 20, DepthSpeed: 1.5, Radius: 3, Health: 1,
				},
			},
			config.EnemyTardigrade: {
				Health: 100, Radius: 10, KillScore: 150, Depth: 4,
				Attack: config.AttackStats{
					Kind: config.AttackBoulder, Cooldown: 4, Damage: 30, DepthSpeed: 2, Radius: 4,
					Health: 10, Gravity: -60, Randomness: 12,
				},
			},
			config.EnemySpidomonsta: {
				Health: 600, Radius: 18, KillScore: 2000, Boss: true, Depth: 5,
			},
		},
		Destructibles: map[config.DestructibleType]config.DestructibleStats{
			config.DestructibleLamp: {Health: 30, Width: 6, Height: 28, Depth: 1},
		},
	}
}

package main

import (
	"fmt"

	"github.com/marcotoniut/carcenisation/pkg/config"
)

// stageReport 单个关卡文件的检查结果
type stageReport struct {
	Path     string
	Name     string
	Steps    int
	Spawns   int     // 包括初始生成、步骤生成和掉落
	Enemies  int     // 敌人生成项数量
	Bosses   int     // Boss 生成项数量
	MinTime  float64 // 不计击杀等待的最短时长估计（秒）
	Err      error
	Warnings []string
}

// OK 关卡是否通过检查
func (r stageReport) OK() bool {
	return r.Err == nil
}

// checkStage 加载关卡并与敌人属性交叉检查
func checkStage(path string, stats *config.EnemyStatsConfig) stageReport {
	report := stageReport{Path: path}

	stage, err := config.LoadStageConfig(path)
	if err != nil {
		report.Err = err
		return report
	}
	report.Name = stage.Name
	report.Steps = len(stage.Steps)

	visit := func(where string, spawns []config.StageSpawn) {
		for i := range spawns {
			report.countSpawn(fmt.Sprintf("%s spawn %d", where, i), &spawns[i], stats)
		}
	}
	visit("initial", stage.Spawns)

	camera := stage.StartCoordinates
	for i := range stage.Steps {
		step := &stage.Steps[i]
		where := fmt.Sprintf("step %d", i)
		visit(where, step.Spawns)

		switch step.Kind {
		case config.StepMovement:
			speed := step.BaseSpeed * config.GameBaseSpeed
			if speed > 0 {
				report.MinTime += step.Coordinates.Sub(camera).Len() / speed
			}
			camera = step.Coordinates
		case config.StepStop:
			if step.MaxDuration != nil && !step.HasResumeConditions() {
				report.MinTime += *step.MaxDuration
			}
			if step.KillBoss && stats != nil && !hasBoss(stats, step.Spawns) {
				report.Warnings = append(report.Warnings, where+": killBoss without a boss spawn in this step")
			}
		case config.StepCinematic:
			if step.Cinematic != nil {
				report.MinTime += step.Cinematic.TotalDuration()
			}
		}
	}
	return report
}

// countSpawn 统计一个生成项及其掉落物
func (r *stageReport) countSpawn(where string, spawn *config.StageSpawn, stats *config.EnemyStatsConfig) {
	r.Spawns++
	if spawn.Kind == config.SpawnEnemy {
		r.Enemies++
		if isBoss(stats, spawn.EnemyType) {
			r.Bosses++
		}
		if stats != nil {
			if _, ok := stats.GetEnemyStats(spawn.EnemyType); !ok {
				r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %s has no stats and will be skipped", where, spawn.EnemyType))
			}
		}
	}
	if spawn.Contains != nil {
		if drop := spawn.Contains.Spawn(); drop != nil {
			r.countSpawn(where+" drop", drop, stats)
		}
	}
}

func isBoss(stats *config.EnemyStatsConfig, t config.EnemyType) bool {
	if stats == nil {
		return false
	}
	s, ok := stats.GetEnemyStats(t)
	return ok && s.Boss
}

func hasBoss(stats *config.EnemyStatsConfig, spawns []config.StageSpawn) bool {
	for _, s := range spawns {
		if s.Kind == config.SpawnEnemy && isBoss(stats, s.EnemyType) {
			return true
		}
	}
	return false
}

// checkCampaign 检查战役中每一关是否存在
func checkCampaign(campaign *config.CampaignConfig, reports []stageReport) []string {
	seen := make(map[string]bool, len(reports))
	for _, r := range reports {
		seen[r.Path] = r.OK()
	}
	var problems []string
	for i, path := range campaign.Stages {
		ok, checked := seen[path]
		switch {
		case !checked:
			if r := checkStage(path, nil); !r.OK() {
				problems = append(problems, fmt.Sprintf("campaign stage %d (%s): %v", i, path, r.Err))
			}
		case !ok:
			problems = append(problems, fmt.Sprintf("campaign stage %d (%s) is invalid", i, path))
		}
	}
	return problems
}

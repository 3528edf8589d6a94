package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/marcotoniut/carcenisation/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// CampaignConfig 关卡顺序与新游戏参数
type CampaignConfig struct {
	Stages        []string `yaml:"stages"`        // 关卡文件路径，按游玩顺序
	StartingLives int      `yaml:"startingLives"` // 初始命数，默认 DefaultLives
	EnemyStats    string   `yaml:"enemyStats"`    // 敌人属性文件
}

// LoadCampaign 加载战役配置
func LoadCampaign(filepath string) (*CampaignConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign file %s: %w", filepath, err)
	}

	var cfg CampaignConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse campaign YAML from %s: %w", filepath, err)
	}

	if cfg.StartingLives == 0 {
		cfg.StartingLives = DefaultLives
	}
	if cfg.EnemyStats == "" {
		cfg.EnemyStats = "data/enemy_stats.yaml"
	}

	if len(cfg.Stages) == 0 {
		return nil, fmt.Errorf("invalid campaign in %s: at least one stage is required", filepath)
	}
	if cfg.StartingLives < 0 {
		return nil, fmt.Errorf("invalid campaign in %s: startingLives cannot be negative", filepath)
	}

	return &cfg, nil
}

// IndexOf 返回关卡路径或名称（不含目录与扩展名）在战役中的位置，找不到返回 -1
func (c *CampaignConfig) IndexOf(stage string) int {
	for i, p := range c.Stages {
		if p == stage || stageSlug(p) == stage {
			return i
		}
	}
	return -1
}

func stageSlug(p string) string {
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}

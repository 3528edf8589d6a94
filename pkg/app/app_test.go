package app

import (
	"os"
	"testing"

	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/embedded"
)

func TestResolveStartStage(t *testing.T) {
	embedded.Init(os.DirFS("../.."))
	defer embedded.Reset()

	campaign, err := config.LoadCampaign(DefaultCampaignPath)
	if err != nil {
		t.Fatalf("LoadCampaign: %v", err)
	}

	tests := []struct {
		name      string
		cfg       Config
		wantPath  string
		wantIndex int
		wantErr   bool
	}{
		{"默认显示标题画面", Config{}, "", -1, false},
		{"跳过标题从第一关开始", Config{SkipTitle: true}, campaign.Stages[0], 0, false},
		{"按名称选择战役关卡", Config{Stage: "asteroid"}, "data/stages/asteroid.yaml", 1, false},
		{"按路径选择战役关卡", Config{Stage: "data/stages/park.yaml"}, "data/stages/park.yaml", 0, false},
		{"战役之外的关卡", Config{Stage: "debug"}, "data/stages/debug.yaml", -1, false},
		{"未知关卡", Config{Stage: "moon"}, "", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, index, err := resolveStartStage(tt.cfg, campaign)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveStartStage: %v", err)
			}
			if path != tt.wantPath || index != tt.wantIndex {
				t.Errorf("resolveStartStage = (%q, %d), want (%q, %d)", path, index, tt.wantPath, tt.wantIndex)
			}
		})
	}
}

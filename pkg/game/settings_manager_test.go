package game

import (
	"os"
	"testing"

	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// openTestStorage 在临时 HOME 下打开 gdata 存储
func openTestStorage(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.MasterVolume != 0.8 {
		t.Errorf("MasterVolume: got %v, want 0.8", settings.MasterVolume)
	}
	if settings.MusicVolume != 0.06 {
		t.Errorf("MusicVolume: got %v, want 0.06", settings.MusicVolume)
	}
	if settings.SFXVolume != 0.08 {
		t.Errorf("SFXVolume: got %v, want 0.08", settings.SFXVolume)
	}
	if settings.CrosshairIndex != 1 {
		t.Errorf("CrosshairIndex: got %v, want 1", settings.CrosshairIndex)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

func TestEffectiveVolumes(t *testing.T) {
	s := &GameSettings{MasterVolume: 0.5, MusicVolume: 0.4, SFXVolume: 0.2}
	if got := s.EffectiveMusicVolume(); got != 0.2 {
		t.Errorf("EffectiveMusicVolume: got %v, want 0.2", got)
	}
	if got := s.EffectiveSFXVolume(); got != 0.1 {
		t.Errorf("EffectiveSFXVolume: got %v, want 0.1", got)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if sm.GetSettings().MusicVolume != config.DefaultMusicVolume {
		t.Errorf("Degraded mode MusicVolume: got %v", sm.GetSettings().MusicVolume)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestStorage(t, "test_settings_load_save")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetMasterVolume(0.9)
	sm1.SetMusicVolume(0.5)
	sm1.SetSFXVolume(0.6)
	sm1.CycleCrosshair()
	sm1.SetFullscreen(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.MasterVolume != 0.9 {
		t.Errorf("Loaded MasterVolume: got %v, want 0.9", settings.MasterVolume)
	}
	if settings.MusicVolume != 0.5 {
		t.Errorf("Loaded MusicVolume: got %v, want 0.5", settings.MusicVolume)
	}
	if settings.SFXVolume != 0.6 {
		t.Errorf("Loaded SFXVolume: got %v, want 0.6", settings.SFXVolume)
	}
	if settings.CrosshairIndex != 2 {
		t.Errorf("Loaded CrosshairIndex: got %v, want 2", settings.CrosshairIndex)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsLoadSanitizes 测试越界数据在加载时被修正
func TestSettingsLoadSanitizes(t *testing.T) {
	gdataManager := openTestStorage(t, "test_settings_sanitize")

	raw := []byte("masterVolume: 3\nmusicVolume: -1\ncrosshairIndex: 7\n")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	s := sm.GetSettings()
	if s.MasterVolume != 1 {
		t.Errorf("MasterVolume: got %v, want 1", s.MasterVolume)
	}
	if s.MusicVolume != 0 {
		t.Errorf("MusicVolume: got %v, want 0", s.MusicVolume)
	}
	// 缺失字段保持默认
	if s.SFXVolume != config.DefaultSFXVolume {
		t.Errorf("SFXVolume: got %v, want default", s.SFXVolume)
	}
	if s.CrosshairIndex != 7%config.CrosshairStyleCount {
		t.Errorf("CrosshairIndex: got %v", s.CrosshairIndex)
	}
}

// TestSetVolumeClamp 测试音量范围校验
func TestSetVolumeClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"正常值", 0.5, 0.5},
		{"下限", 0.0, 0.0},
		{"上限", 1.0, 1.0},
		{"低于下限", -0.5, 0.0},
		{"高于上限", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetMasterVolume(tt.input)
			sm.SetMusicVolume(tt.input)
			sm.SetSFXVolume(tt.input)
			s := sm.GetSettings()
			if s.MasterVolume != tt.expected || s.MusicVolume != tt.expected || s.SFXVolume != tt.expected {
				t.Errorf("input %v: got %v/%v/%v, want %v",
					tt.input, s.MasterVolume, s.MusicVolume, s.SFXVolume, tt.expected)
			}
		})
	}
}

// TestCycleCrosshair 测试准星样式循环
func TestCycleCrosshair(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	want := []int{2, 0, 1, 2}
	for i, w := range want {
		if got := sm.CycleCrosshair(); got != w {
			t.Errorf("cycle %d: got %d, want %d", i, got, w)
		}
	}
}

// TestGameStateSettingsManager 测试 GameState 集成 SettingsManager
func TestGameStateSettingsManager(t *testing.T) {
	originalGameState := globalGameState
	defer func() {
		globalGameState = originalGameState
	}()

	globalGameState = nil

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	gs := GetGameState()
	if gs == nil {
		t.Fatal("GetGameState() returned nil")
	}

	sm := gs.GetSettingsManager()
	if sm == nil {
		t.Fatal("SettingsManager is nil")
	}

	if gs.CrosshairIndex() != config.DefaultCrosshairIndex {
		t.Errorf("CrosshairIndex: got %d", gs.CrosshairIndex())
	}
}

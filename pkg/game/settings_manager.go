package game

import (
	"fmt"
	"log"

	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局游戏设置
type GameSettings struct {
	// 音频设置，实际音量 = 主音量 × 通道音量
	MasterVolume float64 `yaml:"masterVolume"` // 主音量 0.0 ~ 1.0
	MusicVolume  float64 `yaml:"musicVolume"`  // 音乐音量 0.0 ~ 1.0
	SFXVolume    float64 `yaml:"sfxVolume"`    // 音效音量 0.0 ~ 1.0

	// 准星样式序号
	CrosshairIndex int `yaml:"crosshairIndex"`

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		MasterVolume:   config.DefaultMasterVolume,
		MusicVolume:    config.DefaultMusicVolume,
		SFXVolume:      config.DefaultSFXVolume,
		CrosshairIndex: config.DefaultCrosshairIndex,
		Fullscreen:     false,
	}
}

// EffectiveMusicVolume 主音量与音乐音量的乘积
func (s *GameSettings) EffectiveMusicVolume() float64 {
	return s.MasterVolume * s.MusicVolume
}

// EffectiveSFXVolume 主音量与音效音量的乘积
func (s *GameSettings) EffectiveSFXVolume() float64 {
	return s.MasterVolume * s.SFXVolume
}

// SettingsManager 设置管理器
// 负责游戏设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方，加载失败只记录日志并使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置。
// 旧数据缺少的字段保持默认值，越界的值会被修正。
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	loaded.MasterVolume = clampVolume(loaded.MasterVolume)
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	loaded.SFXVolume = clampVolume(loaded.SFXVolume)
	loaded.CrosshairIndex = wrapCrosshair(loaded.CrosshairIndex)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetMasterVolume 设置主音量，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetMasterVolume(volume float64) {
	sm.settings.MasterVolume = clampVolume(volume)
}

// SetMusicVolume 设置音乐音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// SetSFXVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSFXVolume(volume float64) {
	sm.settings.SFXVolume = clampVolume(volume)
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// CycleCrosshair 切换到下一个准星样式
//
// 返回：
//   - int: 新的准星序号
func (sm *SettingsManager) CycleCrosshair() int {
	sm.settings.CrosshairIndex = wrapCrosshair(sm.settings.CrosshairIndex + 1)
	return sm.settings.CrosshairIndex
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

func wrapCrosshair(i int) int {
	n := config.CrosshairStyleCount
	return ((i % n) + n) % n
}

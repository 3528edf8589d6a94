package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/marcotoniut/carcenisation/pkg/config"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效和背景音乐的播放
//   - 实际音量 = 主音量 × 通道音量（从 SettingsManager 读取）
//   - 通过音频 ID 播放
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager         // 可为 nil，使用默认音量
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（ID -> 播放器）
	musicPlayers    map[string]*audio.Player // 背景音乐播放器缓存（ID -> 播放器）
	currentMusic    *audio.Player
	currentMusicID  string
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于合成音频）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
		musicPlayers:    make(map[string]*audio.Player),
	}
}

// PlaySound 播放音效（单次）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	volume := am.getSoundVolume()
	if volume <= 0 {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayMusic 播放背景音乐
// 同一时间只能播放一首，已在播放同一首时不会重新开始
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayMusic(musicID string) bool {
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()

	player := am.getMusicPlayer(musicID)
	if player == nil {
		return false
	}

	volume := am.getMusicVolume()
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music %s: %v", musicID, err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID

	log.Printf("[AudioManager] Playing music: %s (volume: %.3f)", musicID, volume)
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// PauseMusic 暂停当前背景音乐
func (am *AudioManager) PauseMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
}

// ResumeMusic 恢复当前背景音乐
func (am *AudioManager) ResumeMusic() {
	if am.currentMusic != nil && am.currentMusicID != "" {
		am.currentMusic.Play()
	}
}

// CurrentMusicID 当前曲目 ID，无音乐时为空
func (am *AudioManager) CurrentMusicID() string {
	return am.currentMusicID
}

// ApplyVolumes 在设置变化后重新应用音量
func (am *AudioManager) ApplyVolumes() {
	music := am.getMusicVolume()
	for _, player := range am.musicPlayers {
		player.SetVolume(music)
	}
	sfx := am.getSoundVolume()
	for _, player := range am.soundPlayers {
		player.SetVolume(sfx)
	}
}

// GetMusicVolume 获取当前实际音乐音量
func (am *AudioManager) GetMusicVolume() float64 {
	return am.getMusicVolume()
}

// GetSoundVolume 获取当前实际音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}

	player, err := am.resourceManager.LoadSoundEffect(soundID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", soundID, err)
		return nil
	}
	am.soundPlayers[soundID] = player
	return player
}

func (am *AudioManager) getMusicPlayer(musicID string) *audio.Player {
	if player, exists := am.musicPlayers[musicID]; exists {
		return player
	}

	player, err := am.resourceManager.LoadAudio(musicID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load music %s: %v", musicID, err)
		return nil
	}
	am.musicPlayers[musicID] = player
	return player
}

func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().EffectiveMusicVolume()
	}
	return config.DefaultMasterVolume * config.DefaultMusicVolume
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().EffectiveSFXVolume()
	}
	return config.DefaultMasterVolume * config.DefaultSFXVolume
}

// PreloadSounds 预加载音效，避免首次播放时合成造成卡顿
func (am *AudioManager) PreloadSounds(soundIDs []string) {
	for _, soundID := range soundIDs {
		am.getSoundPlayer(soundID)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(soundIDs))
}

// PreloadMusic 预加载背景音乐
func (am *AudioManager) PreloadMusic(musicIDs []string) {
	for _, musicID := range musicIDs {
		am.getMusicPlayer(musicID)
	}
	log.Printf("[AudioManager] Preloaded %d music tracks", len(musicIDs))
}

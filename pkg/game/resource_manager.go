package game

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	synth "github.com/marcotoniut/carcenisation/internal/audio"
)

// SampleRate 音频上下文与合成器共用的采样率
const SampleRate = 48000

// maxRenderDuration 单个音效或曲目最长渲染时长
const maxRenderDuration = 2 * time.Minute

// ResourceManager is responsible for centralized management of game resources.
// Sounds and music are synthesized on first use, rendered to PCM once and cached.
// Text uses a single bitmap face.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. For the single-threaded game loop,
// no synchronization is needed.
//
// Usage:
//
//	audioContext := audio.NewContext(SampleRate)
//	rm := NewResourceManager(audioContext)
//	player, err := rm.LoadSoundEffect(synth.SoundGun)
type ResourceManager struct {
	audioContext *audio.Context           // nil 时只渲染 PCM，不创建播放器
	pcmCache     map[string][]byte        // 已渲染的 PCM 数据：音频 ID -> 数据
	audioCache   map[string]*audio.Player // 已创建的播放器：音频 ID -> Player
	fontFace     *text.GoXFace
}

// NewResourceManager creates a ResourceManager.
//
// Parameters:
//   - audioContext: the global audio context, may be nil in headless tools.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext: audioContext,
		pcmCache:     make(map[string][]byte),
		audioCache:   make(map[string]*audio.Player),
	}
}

// RenderPCM 渲染并缓存音频 PCM 数据
//
// 参数：
//   - id: 音效或曲目 ID
//   - music: true 表示曲目，false 表示音效
//
// 返回：
//   - []byte: 16 位立体声 PCM
//   - error: 未知 ID 或渲染失败
func (rm *ResourceManager) RenderPCM(id string, music bool) ([]byte, error) {
	key := cacheKey(id, music)
	if data, ok := rm.pcmCache[key]; ok {
		return data, nil
	}

	rate := beep.SampleRate(SampleRate)
	var (
		s   beep.Streamer
		err error
	)
	if music {
		s, err = synth.NewMusic(id, rate)
	} else {
		s, err = synth.NewSound(id, rate)
	}
	if err != nil {
		return nil, err
	}

	data, err := synth.Render(s, rate.N(maxRenderDuration))
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", id, err)
	}

	rm.pcmCache[key] = data
	log.Printf("[ResourceManager] Rendered %s (%d bytes)", key, len(data))
	return data, nil
}

// LoadAudio 创建循环播放的曲目播放器
// 只播放一次的曲目（如结算音乐）不会循环
func (rm *ResourceManager) LoadAudio(id string) (*audio.Player, error) {
	key := cacheKey(id, true)
	if player, ok := rm.audioCache[key]; ok {
		return player, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", id)
	}

	data, err := rm.RenderPCM(id, true)
	if err != nil {
		return nil, err
	}

	stream := synth.NewPCMStream(data)
	var player *audio.Player
	if synth.IsMusicLooped(id) {
		loopStream := audio.NewInfiniteLoop(stream, stream.Length())
		player, err = rm.audioContext.NewPlayer(loopStream)
	} else {
		player, err = rm.audioContext.NewPlayer(stream)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", id, err)
	}

	rm.audioCache[key] = player
	return player, nil
}

// LoadSoundEffect 创建单次播放的音效播放器
func (rm *ResourceManager) LoadSoundEffect(id string) (*audio.Player, error) {
	key := cacheKey(id, false)
	if player, ok := rm.audioCache[key]; ok {
		return player, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", id)
	}

	data, err := rm.RenderPCM(id, false)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(synth.NewPCMStream(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create sound player for %s: %w", id, err)
	}

	rm.audioCache[key] = player
	return player, nil
}

// GetAudioPlayer 返回已缓存的播放器，未加载时为 nil
func (rm *ResourceManager) GetAudioPlayer(id string, music bool) *audio.Player {
	return rm.audioCache[cacheKey(id, music)]
}

// GetFont 返回像素字体
func (rm *ResourceManager) GetFont() *text.GoXFace {
	if rm.fontFace == nil {
		rm.fontFace = text.NewGoXFace(basicfont.Face7x13)
	}
	return rm.fontFace
}

func cacheKey(id string, music bool) string {
	if music {
		return "music:" + id
	}
	return "sound:" + id
}

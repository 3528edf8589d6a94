package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
)

// 音效 ID
const (
	SoundGun          = "gun"
	SoundPincer       = "pincer"
	SoundPlayerHit    = "player_hit"
	SoundEnemyHit     = "enemy_hit"
	SoundEnemyDeath   = "enemy_death"
	SoundBreak        = "break"
	SoundPickup       = "pickup"
	SoundBloodShot    = "blood_shot"
	SoundBoulderThrow = "boulder_throw"
	SoundMiss         = "miss"
	SoundPause        = "pause"
	SoundMenuSelect   = "menu_select"
)

// 音乐 ID
const (
	MusicTitle    = "title"
	MusicPark     = "park"
	MusicAsteroid = "asteroid"
	MusicBoss     = "boss"
	MusicIntro    = "intro"
	MusicCleared  = "cleared"
	MusicGameOver = "game_over"
)

// SoundIDs 列出所有可用音效
func SoundIDs() []string {
	return []string{
		SoundGun, SoundPincer, SoundPlayerHit, SoundEnemyHit, SoundEnemyDeath,
		SoundBreak, SoundPickup, SoundBloodShot, SoundBoulderThrow, SoundMiss,
		SoundPause, SoundMenuSelect,
	}
}

// MusicIDs 列出所有可用曲目
func MusicIDs() []string {
	return []string{MusicTitle, MusicPark, MusicAsteroid, MusicBoss, MusicIntro, MusicCleared, MusicGameOver}
}

// IsMusicLooped 返回曲目是否循环播放
// 过场与结算曲目只播放一次
func IsMusicLooped(id string) bool {
	switch id {
	case MusicCleared, MusicGameOver:
		return false
	default:
		return true
	}
}

// NewSound 按 ID 构造音效 Streamer
//
// 参数：
//   - id: 音效 ID
//   - rate: 采样率
//
// 返回：
//   - beep.Streamer: 有限长度的音效
//   - error: 未知 ID
func NewSound(id string, rate beep.SampleRate) (beep.Streamer, error) {
	ms := time.Millisecond
	switch id {
	case SoundGun:
		d := 60 * ms
		return withVolume(NewEnvelope(NewOscillator(1400, 500, d, WavePulse, rate), d, ms, 40*ms, rate), 0.5), nil

	case SoundPincer:
		d := 140 * ms
		snap := NewEnvelope(NewOscillator(0, 0, d, WaveNoise, rate), d, 2*ms, 100*ms, rate)
		tone := NewEnvelope(NewOscillator(300, 120, d, WaveSquare, rate), d, 2*ms, 90*ms, rate)
		return beep.Mix(withVolume(snap, 0.4), withVolume(tone, 0.5)), nil

	case SoundPlayerHit:
		d := 250 * ms
		buzz := NewEnvelope(NewOscillator(180, 60, d, WaveSquare, rate), d, ms, 150*ms, rate)
		crackle := NewEnvelope(NewOscillator(0, 0, 80*ms, WaveNoise, rate), 80*ms, ms, 60*ms, rate)
		return beep.Mix(withVolume(buzz, 0.6), withVolume(crackle, 0.4)), nil

	case SoundEnemyHit:
		d := 50 * ms
		return withVolume(NewEnvelope(NewOscillator(900, 700, d, WaveSquare, rate), d, ms, 30*ms, rate), 0.35), nil

	case SoundEnemyDeath:
		d := 320 * ms
		fall := NewEnvelope(NewOscillator(600, 80, d, WaveSquare, rate), d, 2*ms, 200*ms, rate)
		noise := NewEnvelope(NewOscillator(0, 0, d, WaveNoise, rate), d, 2*ms, 250*ms, rate)
		return beep.Mix(withVolume(fall, 0.5), withVolume(noise, 0.3)), nil

	case SoundBreak:
		d := 200 * ms
		return withVolume(NewEnvelope(NewOscillator(0, 0, d, WaveNoise, rate), d, ms, 170*ms, rate), 0.5), nil

	case SoundPickup:
		return withVolume(NewSequence([]Note{
			{Freq: NoteFreq(3), Duration: 60 * ms},
			{Freq: NoteFreq(7), Duration: 60 * ms},
			{Freq: NoteFreq(10), Duration: 60 * ms},
			{Freq: NoteFreq(15), Duration: 120 * ms},
		}, WavePulse, rate), 0.5), nil

	case SoundBloodShot:
		d := 120 * ms
		return withVolume(NewEnvelope(NewOscillator(250, 500, d, WaveTriangle, rate), d, 5*ms, 60*ms, rate), 0.6), nil

	case SoundBoulderThrow:
		d := 300 * ms
		rumble := NewEnvelope(NewOscillator(90, 50, d, WaveTriangle, rate), d, 20*ms, 150*ms, rate)
		grit := NewEnvelope(NewOscillator(0, 0, d, WaveNoise, rate), d, 20*ms, 200*ms, rate)
		return beep.Mix(withVolume(rumble, 0.7), withVolume(grit, 0.2)), nil

	case SoundMiss:
		d := 90 * ms
		return withVolume(NewEnvelope(NewOscillator(200, 150, d, WaveTriangle, rate), d, 2*ms, 60*ms, rate), 0.3), nil

	case SoundPause:
		return withVolume(NewSequence([]Note{
			{Freq: NoteFreq(12), Duration: 50 * ms},
			{Freq: NoteFreq(7), Duration: 50 * ms},
		}, WaveSquare, rate), 0.4), nil

	case SoundMenuSelect:
		d := 40 * ms
		return withVolume(NewEnvelope(NewOscillator(NoteFreq(19), NoteFreq(19), d, WavePulse, rate), d, ms, 20*ms, rate), 0.4), nil
	}

	return nil, fmt.Errorf("unknown sound: %s", id)
}

// 旋律简写：半音偏移，-99 表示休止
const rest = -99

type track struct {
	bpm    float64
	lead   []int
	bass   []int
	leadW  WaveType
	bassW  WaveType
	leadV  float64
	bassV  float64
	repeat int
}

var tracks = map[string]track{
	MusicTitle: {
		bpm:   120,
		lead:  []int{3, 7, 10, 7, 3, 7, 12, rest, 10, 7, 5, 3, 5, 7, 3, rest},
		bass:  []int{-21, -21, -14, -14, -16, -16, -9, -9},
		leadW: WavePulse, bassW: WaveTriangle, leadV: 0.35, bassV: 0.5, repeat: 2,
	},
	MusicPark: {
		bpm:   140,
		lead:  []int{0, 4, 7, 4, 9, 7, 4, 2, 0, 4, 7, 12, 11, 7, 4, rest},
		bass:  []int{-24, -24, -19, -19, -20, -20, -17, -17},
		leadW: WavePulse, bassW: WaveTriangle, leadV: 0.3, bassV: 0.5, repeat: 2,
	},
	MusicAsteroid: {
		bpm:   110,
		lead:  []int{-2, 1, 5, 1, 8, 5, 1, rest, -2, 1, 5, 10, 8, 5, 1, rest},
		bass:  []int{-26, -26, -21, -21, -23, -23, -19, -19},
		leadW: WaveSquare, bassW: WaveTriangle, leadV: 0.25, bassV: 0.5, repeat: 2,
	},
	MusicBoss: {
		bpm:   160,
		lead:  []int{0, 0, 3, 0, 6, 5, 3, 0, 0, 0, 3, 0, 7, 6, 5, 3},
		bass:  []int{-24, -24, -24, -24, -21, -21, -18, -18},
		leadW: WaveSquare, bassW: WaveSquare, leadV: 0.25, bassV: 0.3, repeat: 2,
	},
	MusicIntro: {
		bpm:   90,
		lead:  []int{7, rest, 5, rest, 3, rest, 2, rest},
		bass:  []int{-17, -19, -21, -22},
		leadW: WaveTriangle, bassW: WaveTriangle, leadV: 0.4, bassV: 0.4, repeat: 1,
	},
	MusicCleared: {
		bpm:   150,
		lead:  []int{0, 4, 7, 12, 7, 12, 16, rest},
		bass:  []int{-24, -17, -12, -12},
		leadW: WavePulse, bassW: WaveTriangle, leadV: 0.4, bassV: 0.4, repeat: 1,
	},
	MusicGameOver: {
		bpm:   80,
		lead:  []int{7, 6, 5, 4, 3, rest, 0, rest},
		bass:  []int{-17, -18, -19, -24},
		leadW: WaveSquare, bassW: WaveTriangle, leadV: 0.35, bassV: 0.4, repeat: 1,
	},
}

// NewMusic 按 ID 构造曲目 Streamer
// 主旋律以八分音符演奏，低音以四分音符演奏
//
// 参数：
//   - id: 曲目 ID
//   - rate: 采样率
//
// 返回：
//   - beep.Streamer: 一遍完整曲目（循环由播放端负责）
//   - error: 未知 ID
func NewMusic(id string, rate beep.SampleRate) (beep.Streamer, error) {
	t, ok := tracks[id]
	if !ok {
		return nil, fmt.Errorf("unknown music: %s", id)
	}

	beat := time.Duration(float64(time.Minute) / t.bpm)
	lead := make([]Note, 0, len(t.lead)*t.repeat)
	bass := make([]Note, 0, len(t.bass)*t.repeat)
	for r := 0; r < t.repeat; r++ {
		for _, s := range t.lead {
			lead = append(lead, toNote(s, beat/2))
		}
		for _, s := range t.bass {
			bass = append(bass, toNote(s, beat))
		}
	}

	return beep.Mix(
		withVolume(NewSequence(lead, t.leadW, rate), t.leadV),
		withVolume(NewSequence(bass, t.bassW, rate), t.bassV),
	), nil
}

func toNote(semitones int, d time.Duration) Note {
	if semitones == rest {
		return Note{Duration: d}
	}
	return Note{Freq: NoteFreq(semitones), Duration: d}
}

// Package audio 程序化生成游戏音效与音乐
//
// 音色由 beep 的 Streamer 组合而成，渲染为 16 位小端立体声 PCM，
// 再交给 Ebitengine 的 audio.Player 播放。
package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// PCMStream 内存中的 16 位立体声 PCM 数据
// 实现 io.ReadSeeker，并提供 Length() 供 audio.NewInfiniteLoop 使用
type PCMStream struct {
	data   []byte
	offset int64
}

// NewPCMStream 用已渲染的 PCM 数据创建可寻址的流
func NewPCMStream(data []byte) *PCMStream {
	return &PCMStream{data: data}
}

// Read reads PCM data into p.
func (s *PCMStream) Read(p []byte) (n int, err error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}

	n = copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
func (s *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	s.offset = newOffset
	return newOffset, nil
}

// Length returns the total length of the PCM data in bytes.
func (s *PCMStream) Length() int64 {
	return int64(len(s.data))
}

// Bytes 返回底层数据
func (s *PCMStream) Bytes() []byte {
	return s.data
}

// bytesPerFrame 每个立体声采样帧的字节数（2 声道 × 16 位）
const bytesPerFrame = 4

// Render 把有限长度的 Streamer 渲染为 16 位小端立体声 PCM
//
// 参数：
//   - s: 必须最终结束的 Streamer（例如 beep.Take 或由振荡器组成的序列）
//   - maxSamples: 最多渲染的采样帧数，防止无限流
//
// 返回：
//   - []byte: PCM 数据
//   - error: Streamer 报告的错误
func Render(s beep.Streamer, maxSamples int) ([]byte, error) {
	out := make([]byte, 0, 4096)
	buf := make([][2]float64, 512)
	total := 0

	for total < maxSamples {
		want := len(buf)
		if maxSamples-total < want {
			want = maxSamples - total
		}
		n, ok := s.Stream(buf[:want])
		for i := 0; i < n; i++ {
			out = appendSample(out, buf[i][0])
			out = appendSample(out, buf[i][1])
		}
		total += n
		if !ok {
			break
		}
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to render audio: %w", err)
	}
	return out, nil
}

func appendSample(out []byte, v float64) []byte {
	v = math.Max(-1, math.Min(1, v))
	sample := int16(v * math.MaxInt16)
	return append(out, byte(sample), byte(sample>>8))
}

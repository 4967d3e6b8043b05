package player

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

var errUnknownM4ACodec = errors.New("m4a: unsupported codec")

// m4aStream reads M4A samples with go-m4a and decodes them with faad2 (AAC)
// or alac (ALAC), buffering decoded frames between Stream calls.
type m4aStream struct {
	container  *m4a.Reader
	closer     io.Closer
	codec      m4a.CodecType
	sampleRate int
	channels   int
	sampleSize int
	total      int
	next       int // index of the next container sample to read
	err        error

	aac  *faad2.Decoder
	alac *alac.Alac

	pending [][2]float64
}

// decodeM4A opens an M4A file and returns the stream, its format and the codec name.
func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, string, error) {
	container, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, "", err
	}

	s := &m4aStream{
		container:  container,
		closer:     rc,
		codec:      container.Codec(),
		sampleRate: int(container.SampleRate()),
		channels:   int(container.Channels()),
		sampleSize: int(container.SampleSize()),
	}
	s.total = int(container.Duration().Seconds() * float64(s.sampleRate))

	precision := 2
	switch s.codec {
	case m4a.CodecAAC:
		ctx := context.Background()
		dec, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, beep.Format{}, "", err
		}
		if err := dec.Init(ctx, container.CodecConfig()); err != nil {
			dec.Close(ctx)
			return nil, beep.Format{}, "", err
		}
		s.aac = dec
	case m4a.CodecALAC:
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  s.sampleRate,
			SampleSize:  s.sampleSize,
			NumChannels: s.channels,
			FrameSize:   4096,
		})
		if err != nil {
			return nil, beep.Format{}, "", err
		}
		s.alac = dec
		if s.sampleSize == 24 {
			precision = 3
		}
	default:
		return nil, beep.Format{}, "", errUnknownM4ACodec
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(s.sampleRate),
		NumChannels: 2,
		Precision:   precision,
	}
	return s, format, s.codec.String(), nil
}

func (s *m4aStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for n < len(samples) {
		if len(s.pending) > 0 {
			c := copy(samples[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}
		if s.next >= s.container.SampleCount() {
			return n, n > 0
		}
		if err := s.decodeNext(); err != nil {
			s.err = err
			return n, n > 0
		}
	}
	return n, true
}

func (s *m4aStream) decodeNext() error {
	data, err := s.container.ReadSample(s.next)
	if err != nil {
		return err
	}
	s.next++

	if s.aac != nil {
		pcm, err := s.aac.Decode(context.Background(), data)
		if err != nil {
			return err
		}
		s.pending = int16Frames(pcm, s.channels)
		return nil
	}
	s.pending = alacFrames(s.alac.Decode(data), s.channels, s.sampleSize)
	return nil
}

// int16Frames converts interleaved int16 PCM to stereo frames, duplicating mono.
func int16Frames(pcm []int16, channels int) [][2]float64 {
	channels = max(channels, 1)
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		left := float64(pcm[i*channels]) / 32768.0
		right := left
		if channels > 1 {
			right = float64(pcm[i*channels+1]) / 32768.0
		}
		frames[i] = [2]float64{left, right}
	}
	return frames
}

// alacFrames converts little-endian 16 or 24-bit PCM bytes to stereo frames.
func alacFrames(data []byte, channels, sampleSize int) [][2]float64 {
	channels = max(channels, 1)
	width := 2
	scale := 32768.0
	if sampleSize == 24 {
		width = 3
		scale = 8388608.0
	}
	frameBytes := width * channels
	frames := make([][2]float64, len(data)/frameBytes)
	for i := range frames {
		off := i * frameBytes
		left := pcmSample(data[off:], width)
		right := left
		if channels > 1 {
			right = pcmSample(data[off+width:], width)
		}
		frames[i] = [2]float64{float64(left) / scale, float64(right) / scale}
	}
	return frames
}

func pcmSample(b []byte, width int) int32 {
	if width == 2 {
		return int32(int16(uint16(b[0]) | uint16(b[1])<<8))
	}
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if v&0x800000 != 0 {
		v |= ^0xFFFFFF
	}
	return v
}

func (s *m4aStream) Err() error { return s.err }

func (s *m4aStream) Len() int { return s.total }

func (s *m4aStream) Position() int {
	return int(s.container.SampleTime(s.next).Seconds() * float64(s.sampleRate))
}

func (s *m4aStream) Seek(p int) error {
	p = min(max(p, 0), s.total)
	pos := time.Duration(float64(p) / float64(s.sampleRate) * float64(time.Second))
	s.next = s.container.SeekToTime(pos)
	s.pending = nil
	s.err = nil
	return nil
}

func (s *m4aStream) Close() error {
	if s.aac != nil {
		s.aac.Close(context.Background())
	}
	return s.closer.Close()
}

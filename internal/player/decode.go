package player

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/llehouerou/waveplay/internal/tags"
)

// decoded is an opened, ready-to-stream media file.
type decoded struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	codec    string
	file     *os.File
}

func (d *decoded) close() {
	if d.streamer != nil {
		d.streamer.Close()
	}
	if d.file != nil {
		d.file.Close()
	}
}

// decodeFile opens path and picks a decoder by extension.
func decodeFile(path string) (*decoded, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !tags.IsAudioFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		codec    = strings.ToUpper(strings.TrimPrefix(ext, "."))
	)

	switch ext {
	case tags.ExtMP3:
		streamer, format, err = decodeGoMP3(f)
	case tags.ExtFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err = skipID3v2(f); err == nil {
			streamer, format, err = flac.Decode(f)
		}
	case tags.ExtWAV:
		streamer, format, err = wav.Decode(f)
	case tags.ExtOGG:
		streamer, format, err = vorbis.Decode(f)
	case tags.ExtM4A:
		streamer, format, codec, err = decodeM4A(f)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return &decoded{streamer: streamer, format: format, codec: codec, file: f}, nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
// Some FLAC files have ID3v2 tags prepended, which the FLAC decoder doesn't handle.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n == 0 {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer in bytes 6-9 (7 bits per byte)
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

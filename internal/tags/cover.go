package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	goflac "github.com/go-flac/go-flac"
	"github.com/go-flac/flacpicture"
)

// Cover is an embedded picture.
type Cover struct {
	Data []byte
	MIME string
}

// Ext returns the file extension matching the picture MIME type.
func (c Cover) Ext() string {
	switch strings.ToLower(c.MIME) {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}

// EmbeddedCover reads the embedded picture of an audio file, preferring
// the front cover. It returns nil and no error when the file has none.
func EmbeddedCover(path string) (*Cover, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtFLAC:
		if c, err := flacCover(path); err == nil {
			return c, nil
		}
	case ExtMP3:
		if c, err := mp3Cover(path); err == nil {
			return c, nil
		}
	}
	return genericCover(path)
}

// flacCover reads PICTURE metadata blocks.
func flacCover(path string) (*Cover, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta, err := goflac.ParseMetadata(f)
	if err != nil {
		return nil, err
	}

	var found *Cover
	for _, block := range meta.Meta {
		if block.Type != goflac.Picture {
			continue
		}
		pic, err := flacpicture.ParseFromMetaDataBlock(*block)
		if err != nil || len(pic.ImageData) == 0 {
			continue
		}
		c := &Cover{Data: pic.ImageData, MIME: pic.MIME}
		if pic.PictureType == flacpicture.PictureTypeFrontCover {
			return c, nil
		}
		if found == nil {
			found = c
		}
	}
	return found, nil
}

// mp3Cover reads ID3v2 APIC frames.
func mp3Cover(path string) (*Cover, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Attached picture"}})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	var found *Cover
	for _, frame := range id3tag.GetFrames(id3tag.CommonID("Attached picture")) {
		pic, ok := frame.(id3v2.PictureFrame)
		if !ok || len(pic.Picture) == 0 {
			continue
		}
		c := &Cover{Data: pic.Picture, MIME: pic.MimeType}
		if pic.PictureType == id3v2.PTFrontCover {
			return c, nil
		}
		if found == nil {
			found = c
		}
	}
	return found, nil
}

func genericCover(path string) (*Cover, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, nil //nolint:nilnil // no cover is not an error
	}
	return &Cover{Data: pic.Data, MIME: pic.MIMEType}, nil
}

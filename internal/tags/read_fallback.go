package tags

import (
	"errors"

	"github.com/bogem/id3v2/v2"
	goflac "github.com/go-flac/go-flac"
	"github.com/go-flac/flacvorbis"
	"go.senan.xyz/taglib"
)

var errNoVorbisComment = errors.New("flac: no vorbis comment block")

// readMP3 reads the ID3v2 text frames directly.
func readMP3(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	t := &Tag{
		Path:        path,
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		Album:       id3tag.Album(),
		Genre:       id3tag.Genre(),
		TrackNumber: trackNumber(id3tag.GetTextFrame("TRCK").Text),
	}
	t.Sanitize()
	return t, nil
}

// readFLAC reads Vorbis comments from the FLAC metadata blocks.
func readFLAC(path string) (*Tag, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, err
		}
		t := &Tag{
			Path:        path,
			Title:       firstComment(cmt, flacvorbis.FIELD_TITLE),
			Artist:      firstComment(cmt, flacvorbis.FIELD_ARTIST),
			Album:       firstComment(cmt, flacvorbis.FIELD_ALBUM),
			Genre:       firstComment(cmt, flacvorbis.FIELD_GENRE),
			TrackNumber: trackNumber(firstComment(cmt, flacvorbis.FIELD_TRACKNUMBER)),
		}
		t.Sanitize()
		return t, nil
	}
	return nil, errNoVorbisComment
}

func firstComment(cmt *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmt.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}

// readWithTaglib covers containers dhowden/tag does not parse reliably
// (ffmpeg-created M4A, some Ogg files, RIFF INFO chunks in WAV).
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	t := &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		TrackNumber: trackNumber(tags.get(taglib.TrackNumber)),
	}
	t.Sanitize()
	return t, nil
}

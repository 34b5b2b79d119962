package audio

import (
	"fmt"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"github.com/handiism/tagcat/internal/model"
)

type flacFile struct {
	path     string
	file     *flac.File
	comments *flacvorbis.MetaDataBlockVorbisComment

	cover        *flac.MetaDataBlock
	dropPictures bool
}

func openFLAC(path string) (*flacFile, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse flac: %w", err)
	}

	var comments *flacvorbis.MetaDataBlockVorbisComment
	for _, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		comments, err = flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, fmt.Errorf("parse vorbis comment: %w", err)
		}
		break
	}
	if comments == nil {
		comments = flacvorbis.New()
	}

	return &flacFile{path: path, file: f, comments: comments}, nil
}

func (f *flacFile) Path() string   { return f.path }
func (f *flacFile) Format() Format { return FormatFLAC }

func (f *flacFile) Tags() model.TagMapping {
	return parseComments(f.comments.Comments)
}

// parseComments turns KEY=value vorbis comments into a mapping. Entries
// without a separator are skipped.
func parseComments(comments []string) model.TagMapping {
	tags := model.TagMapping{}
	for _, c := range comments {
		name, value, ok := strings.Cut(c, "=")
		if !ok {
			continue
		}
		name = model.CanonicalName(name)
		if name == "" {
			continue
		}
		tags[name] = append(tags[name], value)
	}
	return tags
}

func (f *flacFile) Set(name string, values []string) {
	name = model.CanonicalName(name)
	f.Delete(name)
	for _, v := range values {
		f.comments.Comments = append(f.comments.Comments, name+"="+v)
	}
}

func (f *flacFile) Delete(name string) {
	name = model.CanonicalName(name)
	kept := f.comments.Comments[:0]
	for _, c := range f.comments.Comments {
		key, _, _ := strings.Cut(c, "=")
		if model.CanonicalName(key) == name {
			continue
		}
		kept = append(kept, c)
	}
	f.comments.Comments = kept
}

// DeleteAll drops every comment and embedded picture.
func (f *flacFile) DeleteAll() {
	f.comments.Comments = nil
	f.cover = nil
	f.dropPictures = true
}

func (f *flacFile) SetCover(data []byte, mime string) error {
	picture, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover", data, mime)
	if err != nil {
		return fmt.Errorf("build picture block: %w", err)
	}
	block := picture.Marshal()
	f.cover = &block
	f.dropPictures = true
	return nil
}

// Save rewrites the metadata blocks in place of the old comment block and
// writes the file back to its path.
func (f *flacFile) Save() error {
	comments := f.comments.Marshal()

	meta := make([]*flac.MetaDataBlock, 0, len(f.file.Meta)+2)
	placed := false
	for _, block := range f.file.Meta {
		switch {
		case block.Type == flac.VorbisComment:
			if !placed {
				meta = append(meta, &comments)
				placed = true
			}
		case block.Type == flac.Picture && f.dropPictures:
		default:
			meta = append(meta, block)
		}
	}
	if !placed {
		meta = append(meta, &comments)
	}
	if f.cover != nil {
		meta = append(meta, f.cover)
	}
	f.file.Meta = meta

	if err := f.file.Save(f.path); err != nil {
		return fmt.Errorf("save flac: %w", err)
	}
	return nil
}

func (f *flacFile) Close() error { return nil }

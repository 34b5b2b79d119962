package audio

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/handiism/tagcat/internal/model"
)

// frameNames maps ID3v2 frame IDs onto the upper-case tag names used
// everywhere else. Text frames not listed keep their frame ID as name.
var frameNames = map[string]string{
	"TPE1": model.TagArtist,
	"TPE2": model.TagAlbumArtist,
	"TALB": model.TagAlbum,
	"TIT2": model.TagTitle,
	"TRCK": model.TagTrackNumber,
	"TPOS": model.TagDiscNumber,
	"TBPM": model.TagBPM,
	"TPUB": model.TagLabel,
	"TCON": model.TagGenre,
}

var frameIDs = func() map[string]string {
	ids := make(map[string]string, len(frameNames))
	for id, name := range frameNames {
		ids[name] = id
	}
	return ids
}()

var rawTextFrame = regexp.MustCompile(`^T[A-Z0-9]{3}$`)

const (
	userTextFrame = "TXXX"
	commentFrame  = "COMM"
)

type mp3File struct {
	path string
	tag  *id3v2.Tag
}

func openMP3(path string) (*mp3File, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	t.SetDefaultEncoding(id3v2.EncodingUTF8)

	return &mp3File{path: path, tag: t}, nil
}

func (f *mp3File) Path() string   { return f.path }
func (f *mp3File) Format() Format { return FormatMP3 }

func (f *mp3File) Tags() model.TagMapping {
	tags := model.TagMapping{}

	frames := f.tag.AllFrames()
	ids := make([]string, 0, len(frames))
	for id := range frames {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, framer := range frames[id] {
			switch frame := framer.(type) {
			case id3v2.UserDefinedTextFrame:
				name := model.CanonicalName(frame.Description)
				if name == "" {
					continue
				}
				tags[name] = append(tags[name], splitValues(frame.Value)...)
			case id3v2.TextFrame:
				name := id
				if mapped, ok := frameNames[id]; ok {
					name = mapped
				}
				tags[name] = append(tags[name], splitValues(frame.Text)...)
			case id3v2.CommentFrame:
				tags[model.TagComment] = append(tags[model.TagComment], frame.Text)
			}
		}
	}

	return tags
}

// textFrameID returns the text frame that stores name, or "" when name
// goes into a user-defined TXXX frame.
func textFrameID(name string) string {
	if id, ok := frameIDs[name]; ok {
		return id
	}
	if name != userTextFrame && rawTextFrame.MatchString(name) {
		return name
	}
	return ""
}

func (f *mp3File) Set(name string, values []string) {
	name = model.CanonicalName(name)
	f.Delete(name)

	value := strings.Join(values, "\x00")
	if name == model.TagComment {
		f.tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "eng",
			Text:     strings.Join(values, "\n"),
		})
		return
	}
	if id := textFrameID(name); id != "" {
		f.tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
		return
	}
	f.tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: name,
		Value:       value,
	})
}

func (f *mp3File) Delete(name string) {
	name = model.CanonicalName(name)

	switch {
	case name == model.TagComment:
		f.tag.DeleteFrames(commentFrame)
	case textFrameID(name) != "":
		f.tag.DeleteFrames(textFrameID(name))
	}

	// A TXXX frame with the same description reads back as the same tag.
	kept := f.tag.GetFrames(userTextFrame)
	f.tag.DeleteFrames(userTextFrame)
	for _, framer := range kept {
		frame, ok := framer.(id3v2.UserDefinedTextFrame)
		if ok && model.CanonicalName(frame.Description) == name {
			continue
		}
		f.tag.AddFrame(userTextFrame, framer)
	}
}

func (f *mp3File) DeleteAll() {
	f.tag.DeleteAllFrames()
}

func (f *mp3File) SetCover(data []byte, mime string) error {
	f.tag.DeleteFrames(f.tag.CommonID("Attached picture"))
	f.tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mime,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     data,
	})
	return nil
}

// Save writes the tag as ID3v2.4, the only version that allows UTF-8 text.
func (f *mp3File) Save() error {
	f.tag.SetVersion(4)
	return f.tag.Save()
}

func (f *mp3File) Close() error {
	return f.tag.Close()
}

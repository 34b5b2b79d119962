package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/handiism/tagcat/internal/model"
)

// Format identifies the container of an audio file.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatFLAC
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatFLAC:
		return "flac"
	default:
		return "unknown"
	}
}

// ErrUnsupported is returned for files that are neither MP3 nor FLAC.
var ErrUnsupported = errors.New("unsupported audio format")

// Handle is an open tag block. Mutations stay in memory until Save.
type Handle interface {
	Path() string
	Format() Format

	// Tags returns a fresh copy of the tag block.
	Tags() model.TagMapping

	// Set replaces every value of name.
	Set(name string, values []string)
	Delete(name string)
	DeleteAll()

	// SetCover replaces the embedded front cover.
	SetCover(data []byte, mime string) error

	Save() error
	Close() error
}

// ReadError wraps a failure to open or parse a file's tag block.
// It matches model.ErrCodecRead.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: cannot read tags: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool { return target == model.ErrCodecRead }

// DetectFormat sniffs the file header. Files without a recognizable
// header (an MP3 with no ID3 tag yet, for example) are classified by
// extension.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	_, fileType, err := tag.Identify(f)
	if err == nil {
		switch fileType {
		case tag.MP3:
			return FormatMP3, nil
		case tag.FLAC:
			return FormatFLAC, nil
		case tag.UnknownFileType:
		default:
			return FormatUnknown, fmt.Errorf("%w: %s", ErrUnsupported, fileType)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return FormatMP3, nil
	case ".flac":
		return FormatFLAC, nil
	}
	return FormatUnknown, ErrUnsupported
}

// Open opens the tag block of the file at path.
func Open(path string) (Handle, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatMP3:
		return openMP3(path)
	case FormatFLAC:
		return openFLAC(path)
	}
	return nil, ErrUnsupported
}

// ReadTags returns the tags of the file at path. A file whose tags cannot
// be read yields an empty mapping and a *ReadError, so callers can fold
// the mapping and report the error separately.
func ReadTags(path string) (model.TagMapping, error) {
	h, err := Open(path)
	if err != nil {
		return model.TagMapping{}, &ReadError{Path: path, Err: err}
	}
	defer h.Close()

	return h.Tags(), nil
}

// splitValues splits a null-separated multi-value string.
func splitValues(s string) []string {
	return strings.Split(strings.TrimRight(s, "\x00"), "\x00")
}

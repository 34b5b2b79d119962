package model

import (
	"path/filepath"
	"strings"

	"github.com/handiism/tagcat/internal/normalize"
)

// DerivedPath is the canonical location of an audio file inside a music
// root, computed from the file's tags.
//
// Layout:
//
//	<Root>/<albumartist>/<album>[/<disc>]/<track>-<artist>-<title><ext>
type DerivedPath struct {
	// Root is the configured music root directory.
	Root string

	// Components are the directory segments below Root: normalized album
	// artist, normalized album and, when present, the raw disc number.
	Components []string

	// Filename is "<track>-<artist>-<title>" plus the source extension.
	Filename string
}

// Dir returns the destination directory.
func (p DerivedPath) Dir() string {
	return filepath.Join(append([]string{p.Root}, p.Components...)...)
}

// Path returns the full destination file path.
func (p DerivedPath) Path() string {
	return filepath.Join(p.Dir(), p.Filename)
}

// String implements fmt.Stringer.
func (p DerivedPath) String() string {
	return p.Path()
}

// DerivePath computes where file belongs under root according to its tags.
//
// TRACKNUMBER and DISCNUMBER are structural and used as they are, except
// that an "N/M" value keeps only N. ARTIST, TITLE, ALBUMARTIST and ALBUM are
// passed through normalize.PathToken. DISCNUMBER is optional; without it the
// disc directory is left out. The extension of file is kept verbatim.
//
// A *MissingTagsError is returned when a core tag is absent or when a
// mandatory field turns into an empty segment. DerivePath performs no I/O.
//
// Example:
//
//	tags := TagMapping{
//	    "ARTIST": {"Björk"}, "ALBUMARTIST": {"Björk"}, "ALBUM": {"Homogenic"},
//	    "TITLE": {"Jóga"}, "TRACKNUMBER": {"2"}, "DISCNUMBER": {"1"},
//	}
//	p, _ := DerivePath("/in/joga.FLAC", tags, "/music")
//	// p.Path() == "/music/bjoerk/homogenic/1/2-bjoerk-joga.FLAC"
func DerivePath(file string, tags TagMapping, root string) (DerivedPath, error) {
	if missing := MissingCoreTags(tags); len(missing) > 0 {
		return DerivedPath{}, &MissingTagsError{Path: file, Missing: missing}
	}

	track := structuralValue(tags.First(TagTrackNumber))
	disc := structuralValue(tags.First(TagDiscNumber))
	artist := segment(tags.First(TagArtist))
	title := segment(tags.First(TagTitle))
	albumArtist := segment(tags.First(TagAlbumArtist))
	album := segment(tags.First(TagAlbum))

	var empty []string
	for _, f := range []struct {
		name, value string
	}{
		{TagArtist, artist},
		{TagAlbumArtist, albumArtist},
		{TagAlbum, album},
		{TagTitle, title},
		{TagTrackNumber, track},
	} {
		if f.value == "" {
			empty = append(empty, f.name)
		}
	}
	if len(empty) > 0 {
		return DerivedPath{}, &MissingTagsError{Path: file, Empty: empty}
	}

	components := []string{albumArtist, album}
	if disc != "" {
		components = append(components, disc)
	}

	return DerivedPath{
		Root:       root,
		Components: components,
		Filename:   track + "-" + artist + "-" + title + filepath.Ext(file),
	}, nil
}

// segment normalizes a display value into a path token. A token made only
// of dots would name the current or parent directory and counts as empty.
func segment(raw string) string {
	tok := normalize.PathToken(raw)
	if strings.Trim(tok, ".") == "" {
		return ""
	}
	return tok
}

// structuralValue trims a track or disc number and drops a "/total" suffix.
// Values that would escape their directory ("." and "..", backslashes)
// come back empty.
func structuralValue(raw string) string {
	v := strings.TrimSpace(raw)
	if i := strings.IndexByte(v, '/'); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	if v == "." || v == ".." || strings.ContainsAny(v, "\\\x00") {
		return ""
	}
	return v
}

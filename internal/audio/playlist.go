package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PlaylistFormat represents supported playlist file formats.
//
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for artist/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// ParsePlaylistFormat maps a configuration value ("m3u", "pls") onto a
// PlaylistFormat.
func ParsePlaylistFormat(s string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "m3u":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	}
	return FormatM3U, fmt.Errorf("unknown playlist format %q", s)
}

// Extension returns the file extension, dot included.
func (f PlaylistFormat) Extension() string {
	if f == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// PlaylistEntry is one relocated file.
type PlaylistEntry struct {
	Path   string
	Artist string
	Title  string
}

// PlaylistCreator generates playlist files in various formats.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
//	os.WriteFile(filepath.Join(dir, "playlist.m3u"), []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Song Title
//	// 01-artist-song_title.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator. extended is ignored
// for formats other than M3U.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the playlist format.
func (p *PlaylistCreator) Format() PlaylistFormat { return p.format }

// CreatePlaylist generates playlist content. Entry paths are written as
// base names: the playlist lives next to the files it lists.
func (p *PlaylistCreator) CreatePlaylist(entries []PlaylistEntry) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	default:
		return p.createM3U(entries)
	}
}

// createM3U generates an M3U playlist. Track lengths are unknown, so
// EXTINF durations are -1.
func (p *PlaylistCreator) createM3U(entries []PlaylistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", displayName(e)))
		}
		sb.WriteString(filepath.Base(e.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Artist - Song Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []PlaylistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(e.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, displayName(e)))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

func displayName(e PlaylistEntry) string {
	switch {
	case e.Artist == "":
		return e.Title
	case e.Title == "":
		return e.Artist
	}
	return e.Artist + " - " + e.Title
}

// Package audio reads and writes the tag blocks of supported audio files
// and writes playlists for relocated files.
//
// # Tag codec
//
// Open returns a Handle for an MP3 (ID3v2, via github.com/bogem/id3v2) or
// FLAC (vorbis comments, via github.com/go-flac) file. The format is sniffed
// from the file header and falls back to the extension:
//
//	h, err := audio.Open("/music/track.flac")
//	if err != nil {
//		return err
//	}
//	defer h.Close()
//	h.Set(model.TagArtist, []string{"Artist"})
//	err = h.Save()
//
// Tag names are exposed upper-case; ID3 frames with a well-known meaning
// map onto the vorbis-style names (TPE1 is ARTIST, TALB is ALBUM and so on).
//
// ReadTags is the lenient entry point used by aggregation: an unreadable
// file yields an empty mapping together with a *ReadError.
//
// # Playlists
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
package audio

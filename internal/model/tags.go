package model

import (
	"slices"
	"sort"
	"strings"
)

// Tag names used by the core. Names are stored upper-case.
const (
	TagArtist        = "ARTIST"
	TagAlbumArtist   = "ALBUMARTIST"
	TagAlbum         = "ALBUM"
	TagTitle         = "TITLE"
	TagTrackNumber   = "TRACKNUMBER"
	TagDiscNumber    = "DISCNUMBER"
	TagBPM           = "BPM"
	TagCatalogNumber = "CATALOGNUMBER"
	TagPublisher     = "PUBLISHER"
	TagLabel         = "LABEL"
	TagGenre         = "GENRE"
	TagStyle         = "STYLE"
	TagComment       = "COMMENT"
)

// Conflict is the single value stored for a tag whose value differs
// across an aggregated file set.
const Conflict = "~"

// CoreTags are the tags a file must carry before a path can be derived.
var CoreTags = []string{
	TagArtist,
	TagAlbumArtist,
	TagAlbum,
	TagTitle,
	TagTrackNumber,
}

// CleanupTags are the tags that survive a cleanup pass by default.
var CleanupTags = []string{
	TagArtist,
	TagAlbumArtist,
	TagAlbum,
	TagDiscNumber,
	TagTrackNumber,
	TagTitle,
	TagBPM,
	TagCatalogNumber,
	TagPublisher,
	TagLabel,
}

// TagMapping maps a tag name to its values. Tags are multi-valued; most
// carry exactly one value.
//
// Keys are expected in canonical (upper-case) form. Use Set or
// NewTagMapping to get that for free.
type TagMapping map[string][]string

// CanonicalName returns the stored form of a tag name.
func CanonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NewTagMapping builds a mapping from raw pairs, canonicalizing names.
// Values for names that collide after canonicalization are concatenated.
func NewTagMapping(raw map[string][]string) TagMapping {
	m := make(TagMapping, len(raw))
	for name, values := range raw {
		key := CanonicalName(name)
		m[key] = append(m[key], values...)
	}
	return m
}

// Set stores a copy of values under the canonical form of name.
func (m TagMapping) Set(name string, values ...string) {
	m[CanonicalName(name)] = slices.Clone(values)
}

// Get returns the values stored under name.
func (m TagMapping) Get(name string) ([]string, bool) {
	values, ok := m[CanonicalName(name)]
	return values, ok
}

// Has reports whether name is present, regardless of its values.
func (m TagMapping) Has(name string) bool {
	_, ok := m[CanonicalName(name)]
	return ok
}

// First returns the first value stored under name, or "".
func (m TagMapping) First(name string) string {
	values, ok := m.Get(name)
	if !ok || len(values) == 0 {
		return ""
	}
	return values[0]
}

// IsConflict reports whether name holds the conflict marker.
func (m TagMapping) IsConflict(name string) bool {
	values, ok := m.Get(name)
	return ok && len(values) == 1 && values[0] == Conflict
}

// Names returns the tag names in sorted order.
func (m TagMapping) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy.
func (m TagMapping) Clone() TagMapping {
	c := make(TagMapping, len(m))
	for name, values := range m {
		c[name] = slices.Clone(values)
	}
	return c
}

// HasCoreTags reports whether every core tag is present as a key.
// Only presence is checked; empty values pass.
func HasCoreTags(tags TagMapping) bool {
	return len(MissingCoreTags(tags)) == 0
}

// MissingCoreTags returns the absent core tags in CoreTags order.
func MissingCoreTags(tags TagMapping) []string {
	var missing []string
	for _, name := range CoreTags {
		if !tags.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

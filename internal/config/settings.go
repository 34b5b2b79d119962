package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/kelseyhightower/envconfig"

	"github.com/handiism/tagcat/internal/audio"
	"github.com/handiism/tagcat/internal/model"
	"github.com/handiism/tagcat/internal/normalize"
)

// EnvPrefix prefixes every environment override, e.g. TAGCAT_MUSIC_ROOT.
const EnvPrefix = "tagcat"

// Settings holds all configuration options.
type Settings struct {
	// Library layout
	MusicRoot          string `json:"music_root" envconfig:"MUSIC_ROOT"`
	MaxConcurrentReads int    `json:"max_concurrent_reads" envconfig:"MAX_CONCURRENT_READS"`

	// Cleanup settings
	CleanupTags             []string `json:"cleanup_tags" envconfig:"CLEANUP_TAGS"`
	CleanupStripParentheses bool     `json:"cleanup_strip_parentheses" envconfig:"CLEANUP_STRIP_PARENTHESES"`
	CleanupTransliterate    bool     `json:"cleanup_transliterate" envconfig:"CLEANUP_TRANSLITERATE"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist" envconfig:"CREATE_PLAYLIST"`
	PlaylistFormat string `json:"playlist_format" envconfig:"PLAYLIST_FORMAT"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended" envconfig:"M3U_EXTENDED"`

	// Cover art settings
	CoverArtMaxSize      int  `json:"cover_art_max_size" envconfig:"COVER_ART_MAX_SIZE"`
	ConvertCoverArtToJPG bool `json:"convert_cover_art_to_jpg" envconfig:"CONVERT_COVER_ART_TO_JPG"`

	LogLevel string `json:"log_level" envconfig:"LOG_LEVEL"`
}

// DefaultPath returns $XDG_CONFIG_HOME/tagcat/config.json.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "tagcat", "config.json")
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	root := xdg.UserDirs.Music
	if root == "" {
		homeDir, _ := os.UserHomeDir()
		root = filepath.Join(homeDir, "Music")
	}

	return &Settings{
		MusicRoot:          root,
		MaxConcurrentReads: 8,

		CleanupTags:             slices.Clone(model.CleanupTags),
		CleanupStripParentheses: false,
		CleanupTransliterate:    false,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		CoverArtMaxSize:      1000,
		ConvertCoverArtToJPG: true,

		LogLevel: "info",
	}
}

// Load reads settings from a JSON file and applies TAGCAT_* environment
// overrides on top. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, settings); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate rejects values no component can work with.
func (s *Settings) Validate() error {
	if s.MaxConcurrentReads < 1 {
		return fmt.Errorf("max_concurrent_reads must be positive, got %d", s.MaxConcurrentReads)
	}
	if s.CoverArtMaxSize < 0 {
		return fmt.Errorf("cover_art_max_size must not be negative, got %d", s.CoverArtMaxSize)
	}
	if _, err := audio.ParsePlaylistFormat(s.PlaylistFormat); err != nil {
		return err
	}
	return nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CleanOptions converts the cleanup switches for normalize.CleanValue.
func (s *Settings) CleanOptions() normalize.CleanOptions {
	return normalize.CleanOptions{
		Transliterate:    s.CleanupTransliterate,
		StripParentheses: s.CleanupStripParentheses,
	}
}

// PlaylistCreator builds the playlist writer for the configured format.
// Validate has already rejected unknown formats.
func (s *Settings) PlaylistCreator() *audio.PlaylistCreator {
	format, _ := audio.ParsePlaylistFormat(s.PlaylistFormat)
	return audio.NewPlaylistCreator(format, s.M3UExtended)
}

// Package config provides configuration management for tagcat.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values (XDG paths via github.com/adrg/xdg)
//   - TAGCAT_* environment overrides
//   - Conversion to the option types of other packages
//
// # Loading
//
//	settings, err := config.Load(config.DefaultPath())
//	// Missing file: defaults. Environment overrides always apply:
//	//   TAGCAT_MUSIC_ROOT=/srv/music tagcat rename ...
//
// # Saving Settings
//
//	settings.MusicRoot = "/srv/music"
//	err := settings.Save(config.DefaultPath())
package config

// Package ioutils provides the file system side of tagcat.
//
// This package contains functions for:
//   - Discovering audio files from command line paths
//   - Relocating a file to its derived path without overwriting anything
//   - Exclusive file copies and directory creation
//   - Cover art resizing and JPEG conversion
//
// # Discovery
//
//	files, err := ioutils.Discover([]string{"~/Downloads/album"}, true, ioutils.IsAudio)
//
// # Relocation
//
//	err := ioutils.Relocate("/in/track.mp3", "/music/artist/album/1/01-artist-title.mp3")
//	if errors.Is(err, model.ErrDestinationExists) {
//	    // the destination was left untouched
//	}
//
// Relocation is a rename within one volume. Across volumes it falls back
// to copy-then-delete, which is not atomic: an interruption can leave the
// copy and the source side by side.
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.ResizeImage(ctx, imageData, 1000, 1000)
package ioutils

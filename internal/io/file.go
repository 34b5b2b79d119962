package ioutils

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/handiism/tagcat/internal/model"
)

// ErrAlreadyInPlace reports a relocation whose source already is the
// destination.
var ErrAlreadyInPlace = errors.New("file already in place")

// FilesystemError describes an OS level failure during relocation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, model.ErrFilesystem) succeed.
func (e *FilesystemError) Is(target error) bool {
	return target == model.ErrFilesystem
}

// CollisionError reports a destination that already exists.
type CollisionError struct {
	Source      string
	Destination string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("cannot move %s: %s already exists", e.Source, e.Destination)
}

// Is makes errors.Is(err, model.ErrDestinationExists) succeed.
func (e *CollisionError) Is(target error) bool {
	return target == model.ErrDestinationExists
}

// CopyFile copies src to a new file at dst.
//
// Unlike a plain copy, dst must not exist: it is created with O_EXCL so a
// file that appears concurrently is never truncated. The source mode is
// kept. A partially written dst is removed on failure.
//
// Example:
//
//	err := CopyFile("/mnt/usb/track.mp3", "/music/a/b/01-a-t.mp3")
func CopyFile(src, dst string) (err error) {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := destFile.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	_, err = io.Copy(destFile, sourceFile)
	return err
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	playlistContent := []byte("#EXTM3U\n...")
//	err := WriteFile("/music/artist/album/album.m3u", playlistContent)
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/music/artist/album/1")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Exists reports whether anything, including a dangling symlink, occupies path.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

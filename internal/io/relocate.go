package ioutils

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
)

// Relocate moves src to dst, creating missing parent directories.
//
// The steps are:
//  1. If anything exists at dst, stop without touching either file. When
//     dst is src itself ErrAlreadyInPlace is returned, otherwise a
//     *CollisionError.
//  2. Create the parent directories of dst that do not exist yet.
//  3. Rename src to dst. When they live on different volumes the file is
//     copied with an exclusive create and the source is removed afterwards.
//
// OS failures are returned as *FilesystemError. Nothing is retried and
// nothing is rolled back: directories created in step 2 stay in place.
//
// The existence check and the rename are separate system calls, so callers
// must not relocate into the same tree from several goroutines.
func Relocate(src, dst string) error {
	if taken, err := occupied(src, dst); err != nil {
		return err
	} else if taken {
		return &CollisionError{Source: src, Destination: dst}
	}

	dir := filepath.Dir(dst)
	if err := EnsureDir(dir); err != nil {
		return &FilesystemError{Op: "mkdir", Path: dir, Err: err}
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return &FilesystemError{Op: "rename", Path: src, Err: err}
	}
	return moveAcrossVolumes(src, dst)
}

// occupied reports whether dst is taken by a file other than src.
func occupied(src, dst string) (bool, error) {
	dstInfo, err := os.Lstat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &FilesystemError{Op: "stat", Path: dst, Err: err}
	}

	// dst is taken; src only matters for recognizing a move onto itself.
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return true, nil
	}
	if os.SameFile(srcInfo, dstInfo) {
		return false, ErrAlreadyInPlace
	}
	return true, nil
}

func moveAcrossVolumes(src, dst string) error {
	if err := CopyFile(src, dst); err != nil {
		if os.IsExist(err) {
			return &CollisionError{Source: src, Destination: dst}
		}
		return &FilesystemError{Op: "copy", Path: src, Err: err}
	}
	if err := os.Remove(src); err != nil {
		return &FilesystemError{Op: "remove", Path: src, Err: err}
	}
	return nil
}

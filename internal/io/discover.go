package ioutils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/handiism/tagcat/internal/model"
)

// audioExtensions lists the accepted extensions. Matching is exact: ".Mp3"
// is not an audio file.
var audioExtensions = []string{".mp3", ".MP3", ".flac", ".FLAC"}

// IsAudio reports whether path is a regular, non-symlink file with an audio
// extension.
func IsAudio(path string) bool {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return slices.Contains(audioExtensions, filepath.Ext(path))
}

// Discover returns the absolute paths of the entries in paths that pass keep.
//
// Entries are processed as a work list in order. With recursive set, a
// directory entry is replaced by every file below it: those files are
// appended to the end of the list and tested later in the same pass.
// Without recursive, a directory is tested like any other entry (and
// normally rejected by keep). Each file is returned once, in visit order.
//
// An empty paths list or a nil keep is rejected with model.ErrInvalidArgument
// before anything is read. Unreadable directories below a root are skipped.
//
// Example:
//
//	files, err := Discover([]string{"a.mp3", "albums/"}, true, IsAudio)
func Discover(paths []string, recursive bool, keep func(string) bool) ([]string, error) {
	if keep == nil {
		return nil, fmt.Errorf("%w: file predicate is nil", model.ErrInvalidArgument)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", model.ErrInvalidArgument)
	}

	work := slices.Clone(paths)
	seen := make(map[string]struct{})
	var found []string

	for i := 0; i < len(work); i++ {
		entry := work[i]

		if recursive && isDir(entry) {
			work = append(work, walkFiles(entry)...)
			continue
		}

		if !keep(entry) {
			continue
		}

		abs, err := filepath.Abs(entry)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		found = append(found, abs)
	}

	return found, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// walkFiles lists every non-directory entry below root in lexical order.
// Symlinked directories are not followed.
func walkFiles(root string) []string {
	var files []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files
}

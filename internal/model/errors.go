package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrInvalidArgument reports malformed input rejected before any work.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCodecRead reports a file whose tags could not be decoded.
	ErrCodecRead = errors.New("cannot read tags")

	// ErrMissingTags reports a file lacking core tags needed for a path.
	ErrMissingTags = errors.New("missing core tags")

	// ErrDestinationExists reports a relocation target that is already taken.
	ErrDestinationExists = errors.New("destination exists")

	// ErrFilesystem reports an OS level failure while creating or moving files.
	ErrFilesystem = errors.New("filesystem error")
)

// MissingTagsError lists the core tags that prevent a path from being derived.
//
// Missing holds names absent from the mapping. Empty holds names that are
// present but whose value normalizes to nothing.
type MissingTagsError struct {
	Path    string
	Missing []string
	Empty   []string
}

func (e *MissingTagsError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Empty) > 0 {
		parts = append(parts, "empty "+strings.Join(e.Empty, ", "))
	}
	return fmt.Sprintf("%s: core tags %s", e.Path, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrMissingTags) succeed.
func (e *MissingTagsError) Is(target error) bool {
	return target == ErrMissingTags
}

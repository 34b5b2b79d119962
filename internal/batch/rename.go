package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/handiism/tagcat/internal/audio"
	ioutils "github.com/handiism/tagcat/internal/io"
	"github.com/handiism/tagcat/internal/model"
)

// Move is one planned relocation.
type Move struct {
	Source      string
	Destination model.DerivedPath
	Tags        model.TagMapping
}

// Plan is the outcome of PlanRename: the moves to perform and the results
// of files that were rejected or need no move.
type Plan struct {
	Moves   []Move
	Summary *Summary
}

// PlanRename reads every file, checks its core tags and derives its
// destination under root. Destinations that already exist, or that an
// earlier file of the same plan claimed, fail with *ioutils.CollisionError.
// Nothing on disk changes.
func (r *Runner) PlanRename(ctx context.Context, files []string, root string) (*Plan, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty music root", model.ErrInvalidArgument)
	}

	read, summary, err := r.ReadEach(ctx, files)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Summary: &Summary{}}
	claimed := make(map[string]bool)
	for i, ft := range read {
		if res := summary.Results[i]; res.Status == StatusFailed {
			plan.Summary.add(res)
			continue
		}

		if !model.HasCoreTags(ft.Tags) {
			err := &model.MissingTagsError{Path: ft.Path, Missing: model.MissingCoreTags(ft.Tags)}
			r.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
			plan.Summary.fail(ft.Path, "", err)
			continue
		}

		dst, err := model.DerivePath(ft.Path, ft.Tags, root)
		if err != nil {
			r.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
			plan.Summary.fail(ft.Path, "", err)
			continue
		}

		if filepath.Clean(ft.Path) == filepath.Clean(dst.Path()) {
			plan.Summary.skip(ft.Path, dst.Path(), ioutils.ErrAlreadyInPlace)
			continue
		}

		if err := claim(claimed, ft.Path, dst.Path()); err != nil {
			r.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
			plan.Summary.fail(ft.Path, dst.Path(), err)
			continue
		}

		plan.Moves = append(plan.Moves, Move{Source: ft.Path, Destination: dst, Tags: ft.Tags})
	}

	return plan, nil
}

// claim reserves dst for src. A destination that exists on disk or was
// already claimed by an earlier file of the plan is a collision. Relocate
// checks again when the move happens.
func claim(claimed map[string]bool, src, dst string) error {
	key := filepath.Clean(dst)
	if claimed[key] {
		return &ioutils.CollisionError{Source: src, Destination: dst}
	}
	taken, err := ioutils.Exists(dst)
	if err != nil {
		return &ioutils.FilesystemError{Op: "stat", Path: dst, Err: err}
	}
	if taken {
		return &ioutils.CollisionError{Source: src, Destination: dst}
	}
	claimed[key] = true
	return nil
}

// ApplyRename relocates the planned files one after another, in plan
// order. A collision or filesystem failure fails that file only. The
// returned summary starts with the results already recorded in the plan.
func (r *Runner) ApplyRename(ctx context.Context, plan *Plan) (*Summary, error) {
	summary := &Summary{Results: append([]Result(nil), plan.Summary.Results...)}
	r.begin(len(plan.Moves))

	var moved []Move
	for _, m := range plan.Moves {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		dst := m.Destination.Path()
		log := r.log.WithField("file", m.Source).WithField("destination", dst)

		err := ioutils.Relocate(m.Source, dst)
		switch {
		case errors.Is(err, ioutils.ErrAlreadyInPlace):
			log.Debug("already in place")
			summary.skip(m.Source, dst, err)
		case err != nil:
			log.WithError(err).Debug("relocate failed")
			r.progress(ProgressEvent{Message: fmt.Sprintf("Error moving %s: %v", filepath.Base(m.Source), err), Level: LevelError})
			summary.fail(m.Source, dst, err)
		default:
			log.Debug("relocated")
			r.progress(ProgressEvent{Message: fmt.Sprintf("Moved: %s -> %s", m.Source, dst), Level: LevelVerbose})
			summary.ok(m.Source, dst)
			moved = append(moved, m)
		}
		r.step()
	}

	if r.settings.CreatePlaylist {
		r.writePlaylists(moved)
	}

	return summary, nil
}

// Rename plans and applies in one go. With dryRun the plan is reported
// and nothing is moved.
func (r *Runner) Rename(ctx context.Context, files []string, root string, dryRun bool) (*Summary, error) {
	plan, err := r.PlanRename(ctx, files, root)
	if err != nil {
		return nil, err
	}

	if !dryRun {
		return r.ApplyRename(ctx, plan)
	}

	summary := &Summary{Results: append([]Result(nil), plan.Summary.Results...)}
	for _, m := range plan.Moves {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Would move: %s -> %s", m.Source, m.Destination.Path()), Level: LevelInfo})
		summary.ok(m.Source, m.Destination.Path())
	}
	return summary, nil
}

// writePlaylists writes one playlist per destination directory, named
// after the album token. An existing playlist is replaced.
func (r *Runner) writePlaylists(moved []Move) {
	var dirs []string
	byDir := make(map[string][]Move)
	for _, m := range moved {
		dir := m.Destination.Dir()
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], m)
	}

	for _, dir := range dirs {
		moves := byDir[dir]
		entries := make([]audio.PlaylistEntry, len(moves))
		for i, m := range moves {
			entries[i] = audio.PlaylistEntry{
				Path:   m.Destination.Path(),
				Artist: m.Tags.First(model.TagArtist),
				Title:  m.Tags.First(model.TagTitle),
			}
		}

		name := playlistName(moves[0].Destination) + r.playlist.Format().Extension()
		path := filepath.Join(dir, name)
		if err := ioutils.WriteFile(path, []byte(r.playlist.CreatePlaylist(entries))); err != nil {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
			continue
		}
		r.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", path), Level: LevelSuccess})
	}
}

// playlistName is the album component of a derived path.
func playlistName(p model.DerivedPath) string {
	if len(p.Components) > 1 {
		return p.Components[1]
	}
	return "playlist"
}

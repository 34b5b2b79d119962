package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/handiism/tagcat/internal/audio"
	"github.com/handiism/tagcat/internal/model"
	"github.com/handiism/tagcat/internal/normalize"
)

// Cover is cover art ready to embed.
type Cover struct {
	Data []byte
	MIME string
}

// LoadCover reads an image file and bounds it to Settings.CoverArtMaxSize,
// converting to JPEG when Settings.ConvertCoverArtToJPG is set.
func (r *Runner) LoadCover(ctx context.Context, path string) (*Cover, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cover: %w", err)
	}

	data, mime, err := r.imageService.PrepareCover(ctx, data, r.settings.CoverArtMaxSize, r.settings.ConvertCoverArtToJPG)
	if err != nil {
		return nil, fmt.Errorf("prepare cover %s: %w", path, err)
	}
	return &Cover{Data: data, MIME: mime}, nil
}

// editFunc mutates an open handle and reports whether it changed
// anything worth saving.
type editFunc func(h audio.Handle) (bool, error)

// Write replaces the given tags on every file and optionally embeds a
// cover. Each file is saved once.
func (r *Runner) Write(ctx context.Context, files []string, tags model.TagMapping, cover *Cover) (*Summary, error) {
	names := tags.Names()
	return r.each(ctx, files, "write", func(h audio.Handle) (bool, error) {
		for _, name := range names {
			h.Set(name, tags[name])
		}
		if cover != nil {
			if err := h.SetCover(cover.Data, cover.MIME); err != nil {
				return false, err
			}
		}
		return len(names) > 0 || cover != nil, nil
	})
}

// Delete removes the named tags. Files carrying none of them are skipped.
func (r *Runner) Delete(ctx context.Context, files []string, names []string) (*Summary, error) {
	return r.each(ctx, files, "delete", func(h audio.Handle) (bool, error) {
		current := h.Tags()
		changed := false
		for _, name := range names {
			if current.Has(name) {
				h.Delete(name)
				changed = true
			}
		}
		return changed, nil
	})
}

// Wipeout removes every tag, embedded pictures included.
func (r *Runner) Wipeout(ctx context.Context, files []string) (*Summary, error) {
	return r.each(ctx, files, "wipeout", func(h audio.Handle) (bool, error) {
		h.DeleteAll()
		return true, nil
	})
}

// Clear deletes every tag outside Settings.CleanupTags, keeps only the
// first value of the rest and cleans that value with normalize.CleanValue.
func (r *Runner) Clear(ctx context.Context, files []string) (*Summary, error) {
	keep := make(map[string]bool, len(r.settings.CleanupTags))
	for _, name := range r.settings.CleanupTags {
		keep[model.CanonicalName(name)] = true
	}
	opts := r.settings.CleanOptions()

	return r.each(ctx, files, "clear", func(h audio.Handle) (bool, error) {
		current := h.Tags()
		changed := false
		for _, name := range current.Names() {
			if !keep[name] {
				h.Delete(name)
				changed = true
				continue
			}
			cleaned := []string{normalize.CleanValue(current.First(name), opts)}
			if !slices.Equal(cleaned, current[name]) {
				h.Set(name, cleaned)
				changed = true
			}
		}
		return changed, nil
	})
}

// each opens, edits and saves files one after another.
func (r *Runner) each(ctx context.Context, files []string, verb string, edit editFunc) (*Summary, error) {
	if err := validatePaths(files); err != nil {
		return nil, err
	}
	r.begin(len(files))

	summary := &Summary{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		log := r.log.WithField("file", file).WithField("op", verb)
		changed, err := r.editFile(file, edit)
		switch {
		case err != nil:
			log.WithError(err).Debug("edit failed")
			r.progress(ProgressEvent{Message: fmt.Sprintf("Error (%s) %s: %v", verb, filepath.Base(file), err), Level: LevelError})
			summary.fail(file, "", err)
		case !changed:
			log.Debug("nothing to change")
			r.progress(ProgressEvent{Message: fmt.Sprintf("Unchanged: %s", filepath.Base(file)), Level: LevelVerbose})
			summary.skip(file, "", nil)
		default:
			log.Debug("saved")
			r.progress(ProgressEvent{Message: fmt.Sprintf("Updated: %s", filepath.Base(file)), Level: LevelVerbose})
			summary.ok(file, "")
		}
		r.step()
	}

	return summary, nil
}

func (r *Runner) editFile(file string, edit editFunc) (bool, error) {
	h, err := audio.Open(file)
	if err != nil {
		return false, &audio.ReadError{Path: file, Err: err}
	}
	defer h.Close()

	changed, err := edit(h)
	if err != nil || !changed {
		return false, err
	}
	if err := h.Save(); err != nil {
		return false, fmt.Errorf("save %s: %w", file, err)
	}
	return true, nil
}

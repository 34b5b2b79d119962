package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/tagcat/internal/audio"
	"github.com/handiism/tagcat/internal/config"
	ioutils "github.com/handiism/tagcat/internal/io"
	"github.com/handiism/tagcat/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a batch progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// FileTags is the tag mapping read from one file.
type FileTags struct {
	Path string
	Tags model.TagMapping
}

// Runner coordinates batch operations. A Runner runs one batch at a time.
type Runner struct {
	settings     *config.Settings
	log          logrus.FieldLogger
	imageService *ioutils.ImageService
	playlist     *audio.PlaylistCreator

	totalFiles int32
	doneFiles  int32

	onProgress func(ProgressEvent)
}

// NewRunner creates a new Runner. onProgress may be nil.
func NewRunner(settings *config.Settings, log logrus.FieldLogger, onProgress func(ProgressEvent)) *Runner {
	return &Runner{
		settings:     settings,
		log:          log,
		imageService: ioutils.NewImageService(),
		playlist:     settings.PlaylistCreator(),
		onProgress:   onProgress,
	}
}

// GetProgress returns the processed and total file counts of the current
// batch.
func (r *Runner) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&r.doneFiles), atomic.LoadInt32(&r.totalFiles)
}

// Merge reads the tags of files and folds them into one mapping. Tags that
// differ between files, or are missing from some, hold model.Conflict.
//
// Unreadable files take part as empty mappings and are reported as failed
// in the summary.
func (r *Runner) Merge(ctx context.Context, files []string) (model.TagMapping, *Summary, error) {
	return r.merge(ctx, files, false)
}

// MergeCore is Merge restricted to files that carry every core tag. The
// other files are skipped with a *model.MissingTagsError.
func (r *Runner) MergeCore(ctx context.Context, files []string) (model.TagMapping, *Summary, error) {
	return r.merge(ctx, files, true)
}

func (r *Runner) merge(ctx context.Context, files []string, coreOnly bool) (model.TagMapping, *Summary, error) {
	read, summary, err := r.ReadEach(ctx, files)
	if err != nil {
		return nil, nil, err
	}

	mappings := make([]model.TagMapping, 0, len(read))
	for _, ft := range read {
		if coreOnly {
			if missing := model.MissingCoreTags(ft.Tags); len(missing) > 0 {
				r.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: missing %v", filepath.Base(ft.Path), missing), Level: LevelWarning})
				markSkipped(summary, ft.Path, &model.MissingTagsError{Path: ft.Path, Missing: missing})
				continue
			}
		}
		mappings = append(mappings, ft.Tags)
	}

	r.log.WithField("files", len(mappings)).Debug("aggregating tags")
	return model.Aggregate(mappings), summary, nil
}

// markSkipped turns the ok result of path into a skip.
func markSkipped(s *Summary, path string, err error) {
	for i := range s.Results {
		if s.Results[i].Path == path && s.Results[i].Status == StatusOK {
			s.Results[i].Status = StatusSkipped
			s.Results[i].Err = err
			return
		}
	}
}

// ReadEach reads the tags of every file concurrently, bounded by
// Settings.MaxConcurrentReads. The returned slice keeps input order;
// unreadable files get an empty mapping and a failed result.
func (r *Runner) ReadEach(ctx context.Context, files []string) ([]FileTags, *Summary, error) {
	if err := validatePaths(files); err != nil {
		return nil, nil, err
	}
	r.begin(len(files))

	read := make([]FileTags, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.settings.MaxConcurrentReads)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tags, err := audio.ReadTags(file)
			read[i] = FileTags{Path: file, Tags: tags}
			errs[i] = err
			r.step()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	summary := &Summary{}
	for i, file := range files {
		if errs[i] != nil {
			r.progress(ProgressEvent{Message: errs[i].Error(), Level: LevelWarning})
			summary.fail(file, "", errs[i])
			continue
		}
		r.log.WithField("file", file).WithField("tags", len(read[i].Tags)).Debug("read tags")
		summary.ok(file, "")
	}

	return read, summary, nil
}

func validatePaths(files []string) error {
	for i, f := range files {
		if f == "" {
			return fmt.Errorf("%w: empty path at index %d", model.ErrInvalidArgument, i)
		}
	}
	return nil
}

func (r *Runner) begin(total int) {
	atomic.StoreInt32(&r.totalFiles, int32(total))
	atomic.StoreInt32(&r.doneFiles, 0)
}

func (r *Runner) step() {
	atomic.AddInt32(&r.doneFiles, 1)
}

func (r *Runner) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/handiism/tagcat/internal/batch"
	"github.com/handiism/tagcat/internal/config"
	ioutils "github.com/handiism/tagcat/internal/io"
)

// errBatchFailed is returned when at least one file of a batch failed. The
// per-file errors have already been reported.
var errBatchFailed = errors.New("one or more files failed")

// app carries the global flags and what is built from them before a
// subcommand runs.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	verbose    bool
	recursive  bool

	settings *config.Settings
	log      *logrus.Logger
	styles   styles
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:        out,
		errOut:     errOut,
		configPath: config.DefaultPath(),
		styles:     newStyles(out),
	}
}

// setup loads the settings and configures logging. Flags win over the
// configuration file.
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.settings = settings

	a.log = logrus.New()
	a.log.SetOutput(a.errOut)
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	name := settings.LogLevel
	if cmd.Flags().Changed("log-level") {
		name = a.logLevel
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		level = logrus.InfoLevel
		a.log.Warnf("invalid log-level %s, set to %v", name, level)
	}
	if a.verbose {
		level = logrus.DebugLevel
	}
	a.log.SetLevel(level)

	return nil
}

func (a *app) runner() *batch.Runner {
	return batch.NewRunner(a.settings, a.log, a.report)
}

// report maps batch progress onto log levels.
func (a *app) report(event batch.ProgressEvent) {
	switch event.Level {
	case batch.LevelError:
		a.log.Error(event.Message)
	case batch.LevelWarning:
		a.log.Warn(event.Message)
	case batch.LevelVerbose:
		a.log.Debug(event.Message)
	default:
		a.log.Info(event.Message)
	}
}

// files expands the command line into the audio files to work on.
func (a *app) files(args []string) ([]string, error) {
	files, err := ioutils.Discover(args, a.recursive, ioutils.IsAudio)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no audio files found")
	}
	a.log.WithField("files", len(files)).Debug("discovered audio files")
	return files, nil
}

// finish prints the summary of a mutating batch.
func (a *app) finish(summary *batch.Summary, err error) error {
	if summary == nil {
		return err
	}
	a.styles.printSummary(a.out, summary, a.verbose)
	if err != nil {
		return err
	}
	if summary.Failed() {
		return errBatchFailed
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/handiism/tagcat/internal/config"
	ioutils "github.com/handiism/tagcat/internal/io"
	"github.com/handiism/tagcat/internal/tui"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		configPath = config.DefaultPath()
		root       string
		recursive  bool
	)

	cmd := &cobra.Command{
		Use:           "tagcat-tui FILE...",
		Short:         "Review and apply a tag-derived rename plan interactively",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if root != "" {
				settings.MusicRoot = root
			}

			log, closeLog := openLog(settings.LogLevel)
			defer closeLog()

			files, err := ioutils.Discover(args, recursive, ioutils.IsAudio)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no audio files found")
			}

			summary, err := tui.Run(settings, log, files, settings.MusicRoot)
			if err != nil {
				return err
			}
			if summary != nil && summary.Failed() {
				return fmt.Errorf("%s", summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", configPath, "path to config file")
	cmd.Flags().StringVar(&root, "root", "", "music root directory (overrides config)")
	cmd.Flags().BoolVarP(&recursive, "recursiv", "r", false, "descend into directories")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "alias of --recursiv")
	return cmd
}

// openLog sends log output to $XDG_STATE_HOME/tagcat/tui.log, since the
// terminal belongs to the UI. Logging is discarded when the file cannot be
// opened.
func openLog(levelName string) (*logrus.Logger, func()) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	if level, err := logrus.ParseLevel(levelName); err == nil {
		log.SetLevel(level)
	}

	path, err := xdg.StateFile("tagcat/tui.log")
	if err != nil {
		return log, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return log, func() {}
	}
	log.SetOutput(f)
	return log, func() { f.Close() }
}

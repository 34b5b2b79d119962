package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/handiism/tagcat/internal/batch"
	"github.com/handiism/tagcat/internal/model"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tagcat",
		Short: "Inspect, edit and file audio tags",
		Long: "tagcat reads the tags of MP3 and FLAC files, edits them in bulk and\n" +
			"moves files into a library layout derived from their tags:\n\n" +
			"  <root>/<albumartist>/<album>[/<disc>]/<track>-<artist>-<title>.<ext>",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.recursive, "recursiv", "r", false, "descend into directories")
	flags.StringVar(&a.configPath, "config", a.configPath, "path to config file")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "show per-file results and debug output")
	root.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "recursive" {
			name = "recursiv"
		}
		return pflag.NormalizedName(name)
	})

	root.AddCommand(
		newListCommand(a),
		newWriteCommand(a),
		newDeleteCommand(a),
		newWipeoutCommand(a),
		newClearCommand(a),
		newRenameCommand(a),
	)
	return root
}

func newListCommand(a *app) *cobra.Command {
	var each, coreOnly bool

	cmd := &cobra.Command{
		Use:     "list FILE...",
		Aliases: []string{"ls"},
		Short:   "Print the tags shared by all files",
		Long: "Print the tags of all files merged into one listing. A tag whose\n" +
			"value differs between files, or that only some files carry, is\n" +
			"shown as " + model.Conflict + ".",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.files(args)
			if err != nil {
				return err
			}
			runner := a.runner()

			if each {
				read, summary, err := runner.ReadEach(cmd.Context(), files)
				if err != nil {
					return err
				}
				for _, ft := range read {
					fmt.Fprintln(a.out, a.styles.header.Render(ft.Path))
					a.styles.printTags(a.out, ft.Tags)
					fmt.Fprintln(a.out)
				}
				return listResult(summary)
			}

			merge := runner.Merge
			if coreOnly {
				merge = runner.MergeCore
			}
			tags, summary, err := merge(cmd.Context(), files)
			if err != nil {
				return err
			}
			a.styles.printTags(a.out, tags)
			return listResult(summary)
		},
	}

	cmd.Flags().BoolVar(&each, "each", false, "print the tags of every file separately")
	cmd.Flags().BoolVar(&coreOnly, "core-only", false, "merge only files that carry every core tag")
	return cmd
}

// listResult turns unreadable files into a failing exit status. They were
// already reported as warnings.
func listResult(summary *batch.Summary) error {
	if summary.Failed() {
		return errBatchFailed
	}
	return nil
}

// writeFlags maps write flags onto tag names.
var writeFlags = []struct {
	flag, tag, usage string
}{
	{"artist", model.TagArtist, "track artist"},
	{"album-artist", model.TagAlbumArtist, "album artist"},
	{"album", model.TagAlbum, "album title"},
	{"title", model.TagTitle, "track title"},
	{"track", model.TagTrackNumber, "track number"},
	{"disc", model.TagDiscNumber, "disc number"},
	{"label", model.TagLabel, "record label"},
	{"publisher", model.TagPublisher, "publisher"},
	{"catalog", model.TagCatalogNumber, "catalog number"},
	{"bpm", model.TagBPM, "beats per minute"},
	{"genre", model.TagGenre, "genre"},
	{"style", model.TagStyle, "style"},
	{"comment", model.TagComment, "comment"},
}

func newWriteCommand(a *app) *cobra.Command {
	values := make(map[string]*[]string, len(writeFlags))
	var coverPath string

	cmd := &cobra.Command{
		Use:     "write FILE...",
		Aliases: []string{"wr"},
		Short:   "Set tags on all files",
		Long: "Set tags on all files. Only the given flags are written; a flag may be\n" +
			"repeated to store several values.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := model.TagMapping{}
			for _, f := range writeFlags {
				if cmd.Flags().Changed(f.flag) {
					tags.Set(f.tag, *values[f.flag]...)
				}
			}
			if len(tags) == 0 && coverPath == "" {
				return fmt.Errorf("nothing to write: pass at least one tag flag or --cover")
			}

			files, err := a.files(args)
			if err != nil {
				return err
			}
			runner := a.runner()

			var cover *batch.Cover
			if coverPath != "" {
				if cover, err = runner.LoadCover(cmd.Context(), coverPath); err != nil {
					return err
				}
			}

			return a.finish(runner.Write(cmd.Context(), files, tags, cover))
		},
	}

	for _, f := range writeFlags {
		values[f.flag] = cmd.Flags().StringArray(f.flag, nil, f.usage)
	}
	cmd.Flags().StringVar(&coverPath, "cover", "", "image file to embed as front cover")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:     "delete FILE... --tag NAME",
		Aliases: []string{"del"},
		Short:   "Remove the named tags from all files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(names) == 0 {
				return fmt.Errorf("no tags given: use --tag NAME")
			}
			files, err := a.files(args)
			if err != nil {
				return err
			}
			return a.finish(a.runner().Delete(cmd.Context(), files, names))
		},
	}

	cmd.Flags().StringArrayVarP(&names, "tag", "t", nil, "tag to remove (repeatable)")
	return cmd
}

func newWipeoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "wipeout FILE...",
		Aliases: []string{"wo"},
		Short:   "Remove every tag from all files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.files(args)
			if err != nil {
				return err
			}
			return a.finish(a.runner().Wipeout(cmd.Context(), files))
		},
	}
}

func newClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "clear FILE...",
		Aliases: []string{"cl"},
		Short:   "Reduce tags to the cleanup vocabulary and tidy their values",
		Long: "Delete every tag outside the configured cleanup tags, keep only the\n" +
			"first value of the others and tidy it (whitespace, optional\n" +
			"transliteration and parenthesis stripping).",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.files(args)
			if err != nil {
				return err
			}
			return a.finish(a.runner().Clear(cmd.Context(), files))
		},
	}
}

func newRenameCommand(a *app) *cobra.Command {
	var (
		root     string
		dryRun   bool
		playlist bool
	)

	cmd := &cobra.Command{
		Use:     "rename FILE...",
		Aliases: []string{"mv"},
		Short:   "Move files into the library layout derived from their tags",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if root != "" {
				a.settings.MusicRoot = root
			}
			if playlist {
				a.settings.CreatePlaylist = true
			}

			files, err := a.files(args)
			if err != nil {
				return err
			}
			return a.finish(a.runner().Rename(cmd.Context(), files, a.settings.MusicRoot, dryRun))
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "music root directory (overrides config)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the planned moves without touching files")
	cmd.Flags().BoolVar(&playlist, "playlist", false, "write a playlist into every destination directory")
	return cmd
}

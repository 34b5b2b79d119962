// Package batch runs tag operations over a list of files and reports
// per-file outcomes.
//
// # Runner
//
// The Runner drives every command of the CLI and the TUI:
//
//   - Merge / MergeCore: read tags concurrently, fold them into one mapping
//   - ReadEach: per-file mappings, in input order
//   - Write, Delete, Wipeout, Clear: one codec open and save per file
//   - PlanRename / ApplyRename / Rename: derive destinations, relocate
//     files sequentially, optionally write playlists
//
// # Basic Usage
//
//	runner := batch.NewRunner(settings, logger, func(event batch.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	tags, summary, err := runner.Merge(ctx, files)
//
// # Failures
//
// A failing file never stops a batch. Every file gets a Result in the
// returned Summary (ok, skipped or failed, with the error). Only context
// cancellation and invalid arguments are returned as errors; cancellation
// is checked between files.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns the number of processed and total files of the
// running batch.
package batch

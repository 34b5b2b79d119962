// Package model defines the tag data shared by every tagcat command and the
// pure operations on it.
//
// # Tag mappings
//
// A TagMapping holds the decoded tags of one file, keyed by upper-case name:
//
//	tags := model.TagMapping{"ARTIST": {"Björk"}, "TITLE": {"Jóga"}}
//	tags.First("artist") // "Björk"
//
// # Aggregation
//
// Aggregate folds many mappings into one, replacing values that disagree
// with the conflict marker "~":
//
//	merged := model.Aggregate(perFile)
//	if merged.IsConflict(model.TagAlbum) {
//	    // files come from different albums
//	}
//
// # Path derivation
//
// DerivePath computes the canonical location of a file below a music root:
//
//	p, err := model.DerivePath(file, tags, "/music")
//	// p.Path() == "/music/<albumartist>/<album>/<disc>/<track>-<artist>-<title>.<ext>"
//
// Errors are reported with the sentinels in errors.go and can be matched
// with errors.Is.
package model

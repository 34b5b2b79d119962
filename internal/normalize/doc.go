// Package normalize turns free-form tag text into ASCII.
//
// Two pipelines share one transliteration table:
//
//   - PathToken reduces a tag value to a lower-case token that is safe to
//     use as a single path segment.
//   - CleanValue tidies a tag value before it is written back to a file
//     during a cleanup pass. Case is preserved.
//
// # Path tokens
//
//	normalize.PathToken("Ångström Café") // "angstroem_cafe"
//	normalize.PathToken("AC/DC")         // "acdc"
//
// PathToken is idempotent: PathToken(PathToken(s)) == PathToken(s).
//
// # Cleanup
//
//	normalize.CleanValue("Song  (Radio Edit) ", normalize.CleanOptions{StripParentheses: true})
//	// "Song"
package normalize

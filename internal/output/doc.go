// Package output formats review reports and previews annotated files.
//
// Report formats:
//   - text: one review answer per line (default)
//   - markdown: a section per review role
//   - json: the full structured report
//
// Use [GetWriter] to obtain a [Writer] for a format string, or [WriteReport]
// to render straight to a path. [Highlight] prints a syntax-highlighted file
// for annotate --dry-run.
package output

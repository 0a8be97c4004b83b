// Package files reads and writes the line-oriented text files tfreview works
// on: the original input, the annotated working copy, the review report, and
// the token forecast log.
//
// A working copy that does not exist yet is seeded from a fallback path with
// [EnsureSeeded]; any other missing file is reported as an error that
// satisfies errors.Is(err, fs.ErrNotExist).
package files

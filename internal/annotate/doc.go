// Package annotate inserts a one-sentence "# " comment above every top-level
// block of a configuration file.
//
// A block starts on a line whose trimmed text begins with one of a fixed set
// of keywords (resource, module and data by default) and runs until the next
// blank line or the next block start. The match is a plain prefix, so an
// attribute such as resource_group_name also starts a block; [MatchWord]
// restricts it to whole keywords. Boundaries are purely lexical: braces
// are not matched, so a block containing a blank line is cut short.
//
// Annotation is done in two passes. [Match.FindBlocks] records where each block
// starts without touching the input, and [Interleave] builds a new line slice
// with the generated comments placed above the recorded indices. Neither pass
// mutates the caller's lines, so no index can shift under the scan.
//
// Annotating an already annotated file adds a second comment above each
// block; comment lines are not recognized as earlier output.
package annotate

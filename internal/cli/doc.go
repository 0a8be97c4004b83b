// Package cli wires together the Cobra command tree for the tfreview binary.
//
// The root command runs the whole review and annotate pipeline. Subcommands
// run either half (review, annotate), estimate tokens, and manage config,
// cache and providers. Handlers record failures in a package-level exit code:
// 2 for usage errors, 3 for missing or rejected credentials, 4 for anything
// else.
package cli

// Package review defines the review roles that read a configuration file and
// ask an LLM for free-text feedback.
//
// Three roles are built in: a syntax checker, a best-practices checker, and
// an optimization reviewer. Each one fills a fixed prompt template with the
// full file text and makes exactly one remote call; the answer is kept as an
// opaque [Issue] and never parsed. [Engine] runs the roles in order and
// gathers their answers into a [Report].
//
// Guidelines (guidelines.go) let callers append focus areas and required
// checks to every review prompt without changing the templates.
package review

package annotate

import (
	"fmt"
	"strings"
)

// DefaultKeywords are the Terraform top-level block types that get comments.
var DefaultKeywords = []string{"resource", "module", "data"}

// CommentPrefix precedes every generated comment line.
const CommentPrefix = "# "

// Block is a run of lines beginning at a block-start line.
type Block struct {
	// Start is the index of the block-start line in the scanned input.
	Start int
	Lines []string
}

// Text returns the block as it appears in the file, newline terminated.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n") + "\n"
}

// Match selects how a line is tested against the block keywords.
type Match string

const (
	// MatchPrefix treats any line whose trimmed text starts with a keyword as
	// a block start, so "resource_group_name = x" counts. This is the default.
	MatchPrefix Match = "prefix"
	// MatchWord requires the keyword to be followed by end of line, space,
	// tab, '"' or '{'.
	MatchWord Match = "word"
)

// ParseMatch converts a config value to a Match. Empty means MatchPrefix.
func ParseMatch(s string) (Match, error) {
	switch Match(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchPrefix:
		return MatchPrefix, nil
	case MatchWord:
		return MatchWord, nil
	}
	return "", fmt.Errorf("unknown block match %q (want prefix or word)", s)
}

// IsBlockStart reports whether line, ignoring surrounding whitespace, starts
// a block under m.
func (m Match) IsBlockStart(line string, keywords []string) bool {
	trimmed := strings.TrimSpace(line)
	for _, kw := range keywords {
		if kw == "" || !strings.HasPrefix(trimmed, kw) {
			continue
		}
		if m != MatchWord {
			return true
		}
		rest := trimmed[len(kw):]
		if rest == "" {
			return true
		}
		switch rest[0] {
		case ' ', '\t', '"', '{':
			return true
		}
	}
	return false
}

// FindBlocks returns the blocks of lines in file order. Each block is its
// start line plus the following lines that are neither blank nor block
// starts themselves.
func (m Match) FindBlocks(lines []string, keywords []string) []Block {
	var blocks []Block
	for i, line := range lines {
		if !m.IsBlockStart(line, keywords) {
			continue
		}
		b := Block{Start: i, Lines: []string{line}}
		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if strings.TrimSpace(next) == "" || m.IsBlockStart(next, keywords) {
				break
			}
			b.Lines = append(b.Lines, next)
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// Interleave returns a copy of lines with CommentPrefix+comments[i] inserted
// immediately before line i. Indices outside lines are ignored.
func Interleave(lines []string, comments map[int]string) []string {
	out := make([]string, 0, len(lines)+len(comments))
	for i, line := range lines {
		if c, ok := comments[i]; ok {
			out = append(out, CommentPrefix+c)
		}
		out = append(out, line)
	}
	return out
}

// OneLine collapses a possibly multi-line completion into a single line so
// the inserted comment cannot spill into the configuration.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

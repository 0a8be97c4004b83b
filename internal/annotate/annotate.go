package annotate

import (
	"context"
	"fmt"

	"github.com/dshills/tfreview/internal/terminal"
)

// Generator produces a completion for a prompt.
type Generator interface {
	GenerateComments(ctx context.Context, prompt string) (string, error)
}

// Annotator asks a Generator for one sentence per block.
type Annotator struct {
	Generator Generator
	Keywords  []string
	// Match decides what counts as a block start; empty means MatchPrefix.
	Match Match
	// Language names the file type in the prompt, e.g. "Terraform".
	Language string
	Logger   *terminal.Logger
}

// Prompt builds the per-block summary prompt.
func Prompt(language string, b Block) string {
	if language == "" {
		language = "Terraform"
	}
	return fmt.Sprintf("Provide a very short, one-sentence description of the following %s block only:\n\n%s", language, b.Text())
}

// Annotate returns lines with a generated comment above every block, and the
// number of blocks commented. lines is not modified.
func (a *Annotator) Annotate(ctx context.Context, lines []string) ([]string, int, error) {
	keywords := a.Keywords
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}

	blocks := a.Match.FindBlocks(lines, keywords)
	a.Logger.Infof("found %d blocks to annotate", len(blocks))

	comments := make(map[int]string, len(blocks))
	for _, b := range blocks {
		resp, err := a.Generator.GenerateComments(ctx, Prompt(a.Language, b))
		if err != nil {
			return nil, 0, fmt.Errorf("annotating line %d: %w", b.Start+1, err)
		}
		comments[b.Start] = OneLine(resp)
		a.Logger.Debugf("line %d: %s", b.Start+1, comments[b.Start])
	}

	return Interleave(lines, comments), len(blocks), nil
}

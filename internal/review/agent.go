package review

import (
	"context"
	"fmt"

	"github.com/dshills/tfreview/internal/files"
	"github.com/dshills/tfreview/internal/redact"
	"github.com/dshills/tfreview/internal/terminal"
)

// Generator produces a completion for a prompt.
type Generator interface {
	GenerateComments(ctx context.Context, prompt string) (string, error)
}

// Agent pairs a role with the file lines it reviews. Lines are not modified.
type Agent struct {
	Role     Role
	Path     string
	Lines    []string
	Language string
	// Redact replaces likely secrets before the text leaves the machine.
	Redact     bool
	Guidelines *Guidelines
	Logger     *terminal.Logger
}

// Prompt returns the exact prompt the agent sends.
func (a *Agent) Prompt() string {
	text := files.Text(a.Lines)
	if a.Redact {
		var n int
		text, n = redact.Secrets(text)
		if n > 0 {
			a.Logger.Warnf("%s: redacted %d likely secret(s) before sending", a.Role.Name, n)
		}
	}
	return BuildPrompt(a.Role, a.Language, text, a.Guidelines)
}

// Review makes one remote call and returns its answer as a single issue.
func (a *Agent) Review(ctx context.Context, gen Generator) ([]Issue, error) {
	a.Logger.Infof("reviewing %s as %s", a.Path, a.Role.Name)
	text, err := gen.GenerateComments(ctx, a.Prompt())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Role.Name, err)
	}
	return []Issue{{Role: a.Role.Name, Goal: a.Role.Goal, Text: text}}, nil
}

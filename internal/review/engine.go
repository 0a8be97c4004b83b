package review

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/dshills/tfreview/internal/terminal"
)

// Tool is the name written into every report.
const Tool = "tfreview"

// Engine runs a list of roles over one file, strictly in order.
type Engine struct {
	Roles      []Role
	Language   string
	Redact     bool
	Guidelines *Guidelines
	Logger     *terminal.Logger
}

// Run asks each role for its review of lines and collects the answers in call
// order. The first error aborts the run; answers gathered so far are dropped.
func (e *Engine) Run(ctx context.Context, gen Generator, path string, lines []string) (*Report, error) {
	startTime := time.Now()

	roles := e.Roles
	if len(roles) == 0 {
		roles = DefaultRoles()
	}

	var issues []Issue
	for _, role := range roles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		agent := &Agent{
			Role:       role,
			Path:       path,
			Lines:      lines,
			Language:   e.Language,
			Redact:     e.Redact,
			Guidelines: e.Guidelines,
			Logger:     e.Logger,
		}
		got, err := agent.Review(ctx, gen)
		if err != nil {
			return nil, fmt.Errorf("review: %w", err)
		}
		issues = append(issues, got...)
	}

	return &Report{
		Tool:      Tool,
		RunID:     generateRunID(startTime),
		Input:     path,
		CreatedAt: startTime.UTC(),
		Issues:    issues,
		Timing:    Timing{TotalMs: time.Since(startTime).Milliseconds()},
	}, nil
}

func generateRunID(t time.Time) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%d", t.UnixNano())))
	return fmt.Sprintf("%x", h[:16])
}

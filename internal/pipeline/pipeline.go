// Package pipeline wires file access, the review roles, report writing and
// the annotator into the read, review, annotate run.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/tfreview/internal/annotate"
	"github.com/dshills/tfreview/internal/files"
	"github.com/dshills/tfreview/internal/output"
	"github.com/dshills/tfreview/internal/review"
	"github.com/dshills/tfreview/internal/terminal"
)

// Generator produces a completion for a prompt.
type Generator interface {
	GenerateComments(ctx context.Context, prompt string) (string, error)
}

// Paths locates the files a run reads and writes.
type Paths struct {
	Input       string
	WorkingCopy string
	Report      string
}

// Pipeline runs reviews and annotation against one input file.
type Pipeline struct {
	Generator Generator
	Paths     Paths
	// Format selects the report format: text, markdown or json.
	Format     string
	Language   string
	Keywords   []string
	Match      annotate.Match
	Roles      []review.Role
	Redact     bool
	Guidelines *review.Guidelines

	// Provider, Model and Version are copied into the report header.
	Provider string
	Model    string
	Version  string

	Logger *terminal.Logger
}

// Result summarizes what a run produced.
type Result struct {
	Report *review.Report
	// Annotated is the working copy after annotation.
	Annotated []string
	Blocks    int
	// Seeded is set when the working copy was created from the input.
	Seeded bool
}

// Run reads the input and working copy, runs every review role, writes the
// report, then annotates and rewrites the working copy. Both files are loaded
// before the first remote call, so a missing input leaves no outputs behind.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	input, err := p.loadInput()
	if err != nil {
		return nil, err
	}
	working, seeded, err := p.loadWorkingCopy()
	if err != nil {
		return nil, err
	}

	report, err := p.review(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := p.writeReport(report); err != nil {
		return nil, err
	}

	annotated, blocks, err := p.annotate(ctx, working.Lines)
	if err != nil {
		return nil, err
	}
	if err := p.writeWorkingCopy(annotated, working.Layout); err != nil {
		return nil, err
	}

	return &Result{Report: report, Annotated: annotated, Blocks: blocks, Seeded: seeded}, nil
}

// Review runs the review roles and writes the report. The working copy is
// not touched.
func (p *Pipeline) Review(ctx context.Context) (*Result, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	input, err := p.loadInput()
	if err != nil {
		return nil, err
	}
	report, err := p.review(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := p.writeReport(report); err != nil {
		return nil, err
	}
	return &Result{Report: report}, nil
}

// Annotate comments every block of the working copy, seeding it from the
// input first if needed. With dryRun the annotated lines are returned but
// the working copy is left unchanged.
func (p *Pipeline) Annotate(ctx context.Context, dryRun bool) (*Result, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	working, seeded, err := p.loadWorkingCopy()
	if err != nil {
		return nil, err
	}
	annotated, blocks, err := p.annotate(ctx, working.Lines)
	if err != nil {
		return nil, err
	}
	if !dryRun {
		if err := p.writeWorkingCopy(annotated, working.Layout); err != nil {
			return nil, err
		}
	}
	return &Result{Annotated: annotated, Blocks: blocks, Seeded: seeded}, nil
}

func (p *Pipeline) check() error {
	if p.Generator == nil {
		return errors.New("pipeline: generator is required")
	}
	if p.Paths.Input == "" || p.Paths.WorkingCopy == "" {
		return errors.New("pipeline: input and working copy paths are required")
	}
	return nil
}

func (p *Pipeline) loadInput() ([]string, error) {
	lines, err := files.ReadLines(p.Paths.Input)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}
	p.Logger.Debugf("loaded %d lines from %s", len(lines), p.Paths.Input)
	return lines, nil
}

func (p *Pipeline) loadWorkingCopy() (files.Document, bool, error) {
	doc, seeded, err := files.ReadOrSeed(p.Paths.WorkingCopy, p.Paths.Input)
	if err != nil {
		return files.Document{}, false, fmt.Errorf("loading working copy: %w", err)
	}
	if seeded {
		p.Logger.Infof("created %s from %s", p.Paths.WorkingCopy, p.Paths.Input)
	}
	return doc, seeded, nil
}

func (p *Pipeline) review(ctx context.Context, input []string) (*review.Report, error) {
	engine := &review.Engine{
		Roles:      p.Roles,
		Language:   p.Language,
		Redact:     p.Redact,
		Guidelines: p.Guidelines,
		Logger:     p.Logger,
	}
	report, err := engine.Run(ctx, p.Generator, p.Paths.Input, input)
	if err != nil {
		return nil, err
	}
	report.Provider = p.Provider
	report.Model = p.Model
	report.Version = p.Version
	return report, nil
}

func (p *Pipeline) writeReport(report *review.Report) error {
	if p.Paths.Report == "" {
		return nil
	}
	if err := output.WriteReport(report, p.Format, p.Paths.Report); err != nil {
		return err
	}
	p.Logger.Successf("wrote %d review(s) to %s", len(report.Issues), p.Paths.Report)
	return nil
}

func (p *Pipeline) annotate(ctx context.Context, working []string) ([]string, int, error) {
	a := &annotate.Annotator{
		Generator: p.Generator,
		Keywords:  p.Keywords,
		Match:     p.Match,
		Language:  p.Language,
		Logger:    p.Logger,
	}
	return a.Annotate(ctx, working)
}

// writeWorkingCopy keeps the line endings and final newline the working copy
// was read with; inserted comments use the same line ending.
func (p *Pipeline) writeWorkingCopy(lines []string, layout files.Layout) error {
	doc := files.Document{Lines: lines, Layout: layout}
	if err := files.WriteDocument(p.Paths.WorkingCopy, doc); err != nil {
		return fmt.Errorf("writing working copy: %w", err)
	}
	p.Logger.Successf("annotated %s", p.Paths.WorkingCopy)
	return nil
}

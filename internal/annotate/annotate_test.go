package annotate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// scriptedGenerator answers "comment N" for the Nth prompt and records them.
type scriptedGenerator struct {
	prompts []string
	err     error
}

func (g *scriptedGenerator) GenerateComments(ctx context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.prompts = append(g.prompts, prompt)
	return fmt.Sprintf("comment %d", len(g.prompts)), nil
}

func TestIsBlockStart(t *testing.T) {
	tests := []struct {
		line   string
		prefix bool
		word   bool
	}{
		{`resource "aws_s3_bucket" "logs" {`, true, true},
		{`  module "vpc" {`, true, true},
		{"\tdata \"aws_ami\" \"ubuntu\" {", true, true},
		{"resource", true, true},
		{"module{", true, true},
		{`database_name = "orders"`, true, false},
		{`modules = []`, true, false},
		{`  resource_group_name = "rg"`, true, false},
		{`# resource "x" "y"`, false, false},
		{`  x = 1`, false, false},
		{``, false, false},
		{`variable "region" {`, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := Match("").IsBlockStart(tt.line, DefaultKeywords); got != tt.prefix {
				t.Errorf("zero Match IsBlockStart(%q) = %v, want prefix result %v", tt.line, got, tt.prefix)
			}
			if got := MatchPrefix.IsBlockStart(tt.line, DefaultKeywords); got != tt.prefix {
				t.Errorf("MatchPrefix.IsBlockStart(%q) = %v, want %v", tt.line, got, tt.prefix)
			}
			if got := MatchWord.IsBlockStart(tt.line, DefaultKeywords); got != tt.word {
				t.Errorf("MatchWord.IsBlockStart(%q) = %v, want %v", tt.line, got, tt.word)
			}
		})
	}
}

func TestParseMatch(t *testing.T) {
	tests := []struct {
		in      string
		want    Match
		wantErr bool
	}{
		{"", MatchPrefix, false},
		{"prefix", MatchPrefix, false},
		{" Word ", MatchWord, false},
		{"regex", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMatch(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMatch(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMatch(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindBlocks_AttributePrefixStartsBlock(t *testing.T) {
	lines := []string{
		`resource "azurerm_vm" "x" {`,
		`  resource_group_name = "rg"`,
		`  data_disk_size = 10`,
		`}`,
	}

	blocks := MatchPrefix.FindBlocks(lines, DefaultKeywords)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3: %+v", len(blocks), blocks)
	}
	for i, b := range blocks {
		if b.Start != i {
			t.Errorf("block %d starts at %d, want %d", i, b.Start, i)
		}
	}
	if !reflect.DeepEqual(blocks[2].Lines, lines[2:]) {
		t.Errorf("last block lines = %q, want %q", blocks[2].Lines, lines[2:])
	}

	word := MatchWord.FindBlocks(lines, DefaultKeywords)
	if len(word) != 1 || !reflect.DeepEqual(word[0].Lines, lines) {
		t.Errorf("MatchWord blocks = %+v, want the whole resource as one block", word)
	}
}

func TestFindBlocks_BlankLineEndsBlock(t *testing.T) {
	lines := []string{"resource a {", "  x = 1", "", "resource b {", "  y = 2", "}"}

	blocks := MatchPrefix.FindBlocks(lines, DefaultKeywords)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Start != 0 || !reflect.DeepEqual(blocks[0].Lines, []string{"resource a {", "  x = 1"}) {
		t.Errorf("block 0 = %+v", blocks[0])
	}
	if blocks[1].Start != 3 || !reflect.DeepEqual(blocks[1].Lines, []string{"resource b {", "  y = 2", "}"}) {
		t.Errorf("block 1 = %+v", blocks[1])
	}
}

func TestFindBlocks_ConsecutiveStarts(t *testing.T) {
	lines := []string{`data "a" "b" {}`, `data "c" "d" {}`, `module "m" {`, `}`}

	blocks := MatchPrefix.FindBlocks(lines, DefaultKeywords)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	for i, want := range [][]string{{`data "a" "b" {}`}, {`data "c" "d" {}`}, {`module "m" {`, `}`}} {
		if !reflect.DeepEqual(blocks[i].Lines, want) {
			t.Errorf("block %d lines = %q, want %q", i, blocks[i].Lines, want)
		}
	}
}

func TestFindBlocks_TrailingStartAlone(t *testing.T) {
	lines := []string{"locals {", "}", "", "resource x {"}
	blocks := MatchPrefix.FindBlocks(lines, DefaultKeywords)
	if len(blocks) != 1 || blocks[0].Start != 3 || len(blocks[0].Lines) != 1 {
		t.Errorf("blocks = %+v, want a single one-line block at 3", blocks)
	}
}

func TestFindBlocks_EmbeddedBlankLineCutsBlock(t *testing.T) {
	lines := []string{"resource a {", "  x = 1", "", "  y = 2", "}"}
	blocks := MatchPrefix.FindBlocks(lines, DefaultKeywords)
	if len(blocks) != 1 || len(blocks[0].Lines) != 2 {
		t.Errorf("blocks = %+v, want the block to stop at the blank line", blocks)
	}
}

func TestFindBlocks_DoesNotMutate(t *testing.T) {
	lines := []string{"resource a {", "}"}
	orig := append([]string(nil), lines...)
	MatchPrefix.FindBlocks(lines, DefaultKeywords)
	if !reflect.DeepEqual(lines, orig) {
		t.Errorf("input mutated: %q", lines)
	}
}

func TestInterleave(t *testing.T) {
	lines := []string{"a", "b", "c"}
	got := Interleave(lines, map[int]string{0: "first", 2: "third", 9: "ignored"})
	want := []string{"# first", "a", "b", "# third", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Interleave = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(lines, []string{"a", "b", "c"}) {
		t.Error("Interleave mutated its input")
	}
}

func TestAnnotate_InsertsAboveEachBlock(t *testing.T) {
	gen := &scriptedGenerator{}
	a := &Annotator{Generator: gen}
	lines := []string{"resource a {", "  x = 1", "", "resource b {", "  y = 2", "}"}

	got, n, err := a.Annotate(context.Background(), lines)
	if err != nil {
		t.Fatalf("Annotate error: %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
	want := []string{
		"# comment 1",
		"resource a {",
		"  x = 1",
		"",
		"# comment 2",
		"resource b {",
		"  y = 2",
		"}",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Annotate =\n%q\nwant\n%q", got, want)
	}

	if len(gen.prompts) != 2 {
		t.Fatalf("prompts = %d, want 2", len(gen.prompts))
	}
	wantPrompt := "Provide a very short, one-sentence description of the following Terraform block only:\n\nresource a {\n  x = 1\n"
	if gen.prompts[0] != wantPrompt {
		t.Errorf("prompt 0 = %q, want %q", gen.prompts[0], wantPrompt)
	}
	if strings.Contains(gen.prompts[0], "resource b") {
		t.Error("first block prompt leaked into the second block")
	}
}

func TestAnnotate_TwiceDuplicatesComments(t *testing.T) {
	a := &Annotator{Generator: &scriptedGenerator{}}
	lines := []string{"module m {", "}"}

	once, _, err := a.Annotate(context.Background(), lines)
	if err != nil {
		t.Fatal(err)
	}
	twice, _, err := a.Annotate(context.Background(), once)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"# comment 1", "# comment 2", "module m {", "}"}
	if !reflect.DeepEqual(twice, want) {
		t.Errorf("second pass = %q, want %q", twice, want)
	}
}

func TestAnnotate_MultiLineResponseFlattened(t *testing.T) {
	gen := generatorFunc(func(context.Context, string) (string, error) {
		return "Creates a bucket.\n\nIt is private.", nil
	})
	a := &Annotator{Generator: gen}
	got, _, err := a.Annotate(context.Background(), []string{"resource a {"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "# Creates a bucket. It is private." {
		t.Errorf("comment = %q", got[0])
	}
}

func TestAnnotate_ErrorStops(t *testing.T) {
	boom := errors.New("boom")
	a := &Annotator{Generator: &scriptedGenerator{err: boom}}
	_, _, err := a.Annotate(context.Background(), []string{"resource a {"})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

func TestAnnotate_CustomKeywordsAndLanguage(t *testing.T) {
	gen := &scriptedGenerator{}
	a := &Annotator{Generator: gen, Keywords: []string{"job"}, Language: "Nomad"}
	got, n, err := a.Annotate(context.Background(), []string{`job "web" {`, `resource "x" {`})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || got[0] != "# comment 1" {
		t.Errorf("got %q (n=%d)", got, n)
	}
	if !strings.Contains(gen.prompts[0], "following Nomad block only") {
		t.Errorf("prompt = %q", gen.prompts[0])
	}
}

func TestAnnotate_MatchModes(t *testing.T) {
	lines := []string{`resource "azurerm_vm" "x" {`, `  resource_group_name = "rg"`, `}`}

	prefix, n, err := (&Annotator{Generator: &scriptedGenerator{}}).Annotate(context.Background(), lines)
	if err != nil {
		t.Fatal(err)
	}
	wantPrefix := []string{"# comment 1", lines[0], "# comment 2", lines[1], lines[2]}
	if n != 2 || !reflect.DeepEqual(prefix, wantPrefix) {
		t.Errorf("prefix match = %q (n=%d), want %q", prefix, n, wantPrefix)
	}

	word, n, err := (&Annotator{Generator: &scriptedGenerator{}, Match: MatchWord}).Annotate(context.Background(), lines)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || len(word) != len(lines)+1 {
		t.Errorf("word match = %q (n=%d), want a single comment", word, n)
	}
}

type generatorFunc func(context.Context, string) (string, error)

func (f generatorFunc) GenerateComments(ctx context.Context, p string) (string, error) {
	return f(ctx, p)
}

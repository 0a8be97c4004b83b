package files

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.tf")
	if err := os.WriteFile(path, []byte("resource \"a\" \"b\" {\r\n  x = 1\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines error: %v", err)
	}
	want := []string{`resource "a" "b" {`, "  x = 1", "}"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestReadLines_Missing(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.tf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v should match fs.ErrNotExist", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("error %T should be *NotFoundError", err)
	}
}

func TestEnsureSeeded_CopiesExactBytes(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "inputs", "main.tf")
	if err := os.MkdirAll(filepath.Dir(seed), 0o755); err != nil {
		t.Fatal(err)
	}
	original := []byte("module \"vpc\" {\n\tsource = \"x\"\n}\n\n# no trailing newline")
	if err := os.WriteFile(seed, original, 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(dir, "recommit", "main.tf")
	seeded, err := EnsureSeeded(target, seed)
	if err != nil {
		t.Fatalf("EnsureSeeded error: %v", err)
	}
	if !seeded {
		t.Error("expected seeded = true")
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(original) {
		t.Errorf("copy = %q, want %q", got, original)
	}
}

func TestEnsureSeeded_ExistingUntouched(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.tf")
	target := filepath.Join(dir, "target.tf")
	os.WriteFile(seed, []byte("seed"), 0o644)
	os.WriteFile(target, []byte("target"), 0o644)

	seeded, err := EnsureSeeded(target, seed)
	if err != nil {
		t.Fatalf("EnsureSeeded error: %v", err)
	}
	if seeded {
		t.Error("existing file should not be reseeded")
	}
	got, _ := os.ReadFile(target)
	if string(got) != "target" {
		t.Errorf("target = %q, want unchanged", got)
	}
}

func TestEnsureSeeded_MissingSeed(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "recommit", "main.tf")

	_, err := EnsureSeeded(target, filepath.Join(dir, "inputs", "main.tf"))
	if !IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if Exists(filepath.Dir(target)) {
		t.Error("no directory should be created when the seed is missing")
	}
}

func TestEnsureSeeded_NoSeed(t *testing.T) {
	_, err := EnsureSeeded(filepath.Join(t.TempDir(), "x.tf"), "")
	if !IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWriteDocument_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "main.tf")
	if err := WriteDocument(path, Document{Lines: []string{"first", "run"}, Layout: UnixLayout}); err != nil {
		t.Fatal(err)
	}
	if err := WriteDocument(path, Document{Lines: []string{"second"}, Layout: UnixLayout}); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "second\n" {
		t.Errorf("content = %q, want %q", got, "second\n")
	}
}

func TestAppendLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "forecast.log")
	for _, l := range []string{"one", "two\n", "three"} {
		if err := AppendLine(path, l); err != nil {
			t.Fatalf("AppendLine error: %v", err)
		}
	}
	got, _ := os.ReadFile(path)
	if string(got) != "one\ntwo\nthree\n" {
		t.Errorf("content = %q", got)
	}
}

func TestText(t *testing.T) {
	if Text(nil) != "" {
		t.Error("Text(nil) should be empty")
	}
	got := Text([]string{"a", "", "b"})
	if got != "a\n\nb\n" {
		t.Errorf("Text = %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("Text should end with a newline")
	}
}

func TestSplitJoin_KeepsLayout(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		lines  []string
		layout Layout
	}{
		{"lf", "a\nb\n", []string{"a", "b"}, Layout{EOL: "\n", FinalNewline: true}},
		{"crlf", "a\r\n\r\nb\r\n", []string{"a", "", "b"}, Layout{EOL: "\r\n", FinalNewline: true}},
		{"no final newline", "a\nb", []string{"a", "b"}, Layout{EOL: "\n"}},
		{"crlf no final newline", "a\r\nb", []string{"a", "b"}, Layout{EOL: "\r\n"}},
		{"single blank line", "\n", []string{""}, Layout{EOL: "\n", FinalNewline: true}},
		{"empty", "", nil, Layout{EOL: "\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Split(tt.text)
			if strings.Join(doc.Lines, "|") != strings.Join(tt.lines, "|") || len(doc.Lines) != len(tt.lines) {
				t.Errorf("lines = %q, want %q", doc.Lines, tt.lines)
			}
			if doc.Layout != tt.layout {
				t.Errorf("layout = %+v, want %+v", doc.Layout, tt.layout)
			}
			if got := Join(doc.Lines, doc.Layout); got != tt.text {
				t.Errorf("Join = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestWriteDocument_InsertedLinesFollowLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.tf")
	if err := os.WriteFile(path, []byte("resource \"a\" \"b\" {\r\n}"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument error: %v", err)
	}
	doc.Lines = append([]string{"# Declares a."}, doc.Lines...)
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument error: %v", err)
	}

	got, _ := os.ReadFile(path)
	want := "# Declares a.\r\nresource \"a\" \"b\" {\r\n}"
	if string(got) != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestReadOrSeed_ReturnsLayout(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "inputs", "main.tf")
	os.MkdirAll(filepath.Dir(seed), 0o755)
	os.WriteFile(seed, []byte("module \"m\" {\r\n}\r\n"), 0o644)

	doc, seeded, err := ReadOrSeed(filepath.Join(dir, "recommit", "main.tf"), seed)
	if err != nil {
		t.Fatalf("ReadOrSeed error: %v", err)
	}
	if !seeded {
		t.Error("expected seeded = true")
	}
	if doc.Layout != (Layout{EOL: "\r\n", FinalNewline: true}) {
		t.Errorf("layout = %+v, want CRLF with final newline", doc.Layout)
	}
	if len(doc.Lines) != 2 || doc.Lines[0] != `module "m" {` {
		t.Errorf("lines = %q", doc.Lines)
	}
}

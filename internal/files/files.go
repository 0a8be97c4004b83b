package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Layout records how a file terminates its lines, so a rewrite can match
// the original byte for byte where the lines themselves are unchanged.
type Layout struct {
	// EOL is "\r\n" when the first line ends that way, otherwise "\n".
	// Files mixing both are written back with EOL throughout.
	EOL string
	// FinalNewline is set when the last line has a terminator.
	FinalNewline bool
}

// UnixLayout is "\n" line endings with a terminated last line.
var UnixLayout = Layout{EOL: "\n", FinalNewline: true}

// Document is a file split into lines plus the layout they came with.
type Document struct {
	Lines  []string
	Layout Layout
}

// NotFoundError reports a required file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %q does not exist", e.Path)
}

// Unwrap lets errors.Is(err, fs.ErrNotExist) match.
func (e *NotFoundError) Unwrap() error { return fs.ErrNotExist }

// IsNotExist reports whether err is a missing-file error.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadLines returns the contents of path as lines without their terminators.
func ReadLines(path string) ([]string, error) {
	doc, err := ReadDocument(path)
	return doc.Lines, err
}

// ReadDocument returns the lines of path along with their layout.
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, &NotFoundError{Path: path}
		}
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Split(string(data)), nil
}

// Split breaks text into lines and records its layout. A trailing "\r" is
// removed from every line.
func Split(text string) Document {
	layout := Layout{EOL: "\n"}
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		layout.EOL = "\r\n"
	}
	if text == "" {
		return Document{Layout: layout}
	}
	if strings.HasSuffix(text, "\n") {
		layout.FinalNewline = true
		text = text[:len(text)-1]
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return Document{Lines: lines, Layout: layout}
}

// Join renders lines with layout. It is the inverse of Split for files that
// use a single line ending.
func Join(lines []string, layout Layout) string {
	if len(lines) == 0 {
		return ""
	}
	eol := layout.EOL
	if eol == "" {
		eol = "\n"
	}
	text := strings.Join(lines, eol)
	if layout.FinalNewline {
		text += eol
	}
	return text
}

// EnsureSeeded makes sure path exists. When it is missing and seed names an
// existing file, seed is copied to path byte for byte, creating the parent
// directory first. The returned bool reports whether a copy was made.
func EnsureSeeded(path, seed string) (bool, error) {
	if Exists(path) {
		return false, nil
	}
	if seed == "" {
		return false, &NotFoundError{Path: path}
	}
	if !Exists(seed) {
		return false, &NotFoundError{Path: seed}
	}
	if err := copyFile(seed, path); err != nil {
		return false, err
	}
	return true, nil
}

// ReadOrSeed seeds path from seed if necessary and returns its document.
func ReadOrSeed(path, seed string) (Document, bool, error) {
	seeded, err := EnsureSeeded(path, seed)
	if err != nil {
		return Document{}, false, err
	}
	doc, err := ReadDocument(path)
	return doc, seeded, err
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := ensureDir(dst); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

// WriteDocument overwrites path with doc's lines in doc's layout.
func WriteDocument(path string, doc Document) error {
	return WriteFile(path, []byte(Join(doc.Lines, doc.Layout)))
}

// WriteFile overwrites path with data, creating the parent directory.
func WriteFile(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// AppendLine appends line and a newline to path. Existing content is kept.
func AppendLine(path, line string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.WriteString(strings.TrimRight(line, "\n") + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return f.Close()
}

// Text joins lines with "\n", including the final newline.
func Text(lines []string) string {
	return Join(lines, UnixLayout)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight writes lines to w, syntax highlighted for filename when color is
// set and a lexer matches. Otherwise the lines are written unchanged.
func Highlight(w io.Writer, filename string, lines []string, color bool) error {
	source := strings.Join(lines, "\n") + "\n"
	if len(lines) == 0 {
		source = ""
	}

	lexer := lexerForFile(filename)
	if lexer == nil || !color {
		_, err := io.WriteString(w, source)
		return err
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		_, err := io.WriteString(w, source)
		return err
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	if err := formatter.Format(w, style, iterator); err != nil {
		return fmt.Errorf("highlighting %s: %w", filename, err)
	}
	return nil
}

func lexerForFile(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		ext := filepath.Ext(filename)
		if ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}

package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "ok"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Options configures a Logger.
type Options struct {
	Verbose bool
	NoColor bool
}

// Logger writes tagged log lines. A nil *Logger discards everything, so
// components can accept one without nil checks.
type Logger struct {
	w       io.Writer
	verbose bool
	styles  map[Level]lipgloss.Style
	tag     string
}

// NewLogger creates a logger writing to stderr.
func NewLogger(opts Options) *Logger {
	return NewWriterLogger(os.Stderr, opts)
}

// NewWriterLogger creates a logger writing to w. Colors are used only when w
// is a terminal and neither opts.NoColor nor NO_COLOR is set.
func NewWriterLogger(w io.Writer, opts Options) *Logger {
	r := lipgloss.NewRenderer(w)
	color := !opts.NoColor && ColorAllowed(w)

	style := func(fg string) lipgloss.Style {
		s := r.NewStyle()
		if color {
			s = s.Foreground(lipgloss.Color(fg))
		}
		return s
	}

	l := &Logger{
		w:       w,
		verbose: opts.Verbose,
		styles: map[Level]lipgloss.Style{
			LevelDebug:   style("#6272a4"),
			LevelInfo:    style("#8be9fd"),
			LevelSuccess: style("#50fa7b"),
			LevelWarn:    style("#f1fa8c"),
			LevelError:   style("#ff5555").Bold(color),
		},
	}
	l.tag = style("#bd93f9").Render("[tfreview]")
	return l
}

// Verbose reports whether debug lines are emitted.
func (l *Logger) Verbose() bool {
	return l != nil && l.verbose
}

// Log writes msg at the given level.
func (l *Logger) Log(level Level, msg string) {
	if l == nil || l.w == nil {
		return
	}
	if level == LevelDebug && !l.verbose {
		return
	}
	msg = strings.TrimRight(msg, "\n")
	label := l.styles[level].Render(fmt.Sprintf("%-5s", level.String()))
	fmt.Fprintf(l.w, "%s %s %s\n", l.tag, label, msg)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Log(LevelDebug, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.Log(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...any) {
	l.Log(LevelSuccess, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Log(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Log(LevelError, fmt.Sprintf(format, args...))
}

// Truncate shortens s to n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

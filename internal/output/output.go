package output

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dshills/tfreview/internal/files"
	"github.com/dshills/tfreview/internal/review"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *review.Report) error
}

// Formats lists the supported report formats.
var Formats = []string{"text", "markdown", "json"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport renders the report and writes it to outPath, replacing any
// previous content. An empty outPath writes to stdout.
func WriteReport(report *review.Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	if outPath == "" {
		return writer.Write(os.Stdout, report)
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, report); err != nil {
		return err
	}
	if err := files.WriteFile(outPath, buf.Bytes()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

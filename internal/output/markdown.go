package output

import (
	"io"
	"strings"

	"github.com/dshills/tfreview/internal/review"
)

// MarkdownWriter writes a report with one section per review role.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	ew.printf("## Terraform Review: `%s`\n\n", report.Input)
	if report.Provider != "" {
		ew.printf("Reviewed by %s", report.Provider)
		if report.Model != "" {
			ew.printf(" (%s)", report.Model)
		}
		ew.printf("\n\n")
	}

	if len(report.Issues) == 0 {
		ew.println("No review output.")
		return ew.err
	}

	for _, is := range report.Issues {
		ew.printf("### %s\n\n", titleCase(is.Role))
		if is.Goal != "" {
			ew.printf("*%s*\n\n", is.Goal)
		}
		ew.printf("%s\n\n", strings.TrimSpace(is.Text))
	}

	ew.printf("*Reviewed in %dms*\n", report.Timing.TotalMs)
	return ew.err
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

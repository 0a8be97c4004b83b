package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/tfreview/internal/review"
)

// JSONWriter outputs the full report as indented JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	r := *report
	if r.Issues == nil {
		r.Issues = []review.Issue{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&r); err != nil {
		return fmt.Errorf("writing JSON report: %w", err)
	}
	return nil
}

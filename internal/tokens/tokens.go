// Package tokens estimates prompt sizes and records them in the append-only
// token forecast log.
package tokens

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/dshills/tfreview/internal/files"
)

// fallbackEncoding is used for models tiktoken does not know, such as
// non-OpenAI providers.
const fallbackEncoding = "cl100k_base"

// Counter estimates how many tokens a piece of text costs.
type Counter interface {
	Count(text string) int
}

// Tiktoken counts with the BPE encoding of an OpenAI model.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the encoding for model, falling back to cl100k_base.
// The first load may download the BPE ranks; set TIKTOKEN_CACHE_DIR to keep
// them between runs.
func NewTiktoken(model string) (*Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("loading tokenizer for %s: %w", model, err)
		}
	}
	return &Tiktoken{enc: enc}, nil
}

func (t *Tiktoken) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// Approx assumes roughly four characters per token.
type Approx struct{}

func (Approx) Count(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}

// Forecast appends token estimates to a log file, one line per estimate.
type Forecast struct {
	Path string
}

// Line formats a single forecast entry.
func Line(n int) string {
	return fmt.Sprintf("Estimated tokens: %d", n)
}

// Record appends an entry for n tokens. A Forecast with no path is a no-op.
func (f Forecast) Record(n int) error {
	if f.Path == "" {
		return nil
	}
	if err := files.AppendLine(f.Path, Line(n)); err != nil {
		return fmt.Errorf("recording token forecast: %w", err)
	}
	return nil
}

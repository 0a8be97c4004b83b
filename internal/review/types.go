package review

import "time"

// Role describes one reviewer: who it is, what it looks for, and the prompt
// template it fills. Template must contain %[1]s for the language name and
// %[2]s for the file text.
type Role struct {
	Name     string `json:"name"`
	Goal     string `json:"goal"`
	Template string `json:"-"`
}

// Issue is a single role's answer.
type Issue struct {
	Role string `json:"role"`
	Goal string `json:"goal"`
	Text string `json:"text"`
}

// Report collects the issues of one run in call order.
type Report struct {
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	RunID     string    `json:"runId"`
	Input     string    `json:"input"`
	Provider  string    `json:"provider,omitempty"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Issues    []Issue   `json:"issues"`
	Timing    Timing    `json:"timing"`
}

// Timing holds wall-clock durations for a run.
type Timing struct {
	TotalMs int64 `json:"totalMs"`
}

// Texts returns the issue texts in order.
func (r *Report) Texts() []string {
	out := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		out[i] = is.Text
	}
	return out
}

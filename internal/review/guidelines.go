package review

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Guidelines is a team policy pack loaded from --rules.
type Guidelines struct {
	Focus    []string        `yaml:"focus,omitempty"`
	Required []RequiredCheck `yaml:"required,omitempty"`
}

// RequiredCheck is a policy check every review should evaluate.
type RequiredCheck struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// LoadGuidelines reads a YAML guidelines file. An empty path returns nil.
func LoadGuidelines(path string) (*Guidelines, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guidelines file: %w", err)
	}
	var g Guidelines
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing guidelines file: %w", err)
	}
	return &g, nil
}

// PromptSection renders the guidelines as extra prompt instructions.
func (g *Guidelines) PromptSection() string {
	if g == nil {
		return ""
	}

	var b strings.Builder
	if len(g.Focus) > 0 {
		fmt.Fprintf(&b, "\n\nFocus areas: %s. Prioritize issues in these areas.\n",
			strings.Join(g.Focus, ", "))
	}
	if len(g.Required) > 0 {
		if b.Len() == 0 {
			b.WriteString("\n")
		}
		b.WriteString("\nRequired checks (always evaluate these):\n")
		for _, req := range g.Required {
			fmt.Fprintf(&b, "- [%s] %s\n", req.ID, req.Text)
		}
	}
	return b.String()
}

package review

import (
	"fmt"
	"strings"
)

// DefaultLanguage names the reviewed file type in prompts.
const DefaultLanguage = "Terraform"

const (
	syntaxTemplate        = "Identify any syntax issues in the following %[1]s code:\n\n%[2]s"
	bestPracticesTemplate = "Check the following %[1]s code for best practice violations, such as hardcoded secrets or missing tags:\n\n%[2]s"
	optimizationTemplate  = "Review the following %[1]s code for any optimization suggestions related to resource usage or cost reduction:\n\n%[2]s"
)

// SyntaxRole looks for syntax errors.
func SyntaxRole() Role {
	return Role{Name: "code analyzer", Goal: "Identify syntax issues", Template: syntaxTemplate}
}

// BestPracticesRole looks for hardcoded secrets, missing tags and similar.
func BestPracticesRole() Role {
	return Role{Name: "best practices checker", Goal: "Identify best practices violations", Template: bestPracticesTemplate}
}

// OptimizationRole looks for cost and resource usage improvements.
func OptimizationRole() Role {
	return Role{Name: "optimization checker", Goal: "Suggest optimizations", Template: optimizationTemplate}
}

// DefaultRoles returns the built-in roles in the order they run.
func DefaultRoles() []Role {
	return []Role{SyntaxRole(), BestPracticesRole(), OptimizationRole()}
}

// RoleByName finds a built-in role by a short key (syntax, best-practices,
// optimization) or by its full name.
func RoleByName(name string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "syntax", "code analyzer":
		return SyntaxRole(), nil
	case "best-practices", "bestpractices", "best practices checker":
		return BestPracticesRole(), nil
	case "optimization", "optimisation", "optimization checker":
		return OptimizationRole(), nil
	default:
		return Role{}, fmt.Errorf("unknown review role: %s", name)
	}
}

// RolesByName resolves names with RoleByName, keeping their order.
func RolesByName(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		r, err := RoleByName(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// BuildPrompt fills the role template with language and text, then appends
// any guideline section.
func BuildPrompt(role Role, language, text string, g *Guidelines) string {
	if language == "" {
		language = DefaultLanguage
	}
	prompt := fmt.Sprintf(role.Template, language, text)
	if section := g.PromptSection(); section != "" {
		prompt += section
	}
	return prompt
}

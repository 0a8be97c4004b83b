package redact

import (
	"regexp"
	"strings"
)

// Placeholder replaces each redacted value.
const Placeholder = "[REDACTED]"

type pattern struct {
	re *regexp.Regexp
	// group is the submatch holding the secret; 0 replaces the whole match.
	group int
}

var patterns = []pattern{
	// Terraform provider credentials and generic secret attributes
	{regexp.MustCompile(`(?i)\b(access_key|secret_key|client_secret|master_password|admin_password|private_key)\s*=\s*"([^"$]{8,})"`), 2},
	// Generic API keys
	{regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`), 2},
	// AWS secret access keys
	{regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`), 2},
	// Secrets/tokens/passwords in quoted assignments
	{regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"'$]{8,})["']`), 2},
	// AWS access key IDs
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), 0},
	// Bearer tokens
	{regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`), 0},
	// JWTs
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`), 0},
	// Private key blocks
	{regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`), 0},
	// GitHub tokens
	{regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`), 0},
	// Slack tokens
	{regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`), 0},
	// Anthropic API keys
	{regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`), 0},
	// OpenAI API keys
	{regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`), 0},
}

// Secrets replaces detected secrets in text with Placeholder and reports how
// many replacements were made.
func Secrets(text string) (string, int) {
	total := 0
	for _, p := range patterns {
		var n int
		text, n = replace(text, p)
		total += n
	}
	return text, total
}

func replace(text string, p pattern) (string, int) {
	matches := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}

	var b strings.Builder
	last, n := 0, 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if p.group > 0 && 2*p.group+1 < len(m) && m[2*p.group] >= 0 {
			start, end = m[2*p.group], m[2*p.group+1]
		}
		if text[start:end] == Placeholder {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(Placeholder)
		last = end
		n++
	}
	b.WriteString(text[last:])
	return b.String(), n
}

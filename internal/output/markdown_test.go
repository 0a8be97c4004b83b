package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarkdownWriter_SectionPerRole(t *testing.T) {
	report := sampleReport("Looks valid.", "Missing tags on aws_instance.web.", "Use t3.micro.")
	report.Provider = "openai"
	report.Model = "gpt-4"

	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"## Terraform Review: `inputs/main.tf`",
		"Reviewed by openai (gpt-4)",
		"### Code Analyzer",
		"### Best Practices Checker",
		"### Optimization Checker",
		"*Identify best practices violations*",
		"Missing tags on aws_instance.web.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "Code Analyzer") > strings.Index(out, "Optimization Checker") {
		t.Error("sections out of order")
	}
}

func TestMarkdownWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No review output.") {
		t.Errorf("output = %q", buf.String())
	}
}

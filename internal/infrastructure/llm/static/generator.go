package static

import (
	"context"
	"strings"
)

// Generator is the zero-dependency response backend. It echoes the canonical
// facts and evidence from the orchestrated context block so the assistant
// stays usable with no model configured; answers are plain but grounded.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (*Generator) Generate(_ context.Context, contextBlock, _ string) (string, error) {
	facts := extractSection(contextBlock, "Canonical Facts:")
	evidence := extractSection(contextBlock, "Supporting Evidence:")

	var b strings.Builder
	b.WriteString("Based on the available records: ")
	if facts != "" {
		b.WriteString(flattenBullets(facts))
	} else {
		b.WriteString("no canonical facts were found.")
	}
	if evidence != "" && !strings.Contains(evidence, "none") {
		b.WriteString(" Supporting evidence: ")
		b.WriteString(flattenBullets(evidence))
	}
	return b.String(), nil
}

// extractSection returns the lines of one section up to the next blank line.
func extractSection(text, header string) string {
	idx := strings.Index(text, header)
	if idx < 0 {
		return ""
	}
	body := text[idx+len(header):]
	if end := strings.Index(body, "\n\n"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func flattenBullets(section string) string {
	lines := strings.Split(section, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ") + "."
}

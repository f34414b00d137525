package usecase

import (
	"strings"

	"github.com/kirillkom/docs-context-mcp/internal/core/domain"
)

// NoRelevantDocsMessage is returned when every candidate was filtered
// out or the docs tree held no candidates at all.
const NoRelevantDocsMessage = "No relevant documentation found for this task."

const sectionSeparator = "---\n\n"

// FormatOutput merges filtered per-file content into one markdown
// document, in the order the items arrived. Callers pass items in
// discovery order, which makes the output deterministic across runs
// regardless of how oracle latency shuffled completion order.
func FormatOutput(items []domain.RelevantContent) string {
	if len(items) == 0 {
		return NoRelevantDocsMessage
	}

	sections := make([]string, 0, len(items))
	for _, item := range items {
		var sb strings.Builder
		sb.WriteString("## ")
		sb.WriteString(item.File)
		sb.WriteString("\n\n")
		sb.WriteString(item.Content)
		sb.WriteString("\n\n")
		sections = append(sections, sb.String())
	}
	return strings.Join(sections, sectionSeparator)
}

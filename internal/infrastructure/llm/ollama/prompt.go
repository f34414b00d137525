package ollama

import (
	"fmt"
	"strings"

	"github.com/kirillkom/docs-context-mcp/internal/core/ports"
)

func buildFileJudgmentPrompt(task string, files []ports.FileSummary) string {
	var listBuilder strings.Builder
	for _, file := range files {
		listBuilder.WriteString(fmt.Sprintf("%d. %s", file.Index, file.Filename))
		if file.Title != "" {
			listBuilder.WriteString(fmt.Sprintf(" — title: %s", file.Title))
		}
		if len(file.Tags) > 0 {
			listBuilder.WriteString(fmt.Sprintf(" — tags: %s", strings.Join(file.Tags, ", ")))
		}
		listBuilder.WriteString("\n")
	}

	return fmt.Sprintf(`You are judging which documentation files are relevant to a coding task.
Return a strict JSON array, one object per file, with keys:
file_index (number, matching the list below), include (boolean), reasoning (string, one short sentence).
No markdown, no extra keys, no wrapper object.
When in doubt, include the file.

Task:
%s

Files:
%s`, task, listBuilder.String())
}

func buildContentPrompt(task, fullText string) string {
	return fmt.Sprintf(`You are pruning a documentation file for a coding task.
Keep the overwhelming majority of the text. Always retain code samples,
structural examples, configuration samples, stated principles, guidelines,
standards, and architectural statements. Remove ONLY sections that are
clearly irrelevant to the task; when uncertain, keep the section.
Return the surviving text as raw prose/markdown with no wrapper, no
commentary, and no annotations. Return an empty response only if truly
nothing is relevant.

Task:
%s

Document:
%s`, task, fullText)
}

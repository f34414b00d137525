package ports

import (
	"context"

	"github.com/kirillkom/docs-context-mcp/internal/core/domain"
)

// DocumentSource enumerates and reads documentation files under a root.
type DocumentSource interface {
	// Discover returns the paths of all candidate files below root, in a
	// stable order. That order is canonical for the whole request: it
	// drives both batched judgment indexing and final output order.
	Discover(ctx context.Context, root string) ([]string, error)
	// Read returns the raw text of one file.
	Read(ctx context.Context, path string) (string, error)
	// ExtractMetadata parses the optional frontmatter header of a file.
	// Absent or malformed frontmatter degrades to filename/path only.
	ExtractMetadata(ctx context.Context, path string) (domain.DocumentMetadata, error)
}

// FileSummary is one line of the batched file-relevance judgment input.
type FileSummary struct {
	Index    int
	Filename string
	Title    string
	Tags     []string
}

// RelevanceOracle is the external judgment capability. Both operations
// run in deterministic (temperature zero) mode; the filter cache
// depends on repeatable output for identical input.
type RelevanceOracle interface {
	// JudgeFiles submits all file summaries in one call and returns
	// per-file include/exclude verdicts.
	JudgeFiles(ctx context.Context, task string, files []FileSummary) ([]domain.Verdict, error)
	// JudgeContent returns the task-relevant subset of fullText as raw
	// markdown. An empty string means nothing was relevant.
	JudgeContent(ctx context.Context, task, fullText string) (string, error)
}

// FilterCache memoizes pruned content keyed by a (content, task) digest.
// Entries live for the process lifetime; there is no eviction and no
// staleness check against the underlying file.
type FilterCache interface {
	Get(key uint64) (string, bool)
	Put(key uint64, value string)
}

package usecase

import (
	"context"
	"hash/fnv"
	"log/slog"
	"strings"

	"github.com/kirillkom/docs-context-mcp/internal/core/ports"
)

// DefaultMinContentChars is the length below which content is returned
// unchanged; pruning overhead is not justified for snippets that small.
const DefaultMinContentChars = 500

type FilterContentUseCase struct {
	oracle   ports.RelevanceOracle
	cache    ports.FilterCache
	minChars int
	logger   *slog.Logger
}

func NewFilterContentUseCase(oracle ports.RelevanceOracle, cache ports.FilterCache, minChars int, logger *slog.Logger) *FilterContentUseCase {
	if minChars <= 0 {
		minChars = DefaultMinContentChars
	}
	return &FilterContentUseCase{
		oracle:   oracle,
		cache:    cache,
		minChars: minChars,
		logger:   logger,
	}
}

// Filter returns the task-relevant subset of content. Results are
// memoized per (content, task) pair for the process lifetime; there is
// no staleness check against the underlying file. Oracle failure falls
// open and returns the content unpruned.
func (uc *FilterContentUseCase) Filter(ctx context.Context, content, task string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	key := contentTaskDigest(content, task)
	if cached, ok := uc.cache.Get(key); ok {
		return cached
	}

	if len(content) < uc.minChars {
		return content
	}

	pruned, err := uc.oracle.JudgeContent(ctx, task, content)
	if err != nil {
		uc.logger.Warn("content relevance judgment failed, keeping content unpruned",
			"content_chars", len(content),
			"error", err,
		)
		return content
	}

	uc.cache.Put(key, pruned)
	return pruned
}

// contentTaskDigest builds an order-sensitive digest of the pair. FNV-1a
// is enough here: the key space is bounded by the distinct (file, task)
// pairs seen in one process, and this is not a security boundary.
func contentTaskDigest(content, task string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(content))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(task))
	return h.Sum64()
}

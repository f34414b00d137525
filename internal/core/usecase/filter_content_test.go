package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/docs-context-mcp/internal/core/domain"
	"github.com/kirillkom/docs-context-mcp/internal/core/ports"
)

type contentOracleFake struct {
	pruned     string
	contentErr error
	calls      int
}

func (f *contentOracleFake) JudgeFiles(context.Context, string, []ports.FileSummary) ([]domain.Verdict, error) {
	return nil, nil
}

func (f *contentOracleFake) JudgeContent(_ context.Context, _ string, _ string) (string, error) {
	f.calls++
	if f.contentErr != nil {
		return "", f.contentErr
	}
	return f.pruned, nil
}

type mapCache struct {
	entries map[uint64]string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[uint64]string)}
}

func (c *mapCache) Get(key uint64) (string, bool) {
	value, ok := c.entries[key]
	return value, ok
}

func (c *mapCache) Put(key uint64, value string) {
	c.entries[key] = value
}

func longContent() string {
	return strings.Repeat("All logging goes through the structured logger. ", 20)
}

func TestFilterContentEmptyInput(t *testing.T) {
	oracle := &contentOracleFake{}
	cache := newMapCache()
	uc := NewFilterContentUseCase(oracle, cache, 500, testLogger())

	for _, content := range []string{"", "   ", "\n\t\n"} {
		if got := uc.Filter(context.Background(), content, "task"); got != "" {
			t.Fatalf("expected empty result for %q, got %q", content, got)
		}
	}
	if oracle.calls != 0 {
		t.Fatalf("expected no oracle calls, got %d", oracle.calls)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("expected no cache writes, got %d", len(cache.entries))
	}
}

func TestFilterContentShortInputUnchanged(t *testing.T) {
	oracle := &contentOracleFake{pruned: "should not be used"}
	uc := NewFilterContentUseCase(oracle, newMapCache(), 500, testLogger())

	content := "Short note about logging."
	if got := uc.Filter(context.Background(), content, "task"); got != content {
		t.Fatalf("expected verbatim content, got %q", got)
	}
	if oracle.calls != 0 {
		t.Fatalf("expected no oracle calls, got %d", oracle.calls)
	}
}

func TestFilterContentCachesOracleResult(t *testing.T) {
	oracle := &contentOracleFake{pruned: "pruned text"}
	uc := NewFilterContentUseCase(oracle, newMapCache(), 500, testLogger())

	content := longContent()
	first := uc.Filter(context.Background(), content, "task")
	second := uc.Filter(context.Background(), content, "task")

	if first != "pruned text" || second != first {
		t.Fatalf("expected identical cached result, got %q / %q", first, second)
	}
	if oracle.calls != 1 {
		t.Fatalf("expected one oracle call, got %d", oracle.calls)
	}
}

func TestFilterContentDistinctTasksAreDistinctKeys(t *testing.T) {
	oracle := &contentOracleFake{pruned: "pruned"}
	uc := NewFilterContentUseCase(oracle, newMapCache(), 500, testLogger())

	content := longContent()
	uc.Filter(context.Background(), content, "task one")
	uc.Filter(context.Background(), content, "task two")

	if oracle.calls != 2 {
		t.Fatalf("expected separate oracle calls per task, got %d", oracle.calls)
	}
}

func TestFilterContentFailsOpenOnOracleError(t *testing.T) {
	oracle := &contentOracleFake{contentErr: errors.New("oracle down")}
	cache := newMapCache()
	uc := NewFilterContentUseCase(oracle, cache, 500, testLogger())

	content := longContent()
	if got := uc.Filter(context.Background(), content, "task"); got != content {
		t.Fatalf("expected original content back, got %q", got)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("failed calls must not be cached, got %d entries", len(cache.entries))
	}

	// A second call must try the oracle again rather than reuse a
	// poisoned entry.
	uc.Filter(context.Background(), content, "task")
	if oracle.calls != 2 {
		t.Fatalf("expected retry on second call, got %d calls", oracle.calls)
	}
}

func TestContentTaskDigestIsOrderSensitive(t *testing.T) {
	if contentTaskDigest("alpha", "beta") == contentTaskDigest("beta", "alpha") {
		t.Fatal("digest must distinguish (content, task) from (task, content)")
	}
	if contentTaskDigest("alpha", "beta") != contentTaskDigest("alpha", "beta") {
		t.Fatal("digest must be deterministic")
	}
}

package metrics

import (
	"context"
	"time"

	"github.com/kirillkom/docs-context-mcp/internal/core/domain"
	"github.com/kirillkom/docs-context-mcp/internal/core/ports"
)

// InstrumentedOracle decorates a RelevanceOracle with call counters,
// durations, and an in-flight gauge. The wrapped oracle keeps its
// error semantics untouched: the core's fail-open branches still see
// the original errors.
type InstrumentedOracle struct {
	inner   ports.RelevanceOracle
	service string
	metrics *PipelineMetrics
}

func NewInstrumentedOracle(inner ports.RelevanceOracle, service string, metrics *PipelineMetrics) *InstrumentedOracle {
	return &InstrumentedOracle{inner: inner, service: service, metrics: metrics}
}

func (o *InstrumentedOracle) JudgeFiles(ctx context.Context, task string, files []ports.FileSummary) ([]domain.Verdict, error) {
	o.metrics.StartOracleCall()
	start := time.Now()

	verdicts, err := o.inner.JudgeFiles(ctx, task, files)

	o.metrics.FinishOracleCall(o.service, "judge_files", time.Since(start), err)
	return verdicts, err
}

func (o *InstrumentedOracle) JudgeContent(ctx context.Context, task, fullText string) (string, error) {
	o.metrics.StartOracleCall()
	start := time.Now()

	pruned, err := o.inner.JudgeContent(ctx, task, fullText)

	o.metrics.FinishOracleCall(o.service, "judge_content", time.Since(start), err)
	return pruned, err
}

// InstrumentedCache decorates a FilterCache with hit/miss counters.
type InstrumentedCache struct {
	inner   ports.FilterCache
	service string
	metrics *PipelineMetrics
}

func NewInstrumentedCache(inner ports.FilterCache, service string, metrics *PipelineMetrics) *InstrumentedCache {
	return &InstrumentedCache{inner: inner, service: service, metrics: metrics}
}

func (c *InstrumentedCache) Get(key uint64) (string, bool) {
	value, ok := c.inner.Get(key)
	c.metrics.ObserveCacheLookup(c.service, ok)
	return value, ok
}

func (c *InstrumentedCache) Put(key uint64, value string) {
	c.inner.Put(key, value)
}

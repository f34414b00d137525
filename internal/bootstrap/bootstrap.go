// Package bootstrap is the composition root: it creates concrete
// implementations and injects them into the core. No business logic
// lives here.
package bootstrap

import (
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/docs-context-mcp/internal/adapters/mcp"
	"github.com/kirillkom/docs-context-mcp/internal/config"
	"github.com/kirillkom/docs-context-mcp/internal/core/ports"
	"github.com/kirillkom/docs-context-mcp/internal/core/usecase"
	"github.com/kirillkom/docs-context-mcp/internal/infrastructure/cache/memory"
	"github.com/kirillkom/docs-context-mcp/internal/infrastructure/docsource/localfs"
	"github.com/kirillkom/docs-context-mcp/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/docs-context-mcp/internal/infrastructure/resilience"
	"github.com/kirillkom/docs-context-mcp/internal/observability/logging"
	"github.com/kirillkom/docs-context-mcp/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.PipelineMetrics

	Builder ports.ContextBuilder
	Server  *mcpserver.MCPServer
}

func New(cfg config.Config) *App {
	logger := logging.NewJSONLogger("docs-context-mcp", cfg.LogLevel)
	pipelineMetrics := metrics.NewPipelineMetrics("docs-context-mcp")

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    cfg.RetryMaxAttempts,
		RetryInitialBackoff: cfg.RetryInitialBackoff,
		RetryMaxBackoff:     cfg.RetryMaxBackoff,
		RateLimitRPS:        cfg.OracleRateRPS,
		RateLimitBurst:      cfg.OracleRateBurst,
		BreakerEnabled:      cfg.BreakerEnabled,
	})

	client := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel)
	oracle := metrics.NewInstrumentedOracle(ollama.NewOracle(client, executor), "docs-context-mcp", pipelineMetrics)

	// The filter cache lives for the whole process: repeat requests for
	// unchanged (content, task) pairs never hit the oracle twice.
	filterCache := metrics.NewInstrumentedCache(memory.New(), "docs-context-mcp", pipelineMetrics)

	source := localfs.New()
	filesUC := usecase.NewFilterFilesUseCase(oracle, cfg.FilterBatchThreshold, logger)
	contentUC := usecase.NewFilterContentUseCase(oracle, filterCache, cfg.FilterMinContentChars, logger)
	scheduler := usecase.NewScheduler(cfg.FilterConcurrency)
	builder := usecase.NewBuildContextUseCase(source, filesUC, contentUC, scheduler, logger)

	tool := mcpadapter.NewContextTool(builder, logger, pipelineMetrics)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: pipelineMetrics,
		Builder: builder,
		Server:  mcpadapter.NewServer(tool),
	}
}

// Package mcp exposes the context-building pipeline as an MCP tool.
// The handler never lets an error escape: success returns the assembled
// markdown, failure returns a structured JSON payload with IsError set.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kirillkom/docs-context-mcp/internal/core/ports"
	"github.com/kirillkom/docs-context-mcp/internal/observability/metrics"
)

const serviceName = "docs-context-mcp"

// ContextTool handles the get_relevant_docs MCP tool.
type ContextTool struct {
	builder ports.ContextBuilder
	logger  *slog.Logger
	metrics *metrics.PipelineMetrics
}

func NewContextTool(builder ports.ContextBuilder, logger *slog.Logger, m *metrics.PipelineMetrics) *ContextTool {
	return &ContextTool{builder: builder, logger: logger, metrics: m}
}

// Definition returns the MCP tool definition for registration.
func (t *ContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_relevant_docs",
		mcp.WithDescription(
			"Extract task-relevant excerpts from a documentation tree and return "+
				"them as one assembled markdown document. Files and file content "+
				"judged irrelevant to the task are filtered out; on any doubt the "+
				"content is kept.",
		),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("Natural-language description of the coding task the documentation should support."),
		),
		mcp.WithString("docs_path",
			mcp.Required(),
			mcp.Description("Root directory of the documentation tree to search."),
		),
	)
}

// Handle processes one get_relevant_docs call.
func (t *ContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID := uuid.NewString()
	task := req.GetString("task", "")
	docsPath := req.GetString("docs_path", "")

	if strings.TrimSpace(task) == "" {
		return t.failure(requestID, "task is required and must not be empty"), nil
	}
	if strings.TrimSpace(docsPath) == "" {
		return t.failure(requestID, "docs_path is required and must not be empty"), nil
	}

	start := time.Now()
	output, err := t.builder.Build(ctx, task, docsPath)
	duration := time.Since(start)
	t.metrics.ObserveRequest(serviceName, duration, err)

	if err != nil {
		t.logger.Error("context build failed",
			"request_id", requestID,
			"docs_path", docsPath,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return t.failure(requestID, err.Error()), nil
	}

	t.logger.Info("context build completed",
		"request_id", requestID,
		"docs_path", docsPath,
		"duration_ms", duration.Milliseconds(),
		"output_chars", len(output),
	)
	return mcp.NewToolResultText(output), nil
}

type errorPayload struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// failure renders the structured failure contract: a text content block
// carrying a JSON error payload, flagged as an error result.
func (t *ContextTool) failure(requestID, message string) *mcp.CallToolResult {
	t.logger.Warn("returning error result", "request_id", requestID, "error", message)

	payload, err := json.Marshal(errorPayload{Error: message, Status: "failed"})
	if err != nil {
		payload = []byte(`{"error":"internal error","status":"failed"}`)
	}
	result := mcp.NewToolResultText(string(payload))
	result.IsError = true
	return result
}

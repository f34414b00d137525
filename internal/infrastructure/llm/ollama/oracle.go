package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/docs-context-mcp/internal/core/domain"
	"github.com/kirillkom/docs-context-mcp/internal/core/ports"
	"github.com/kirillkom/docs-context-mcp/internal/infrastructure/resilience"
)

// Oracle adapts the Ollama generate API to the relevance-judgment port.
// Calls are wrapped by the resilience executor; errors that survive its
// retries still reach the core, where the filters fail open.
type Oracle struct {
	client *Client
	exec   *resilience.Executor
}

func NewOracle(client *Client, exec *resilience.Executor) *Oracle {
	return &Oracle{client: client, exec: exec}
}

func (o *Oracle) JudgeFiles(ctx context.Context, task string, files []ports.FileSummary) ([]domain.Verdict, error) {
	prompt := buildFileJudgmentPrompt(task, files)

	var raw string
	err := o.exec.Execute(ctx, "judge_files", func(ctx context.Context) error {
		response, err := o.client.generateJSON(ctx, prompt)
		if err != nil {
			return err
		}
		raw = response
		return nil
	}, classifyOracleError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded("judge files", err)
	}

	verdicts, err := parseVerdicts(raw)
	if err != nil {
		return nil, domain.WrapError(domain.ErrOracleUnavailable, "judge files", err)
	}
	return verdicts, nil
}

func (o *Oracle) JudgeContent(ctx context.Context, task, fullText string) (string, error) {
	prompt := buildContentPrompt(task, fullText)

	var pruned string
	err := o.exec.Execute(ctx, "judge_content", func(ctx context.Context) error {
		response, err := o.client.generateText(ctx, prompt)
		if err != nil {
			return err
		}
		pruned = response
		return nil
	}, classifyOracleError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("judge content", err)
	}
	return pruned, nil
}

// parseVerdicts extracts the verdict list from the raw oracle response.
// The model is instructed to return a bare JSON array, but a wrapper
// object around it is tolerated; anything without a well-formed array
// is an error and the caller falls open.
func parseVerdicts(raw string) ([]domain.Verdict, error) {
	payload := extractJSONArray(raw)
	if payload == "" {
		return nil, errors.New("no verdict list in oracle response")
	}

	// include is a pointer so an absent key defaults to inclusion, per
	// the fail-open contract.
	var items []struct {
		FileIndex int    `json:"file_index"`
		Include   *bool  `json:"include"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("parse verdict list: %w", err)
	}

	verdicts := make([]domain.Verdict, len(items))
	for i, item := range items {
		verdicts[i] = domain.Verdict{
			FileIndex: item.FileIndex,
			Include:   item.Include == nil || *item.Include,
			Reasoning: item.Reasoning,
		}
	}
	return verdicts, nil
}

func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return ""
}

package usecase

import (
	"context"
	"log/slog"

	"github.com/kirillkom/docs-context-mcp/internal/core/domain"
	"github.com/kirillkom/docs-context-mcp/internal/core/ports"
)

// DefaultBatchThreshold is the candidate count at or below which the
// file filter keeps everything without consulting the oracle. At that
// scale the cost of a wrong exclusion outweighs the cost of the call.
const DefaultBatchThreshold = 3

type FilterFilesUseCase struct {
	oracle         ports.RelevanceOracle
	batchThreshold int
	logger         *slog.Logger
}

func NewFilterFilesUseCase(oracle ports.RelevanceOracle, batchThreshold int, logger *slog.Logger) *FilterFilesUseCase {
	if batchThreshold <= 0 {
		batchThreshold = DefaultBatchThreshold
	}
	return &FilterFilesUseCase{
		oracle:         oracle,
		batchThreshold: batchThreshold,
		logger:         logger,
	}
}

// Filter reduces the candidate set to the files worth expanding. One
// batched oracle call covers the whole set, keeping call volume O(1)
// in the number of files. Any oracle failure falls open: the original
// slice is returned untouched, with no scores stamped.
func (uc *FilterFilesUseCase) Filter(ctx context.Context, files []domain.DocumentMetadata, task string) ([]domain.DocumentMetadata, domain.FilterOutcome) {
	if len(files) == 0 {
		return files, domain.OutcomeShortCircuit
	}
	if len(files) <= uc.batchThreshold {
		kept := make([]domain.DocumentMetadata, len(files))
		for i, file := range files {
			kept[i] = stampKept(file)
		}
		return kept, domain.OutcomeShortCircuit
	}

	summaries := make([]ports.FileSummary, len(files))
	for i, file := range files {
		summaries[i] = ports.FileSummary{
			Index:    i + 1,
			Filename: file.Filename,
			Title:    file.Title,
			Tags:     file.Tags,
		}
	}

	verdicts, err := uc.oracle.JudgeFiles(ctx, task, summaries)
	if err != nil {
		uc.logger.Warn("file relevance judgment failed, keeping all files",
			"file_count", len(files),
			"error", err,
		)
		return files, domain.OutcomeFailOpen
	}

	byIndex := make(map[int]domain.Verdict, len(verdicts))
	for _, verdict := range verdicts {
		byIndex[verdict.FileIndex] = verdict
	}

	kept := make([]domain.DocumentMetadata, 0, len(files))
	for i, file := range files {
		// A missing verdict means the oracle said nothing about this
		// file; ambiguity defaults to keeping it.
		if verdict, ok := byIndex[i+1]; ok && !verdict.Include {
			continue
		}
		kept = append(kept, stampKept(file))
	}

	uc.logger.Debug("file relevance judgment applied",
		"candidates", len(files),
		"kept", len(kept),
	)
	return kept, domain.OutcomeJudged
}

// stampKept copies the metadata with a binary relevance score of 1.0.
func stampKept(file domain.DocumentMetadata) domain.DocumentMetadata {
	score := 1.0
	file.RelevanceScore = &score
	return file
}

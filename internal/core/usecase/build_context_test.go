package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kirillkom/docs-context-mcp/internal/core/domain"
	"github.com/kirillkom/docs-context-mcp/internal/core/ports"
)

type sourceFake struct {
	paths       []string
	contents    map[string]string
	metadata    map[string]domain.DocumentMetadata
	discoverErr error
	readErrs    map[string]error
	metaErrs    map[string]error
}

func (f *sourceFake) Discover(_ context.Context, root string) ([]string, error) {
	if f.discoverErr != nil {
		return nil, f.discoverErr
	}
	return f.paths, nil
}

func (f *sourceFake) Read(_ context.Context, path string) (string, error) {
	if err := f.readErrs[path]; err != nil {
		return "", err
	}
	return f.contents[path], nil
}

func (f *sourceFake) ExtractMetadata(_ context.Context, path string) (domain.DocumentMetadata, error) {
	if err := f.metaErrs[path]; err != nil {
		return domain.DocumentMetadata{}, err
	}
	if meta, ok := f.metadata[path]; ok {
		return meta, nil
	}
	return domain.DocumentMetadata{Filename: filepath.Base(path), Path: path}, nil
}

type pipelineOracleFake struct {
	excludeIndexes map[int]bool
	judgeErr       error
	judgeCalls     int
	judgeFileCount int
	contentCalls   int
}

func (f *pipelineOracleFake) JudgeFiles(_ context.Context, _ string, files []ports.FileSummary) ([]domain.Verdict, error) {
	f.judgeCalls++
	f.judgeFileCount = len(files)
	if f.judgeErr != nil {
		return nil, f.judgeErr
	}
	verdicts := make([]domain.Verdict, len(files))
	for i, file := range files {
		verdicts[i] = domain.Verdict{FileIndex: file.Index, Include: !f.excludeIndexes[file.Index]}
	}
	return verdicts, nil
}

func (f *pipelineOracleFake) JudgeContent(_ context.Context, _ string, fullText string) (string, error) {
	f.contentCalls++
	return fullText, nil
}

func newBuildUC(source *sourceFake, oracle ports.RelevanceOracle) *BuildContextUseCase {
	logger := testLogger()
	return NewBuildContextUseCase(
		source,
		NewFilterFilesUseCase(oracle, 3, logger),
		NewFilterContentUseCase(oracle, newMapCache(), 500, logger),
		NewScheduler(4),
		logger,
	)
}

func fiveFileSource() *sourceFake {
	source := &sourceFake{
		contents: make(map[string]string),
		metadata: make(map[string]domain.DocumentMetadata),
		readErrs: make(map[string]error),
		metaErrs: make(map[string]error),
	}
	for i := 1; i <= 5; i++ {
		path := fmt.Sprintf("/docs/file%d.md", i)
		source.paths = append(source.paths, path)
		source.contents[path] = fmt.Sprintf("Content of file %d.", i)
	}
	source.metadata["/docs/file1.md"] = domain.DocumentMetadata{
		Filename: "file1.md", Path: "/docs/file1.md", Title: "Logging", Tags: []string{"logging", "observability"},
	}
	source.metadata["/docs/file2.md"] = domain.DocumentMetadata{
		Filename: "file2.md", Path: "/docs/file2.md", Tags: []string{"setup"},
	}
	return source
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	uc := newBuildUC(fiveFileSource(), &pipelineOracleFake{})

	if _, err := uc.Build(context.Background(), "  ", "/docs"); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error for blank task, got %v", err)
	}
	if _, err := uc.Build(context.Background(), "task", ""); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error for blank docsPath, got %v", err)
	}
}

func TestBuildPropagatesDiscoveryError(t *testing.T) {
	source := fiveFileSource()
	source.discoverErr = errors.New("permission denied")
	uc := newBuildUC(source, &pipelineOracleFake{})

	if _, err := uc.Build(context.Background(), "task", "/docs"); err == nil {
		t.Fatal("expected discovery error to abort the request")
	}
}

func TestBuildEndToEndExcludesJudgedFile(t *testing.T) {
	source := fiveFileSource()
	oracle := &pipelineOracleFake{excludeIndexes: map[int]bool{3: true}}
	uc := newBuildUC(source, oracle)

	out, err := uc.Build(context.Background(), "refactor logging module", "/docs")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if oracle.judgeCalls != 1 {
		t.Fatalf("expected exactly one batched judgment call, got %d", oracle.judgeCalls)
	}
	if oracle.judgeFileCount != 5 {
		t.Fatalf("expected 5 indexed summaries, got %d", oracle.judgeFileCount)
	}

	for _, name := range []string{"file1.md", "file2.md", "file4.md", "file5.md"} {
		if !strings.Contains(out, "## "+name) {
			t.Fatalf("expected section for %s in output:\n%s", name, out)
		}
	}
	if strings.Contains(out, "file3.md") {
		t.Fatalf("excluded file leaked into output:\n%s", out)
	}

	// Sections must follow discovery order.
	if strings.Index(out, "## file1.md") > strings.Index(out, "## file2.md") ||
		strings.Index(out, "## file2.md") > strings.Index(out, "## file4.md") ||
		strings.Index(out, "## file4.md") > strings.Index(out, "## file5.md") {
		t.Fatalf("sections out of discovery order:\n%s", out)
	}
}

func TestBuildFailsOpenWhenJudgmentUnusable(t *testing.T) {
	source := fiveFileSource()
	oracle := &pipelineOracleFake{judgeErr: errors.New("no verdict list in oracle response")}
	uc := newBuildUC(source, oracle)

	out, err := uc.Build(context.Background(), "task", "/docs")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for i := 1; i <= 5; i++ {
		if !strings.Contains(out, fmt.Sprintf("## file%d.md", i)) {
			t.Fatalf("fail-open must keep all files, missing file%d:\n%s", i, out)
		}
	}
}

func TestBuildSubstitutesInlineMarkerOnReadError(t *testing.T) {
	source := fiveFileSource()
	source.readErrs["/docs/file2.md"] = errors.New("file vanished")
	uc := newBuildUC(source, &pipelineOracleFake{})

	out, err := uc.Build(context.Background(), "task", "/docs")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(out, "Error reading file:") || !strings.Contains(out, "file vanished") {
		t.Fatalf("expected inline read-error marker:\n%s", out)
	}
	// The other files still made it through.
	if !strings.Contains(out, "Content of file 1.") {
		t.Fatalf("sibling content missing:\n%s", out)
	}
}

func TestBuildDegradesToMinimalMetadata(t *testing.T) {
	source := fiveFileSource()
	source.metaErrs["/docs/file1.md"] = errors.New("unreadable header")
	oracle := &pipelineOracleFake{}
	uc := newBuildUC(source, oracle)

	out, err := uc.Build(context.Background(), "task", "/docs")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(out, "## file1.md") {
		t.Fatalf("file with failed metadata must still be processed:\n%s", out)
	}
}

func TestBuildEmptyTreeReturnsPlaceholder(t *testing.T) {
	source := &sourceFake{}
	uc := newBuildUC(source, &pipelineOracleFake{})

	out, err := uc.Build(context.Background(), "task", "/docs")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if out != NoRelevantDocsMessage {
		t.Fatalf("expected placeholder, got %q", out)
	}
}

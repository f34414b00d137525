package localfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/docs-context-mcp/internal/core/domain"
)

// docExtensions is the fixed set of file types treated as documentation.
var docExtensions = map[string]bool{
	".md":       true,
	".mdx":      true,
	".markdown": true,
	".txt":      true,
}

// Source reads documentation files from the local filesystem.
type Source struct{}

func New() *Source {
	return &Source{}
}

// Discover walks root recursively and returns every documentation file
// below it. filepath.WalkDir visits entries in lexical order, so the
// result is stable for identical trees.
func (s *Source) Discover(_ context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDocsPathNotFound, "stat docs path", err)
	}
	if !info.IsDir() {
		return nil, domain.WrapError(domain.ErrDocsPathNotFound, "stat docs path", fmt.Errorf("%s is not a directory", root))
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if docExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs tree: %w", err)
	}
	return paths, nil
}

func (s *Source) Read(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", path, err)
	}
	return string(data), nil
}

// frontmatter is the declared header block of a document.
type frontmatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

// ExtractMetadata reads the optional YAML frontmatter of a document.
// A missing or malformed header is not an error: the metadata degrades
// to filename and path only.
func (s *Source) ExtractMetadata(ctx context.Context, path string) (domain.DocumentMetadata, error) {
	meta := domain.DocumentMetadata{
		Filename: filepath.Base(path),
		Path:     path,
	}

	text, err := s.Read(ctx, path)
	if err != nil {
		return domain.DocumentMetadata{}, err
	}

	header, ok := frontmatterBlock(text)
	if !ok {
		return meta, nil
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return meta, nil
	}
	meta.Title = fm.Title
	meta.Tags = fm.Tags
	return meta, nil
}

// frontmatterBlock returns the text between the leading "---" delimiter
// pair, if the document starts with one.
func frontmatterBlock(text string) (string, bool) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return "", false
	}
	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

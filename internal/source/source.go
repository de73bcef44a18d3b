package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"dlpick/internal/domain"
)

// Source supplies the list of remote files
type Source interface {
	Load(ctx context.Context) ([]domain.Item, error)
	Name() string
}

// record is one file as it appears in a manifest
type record struct {
	Name   string `json:"name" toml:"name"`
	Device string `json:"device" toml:"device"`
	Path   string `json:"path" toml:"path"`
	Status string `json:"status" toml:"status"`
}

// manifest is the object form of a file list
type manifest struct {
	Files []record `json:"files" toml:"files"`
}

func toItems(records []record) []domain.Item {
	items := make([]domain.Item, 0, len(records))
	for _, r := range records {
		items = append(items, domain.Item{
			Name:   r.Name,
			Device: r.Device,
			Path:   r.Path,
			Status: r.Status,
		})
	}
	return items
}

// DecodeTOML parses a manifest made of [[files]] tables
func DecodeTOML(data []byte) ([]domain.Item, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse toml manifest: %w", err)
	}
	return toItems(m.Files), nil
}

// DecodeJSON parses either a bare array of files or an object with a "files" array
func DecodeJSON(data []byte) ([]domain.Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("failed to parse json manifest: %w", err)
		}
		return toItems(records), nil
	}

	var m manifest
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, fmt.Errorf("failed to parse json manifest: %w", err)
	}
	return toItems(m.Files), nil
}

// FileSource reads a manifest from disk on every Load
type FileSource struct {
	path string
}

// NewFileSource creates a source for a .toml or .json manifest
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the manifest path
func (s *FileSource) Name() string {
	return s.path
}

// Load reads and decodes the manifest
func (s *FileSource) Load(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".toml":
		return DecodeTOML(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", s.path)
	}
}

// StaticSource serves a fixed list
type StaticSource struct {
	name  string
	items []domain.Item
}

// NewStaticSource creates a source that always returns items
func NewStaticSource(name string, items []domain.Item) *StaticSource {
	return &StaticSource{name: name, items: items}
}

// Name returns the source name
func (s *StaticSource) Name() string {
	return s.name
}

// Load returns a copy of the fixed list
func (s *StaticSource) Load(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/pkg/config"
	"github.com/wonny/eventlens/pkg/httputil"
	"github.com/wonny/eventlens/pkg/logger"
)

// Source reads the raw document of one dataset
type Source interface {
	Fetch(ctx context.Context, name contracts.DatasetName) ([]byte, error)
	Location(name contracts.DatasetName) string
}

// NewSource picks the HTTP source when a base URL is configured, the directory otherwise
func NewSource(cfg *config.Config, log *logger.Logger) Source {
	if cfg.Data.BaseURL != "" {
		return NewHTTPSource(cfg.Data.BaseURL, httputil.New(cfg, log))
	}
	return &FileSource{Dir: cfg.Data.Dir}
}

// FileSource reads <Dir>/<name>.json
type FileSource struct {
	Dir string
}

// Fetch implements Source
func (s *FileSource) Fetch(ctx context.Context, name contracts.DatasetName) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := os.ReadFile(s.Location(name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name.FileName(), err)
	}
	return body, nil
}

// Location implements Source
func (s *FileSource) Location(name contracts.DatasetName) string {
	return filepath.Join(s.Dir, name.FileName())
}

// HTTPSource GETs <BaseURL>/<name>.json, once, without retry
type HTTPSource struct {
	BaseURL string
	client  *httputil.Client
}

// NewHTTPSource creates an HTTP source
func NewHTTPSource(baseURL string, client *httputil.Client) *HTTPSource {
	return &HTTPSource{BaseURL: baseURL, client: client}
}

// Fetch implements Source
func (s *HTTPSource) Fetch(ctx context.Context, name contracts.DatasetName) ([]byte, error) {
	return s.client.GetBytes(ctx, s.Location(name))
}

// Location implements Source
func (s *HTTPSource) Location(name contracts.DatasetName) string {
	return s.BaseURL + "/" + name.FileName()
}

package repository

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Yaz-U/ai-news-daily/domain"
)

// PageRepository writes rendered artifacts into the web directory.
type PageRepository struct {
	webDir string
	logger *slog.Logger
}

func NewPageRepository(webDir string, logger *slog.Logger) *PageRepository {
	return &PageRepository{webDir: webDir, logger: logger}
}

// WritePage atomically replaces name under the web directory.
func (r *PageRepository) WritePage(ctx context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(r.webDir, filepath.Base(name))
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write page: %v", domain.ErrPublish, err)
	}
	r.logger.InfoContext(ctx, "page written", "path", path, "bytes", len(data))
	return path, nil
}

package publish_port

import (
	"context"
	"io"

	"github.com/Yaz-U/ai-news-daily/domain"
)

// RendererPort turns the current snapshot and its history into a page.
type RendererPort interface {
	Render(w io.Writer, current *domain.Snapshot, history []*domain.Snapshot) error
}

// UploaderPort pushes a rendered artifact to the remote target.
type UploaderPort interface {
	Upload(ctx context.Context, name string, r io.Reader) error
	Configured() bool
}

// PageWriterPort stores a rendered artifact locally and returns its path.
type PageWriterPort interface {
	WritePage(ctx context.Context, name string, data []byte) (string, error)
}

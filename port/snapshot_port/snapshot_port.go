package snapshot_port

import (
	"context"

	"github.com/Yaz-U/ai-news-daily/domain"
)

// SnapshotPort persists run results and reads them back.
type SnapshotPort interface {
	Save(ctx context.Context, snap *domain.Snapshot) (string, error)
	History(ctx context.Context, limit int) ([]*domain.Snapshot, error)
	Latest(ctx context.Context) (*domain.Snapshot, error)
}

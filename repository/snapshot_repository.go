// ABOUTME: This file persists run snapshots as timestamped JSON files plus a latest pointer
// ABOUTME: History is rebuilt from the file names on every read and never cached
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/Yaz-U/ai-news-daily/domain"
)

const (
	LatestFileName = "latest.json"

	snapshotTimeLayout = "20060102_150405"

	// runs within the same second get _2.._9 suffixes
	maxSameSecondSnapshots = 9
)

var snapshotFilePattern = regexp.MustCompile(`^news_\d{8}_\d{6}(_[2-9])?\.json$`)

// SnapshotFileName returns the archive name for a snapshot taken at the
// given local time. Lexical order of these names is chronological order.
func SnapshotFileName(snap *domain.Snapshot) string {
	return snapshotFileName(snap, 1)
}

// snapshotFileName returns the n-th name for the snapshot's second. The
// suffixed names sort after the plain one, so they read as newer.
func snapshotFileName(snap *domain.Snapshot, n int) string {
	base := "news_" + snap.Timestamp.Format(snapshotTimeLayout)
	if n > 1 {
		base += "_" + strconv.Itoa(n)
	}
	return base + ".json"
}

type SnapshotRepository struct {
	dataDir string
	logger  *slog.Logger
}

func NewSnapshotRepository(dataDir string, logger *slog.Logger) *SnapshotRepository {
	return &SnapshotRepository{dataDir: dataDir, logger: logger}
}

// Save writes the archive file and the latest pointer with identical bytes
// and returns the archive path.
func (r *SnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) (string, error) {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", domain.ErrSnapshotWrite, err)
	}

	archivePath, err := r.writeArchive(snap, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSnapshotWrite, err)
	}

	latestPath := filepath.Join(r.dataDir, LatestFileName)
	if err := writeFileAtomic(latestPath, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSnapshotWrite, err)
	}

	r.logger.InfoContext(ctx, "snapshot saved",
		"path", archivePath,
		"run_id", snap.RunID,
		"bytes", len(data))

	return archivePath, nil
}

// writeArchive creates the archive file without ever replacing an existing
// one.
func (r *SnapshotRepository) writeArchive(snap *domain.Snapshot, data []byte) (string, error) {
	for n := 1; n <= maxSameSecondSnapshots; n++ {
		path := filepath.Join(r.dataDir, snapshotFileName(snap, n))
		err := writeFileExclusive(path, data, 0o644)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("more than %d snapshots at %s", maxSameSecondSnapshots, snap.Timestamp.Format(snapshotTimeLayout))
}

// History returns up to limit snapshots, most recent first. Files that
// cannot be read or decoded are skipped with a warning.
func (r *SnapshotRepository) History(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*domain.Snapshot{}, nil
		}
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && snapshotFilePattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	history := make([]*domain.Snapshot, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := readSnapshot(filepath.Join(r.dataDir, name))
		if err != nil {
			r.logger.WarnContext(ctx, "skipping unreadable snapshot", "file", name, "error", err)
			continue
		}
		history = append(history, snap)
	}

	return history, nil
}

// Latest reads the latest pointer.
func (r *SnapshotRepository) Latest(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := readSnapshot(filepath.Join(r.dataDir, LatestFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrSnapshotNotFound
	}
	return snap, err
}

func encodeSnapshot(snap *domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readSnapshot(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &snap, nil
}

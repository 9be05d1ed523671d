package publish_usecase

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/metrics"
	"github.com/Yaz-U/ai-news-daily/port/publish_port"
	apperrors "github.com/Yaz-U/ai-news-daily/utils/errors"
)

const PageName = "index.html"

// PublishResult describes what happened to the rendered page.
type PublishResult struct {
	PagePath  string
	Uploaded  bool
	UploadErr error
}

type PublishUsecase struct {
	renderer publish_port.RendererPort
	pages    publish_port.PageWriterPort
	uploader publish_port.UploaderPort
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// NewPublishUsecase creates the publisher. uploader may be nil.
func NewPublishUsecase(
	renderer publish_port.RendererPort,
	pages publish_port.PageWriterPort,
	uploader publish_port.UploaderPort,
	collector *metrics.Collector,
	logger *slog.Logger,
) *PublishUsecase {
	return &PublishUsecase{
		renderer: renderer,
		pages:    pages,
		uploader: uploader,
		metrics:  collector,
		logger:   logger,
	}
}

// Execute renders and writes the page, then pushes it when an upload target
// is configured. Only render and local write failures are returned; an upload
// failure is reported in the result.
func (u *PublishUsecase) Execute(ctx context.Context, current *domain.Snapshot, history []*domain.Snapshot) (PublishResult, error) {
	var result PublishResult

	var buf bytes.Buffer
	if err := u.renderer.Render(&buf, current, history); err != nil {
		return result, apperrors.PublishError("render page", err, nil)
	}

	path, err := u.pages.WritePage(ctx, PageName, buf.Bytes())
	if err != nil {
		return result, apperrors.PublishError("write page", err, map[string]interface{}{"name": PageName})
	}
	result.PagePath = path

	if u.uploader == nil || !u.uploader.Configured() {
		u.logger.InfoContext(ctx, "upload target not configured, skipping push")
		u.metrics.RecordPublish(metrics.StatusSkipped)
		return result, nil
	}

	if err := u.uploader.Upload(ctx, PageName, bytes.NewReader(buf.Bytes())); err != nil {
		result.UploadErr = err
		u.metrics.RecordPublish(metrics.StatusFailure)
		u.logger.ErrorContext(ctx, "page upload failed", "name", PageName, "error", err)
		return result, nil
	}

	result.Uploaded = true
	u.metrics.RecordPublish(metrics.StatusSuccess)
	u.logger.InfoContext(ctx, "page uploaded", "name", PageName, "bytes", buf.Len())
	return result, nil
}

package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/Yaz-U/ai-news-daily/config"
	"github.com/Yaz-U/ai-news-daily/driver"
	"github.com/Yaz-U/ai-news-daily/metrics"
	"github.com/Yaz-U/ai-news-daily/port/llm_port"
	"github.com/Yaz-U/ai-news-daily/render"
	"github.com/Yaz-U/ai-news-daily/repository"
	"github.com/Yaz-U/ai-news-daily/usecase/curate_usecase"
	"github.com/Yaz-U/ai-news-daily/usecase/digest_usecase"
	"github.com/Yaz-U/ai-news-daily/usecase/pipeline_usecase"
	"github.com/Yaz-U/ai-news-daily/usecase/publish_usecase"
	"github.com/Yaz-U/ai-news-daily/utils/otel"
	"github.com/Yaz-U/ai-news-daily/utils/rate_limiter"
)

// initTelemetry installs the OTel providers. The returned shutdown is always
// safe to call.
func initTelemetry(ctx context.Context, cfg *config.Config, logger *slog.Logger) otel.ShutdownFunc {
	shutdown, err := otel.InitProvider(ctx, otel.Config{
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.OTel.Environment,
		OTLPEndpoint:   cfg.OTel.Endpoint,
		Enabled:        cfg.OTel.Enabled,
		SampleRatio:    cfg.OTel.SampleRatio,
	})
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
		return func(context.Context) error { return nil }
	}
	return shutdown
}

func shutdownTelemetry(shutdown otel.ShutdownFunc, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Warn("telemetry shutdown failed", "error", err)
	}
}

// buildGenerator returns nil when no backend is configured so the digest
// stages go straight to their fallback.
func buildGenerator(cfg *config.Config, logger *slog.Logger) llm_port.GeneratorPort {
	if !cfg.BackendConfigured() {
		return nil
	}
	client := driver.NewHTTPClient(cfg.LLM.Timeout)
	switch cfg.LLM.Provider {
	case config.ProviderOllama:
		return driver.NewOllamaClient(cfg.LLM.OllamaHost, client, cfg.LLM.Timeout, cfg.LLM.Temperature, cfg.LLM.MaxOutputTokens, logger)
	default:
		return driver.NewGeminiClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, client, cfg.LLM.Timeout, cfg.LLM.Temperature, cfg.LLM.MaxOutputTokens, logger)
	}
}

// buildPipeline wires one run end to end.
func buildPipeline(cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) (*pipeline_usecase.PipelineUsecase, error) {
	loc := cfg.Location()

	fetcher := driver.NewFeedFetcher(
		driver.NewHTTPClient(cfg.Feeds.Timeout),
		rate_limiter.NewHostRateLimiter(cfg.Feeds.HostInterval),
		cfg.Feeds.UserAgent,
		cfg.Feeds.Timeout,
		logger,
	)
	curator := curate_usecase.NewCurator(cfg.Filter.Keywords, curate_usecase.CurateOptions{
		MaxPerSource: cfg.Feeds.MaxPerSource,
		MaxAge:       cfg.Feeds.MaxAge,
		SummaryChars: cfg.Feeds.SummaryChars,
		Location:     loc,
	})
	ingest := curate_usecase.NewIngestUsecase(fetcher, curator, cfg.Feeds.Sources, cfg.Feeds.Concurrency, collector, logger)

	generator := buildGenerator(cfg, logger)
	summary := digest_usecase.NewSummaryUsecase(generator, cfg.LLM.Candidates, cfg.Digest.TopArticles, collector, logger)
	commentary := digest_usecase.NewCommentaryUsecase(generator, cfg.LLM.Candidates, cfg.Digest.CommentaryArticles, cfg.Digest.CommentaryMaxItems, collector, logger)

	renderer, err := render.NewPageRenderer(render.Options{
		Location:    loc,
		HistoryTabs: cfg.Publish.HistoryTabs,
		Triggers:    cfg.Scheduler.Triggers,
	})
	if err != nil {
		return nil, err
	}
	publisher := publish_usecase.NewPublishUsecase(
		renderer,
		repository.NewPageRepository(cfg.Paths.WebDir, logger),
		driver.NewFTPUploader(cfg.Publish.FTP, logger),
		collector,
		logger,
	)

	return pipeline_usecase.NewPipelineUsecase(
		ingest,
		summary,
		commentary,
		repository.NewSnapshotRepository(cfg.Paths.DataDir, logger),
		publisher,
		repository.NewRunLock(cfg.Paths.DataDir),
		collector,
		pipeline_usecase.Options{
			HistoryLimit:    cfg.Archive.HistoryLimit,
			Location:        loc,
			MetricsTextfile: cfg.Metrics.Textfile,
		},
		logger,
	), nil
}

package cmd

import (
	"context"

	"github.com/Yaz-U/ai-news-daily/job"
)

// stopperContext returns a context cancelled when the stopper fires.
func stopperContext(parent context.Context, stopper *job.Stopper) context.Context {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		defer cancel()
		select {
		case <-stopper.Done():
		case <-ctx.Done():
		}
	}()
	return ctx
}

package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Yaz-U/ai-news-daily/domain"
	apperrors "github.com/Yaz-U/ai-news-daily/utils/errors"
)

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
	NumCtx      int     `json:"num_ctx"`
}

type ollamaPayload struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Model      string `json:"model"`
	Response   string `json:"response"`
	DoneReason string `json:"done_reason"`
	Done       bool   `json:"done"`
}

// OllamaClient calls a local Ollama /api/generate endpoint.
type OllamaClient struct {
	host        string
	client      *http.Client
	timeout     time.Duration
	temperature float64
	numPredict  int
	logger      *slog.Logger
}

func NewOllamaClient(host string, client *http.Client, timeout time.Duration, temperature float64, numPredict int, logger *slog.Logger) *OllamaClient {
	return &OllamaClient{
		host:        strings.TrimRight(host, "/"),
		client:      client,
		timeout:     timeout,
		temperature: temperature,
		numPredict:  numPredict,
		logger:      logger,
	}
}

func (o *OllamaClient) Name() string { return "ollama" }

func (o *OllamaClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	payload := ollamaPayload{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: o.temperature,
			NumPredict:  o.numPredict,
			NumCtx:      8192,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: ollama request: %w", domain.ErrBackendUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			o.logger.Error("failed to close response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read ollama response: %w", domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		httpErr := &apperrors.HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		if resp.StatusCode == http.StatusTooManyRequests {
			// queue full on the ollama side
			return "", httpErr
		}
		return "", fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, httpErr)
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode ollama response: %w", domain.ErrMalformedResponse, err)
	}
	if !parsed.Done {
		o.logger.Warn("received incomplete response from ollama", "model", model, "done_reason", parsed.DoneReason)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrMalformedResponse)
	}

	return parsed.Response, nil
}

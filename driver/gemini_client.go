package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Yaz-U/ai-news-daily/domain"
	apperrors "github.com/Yaz-U/ai-news-daily/utils/errors"
)

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	baseURL         string
	apiKey          string
	client          *http.Client
	timeout         time.Duration
	temperature     float64
	maxOutputTokens int
	logger          *slog.Logger
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func NewGeminiClient(baseURL, apiKey string, client *http.Client, timeout time.Duration, temperature float64, maxOutputTokens int, logger *slog.Logger) *GeminiClient {
	return &GeminiClient{
		baseURL:         strings.TrimRight(baseURL, "/"),
		apiKey:          apiKey,
		client:          client,
		timeout:         timeout,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
		logger:          logger,
	}
}

func (g *GeminiClient) Name() string { return "gemini" }

// Generate sends prompt to model and returns the concatenated text parts of
// the first candidate.
func (g *GeminiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     g.temperature,
			MaxOutputTokens: g.maxOutputTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	g.logger.Debug("calling gemini", "model", model, "prompt_chars", len(prompt))

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: gemini request: %w", domain.ErrBackendUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			g.logger.Error("failed to close response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read gemini response: %w", domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		httpErr := &apperrors.HTTPError{StatusCode: resp.StatusCode, Message: geminiErrorMessage(respBody, resp.Status)}
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", httpErr
		}
		return "", fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, httpErr)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode gemini response: %w", domain.ErrMalformedResponse, err)
	}

	if parsed.PromptFeedback != nil && parsed.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", domain.ErrMalformedResponse, parsed.PromptFeedback.BlockReason)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in gemini response", domain.ErrMalformedResponse)
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty completion (finish reason %s)", domain.ErrMalformedResponse, parsed.Candidates[0].FinishReason)
	}

	return text, nil
}

// geminiErrorMessage keeps the status name so quota signatures survive.
func geminiErrorMessage(body []byte, fallback string) string {
	var eb geminiErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error.Message != "" {
		if eb.Error.Status != "" {
			return eb.Error.Status + ": " + eb.Error.Message
		}
		return eb.Error.Message
	}
	if len(body) > 0 {
		const maxLen = 300
		s := strings.TrimSpace(string(body))
		if len(s) > maxLen {
			s = s[:maxLen]
		}
		return s
	}
	return fallback
}

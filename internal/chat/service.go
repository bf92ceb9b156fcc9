package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jtbakery/storefront-backend/pkg/config"
	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

// Request is the widget-facing completion request. Sampling fields are
// optional; unset ones fall back to the fixed defaults below.
type Request struct {
	Messages    []Message `json:"messages" validate:"required,min=1,dive"`
	Model       string    `json:"model,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

// Sampling defaults tuned for short storefront answers. Frequency and
// presence penalties discourage the repetition loops small models fall
// into; the stop list cuts off runaway bullet lists and boilerplate.
const (
	defaultTemperature      = 0.2
	defaultTopP             = 0.9
	defaultMaxTokens        = 256
	defaultFrequencyPenalty = 0.6
	defaultPresencePenalty  = 0.1
)

var stopSequences = []string{
	"\n- \n- ",
	"\n\n\n",
	"Xin vui lòng liên hệ",
	"Lưu ý:",
}

type upstreamPayload struct {
	Model            string    `json:"model"`
	Messages         []Message `json:"messages"`
	Temperature      float64   `json:"temperature"`
	TopP             float64   `json:"top_p"`
	MaxTokens        int       `json:"max_tokens"`
	FrequencyPenalty float64   `json:"frequency_penalty"`
	PresencePenalty  float64   `json:"presence_penalty"`
	Stop             []string  `json:"stop"`
	Stream           bool      `json:"stream"`
}

type upstreamResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Stream is a live upstream event stream. The caller owns Body and must
// close it.
type Stream struct {
	Body        io.ReadCloser
	ContentType string
}

// Service proxies completion requests to an OpenAI-compatible endpoint.
type Service interface {
	Complete(ctx context.Context, req Request) (string, error)
	StartStream(ctx context.Context, req Request) (*Stream, error)
}

type service struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logg       *logger.Logger
}

// NewService builds the chat proxy from config.
func NewService(cfg config.ChatConfig, logg *logger.Logger) (Service, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("chat base url required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      cfg.Model,
		logg:       logg,
	}, nil
}

// Complete performs a batch completion and returns the raw assistant reply.
func (s *service) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := s.send(ctx, req, false, "application/json")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", upstreamError(resp)
	}

	var decoded upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode completion response")
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}
	return decoded.Choices[0].Message.Content, nil
}

// StartStream opens a streaming completion and hands the upstream SSE body
// through untouched; fragments stay in arrival order on the one connection.
func (s *service) StartStream(ctx context.Context, req Request) (*Stream, error) {
	resp, err := s.send(ctx, req, true, "text/event-stream")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, upstreamError(resp)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/event-stream; charset=utf-8"
	}
	return &Stream{Body: resp.Body, ContentType: contentType}, nil
}

func (s *service) send(ctx context.Context, req Request, stream bool, accept string) (*http.Response, error) {
	payload := upstreamPayload{
		Model:            s.model,
		Messages:         req.Messages,
		Temperature:      defaultTemperature,
		TopP:             defaultTopP,
		MaxTokens:        defaultMaxTokens,
		FrequencyPenalty: defaultFrequencyPenalty,
		PresencePenalty:  defaultPresencePenalty,
		Stop:             stopSequences,
		Stream:           stream,
	}
	if req.Model != "" {
		payload.Model = req.Model
	}
	if req.Temperature != nil {
		payload.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		payload.TopP = *req.TopP
	}
	if req.MaxTokens != nil {
		payload.MaxTokens = *req.MaxTokens
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode completion request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reach completion endpoint")
	}
	return resp, nil
}

func upstreamError(resp *http.Response) error {
	text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(text))
	if msg == "" {
		msg = "upstream error"
	}
	return pkgerrors.New(pkgerrors.CodeDependency, msg)
}

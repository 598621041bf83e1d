// Package chat is the client for the OpenAI-compatible chat completions
// backend used for classification, vision and translation calls.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"product-image-workers/internal/common/httpclient"
	"product-image-workers/internal/common/logger"
	"product-image-workers/internal/common/metrics"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNoChoices is returned when a 2xx response carries an empty choice list.
var ErrNoChoices = errors.New("chat backend returned no choices")

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat backend status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Config is everything a client needs to reach the backend. Proxies from the
// environment are used only when UseSystemProxies is set.
type Config struct {
	BaseURL          string
	APIKey           string
	Model            string
	Timeout          time.Duration
	UseSystemProxies bool
}

// Request is one chat completion. Call names the request in metrics and logs.
type Request struct {
	Call      string
	System    string
	User      string
	ImageURLs []string
	JSONMode  bool
}

type Client struct {
	api    *openai.Client
	model  string
	logger logger.Logger
}

// New builds a client from cfg.
func New(cfg Config, log logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("chat: base url is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("chat: model is required")
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	clientConfig.HTTPClient = httpclient.New(httpclient.Options{
		Timeout:          cfg.Timeout,
		UseSystemProxies: cfg.UseSystemProxies,
	})

	return &Client{
		api:    openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: log,
	}, nil
}

// Model returns the model every request is sent to.
func (c *Client) Model() string {
	return c.model
}

// Complete sends req and returns the content of the first choice. Non-2xx
// answers come back as *StatusError.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	call := req.Call
	if call == "" {
		call = "chat"
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: buildMessages(req),
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	metrics.ChatBackendDuration.WithLabelValues(call).Observe(time.Since(start).Seconds())

	if err != nil {
		err = classify(err)
		metrics.ChatBackendRequests.WithLabelValues(call, outcomeOf(err)).Inc()
		c.logger.Debug("chat backend call failed", map[string]interface{}{
			"call":  call,
			"error": err.Error(),
		})
		return "", err
	}
	if len(resp.Choices) == 0 {
		metrics.ChatBackendRequests.WithLabelValues(call, metrics.OutcomeFailure).Inc()
		return "", ErrNoChoices
	}

	metrics.ChatBackendRequests.WithLabelValues(call, metrics.OutcomeOK).Inc()
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(req Request) []openai.ChatCompletionMessage {
	var msgs []openai.ChatCompletionMessage
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	if len(req.ImageURLs) == 0 {
		return append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.User,
		})
	}

	parts := make([]openai.ChatMessagePart, 0, len(req.ImageURLs)+1)
	if req.User != "" {
		parts = append(parts, openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: req.User})
	}
	for _, u := range req.ImageURLs {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: u},
		})
	}
	return append(msgs, openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	})
}

// classify turns HTTP status failures into *StatusError and leaves transport
// and deadline errors untouched.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &StatusError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &StatusError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error(), Err: err}
	}
	return err
}

func outcomeOf(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return metrics.OutcomeStatus
	case errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeDeadline
	default:
		return metrics.OutcomeFailure
	}
}

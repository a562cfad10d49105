package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const messagesPath = "/v1/messages"

// Tool declares a server-side capability the model may invoke.
type Tool struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	MaxUses int    `json:"max_uses,omitempty"`
}

// WebSearchTool lets the model search the web up to maxUses times per call.
func WebSearchTool(maxUses int) Tool {
	return Tool{Type: "web_search_20250305", Name: "web_search", MaxUses: maxUses}
}

// CompletionRequest holds the parameters for one provider call.
type CompletionRequest struct {
	Task      TaskType
	Prompt    string
	Tools     []Tool
	MaxTokens int // 0 uses the configured default
}

// Fragment is one content block of a reply. Only "text" fragments carry
// prose; tool-use and search-result blocks are passed through untouched.
type Fragment struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// CompletionResponse holds the result of a provider call.
type CompletionResponse struct {
	Fragments  []Fragment
	Model      string
	StopReason string
	LatencyMs  int64
}

// Text concatenates every text fragment in order.
func (r *CompletionResponse) Text() string {
	var b strings.Builder
	for _, f := range r.Fragments {
		if f.Type == "text" {
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// Provider turns a prompt into freeform content fragments.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// anthropicClient implements Provider using the Anthropic Messages API.
// It makes exactly one HTTP call per Complete; retries belong to the caller.
type anthropicClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewAnthropicClient creates a Provider that talks to the Messages API.
func NewAnthropicClient(cfg LLMConfig, observer Observer) Provider {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &anthropicClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Tools     []Tool    `json:"tools,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Model      string     `json:"model"`
	StopReason string     `json:"stop_reason"`
	Content    []Fragment `json:"content"`
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *anthropicClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	maxTok := c.cfg.MaxTokens
	if req.MaxTokens > 0 {
		maxTok = req.MaxTokens
	}
	body := messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: maxTok,
		Tools:     req.Tools,
		Messages:  []message{{Role: "user", Content: req.Prompt}},
	}

	resp, status, err := c.doRequest(ctx, body)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		err = classify(ctx, err)
		c.observer.OnCallComplete(LLMCallEvent{
			Task:       req.Task,
			Model:      c.cfg.Model,
			LatencyMs:  latency,
			Success:    false,
			StatusCode: status,
			ErrorCode:  errorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Task:       req.Task,
		Model:      c.cfg.Model,
		LatencyMs:  latency,
		Success:    true,
		StatusCode: status,
	})
	return &CompletionResponse{
		Fragments:  resp.Content,
		Model:      resp.Model,
		StopReason: resp.StopReason,
		LatencyMs:  latency,
	}, nil
}

func (c *anthropicClient) doRequest(ctx context.Context, body messagesRequest) (*messagesResponse, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + messagesPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", c.cfg.APIVersion)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, httpResp.StatusCode, statusError(httpResp.StatusCode, respBody)
	}

	var resp messagesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}
	return &resp, httpResp.StatusCode, nil
}

// statusError maps a non-200 reply onto a sentinel, keeping the provider's
// own message when it sent one.
func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && env.Error.Message != "" {
		msg = env.Error.Message
	}

	var sentinel error
	switch status {
	case http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrAuth
	default:
		sentinel = ErrUpstream
	}
	return fmt.Errorf("%w: status %d: %s", sentinel, status, msg)
}

// classify maps transport failures onto sentinels. Errors that already carry
// a sentinel pass through.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrRateLimited), errors.Is(err, ErrAuth), errors.Is(err, ErrUpstream):
		return err
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, ErrAuth):
		return "AUTH"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UPSTREAM"
	}
}

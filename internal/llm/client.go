package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Message is one turn of a conversation sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest holds the parameters of one chat completion.
type ChatRequest struct {
	Task         TaskType
	SystemPrompt string
	Messages     []Message
	// JSON asks the server to constrain the reply to a JSON object.
	JSON        bool
	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

// ChatResponse holds the reply of a chat completion.
type ChatResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a chat model.
type LLMClient interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Available(ctx context.Context) bool
}

// ollamaClient implements LLMClient on the Ollama HTTP API.
type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates an LLMClient for an Ollama server.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		observer: observer,
	}
}

// ollamaChatRequest is the body of POST /api/chat.
type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
	Options  ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaChatResponse is the non-streaming reply of POST /api/chat.
type ollamaChatResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
}

func (c *ollamaClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if !c.cfg.Enabled {
		return nil, ErrDisabled
	}
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	body := ollamaChatRequest{
		Model:   c.cfg.Model,
		Options: ollamaOptions{Temperature: temp, NumPredict: maxTok},
	}
	if req.SystemPrompt != "" {
		body.Messages = append(body.Messages, Message{Role: RoleSystem, Content: req.SystemPrompt})
	}
	body.Messages = append(body.Messages, req.Messages...)
	if req.JSON {
		body.Format = "json"
	}

	var lastErr error
	attempts := 0
	for attempts < 1+c.cfg.MaxRetries {
		attempts++
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(CallEvent{
				Task: req.Task, Model: c.cfg.Model, LatencyMs: latency, Attempts: attempts, Success: true,
			})
			return &ChatResponse{Text: resp.Message.Content, Model: resp.Model, LatencyMs: latency}, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	switch {
	case ctx.Err() != nil:
		lastErr = ErrTimeout
	case isConnectionError(lastErr):
		lastErr = ErrUnavailable
	default:
		lastErr = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
	c.observer.OnCallComplete(CallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		ErrorCode: errorCode(lastErr),
	})
	return nil, lastErr
}

func (c *ollamaClient) doRequest(ctx context.Context, body ollamaChatRequest) (*ollamaChatResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm server returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	if !c.cfg.Enabled {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return err != nil && errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"resumeforge/internal/llm"
	"resumeforge/internal/shared/metrics"
	"resumeforge/internal/shared/telemetry"
)

const (
	defaultAPIURL        = "https://api.openai.com/v1/chat/completions"
	defaultMaxToolRounds = 4
)

// Client implements llm.Gateway using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	apiURL := defaultAPIURL
	if raw := strings.TrimSpace(os.Getenv("OPENAI_API_URL")); raw != "" {
		apiURL = raw
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

type toolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function toolCallFunction `json:"function"`
}

type toolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolSpec struct {
	Type     string           `json:"type"`
	Function toolSpecFunction `json:"function"`
}

type toolSpecFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Tools          []toolSpec      `json:"tools,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate submits the prompt with JSON output enforced, executing any tool
// calls the model requests before it finalizes its answer.
func (c *Client) Generate(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	tools := toolIndex(req.Tools)
	maxRounds := req.MaxToolRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxToolRounds
	}

	for round := 0; ; round++ {
		resp, err := c.exchange(ctx, messages, specsFor(req.Tools), true)
		if err != nil {
			return nil, err
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			content := strings.TrimSpace(msg.Content)
			if content == "" {
				return nil, llm.Generationf("model returned empty content")
			}
			if !json.Valid([]byte(content)) {
				return nil, llm.Generationf("model returned invalid JSON")
			}
			return json.RawMessage(content), nil
		}

		if round >= maxRounds {
			return nil, llm.Generationf("tool call limit exceeded after %d rounds", maxRounds)
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			result := c.executeTool(ctx, tools, call)
			messages = append(messages, chatMessage{
				Role:       "tool",
				Content:    string(result),
				ToolCallID: call.ID,
				Name:       call.Function.Name,
			})
		}
	}
}

// Complete submits the prompt and returns the model's plain-text answer.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []chatMessage{{Role: "user", Content: prompt}}
	resp, err := c.exchange(ctx, messages, nil, false)
	if err != nil {
		return "", err
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", llm.Generationf("model returned empty content")
	}
	return content, nil
}

func (c *Client) executeTool(ctx context.Context, tools map[string]llm.Tool, call toolCall) json.RawMessage {
	tool, ok := tools[call.Function.Name]
	if !ok {
		telemetry.Error("llm.tool.unknown", map[string]any{"tool": call.Function.Name})
		return mustJSON(map[string]string{"error": "unknown tool: " + call.Function.Name})
	}
	result, err := tool.Execute(ctx, json.RawMessage(call.Function.Arguments))
	if err != nil {
		telemetry.Error("llm.tool.failed", map[string]any{"tool": call.Function.Name, "error": err.Error()})
		return mustJSON(map[string]string{"error": err.Error()})
	}
	return result
}

func (c *Client) exchange(ctx context.Context, messages []chatMessage, tools []toolSpec, jsonOutput bool) (*chatResponse, error) {
	temp := float32(0)
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: &temp,
		Tools:       tools,
	}
	if jsonOutput {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	c.recordUsage(&parsed)
	return &parsed, nil
}

func (c *Client) recordUsage(resp *chatResponse) {
	if resp.Usage == nil {
		telemetry.Info("llm.response", map[string]any{"model": c.model})
		return
	}
	metrics.LLMTokens.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.LLMTokens.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	telemetry.Info("llm.response", map[string]any{
		"model":             c.model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
	})
}

func toolIndex(tools []llm.Tool) map[string]llm.Tool {
	if len(tools) == 0 {
		return nil
	}
	out := make(map[string]llm.Tool, len(tools))
	for _, t := range tools {
		out[t.Name()] = t
	}
	return out
}

func specsFor(tools []llm.Tool) []toolSpec {
	if len(tools) == 0 {
		return nil
	}
	specs := make([]toolSpec, 0, len(tools))
	for _, t := range tools {
		specs = append(specs, toolSpec{
			Type: "function",
			Function: toolSpecFunction{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.InputSchema(),
			},
		})
	}
	return specs
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return data
}

var _ llm.Gateway = (*Client)(nil)

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/libris-labs/libris-core/internal/core/domain"
	"github.com/libris-labs/libris-core/internal/core/ports/driven"
)

// Ensure OpenAIChat implements CompletionService
var _ driven.CompletionService = (*OpenAIChat)(nil)

// OpenAIChat implements CompletionService using OpenAI's chat completions
// API, including the function-calling round trip.
type OpenAIChat struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

const (
	defaultChatModel       = "gpt-4o-mini"
	defaultChatTemperature = 0.7
	defaultChatMaxTokens   = 1500
)

// NewOpenAIChat creates a new OpenAI chat completion service
func NewOpenAIChat(apiKey, model, baseURL string) (driven.CompletionService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = defaultChatModel
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIChat{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// chatMessage is one message in the chat completions wire format
type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// wireToolCall is a tool call in the chat completions wire format
type wireToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// wireTool advertises a callable function to the model
type wireTool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Parameters  json.RawMessage `json:"parameters"`
	} `json:"function"`
}

// chatRequest is the request body for the chat completions endpoint
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Tools       []wireTool    `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatResponse is the response from the chat completions endpoint
type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

// Complete sends the conversation and returns the assistant's reply.
// When tools is empty no schema is sent, so the model cannot issue
// further tool calls.
func (c *OpenAIChat) Complete(ctx context.Context, turns []domain.ConversationTurn, tools []domain.ToolDefinition) (*domain.AssistantMessage, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    encodeTurns(turns),
		Temperature: defaultChatTemperature,
		MaxTokens:   defaultChatMaxTokens,
	}
	if len(tools) > 0 {
		reqBody.Tools = encodeTools(tools)
		reqBody.ToolChoice = "auto"
	}

	resp, err := c.doRequest(ctx, reqBody)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completion choice returned")
	}

	return decodeAssistantMessage(resp.Choices[0].Message), nil
}

// Model returns the model name being used
func (c *OpenAIChat) Model() string {
	return c.model
}

// Ping verifies the completion service is reachable
func (c *OpenAIChat) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OpenAI API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources held by the completion service
func (c *OpenAIChat) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *OpenAIChat) doRequest(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("OpenAI API error: %s (type: %s, code: %s)",
			chatResp.Error.Message, chatResp.Error.Type, chatResp.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API returned status %d", resp.StatusCode)
	}

	return &chatResp, nil
}

func encodeTurns(turns []domain.ConversationTurn) []chatMessage {
	messages := make([]chatMessage, len(turns))
	for i, turn := range turns {
		msg := chatMessage{
			Role:       string(turn.Role),
			Content:    turn.Content,
			ToolCallID: turn.ToolCallID,
		}
		for _, call := range turn.ToolCalls {
			wire := wireToolCall{ID: call.ID, Type: "function"}
			wire.Function.Name = call.Name
			wire.Function.Arguments = string(call.Arguments)
			msg.ToolCalls = append(msg.ToolCalls, wire)
		}
		messages[i] = msg
	}
	return messages
}

func encodeTools(tools []domain.ToolDefinition) []wireTool {
	out := make([]wireTool, len(tools))
	for i, tool := range tools {
		wire := wireTool{Type: "function"}
		wire.Function.Name = string(tool.Name)
		wire.Function.Description = tool.Description
		wire.Function.Parameters = tool.Parameters
		out[i] = wire
	}
	return out
}

func decodeAssistantMessage(msg chatMessage) *domain.AssistantMessage {
	out := &domain.AssistantMessage{Content: msg.Content}
	for _, call := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, domain.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}
	return out
}

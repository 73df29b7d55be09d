package domain

import "encoding/json"

// Role identifies the author of a conversation turn
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a structured request from the model to execute a named
// capability. Arguments are the raw JSON the model produced.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ConversationTurn is one message in a conversation. Turns are built
// fresh per request; nothing is persisted between requests.
type ConversationTurn struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// AssistantMessage is the completion provider's reply: free text, a list
// of tool calls, or both.
type AssistantMessage struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// SystemTurn builds a system-role turn.
func SystemTurn(content string) ConversationTurn {
	return ConversationTurn{Role: RoleSystem, Content: content}
}

// UserTurn builds a user-role turn.
func UserTurn(content string) ConversationTurn {
	return ConversationTurn{Role: RoleUser, Content: content}
}

// AssistantTurn builds an assistant-role turn, preserving the raw tool
// calls so they can be echoed back to the provider verbatim.
func AssistantTurn(msg *AssistantMessage) ConversationTurn {
	return ConversationTurn{Role: RoleAssistant, Content: msg.Content, ToolCalls: msg.ToolCalls}
}

// ToolResultTurn builds a tool-role turn carrying the result of the tool
// call identified by callID.
func ToolResultTurn(callID, content string) ConversationTurn {
	return ConversationTurn{Role: RoleTool, Content: content, ToolCallID: callID}
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply of POST /chat. Processing failures are
// signalled through Success=false, not an HTTP error status.
type ChatResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// BookListEntry is one element of the GET /books listing. Summary is
// truncated for display.
type BookListEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

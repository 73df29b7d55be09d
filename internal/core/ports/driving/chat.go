package driving

import "context"

// ChatService handles one user utterance end to end: moderation,
// retrieval, completion and the optional tool round trip. Single-shot;
// no conversation state survives between calls.
type ChatService interface {
	// Respond produces the assistant's final answer for the input.
	// A filter rejection is a normal answer, not an error.
	Respond(ctx context.Context, input string) (string, error)
}

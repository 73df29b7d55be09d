package tui

// ReplyMsg carries the librarian's answer to one question
type ReplyMsg struct {
	Answer string
}

// ErrorMsg represents a failed exchange; the chat loop continues
type ErrorMsg struct {
	Err error
}

package qa

import "fmt"

const emptyAnswer = "I'm sorry, I couldn't process that request."

// RequestError describes a failed answer. It is turned into an assistant
// message in the chat history instead of being returned to the caller.
type RequestError struct {
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("question answering failed: %v", e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ChatMessage is the assistant text recorded for this failure.
func (e *RequestError) ChatMessage() string {
	msg := "Unknown error"
	if e.Cause != nil && e.Cause.Error() != "" {
		msg = e.Cause.Error()
	}
	if runes := []rune(msg); len(runes) > 50 {
		msg = string(runes[:50])
	}
	return fmt.Sprintf("Sorry, I encountered an error: %s. This might be due to too much context.", msg)
}

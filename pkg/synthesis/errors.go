package synthesis

import "fmt"

// RequestError reports a failed generation or an unusable response.
// The session's previous notes are left untouched when it is returned.
type RequestError struct {
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("note synthesis failed: %v", e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// UserMessage is the text shown to the student. Oversized context is the
// usual cause, hence the hint about resources.
func (e *RequestError) UserMessage() string {
	msg := "Internal Error"
	if e.Cause != nil && e.Cause.Error() != "" {
		msg = e.Cause.Error()
	}
	runes := []rune(msg)
	if len(runes) > 100 {
		msg = string(runes[:100])
	}
	return fmt.Sprintf("Note generation failed: %s... Try reducing the number of uploaded resources.", msg)
}

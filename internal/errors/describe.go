package errors

import (
	"errors"
	"fmt"
)

// Describe returns the short, human readable reason shown to the user.
//
// A server-provided detail wins, then the HTTP status, then the text of the
// error itself.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fmt.Sprintf("HTTP error! status: %d", apiErr.StatusCode)
	}

	if errors.Is(err, ErrNoReply) {
		return "No response from the server"
	}

	return err.Error()
}

// TranscriptText formats err as the assistant message appended to the chat.
func TranscriptText(err error) string {
	return fmt.Sprintf("Oops! Something went wrong!\n\nError: %s\n\n", Describe(err))
}

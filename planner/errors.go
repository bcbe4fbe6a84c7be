package planner

import (
	"errors"
	"strings"
)

// InvalidAPIKeyMarker is the text generation services put in the error when
// the configured key is rejected.
const InvalidAPIKeyMarker = "API key not valid"

const (
	InvalidAPIKeyMessage = "The API key is invalid. Please check your configuration."
	UnknownErrorMessage  = "An unknown error occurred."
)

// ErrInvalidAPIKey can be wrapped by generators that detect a rejected key
// themselves. Its message carries InvalidAPIKeyMarker.
var ErrInvalidAPIKey = errors.New(InvalidAPIKeyMarker)

// ErrorMessage turns a generation failure into the single message shown to
// the user.
func ErrorMessage(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}
	msg := err.Error()
	switch {
	case errors.Is(err, ErrInvalidAPIKey), strings.Contains(msg, InvalidAPIKeyMarker):
		return InvalidAPIKeyMessage
	case msg == "":
		return UnknownErrorMessage
	}
	return msg
}

package chat

import "strings"

// User-facing strings substituted for failures so the frontend can always
// render a chat bubble instead of a raw technical error.
const (
	MsgUpstreamConfig  = "AI service configuration error. Please check API settings. 🔧"
	MsgUpstreamNetwork = "Network connection issue. Please check your internet and try again! 🌐"
	MsgInternal        = "Sorry, I encountered an error. Please try again! 😊"
)

// ValidationError reports bad caller input. It is raised before any store
// access, so a rejected request has no side effects.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// UpstreamError reports that the completion provider is unavailable.
// UserMessage is safe to show the end user; the original cause stays
// wrapped for logs.
type UpstreamError struct {
	UserMessage string
	Err         error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return "completion service unavailable: " + e.Err.Error()
	}
	return "completion service unavailable"
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// classifyCompletionError inspects the provider error text for recognizable
// auth and network failures. Anything unrecognized is returned as-is and
// treated as internal by the caller.
func classifyCompletionError(err error) error {
	text := strings.ToLower(err.Error())

	switch {
	case strings.Contains(text, "api_key_invalid"),
		strings.Contains(text, "api key"),
		strings.Contains(text, "unauthorized"),
		strings.Contains(text, "authentication"),
		strings.Contains(text, "invalid credentials"):
		return &UpstreamError{UserMessage: MsgUpstreamConfig, Err: err}
	case strings.Contains(text, "network"),
		strings.Contains(text, "econnrefused"),
		strings.Contains(text, "connection refused"),
		strings.Contains(text, "no such host"),
		strings.Contains(text, "timeout"),
		strings.Contains(text, "unreachable"):
		return &UpstreamError{UserMessage: MsgUpstreamNetwork, Err: err}
	}

	return err
}

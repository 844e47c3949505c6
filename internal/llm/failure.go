package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a failed Generate call.
type Kind int

const (
	// Unavailable covers network failures and 5xx answers.
	Unavailable Kind = iota
	// RateLimited is a 429 from the vendor.
	RateLimited
	// InvalidOutput means the model answered with JSON that does not fit
	// the requested schema.
	InvalidOutput
	// Truncated means generation stopped at MaxTokens before the JSON
	// document was complete.
	Truncated
	// Rejected is a 4xx other than 429: bad key, unknown model, malformed
	// request. Retrying does not help.
	Rejected
)

func (k Kind) String() string {
	switch k {
	case RateLimited:
		return "rate limited"
	case InvalidOutput:
		return "invalid output"
	case Truncated:
		return "truncated"
	case Rejected:
		return "request rejected"
	default:
		return "unavailable"
	}
}

// Error is returned by every provider in this package.
type Error struct {
	Kind     Kind
	Provider string

	// RetryAfter is the vendor's requested back-off for RateLimited.
	RetryAfter time.Duration

	// Content holds the raw model output for InvalidOutput and Truncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := "llm " + e.Kind.String()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// httpFailure classifies a vendor SDK error by its HTTP status. Anything
// without a status is treated as the vendor being unreachable.
func httpFailure(provider string, status int, err error) *Error {
	e := &Error{Kind: Unavailable, Provider: provider, Err: err}
	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = RateLimited
	case status == http.StatusRequestTimeout:
	case status >= 400 && status < 500:
		e.Kind = Rejected
	}
	return e
}

func invalidOutput(content json.RawMessage, format string, args ...any) *Error {
	return &Error{Kind: InvalidOutput, Content: content, Err: fmt.Errorf(format, args...)}
}

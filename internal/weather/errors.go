package weather

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure.
type Kind int

const (
	KindTransport Kind = iota
	KindTimeout
	KindRedirect
	KindHTTP
	KindProvider
	KindSchema
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindRedirect:
		return "redirect"
	case KindHTTP:
		return "http"
	case KindProvider:
		return "provider"
	case KindSchema:
		return "schema"
	default:
		return "transport"
	}
}

var (
	// ErrMissingAPIKey is returned by NewClient when no key is configured.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrTooManyRedirects is wrapped by KindRedirect failures that exceeded MaxRedirects.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// FetchError describes why a forecast could not be fetched.
type FetchError struct {
	Kind    Kind
	Status  int    // HTTP status, when a response was received
	Message string // provider message or missing field, when known
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Kind == KindProvider:
		return fmt.Sprintf("provider error: %s", e.Message)
	case e.Kind == KindHTTP && e.Message != "":
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	case e.Kind == KindHTTP:
		return fmt.Sprintf("HTTP %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed generation call.
type Kind int

const (
	// KindGeneration is any backend failure we have nothing better to say about.
	KindGeneration Kind = iota
	// KindCredential means the backend rejected or couldn't find the API key.
	KindCredential
	// KindEmptyResponse means the backend answered with no text at all.
	KindEmptyResponse
)

func (k Kind) String() string {
	switch k {
	case KindCredential:
		return "credential"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "generation"
	}
}

// ErrEmptyResponse is returned when the model produces no text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// ServiceError is a classified failure from the generative backend.
type ServiceError struct {
	Kind Kind
	Err  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// credentialMarkers are the message fragments the backend uses for missing,
// expired, or rejected keys. Matching free text is fragile and entirely
// backend-specific; keep this list in sync with the backend, don't grow it.
var credentialMarkers = []string{"not found", "api key", "401", "403"}

// Classify wraps err in a ServiceError, sniffing the message for
// credential-shaped failures.
func Classify(err error) *ServiceError {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range credentialMarkers {
		if strings.Contains(msg, marker) {
			return &ServiceError{Kind: KindCredential, Err: err}
		}
	}
	if errors.Is(err, ErrEmptyResponse) {
		return &ServiceError{Kind: KindEmptyResponse, Err: err}
	}
	return &ServiceError{Kind: KindGeneration, Err: err}
}

// IsCredential reports whether err is a credential-shaped failure.
func IsCredential(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Kind == KindCredential
}

package summarizer

import "context"

// Provider is the contract for an external text-summarization backend.
type Provider interface {
	// Summarize condenses text into a short summary. It returns an empty
	// string with a nil error when the backend answered successfully but
	// produced no usable summary; the caller decides on a fallback.
	Summarize(ctx context.Context, text string) (string, error)
}

// UnavailableError signals a model/service-level condition (e.g. the model is
// still loading) that the caller should surface as "retry later".
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string {
	return e.Message
}

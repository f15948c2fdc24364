package service

import (
	"context"
	"errors"
	"strings"

	"notesum-be/internal/pkg/apperrors"
	"notesum-be/internal/pkg/logger"
	"notesum-be/pkg/summarizer"
)

// FallbackSummary is returned when the model answered but produced nothing
// usable. The relay always yields some string on a structurally good call.
const FallbackSummary = "No summary generated"

type ISummarizeService interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type summarizeService struct {
	provider summarizer.Provider
	log      logger.ILogger
}

func NewSummarizeService(provider summarizer.Provider, log logger.ILogger) ISummarizeService {
	return &summarizeService{
		provider: provider,
		log:      log,
	}
}

func (s *summarizeService) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid input. Text is required.")
	}

	summary, err := s.provider.Summarize(ctx, text)
	if err != nil {
		var unavailable *summarizer.UnavailableError
		if errors.As(err, &unavailable) {
			// Model warm-up or overload: a retry-later condition, not a client mistake.
			s.log.Warn("summarize", "summarization model unavailable", map[string]interface{}{
				"reason": unavailable.Message,
			})
			return "", apperrors.WithMessage(apperrors.ErrModelUnavailable, unavailable.Message)
		}

		// The credential must never appear here; the provider keeps it out of
		// its error strings and we only log a redacted marker.
		s.log.Error("summarize", "summarization request failed", map[string]interface{}{
			"error":      err.Error(),
			"credential": "[redacted]",
		})
		return "", apperrors.Wrap(apperrors.ErrSummarization, err)
	}

	if summary == "" {
		return FallbackSummary, nil
	}

	return summary, nil
}

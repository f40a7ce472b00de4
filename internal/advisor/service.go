package advisor

import (
	"context"
	"strings"
	"time"

	"upilens/internal/core"
	applog "upilens/internal/log"
)

// Service wraps an Advisor with a per-call timeout and a guaranteed
// non-empty result. Callers never see backend errors, only FallbackAdvice.
type Service struct {
	advisor Advisor
	timeout time.Duration
	logger  *applog.Logger
}

func NewService(advisor Advisor, timeout time.Duration, logger *applog.Logger) *Service {
	return &Service{
		advisor: advisor,
		timeout: timeout,
		logger:  logger,
	}
}

// Advise returns advice text for the bundle. Backend failures, timeouts and
// blank responses all degrade to FallbackAdvice.
func (s *Service) Advise(ctx context.Context, sum core.Summary) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.advisor.Advise(ctx, sum)
	if err != nil {
		s.logger.Warn("advice generation failed, using fallback", "error", err)
		return FallbackAdvice
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Warn("advice backend returned empty text, using fallback")
		return FallbackAdvice
	}
	return text
}

// Package advisor turns a summary bundle into human-readable financial
// commentary via a text-generation backend.
package advisor

import (
	"context"

	"upilens/internal/core"
)

// FallbackAdvice is substituted whenever the backend fails, times out, or
// returns an empty response.
const FallbackAdvice = "No advice generated."

// Advisor generates advice text for one summary bundle. Implementations
// must treat the bundle as read-only.
type Advisor interface {
	Advise(ctx context.Context, sum core.Summary) (string, error)
}

// Canned is an offline Advisor returning a fixed response. It backs local
// runs without an API key and keeps tests off the network.
type Canned struct {
	Response string
	Err      error
}

func (c *Canned) Advise(ctx context.Context, sum core.Summary) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.Response, c.Err
}

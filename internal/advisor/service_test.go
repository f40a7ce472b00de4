package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"upilens/internal/core"
	applog "upilens/internal/log"
)

func testService(advisor Advisor, timeout time.Duration) *Service {
	return NewService(advisor, timeout, applog.New(applog.DefaultConfig()))
}

func TestServiceAdvise(t *testing.T) {
	tests := []struct {
		name    string
		advisor Advisor
		want    string
	}{
		{
			name:    "backend text passes through",
			advisor: &Canned{Response: "Cut back on coffee."},
			want:    "Cut back on coffee.",
		},
		{
			name:    "backend error falls back",
			advisor: &Canned{Err: errors.New("boom")},
			want:    FallbackAdvice,
		},
		{
			name:    "blank response falls back",
			advisor: &Canned{Response: "   \n"},
			want:    FallbackAdvice,
		},
	}

	for i, tt := range tests {
		svc := testService(tt.advisor, time.Second)
		got := svc.Advise(context.Background(), core.Summary{})
		if got != tt.want {
			t.Fatalf("case %d (%s): expected %q, got %q", i, tt.name, tt.want, got)
		}
	}
}

type slowAdvisor struct{}

func (slowAdvisor) Advise(ctx context.Context, sum core.Summary) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(5 * time.Second):
		return "too late", nil
	}
}

func TestServiceAdviseTimeout(t *testing.T) {
	svc := testService(slowAdvisor{}, 10*time.Millisecond)
	got := svc.Advise(context.Background(), core.Summary{})
	if got != FallbackAdvice {
		t.Fatalf("expected fallback on timeout, got %q", got)
	}
}

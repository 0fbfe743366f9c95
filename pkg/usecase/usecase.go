package usecase

import (
	"time"

	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
)

type UseCases struct {
	repo     interfaces.Repository
	routing  interfaces.RoutingConfig
	notifier interfaces.NotificationSink
	now      func() time.Time

	Workflow   *WorkflowUseCase
	Delegation *DelegationUseCase
}

type Option func(*UseCases)

// WithNotifier attaches a notification sink. Events are dispatched
// asynchronously after successful transitions.
func WithNotifier(sink interfaces.NotificationSink) Option {
	return func(uc *UseCases) {
		uc.notifier = sink
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, routing interfaces.RoutingConfig, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		routing: routing,
		now:     func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Delegation = NewDelegationUseCase(repo, uc.now)
	uc.Workflow = NewWorkflowUseCase(repo, routing, uc.Delegation, uc.notifier, uc.now)

	return uc
}

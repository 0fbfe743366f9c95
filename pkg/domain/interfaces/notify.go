package interfaces

import (
	"context"

	"github.com/secmon-lab/docflow/pkg/domain/model"
)

// NotificationSink receives workflow events after a successful
// transition. Delivery is fire-and-forget and never sits on the critical
// path of the state change itself.
type NotificationSink interface {
	Notify(ctx context.Context, event *model.WorkflowEvent) error
}

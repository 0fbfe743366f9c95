package notify

import (
	"context"

	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/utils/logging"
)

// LogSink publishes workflow events to the structured log. It stands in
// for an outbound channel (mail, chat webhook) in deployments that have
// none configured; the engine treats all sinks as fire-and-forget.
type LogSink struct{}

var _ interfaces.NotificationSink = (*LogSink)(nil)

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Notify(ctx context.Context, event *model.WorkflowEvent) error {
	logging.From(ctx).Info("workflow event",
		"case_id", event.CaseID,
		"case_title", event.CaseTitle,
		"action", event.Action,
		"acting_user", event.ActingUser,
		"on_behalf_of", event.OnBehalfOf,
		"from_node", event.FromNode,
		"to_node", event.ToNode,
		"new_status", event.NewStatus,
		"outcome", event.Outcome,
		"occurred_at", event.OccurredAt,
	)
	return nil
}

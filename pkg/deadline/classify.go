// Package deadline classifies a case's due date into a display warning
// category. Classification is pure and computed on read; there is no
// timer daemon behind it.
package deadline

import (
	"strings"
	"time"

	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// NearDueDays is the inclusive threshold under which a case counts as
// near its deadline.
const NearDueDays = 3

// Classify maps a case status and optional deadline to a warning
// category. Status labels win over date math; a missing deadline yields
// no category. Total over its domain: never panics, never errs.
func Classify(status types.CaseStatus, deadline *time.Time, now time.Time) types.WarningCategory {
	switch status {
	case types.CaseStatusReturned:
		return types.WarningReturned
	case types.CaseStatusInProgress:
		return types.WarningInProgress
	}

	if deadline == nil {
		return types.WarningNone
	}

	return classifyDate(*deadline, now)
}

func classifyDate(deadline, now time.Time) types.WarningCategory {
	daysLeft := int(deadline.Sub(now).Hours() / 24)
	if deadline.Before(now) {
		return types.WarningOverdue
	}

	switch {
	case daysLeft <= NearDueDays:
		return types.WarningNearDue
	default:
		return types.WarningOnTrack
	}
}

// Localized status labels recognized at the boundary. The engine itself
// only ever sees the closed CaseStatus enum; this mapping exists so list
// views fed by legacy label text still classify correctly.
var (
	returnedLabels   = []string{"returned", "trả lại", "tra lai"}
	inProgressLabels = []string{"in progress", "đang xử lý", "dang xu ly"}
)

// ClassifyTag is the boundary variant of Classify for callers that hold
// a free-form status label instead of a parsed status. Matching is a
// case-insensitive substring check; an unrecognized tag falls through to
// date math.
func ClassifyTag(tag string, deadline *time.Time, now time.Time) types.WarningCategory {
	lowered := strings.ToLower(tag)

	for _, label := range returnedLabels {
		if strings.Contains(lowered, label) {
			return types.WarningReturned
		}
	}
	for _, label := range inProgressLabels {
		if strings.Contains(lowered, label) {
			return types.WarningInProgress
		}
	}

	if deadline == nil {
		return types.WarningNone
	}

	return classifyDate(*deadline, now)
}

package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

func TestCaseStatus(t *testing.T) {
	t.Run("all statuses are valid", func(t *testing.T) {
		for _, s := range types.AllCaseStatuses() {
			gt.Bool(t, s.IsValid()).True()
		}
	})

	t.Run("unknown status is invalid", func(t *testing.T) {
		gt.Bool(t, types.CaseStatus("ARCHIVED").IsValid()).False()
	})

	t.Run("terminal statuses", func(t *testing.T) {
		gt.Bool(t, types.CaseStatusCompleted.IsTerminal()).True()
		gt.Bool(t, types.CaseStatusRecalled.IsTerminal()).True()
		gt.Bool(t, types.CaseStatusRejected.IsTerminal()).True()
		gt.Bool(t, types.CaseStatusDraft.IsTerminal()).False()
		gt.Bool(t, types.CaseStatusPendingApproval.IsTerminal()).False()
		gt.Bool(t, types.CaseStatusInProgress.IsTerminal()).False()
		gt.Bool(t, types.CaseStatusReturned.IsTerminal()).False()
	})

	t.Run("parse", func(t *testing.T) {
		s, err := types.ParseCaseStatus("IN_PROGRESS")
		gt.NoError(t, err)
		gt.Value(t, s).Equal(types.CaseStatusInProgress)

		_, err = types.ParseCaseStatus("in_progress")
		gt.Value(t, err).NotNil()
	})
}

func TestDocumentType(t *testing.T) {
	t.Run("all types are valid", func(t *testing.T) {
		for _, dt := range types.AllDocumentTypes() {
			gt.Bool(t, dt.IsValid()).True()
		}
	})

	t.Run("parse rejects unknown type", func(t *testing.T) {
		_, err := types.ParseDocumentType("MEMO")
		gt.Value(t, err).NotNil()
	})
}

func TestAction(t *testing.T) {
	t.Run("all actions are valid", func(t *testing.T) {
		for _, a := range types.AllActions() {
			gt.Bool(t, a.IsValid()).True()
		}
	})

	t.Run("parse", func(t *testing.T) {
		a, err := types.ParseAction("RETAKE")
		gt.NoError(t, err)
		gt.Value(t, a).Equal(types.ActionRetake)
	})
}

func TestIDs(t *testing.T) {
	t.Run("generated case IDs are unique", func(t *testing.T) {
		a := types.NewCaseID()
		b := types.NewCaseID()
		gt.Value(t, a).NotEqual(b)
		gt.NoError(t, a.Validate())
	})

	t.Run("empty IDs fail validation", func(t *testing.T) {
		gt.Value(t, types.CaseID("").Validate()).NotNil()
		gt.Value(t, types.UserID("").Validate()).NotNil()
		gt.Value(t, types.NodeID("").Validate()).NotNil()
	})
}

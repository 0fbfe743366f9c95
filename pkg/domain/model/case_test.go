package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

func newTestCase() *model.DocumentCase {
	deadline := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &model.DocumentCase{
		ID:               types.NewCaseID(),
		DocumentType:     types.DocumentTypeIncoming,
		Title:            "Quarterly budget request",
		CurrentNode:      "clerk",
		Status:           types.CaseStatusInProgress,
		Creator:          "u-creator",
		MainAssignee:     "u-main",
		SupportAssignees: []types.UserID{"u-support"},
		Deadline:         &deadline,
		History: []Transition{
			{
				ID:         types.NewTransitionID(),
				FromNode:   "clerk",
				ToNode:     "clerk",
				Action:     types.ActionCreate,
				ActingUser: "u-creator",
			},
		},
	}
}

// Transition alias keeps the fixture readable
type Transition = model.Transition

func TestDocumentCaseClone(t *testing.T) {
	t.Run("clone is deep", func(t *testing.T) {
		orig := newTestCase()
		cloned := orig.Clone()

		cloned.SupportAssignees[0] = "u-other"
		cloned.History[0].Comment = "mutated"
		*cloned.Deadline = cloned.Deadline.Add(24 * time.Hour)

		gt.Value(t, orig.SupportAssignees[0]).Equal("u-support")
		gt.Value(t, orig.History[0].Comment).Equal("")
		gt.Value(t, orig.Deadline.Day()).Equal(1)
	})

	t.Run("clone of nil is nil", func(t *testing.T) {
		var c *model.DocumentCase
		gt.Value(t, c.Clone()).Nil()
	})
}

func TestDocumentCaseValidate(t *testing.T) {
	t.Run("valid case passes", func(t *testing.T) {
		gt.NoError(t, newTestCase().Validate())
	})

	t.Run("missing title fails", func(t *testing.T) {
		c := newTestCase()
		c.Title = ""
		gt.Value(t, c.Validate()).NotNil()
	})

	t.Run("missing main assignee fails", func(t *testing.T) {
		c := newTestCase()
		c.MainAssignee = ""
		gt.Value(t, c.Validate()).NotNil()
	})

	t.Run("invalid document type fails", func(t *testing.T) {
		c := newTestCase()
		c.DocumentType = "MEMO"
		gt.Value(t, c.Validate()).NotNil()
	})
}

func TestDocumentCaseEditableBy(t *testing.T) {
	t.Run("creator edits draft", func(t *testing.T) {
		c := newTestCase()
		c.Status = types.CaseStatusDraft
		gt.Bool(t, c.EditableBy("u-creator")).True()
	})

	t.Run("creator loses access once routed for decision", func(t *testing.T) {
		c := newTestCase()
		c.Status = types.CaseStatusPendingApproval
		gt.Bool(t, c.EditableBy("u-creator")).False()

		c.Status = types.CaseStatusCompleted
		gt.Bool(t, c.EditableBy("u-creator")).False()
	})

	t.Run("creator regains access on return", func(t *testing.T) {
		c := newTestCase()
		c.Status = types.CaseStatusReturned
		gt.Bool(t, c.EditableBy("u-creator")).True()
	})

	t.Run("non-creator never edits", func(t *testing.T) {
		c := newTestCase()
		c.Status = types.CaseStatusDraft
		gt.Bool(t, c.EditableBy("u-main")).False()
	})
}

func TestDocumentCaseLastTransition(t *testing.T) {
	c := newTestCase()
	gt.Value(t, c.LastTransition().Action).Equal(types.ActionCreate)

	c.History = nil
	gt.Value(t, c.LastTransition()).Nil()
}

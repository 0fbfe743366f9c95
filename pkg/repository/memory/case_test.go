package memory_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
	"github.com/secmon-lab/docflow/pkg/repository/memory"
)

func newStoredCase() *model.DocumentCase {
	return &model.DocumentCase{
		ID:           types.NewCaseID(),
		DocumentType: types.DocumentTypeIncoming,
		Title:        "Incoming dispatch 42",
		CurrentNode:  "clerk",
		Status:       types.CaseStatusDraft,
		Creator:      "u-creator",
		MainAssignee: "u-creator",
	}
}

func TestCaseRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		repo := memory.New()
		c := newStoredCase()

		created, err := repo.Case().Create(ctx, c)
		gt.NoError(t, err).Required()
		gt.Value(t, created.Revision).Equal(int64(1))
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		got, err := repo.Case().Get(ctx, c.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Incoming dispatch 42")
	})

	t.Run("create twice fails", func(t *testing.T) {
		repo := memory.New()
		c := newStoredCase()

		_, err := repo.Case().Create(ctx, c)
		gt.NoError(t, err).Required()

		_, err = repo.Case().Create(ctx, c)
		gt.Error(t, err).Is(memory.ErrAlreadyExists)
	})

	t.Run("get missing case fails", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Case().Get(ctx, types.NewCaseID())
		gt.Error(t, err).Is(memory.ErrNotFound)
	})

	t.Run("update advances revision", func(t *testing.T) {
		repo := memory.New()
		created, err := repo.Case().Create(ctx, newStoredCase())
		gt.NoError(t, err).Required()

		created.Status = types.CaseStatusInProgress
		updated, err := repo.Case().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Revision).Equal(int64(2))
		gt.Value(t, updated.Status).Equal(types.CaseStatusInProgress)
	})

	t.Run("stale revision is rejected", func(t *testing.T) {
		repo := memory.New()
		created, err := repo.Case().Create(ctx, newStoredCase())
		gt.NoError(t, err).Required()

		first := created.Clone()
		second := created.Clone()

		first.Title = "first writer"
		_, err = repo.Case().Update(ctx, first)
		gt.NoError(t, err).Required()

		second.Title = "second writer"
		_, err = repo.Case().Update(ctx, second)
		gt.Error(t, err).Is(memory.ErrRevisionMismatch)

		got, err := repo.Case().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("first writer")
	})

	t.Run("update commits new history entries to ledger", func(t *testing.T) {
		repo := memory.New()
		created, err := repo.Case().Create(ctx, newStoredCase())
		gt.NoError(t, err).Required()

		created.History = append(created.History, model.Transition{
			ID:         types.NewTransitionID(),
			CaseID:     created.ID,
			FromNode:   "clerk",
			ToNode:     "dept_head",
			Action:     types.ActionTransfer,
			ActingUser: "u-creator",
		})
		_, err = repo.Case().Update(ctx, created)
		gt.NoError(t, err).Required()

		entries, err := repo.Ledger().ListFor(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Action).Equal(types.ActionTransfer)
	})

	t.Run("failed update leaves ledger untouched", func(t *testing.T) {
		repo := memory.New()
		created, err := repo.Case().Create(ctx, newStoredCase())
		gt.NoError(t, err).Required()

		stale := created.Clone()
		stale.Revision = 99
		stale.History = append(stale.History, model.Transition{
			ID:     types.NewTransitionID(),
			CaseID: created.ID,
			Action: types.ActionTransfer,
		})
		_, err = repo.Case().Update(ctx, stale)
		gt.Error(t, err).Is(memory.ErrRevisionMismatch)

		entries, err := repo.Ledger().ListFor(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})

	t.Run("list filters by assignee and status", func(t *testing.T) {
		repo := memory.New()

		a := newStoredCase()
		a.MainAssignee = "u-alice"
		a.Status = types.CaseStatusInProgress
		_, err := repo.Case().Create(ctx, a)
		gt.NoError(t, err).Required()

		b := newStoredCase()
		b.SupportAssignees = []types.UserID{"u-alice"}
		b.Status = types.CaseStatusDraft
		_, err = repo.Case().Create(ctx, b)
		gt.NoError(t, err).Required()

		c := newStoredCase()
		c.MainAssignee = "u-bob"
		_, err = repo.Case().Create(ctx, c)
		gt.NoError(t, err).Required()

		byAssignee, err := repo.Case().List(ctx, interfaces.ListCasesFilter{Assignee: "u-alice"})
		gt.NoError(t, err).Required()
		gt.Array(t, byAssignee).Length(2)

		byBoth, err := repo.Case().List(ctx, interfaces.ListCasesFilter{
			Assignee: "u-alice",
			Status:   types.CaseStatusInProgress,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, byBoth).Length(1)
		gt.Value(t, byBoth[0].ID).Equal(a.ID)
	})

	t.Run("delete", func(t *testing.T) {
		repo := memory.New()
		created, err := repo.Case().Create(ctx, newStoredCase())
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Case().Delete(ctx, created.ID))

		_, err = repo.Case().Get(ctx, created.ID)
		gt.Error(t, err).Is(memory.ErrNotFound)

		gt.Error(t, repo.Case().Delete(ctx, created.ID)).Is(memory.ErrNotFound)
	})

	t.Run("stored case is isolated from caller mutation", func(t *testing.T) {
		repo := memory.New()
		c := newStoredCase()
		created, err := repo.Case().Create(ctx, c)
		gt.NoError(t, err).Required()

		created.Title = "mutated after create"

		got, err := repo.Case().Get(ctx, c.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Incoming dispatch 42")
	})
}

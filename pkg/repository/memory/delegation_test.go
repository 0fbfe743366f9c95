package memory_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
	"github.com/secmon-lab/docflow/pkg/repository/memory"
)

func TestDelegationRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	newDelegation := func(from types.UserID, start, end time.Time) *model.Delegation {
		return &model.Delegation{
			FromUser:  from,
			ToUser:    "u-deputy",
			StartDate: start,
			EndDate:   end,
			Active:    true,
		}
	}

	t.Run("create assigns ID and timestamps", func(t *testing.T) {
		repo := memory.New()
		created, err := repo.Delegation().Create(ctx, newDelegation("u-director", now, now.Add(time.Hour)))
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID.String()).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("find active for user honors window and lock", func(t *testing.T) {
		repo := memory.New()

		_, err := repo.Delegation().Create(ctx, newDelegation("u-director", now.Add(-time.Hour), now.Add(time.Hour)))
		gt.NoError(t, err).Required()

		expired := newDelegation("u-director", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
		_, err = repo.Delegation().Create(ctx, expired)
		gt.NoError(t, err).Required()

		locked := newDelegation("u-director", now.Add(-time.Hour), now.Add(time.Hour))
		locked.Active = false
		_, err = repo.Delegation().Create(ctx, locked)
		gt.NoError(t, err).Required()

		_, err = repo.Delegation().Create(ctx, newDelegation("u-other", now.Add(-time.Hour), now.Add(time.Hour)))
		gt.NoError(t, err).Required()

		found, err := repo.Delegation().FindActiveForUser(ctx, "u-director", now)
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(1)
	})

	t.Run("update preserves creation time", func(t *testing.T) {
		repo := memory.New()
		created, err := repo.Delegation().Create(ctx, newDelegation("u-director", now, now.Add(time.Hour)))
		gt.NoError(t, err).Required()

		created.EndDate = now.Add(48 * time.Hour)
		updated, err := repo.Delegation().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.CreatedAt).Equal(created.CreatedAt)
		gt.Value(t, updated.EndDate).Equal(now.Add(48 * time.Hour))
	})

	t.Run("get missing delegation fails", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Delegation().Get(ctx, types.NewDelegationID())
		gt.Error(t, err).Is(memory.ErrNotFound)
	})
}

func TestLedgerRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("append and list in order", func(t *testing.T) {
		repo := memory.New()
		caseID := types.NewCaseID()

		for _, action := range []types.Action{types.ActionCreate, types.ActionTransfer, types.ActionAccept} {
			err := repo.Ledger().Append(ctx, &model.Transition{
				ID:     types.NewTransitionID(),
				CaseID: caseID,
				Action: action,
			})
			gt.NoError(t, err).Required()
		}

		entries, err := repo.Ledger().ListFor(ctx, caseID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3)
		gt.Value(t, entries[0].Action).Equal(types.ActionCreate)
		gt.Value(t, entries[1].Action).Equal(types.ActionTransfer)
		gt.Value(t, entries[2].Action).Equal(types.ActionAccept)
	})

	t.Run("empty ledger lists nothing", func(t *testing.T) {
		repo := memory.New()
		entries, err := repo.Ledger().ListFor(ctx, types.NewCaseID())
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})
}

func TestAttachmentStore(t *testing.T) {
	ctx := context.Background()

	t.Run("put, open, exists", func(t *testing.T) {
		store := memory.NewAttachmentStore()

		ref, err := store.Put(ctx, "decision.pdf", bytes.NewReader([]byte("blob")))
		gt.NoError(t, err).Required()

		ok, err := store.Exists(ctx, ref)
		gt.NoError(t, err)
		gt.Bool(t, ok).True()

		r, err := store.Open(ctx, ref)
		gt.NoError(t, err).Required()
		defer r.Close()

		data, err := io.ReadAll(r)
		gt.NoError(t, err)
		gt.Value(t, string(data)).Equal("blob")
	})

	t.Run("open missing ref fails", func(t *testing.T) {
		store := memory.NewAttachmentStore()
		_, err := store.Open(ctx, types.NewAttachmentRef())
		gt.Error(t, err).Is(memory.ErrNotFound)

		ok, err := store.Exists(ctx, types.NewAttachmentRef())
		gt.NoError(t, err)
		gt.Bool(t, ok).False()
	})
}

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/docflow/pkg/domain/types"
	"github.com/secmon-lab/docflow/pkg/usecase"
)

func TestResolveActor(t *testing.T) {
	ctx := context.Background()

	t.Run("no delegation resolves to the user themselves", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		actor, err := uc.Delegation.ResolveActor(ctx, "u-head", testNow)
		gt.NoError(t, err).Required()
		gt.Value(t, actor).Equal(types.UserID("u-head"))
	})

	t.Run("single active delegation resolves to the delegate", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		_, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-deputy",
			StartDate: testNow.Add(-24 * time.Hour),
			EndDate:   testNow.Add(24 * time.Hour),
		})
		gt.NoError(t, err).Required()

		actor, err := uc.Delegation.ResolveActor(ctx, "u-head", testNow)
		gt.NoError(t, err).Required()
		gt.Value(t, actor).Equal(types.UserID("u-deputy"))

		// Resolution stops at one hop: the delegate is not resolved again
		// even if they delegated their own work elsewhere.
		_, err = uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-deputy",
			ToUser:    "u-third",
			StartDate: testNow.Add(-24 * time.Hour),
			EndDate:   testNow.Add(24 * time.Hour),
		})
		gt.NoError(t, err).Required()

		actor, err = uc.Delegation.ResolveActor(ctx, "u-head", testNow)
		gt.NoError(t, err).Required()
		gt.Value(t, actor).Equal(types.UserID("u-deputy"))
	})

	t.Run("expired or future delegations do not resolve", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		_, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-past",
			StartDate: testNow.Add(-72 * time.Hour),
			EndDate:   testNow.Add(-48 * time.Hour),
		})
		gt.NoError(t, err).Required()

		_, err = uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-future",
			StartDate: testNow.Add(48 * time.Hour),
			EndDate:   testNow.Add(72 * time.Hour),
		})
		gt.NoError(t, err).Required()

		actor, err := uc.Delegation.ResolveActor(ctx, "u-head", testNow)
		gt.NoError(t, err).Required()
		gt.Value(t, actor).Equal(types.UserID("u-head"))
	})

	t.Run("overlapping delegations are reported, never picked from", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		for _, to := range []types.UserID{"u-first", "u-second"} {
			_, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
				FromUser:  "u-head",
				ToUser:    to,
				StartDate: testNow.Add(-time.Hour),
				EndDate:   testNow.Add(time.Hour),
			})
			gt.NoError(t, err).Required()
		}

		_, err := uc.Delegation.ResolveActor(ctx, "u-head", testNow)
		gt.Error(t, err).Is(usecase.ErrAmbiguousDelegation)
	})

	t.Run("locked delegation does not resolve", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		d, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-deputy",
			StartDate: testNow.Add(-time.Hour),
			EndDate:   testNow.Add(time.Hour),
		})
		gt.NoError(t, err).Required()

		_, err = uc.Delegation.SetDelegationActive(ctx, d.ID, false)
		gt.NoError(t, err).Required()

		actor, err := uc.Delegation.ResolveActor(ctx, "u-head", testNow)
		gt.NoError(t, err).Required()
		gt.Value(t, actor).Equal(types.UserID("u-head"))
	})
}

func TestActsFor(t *testing.T) {
	ctx := context.Background()

	t.Run("the nominal holder keeps their own authority while delegating", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		_, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-deputy",
			StartDate: testNow.Add(-time.Hour),
			EndDate:   testNow.Add(time.Hour),
		})
		gt.NoError(t, err).Required()

		self, err := uc.Delegation.ActsFor(ctx, "u-head", "u-head", testNow)
		gt.NoError(t, err).Required()
		gt.Bool(t, self).True()

		deputy, err := uc.Delegation.ActsFor(ctx, "u-deputy", "u-head", testNow)
		gt.NoError(t, err).Required()
		gt.Bool(t, deputy).True()

		stranger, err := uc.Delegation.ActsFor(ctx, "u-stranger", "u-head", testNow)
		gt.NoError(t, err).Required()
		gt.Bool(t, stranger).False()
	})
}

func TestUpdateDelegation(t *testing.T) {
	ctx := context.Background()

	futureStart := testNow.Add(24 * time.Hour)
	futureEnd := testNow.Add(48 * time.Hour)

	t.Run("a future delegation is fully editable", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		d, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-deputy",
			StartDate: futureStart,
			EndDate:   futureEnd,
		})
		gt.NoError(t, err).Required()

		newTo := types.UserID("u-other")
		updated, err := uc.Delegation.UpdateDelegation(ctx, usecase.UpdateDelegationInput{
			ID:     d.ID,
			ToUser: &newTo,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.ToUser).Equal(newTo)
		gt.Value(t, updated.FromUser).Equal(types.UserID("u-head"))
	})

	t.Run("an in-force delegation accepts only end date and attachments", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		d, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-deputy",
			StartDate: testNow.Add(-time.Hour),
			EndDate:   testNow.Add(time.Hour),
		})
		gt.NoError(t, err).Required()

		newEnd := testNow.Add(6 * time.Hour)
		updated, err := uc.Delegation.UpdateDelegation(ctx, usecase.UpdateDelegationInput{
			ID:             d.ID,
			EndDate:        &newEnd,
			AttachmentRefs: []types.AttachmentRef{"order-123.pdf"},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.EndDate).Equal(newEnd)
		gt.Array(t, updated.AttachmentRefs).Length(1)

		newTo := types.UserID("u-other")
		_, err = uc.Delegation.UpdateDelegation(ctx, usecase.UpdateDelegationInput{
			ID:     d.ID,
			ToUser: &newTo,
		})
		gt.Error(t, err).Is(usecase.ErrDelegationFrozen)

		newStart := testNow.Add(-2 * time.Hour)
		_, err = uc.Delegation.UpdateDelegation(ctx, usecase.UpdateDelegationInput{
			ID:        d.ID,
			StartDate: &newStart,
		})
		gt.Error(t, err).Is(usecase.ErrDelegationFrozen)
	})

	t.Run("an elapsed delegation is read only", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		d, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-deputy",
			StartDate: testNow.Add(-72 * time.Hour),
			EndDate:   testNow.Add(-48 * time.Hour),
		})
		gt.NoError(t, err).Required()

		newEnd := testNow.Add(time.Hour)
		_, err = uc.Delegation.UpdateDelegation(ctx, usecase.UpdateDelegationInput{
			ID:      d.ID,
			EndDate: &newEnd,
		})
		gt.Error(t, err).Is(usecase.ErrDelegationReadOnly)
	})

	t.Run("unknown delegation reports not found", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		_, err := uc.Delegation.UpdateDelegation(ctx, usecase.UpdateDelegationInput{
			ID: types.NewDelegationID(),
		})
		gt.Error(t, err).Is(usecase.ErrDelegationNotFound)
	})
}

func TestSetDelegationActive(t *testing.T) {
	ctx := context.Background()

	t.Run("locking works even on an elapsed record", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		d, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-deputy",
			StartDate: testNow.Add(-72 * time.Hour),
			EndDate:   testNow.Add(-48 * time.Hour),
		})
		gt.NoError(t, err).Required()

		locked, err := uc.Delegation.SetDelegationActive(ctx, d.ID, false)
		gt.NoError(t, err).Required()
		gt.Bool(t, locked.Active).False()

		unlocked, err := uc.Delegation.SetDelegationActive(ctx, d.ID, true)
		gt.NoError(t, err).Required()
		gt.Bool(t, unlocked.Active).True()
	})

	t.Run("toggle is idempotent", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		d, err := uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
			FromUser:  "u-head",
			ToUser:    "u-deputy",
			StartDate: testNow.Add(-time.Hour),
			EndDate:   testNow.Add(time.Hour),
		})
		gt.NoError(t, err).Required()

		again, err := uc.Delegation.SetDelegationActive(ctx, d.ID, true)
		gt.NoError(t, err).Required()
		gt.Value(t, again.UpdatedAt).Equal(d.UpdatedAt)
	})
}

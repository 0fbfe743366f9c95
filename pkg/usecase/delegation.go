package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

type DelegationUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewDelegationUseCase(repo interfaces.Repository, now func() time.Time) *DelegationUseCase {
	return &DelegationUseCase{
		repo: repo,
		now:  now,
	}
}

// ResolveActor returns the effective actor for a nominal user at the
// given instant. With no active delegation the user acts as themselves;
// with exactly one, the delegate acts. Multiple overlapping delegations
// are a configuration error that must never be silently resolved by
// picking one.
func (uc *DelegationUseCase) ResolveActor(ctx context.Context, user types.UserID, at time.Time) (types.UserID, error) {
	found, err := uc.repo.Delegation().FindActiveForUser(ctx, user, at)
	if err != nil {
		return "", goerr.Wrap(err, "failed to look up delegations", goerr.V(UserIDKey, user))
	}

	switch len(found) {
	case 0:
		return user, nil
	case 1:
		return found[0].ToUser, nil
	default:
		return "", goerr.Wrap(ErrAmbiguousDelegation, "delegation configuration is ambiguous",
			goerr.V(UserIDKey, user),
			goerr.V("count", len(found)))
	}
}

// ActsFor reports whether actingUser may exercise nominal's authority at
// the given instant, either as themselves or as the sole active delegate.
func (uc *DelegationUseCase) ActsFor(ctx context.Context, actingUser, nominal types.UserID, at time.Time) (bool, error) {
	if actingUser == nominal {
		// The nominal holder keeps their own authority even while a
		// delegation is in force.
		return true, nil
	}

	effective, err := uc.ResolveActor(ctx, nominal, at)
	if err != nil {
		return false, err
	}
	return effective == actingUser, nil
}

// CreateDelegationInput carries the fields of an admin "create
// delegation" action.
type CreateDelegationInput struct {
	FromUser       types.UserID
	ToUser         types.UserID
	StartDate      time.Time
	EndDate        time.Time
	AttachmentRefs []types.AttachmentRef
}

func (uc *DelegationUseCase) CreateDelegation(ctx context.Context, input CreateDelegationInput) (*model.Delegation, error) {
	d := &model.Delegation{
		ID:             types.NewDelegationID(),
		FromUser:       input.FromUser,
		ToUser:         input.ToUser,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Active:         true,
		AttachmentRefs: input.AttachmentRefs,
	}
	if err := d.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid delegation")
	}

	created, err := uc.repo.Delegation().Create(ctx, d)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create delegation")
	}
	return created, nil
}

// UpdateDelegationInput carries a partial update. Nil fields are left
// unchanged; which fields are accepted depends on the record's EditMode.
type UpdateDelegationInput struct {
	ID             types.DelegationID
	FromUser       *types.UserID
	ToUser         *types.UserID
	StartDate      *time.Time
	EndDate        *time.Time
	AttachmentRefs []types.AttachmentRef
}

// UpdateDelegation applies field-level edit permissions: before the
// window opens everything may change; while in force only the end date
// and attachments; after the window the record is historical and frozen.
func (uc *DelegationUseCase) UpdateDelegation(ctx context.Context, input UpdateDelegationInput) (*model.Delegation, error) {
	existing, err := uc.repo.Delegation().Get(ctx, input.ID)
	if err != nil {
		return nil, goerr.Wrap(ErrDelegationNotFound, "delegation not found", goerr.V(DelegationIDKey, input.ID))
	}

	now := uc.now()
	mode := existing.EditMode(now)

	switch mode {
	case types.EditModeReadOnly:
		return nil, goerr.Wrap(ErrDelegationReadOnly, "delegation can no longer be edited",
			goerr.V(DelegationIDKey, input.ID))

	case types.EditModeEndDateAndAttachments:
		if input.FromUser != nil || input.ToUser != nil || input.StartDate != nil {
			return nil, goerr.Wrap(ErrDelegationFrozen, "identity and start date are frozen while in force",
				goerr.V(DelegationIDKey, input.ID),
				goerr.V("edit_mode", mode))
		}
	}

	updated := existing.Clone()
	if input.FromUser != nil {
		updated.FromUser = *input.FromUser
	}
	if input.ToUser != nil {
		updated.ToUser = *input.ToUser
	}
	if input.StartDate != nil {
		updated.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		updated.EndDate = *input.EndDate
	}
	if input.AttachmentRefs != nil {
		updated.AttachmentRefs = input.AttachmentRefs
	}

	if err := updated.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid delegation update", goerr.V(DelegationIDKey, input.ID))
	}

	saved, err := uc.repo.Delegation().Update(ctx, updated)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update delegation", goerr.V(DelegationIDKey, input.ID))
	}
	return saved, nil
}

// SetDelegationActive toggles the lock flag without touching the record
// itself. Locking works in any edit mode: an admin may always suspend a
// grant, but an elapsed record stays read-only for everything else.
func (uc *DelegationUseCase) SetDelegationActive(ctx context.Context, id types.DelegationID, active bool) (*model.Delegation, error) {
	existing, err := uc.repo.Delegation().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrDelegationNotFound, "delegation not found", goerr.V(DelegationIDKey, id))
	}

	if existing.Active == active {
		return existing, nil
	}

	updated := existing.Clone()
	updated.Active = active

	saved, err := uc.repo.Delegation().Update(ctx, updated)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to toggle delegation", goerr.V(DelegationIDKey, id))
	}
	return saved, nil
}

func (uc *DelegationUseCase) GetDelegation(ctx context.Context, id types.DelegationID) (*model.Delegation, error) {
	d, err := uc.repo.Delegation().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrDelegationNotFound, "delegation not found", goerr.V(DelegationIDKey, id))
	}
	return d, nil
}

func (uc *DelegationUseCase) ListDelegations(ctx context.Context) ([]*model.Delegation, error) {
	delegations, err := uc.repo.Delegation().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list delegations")
	}
	return delegations, nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

type delegationRepository struct {
	mu          sync.RWMutex
	delegations map[types.DelegationID]*model.Delegation
}

func newDelegationRepository() *delegationRepository {
	return &delegationRepository{
		delegations: make(map[types.DelegationID]*model.Delegation),
	}
}

func (r *delegationRepository) Create(ctx context.Context, d *model.Delegation) (*model.Delegation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := d.Clone()
	if created.ID == "" {
		created.ID = types.NewDelegationID()
	}
	if _, exists := r.delegations[created.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "delegation already exists", goerr.V("id", created.ID))
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.delegations[created.ID] = created
	return created.Clone(), nil
}

func (r *delegationRepository) Get(ctx context.Context, id types.DelegationID) (*model.Delegation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, exists := r.delegations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "delegation not found", goerr.V("id", id))
	}

	return d.Clone(), nil
}

func (r *delegationRepository) List(ctx context.Context) ([]*model.Delegation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delegations := make([]*model.Delegation, 0, len(r.delegations))
	for _, d := range r.delegations {
		delegations = append(delegations, d.Clone())
	}

	sort.Slice(delegations, func(i, j int) bool {
		return delegations[i].CreatedAt.Before(delegations[j].CreatedAt)
	})

	return delegations, nil
}

func (r *delegationRepository) Update(ctx context.Context, d *model.Delegation) (*model.Delegation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.delegations[d.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "delegation not found", goerr.V("id", d.ID))
	}

	updated := d.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.delegations[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *delegationRepository) FindActiveForUser(ctx context.Context, user types.UserID, at time.Time) ([]*model.Delegation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*model.Delegation
	for _, d := range r.delegations {
		if d.FromUser != user {
			continue
		}
		if !d.InForce(at) {
			continue
		}
		found = append(found, d.Clone())
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].CreatedAt.Before(found[j].CreatedAt)
	})

	return found, nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

type caseRepository struct {
	mu     sync.RWMutex
	cases  map[types.CaseID]*model.DocumentCase
	ledger *ledgerRepository
}

func newCaseRepository(ledger *ledgerRepository) *caseRepository {
	return &caseRepository{
		cases:  make(map[types.CaseID]*model.DocumentCase),
		ledger: ledger,
	}
}

func (r *caseRepository) Create(ctx context.Context, c *model.DocumentCase) (*model.DocumentCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := c.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "case ID is required")
	}
	if _, exists := r.cases[c.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "case already exists", goerr.V("id", c.ID))
	}

	now := time.Now().UTC()
	created := c.Clone()
	created.Revision = 1
	created.CreatedAt = now
	created.UpdatedAt = now

	r.cases[created.ID] = created
	r.ledger.appendAll(created.History)
	return created.Clone(), nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.DocumentCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	return c.Clone(), nil
}

func (r *caseRepository) List(ctx context.Context, filter interfaces.ListCasesFilter) ([]*model.DocumentCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.DocumentCase, 0, len(r.cases))
	for _, c := range r.cases {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Assignee != "" && !isAssigned(c, filter.Assignee) {
			continue
		}
		cases = append(cases, c.Clone())
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].CreatedAt.Before(cases[j].CreatedAt)
	})

	return cases, nil
}

func isAssigned(c *model.DocumentCase, user types.UserID) bool {
	if c.MainAssignee == user {
		return true
	}
	for _, u := range c.SupportAssignees {
		if u == user {
			return true
		}
	}
	for _, u := range c.ObserverAssignees {
		if u == user {
			return true
		}
	}
	return false
}

// Update is the compare-and-swap point for the per-case write path. The
// incoming Revision must match the stored one; on success the revision
// advances and any history entries appended since the load are committed
// to the ledger in the same critical section.
func (r *caseRepository) Update(ctx context.Context, c *model.DocumentCase) (*model.DocumentCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.cases[c.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", c.ID))
	}

	if c.Revision != existing.Revision {
		return nil, goerr.Wrap(ErrRevisionMismatch, "case was modified concurrently",
			goerr.V("id", c.ID),
			goerr.V("expected_revision", existing.Revision),
			goerr.V("got_revision", c.Revision))
	}

	updated := c.Clone()
	updated.Revision = existing.Revision + 1
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.cases[updated.ID] = updated
	if len(updated.History) > len(existing.History) {
		r.ledger.appendAll(updated.History[len(existing.History):])
	}
	return updated.Clone(), nil
}

func (r *caseRepository) Delete(ctx context.Context, id types.CaseID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cases[id]; !exists {
		return goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	delete(r.cases, id)
	return nil
}

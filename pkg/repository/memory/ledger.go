package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// ledgerRepository is append-only: no update or delete exists, by design.
type ledgerRepository struct {
	mu      sync.RWMutex
	entries map[types.CaseID][]*model.Transition
}

func newLedgerRepository() *ledgerRepository {
	return &ledgerRepository{
		entries: make(map[types.CaseID][]*model.Transition),
	}
}

func (r *ledgerRepository) Append(ctx context.Context, tx *model.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[tx.CaseID] = append(r.entries[tx.CaseID], tx.Clone())
	return nil
}

// appendAll commits transitions already validated by the case store. It
// takes the ledger lock itself so callers hold only the case lock.
func (r *ledgerRepository) appendAll(txs []model.Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range txs {
		tx := txs[i].Clone()
		r.entries[tx.CaseID] = append(r.entries[tx.CaseID], tx)
	}
}

func (r *ledgerRepository) ListFor(ctx context.Context, caseID types.CaseID) ([]*model.Transition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.entries[caseID]
	listed := make([]*model.Transition, len(entries))
	for i, tx := range entries {
		listed[i] = tx.Clone()
	}

	return listed, nil
}

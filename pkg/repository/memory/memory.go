// Package memory provides the in-memory reference implementation of the
// repository interfaces. It is the development backend and the model for
// what any real backend must guarantee: deep copy in/out, revision-based
// compare-and-swap on case updates, and atomic case+ledger commits.
package memory

import (
	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	cases       *caseRepository
	delegations *delegationRepository
	ledger      *ledgerRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	ledger := newLedgerRepository()

	return &Memory{
		// Case updates commit freshly appended history entries into the
		// ledger under the ledger's own lock, right after the CAS check
		// passes. See caseRepository.Update.
		cases:       newCaseRepository(ledger),
		delegations: newDelegationRepository(),
		ledger:      ledger,
	}
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.cases
}

func (m *Memory) Delegation() interfaces.DelegationRepository {
	return m.delegations
}

func (m *Memory) Ledger() interfaces.LedgerRepository {
	return m.ledger
}

func (m *Memory) Close() error {
	return nil
}

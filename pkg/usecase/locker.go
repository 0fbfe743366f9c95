package usecase

import (
	"sync"

	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// caseLocker serializes in-process writers per case ID. The store's
// revision check remains the authoritative conflict detector; this lock
// keeps well-behaved concurrent calls from burning a revision on a
// conflict they could simply wait out.
type caseLocker struct {
	mu    sync.Mutex
	locks map[types.CaseID]*sync.Mutex
}

func newCaseLocker() *caseLocker {
	return &caseLocker{
		locks: make(map[types.CaseID]*sync.Mutex),
	}
}

func (l *caseLocker) lock(id types.CaseID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

package memory

import "github.com/secmon-lab/docflow/pkg/domain/interfaces"

// The memory backend reports failures through the shared store
// sentinels.
var (
	ErrNotFound         = interfaces.ErrNotFound
	ErrAlreadyExists    = interfaces.ErrAlreadyExists
	ErrRevisionMismatch = interfaces.ErrRevisionMismatch
)

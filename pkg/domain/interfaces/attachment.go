package interfaces

import (
	"context"
	"io"

	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// AttachmentStore holds blob bytes behind opaque references. The engine
// stores only references on transitions and delegations.
type AttachmentStore interface {
	Put(ctx context.Context, name string, r io.Reader) (types.AttachmentRef, error)
	Open(ctx context.Context, ref types.AttachmentRef) (io.ReadCloser, error)
	Exists(ctx context.Context, ref types.AttachmentRef) (bool, error)
}

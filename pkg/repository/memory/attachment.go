package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

type attachment struct {
	name string
	data []byte
}

// AttachmentStore keeps blob bytes in memory behind opaque references.
type AttachmentStore struct {
	mu    sync.RWMutex
	blobs map[types.AttachmentRef]attachment
}

var _ interfaces.AttachmentStore = &AttachmentStore{}

func NewAttachmentStore() *AttachmentStore {
	return &AttachmentStore{
		blobs: make(map[types.AttachmentRef]attachment),
	}
}

func (s *AttachmentStore) Put(ctx context.Context, name string, r io.Reader) (types.AttachmentRef, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read attachment", goerr.V("name", name))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ref := types.NewAttachmentRef()
	s.blobs[ref] = attachment{name: name, data: data}
	return ref, nil
}

func (s *AttachmentStore) Open(ctx context.Context, ref types.AttachmentRef) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, exists := s.blobs[ref]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "attachment not found", goerr.V("ref", ref))
	}

	return io.NopCloser(bytes.NewReader(blob.data)), nil
}

func (s *AttachmentStore) Exists(ctx context.Context, ref types.AttachmentRef) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.blobs[ref]
	return exists, nil
}

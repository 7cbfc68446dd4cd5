package store

import (
	"sync"

	"gitlab.com/dagmesh/ordering-go/pkg/encoding"
	"gitlab.com/dagmesh/ordering-go/pkg/subdag"
)

type memoryStore struct {
	mx       sync.RWMutex
	frontier uint64
	subdags  map[uint64][]byte
}

// NewMemoryStore constructs a volatile in-memory store. Subdags are kept in
// their serialized form, so reads exercise the same codec as the persistent
// backends.
func NewMemoryStore() Store {
	return &memoryStore{subdags: make(map[uint64][]byte)}
}

func (ms *memoryStore) Frontier() (uint64, error) {
	ms.mx.RLock()
	defer ms.mx.RUnlock()
	return ms.frontier, nil
}

func (ms *memoryStore) Commit(sd *subdag.Subdag, newFrontier uint64) error {
	data, err := encoding.EncodeSubdag(sd)
	if err != nil {
		return err
	}
	ms.mx.Lock()
	defer ms.mx.Unlock()
	ms.subdags[sd.Leader().Round()] = data
	ms.frontier = newFrontier
	return nil
}

func (ms *memoryStore) Subdag(leaderRound uint64) (*subdag.Subdag, error) {
	ms.mx.RLock()
	data, ok := ms.subdags[leaderRound]
	ms.mx.RUnlock()
	if !ok {
		return nil, nil
	}
	return encoding.DecodeSubdag(data)
}

func (ms *memoryStore) Close() error {
	return nil
}

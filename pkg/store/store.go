// Package store persists committed subdags and the committed frontier.
// Persisting a subdag and advancing the frontier is a single atomic
// operation: either both are observed by later reads or neither is, so a
// later build can never compute against a frontier that conflicts with a
// partially written commit. Backend failures are opaque to the ordering
// core, they are wrapped and propagated, never interpreted or retried here.
package store

import (
	"encoding/binary"

	"gitlab.com/dagmesh/ordering-go/pkg/subdag"
)

// GenesisFrontier is the frontier reported before any subdag has been committed.
const GenesisFrontier uint64 = 0

// Store is a transactional kv abstraction over committed subdags.
type Store interface {
	// Frontier returns the round of the last committed leader, or GenesisFrontier.
	Frontier() (uint64, error)
	// Commit persists the subdag and advances the frontier to newFrontier atomically.
	Commit(sd *subdag.Subdag, newFrontier uint64) error
	// Subdag returns the subdag committed with a leader at the given round,
	// or nil if no subdag was committed there.
	Subdag(leaderRound uint64) (*subdag.Subdag, error)
	// Close releases the underlying resources.
	Close() error
}

var frontierKey = []byte("frontier")

// subdagKey keys subdags by leader round, big-endian so that the natural key
// order of the backend matches commit order.
func subdagKey(leaderRound uint64) []byte {
	key := make([]byte, 6+8)
	copy(key, "subdag")
	binary.BigEndian.PutUint64(key[6:], leaderRound)
	return key
}

func frontierValue(round uint64) []byte {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, round)
	return value
}

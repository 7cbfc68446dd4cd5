// Package dagview implements an in-memory certificate dag that serves as the
// lookup collaborator of the subdag builder. The transport layer inserts
// certificates as they arrive; the builder only ever reads.
package dagview

import (
	"sort"
	"sync"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
)

// View is a round-fibered, concurrency-safe collection of certificates.
// It implements dagcore.DagLookup. Inserts may run concurrently with reads,
// every read is a point-in-time snapshot of what has been inserted so far.
type View struct {
	mx      sync.RWMutex
	byID    map[dagcore.CertID]dagcore.Certificate
	byRound map[uint64][]dagcore.Certificate
}

// NewView constructs an empty certificate dag.
func NewView() *View {
	return &View{
		byID:    make(map[dagcore.CertID]dagcore.Certificate),
		byRound: make(map[uint64][]dagcore.Certificate),
	}
}

// Insert adds a certificate to the view. Re-inserting an identical copy of an
// already known certificate is a no-op; a duplicate id with divergent
// contents is rejected as a protocol violation.
func (v *View) Insert(c dagcore.Certificate) error {
	v.mx.Lock()
	defer v.mx.Unlock()
	if prev, ok := v.byID[c.ID()]; ok {
		if !dagcore.SameCertificate(prev, c) {
			return dagcore.NewInconsistentCertificate(c.ID(), "duplicate id with divergent contents")
		}
		return nil
	}
	v.byID[c.ID()] = c
	fiber := v.byRound[c.Round()]
	// keep each round's fiber sorted by id so reads are deterministic
	at := sort.Search(len(fiber), func(i int) bool { return !fiber[i].ID().LessThan(c.ID()) })
	fiber = append(fiber, nil)
	copy(fiber[at+1:], fiber[at:])
	fiber[at] = c
	v.byRound[c.Round()] = fiber
	return nil
}

// Resolve returns the certificate with the given id, or nil if unknown.
func (v *View) Resolve(id dagcore.CertID) dagcore.Certificate {
	v.mx.RLock()
	defer v.mx.RUnlock()
	return v.byID[id]
}

// RoundCertificates returns all known certificates of the given round,
// sorted ascending by id.
func (v *View) RoundCertificates(round uint64) []dagcore.Certificate {
	v.mx.RLock()
	defer v.mx.RUnlock()
	fiber := v.byRound[round]
	result := make([]dagcore.Certificate, len(fiber))
	copy(result, fiber)
	return result
}

// Len returns the number of certificates in the view.
func (v *View) Len() int {
	v.mx.RLock()
	defer v.mx.RUnlock()
	return len(v.byID)
}

// Package subdag implements the extraction and validation of the closed set
// of certificates that must be committed together when a leader certificate
// becomes final.
package subdag

import (
	"sort"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
)

// Subdag is the validated causal closure of certificates between the
// committed frontier and a newly committed leader, partitioned by round.
// A Subdag is constructed once, either by the builder or by decoding a
// persisted copy, and never mutated afterwards.
type Subdag struct {
	leader    dagcore.Certificate
	baseRound uint64
	rounds    map[uint64][]dagcore.Certificate
	placed    map[dagcore.CertID]uint64
}

// FromCertificates assembles a subdag from the given certificates,
// partitioning them by their declared rounds. Certificates are deduplicated
// by id and every round is kept sorted ascending by id, so two subdags
// assembled from the same certificate set are structurally equal regardless
// of input order.
func FromCertificates(leader dagcore.Certificate, baseRound uint64, certs []dagcore.Certificate) *Subdag {
	sd := &Subdag{
		leader:    leader,
		baseRound: baseRound,
		rounds:    make(map[uint64][]dagcore.Certificate),
		placed:    make(map[dagcore.CertID]uint64),
	}
	for _, c := range certs {
		if _, ok := sd.placed[c.ID()]; ok {
			continue
		}
		sd.placed[c.ID()] = c.Round()
		sd.rounds[c.Round()] = append(sd.rounds[c.Round()], c)
	}
	for _, fiber := range sd.rounds {
		sort.Slice(fiber, func(i, j int) bool { return fiber[i].ID().LessThan(fiber[j].ID()) })
	}
	return sd
}

// Leader returns the leader certificate whose finality caused this commit.
func (sd *Subdag) Leader() dagcore.Certificate {
	return sd.leader
}

// BaseRound returns the committed frontier round this subdag closes down to.
// The subdag spans rounds strictly above BaseRound up to the leader round.
func (sd *Subdag) BaseRound() uint64 {
	return sd.baseRound
}

// Rounds returns the populated rounds of the subdag in ascending order.
func (sd *Subdag) Rounds() []uint64 {
	rounds := make([]uint64, 0, len(sd.rounds))
	for r := range sd.rounds {
		rounds = append(rounds, r)
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i] < rounds[j] })
	return rounds
}

// Certificates returns the certificates committed at the given round,
// sorted ascending by id.
func (sd *Subdag) Certificates(round uint64) []dagcore.Certificate {
	fiber := sd.rounds[round]
	result := make([]dagcore.Certificate, len(fiber))
	copy(result, fiber)
	return result
}

// Contains checks whether a certificate with the given id belongs to the subdag.
func (sd *Subdag) Contains(id dagcore.CertID) bool {
	_, ok := sd.placed[id]
	return ok
}

// NumCertificates returns the total number of certificates across all rounds.
func (sd *Subdag) NumCertificates() int {
	return len(sd.placed)
}

// Equal checks structural equality of two subdags: same leader contents,
// same base round and identical certificate sets in every round.
func (sd *Subdag) Equal(other *Subdag) bool {
	if other == nil {
		return false
	}
	if sd.baseRound != other.baseRound || !dagcore.SameCertificate(sd.leader, other.leader) {
		return false
	}
	if len(sd.placed) != len(other.placed) || len(sd.rounds) != len(other.rounds) {
		return false
	}
	for r, fiber := range sd.rounds {
		otherFiber, ok := other.rounds[r]
		if !ok || len(fiber) != len(otherFiber) {
			return false
		}
		for i := range fiber {
			if !dagcore.SameCertificate(fiber[i], otherFiber[i]) {
				return false
			}
		}
	}
	return true
}

// Package linear implements the algorithm flattening a validated subdag into
// the deterministic total commit order of the transmissions it carries.
package linear

import (
	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
	"gitlab.com/dagmesh/ordering-go/pkg/subdag"
)

// Sequence is a lazy walk over the transmissions of one subdag. It visits
// rounds ascending from the frontier to the leader round, certificates of a
// round ascending by id, and transmissions of a certificate in the fixed
// order recorded on it. A transmission referenced by more than one
// certificate is emitted exactly once, at its first occurrence in this walk.
//
// A Sequence is a pure view of its subdag: two sequences over structurally
// equal subdags emit identical id streams, and Reset restarts the walk from
// the beginning.
type Sequence struct {
	sd     *subdag.Subdag
	rounds []uint64
	certs  []dagcore.Certificate
	ri     int
	ci     int
	ti     int
	seen   map[dagcore.TransmissionID]struct{}
}

// Linearize starts a fresh deterministic walk over the transmissions of the
// given subdag.
func Linearize(sd *subdag.Subdag) *Sequence {
	s := &Sequence{sd: sd, rounds: sd.Rounds()}
	s.Reset()
	return s
}

// Reset restarts the walk from the beginning.
func (s *Sequence) Reset() {
	s.ri, s.ci, s.ti = 0, 0, 0
	s.seen = make(map[dagcore.TransmissionID]struct{})
	if len(s.rounds) > 0 {
		s.certs = s.sd.Certificates(s.rounds[0])
	}
}

// Next returns the next transmission id in commit order. The second return
// value is false when the walk is exhausted.
func (s *Sequence) Next() (dagcore.TransmissionID, bool) {
	for s.ri < len(s.rounds) {
		if s.ci >= len(s.certs) {
			s.ri++
			s.ci, s.ti = 0, 0
			if s.ri < len(s.rounds) {
				s.certs = s.sd.Certificates(s.rounds[s.ri])
			}
			continue
		}
		transmissions := s.certs[s.ci].Transmissions()
		if s.ti >= len(transmissions) {
			s.ci++
			s.ti = 0
			continue
		}
		t := transmissions[s.ti]
		s.ti++
		if _, ok := s.seen[t]; ok {
			continue
		}
		s.seen[t] = struct{}{}
		return t, true
	}
	return dagcore.TransmissionID{}, false
}

// Flatten drains a fresh walk over the given subdag into a slice.
func Flatten(sd *subdag.Subdag) []dagcore.TransmissionID {
	var result []dagcore.TransmissionID
	seq := Linearize(sd)
	for t, ok := seq.Next(); ok; t, ok = seq.Next() {
		result = append(result, t)
	}
	return result
}

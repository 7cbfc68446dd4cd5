// Package tests contains fixtures shared by the test suites of the ordering
// layer: deterministic committees, certificate factories and dag builders.
package tests

import (
	"encoding/binary"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
	"gitlab.com/dagmesh/ordering-go/pkg/dagview"
)

// Validator returns the deterministic id of the i-th test validator.
func Validator(i int) dagcore.ValidatorID {
	var v dagcore.ValidatorID
	binary.LittleEndian.PutUint64(v[:8], uint64(i)+1)
	return v
}

// Transmission returns a deterministic transmission id derived from the seed.
func Transmission(seed uint64) dagcore.TransmissionID {
	var t dagcore.TransmissionID
	binary.LittleEndian.PutUint64(t[:8], seed+1)
	return t
}

// NewCommittee creates a committee with len(stakes) members. The i-th member
// is Validator(i) and carries stakes[i].
func NewCommittee(stakes []uint64) (*dagcore.Committee, []dagcore.ValidatorID) {
	validators := make([]dagcore.ValidatorID, len(stakes))
	stake := make(map[dagcore.ValidatorID]uint64, len(stakes))
	for i, s := range stakes {
		validators[i] = Validator(i)
		stake[validators[i]] = s
	}
	return dagcore.NewCommittee(stake), validators
}

// PopulateDag fills the view with a regular dag: in every round from
// firstRound to lastRound each validator authors one certificate referencing
// all certificates of the previous round, carrying txsPerCert unique
// transmissions. Returns the certificates of the last round.
func PopulateDag(view *dagview.View, validators []dagcore.ValidatorID, firstRound, lastRound uint64, txsPerCert int) ([]dagcore.Certificate, error) {
	var (
		prev []dagcore.CertID
		last []dagcore.Certificate
		seed uint64
	)
	for r := firstRound; r <= lastRound; r++ {
		var (
			ids   []dagcore.CertID
			certs []dagcore.Certificate
		)
		for _, v := range validators {
			transmissions := make([]dagcore.TransmissionID, txsPerCert)
			for k := range transmissions {
				transmissions[k] = Transmission(r*1000000 + seed)
				seed++
			}
			c := dagview.NewCertificate(r, v, prev, transmissions)
			if err := view.Insert(c); err != nil {
				return nil, err
			}
			ids = append(ids, c.ID())
			certs = append(certs, c)
		}
		prev, last = ids, certs
	}
	return last, nil
}

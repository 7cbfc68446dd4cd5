package encoding

import (
	"encoding/binary"
	"io"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
	"gitlab.com/dagmesh/ordering-go/pkg/subdag"
)

type encoder struct {
	io.Writer
}

// newEncoder creates an encoder writing to the given io.Writer.
// It encodes certificates in the following format:
//  1. Certificate id, 32 bytes.
//  2. Round number, 8 bytes.
//  3. Author id, 32 bytes.
//  4. Number of parents, 4 bytes.
//  5. Parent ids, as many as declared in 4., 32 bytes each, in the order recorded on the certificate.
//  6. Number of transmissions, 4 bytes.
//  7. Transmission ids, as many as declared in 6., 32 bytes each, in the order recorded on the certificate.
//
// A subdag is encoded as the leader certificate, the base round (8 bytes),
// the number of populated rounds (4 bytes) and then per round, ascending by
// round number: the round number (8 bytes), the certificate count (4 bytes)
// and the certificates sorted ascending by id. All integers are encoded as
// little-endian unsigned values. Field order, round key order and in-round
// certificate order are part of the format: structurally equal subdags
// serialize to identical bytes, so hashes over the serialized form are
// comparable across validators.
func newEncoder(w io.Writer) *encoder {
	return &encoder{w}
}

func (e *encoder) encodeCertificate(c dagcore.Certificate) error {
	id := c.ID()
	if _, err := e.Write(id[:]); err != nil {
		return err
	}
	if err := e.encodeUint64(c.Round()); err != nil {
		return err
	}
	author := c.Author()
	if _, err := e.Write(author[:]); err != nil {
		return err
	}
	parents := c.Parents()
	if err := e.encodeUint32(uint32(len(parents))); err != nil {
		return err
	}
	for _, p := range parents {
		if _, err := e.Write(p[:]); err != nil {
			return err
		}
	}
	transmissions := c.Transmissions()
	if err := e.encodeUint32(uint32(len(transmissions))); err != nil {
		return err
	}
	for _, t := range transmissions {
		if _, err := e.Write(t[:]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeSubdag(sd *subdag.Subdag) error {
	if err := e.encodeCertificate(sd.Leader()); err != nil {
		return err
	}
	if err := e.encodeUint64(sd.BaseRound()); err != nil {
		return err
	}
	rounds := sd.Rounds()
	if err := e.encodeUint32(uint32(len(rounds))); err != nil {
		return err
	}
	for _, r := range rounds {
		if err := e.encodeUint64(r); err != nil {
			return err
		}
		certs := sd.Certificates(r)
		if err := e.encodeUint32(uint32(len(certs))); err != nil {
			return err
		}
		for _, c := range certs {
			if err := e.encodeCertificate(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) encodeUint32(i uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, i)
	_, err := e.Write(buf)
	return err
}

func (e *encoder) encodeUint64(i uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, i)
	_, err := e.Write(buf)
	return err
}

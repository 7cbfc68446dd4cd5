package encoding

import (
	"encoding/binary"
	"io"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
	"gitlab.com/dagmesh/ordering-go/pkg/dagview"
	"gitlab.com/dagmesh/ordering-go/pkg/subdag"
)

type decoder struct {
	io.Reader
}

// newDecoder creates a decoder reading from the given io.Reader.
// It assumes the data was produced by the encoder from this package and is
// guaranteed to read only as much data as needed.
func newDecoder(r io.Reader) *decoder {
	return &decoder{r}
}

func (d *decoder) decodeCertificate() (dagcore.Certificate, error) {
	var id dagcore.CertID
	if _, err := io.ReadFull(d, id[:]); err != nil {
		return nil, err
	}
	round, err := d.decodeUint64()
	if err != nil {
		return nil, err
	}
	var author dagcore.ValidatorID
	if _, err := io.ReadFull(d, author[:]); err != nil {
		return nil, err
	}
	nParents, err := d.decodeUint32()
	if err != nil {
		return nil, err
	}
	parents := make([]dagcore.CertID, nParents)
	for i := range parents {
		if _, err := io.ReadFull(d, parents[i][:]); err != nil {
			return nil, err
		}
	}
	nTransmissions, err := d.decodeUint32()
	if err != nil {
		return nil, err
	}
	transmissions := make([]dagcore.TransmissionID, nTransmissions)
	for i := range transmissions {
		if _, err := io.ReadFull(d, transmissions[i][:]); err != nil {
			return nil, err
		}
	}
	return dagview.NewCertificateWithID(id, round, author, parents, transmissions), nil
}

func (d *decoder) decodeSubdag() (*subdag.Subdag, error) {
	leader, err := d.decodeCertificate()
	if err != nil {
		return nil, err
	}
	baseRound, err := d.decodeUint64()
	if err != nil {
		return nil, err
	}
	nRounds, err := d.decodeUint32()
	if err != nil {
		return nil, err
	}
	var certs []dagcore.Certificate
	for i := uint32(0); i < nRounds; i++ {
		round, err := d.decodeUint64()
		if err != nil {
			return nil, err
		}
		nCerts, err := d.decodeUint32()
		if err != nil {
			return nil, err
		}
		for j := uint32(0); j < nCerts; j++ {
			c, err := d.decodeCertificate()
			if err != nil {
				return nil, err
			}
			if c.Round() != round {
				return nil, dagcore.NewRoundMismatch(c.ID(), round, c.Round())
			}
			certs = append(certs, c)
		}
	}
	return subdag.FromCertificates(leader, baseRound, certs), nil
}

func (d *decoder) decodeUint32() (uint32, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(d, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (d *decoder) decodeUint64() (uint64, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(d, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

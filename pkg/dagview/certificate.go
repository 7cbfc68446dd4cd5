package dagview

import (
	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
)

type certificate struct {
	round         uint64
	id            dagcore.CertID
	author        dagcore.ValidatorID
	parents       []dagcore.CertID
	transmissions []dagcore.TransmissionID
}

// NewCertificate constructs a certificate with the given contents and an id
// derived from them. Intended for locally produced certificates and tests.
func NewCertificate(round uint64, author dagcore.ValidatorID, parents []dagcore.CertID, transmissions []dagcore.TransmissionID) dagcore.Certificate {
	id := dagcore.CertDigest(round, author, parents, transmissions)
	return NewCertificateWithID(id, round, author, parents, transmissions)
}

// NewCertificateWithID constructs a certificate carrying an externally
// supplied id, as found on the wire. The id is treated as opaque and is not
// recomputed from the contents.
func NewCertificateWithID(id dagcore.CertID, round uint64, author dagcore.ValidatorID, parents []dagcore.CertID, transmissions []dagcore.TransmissionID) dagcore.Certificate {
	return &certificate{
		round:         round,
		id:            id,
		author:        author,
		parents:       append([]dagcore.CertID(nil), parents...),
		transmissions: append([]dagcore.TransmissionID(nil), transmissions...),
	}
}

func (c *certificate) Round() uint64 {
	return c.round
}

func (c *certificate) ID() dagcore.CertID {
	return c.id
}

func (c *certificate) Author() dagcore.ValidatorID {
	return c.author
}

func (c *certificate) Parents() []dagcore.CertID {
	return c.parents
}

func (c *certificate) Transmissions() []dagcore.TransmissionID {
	return c.transmissions
}

package dagcore

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// CertID is a type storing certificate identifiers.
// The bytewise lexicographic order on CertIDs is the total order used
// whenever certificates of the same round have to be arranged deterministically.
type CertID [32]byte

// Short returns a shortened version of the id for easy viewing.
func (id CertID) Short() string {
	return base64.StdEncoding.EncodeToString(id[:8])
}

// LessThan checks if id is less than other in lexicographic order.
func (id CertID) LessThan(other CertID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// ZeroCertID is an id containing zeros at all 32 positions.
var ZeroCertID CertID

// ValidatorID identifies a member of the committee.
type ValidatorID [32]byte

// Short returns a shortened version of the id for easy viewing.
func (v ValidatorID) Short() string {
	return base64.StdEncoding.EncodeToString(v[:8])
}

// LessThan checks if v is less than other in lexicographic order.
func (v ValidatorID) LessThan(other ValidatorID) bool {
	return bytes.Compare(v[:], other[:]) < 0
}

// TransmissionID references an application-level payload carried inside a certificate.
type TransmissionID [32]byte

// Short returns a shortened version of the id for easy viewing.
func (t TransmissionID) Short() string {
	return base64.StdEncoding.EncodeToString(t[:8])
}

// CertDigest computes the identifier of a certificate with the given contents.
func CertDigest(round uint64, author ValidatorID, parents []CertID, transmissions []TransmissionID) CertID {
	var (
		result CertID
		data   bytes.Buffer
		buf    [8]byte
	)
	binary.LittleEndian.PutUint64(buf[:], round)
	data.Write(buf[:])
	data.Write(author[:])
	for _, p := range parents {
		data.Write(p[:])
	}
	for _, t := range transmissions {
		data.Write(t[:])
	}
	sha3.ShakeSum128(result[:], data.Bytes())
	return result
}

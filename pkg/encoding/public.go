// Package encoding implements the deterministic binary format used to
// persist committed subdags and to gossip commit records between validators.
package encoding

import (
	"bytes"
	"io"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
	"gitlab.com/dagmesh/ordering-go/pkg/subdag"
)

// EncodeCertificate encodes a certificate to a slice of bytes.
func EncodeCertificate(c dagcore.Certificate) ([]byte, error) {
	var buf bytes.Buffer
	if err := newEncoder(&buf).encodeCertificate(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeCertificate decodes the given data into a certificate. Complementary to EncodeCertificate.
func DecodeCertificate(data []byte) (dagcore.Certificate, error) {
	return newDecoder(bytes.NewReader(data)).decodeCertificate()
}

// EncodeSubdag encodes a subdag to a slice of bytes. Structurally equal
// subdags encode to identical bytes.
func EncodeSubdag(sd *subdag.Subdag) ([]byte, error) {
	var buf bytes.Buffer
	if err := newEncoder(&buf).encodeSubdag(sd); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSubdag decodes the given data into a subdag. Complementary to EncodeSubdag.
func DecodeSubdag(data []byte) (*subdag.Subdag, error) {
	return newDecoder(bytes.NewReader(data)).decodeSubdag()
}

// SendSubdag writes an encoded subdag to the writer.
func SendSubdag(sd *subdag.Subdag, w io.Writer) error {
	return newEncoder(w).encodeSubdag(sd)
}

// ReceiveSubdag decodes a subdag from the reader.
func ReceiveSubdag(r io.Reader) (*subdag.Subdag, error) {
	return newDecoder(r).decodeSubdag()
}

// Package dagcore defines all the interfaces and basic types of the subdag ordering layer.
//
// The main components defined in this package are:
//  1. The certificate capability, a read-only view of a signed batch certificate produced by a committee member.
//  2. The dag lookup capability, a point-in-time read of the locally known certificate dag.
//  3. The committee snapshot with its stake arithmetic and quorum threshold.
//  4. The error taxonomy shared by the subdag builder and its callers.
package dagcore

// Certificate is a read-only capability over a batch certificate that already
// passed signature verification. Implementations must be immutable: two
// certificates with the same ID are required to carry identical contents,
// and the builder treats a divergent duplicate as a protocol violation.
type Certificate interface {
	// Round in which the certificate was produced.
	Round() uint64
	// ID is the unique identifier of the certificate.
	ID() CertID
	// Author is the committee member that produced the certificate.
	Author() ValidatorID
	// Parents are the ids of the certificates from the previous round this one causally references.
	Parents() []CertID
	// Transmissions are the payload references carried by the certificate, in the fixed order they were recorded.
	Transmissions() []TransmissionID
}

// SameCertificate checks whether the two certificates carry identical contents.
func SameCertificate(a, b Certificate) bool {
	if a.ID() != b.ID() || a.Round() != b.Round() || a.Author() != b.Author() {
		return false
	}
	ap, bp := a.Parents(), b.Parents()
	if len(ap) != len(bp) {
		return false
	}
	for i := range ap {
		if ap[i] != bp[i] {
			return false
		}
	}
	at, bt := a.Transmissions(), b.Transmissions()
	if len(at) != len(bt) {
		return false
	}
	for i := range at {
		if at[i] != bt[i] {
			return false
		}
	}
	return true
}

// HasParent checks whether the certificate references the given id among its parents.
func HasParent(c Certificate, id CertID) bool {
	for _, p := range c.Parents() {
		if p == id {
			return true
		}
	}
	return false
}

// DagLookup is a read capability over the locally known portion of the certificate dag.
// Absence of a certificate signals an incomplete local view, not a protocol violation.
// Both methods must be side-effect-free from the caller's perspective and every
// call is a point-in-time read: the builder never asks twice about the same id
// within one build.
type DagLookup interface {
	// Resolve returns the certificate with the given id, or nil if it is not known locally.
	Resolve(CertID) Certificate
	// RoundCertificates returns all locally known certificates produced in the given round.
	RoundCertificates(uint64) []Certificate
}

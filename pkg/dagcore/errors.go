package dagcore

import "fmt"

// StaleLeaderError is returned when the candidate leader is at or before the
// committed frontier. Indicates the caller is behind, not a protocol fault.
type StaleLeaderError struct {
	LeaderRound uint64
	BaseRound   uint64
}

// Error returns a string description of a StaleLeaderError.
func (e *StaleLeaderError) Error() string {
	return fmt.Sprintf("StaleLeader: leader round %d at or before frontier %d", e.LeaderRound, e.BaseRound)
}

// NewStaleLeader constructs a StaleLeaderError for the given rounds.
func NewStaleLeader(leaderRound, baseRound uint64) *StaleLeaderError {
	return &StaleLeaderError{leaderRound, baseRound}
}

// IncompleteDagError is returned when a certificate demanded by the causal
// closure cannot be resolved locally. The caller may retry after more of the
// dag has been received.
type IncompleteDagError struct {
	ID    CertID
	Round uint64
}

// Error returns a string description of an IncompleteDagError.
func (e *IncompleteDagError) Error() string {
	return fmt.Sprintf("IncompleteDag: certificate %s at round %d not known locally", e.ID.Short(), e.Round)
}

// NewIncompleteDag constructs an IncompleteDagError for the given id.
func NewIncompleteDag(id CertID, round uint64) *IncompleteDagError {
	return &IncompleteDagError{id, round}
}

// QuorumNotReachedError is returned when the certificates referencing the
// leader do not yet carry enough stake. The caller may retry after more
// certificates have been received.
type QuorumNotReachedError struct {
	Got  uint64
	Need uint64
}

// Error returns a string description of a QuorumNotReachedError.
func (e *QuorumNotReachedError) Error() string {
	return fmt.Sprintf("QuorumNotReached: leader referenced by %d stake, need %d", e.Got, e.Need)
}

// NewQuorumNotReached constructs a QuorumNotReachedError from the observed and required stake.
func NewQuorumNotReached(got, need uint64) *QuorumNotReachedError {
	return &QuorumNotReachedError{got, need}
}

// RoundMismatchError is returned when a resolved certificate declares a round
// different from the one it was demanded at. Evidence of a misbehaving author.
type RoundMismatchError struct {
	ID   CertID
	Want uint64
	Got  uint64
}

// Error returns a string description of a RoundMismatchError.
func (e *RoundMismatchError) Error() string {
	return fmt.Sprintf("RoundMismatch: certificate %s demanded at round %d declares round %d", e.ID.Short(), e.Want, e.Got)
}

// NewRoundMismatch constructs a RoundMismatchError for the given certificate.
func NewRoundMismatch(id CertID, want, got uint64) *RoundMismatchError {
	return &RoundMismatchError{id, want, got}
}

// InconsistentCertificateError is returned when a certificate disagrees with
// its own declared metadata or with a previously observed copy of the same id.
// Evidence of a misbehaving author, must never be silently retried.
type InconsistentCertificateError struct {
	ID     CertID
	Reason string
}

// Error returns a string description of an InconsistentCertificateError.
func (e *InconsistentCertificateError) Error() string {
	return fmt.Sprintf("InconsistentCertificate: %s: %s", e.ID.Short(), e.Reason)
}

// NewInconsistentCertificate constructs an InconsistentCertificateError from a given reason.
func NewInconsistentCertificate(id CertID, reason string) *InconsistentCertificateError {
	return &InconsistentCertificateError{id, reason}
}

// Recoverable checks whether the given build failure only reflects a local
// view that is temporarily behind. Recoverable failures may be retried once
// more of the dag has been received; all other failures are protocol
// violations and must be surfaced as evidence of misbehavior.
func Recoverable(err error) bool {
	switch err.(type) {
	case *StaleLeaderError, *IncompleteDagError, *QuorumNotReachedError:
		return true
	}
	return false
}

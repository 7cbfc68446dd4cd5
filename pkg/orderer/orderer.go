// Package orderer glues the subdag builder, the linearizer and the store
// into the commit pipeline invoked by the surrounding consensus driver.
package orderer

import (
	"github.com/rs/zerolog"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
	"gitlab.com/dagmesh/ordering-go/pkg/linear"
	"gitlab.com/dagmesh/ordering-go/pkg/logging"
	"gitlab.com/dagmesh/ordering-go/pkg/store"
	"gitlab.com/dagmesh/ordering-go/pkg/subdag"
)

// Orderer commits finalized leader certificates. Each call works on the
// committee snapshot and dag view given at construction; swapping either for
// a new epoch means constructing a new Orderer.
type Orderer struct {
	committee *dagcore.Committee
	lookup    dagcore.DagLookup
	store     store.Store
	log       zerolog.Logger
}

// New constructs an orderer over the given collaborators.
func New(committee *dagcore.Committee, lookup dagcore.DagLookup, st store.Store, log zerolog.Logger) *Orderer {
	return &Orderer{
		committee: committee,
		lookup:    lookup,
		store:     st,
		log:       log.With().Int(logging.Service, logging.OrdererService).Logger(),
	}
}

// CommitLeader runs a single ordering attempt for the given leader
// candidate: it extracts the causal closure above the committed frontier,
// linearizes its transmissions and persists subdag plus frontier advance as
// one atomic store transaction. On success it returns the transmissions in
// commit order.
//
// The orderer never retries internally. A recoverable failure (see
// dagcore.Recoverable) means the local view is behind and the driver should
// call again once more certificates have arrived; any other failure is
// either a protocol violation to be escalated or an opaque store error.
func (ord *Orderer) CommitLeader(leader dagcore.Certificate) ([]dagcore.TransmissionID, error) {
	frontier, err := ord.store.Frontier()
	if err != nil {
		return nil, err
	}
	sd, err := subdag.Build(leader, frontier, ord.committee, ord.lookup)
	if err != nil {
		logging.BuildError(err, ord.log)
		return nil, err
	}
	ord.log.Info().
		Uint64(logging.Round, leader.Round()).
		Str(logging.Leader, leader.ID().Short()).
		Int(logging.Size, sd.NumCertificates()).
		Msg(logging.SubdagBuilt)

	transmissions := linear.Flatten(sd)
	ord.log.Info().Int(logging.Size, len(transmissions)).Msg(logging.LinearOrderOutput)

	if err := ord.store.Commit(sd, leader.Round()); err != nil {
		return nil, err
	}
	ord.log.Info().
		Uint64(logging.Round, leader.Round()).
		Uint64(logging.Frontier, leader.Round()).
		Msg(logging.CommitPersisted)
	return transmissions, nil
}

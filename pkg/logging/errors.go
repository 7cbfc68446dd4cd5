package logging

import (
	"github.com/rs/zerolog"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
)

// BuildError logs a failed subdag build to the provided logger. Recoverable
// local-view conditions are logged as info, they only mean the caller should
// retry once more of the dag arrives. Protocol violations are logged as
// errors since they carry evidence of a misbehaving author.
func BuildError(err error, log zerolog.Logger) {
	switch e := err.(type) {
	case *dagcore.StaleLeaderError:
		log.Info().Uint64(Round, e.LeaderRound).Uint64(Frontier, e.BaseRound).Msg(LeaderBehind)
	case *dagcore.IncompleteDagError:
		log.Info().Uint64(Round, e.Round).Str(Leader, e.ID.Short()).Msg(DagIncomplete)
	case *dagcore.QuorumNotReachedError:
		log.Info().Uint64(Stake, e.Got).Msg(QuorumPending)
	case *dagcore.RoundMismatchError:
		log.Error().Uint64(Round, e.Got).Str("where", "subdag.Build").Msg(ProtocolFault)
	case *dagcore.InconsistentCertificateError:
		log.Error().Str(Leader, e.ID.Short()).Str("where", "subdag.Build").Msg(ProtocolFault)
	default:
		log.Error().Str("where", "subdag.Build").Msg(err.Error())
	}
}

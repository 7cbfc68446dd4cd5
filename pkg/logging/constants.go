// Package logging configures the zerolog logger of the ordering layer and
// names the events and fields it emits. Events that happen once per commit
// get a single character representation to keep the logs small.
package logging

// Shortcuts for event types.
const (
	Genesis           = "genesis"
	SubdagBuilt       = "B"
	LinearOrderOutput = "L"
	CommitPersisted   = "C"
	DagIncomplete     = "D"
	QuorumPending     = "Q"
	LeaderBehind      = "S"
	ProtocolFault     = "F"
)

// Field names.
const (
	Time     = "T"
	Level    = "L"
	Event    = "E"
	Service  = "S"
	Size     = "N"
	Round    = "R"
	Frontier = "F"
	Leader   = "I"
	Stake    = "W"
)

// Service types.
const (
	OrdererService int = iota
	BuilderService
	StoreService
)

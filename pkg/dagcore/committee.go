package dagcore

import "sort"

// Committee is an immutable snapshot of the validator set of one epoch,
// mapping every member to its stake weight.
type Committee struct {
	stake map[ValidatorID]uint64
	total uint64
}

// NewCommittee constructs a committee snapshot from the given stake distribution.
// The map is copied, so later modifications by the caller do not leak into the snapshot.
func NewCommittee(stake map[ValidatorID]uint64) *Committee {
	c := &Committee{stake: make(map[ValidatorID]uint64, len(stake))}
	for v, s := range stake {
		c.stake[v] = s
		c.total += s
	}
	return c
}

// StakeOf returns the stake of the given member, or zero for validators outside the committee.
func (c *Committee) StakeOf(v ValidatorID) uint64 {
	return c.stake[v]
}

// TotalStake returns the summed stake of all committee members.
func (c *Committee) TotalStake() uint64 {
	return c.total
}

// QuorumThreshold is the minimal stake that has to reference a leader certificate
// before it can be committed. The rounding rule, floor of two thirds plus one,
// is a protocol constant and must be identical on every validator.
func (c *Committee) QuorumThreshold() uint64 {
	return c.total*2/3 + 1
}

// Size returns the number of committee members.
func (c *Committee) Size() int {
	return len(c.stake)
}

// Members returns the ids of all committee members in ascending order.
func (c *Committee) Members() []ValidatorID {
	members := make([]ValidatorID, 0, len(c.stake))
	for v := range c.stake {
		members = append(members, v)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].LessThan(members[j]) })
	return members
}

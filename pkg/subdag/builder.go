package subdag

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
)

// maxParallelResolves bounds the number of concurrent lookups issued for one
// round of the frontier. Lookups within a round are independent, rounds are
// processed sequentially because each frontier depends on the previous one.
const maxParallelResolves = 16

// Build extracts the causal closure of the given leader certificate down to
// the committed frontier and validates it. baseRound is the round of the
// previously committed leader, certificates at or below it are treated as
// already committed. The committee snapshot and the lookup are read-only for
// the duration of the call.
//
// The walk is iterative with an explicit placed-id set, so a misbehaving
// author can induce neither unbounded recursion nor an infinite loop. On any
// failure no partial subdag is returned. For a fixed input and a consistent
// dag view the result is structurally identical on every validator: nothing
// in it depends on lookup timing, iteration order or local state.
func Build(leader dagcore.Certificate, baseRound uint64, committee *dagcore.Committee, lookup dagcore.DagLookup) (*Subdag, error) {
	if leader.Round() <= baseRound {
		return nil, dagcore.NewStaleLeader(leader.Round(), baseRound)
	}

	placed := map[dagcore.CertID]uint64{leader.ID(): leader.Round()}
	certs := []dagcore.Certificate{leader}

	frontier, err := nextFrontier([]dagcore.Certificate{leader}, placed)
	if err != nil {
		return nil, err
	}
	for r := leader.Round() - 1; r > baseRound && len(frontier) > 0; r-- {
		resolved := resolveAll(lookup, frontier)
		for i, c := range resolved {
			if c == nil {
				return nil, dagcore.NewIncompleteDag(frontier[i], r)
			}
			if c.ID() != frontier[i] {
				return nil, dagcore.NewInconsistentCertificate(frontier[i], "resolved to a certificate with a different id")
			}
			if c.Round() != r {
				return nil, dagcore.NewRoundMismatch(frontier[i], r, c.Round())
			}
			placed[c.ID()] = r
		}
		certs = append(certs, resolved...)
		frontier, err = nextFrontier(resolved, placed)
		if err != nil {
			return nil, err
		}
	}
	// whatever remains in the frontier now sits at or below baseRound and was
	// committed by a previous subdag

	if err := checkLeaderSupport(leader, committee, lookup); err != nil {
		return nil, err
	}
	return FromCertificates(leader, baseRound, certs), nil
}

// nextFrontier collects the parents of the resolved certificates that have
// not been placed yet. The same ancestor may be referenced by multiple
// descendants and is included exactly once. A parent already placed at a
// round at or above its referencing certificate would close a cycle, which
// the protocol forbids. The returned ids are sorted ascending, which fixes
// both the resolution order and which failure surfaces first when several
// ids are problematic.
func nextFrontier(resolved []dagcore.Certificate, placed map[dagcore.CertID]uint64) ([]dagcore.CertID, error) {
	set := make(map[dagcore.CertID]struct{})
	for _, c := range resolved {
		for _, p := range c.Parents() {
			if p == c.ID() {
				return nil, dagcore.NewInconsistentCertificate(c.ID(), "lists itself among its parents")
			}
			if placedRound, ok := placed[p]; ok {
				if placedRound >= c.Round() {
					return nil, dagcore.NewInconsistentCertificate(c.ID(), "references a parent at or above its own round")
				}
				continue
			}
			set[p] = struct{}{}
		}
	}
	frontier := make([]dagcore.CertID, 0, len(set))
	for id := range set {
		frontier = append(frontier, id)
	}
	sort.Slice(frontier, func(i, j int) bool { return frontier[i].LessThan(frontier[j]) })
	return frontier, nil
}

// resolveAll looks up all the given ids, fanning the independent lookups out
// across goroutines. The i-th result corresponds to the i-th id and is nil
// when the certificate is not known locally.
func resolveAll(lookup dagcore.DagLookup, ids []dagcore.CertID) []dagcore.Certificate {
	resolved := make([]dagcore.Certificate, len(ids))
	sem := semaphore.NewWeighted(maxParallelResolves)
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id dagcore.CertID) {
			defer wg.Done()
			if err := sem.Acquire(context.Background(), 1); err != nil {
				return
			}
			defer sem.Release(1)
			resolved[i] = lookup.Resolve(id)
		}(i, id)
	}
	wg.Wait()
	return resolved
}

// checkLeaderSupport verifies that certificates of the round after the leader
// reference it with enough combined stake. Each author is counted once, so an
// equivocating validator cannot inflate the support of a leader.
func checkLeaderSupport(leader dagcore.Certificate, committee *dagcore.Committee, lookup dagcore.DagLookup) error {
	var support uint64
	counted := make(map[dagcore.ValidatorID]struct{})
	for _, c := range lookup.RoundCertificates(leader.Round() + 1) {
		if !dagcore.HasParent(c, leader.ID()) {
			continue
		}
		if _, ok := counted[c.Author()]; ok {
			continue
		}
		counted[c.Author()] = struct{}{}
		support += committee.StakeOf(c.Author())
	}
	if support < committee.QuorumThreshold() {
		return dagcore.NewQuorumNotReached(support, committee.QuorumThreshold())
	}
	return nil
}

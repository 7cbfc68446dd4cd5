package tests

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
	"gitlab.com/dagmesh/ordering-go/pkg/dagview"
)

// ReadDag reads a dag description from the given reader and builds a view
// containing the described certificates. The first line holds the committee
// size n; every member has stake 1. Each following line describes one
// certificate as whitespace separated "creator-round" tokens: the first
// token names the certificate being defined, the remaining tokens reference
// its parents, which must have been defined on earlier lines. Lines starting
// with // are skipped. Every certificate carries one unique transmission.
func ReadDag(reader io.Reader) (*dagview.View, *dagcore.Committee, []dagcore.ValidatorID, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Scan()
	var n int
	if _, err := fmt.Sscanf(scanner.Text(), "%d", &n); err != nil {
		return nil, nil, nil, err
	}

	stakes := make([]uint64, n)
	for i := range stakes {
		stakes[i] = 1
	}
	committee, validators := NewCommittee(stakes)
	view := dagview.NewView()
	certIDs := make(map[[2]int]dagcore.CertID)

	var txID uint64

	for scanner.Scan() {
		text := scanner.Text()
		// skip comments
		if strings.HasPrefix(text, "//") || strings.TrimSpace(text) == "" {
			continue
		}
		var creator, round int
		var parents []dagcore.CertID
		for i, token := range strings.Fields(text) {
			var c, r int
			if _, err := fmt.Sscanf(token, "%d-%d", &c, &r); err != nil {
				return nil, nil, nil, err
			}
			if i == 0 {
				creator, round = c, r
				continue
			}
			id, ok := certIDs[[2]int{c, r}]
			if !ok {
				return nil, nil, nil, fmt.Errorf("parent %d-%d referenced before definition", c, r)
			}
			parents = append(parents, id)
		}
		if creator < 0 || creator >= n {
			return nil, nil, nil, fmt.Errorf("creator %d outside the committee", creator)
		}
		cert := dagview.NewCertificate(uint64(round), validators[creator], parents, []dagcore.TransmissionID{Transmission(1000000000 + txID)})
		txID++
		if err := view.Insert(cert); err != nil {
			return nil, nil, nil, err
		}
		certIDs[[2]int{creator, round}] = cert.ID()
	}
	return view, committee, validators, nil
}

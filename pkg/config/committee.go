// Package config handles loading and storing the public data the ordering
// layer needs before it starts: the committee stake snapshot of the epoch.
package config

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
)

const malformedData = "malformed committee data"

// LoadCommittee reads a committee snapshot from the given reader. The
// expected format is a whitespace separated sequence of "id stake" pairs,
// where id is the hex encoded validator id and stake its decimal weight.
func LoadCommittee(r io.Reader) (*dagcore.Committee, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	stake := make(map[dagcore.ValidatorID]uint64)
	for scanner.Scan() {
		idToken := scanner.Text()
		if !scanner.Scan() {
			return nil, errors.New(malformedData)
		}
		idBytes, err := hex.DecodeString(idToken)
		if err != nil {
			return nil, errors.Wrap(err, malformedData)
		}
		var v dagcore.ValidatorID
		if len(idBytes) != len(v) {
			return nil, errors.New(malformedData)
		}
		copy(v[:], idBytes)
		if _, ok := stake[v]; ok {
			return nil, errors.Errorf("%s: duplicate member %s", malformedData, v.Short())
		}
		s, err := strconv.ParseUint(scanner.Text(), 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, malformedData)
		}
		stake[v] = s
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading committee data")
	}
	if len(stake) == 0 {
		return nil, errors.New(malformedData)
	}
	return dagcore.NewCommittee(stake), nil
}

// StoreCommittee writes the committee snapshot to the given writer in the
// format read by LoadCommittee, members ordered ascending by id.
func StoreCommittee(w io.Writer, c *dagcore.Committee) error {
	for _, v := range c.Members() {
		if _, err := fmt.Fprintf(w, "%s %d\n", hex.EncodeToString(v[:]), c.StakeOf(v)); err != nil {
			return errors.Wrap(err, "writing committee data")
		}
	}
	return nil
}

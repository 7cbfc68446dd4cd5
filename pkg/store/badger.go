package store

import (
	"encoding/binary"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"

	"gitlab.com/dagmesh/ordering-go/pkg/encoding"
	"gitlab.com/dagmesh/ordering-go/pkg/subdag"
)

type badgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a badger-backed store in the given directory. Commits
// run in a single update transaction.
func NewBadgerStore(dir string) (Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, errors.Wrap(err, "opening badger store")
	}
	return &badgerStore{db: db}, nil
}

func (bs *badgerStore) Frontier() (uint64, error) {
	var frontier uint64
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(frontierKey)
		if err == badger.ErrKeyNotFound {
			frontier = GenesisFrontier
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			frontier = binary.BigEndian.Uint64(value)
			return nil
		})
	})
	if err != nil {
		return 0, errors.Wrap(err, "reading frontier")
	}
	return frontier, nil
}

func (bs *badgerStore) Commit(sd *subdag.Subdag, newFrontier uint64) error {
	data, err := encoding.EncodeSubdag(sd)
	if err != nil {
		return err
	}
	err = bs.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(subdagKey(sd.Leader().Round()), data); err != nil {
			return err
		}
		return txn.Set(frontierKey, frontierValue(newFrontier))
	})
	return errors.Wrap(err, "committing subdag")
}

func (bs *badgerStore) Subdag(leaderRound uint64) (*subdag.Subdag, error) {
	var data []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(subdagKey(leaderRound))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading subdag")
	}
	return encoding.DecodeSubdag(data)
}

func (bs *badgerStore) Close() error {
	return errors.Wrap(bs.db.Close(), "closing badger store")
}

package store

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"gitlab.com/dagmesh/ordering-go/pkg/encoding"
	"gitlab.com/dagmesh/ordering-go/pkg/subdag"
)

type levelDBStore struct {
	db *leveldb.DB
}

// NewLevelDBStore opens a leveldb-backed store at the given path. Commits use
// a synced write batch, so the subdag and the frontier advance hit disk
// together.
func NewLevelDBStore(path string) (Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening leveldb store")
	}
	return &levelDBStore{db: db}, nil
}

func (ls *levelDBStore) Frontier() (uint64, error) {
	value, err := ls.db.Get(frontierKey, nil)
	if err == leveldb.ErrNotFound {
		return GenesisFrontier, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "reading frontier")
	}
	return binary.BigEndian.Uint64(value), nil
}

func (ls *levelDBStore) Commit(sd *subdag.Subdag, newFrontier uint64) error {
	data, err := encoding.EncodeSubdag(sd)
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Put(subdagKey(sd.Leader().Round()), data)
	batch.Put(frontierKey, frontierValue(newFrontier))
	if err := ls.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(err, "committing subdag")
	}
	return nil
}

func (ls *levelDBStore) Subdag(leaderRound uint64) (*subdag.Subdag, error) {
	data, err := ls.db.Get(subdagKey(leaderRound), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading subdag")
	}
	return encoding.DecodeSubdag(data)
}

func (ls *levelDBStore) Close() error {
	return errors.Wrap(ls.db.Close(), "closing leveldb store")
}

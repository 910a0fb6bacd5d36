package snapshot

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketSnapshots = "snapshots"

// BoltStore keeps records in a local bbolt database, keyed by big-endian
// sequence numbers so cursor order is sequence order.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, storageError("open", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		db.Close()
		return nil, storageError("init", err)
	}
	return &BoltStore{db: db}, nil
}

// boltEntry is the stored value.
type boltEntry struct {
	Time  time.Time       `json:"time"`
	Model json.RawMessage `json:"model"`
}

// Append implements Store.
func (s *BoltStore) Append(_ context.Context, data []byte) (uint64, error) {
	value, err := json.Marshal(boltEntry{Time: time.Now().UTC(), Model: data})
	if err != nil {
		return 0, storageError("encode", err)
	}
	var seq uint64
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshots))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), value)
	})
	if err != nil {
		return 0, storageError("append", err)
	}
	return seq, nil
}

// Latest implements Store.
func (s *BoltStore) Latest(_ context.Context) (Record, error) {
	var rec Record
	err := s.db.View(func(tx *bolt.Tx) error {
		k, v := tx.Bucket([]byte(bucketSnapshots)).Cursor().Last()
		if k == nil {
			return ErrNotFound
		}
		var entry boltEntry
		if err := json.Unmarshal(v, &entry); err != nil {
			return storageError("decode", err)
		}
		rec = Record{Seq: unmarshalSeq(k), Time: entry.Time, Model: entry.Model}
		return nil
	})
	return rec, err
}

// Get returns the record with the given sequence.
func (s *BoltStore) Get(seq uint64) (Record, error) {
	var rec Record
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSnapshots)).Get(marshalSeq(seq))
		if v == nil {
			return ErrNotFound
		}
		var entry boltEntry
		if err := json.Unmarshal(v, &entry); err != nil {
			return storageError("decode", err)
		}
		rec = Record{Seq: seq, Time: entry.Time, Model: entry.Model}
		return nil
	})
	return rec, err
}

// Iterate calls f for every record with from <= seq < upto, in order.
func (s *BoltStore) Iterate(from, upto uint64, f func(Record)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketSnapshots)).Cursor()
		for k, v := c.Seek(marshalSeq(from)); k != nil && unmarshalSeq(k) < upto; k, v = c.Next() {
			var entry boltEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return storageError("decode", err)
			}
			f(Record{Seq: unmarshalSeq(k), Time: entry.Time, Model: entry.Model})
		}
		return nil
	})
}

// Prune deletes all but the newest keep records.
func (s *BoltStore) Prune(keep int) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshots))
		var stale [][]byte
		n := 0
		c := b.Cursor()
		for k, _ := c.Last(); k != nil; k, _ = c.Prev() {
			n++
			if n > keep {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageError("prune", err)
	}
	return nil
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

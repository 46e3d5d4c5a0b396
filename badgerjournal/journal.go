package badgerjournal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/FedorSmirnov89/enact"
	"github.com/dgraph-io/badger/v4"
)

var recordKeyPrefix = []byte(`enact.records.`)

var _ enact.Journal = &Journal{}

// Journal stores transition records in a badger database. Revisions
// come from a badger sequence; appends are serialized so revisions
// become visible in order.
type Journal struct {
	db *badger.DB

	appendMu sync.Mutex
	revSeq   *badger.Sequence
}

func New(db *badger.DB) (*Journal, error) {
	revSeq, err := getRecordRevSequence(db)
	if err != nil {
		return nil, fmt.Errorf("db: get record rev seq: %w", err)
	}

	return &Journal{
		db:     db,
		revSeq: revSeq,
	}, nil
}

// Shutdown releases the revision sequence. The database itself belongs
// to the caller.
func (j *Journal) Shutdown(_ context.Context) error {
	if err := j.revSeq.Release(); err != nil {
		return fmt.Errorf("release record rev seq: %w", err)
	}

	return nil
}

func (j *Journal) Append(rec *enact.Record) error {
	if rec.EnactableID == `` {
		return fmt.Errorf("enactable id empty")
	}

	j.appendMu.Lock()
	defer j.appendMu.Unlock()

	nextRev, err := j.revSeq.Next()
	if err != nil {
		return fmt.Errorf("get next rev: %w", err)
	}

	rec.Rev = int64(nextRev)
	if rec.AtUnixMilli == 0 {
		rec.AtUnixMilli = time.Now().UnixMilli()
	}

	return j.db.Update(func(txn *badger.Txn) error {
		if err := setRecord(txn, rec); err != nil {
			return fmt.Errorf("set record: %w", err)
		}
		if err := setLatestRecordRev(txn, rec.EnactableID, rec.Rev); err != nil {
			return fmt.Errorf("set latest record rev: %w", err)
		}

		return nil
	})
}

func (j *Journal) Records(q enact.Query) (*enact.QueryResult, error) {
	q.Prepare()

	res := &enact.QueryResult{}
	if err := j.db.View(func(txn *badger.Txn) error {
		sinceRev := q.SinceRev
		if sinceRev == -1 {
			latestRev, err := latestMatchingRev(txn, q)
			if err != nil {
				return err
			}
			if latestRev == 0 {
				return nil
			}

			sinceRev = latestRev - 1
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = recordKeyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(recordKey(sinceRev + 1)); it.Valid(); it.Next() {
			rec := enact.Record{}
			if err := getItemGOB(it.Item(), &rec); err != nil {
				return fmt.Errorf("get record: %w", err)
			}

			if !q.Match(&rec) {
				continue
			}
			if q.LatestOnly {
				latestRev, err := getLatestRecordRev(txn, rec.EnactableID)
				if err != nil {
					return fmt.Errorf("get latest record rev: %w", err)
				}
				if rec.Rev < latestRev {
					continue
				}
			}

			if len(res.Records) == q.Limit {
				res.More = true
				break
			}

			res.Records = append(res.Records, rec)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("get records: %w", err)
	}

	return res, nil
}

// latestMatchingRev finds the revision of the newest record matching
// the query filters; zero means none match.
func latestMatchingRev(txn *badger.Txn, q enact.Query) (int64, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = recordKeyPrefix
	opts.Reverse = true
	it := txn.NewIterator(opts)
	defer it.Close()

	// seek past the last possible record key
	seekKey := append(append([]byte(nil), recordKeyPrefix...), 0xFF)
	for it.Seek(seekKey); it.Valid(); it.Next() {
		rec := enact.Record{}
		if err := getItemGOB(it.Item(), &rec); err != nil {
			return 0, fmt.Errorf("get record: %w", err)
		}

		if q.Match(&rec) {
			return rec.Rev, nil
		}
	}

	return 0, nil
}

func getRecordRevSequence(db *badger.DB) (*badger.Sequence, error) {
	seq, err := db.GetSequence([]byte("enact.rev.record"), 10000)
	if err != nil {
		return nil, err
	}
	// make sure we never get rev=0
	if _, err := seq.Next(); err != nil {
		return nil, err
	}

	return seq, nil
}

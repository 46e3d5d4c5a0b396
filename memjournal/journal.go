package memjournal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/FedorSmirnov89/enact"
)

var _ enact.Journal = &Journal{}

// Journal keeps transition records in memory. Gone on restart; meant
// for tests and single process setups.
type Journal struct {
	mu      sync.Mutex
	rev     int64
	entries []enact.Record
}

func New() *Journal {
	return &Journal{}
}

// Append assigns the next revision, stamps the record with the current
// time when it carries none and stores a copy. The passed record is
// updated with the assigned revision and time.
func (j *Journal) Append(rec *enact.Record) error {
	if rec.EnactableID == `` {
		return fmt.Errorf("enactable id empty")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.rev++
	rec.Rev = j.rev
	if rec.AtUnixMilli == 0 {
		rec.AtUnixMilli = time.Now().UnixMilli()
	}

	committed := enact.Record{}
	rec.CopyTo(&committed)
	j.entries = append(j.entries, committed)

	return nil
}

func (j *Journal) Records(q enact.Query) (*enact.QueryResult, error) {
	q.Prepare()

	j.mu.Lock()
	defer j.mu.Unlock()

	res := &enact.QueryResult{}

	sinceRev := q.SinceRev
	if sinceRev == -1 {
		found := false
		for i := len(j.entries) - 1; i >= 0; i-- {
			if q.Match(&j.entries[i]) {
				sinceRev = j.entries[i].Rev - 1
				found = true
				break
			}
		}
		if !found {
			return res, nil
		}
	}

	for i := 0; i < len(j.entries); i++ {
		rec := &j.entries[i]
		if rec.Rev <= sinceRev {
			continue
		}
		if !q.Match(rec) {
			continue
		}
		if q.LatestOnly && rec.Rev < j.latestRevLocked(rec.EnactableID) {
			continue
		}

		if len(res.Records) == q.Limit {
			res.More = true
			break
		}

		cp := enact.Record{}
		rec.CopyTo(&cp)
		res.Records = append(res.Records, cp)
	}

	return res, nil
}

func (j *Journal) Shutdown(_ context.Context) error {
	return nil
}

func (j *Journal) latestRevLocked(id enact.EnactableID) int64 {
	for i := len(j.entries) - 1; i >= 0; i-- {
		if j.entries[i].EnactableID == id {
			return j.entries[i].Rev
		}
	}

	return 0
}

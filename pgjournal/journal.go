package pgjournal

import (
	"context"
	"fmt"
	"time"

	"github.com/FedorSmirnov89/enact"
)

var _ enact.Journal = &Journal{}

type journalQueries interface {
	InsertRecord(ctx context.Context, tx conntx, rec *enact.Record) error
	GetRecords(ctx context.Context, tx conntx, id enact.EnactableID, sinceRev int64, sinceTime time.Time, recs []enact.Record) ([]enact.Record, error)
	GetLatestRecords(ctx context.Context, tx conntx, id enact.EnactableID, sinceRev int64, sinceTime time.Time, recs []enact.Record) ([]enact.Record, error)
}

// Journal stores records in postgres. Revisions come from a sequence;
// reads hold back rows of still in-flight transactions so revisions
// become visible in order.
type Journal struct {
	conn conn
	q    journalQueries
}

// New returns a journal backed by the given postgres connection pool.
// The pool stays owned by the caller. Migrations must have been applied.
func New(conn conn) *Journal {
	return &Journal{
		conn: conn,
		q:    &queries{},
	}
}

func (j *Journal) Append(rec *enact.Record) error {
	if rec.AtUnixMilli == 0 {
		rec.AtUnixMilli = time.Now().UnixMilli()
	}
	// the rev column is authoritative; the copy inside the record blob is not read back
	rec.Rev = 0

	if err := j.q.InsertRecord(context.Background(), j.conn, rec); err != nil {
		return fmt.Errorf("insert record query: %w", err)
	}

	return nil
}

func (j *Journal) Records(q enact.Query) (*enact.QueryResult, error) {
	q.Prepare()

	recs := make([]enact.Record, q.Limit+1)

	var err error
	if q.LatestOnly {
		recs, err = j.q.GetLatestRecords(context.Background(), j.conn, q.EnactableID, q.SinceRev, q.SinceTime, recs)
		if err != nil {
			return nil, fmt.Errorf("get latest records query: %w", err)
		}
	} else {
		recs, err = j.q.GetRecords(context.Background(), j.conn, q.EnactableID, q.SinceRev, q.SinceTime, recs)
		if err != nil {
			return nil, fmt.Errorf("get records query: %w", err)
		}
	}

	var more bool
	if len(recs) > q.Limit {
		recs = recs[:q.Limit]
		more = true
	}

	return &enact.QueryResult{
		Records: recs,
		More:    more,
	}, nil
}

func (j *Journal) Shutdown(_ context.Context) error {
	return nil
}

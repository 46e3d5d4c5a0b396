package enact

import (
	"context"
	"time"
)

// A Record is one control state transition of an enactable, as stored
// in a journal.
type Record struct {
	Rev         int64             `json:"rev"`
	EnactableID EnactableID       `json:"enactable_id"`
	From        State             `json:"from"`
	To          State             `json:"to"`
	AtUnixMilli int64             `json:"at_unix_milli"`
	Annotations map[string]string `json:"annotations"`
}

func (rec *Record) At() time.Time {
	return time.UnixMilli(rec.AtUnixMilli)
}

func (rec *Record) SetAnnotation(name, value string) {
	if rec.Annotations == nil {
		rec.Annotations = make(map[string]string)
	}
	rec.Annotations[name] = value
}

func (rec *Record) CopyTo(to *Record) *Record {
	to.Rev = rec.Rev
	to.EnactableID = rec.EnactableID
	to.From = rec.From
	to.To = rec.To
	to.AtUnixMilli = rec.AtUnixMilli
	for k, v := range rec.Annotations {
		to.SetAnnotation(k, v)
	}

	return to
}

const DefaultQueryLimit = 500

// Query selects journal records.
//
// SinceRev is exclusive: only records with a greater revision are
// returned. The special value -1 starts at the latest matching record.
// A zero SinceTime means no time filter.
type Query struct {
	SinceRev    int64
	SinceTime   time.Time
	EnactableID EnactableID
	LatestOnly  bool
	Limit       int
}

func (q Query) WithSinceRev(rev int64) Query {
	q.SinceRev = rev
	return q
}

func (q Query) WithSinceLatest() Query {
	q.SinceRev = -1
	return q
}

func (q Query) WithSinceTime(since time.Time) Query {
	q.SinceTime = since
	return q
}

func (q Query) WithEnactableID(id EnactableID) Query {
	q.EnactableID = id
	return q
}

func (q Query) WithLatestOnly() Query {
	q.LatestOnly = true
	return q
}

func (q Query) WithLimit(limit int) Query {
	q.Limit = limit
	return q
}

func (q *Query) Prepare() {
	if q.Limit == 0 {
		q.Limit = DefaultQueryLimit
	}
}

// Match reports whether rec passes the enactable and time filters.
// Revision windows, Limit and LatestOnly are applied by the journal
// implementations on top.
func (q Query) Match(rec *Record) bool {
	if q.EnactableID != `` && rec.EnactableID != q.EnactableID {
		return false
	}
	if !q.SinceTime.IsZero() && rec.AtUnixMilli < q.SinceTime.UnixMilli() {
		return false
	}

	return true
}

type QueryResult struct {
	Records []Record
	More    bool
}

// A Journal stores the transition history of enactables.
//
// Append assigns the next revision to rec and stamps the commit time
// when unset. Records returns matching records in revision order; when
// the result was truncated by the query limit More is set and the next
// page starts after the last returned revision.
type Journal interface {
	Append(rec *Record) error
	Records(q Query) (*QueryResult, error)
	Shutdown(ctx context.Context) error
}

package enact

import (
	"fmt"
	"strings"
	"time"

	"github.com/VictoriaMetrics/easyproto"
)

var mp = &easyproto.MarshalerPool{}

func MarshalRecord(rec *Record, dst []byte) []byte {
	m := mp.Get()
	defer mp.Put(m)

	marshalRecord(rec, m.MessageMarshaler())
	return m.Marshal(dst)
}

//	message Record {
//	 string enactable_id = 1;
//	 int64 rev = 2;
//	 string from = 3;
//	 string to = 4;
//	 int64 at_unix_milli = 5;
//	 map<string, string> annotations = 6;
//	}
func marshalRecord(rec *Record, mm *easyproto.MessageMarshaler) {
	if rec.EnactableID != "" {
		mm.AppendString(1, string(rec.EnactableID))
	}
	if rec.Rev != 0 {
		mm.AppendInt64(2, rec.Rev)
	}
	if rec.From != Waiting {
		mm.AppendString(3, rec.From.String())
	}
	if rec.To != Waiting {
		mm.AppendString(4, rec.To.String())
	}
	if rec.AtUnixMilli != 0 {
		mm.AppendInt64(5, rec.AtUnixMilli)
	}
	if len(rec.Annotations) > 0 {
		marshalStringMap(rec.Annotations, 6, mm)
	}
}

func UnmarshalRecord(src []byte, rec *Record) (err error) {
	var fc easyproto.FieldContext
	for len(src) > 0 {
		src, err = fc.NextField(src)
		if err != nil {
			return fmt.Errorf("cannot read next field")
		}
		switch fc.FieldNum {
		case 1:
			id, ok := fc.String()
			if !ok {
				return fmt.Errorf("cannot read 'string enactable_id = 1;' field")
			}
			rec.EnactableID = EnactableID(strings.Clone(id))
		case 2:
			rev, ok := fc.Int64()
			if !ok {
				return fmt.Errorf("cannot read 'int64 rev = 2;' field")
			}
			rec.Rev = rev
		case 3:
			from, ok := fc.String()
			if !ok {
				return fmt.Errorf("cannot read 'string from = 3;' field")
			}
			s, err := ParseState(from)
			if err != nil {
				return fmt.Errorf("cannot read 'string from = 3;' field: %w", err)
			}
			rec.From = s
		case 4:
			to, ok := fc.String()
			if !ok {
				return fmt.Errorf("cannot read 'string to = 4;' field")
			}
			s, err := ParseState(to)
			if err != nil {
				return fmt.Errorf("cannot read 'string to = 4;' field: %w", err)
			}
			rec.To = s
		case 5:
			at, ok := fc.Int64()
			if !ok {
				return fmt.Errorf("cannot read 'int64 at_unix_milli = 5;' field")
			}
			rec.AtUnixMilli = at
		case 6:
			data, ok := fc.MessageData()
			if !ok {
				return fmt.Errorf("cannot read 'map<string, string> annotations = 6;' field")
			}

			if rec.Annotations == nil {
				rec.Annotations = make(map[string]string)
			}

			if err := unmarshalStringMapItem(data, rec.Annotations); err != nil {
				return fmt.Errorf("cannot read 'map<string, string> annotations = 6;' field: %w", err)
			}
		}
	}
	return nil
}

func MarshalQuery(q Query, dst []byte) []byte {
	m := mp.Get()
	defer mp.Put(m)

	marshalQuery(q, m.MessageMarshaler())
	return m.Marshal(dst)
}

//	message Query {
//	 int64 since_rev = 1;
//	 int64 since_time_unix_milli = 2;
//	 string enactable_id = 3;
//	 bool latest_only = 4;
//	 int64 limit = 5;
//	}
func marshalQuery(q Query, mm *easyproto.MessageMarshaler) {
	if q.SinceRev != 0 {
		mm.AppendInt64(1, q.SinceRev)
	}
	if !q.SinceTime.IsZero() {
		mm.AppendInt64(2, q.SinceTime.UnixMilli())
	}
	if q.EnactableID != "" {
		mm.AppendString(3, string(q.EnactableID))
	}
	if q.LatestOnly {
		mm.AppendBool(4, true)
	}
	if q.Limit != 0 {
		mm.AppendInt64(5, int64(q.Limit))
	}
}

func UnmarshalQuery(src []byte, q *Query) (err error) {
	var fc easyproto.FieldContext
	for len(src) > 0 {
		src, err = fc.NextField(src)
		if err != nil {
			return fmt.Errorf("cannot read next field")
		}
		switch fc.FieldNum {
		case 1:
			rev, ok := fc.Int64()
			if !ok {
				return fmt.Errorf("cannot read 'int64 since_rev = 1;' field")
			}
			q.SinceRev = rev
		case 2:
			since, ok := fc.Int64()
			if !ok {
				return fmt.Errorf("cannot read 'int64 since_time_unix_milli = 2;' field")
			}
			if since != 0 {
				q.SinceTime = time.UnixMilli(since)
			}
		case 3:
			id, ok := fc.String()
			if !ok {
				return fmt.Errorf("cannot read 'string enactable_id = 3;' field")
			}
			q.EnactableID = EnactableID(strings.Clone(id))
		case 4:
			latestOnly, ok := fc.Bool()
			if !ok {
				return fmt.Errorf("cannot read 'bool latest_only = 4;' field")
			}
			q.LatestOnly = latestOnly
		case 5:
			limit, ok := fc.Int64()
			if !ok {
				return fmt.Errorf("cannot read 'int64 limit = 5;' field")
			}
			q.Limit = int(limit)
		}
	}
	return nil
}

func MarshalQueryResult(res *QueryResult, dst []byte) []byte {
	m := mp.Get()
	defer mp.Put(m)

	marshalQueryResult(res, m.MessageMarshaler())
	return m.Marshal(dst)
}

//	message QueryResult {
//	 repeated Record records = 1;
//	 bool more = 2;
//	}
func marshalQueryResult(res *QueryResult, mm *easyproto.MessageMarshaler) {
	for i := range res.Records {
		marshalRecord(&res.Records[i], mm.AppendMessage(1))
	}
	if res.More {
		mm.AppendBool(2, true)
	}
}

func UnmarshalQueryResult(src []byte, res *QueryResult) (err error) {
	var fc easyproto.FieldContext
	for len(src) > 0 {
		src, err = fc.NextField(src)
		if err != nil {
			return fmt.Errorf("cannot read next field")
		}
		switch fc.FieldNum {
		case 1:
			data, ok := fc.MessageData()
			if !ok {
				return fmt.Errorf("cannot read 'repeated Record records = 1;' field")
			}

			rec := Record{}
			if err := UnmarshalRecord(data, &rec); err != nil {
				return fmt.Errorf("cannot read 'repeated Record records = 1;' field: %w", err)
			}

			res.Records = append(res.Records, rec)
		case 2:
			more, ok := fc.Bool()
			if !ok {
				return fmt.Errorf("cannot read 'bool more = 2;' field")
			}
			res.More = more
		}
	}
	return nil
}

func MarshalSnapshot(s Snapshot, dst []byte) []byte {
	m := mp.Get()
	defer mp.Put(m)

	marshalSnapshot(s, m.MessageMarshaler())
	return m.Marshal(dst)
}

//	message Snapshot {
//	 string id = 1;
//	 string state = 2;
//	 map<string, string> annotations = 3;
//	}
func marshalSnapshot(s Snapshot, mm *easyproto.MessageMarshaler) {
	if s.ID != "" {
		mm.AppendString(1, string(s.ID))
	}
	if s.State != Waiting {
		mm.AppendString(2, s.State.String())
	}
	if len(s.Annotations) > 0 {
		marshalStringMap(s.Annotations, 3, mm)
	}
}

func UnmarshalSnapshot(src []byte, s *Snapshot) (err error) {
	var fc easyproto.FieldContext
	for len(src) > 0 {
		src, err = fc.NextField(src)
		if err != nil {
			return fmt.Errorf("cannot read next field")
		}
		switch fc.FieldNum {
		case 1:
			id, ok := fc.String()
			if !ok {
				return fmt.Errorf("cannot read 'string id = 1;' field")
			}
			s.ID = EnactableID(strings.Clone(id))
		case 2:
			state, ok := fc.String()
			if !ok {
				return fmt.Errorf("cannot read 'string state = 2;' field")
			}
			parsed, err := ParseState(state)
			if err != nil {
				return fmt.Errorf("cannot read 'string state = 2;' field: %w", err)
			}
			s.State = parsed
		case 3:
			data, ok := fc.MessageData()
			if !ok {
				return fmt.Errorf("cannot read 'map<string, string> annotations = 3;' field")
			}

			if s.Annotations == nil {
				s.Annotations = make(map[string]string)
			}

			if err := unmarshalStringMapItem(data, s.Annotations); err != nil {
				return fmt.Errorf("cannot read 'map<string, string> annotations = 3;' field: %w", err)
			}
		}
	}
	return nil
}

func MarshalInitRequest(input []byte, dst []byte) []byte {
	m := mp.Get()
	defer mp.Put(m)

	mm := m.MessageMarshaler()

	//	message InitRequest {
	//	 string input = 1; // document as JSON
	//	}
	if len(input) > 0 {
		mm.AppendString(1, string(input))
	}

	return m.Marshal(dst)
}

func UnmarshalInitRequest(src []byte) (input []byte, err error) {
	var fc easyproto.FieldContext
	for len(src) > 0 {
		src, err = fc.NextField(src)
		if err != nil {
			return nil, fmt.Errorf("cannot read next field")
		}
		switch fc.FieldNum {
		case 1:
			v, ok := fc.String()
			if !ok {
				return nil, fmt.Errorf("cannot read 'string input = 1;' field")
			}
			input = []byte(strings.Clone(v))
		}
	}
	return input, nil
}

// PlayResult is the wire shape of a completed play: the output
// document as JSON plus the snapshot taken after the transition.
type PlayResult struct {
	Output   []byte
	Snapshot Snapshot
}

func MarshalPlayResult(res *PlayResult, dst []byte) []byte {
	m := mp.Get()
	defer mp.Put(m)

	mm := m.MessageMarshaler()

	//	message PlayResult {
	//	 string output = 1; // document as JSON
	//	 Snapshot snapshot = 2;
	//	}
	if len(res.Output) > 0 {
		mm.AppendString(1, string(res.Output))
	}
	marshalSnapshot(res.Snapshot, mm.AppendMessage(2))

	return m.Marshal(dst)
}

func UnmarshalPlayResult(src []byte, res *PlayResult) (err error) {
	var fc easyproto.FieldContext
	for len(src) > 0 {
		src, err = fc.NextField(src)
		if err != nil {
			return fmt.Errorf("cannot read next field")
		}
		switch fc.FieldNum {
		case 1:
			v, ok := fc.String()
			if !ok {
				return fmt.Errorf("cannot read 'string output = 1;' field")
			}
			res.Output = []byte(strings.Clone(v))
		case 2:
			data, ok := fc.MessageData()
			if !ok {
				return fmt.Errorf("cannot read 'Snapshot snapshot = 2;' field")
			}

			if err := UnmarshalSnapshot(data, &res.Snapshot); err != nil {
				return fmt.Errorf("cannot read 'Snapshot snapshot = 2;' field: %w", err)
			}
		}
	}
	return nil
}

func marshalStringMap(m map[string]string, fieldNum uint32, mm *easyproto.MessageMarshaler) {
	for k, v := range m {
		itemMM := mm.AppendMessage(fieldNum)
		itemMM.AppendString(1, k)
		if v != "" {
			itemMM.AppendString(2, v)
		}
	}
}

func unmarshalStringMapItem(src []byte, m map[string]string) (err error) {
	var fc easyproto.FieldContext

	var key, value string
	for len(src) > 0 {
		src, err = fc.NextField(src)
		if err != nil {
			return fmt.Errorf("cannot read next field: %w", err)
		}
		switch fc.FieldNum {
		case 1:
			key0, ok := fc.String()
			if !ok {
				return fmt.Errorf("cannot read map key")
			}
			if key0 == "" {
				return fmt.Errorf("map key cannot be empty")
			}

			key = strings.Clone(key0)
		case 2:
			value0, ok := fc.String()
			if !ok {
				return fmt.Errorf("cannot read map value")
			}
			value = strings.Clone(value0)
		}
	}

	m[key] = value
	return nil
}

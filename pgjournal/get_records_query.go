package pgjournal

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/FedorSmirnov89/enact"
)

func (*queries) GetRecords(ctx context.Context, tx conntx, id enact.EnactableID, sinceRev int64, sinceTime time.Time, recs []enact.Record) ([]enact.Record, error) {
	return getRecordsWithFromStatement(ctx, tx, `FROM enact_records AS records`, id, sinceRev, sinceTime, recs)
}

func getRecordsWithFromStatement(
	ctx context.Context,
	tx conntx,
	fromStmt string,
	id enact.EnactableID,
	sinceRev int64,
	sinceTime time.Time,
	recs []enact.Record,
) ([]enact.Record, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("records slice len must be greater than 0")
	}

	var args []any
	var filterWhere string
	var where string
	if id != `` {
		args = append(args, string(id))
		filterWhere = "records.id = $" + strconv.Itoa(len(args))
	}
	if !sinceTime.IsZero() {
		if filterWhere != "" {
			filterWhere += " AND "
		}
		args = append(args, sinceTime.UnixMilli())
		filterWhere += "(records.record->>'at_unix_milli')::bigint >= $" + strconv.Itoa(len(args))
	}
	where = filterWhere

	if sinceRev >= 0 {
		if where != "" {
			where += " AND "
		}
		args = append(args, sinceRev)
		where += "records.rev > $" + strconv.Itoa(len(args))
	} else { // negative rev is treated as since latest
		if where != "" {
			where += " AND "
		}
		var subWhere string
		if filterWhere != "" {
			subWhere = " WHERE " + filterWhere
		}

		where += `records.rev >= (SELECT rev FROM enact_records AS records` + subWhere + ` ORDER BY "rev" DESC LIMIT 1)`
	}

	q := fmt.Sprintf(`
SELECT record, rev
FROM
    (
		SELECT records.xmin::text::bigint, records.record, records.rev
		%s
		WHERE `+where+`
		ORDER BY "rev" ASC LIMIT `+strconv.Itoa(len(recs))+`
	) AS subquery
	CROSS JOIN (
    	SELECT
        split_part(pg_current_snapshot()::text, ':', 1)::bigint AS xmin,
        split_part(pg_current_snapshot()::text, ':', 2)::bigint AS xmax
	) AS snapshot
WHERE subquery.xmin < snapshot.xmin OR subquery.xmin > snapshot.xmax
;
`, fromStmt)

	rows, err := tx.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var i int
	for rows.Next() && i < len(recs) {
		if err := rows.Scan(&recs[i], &recs[i].Rev); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		i++
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows: %w", rows.Err())
	}

	return recs[:i], nil
}

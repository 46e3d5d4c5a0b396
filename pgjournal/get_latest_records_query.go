package pgjournal

import (
	"context"
	"time"

	"github.com/FedorSmirnov89/enact"
)

func (*queries) GetLatestRecords(ctx context.Context, tx conntx, id enact.EnactableID, sinceRev int64, sinceTime time.Time, recs []enact.Record) ([]enact.Record, error) {
	fromStmt := `FROM enact_latest_records AS latest_records
	INNER JOIN enact_records AS records ON latest_records.id = records.id AND latest_records.rev = records.rev`

	return getRecordsWithFromStatement(ctx, tx, fromStmt, id, sinceRev, sinceTime, recs)
}

package pgjournal

import (
	"context"
	"fmt"

	"github.com/FedorSmirnov89/enact"
	"github.com/jackc/pgx/v5"
)

func (*queries) InsertRecord(ctx context.Context, tx conntx, rec *enact.Record) error {
	if rec.EnactableID == "" {
		return fmt.Errorf("enactable id is empty")
	}
	if rec.Rev != 0 {
		return fmt.Errorf("rev is not empty")
	}

	if err := tx.QueryRow(
		ctx,
		`
WITH latest_record AS (
  INSERT INTO enact_latest_records (rev, id)
  VALUES (nextval('enact_records_rev_seq'), @id)
  ON CONFLICT (id) DO UPDATE SET rev = EXCLUDED.rev
  RETURNING rev
)
INSERT INTO enact_records (rev, id, record)
SELECT rev, @id, @record
FROM latest_record
RETURNING rev
`,
		pgx.NamedArgs{
			"id":     rec.EnactableID,
			"record": *rec,
		},
	).Scan(&rec.Rev); err != nil {
		return err
	}

	return nil
}

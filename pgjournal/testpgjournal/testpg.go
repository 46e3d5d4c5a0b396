package testpgjournal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/FedorSmirnov89/enact"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/xo/dburl"
)

type conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type RecordRow struct {
	ID     enact.EnactableID
	Rev    int64
	Record enact.Record
}

func FindAllRecords(t *testing.T, conn conn) []RecordRow {
	rows, err := conn.Query(context.Background(), `SELECT rev, id, record FROM enact_records ORDER BY rev DESC`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	var scannedRows []RecordRow
	for rows.Next() {
		r := RecordRow{}
		require.NoError(t, rows.Scan(&r.Rev, &r.ID, &r.Record))
		scannedRows = append(scannedRows, r)
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}

	return scannedRows
}

type LatestRecordRow struct {
	ID  enact.EnactableID
	Rev int64
}

func FindAllLatestRecords(t *testing.T, conn conn) []LatestRecordRow {
	rows, err := conn.Query(context.Background(), `SELECT rev, id FROM enact_latest_records ORDER BY rev DESC`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	var scannedRows []LatestRecordRow
	for rows.Next() {
		r := LatestRecordRow{}
		require.NoError(t, rows.Scan(&r.Rev, &r.ID))
		scannedRows = append(scannedRows, r)
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}

	return scannedRows
}

func OpenFreshDB(t *testing.T, dsn0, dbName string) *pgxpool.Pool {
	dsn, err := dburl.Parse(dsn0)
	require.NoError(t, err)

	conn0, err := pgxpool.New(context.Background(), dsn.String())
	require.NoError(t, err)
	defer conn0.Close()

	if dbName == `` {
		dbName = fmt.Sprintf(`enact_testdb_%d`, time.Now().UnixNano())
	}

	_, err = conn0.Exec(context.Background(), fmt.Sprintf(`CREATE DATABASE %s`, dbName))
	require.NoError(t, err)

	dsn.Path = dbName
	conn, err := pgxpool.New(context.Background(), dsn.String())
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

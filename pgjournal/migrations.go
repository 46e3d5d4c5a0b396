package pgjournal

type Migration struct {
	Desc string
	SQL  string
}

var Migrations = []Migration{
	{
		Desc: "create enact_latest_records table",
		SQL: `
	CREATE TABLE IF NOT EXISTS enact_latest_records (
	   id TEXT NOT NULL,
	   rev bigint  NOT NULL,
	   PRIMARY KEY (id)
	);`,
	},
	{
		Desc: "create enact_records table",
		SQL: `
CREATE SEQUENCE IF NOT EXISTS enact_records_rev_seq;

CREATE TABLE IF NOT EXISTS enact_records (
	rev bigint  NOT NULL,
	id TEXT  NOT NULL,
	record JSONB  NOT NULL,
	PRIMARY KEY (rev, id)
);

CREATE INDEX IF NOT EXISTS enact_records_id_idx ON enact_records(id);
`,
	},
}

package badgerjournal_test

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/FedorSmirnov89/enact/badgerjournal"
	"github.com/FedorSmirnov89/enact/testcases"
	"github.com/dgraph-io/badger/v4"
)

func TestSuite(t *testing.T) {
	s := testcases.Get(func(t *testing.T) enact.Journal {
		db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(2))
		if err != nil {
			t.Fatalf("failed to open badger db: %v", err)
		}
		t.Cleanup(func() {
			if err := db.Close(); err != nil {
				t.Fatalf("failed to close badger db: %v", err)
			}
		})

		j, err := badgerjournal.New(db)
		if err != nil {
			t.Fatalf("failed to create journal: %v", err)
		}

		return j
	})

	s.Test(t)
}

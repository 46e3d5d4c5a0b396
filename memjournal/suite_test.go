package memjournal_test

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/FedorSmirnov89/enact/memjournal"
	"github.com/FedorSmirnov89/enact/testcases"
)

func TestSuite(t *testing.T) {
	s := testcases.Get(func(t *testing.T) enact.Journal {
		return memjournal.New()
	})

	s.Test(t)
}

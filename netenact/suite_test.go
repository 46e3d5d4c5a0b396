package netenact

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FedorSmirnov89/enact"
	"github.com/FedorSmirnov89/enact/memjournal"
	"github.com/FedorSmirnov89/enact/testcases"
)

func TestSuite(t *testing.T) {
	s := testcases.Get(func(t *testing.T) enact.Journal {
		srv := startSrv(t)

		return NewJournal(srv.URL)
	})

	s.Test(t)
}

func startSrv(t *testing.T) *httptest.Server {
	j := memjournal.New()

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path == `/health` {
			rw.WriteHeader(http.StatusOK)
			return
		}
		if HandleAppend(rw, r, j) {
			return
		}
		if HandleGetRecords(rw, r, j) {
			return
		}

		writeNotFoundError(rw, fmt.Sprintf("path %s not found", r.URL.Path))
	}))

	t.Cleanup(srv.Close)

	timeoutT := time.NewTimer(time.Second)
	defer timeoutT.Stop()
	readyT := time.NewTicker(time.Millisecond * 50)
	defer readyT.Stop()

loop:
	for {
		select {
		case <-timeoutT.C:
			t.Fatalf("app not ready within %s", time.Second)
		case <-readyT.C:

			resp, err := http.Get(srv.URL + `/health`)
			if err != nil {
				continue loop
			}
			resp.Body.Close()

			return srv
		}
	}
}

package netenact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/FedorSmirnov89/enact"
)

var _ enact.Journal = (*Journal)(nil)

// Journal is a remote enact.Journal talking to netenact handlers over
// HTTP.
type Journal struct {
	httpHost string

	c *http.Client
}

func NewJournal(httpHost string) *Journal {
	return &Journal{
		httpHost: httpHost,

		c: &http.Client{},
	}
}

func (j *Journal) Append(rec *enact.Record) error {
	b, err := doPost(context.Background(), j.c, j.httpHost, "/enact.v1.Journal/Append", enact.MarshalRecord(rec, nil))
	if err != nil {
		return err
	}

	resRec := &enact.Record{}
	if err := enact.UnmarshalRecord(b, resRec); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	resRec.CopyTo(rec)
	return nil
}

func (j *Journal) Records(q enact.Query) (*enact.QueryResult, error) {
	b, err := doPost(context.Background(), j.c, j.httpHost, "/enact.v1.Journal/GetRecords", enact.MarshalQuery(q, nil))
	if err != nil {
		return nil, err
	}

	res := &enact.QueryResult{}
	if err := enact.UnmarshalQueryResult(b, res); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return res, nil
}

func (j *Journal) Shutdown(_ context.Context) error {
	j.c.CloseIdleConnections()
	return nil
}

func doPost(ctx context.Context, c *http.Client, httpHost, path string, b []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, `POST`, strings.TrimRight(httpHost, `/`)+path, bytes.NewBuffer(b))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	resB, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if http.StatusOK != resp.StatusCode {
		code, message, err := unmarshalError(resB)
		if err != nil {
			return nil, fmt.Errorf("response status code: %d; unmarshal error: %s", resp.StatusCode, err)
		}

		switch {
		case code == "not_found" && strings.Contains(message, enact.ErrNotFound.Error()):
			return nil, enact.ErrNotFound
		case code == "stopped":
			_, reason, _ := strings.Cut(message, "stopped: ")
			return nil, enact.ErrStopped{Reason: reason}
		}

		return nil, fmt.Errorf("%s: %s", code, message)
	}

	return resB, nil
}

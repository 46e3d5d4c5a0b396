package netenact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/FedorSmirnov89/enact"
)

// Client drives the enactable application behind netenact control
// handlers: remote Init, Play, Pause and state reads.
type Client struct {
	httpHost string

	c *http.Client
}

func NewClient(httpHost string) *Client {
	return &Client{
		httpHost: httpHost,

		c: &http.Client{},
	}
}

func (c *Client) Init(input enact.Document) (enact.Snapshot, error) {
	var inputB []byte
	if input != nil {
		b, err := json.Marshal(input)
		if err != nil {
			return enact.Snapshot{}, fmt.Errorf("marshal input document: %w", err)
		}
		inputB = b
	}

	b, err := doPost(context.Background(), c.c, c.httpHost, "/enact.v1.Control/Init", enact.MarshalInitRequest(inputB, nil))
	if err != nil {
		return enact.Snapshot{}, err
	}

	s := enact.Snapshot{}
	if err := enact.UnmarshalSnapshot(b, &s); err != nil {
		return enact.Snapshot{}, fmt.Errorf("unmarshal response: %w", err)
	}

	return s, nil
}

// Play blocks until the remote play finishes, is stopped or fails. A
// stopped play comes back as enact.ErrStopped with the recorded
// reason.
func (c *Client) Play(ctx context.Context) (enact.Document, enact.Snapshot, error) {
	b, err := doPost(ctx, c.c, c.httpHost, "/enact.v1.Control/Play", nil)
	if err != nil {
		return nil, enact.Snapshot{}, err
	}

	res := &enact.PlayResult{}
	if err := enact.UnmarshalPlayResult(b, res); err != nil {
		return nil, enact.Snapshot{}, fmt.Errorf("unmarshal response: %w", err)
	}

	var output enact.Document
	if len(res.Output) > 0 {
		if err := json.Unmarshal(res.Output, &output); err != nil {
			return nil, enact.Snapshot{}, fmt.Errorf("unmarshal output document: %w", err)
		}
	}

	return output, res.Snapshot, nil
}

func (c *Client) Pause() (enact.Snapshot, error) {
	b, err := doPost(context.Background(), c.c, c.httpHost, "/enact.v1.Control/Pause", nil)
	if err != nil {
		return enact.Snapshot{}, err
	}

	s := enact.Snapshot{}
	if err := enact.UnmarshalSnapshot(b, &s); err != nil {
		return enact.Snapshot{}, fmt.Errorf("unmarshal response: %w", err)
	}

	return s, nil
}

func (c *Client) GetState() (enact.Snapshot, error) {
	b, err := doPost(context.Background(), c.c, c.httpHost, "/enact.v1.Control/GetState", nil)
	if err != nil {
		return enact.Snapshot{}, err
	}

	s := enact.Snapshot{}
	if err := enact.UnmarshalSnapshot(b, &s); err != nil {
		return enact.Snapshot{}, fmt.Errorf("unmarshal response: %w", err)
	}

	return s, nil
}

func (c *Client) Shutdown(_ context.Context) error {
	c.c.CloseIdleConnections()
	return nil
}

package rowstore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"slotboard/models"
)

// RestStore talks to the spreadsheet proxy over HTTP. The proxy exposes the
// raw row primitives:
//
//	GET    /tables/{table}            -> {"rows": [[...], ...]}
//	POST   /tables/{table}/rows       <- {"row": [...]}
//	PUT    /tables/{table}/rows/{i}   <- {"row": [...]}
//	DELETE /tables/{table}/rows/{i}
//
// A 429 from the proxy (the upstream spreadsheet API throttling) is surfaced
// as a rate-limited PersistenceError and never retried here.
type RestStore struct {
	client *resty.Client
}

func NewRestStore(baseURL, apiKey string) *RestStore {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetHeader("X-API-Key", apiKey)
	}
	return &RestStore{client: client}
}

type readTableResponse struct {
	Rows [][]string `json:"rows"`
}

type rowPayload struct {
	Row []string `json:"row"`
}

func (s *RestStore) ReadTable(ctx context.Context, table Table) ([][]string, error) {
	var out readTableResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/tables/%s", table))
	if err := s.check("read", table, resp, err); err != nil {
		return nil, err
	}
	return out.Rows, nil
}

func (s *RestStore) AppendRow(ctx context.Context, table Table, row []string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(rowPayload{Row: row}).
		Post(fmt.Sprintf("/tables/%s/rows", table))
	return s.check("append", table, resp, err)
}

func (s *RestStore) UpdateRow(ctx context.Context, table Table, index int, row []string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(rowPayload{Row: row}).
		Put(fmt.Sprintf("/tables/%s/rows/%d", table, index))
	return s.check("update", table, resp, err)
}

func (s *RestStore) DeleteRow(ctx context.Context, table Table, index int) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/tables/%s/rows/%d", table, index))
	return s.check("delete", table, resp, err)
}

func (s *RestStore) check(op string, table Table, resp *resty.Response, err error) error {
	if err != nil {
		return &models.PersistenceError{Op: op, Table: string(table), Err: err}
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return &models.PersistenceError{
			Op: op, Table: string(table), RateLimited: true,
			Err: fmt.Errorf("store rate limit: %s", resp.Status()),
		}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return &models.NotFoundError{Kind: "row", Key: string(table)}
	}
	if resp.IsError() {
		return &models.PersistenceError{
			Op: op, Table: string(table),
			Err: fmt.Errorf("store responded %s: %s", resp.Status(), resp.String()),
		}
	}
	return nil
}

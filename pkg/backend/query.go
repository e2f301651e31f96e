package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Query accumulates the filter/order/limit parameters of a records read.
// Execution is a single round trip; the builder issues no requests itself.
type Query struct {
	client     *Client
	collection string
	selects    string
	filters    []filter
	order      string
	limit      int
	single     bool
}

type filter struct {
	column string
	value  string
}

// Select overrides the returned columns; joins use the embedded-resource
// syntax, e.g. "*,product:products(*)".
func (q *Query) Select(columns string) *Query {
	if columns != "" {
		q.selects = columns
	}
	return q
}

// Eq adds an equality predicate on the column.
func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, filter{column: column, value: fmt.Sprintf("%v", value)})
	return q
}

// OrderDesc orders results by the column, newest first.
func (q *Query) OrderDesc(column string) *Query {
	q.order = column + ".desc"
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Single requests exactly one row; zero rows surfaces as a not-found error.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

// Fetch executes the query with the caller's token and decodes the response
// into dest.
func (q *Query) Fetch(ctx context.Context, token string, dest any) error {
	params := url.Values{}
	params.Set("select", q.selects)
	for _, f := range q.filters {
		params.Set(f.column, "eq."+f.value)
	}
	if q.order != "" {
		params.Set("order", q.order)
	}
	if q.limit > 0 {
		params.Set("limit", strconv.Itoa(q.limit))
	}

	endpoint := q.client.baseURL + recordsPath + "/" + q.collection + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	q.client.setHeaders(req, token)
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	resp, err := q.client.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", q.collection, err)
	}
	defer drain(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp, endpoint)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding %s response: %w", q.collection, err)
	}
	return nil
}

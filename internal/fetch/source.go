package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jask/orderdesk/internal/orders"
)

// DefaultURL is the orders feed the table was built against.
const DefaultURL = "https://gist.githubusercontent.com/ryanjn/07512cb1c008a5ec754aea6cbbf4afab/raw/eabb4d324270cf0d3d17a79ffb00ff3cfaf9acc3/orders.json"

// Source produces the raw order list.
type Source interface {
	FetchOrders(ctx context.Context) ([]orders.RawOrder, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// HTTPSource reads orders with a single unauthenticated GET.
type HTTPSource struct {
	client *http.Client
	url    string
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{client: &http.Client{Timeout: timeout}, url: url}
}

func (s *HTTPSource) FetchOrders(ctx context.Context) ([]orders.RawOrder, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, URL: s.url}
	}
	return orders.DecodeRaw(resp.Body)
}

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jask/orderdesk/internal/orders"
	"github.com/jask/orderdesk/internal/sample"
	"github.com/jask/orderdesk/internal/store"
)

const body = `[{"customer":{"first_name":"Dakota","last_name":"Finley","address":{"line1":"555 Broadway","line2":"","city":"New York","state":"NY","zip":"12345"}},"order_details":{"date":"2021-03-01","value":117.12},"order_number":100005,"shipping_details":{"date":"2021-03-03"},"status":"shipped"}]`

func serve(t *testing.T, h http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

type recorder struct {
	events []store.Event
}

func (r *recorder) Dispatch(ev store.Event) { r.events = append(r.events, ev) }

func TestHTTPSourceDecodesOrders(t *testing.T) {
	seen := make(chan string, 1)
	srv, hits := serve(t, func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Method + " " + r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	raw, err := NewHTTPSource(srv.URL, time.Second).FetchOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, raw, 1)
	require.Equal(t, int64(100005), raw[0].OrderNumber)
	require.Equal(t, "117.12", raw[0].OrderDetails.Value.String())
	require.EqualValues(t, 1, atomic.LoadInt32(hits))
	require.Equal(t, "GET /", <-seen)
}

func TestHTTPSourceNon2xx(t *testing.T) {
	srv, _ := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	})

	_, err := NewHTTPSource(srv.URL, time.Second).FetchOrders(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusServiceUnavailable, se.Code)
	require.Contains(t, err.Error(), "503")
}

func TestHTTPSourceMalformedBody(t *testing.T) {
	srv, _ := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	})

	_, err := NewHTTPSource(srv.URL, time.Second).FetchOrders(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode orders")
}

func TestRunMalformedBodiesFail(t *testing.T) {
	for _, b := range []string{`null`, `[] trailing garbage`, `[]{"x":1}`} {
		t.Run(b, func(t *testing.T) {
			srv, _ := serve(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(b))
			})
			st := store.New(zaptest.NewLogger(t))

			New(NewHTTPSource(srv.URL, time.Second), nil).Run(context.Background(), st)

			s := st.State()
			require.False(t, s.Loading)
			require.Empty(t, s.Success)
			require.Contains(t, s.Error, "decode orders")
			require.Empty(t, s.Orders)
		})
	}
}

func TestHTTPSourceTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(url, time.Second).FetchOrders(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "fetch orders")
}

func TestRunDispatchesRequestedThenSucceeded(t *testing.T) {
	srv, _ := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
	o := New(NewHTTPSource(srv.URL, time.Second), zaptest.NewLogger(t))
	rec := &recorder{}

	require.True(t, o.Run(context.Background(), rec))
	require.Len(t, rec.events, 2)
	require.IsType(t, store.Requested{}, rec.events[0])
	ok, isOK := rec.events[1].(store.Succeeded)
	require.True(t, isOK)
	require.Len(t, ok.Orders, 1)
}

func TestRunIssuesExactlyOneRequest(t *testing.T) {
	srv, hits := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
	o := New(NewHTTPSource(srv.URL, time.Second), nil)
	st := store.New(zaptest.NewLogger(t))

	require.True(t, o.Run(context.Background(), st))
	require.False(t, o.Run(context.Background(), st))
	_, again := o.Begin()
	require.False(t, again)
	require.EqualValues(t, 1, atomic.LoadInt32(hits))
	require.Len(t, st.State().Orders, 1)
}

func TestRunFailureLeavesStoreEmpty(t *testing.T) {
	srv, hits := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	o := New(NewHTTPSource(srv.URL, time.Second), zaptest.NewLogger(t))
	st := store.New(zaptest.NewLogger(t))

	o.Run(context.Background(), st)

	s := st.State()
	require.Empty(t, s.Orders)
	require.False(t, s.Loading)
	require.Contains(t, s.Error, "500")
	require.EqualValues(t, 1, atomic.LoadInt32(hits), "no retry")
}

type stubSource struct {
	raw []orders.RawOrder
	err error
}

func (s stubSource) FetchOrders(context.Context) ([]orders.RawOrder, error) { return s.raw, s.err }

func TestResolveWrapsSourceError(t *testing.T) {
	boom := errors.New("boom")
	o := New(stubSource{err: boom}, nil)
	ev := o.Resolve(context.Background())
	failed, ok := ev.(store.Failed)
	require.True(t, ok)
	require.ErrorIs(t, failed.Err, boom)
}

func TestDispatchFunc(t *testing.T) {
	var got []store.Event
	o := New(stubSource{}, nil)
	o.Run(context.Background(), DispatchFunc(func(ev store.Event) { got = append(got, ev) }))
	require.Len(t, got, 2)
	require.IsType(t, store.Succeeded{}, got[1])
}

func TestRunLargeFeed(t *testing.T) {
	feed, err := sample.Feed(42, 250)
	require.NoError(t, err)
	srv, hits := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(feed)
	})
	st := store.New(zaptest.NewLogger(t))

	New(NewHTTPSource(srv.URL, time.Second), nil).Run(context.Background(), st)

	s := st.State()
	require.Len(t, s.Orders, 250)
	require.Equal(t, "loaded 250 orders", s.Success)
	require.Equal(t, int64(100250), s.Orders[249].OrderNumber)
	require.EqualValues(t, 1, atomic.LoadInt32(hits))
}

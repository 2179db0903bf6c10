package runner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRecordsResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders":
			w.Write([]byte(`{"total":2}`))
		case "/users":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
		}
	}))
	defer srv.Close()

	r := New(5*time.Second, 0, nil)
	responses, err := r.Run(context.Background(), []Request{
		{Name: "get orders", URL: srv.URL + "/orders"},
		{Name: "get users", URL: srv.URL + "/users"},
	})
	require.NoError(t, err)
	require.Len(t, responses, 2)

	assert.Equal(t, "get orders", responses[0].Name)
	assert.Equal(t, http.StatusOK, responses[0].StatusCode)
	assert.JSONEq(t, `{"total":2}`, string(responses[0].Body))

	// Error statuses are recorded, not retried and not dropped.
	assert.Equal(t, http.StatusNotFound, responses[1].StatusCode)
	assert.JSONEq(t, `{"error":"not found"}`, string(responses[1].Body))
	assert.NoError(t, responses[1].Err)
}

func TestRunSendsMethodHeadersAndBody(t *testing.T) {
	var gotMethod, gotHeader, gotBody, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Api-Key")
		gotAgent = r.Header.Get("User-Agent")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	r := New(5*time.Second, 0, nil)
	r.UserAgent = "apiveritas/test"
	_, err := r.Run(context.Background(), []Request{{
		Name:    "create order",
		Method:  http.MethodPost,
		URL:     srv.URL + "/orders",
		Headers: map[string]string{"X-Api-Key": "secret"},
		Body:    `{"sku":"A1"}`,
	}})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "secret", gotHeader)
	assert.Equal(t, "apiveritas/test", gotAgent)
	assert.JSONEq(t, `{"sku":"A1"}`, gotBody)
}

func TestRunRetriesTransportFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			// Slam the connection shut to force a transport error.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	r := New(5*time.Second, 3, nil)
	responses, err := r.Run(context.Background(), []Request{{Name: "flaky", URL: srv.URL}})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.NoError(t, responses[0].Err)
	assert.JSONEq(t, `{"ok":true}`, string(responses[0].Body))
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestRunFailureDoesNotAbortRemaining(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	r := New(2*time.Second, 0, nil)
	responses, err := r.Run(context.Background(), []Request{
		{Name: "dead", URL: "http://127.0.0.1:1"},
		{Name: "alive", URL: srv.URL},
	})
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Error(t, responses[0].Err)
	assert.NoError(t, responses[1].Err)
}

func TestRunMalformedURLNotRetried(t *testing.T) {
	r := New(2*time.Second, 5, nil)
	start := time.Now()
	responses, err := r.Run(context.Background(), []Request{{Name: "bad", URL: "http://[broken"}})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Error(t, responses[0].Err)
	assert.Less(t, time.Since(start), 2*time.Second, "permanent errors must not be retried")
}

func TestRunHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(2*time.Second, 0, nil)
	responses, err := r.Run(ctx, []Request{{Name: "never", URL: "http://127.0.0.1:1"}})
	assert.Error(t, err)
	assert.Empty(t, responses)
}

func TestNewDefaults(t *testing.T) {
	r := New(0, 0, nil)
	assert.Equal(t, 30*time.Second, r.Timeout)
}

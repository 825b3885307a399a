package weather

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/weather/internal/log"
)

const testKey = "test-api-key-12345"

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(testKey, srv.URL, 200*time.Millisecond)
	require.NoError(t, err)
	return c, srv
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	_, err := NewClient("", "http://api.test", 0)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	c, err := NewClient(testKey, "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)

	c, err = NewClient(testKey, "http://api.test/v1/", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "http://api.test/v1", c.baseURL)
}

func TestFetch_Success(t *testing.T) {
	t.Parallel()

	fixture, err := os.ReadFile("testdata/pune.json")
	require.NoError(t, err)

	var gotReq *http.Request
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		w.Write(fixture)
	})

	doc, err := c.Fetch(context.Background(), "pune")
	require.NoError(t, err)

	assert.Equal(t, "/forecast.json", gotReq.URL.Path)
	q := gotReq.URL.Query()
	assert.Equal(t, testKey, q.Get("key"))
	assert.Equal(t, "pune", q.Get("q"))
	assert.Equal(t, "5", q.Get("days"))
	assert.Equal(t, "no", q.Get("aqi"))
	assert.Equal(t, "no", q.Get("alerts"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
	assert.NotEmpty(t, gotReq.Header.Get("X-Request-ID"))

	assert.Equal(t, "Pune", doc.Location.Name)
	assert.Len(t, doc.Forecast.Days, 5)
	assert.True(t, doc.FetchedOn.IsZero(), "fetcher must leave FetchedOn unset")
}

func TestFetch_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    Kind
		status  int
		message string
	}{
		{
			name: "provider error in 2xx body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
			},
			kind:    KindProvider,
			status:  http.StatusOK,
			message: "No matching location found.",
		},
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
			},
			kind:    KindHTTP,
			status:  http.StatusBadRequest,
			message: "No matching location found.",
		},
		{
			name: "non-2xx without body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			kind:   KindHTTP,
			status: http.StatusInternalServerError,
		},
		{
			name: "missing fields",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"location":{"name":"Pune"}}`))
			},
			kind:    KindSchema,
			status:  http.StatusOK,
			message: "location.region",
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{malformed json`))
			},
			kind:   KindSchema,
			status: http.StatusOK,
		},
		{
			name: "redirect without location",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusFound)
			},
			kind:   KindRedirect,
			status: http.StatusFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestClient(t, tt.handler)

			doc, err := c.Fetch(context.Background(), "nowhere")
			assert.Nil(t, doc)

			var fe *FetchError
			require.True(t, errors.As(err, &fe), "expected *FetchError, got %v", err)
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.status, fe.Status)
			assert.Equal(t, tt.message, fe.Message)
		})
	}
}

func TestFetch_RedirectLoop(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Redirect(w, r, r.URL.String(), http.StatusFound)
	})

	_, err := c.Fetch(context.Background(), "loop")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindRedirect, fe.Kind)
	assert.ErrorIs(t, err, ErrTooManyRedirects)
	assert.EqualValues(t, MaxRedirects, hits.Load())
}

func TestFetch_Timeout(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	_, err := c.Fetch(context.Background(), "slow")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindTimeout, fe.Kind)
}

func TestFetch_Transport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(testKey, url, time.Second)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "pune")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindTransport, fe.Kind)
	assert.NotNil(t, fe.Err)
}

func TestFetch_VerboseRedactsKey(t *testing.T) {
	t.Parallel()

	fixture, err := os.ReadFile("testdata/pune.json")
	require.NoError(t, err)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture)
	})

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))

	_, err = c.Fetch(ctx, "pune")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "$ GET ")
	assert.Contains(t, out, "key=REDACTED")
	assert.False(t, strings.Contains(out, testKey), "API key leaked into diagnostics: %q", out)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	want := map[Kind]string{
		KindTransport: "transport",
		KindTimeout:   "timeout",
		KindRedirect:  "redirect",
		KindHTTP:      "http",
		KindProvider:  "provider",
		KindSchema:    "schema",
	}
	for k, s := range want {
		assert.Equal(t, s, k.String())
	}
}

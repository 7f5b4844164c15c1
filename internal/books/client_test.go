package books

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duneResponse = `{
  "totalItems": 2,
  "items": [
    {"id": "B1nRnQEACAAJ", "volumeInfo": {
      "title": "Dune",
      "authors": ["Frank Herbert"],
      "description": "Set on the desert planet Arrakis. A stunning blend of adventure.",
      "imageLinks": {"smallThumbnail": "http://img/small", "thumbnail": "http://img/thumb"},
      "infoLink": "http://books.google.com/books?id=B1nRnQEACAAJ"
    }},
    {"id": "x", "volumeInfo": {"title": "Dune Messiah"}}
  ]
}`

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return NewClient("secret", WithBaseURL(srv.URL))
}

func TestSearchTitle(t *testing.T) {
	var got url.Values
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(duneResponse))
	})

	books, err := c.SearchTitle(context.Background(), "Dune")
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Dune", got.Get("q"))
	assert.Equal(t, "secret", got.Get("key"))
	assert.Empty(t, got.Get("maxResults"))

	b := books[0]
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Frank Herbert", b.AuthorLine())
	assert.Equal(t, "http://img/thumb", b.Thumbnail)
	assert.Equal(t, "http://books.google.com/books?id=B1nRnQEACAAJ", b.InfoLink)
	assert.Equal(t, "Set on the desert planet Arrakis.", b.Plot())

	assert.Equal(t, UnknownAuthor, books[1].AuthorLine())
	assert.Equal(t, NoDescription, books[1].Summary())
	assert.Equal(t, NoPlot, books[1].Plot())
	assert.Empty(t, books[1].Thumbnail)
}

func TestSearchAuthor(t *testing.T) {
	var got url.Values
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"totalItems": 0}`))
	})

	books, err := c.SearchAuthor(context.Background(), "Ursula K. Le Guin", 10)
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Equal(t, "inauthor:Ursula K. Le Guin", got.Get("q"))
	assert.Equal(t, "10", got.Get("maxResults"))
}

func TestSearchStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "API key not valid"}}`))
	})

	_, err := c.SearchTitle(context.Background(), "Dune")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Contains(t, se.Body, "API key not valid")
}

func TestSearchDecodeError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := c.SearchTitle(context.Background(), "Dune")
	assert.ErrorContains(t, err, "decode books response")
}

func TestSearchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient("", WithBaseURL(srv.URL), WithRateLimit(100))
	_, err := c.SearchTitle(context.Background(), "Dune")
	assert.ErrorContains(t, err, "books request")
}

func TestSearchURLOmitsEmptyKey(t *testing.T) {
	c := NewClient("")
	u, err := url.Parse(c.searchURL(Query{Terms: "a b"}))
	require.NoError(t, err)
	assert.Equal(t, "www.googleapis.com", u.Host)
	assert.False(t, u.Query().Has("key"))
	assert.Equal(t, "a b", u.Query().Get("q"))
}

func TestPlot(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"", NoPlot},
		{"One. Two. Three.", "One."},
		{"No period here", "No period here."},
		{"Ends with one.", "Ends with one."},
	}
	for _, tt := range tests {
		if got := (Book{Description: tt.desc}).Plot(); got != tt.want {
			t.Errorf("Plot(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestAuthorLineJoins(t *testing.T) {
	b := Book{Authors: []string{"Terry Pratchett", "Neil Gaiman"}}
	assert.Equal(t, "Terry Pratchett, Neil Gaiman", b.AuthorLine())
	assert.Equal(t, UntitledBook, b.DisplayTitle())
}

func TestRateLimitPacesRequests(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"totalItems": 0}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("k", WithBaseURL(srv.URL), WithRateLimit(20))
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.SearchTitle(context.Background(), "Dune")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	assert.EqualValues(t, 3, hits.Load())
}

func TestRateLimitCancelledWait(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"totalItems": 0}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("k", WithBaseURL(srv.URL), WithRateLimit(0.1))
	_, err := c.SearchTitle(context.Background(), "Dune")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.SearchTitle(ctx, "Dune Messiah")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorContains(t, err, "books rate limit")
	assert.EqualValues(t, 1, hits.Load())
}

func TestTimeoutKeepsCustomClient(t *testing.T) {
	tr := &http.Transport{}
	hc := &http.Client{Transport: tr}

	c := NewClient("k", WithHTTPClient(hc), WithTimeout(5*time.Second))
	assert.Same(t, tr, c.httpClient.Transport)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Zero(t, hc.Timeout)

	c = NewClient("k", WithTimeout(5*time.Second), WithHTTPClient(hc))
	assert.Same(t, tr, c.httpClient.Transport)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Zero(t, hc.Timeout)
}

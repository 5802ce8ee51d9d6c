package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

const okBody = `{
  "status": "OK",
  "results": [{
    "formatted_address": "1 Monument Cir, Indianapolis, IN 46204, USA",
    "geometry": {"location": {"lat": 39.7684, "lng": -86.1581}},
    "address_components": [
      {"long_name": "1", "short_name": "1", "types": ["street_number"]},
      {"long_name": "Indianapolis", "short_name": "Indianapolis", "types": ["locality", "political"]},
      {"long_name": "Indiana", "short_name": "IN", "types": ["administrative_area_level_1", "political"]},
      {"long_name": "46204", "short_name": "46204", "types": ["postal_code"]}
    ]
  }]
}`

func newServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("address"))
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &queries
}

func TestSearch_Success(t *testing.T) {
	srv, queries := newServer(t, http.StatusOK, okBody)
	c := New(srv.URL, "test-key", 0)

	res, err := c.Search(context.Background(), "monument circle")
	require.NoError(t, err)

	assert.Equal(t, []string{"monument circle"}, *queries)
	assert.Equal(t, "1 Monument Cir, Indianapolis, IN 46204, USA", res.FormattedAddress)
	assert.Equal(t, domain.Coordinate{Lat: 39.7684, Lon: -86.1581}, res.Coordinate)
	assert.Equal(t, "Indianapolis", res.Locality)
	assert.Equal(t, "IN", res.Region)
	assert.Equal(t, "46204", res.PostalCode)
}

func TestSearch_ZeroResults(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"status":"ZERO_RESULTS","results":[]}`)
	c := New(srv.URL, "test-key", 0)

	_, err := c.Search(context.Background(), "nowhere at all")
	assert.True(t, errors.Is(err, domain.ErrNoResult), "got %v", err)
}

func TestSearch_ProviderDenied(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"status":"REQUEST_DENIED","results":[]}`)
	c := New(srv.URL, "test-key", 0)

	_, err := c.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable), "got %v", err)
}

func TestSearch_ServerError(t *testing.T) {
	srv, queries := newServer(t, http.StatusInternalServerError, `oops`)
	c := New(srv.URL, "test-key", 0)

	_, err := c.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable), "got %v", err)
	assert.Len(t, *queries, 1)
}

func TestSearch_BadRequest(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `{}`)
	c := New(srv.URL, "test-key", 0)

	_, err := c.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable), "got %v", err)
}

func TestSearch_MalformedBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `not json`)
	c := New(srv.URL, "test-key", 0)

	_, err := c.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable), "got %v", err)
}

func TestSearch_ResultWithoutUsableCoordinate(t *testing.T) {
	body := `{"status":"OK","results":[{"formatted_address":"?","geometry":{"location":{"lat":200,"lng":0}}}]}`
	srv, _ := newServer(t, http.StatusOK, body)
	c := New(srv.URL, "test-key", 0)

	_, err := c.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, domain.ErrNoResult), "got %v", err)
}

func TestSearch_Unreachable(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, okBody)
	url := srv.URL
	srv.Close()

	c := New(url, "test-key", 0)
	_, err := c.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable), "got %v", err)
}

func TestReady(t *testing.T) {
	assert.True(t, New("https://example.test/geocode", "k", 0).Ready())
	assert.False(t, New("https://example.test/geocode", "", 0).Ready())
	assert.False(t, New("", "k", 0).Ready())
}

// Package geocoder resolves free-text address queries to a coordinate using a
// Google Geocoding compatible HTTP API.
package geocoder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/samber/lo"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type Client struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
}

func New(baseURL, apiKey string, retryMax int) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = retryMax
	hc.RetryWaitMin = 200 * time.Millisecond
	hc.RetryWaitMax = 2 * time.Second
	hc.HTTPClient.Timeout = 10 * time.Second
	hc.Logger = nil

	return &Client{http: hc, baseURL: baseURL, apiKey: apiKey}
}

// Ready reports whether the client has what it needs to issue lookups.
func (c *Client) Ready() bool {
	return c.baseURL != "" && c.apiKey != ""
}

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress  string             `json:"formatted_address"`
	AddressComponents []addressComponent `json:"address_components"`
	Geometry          struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Search returns the best match for query, ErrNoResult when the provider
// found nothing, or ErrProviderUnavailable for any transport or provider
// failure.
func (c *Client) Search(ctx context.Context, query string) (*domain.AddressResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, unavailable(err, "parse base url")
	}
	q := u.Query()
	q.Set("address", query)
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, unavailable(err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, unavailable(err, "geocode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailable(errors.Newf("status %d", resp.StatusCode), "geocode request")
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, unavailable(err, "decode response")
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, errors.Wrapf(domain.ErrNoResult, "query %q", query)
	default:
		return nil, unavailable(errors.Newf("provider status %s", body.Status), "geocode request")
	}

	if len(body.Results) == 0 {
		return nil, errors.Wrapf(domain.ErrNoResult, "query %q", query)
	}
	return toAddressResult(body.Results[0])
}

func toAddressResult(r geocodeResult) (*domain.AddressResult, error) {
	coord := domain.Coordinate{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng}
	if !coord.Valid() {
		return nil, errors.Wrap(domain.ErrNoResult, "result has no usable coordinate")
	}

	return &domain.AddressResult{
		FormattedAddress: r.FormattedAddress,
		Coordinate:       coord,
		Locality:         component(r.AddressComponents, "locality", false),
		Region:           component(r.AddressComponents, "administrative_area_level_1", true),
		PostalCode:       component(r.AddressComponents, "postal_code", false),
	}, nil
}

func component(parts []addressComponent, kind string, short bool) string {
	p, ok := lo.Find(parts, func(p addressComponent) bool {
		return lo.Contains(p.Types, kind)
	})
	if !ok {
		return ""
	}
	if short {
		return p.ShortName
	}
	return p.LongName
}

func unavailable(err error, op string) error {
	return errors.Mark(errors.Wrap(err, op), domain.ErrProviderUnavailable)
}

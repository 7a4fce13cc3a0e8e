package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"

	"route-optimizer-service/internal/domain"
)

// NominatimGeocoder implements the Geocoder port against the public
// Nominatim search API.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Several query variants per address (house-number lookups often only
//     resolve with an explicit country suffix)
//   - External calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
	cache     GeocodeCache
	metrics   ClientMetrics
}

func NewNominatimGeocoder(baseURL, userAgent string, timeout time.Duration, cache GeocodeCache, m ClientMetrics) (*NominatimGeocoder, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("nominatim base URL is empty")
	}
	if strings.TrimSpace(userAgent) == "" {
		// Nominatim's usage policy rejects anonymous clients.
		return nil, errors.New("nominatim user agent is empty")
	}

	return &NominatimGeocoder{
		session:   &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		cache:     cache,
		metrics:   m,
	}, nil
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Resolve returns one coordinate for the address or fails outright.
// Query variants are tried in order; the first plausible hit wins.
func (g *NominatimGeocoder) Resolve(ctx context.Context, address string) (_ ports.Place, err error) {
	defer obs.Time(ctx, "nominatim.Resolve")(&err)

	addr := normalize(address)
	if addr == "" {
		return ports.Place{}, errors.New("address must be non-empty")
	}

	if g.cache != nil {
		cached, err := g.cache.GetPlace(ctx, addr)
		if err != nil {
			return ports.Place{}, fmt.Errorf("geocode cache read: %w", err)
		}
		if cached != nil {
			if g.metrics != nil {
				g.metrics.CacheHit("geocode")
			}
			return *cached, nil
		}
		if g.metrics != nil {
			g.metrics.CacheMiss("geocode")
		}
	}

	variants := []string{addr, addr + ", United States", addr + ", USA"}

	var lastErr error
	for _, query := range variants {
		place, err := g.search(ctx, query)
		if err != nil {
			lastErr = err
			continue
		}
		if !place.Coordinates.Valid() {
			lastErr = fmt.Errorf("implausible coordinates for %q", query)
			continue
		}

		if g.cache != nil {
			if err := g.cache.PutPlace(ctx, addr, place); err != nil {
				log.Printf("geocode cache write failed: %v", err)
			}
		}
		return place, nil
	}

	if g.metrics != nil {
		g.metrics.GeocodeErrInc()
	}
	if lastErr == nil {
		lastErr = errors.New("no geocode results")
	}
	return ports.Place{}, lastErr
}

func (g *NominatimGeocoder) search(ctx context.Context, query string) (ports.Place, error) {
	if g.metrics != nil {
		g.metrics.GeocodeInc()
	}

	endpoint := g.baseURL + "/search"

	resp, err := doWithRetry(ctx, g.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", g.userAgent)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("q", query)
		q.Set("format", "json")
		q.Set("limit", "1")
		q.Set("addressdetails", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.Place{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.Place{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded) == 0 {
		return ports.Place{}, fmt.Errorf("no geocode results for %q", query)
	}

	// Nominatim encodes coordinates as strings.
	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return ports.Place{}, fmt.Errorf("invalid latitude %q: %w", decoded[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return ports.Place{}, fmt.Errorf("invalid longitude %q: %w", decoded[0].Lon, err)
	}

	return ports.Place{
		Coordinates: domain.Coordinates{Lat: lat, Lon: lon},
		DisplayName: decoded[0].DisplayName,
	}, nil
}

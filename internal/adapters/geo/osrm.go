package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"route-optimizer-service/internal/domain"
)

// OSRMClient implements the PairwiseCoster and RouteGeometer ports against
// an OSRM HTTP instance (public or self-hosted).
//
// Pairwise results are cached raw, before any transport-mode duration
// multiplier. The client is safe for concurrent use.
type OSRMClient struct {
	session *http.Client
	baseURL string
	cache   CostCache
	metrics ClientMetrics
}

func NewOSRMClient(baseURL string, timeout time.Duration, cache CostCache, m ClientMetrics) (*OSRMClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("osrm base URL is empty")
	}

	return &OSRMClient{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache,
		metrics: m,
	}, nil
}

type osrmRoute struct {
	Duration float64 `json:"duration"`
	Distance float64 `json:"distance"`
	Geometry struct {
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
}

type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

// PairKey is a symmetric cache key for an unordered coordinate pair under
// one routing profile. Coordinates are fixed to 6 decimals (~0.1m), which
// is finer than any geocoder output.
func PairKey(a, b domain.Coordinates, profile string) string {
	ka := fmt.Sprintf("%.6f,%.6f", a.Lon, a.Lat)
	kb := fmt.Sprintf("%.6f,%.6f", b.Lon, b.Lat)
	if kb < ka {
		ka, kb = kb, ka
	}
	return profile + "|" + ka + "|" + kb
}

// PairwiseCost returns travel duration and distance between two
// coordinates using the OSRM route endpoint.
func (o *OSRMClient) PairwiseCost(ctx context.Context, a, b domain.Coordinates, profile string) (domain.PairwiseCost, error) {
	key := PairKey(a, b, profile)

	if o.cache != nil {
		cached, err := o.cache.GetCost(ctx, key)
		if err != nil {
			return domain.PairwiseCost{}, fmt.Errorf("cost cache read: %w", err)
		}
		if cached != nil {
			if o.metrics != nil {
				o.metrics.CacheHit("cost")
			}
			return *cached, nil
		}
		if o.metrics != nil {
			o.metrics.CacheMiss("cost")
		}
	}

	decoded, err := o.route(ctx, a, b, profile, false)
	if err != nil {
		if o.metrics != nil {
			o.metrics.PairwiseErrInc()
		}
		return domain.PairwiseCost{}, err
	}

	cost := domain.PairwiseCost{
		DurationSeconds: decoded.Routes[0].Duration,
		DistanceMeters:  decoded.Routes[0].Distance,
	}

	if o.cache != nil {
		if err := o.cache.PutCost(ctx, key, cost); err != nil {
			log.Printf("cost cache write failed: %v", err)
		}
	}

	return cost, nil
}

// RouteGeometry returns the full road polyline for one leg as (lat, lon)
// coordinates. Geometry is best-effort: callers fall back to a straight
// line when the slice is empty.
func (o *OSRMClient) RouteGeometry(ctx context.Context, a, b domain.Coordinates, profile string) ([]domain.Coordinates, error) {
	decoded, err := o.route(ctx, a, b, profile, true)
	if err != nil {
		return nil, err
	}

	raw := decoded.Routes[0].Geometry.Coordinates
	points := make([]domain.Coordinates, 0, len(raw))
	for _, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("invalid geometry point %v", pair)
		}
		// GeoJSON order is lon, lat.
		points = append(points, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}
	return points, nil
}

func (o *OSRMClient) route(ctx context.Context, a, b domain.Coordinates, profile string, geometry bool) (*osrmResponse, error) {
	if o.metrics != nil && !geometry {
		o.metrics.PairwiseInc()
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f",
		o.baseURL, profile, a.Lon, a.Lat, b.Lon, b.Lat,
	)

	resp, err := doWithRetry(ctx, o.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		if geometry {
			q.Set("overview", "full")
			q.Set("geometries", "geojson")
		} else {
			q.Set("overview", "false")
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("osrm request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode osrm response: %w", err)
	}

	if decoded.Code != "Ok" {
		return nil, fmt.Errorf("osrm status %q: %s", decoded.Code, decoded.Message)
	}
	if len(decoded.Routes) == 0 {
		return nil, errors.New("osrm returned no routes")
	}

	return &decoded, nil
}

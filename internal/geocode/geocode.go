// Package geocode resolves free-text addresses to coordinates via the
// Kakao local search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fallback point near Seoul City Hall, returned whenever resolution
// fails. Callers must check OK before relying on the coordinate for
// proximity checks.
const (
	DefaultLat = 37.5665
	DefaultLng = 126.978
)

const kakaoAddressURL = "https://dapi.kakao.com/v2/local/search/address.json"

// Result is a resolved coordinate. OK is false when the fallback point
// was substituted.
type Result struct {
	Lat float64
	Lng float64
	OK  bool
}

// Geocoder resolves an address to a coordinate. Implementations never
// return an error: failures degrade to the fallback point with OK=false.
type Geocoder interface {
	Resolve(ctx context.Context, address string) Result
}

// KakaoGeocoder calls the Kakao REST API.
type KakaoGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewKakaoGeocoder(apiKey string) *KakaoGeocoder {
	return &KakaoGeocoder{
		apiKey:  apiKey,
		baseURL: kakaoAddressURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// NewKakaoGeocoderWithBaseURL is used by tests to point at a fake server.
func NewKakaoGeocoderWithBaseURL(apiKey, baseURL string) *KakaoGeocoder {
	g := NewKakaoGeocoder(apiKey)
	g.baseURL = baseURL
	return g
}

type kakaoDocument struct {
	X string `json:"x"` // longitude
	Y string `json:"y"` // latitude
}

type kakaoResponse struct {
	Documents []kakaoDocument `json:"documents"`
}

func fallback() Result {
	return Result{Lat: DefaultLat, Lng: DefaultLng, OK: false}
}

func (g *KakaoGeocoder) Resolve(ctx context.Context, address string) Result {
	address = strings.TrimSpace(address)
	if g.apiKey == "" || address == "" {
		slog.Error("geocode skipped", "reason", "missing api key or empty address")
		return fallback()
	}

	reqURL := fmt.Sprintf("%s?query=%s", g.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		slog.Error("geocode request build failed", "error", err)
		return fallback()
	}
	req.Header.Set("Authorization", "KakaoAK "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Error("geocode request failed", "error", err)
		return fallback()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("geocode api error", "status", resp.StatusCode, "query", address)
		return fallback()
	}

	var body kakaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Error("geocode response decode failed", "error", err)
		return fallback()
	}

	if len(body.Documents) == 0 {
		slog.Error("geocode no results", "query", address)
		return fallback()
	}

	doc := body.Documents[0]
	lat, latErr := strconv.ParseFloat(doc.Y, 64)
	lng, lngErr := strconv.ParseFloat(doc.X, 64)
	if latErr != nil || lngErr != nil {
		slog.Error("geocode coordinate parse failed", "x", doc.X, "y", doc.Y)
		return fallback()
	}

	return Result{Lat: lat, Lng: lng, OK: true}
}

// Static is a fixed-result Geocoder for tests.
type Static struct {
	Result Result
}

func (s Static) Resolve(ctx context.Context, address string) Result {
	return s.Result
}

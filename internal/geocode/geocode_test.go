package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "KakaoAK test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "서울 중구 세종대로 110" {
			t.Errorf("query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[{"x":"126.9779692","y":"37.5662952"}]}`))
	}))
	defer srv.Close()

	g := NewKakaoGeocoderWithBaseURL("test-key", srv.URL)
	res := g.Resolve(context.Background(), "서울 중구 세종대로 110")

	if !res.OK {
		t.Fatal("expected OK result")
	}
	if res.Lat < 37.56 || res.Lat > 37.57 {
		t.Errorf("lat = %f", res.Lat)
	}
	if res.Lng < 126.97 || res.Lng > 126.98 {
		t.Errorf("lng = %f", res.Lng)
	}
}

func TestResolveFallbackOnEmptyAddress(t *testing.T) {
	g := NewKakaoGeocoder("test-key")
	res := g.Resolve(context.Background(), "   ")

	if res.OK {
		t.Error("expected fallback result")
	}
	if res.Lat != DefaultLat || res.Lng != DefaultLng {
		t.Errorf("fallback = (%f, %f), want (%f, %f)", res.Lat, res.Lng, DefaultLat, DefaultLng)
	}
}

func TestResolveFallbackOnMissingKey(t *testing.T) {
	g := NewKakaoGeocoder("")
	res := g.Resolve(context.Background(), "서울시 어딘가")
	if res.OK {
		t.Error("expected fallback when api key missing")
	}
}

func TestResolveFallbackOnNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[]}`))
	}))
	defer srv.Close()

	g := NewKakaoGeocoderWithBaseURL("test-key", srv.URL)
	res := g.Resolve(context.Background(), "존재하지 않는 주소")
	if res.OK {
		t.Error("expected fallback when no documents returned")
	}
	if res.Lat != DefaultLat {
		t.Errorf("lat = %f, want fallback", res.Lat)
	}
}

func TestResolveFallbackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewKakaoGeocoderWithBaseURL("bad-key", srv.URL)
	res := g.Resolve(context.Background(), "서울 중구 세종대로 110")
	if res.OK {
		t.Error("expected fallback on api error")
	}
}

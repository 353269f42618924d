package edhrec

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"mtgmcp/internal/adapters/filecache"
	"mtgmcp/internal/adapters/httpfetch"
	"mtgmcp/internal/application"
	"mtgmcp/internal/domain"
)

type testEnv struct {
	client   *Client
	cache    *filecache.Cache
	requests atomic.Int32
}

func setupTestClient(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	env := &testEnv{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	logger := zaptest.NewLogger(t)
	env.cache = filecache.New(t.TempDir(), 365*24*time.Hour, logger)
	if err := env.cache.Ensure(); err != nil {
		t.Fatal(err)
	}

	fetcher := httpfetch.NewFetcher("mtgmcp/test", httpfetch.WithInterval(0))
	env.client = NewClient(fetcher, env.cache.Similar, WithBaseURL(server.URL), WithLogger(logger))
	return env
}

func TestSimilarCards_MapsAndCaches(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/omnath-locus-of-rage.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"similar": [
				{"name": "Lord Windgrace", "color_identity": ["B","R","G"], "cmc": 5, "primary_type": "Planeswalker",
				 "image_uris": [{"normal": "n1", "art_crop": "a1"}, {"normal": "n2"}]},
				{"name": "", "cmc": 3},
				{"cmc": 2, "primary_type": "Creature"},
				{"name": "Titania, Protector of Argoth", "cmc": 5, "primary_type": "Creature"}
			]
		}`))
	})

	got := env.client.SimilarCards(context.Background(), "Omnath, Locus of Rage")
	want := []domain.SimilarCard{
		{
			Name:          "Lord Windgrace",
			ColorIdentity: []string{"B", "R", "G"},
			CMC:           5,
			Type:          "Planeswalker",
			ImageURIs:     &domain.SimilarImages{Normal: "n1", ArtCrop: "a1"},
		},
		{
			Name:          "Titania, Protector of Argoth",
			ColorIdentity: []string{},
			CMC:           5,
			Type:          "Creature",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("similar cards mismatch (-want +got):\n%s", diff)
	}

	again := env.client.SimilarCards(context.Background(), "Omnath, Locus of Rage")
	if diff := cmp.Diff(want, again); diff != "" {
		t.Errorf("cached similar cards mismatch (-want +got):\n%s", diff)
	}
	if n := env.requests.Load(); n != 1 {
		t.Errorf("expected 1 upstream request, got %d", n)
	}
}

func TestSimilarCards_EmptyResultIsCached(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"similar": []}`))
	})

	for i := 0; i < 2; i++ {
		got := env.client.SimilarCards(context.Background(), "Island")
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty list, got %#v", got)
		}
	}
	if n := env.requests.Load(); n != 1 {
		t.Errorf("expected 1 upstream request, got %d", n)
	}
}

func TestSimilarCards_SoftFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }},
		{"forbidden", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) }},
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"bad json", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`<html>`)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestClient(t, tt.handler)

			got := env.client.SimilarCards(context.Background(), "Sol Ring")
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil list, got %#v", got)
			}

			_, err := env.client.FetchSimilar(context.Background(), "Sol Ring")
			if !errors.Is(err, application.ErrUpstream) {
				t.Errorf("FetchSimilar should report ErrUpstream, got %v", err)
			}

			// Failures are not cached
			stats, _ := env.cache.Stats()
			if stats.Similar != 0 {
				t.Errorf("failed lookup was cached")
			}
		})
	}
}

func TestSimilarCards_ExpiredEntryRefetches(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"similar": [{"name": "Mana Crypt"}]}`))
	})

	written := time.Now().Add(-366 * 24 * time.Hour)
	env.cache.Similar.WithClock(func() time.Time { return written })
	env.cache.Similar.Put("Sol Ring", []domain.SimilarCard{{Name: "Stale"}})
	env.cache.Similar.WithClock(time.Now)

	got := env.client.SimilarCards(context.Background(), "Sol Ring")
	if len(got) != 1 || got[0].Name != "Mana Crypt" {
		t.Errorf("expected refreshed list, got %+v", got)
	}
	if n := env.requests.Load(); n != 1 {
		t.Errorf("expected 1 upstream request, got %d", n)
	}
}

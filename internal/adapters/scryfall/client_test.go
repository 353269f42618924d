package scryfall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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

const boltJSON = `{
	"object": "card",
	"name": "Lightning Bolt",
	"mana_cost": "{R}",
	"cmc": 1.0,
	"type_line": "Instant",
	"oracle_text": "Lightning Bolt deals 3 damage to any target.",
	"colors": ["R"],
	"keywords": [],
	"legalities": {"modern": "legal", "standard": "not_legal"},
	"set_name": "Magic 2010",
	"rarity": "common",
	"rulings_uri": "RULINGS",
	"image_uris": {"small": "https://img/s.jpg", "normal": "https://img/n.jpg", "large": "https://img/l.jpg"}
}`

type testEnv struct {
	client   *Client
	cache    *filecache.Cache
	requests atomic.Int32
	server   *httptest.Server
}

func setupTestClient(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	env := &testEnv{}
	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(env.server.Close)

	logger := zaptest.NewLogger(t)
	env.cache = filecache.New(t.TempDir(), 365*24*time.Hour, logger)
	if err := env.cache.Ensure(); err != nil {
		t.Fatal(err)
	}

	fetcher := httpfetch.NewFetcher("mtgmcp/test", httpfetch.WithInterval(0))
	env.client = NewClient(fetcher, env.cache.Cards, WithBaseURL(env.server.URL), WithLogger(logger))
	return env
}

func TestCardByName_FetchesAndCaches(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/named" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("fuzzy"); got != "lightning bolt" {
			t.Errorf("fuzzy = %q", got)
		}
		w.Write([]byte(boltJSON))
	})

	card, err := env.client.CardByName(context.Background(), "lightning bolt")
	if err != nil {
		t.Fatalf("CardByName failed: %v", err)
	}

	want := domain.Card{
		Name:       "Lightning Bolt",
		ManaCost:   "{R}",
		TypeLine:   "Instant",
		OracleText: "Lightning Bolt deals 3 damage to any target.",
		Colors:     []string{"R"},
		Legalities: map[string]string{"modern": "legal", "standard": "not_legal"},
		SetName:    "Magic 2010",
		Rarity:     "common",
		RulingsURI: "RULINGS",
		ImageURIs:  &domain.CardImages{Small: "https://img/s.jpg", Normal: "https://img/n.jpg"},
		CMC:        1,
		Keywords:   []string{},
	}
	if diff := cmp.Diff(want, *card); diff != "" {
		t.Errorf("card mismatch (-want +got):\n%s", diff)
	}

	// Second lookup under the same name is served from cache
	if _, err := env.client.CardByName(context.Background(), "lightning bolt"); err != nil {
		t.Fatal(err)
	}
	if n := env.requests.Load(); n != 1 {
		t.Errorf("expected 1 upstream request, got %d", n)
	}
}

func TestCardByName_CacheHitSkipsNetwork(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("network should not be called on a cache hit")
	})
	env.cache.Cards.Put("Counterspell", domain.Card{Name: "Counterspell", ManaCost: "{U}{U}"})

	card, err := env.client.CardByName(context.Background(), "Counterspell")
	if err != nil {
		t.Fatalf("CardByName failed: %v", err)
	}
	if card.ManaCost != "{U}{U}" {
		t.Errorf("ManaCost = %q", card.ManaCost)
	}
	if n := env.requests.Load(); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestCardByName_UpstreamError(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object":"error","status":404,"details":"No cards found matching \"Nope\""}`))
	})

	_, err := env.client.CardByName(context.Background(), "Nope")
	if !errors.Is(err, application.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	for _, part := range []string{"Nope", "404"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q should mention %q", err, part)
		}
	}

	stats, _ := env.cache.Stats()
	if stats.Cards != 0 {
		t.Error("failed lookups must not be cached")
	}
}

func TestCardByName_MultiFaceFallback(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"name": "Delver of Secrets // Insectile Aberration",
			"type_line": "Creature — Human Wizard // Creature — Human Insect",
			"cmc": 1,
			"card_faces": [
				{"name": "Delver of Secrets", "mana_cost": "{U}", "oracle_text": "Front text.", "power": "1", "toughness": "1",
				 "colors": ["U"], "image_uris": {"small": "front-s", "normal": "front-n"}},
				{"name": "Insectile Aberration", "mana_cost": "", "oracle_text": "Flying", "power": "3", "toughness": "2",
				 "image_uris": {"small": "back-s", "normal": "back-n"}}
			]
		}`))
	})

	card, err := env.client.CardByName(context.Background(), "Delver of Secrets")
	if err != nil {
		t.Fatal(err)
	}

	if card.OracleText != "Front text.\n//\nFlying" {
		t.Errorf("OracleText = %q", card.OracleText)
	}
	if card.ImageURIs == nil || card.ImageURIs.Normal != "front-n" {
		t.Errorf("ImageURIs = %+v, want front face images", card.ImageURIs)
	}
	if card.ManaCost != "{U}" || card.Power != "1" || card.Toughness != "1" {
		t.Errorf("front face stats not applied: %+v", card)
	}
}

func TestRulings(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cards/abc/rulings":
			w.Write([]byte(`{"object":"list","data":[
				{"object":"ruling","oracle_id":"abc","source":"wotc","published_at":"2020-01-01","comment":"First."},
				{"object":"ruling","oracle_id":"abc","source":"scryfall","published_at":"2021-01-01","comment":"Second."}
			]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	rulings := env.client.Rulings(context.Background(), env.server.URL+"/cards/abc/rulings")
	want := []domain.Ruling{
		{OracleID: "abc", Source: "wotc", Comment: "First."},
		{OracleID: "abc", Source: "scryfall", Comment: "Second."},
	}
	if diff := cmp.Diff(want, rulings); diff != "" {
		t.Errorf("rulings mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name string
		uri  string
	}{
		{"server error", env.server.URL + "/cards/broken/rulings"},
		{"no reference", ""},
		{"unreachable", "http://127.0.0.1:1/rulings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.client.Rulings(context.Background(), tt.uri)
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil rulings, got %#v", got)
			}
			if _, err := env.client.FetchRulings(context.Background(), tt.uri); err == nil {
				t.Error("FetchRulings should report the failure")
			}
		})
	}
}

func searchPage(total, n int, hasMore bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, `{"object":"list","total_cards":%d,"has_more":%t,`, total, hasMore)
	if hasMore {
		b.WriteString(`"next_page":"https://api.scryfall.com/cards/search?page=2",`)
	}
	b.WriteString(`"data":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"name":"Card %d","type_line":"Instant","cmc":1}`, i)
	}
	b.WriteString("]}")
	return b.String()
}

func TestSearch_Truncation(t *testing.T) {
	tests := []struct {
		name       string
		upstream   int
		maxResults int
		want       int
	}{
		{"ceiling of 500", 500, 175, 175},
		{"default with few results", 3, 0, 3},
		{"default with many results", 100, 0, domain.DefaultMaxResults},
		{"exact", 10, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(searchPage(tt.upstream, tt.upstream, false)))
			})

			result, err := env.client.Search(context.Background(), domain.SearchOptions{
				Query:      "t:instant",
				MaxResults: tt.maxResults,
			})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(result.Data) != tt.want {
				t.Errorf("got %d cards, want %d", len(result.Data), tt.want)
			}
			if result.TotalCards != tt.upstream {
				t.Errorf("TotalCards = %d, want %d", result.TotalCards, tt.upstream)
			}
		})
	}
}

func TestSearch_QueryParameters(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		want := map[string]string{
			"q":              "c:red cmc=1",
			"unique":         "art",
			"order":          "released",
			"include_extras": "true",
		}
		for k, v := range want {
			if got := q.Get(k); got != v {
				t.Errorf("%s = %q, want %q", k, got, v)
			}
		}
		w.Write([]byte(searchPage(1, 1, true)))
	})

	result, err := env.client.Search(context.Background(), domain.SearchOptions{
		Query:         "c:red cmc=1",
		MaxResults:    5,
		Unique:        domain.UniqueArt,
		Order:         "released",
		IncludeExtras: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.HasMore || result.NextPage == "" {
		t.Errorf("pagination not carried: %+v", result)
	}
}

func TestSearch_NotFoundIsEmpty(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object":"error","code":"not_found","status":404,"details":"Your query didn't match any cards."}`))
	})

	result, err := env.client.Search(context.Background(), domain.SearchOptions{Query: "xyzzy"})
	if err != nil {
		t.Fatalf("404 should not be an error: %v", err)
	}
	if diff := cmp.Diff(domain.EmptySearchResult(), result); diff != "" {
		t.Errorf("empty result mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_BadRequest(t *testing.T) {
	env := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"object":"error","status":400,"details":"All of your terms were ignored."}`))
	})

	_, err := env.client.Search(context.Background(), domain.SearchOptions{Query: "foo:bar"})
	if !errors.Is(err, application.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "ignored") {
		t.Errorf("error should carry status and details: %v", err)
	}
}

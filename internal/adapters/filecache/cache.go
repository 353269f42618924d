package filecache

import (
	"encoding/json"
	"net/url"
	"time"

	"go.uber.org/zap"

	"mtgmcp/internal/domain"
	"mtgmcp/internal/ports"
)

// Cache is the cache root with its two namespaces:
// cards at the top level and similar-card envelopes under similar/.
type Cache struct {
	root    *Store
	similar *Store

	Cards   *CardCache
	Similar *SimilarCache
}

var _ ports.CacheInitializer = (*Cache)(nil)

// Stats counts entries per namespace
type Stats struct {
	Cards   int `json:"cards"`
	Similar int `json:"similar"`
}

// New creates the cache rooted at dir. Similar-card entries expire after similarTTL.
func New(dir string, similarTTL time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("cache")

	root := NewStore(dir, logger)
	similar := root.Sub(similarDir)

	return &Cache{
		root:    root,
		similar: similar,
		Cards:   NewCardCache(root, logger),
		Similar: NewSimilarCache(similar, TTL(similarTTL), logger),
	}
}

// Dir returns the cache root
func (c *Cache) Dir() string {
	return c.root.Dir()
}

// Ensure creates the root and similar/ directories
func (c *Cache) Ensure() error {
	if err := c.root.Ensure(); err != nil {
		return err
	}
	return c.similar.Ensure()
}

func (c *Cache) Stats() (Stats, error) {
	cards, err := c.root.Count()
	if err != nil {
		return Stats{}, err
	}
	similar, err := c.similar.Count()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Cards: cards, Similar: similar}, nil
}

// Clear removes every entry in both namespaces and reports how many were removed
func (c *Cache) Clear() (Stats, error) {
	cards, err := c.root.Clear()
	if err != nil {
		return Stats{Cards: cards}, err
	}
	similar, err := c.similar.Clear()
	return Stats{Cards: cards, Similar: similar}, err
}

// entries is a typed JSON view over a BlobStore with an expiry policy.
// stamp extracts the write time a policy is evaluated against.
type entries[T any] struct {
	store  ports.BlobStore
	policy Policy
	stamp  func(*T) time.Time
	now    func() time.Time
	logger *zap.Logger
}

func (e *entries[T]) get(key string) (*T, bool) {
	data, ok := e.store.Get(key)
	if !ok {
		return nil, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		e.logger.Warn("cache entry unreadable", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	if !e.policy.Valid(e.stamp(&v), e.now()) {
		e.logger.Debug("cache entry expired", zap.String("key", key))
		return nil, false
	}
	return &v, true
}

func (e *entries[T]) put(key string, v *T) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		e.logger.Warn("cache entry not encodable", zap.String("key", key), zap.Error(err))
		return
	}
	e.store.Put(key, data)
}

// CardCache stores cards by exact name. Entries never expire.
type CardCache struct {
	entries entries[domain.Card]
}

// NewCardCache creates a card cache over store
func NewCardCache(store ports.BlobStore, logger *zap.Logger) *CardCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CardCache{entries: entries[domain.Card]{
		store:  store,
		policy: NoExpiry{},
		stamp:  func(*domain.Card) time.Time { return time.Time{} },
		now:    time.Now,
		logger: logger,
	}}
}

// CardKey is the file key for a card name
func CardKey(name string) string {
	return url.PathEscape(name)
}

func (c *CardCache) Get(name string) (*domain.Card, bool) {
	return c.entries.get(CardKey(name))
}

// Put stores the card without its enrichment lists
func (c *CardCache) Put(name string, card domain.Card) {
	base := card.Base()
	c.entries.put(CardKey(name), &base)
}

// SimilarCache stores recommendation lists by card slug, stamped at write time
type SimilarCache struct {
	entries entries[domain.CachedSimilarCards]
}

// NewSimilarCache creates a similar-card cache over store
func NewSimilarCache(store ports.BlobStore, policy Policy, logger *zap.Logger) *SimilarCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimilarCache{entries: entries[domain.CachedSimilarCards]{
		store:  store,
		policy: policy,
		stamp:  func(c *domain.CachedSimilarCards) time.Time { return c.Timestamp },
		now:    time.Now,
		logger: logger,
	}}
}

// WithClock replaces the clock used for stamping and expiry checks
func (c *SimilarCache) WithClock(now func() time.Time) *SimilarCache {
	c.entries.now = now
	return c
}

// Get returns the cached list for name. An empty cached list is a hit.
func (c *SimilarCache) Get(name string) ([]domain.SimilarCard, bool) {
	env, ok := c.entries.get(domain.Slug(name))
	if !ok {
		return nil, false
	}
	if env.Cards == nil {
		return []domain.SimilarCard{}, true
	}
	return env.Cards, true
}

// Put stores cards for name with the current time
func (c *SimilarCache) Put(name string, cards []domain.SimilarCard) {
	if cards == nil {
		cards = []domain.SimilarCard{}
	}
	c.entries.put(domain.Slug(name), &domain.CachedSimilarCards{
		Cards:     cards,
		Timestamp: c.entries.now().UTC(),
	})
}

package ports

import "mtgmcp/internal/domain"

// BlobStore is a flat key/value store of serialized records
type BlobStore interface {
	// Get returns the stored bytes for key, or false when absent or unreadable
	Get(key string) ([]byte, bool)

	// Put replaces the value for key. Failures are the store's to log.
	Put(key string, value []byte)
}

// CardStore caches cards by exact name
type CardStore interface {
	Get(name string) (*domain.Card, bool)
	Put(name string, card domain.Card)
}

// SimilarStore caches recommendation lists by card name.
// Implementations decide expiry; an expired entry reads as absent.
type SimilarStore interface {
	Get(name string) ([]domain.SimilarCard, bool)
	Put(name string, cards []domain.SimilarCard)
}

// Package store persists search results so a solved parameter set does not
// have to be searched again.
//
// A [Store] is a byte-level key/value store with expiration. Backends:
//   - [FileStore]: JSON files under ~/.local/share/srgsearch/solutions/ for the CLI
//   - [RedisStore]: shared hot store for `srgsearch serve` deployments
//   - [MongoStore]: durable store with a TTL index
//   - [NullStore]: stores nothing (--no-store)
//
// Keys come from [SolutionKey]: the SHA-256 of the graph parameters and the
// seed rows, so the same request always maps to the same entry.
//
// # Usage
//
//	s, err := store.Open(ctx, cfg.Store, dir)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	key := store.SolutionKey(spec, seeds)
//	data, hit, err := s.Get(ctx, key)
package store

import (
	"context"
	"time"

	"github.com/matzehuels/srgsearch/pkg/config"
	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
)

// Store is the interface for result storage backends.
type Store interface {
	// Get retrieves a value. A missing or expired entry is reported as
	// hit == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores a value. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend connections.
	Close() error
}

// Open creates the backend selected by cfg. dir is the directory for the
// file backend.
func Open(ctx context.Context, cfg config.Store, dir string) (Store, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return NewNullStore(), nil
	case config.BackendFile, "":
		s, err := NewFileStore(dir)
		if err != nil {
			return nil, srgerrors.Wrap(srgerrors.ErrCodeStore, err, "open file store %s", dir)
		}
		return WithHooks(s, config.BackendFile), nil
	case config.BackendRedis:
		s, err := NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, srgerrors.Wrap(srgerrors.ErrCodeStore, err, "connect to redis at %s", cfg.RedisAddr)
		}
		return WithHooks(s, config.BackendRedis), nil
	case config.BackendMongo:
		s, err := NewMongoStore(ctx, MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
		if err != nil {
			return nil, srgerrors.Wrap(srgerrors.ErrCodeStore, err, "connect to mongo")
		}
		return WithHooks(s, config.BackendMongo), nil
	default:
		return nil, srgerrors.New(srgerrors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
	}
}

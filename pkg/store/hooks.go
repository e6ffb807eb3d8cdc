package store

import (
	"context"
	"time"

	"github.com/matzehuels/srgsearch/pkg/observability"
)

// hooked reports reads and writes to the registered store hooks.
type hooked struct {
	Store
	backend string
}

// WithHooks wraps s so every Get and Set is reported through
// observability.Store().
func WithHooks(s Store, backend string) Store {
	return &hooked{Store: s, backend: backend}
}

func (h *hooked) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := h.Store.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Store().OnStoreHit(ctx, h.backend)
		} else {
			observability.Store().OnStoreMiss(ctx, h.backend)
		}
	}
	return data, hit, err
}

func (h *hooked) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := h.Store.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Store().OnStoreSet(ctx, h.backend, len(data))
	return nil
}

// Unwrap returns the wrapped backend.
func (h *hooked) Unwrap() Store { return h.Store }

// Unwrap returns the backend beneath any hook wrapper.
func Unwrap(s Store) Store {
	for {
		u, ok := s.(interface{ Unwrap() Store })
		if !ok {
			return s
		}
		s = u.Unwrap()
	}
}

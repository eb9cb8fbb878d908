package memory

import (
	"context"
	"sync"
	"time"
)

// TokenDenylist tokens revocados en memoria (un solo proceso).
type TokenDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewTokenDenylist crea la lista vacía.
func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{entries: map[string]time.Time{}, now: time.Now}
}

// Revoke marca el jti hasta now+ttl.
func (d *TokenDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[jti] = d.now().Add(ttl)
	d.purge()
	return nil
}

// IsRevoked indica si el jti sigue revocado.
func (d *TokenDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[jti]
	if !ok {
		return false, nil
	}
	if !d.now().Before(exp) {
		delete(d.entries, jti)
		return false, nil
	}
	return true, nil
}

// purge descarta entradas vencidas.
func (d *TokenDenylist) purge() {
	now := d.now()
	for k, exp := range d.entries {
		if !now.Before(exp) {
			delete(d.entries, k)
		}
	}
}

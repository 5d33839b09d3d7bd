package session

import "sync"

// IPBindings pins a token to the first network origin it was seen from.
// A later request with the same token from a different origin is treated as
// a leaked token by the validation pipeline.
type IPBindings struct {
	mu      sync.Mutex
	byToken map[string]string
}

// NewIPBindings creates an empty binding map.
func NewIPBindings() *IPBindings {
	return &IPBindings{byToken: make(map[string]string)}
}

// Bind returns the origin the token is pinned to. On first sight the token
// is bound to origin and first is true; afterwards the original binding is
// returned unchanged.
func (b *IPBindings) Bind(token, origin string) (bound string, first bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.byToken[token]; ok {
		return existing, false
	}
	b.byToken[token] = origin
	return origin, true
}

// Forget drops the token's binding; used once a token can never validate
// again so the map does not grow without bound.
func (b *IPBindings) Forget(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.byToken, token)
}

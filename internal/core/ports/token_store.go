package ports

import "context"

// TokenStore persists the single bearer token across restarts. Only the
// session store and the request layer's 401 handling write to it.
type TokenStore interface {
	// Load returns "" and no error when nothing is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}

package tenant

import (
	"context"
	"errors"
	"sync"

	"github.com/tablerota/rota-backend-go/internal/pkg/database"
)

var ErrNoTenant = errors.New("no tenant in request context")

type ctxKey struct{}

// WithTenant stores the tenant slug in the context. The auth middleware
// calls this after reading the tenant claim from the access token.
func WithTenant(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, ctxKey{}, slug)
}

// FromContext returns the tenant slug stored in the context.
func FromContext(ctx context.Context) (string, bool) {
	slug, ok := ctx.Value(ctxKey{}).(string)
	return slug, ok && slug != ""
}

// Registry hands out one connection pool per tenant database, opening pools
// lazily on first use.
type Registry struct {
	mu       sync.RWMutex
	pools    map[string]*database.DB
	dsn      func(tenant string) string
	maxConns int32
	minConns int32
}

func NewRegistry(dsn func(tenant string) string, maxConns, minConns int32) *Registry {
	return &Registry{
		pools:    make(map[string]*database.DB),
		dsn:      dsn,
		maxConns: maxConns,
		minConns: minConns,
	}
}

// DB resolves the pool for the tenant carried by the context.
func (r *Registry) DB(ctx context.Context) (*database.DB, error) {
	slug, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoTenant
	}
	return r.Open(slug)
}

// Open returns the pool for one tenant, connecting if needed.
func (r *Registry) Open(slug string) (*database.DB, error) {
	r.mu.RLock()
	db, ok := r.pools[slug]
	r.mu.RUnlock()
	if ok {
		return db, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if db, ok := r.pools[slug]; ok {
		return db, nil
	}

	db, err := database.NewPostgreSQLDB(r.dsn(slug), r.maxConns, r.minConns)
	if err != nil {
		return nil, err
	}
	r.pools[slug] = db
	return db, nil
}

// Close shuts down every open tenant pool.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for slug, db := range r.pools {
		db.Pool.Close()
		delete(r.pools, slug)
	}
}

package pricebook

// Registry is a keyed collection of Books, one per instrument symbol:
// callers never hold a single global order book, they look one up per
// trading pair. It adds no concurrency control and no matching-engine
// semantics: a Registry is pure bookkeeping, no more safe for concurrent
// use than a single Book is.
type Registry[V any] struct {
	cfg   Config
	books map[string]*Book[V]
}

// NewRegistry builds an empty Registry. Every Book it mints shares cfg
// as its starting configuration; a caller needing per-symbol tick sizes
// or ring shapes should use several Registries, or construct Books
// directly instead.
func NewRegistry[V any](cfg Config) *Registry[V] {
	return &Registry[V]{cfg: cfg, books: make(map[string]*Book[V])}
}

// GetOrCreate returns the Book for symbol, constructing and caching one
// with the Registry's Config if none exists yet. Idempotent: two calls
// with the same symbol return the same *Book.
func (r *Registry[V]) GetOrCreate(symbol string, opts ...Option[V]) (*Book[V], error) {
	if b, ok := r.books[symbol]; ok {
		return b, nil
	}
	opts = append([]Option[V]{WithLabel[V](symbol)}, opts...)
	b, err := New[V](r.cfg, opts...)
	if err != nil {
		return nil, err
	}
	r.books[symbol] = b
	return b, nil
}

// Get returns the Book for symbol without creating one.
func (r *Registry[V]) Get(symbol string) (*Book[V], bool) {
	b, ok := r.books[symbol]
	return b, ok
}

// Remove deletes symbol's Book from the Registry, if present.
func (r *Registry[V]) Remove(symbol string) {
	delete(r.books, symbol)
}

// Symbols reports every symbol currently held by the Registry.
func (r *Registry[V]) Symbols() []string {
	symbols := make([]string, 0, len(r.books))
	for s := range r.books {
		symbols = append(symbols, s)
	}
	return symbols
}

package protoval

import "sync"

// Lazy holds a value computed on first use. It must not be copied after
// first use.
type Lazy[T any] struct {
	once sync.Once
	v    T
}

// Get returns the cached value, calling compute to produce it if this is the
// first call. compute runs at most once, even with concurrent callers.
func (l *Lazy[T]) Get(compute func() T) T {
	l.once.Do(func() {
		l.v = compute()
	})
	return l.v
}

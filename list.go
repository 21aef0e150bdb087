package protoval

import (
	"iter"
	"slices"
	"strings"
)

// List is an immutable ordered sequence. The zero value is an empty list.
type List[T any] struct {
	items []T
}

// ListOf returns a list holding a copy of the given elements.
func ListOf[T any](items ...T) List[T] {
	return List[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (l List[T]) Len() int { return len(l.items) }

// IsEmpty reports if the list has no elements.
func (l List[T]) IsEmpty() bool { return len(l.items) == 0 }

// At returns the element at index i. It panics if i is out of range.
func (l List[T]) At(i int) T { return l.items[i] }

// All returns an iterator over the indexes and elements in order.
func (l List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

// Values returns an iterator over the elements in order.
func (l List[T]) Values() iter.Seq[T] {
	return slices.Values(l.items)
}

// Slice returns a copy of the elements.
func (l List[T]) Slice() []T {
	return slices.Clone(l.items)
}

// String formats the list as [a, b, c].
func (l List[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatValue(v))
	}
	b.WriteByte(']')
	return b.String()
}

// ListBuilder accumulates the elements of a List. Unlike List it can be
// modified until Build is called, and remains usable afterwards.
type ListBuilder[T any] struct {
	items []T
}

// NewListBuilder returns an empty builder.
func NewListBuilder[T any]() *ListBuilder[T] {
	return &ListBuilder[T]{}
}

// Add appends the given elements.
func (b *ListBuilder[T]) Add(items ...T) *ListBuilder[T] {
	b.items = append(b.items, items...)
	return b
}

// AddList appends the elements of l.
func (b *ListBuilder[T]) AddList(l List[T]) *ListBuilder[T] {
	b.items = append(b.items, l.items...)
	return b
}

// Set replaces the element at index i. It panics if i is out of range.
func (b *ListBuilder[T]) Set(i int, v T) *ListBuilder[T] {
	b.items[i] = v
	return b
}

// Clear removes all elements.
func (b *ListBuilder[T]) Clear() *ListBuilder[T] {
	b.items = b.items[:0]
	return b
}

// Len returns the number of accumulated elements. A nil builder is empty.
func (b *ListBuilder[T]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// At returns the element at index i. It panics if i is out of range.
func (b *ListBuilder[T]) At(i int) T { return b.items[i] }

// Build returns a list with a copy of the accumulated elements. Later
// changes to the builder do not affect the returned list. A nil builder
// builds an empty list.
func (b *ListBuilder[T]) Build() List[T] {
	if b == nil || len(b.items) == 0 {
		return List[T]{}
	}
	return List[T]{items: slices.Clone(b.items)}
}

package dockersock

import "sort"

// mw pairs a configuration function with its execution priority.
type mw[T any] struct {
	fn       func(T) error
	priority int
}

// middleware is a small priority-ordered chain of configuration functions.
// Lower priority values run earlier; equal priorities keep insertion order.
// Execution stops at the first error.
type middleware[T any] struct {
	chain []mw[T]
}

func newMiddleware[T any]() *middleware[T] {
	return &middleware[T]{}
}

// add appends a function to the chain with the given priority.
func (m *middleware[T]) add(priority int, fn func(T) error) {
	m.chain = append(m.chain, mw[T]{fn, priority})
}

// run executes the chain against v in priority order. A copy is sorted so
// the registered order is never mutated.
func (m *middleware[T]) run(v T) error {
	sorted := make([]mw[T], len(m.chain))
	copy(sorted, m.chain)

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].priority < sorted[j].priority })

	for _, item := range sorted {
		if err := item.fn(v); err != nil {
			return err
		}
	}

	return nil
}

package eventstack

import (
	"cmp"
	"slices"

	"evstack/parallel"
)

// Ordered-type operations live as package functions because Go methods
// cannot add type constraints beyond the receiver's own.

// Sort sorts the stack in ascending order; the greatest element ends up on
// top.
func Sort[T cmp.Ordered](s *EventStack[T]) error {
	return s.SortFunc(func(a, b T) bool { return a < b })
}

// RemoveDuplicates removes repeated elements by sorting the stack and
// collapsing adjacent equals. The stack is reordered as a side effect.
func RemoveDuplicates[T cmp.Ordered](s *EventStack[T]) error {
	defer s.exclusive()()
	return s.bulk("remove_duplicates", func() error {
		return s.b.update(func(items []T) ([]T, error) {
			parallel.SortOrdered(items, s.cfg.threads)
			return slices.Compact(items), nil
		})
	})
}

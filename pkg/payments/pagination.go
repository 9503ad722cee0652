package payments

import (
	"context"
)

// PageFetcher fetches the page that follows startingAfter. An empty cursor
// requests the first page.
type PageFetcher[T Identifiable] func(ctx context.Context, startingAfter string) (*ListResponse[T], error)

// ListIterator walks every record of a list endpoint, fetching pages lazily
// with the starting_after cursor.
type ListIterator[T Identifiable] struct {
	ctx     context.Context //nolint:containedctx // the iterator outlives a single call
	fetch   PageFetcher[T]
	items   []T
	index   int
	cursor  string
	started bool
	hasMore bool
	err     error
	failed  bool
}

// NewListIterator creates an iterator. No request is made until HasNext.
func NewListIterator[T Identifiable](ctx context.Context, fetch PageFetcher[T]) *ListIterator[T] {
	return &ListIterator[T]{
		ctx:   ctx,
		fetch: fetch,
	}
}

// HasNext reports whether Next will return a record or an error, fetching
// the next page when the current one is exhausted.
func (it *ListIterator[T]) HasNext() bool {
	if it.err != nil {
		return !it.failed
	}

	if it.index < len(it.items) {
		return true
	}

	if it.started && !it.hasMore {
		return false
	}

	it.nextPage()

	if it.err != nil {
		return true
	}

	return it.index < len(it.items)
}

// Next returns the next record. After the last record it returns
// ErrNoMoreItems; a failed page fetch is returned once.
func (it *ListIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		return zero, ErrNoMoreItems
	}

	if it.err != nil {
		it.failed = true

		return zero, it.err
	}

	item := it.items[it.index]
	it.index++

	return item, nil
}

// All drains the iterator.
func (it *ListIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return all, err
		}

		all = append(all, item)
	}

	return all, nil
}

// Err returns the page fetch error, if any.
func (it *ListIterator[T]) Err() error {
	return it.err
}

func (it *ListIterator[T]) nextPage() {
	page, err := it.fetch(it.ctx, it.cursor)
	it.started = true

	if err != nil {
		it.err = err

		return
	}

	if page == nil {
		it.items, it.index, it.hasMore = nil, 0, false

		return
	}

	it.items = page.Data
	it.index = 0
	// An empty page ends iteration even if has_more claims otherwise.
	it.hasMore = page.HasMore && len(page.Data) > 0
	it.cursor = page.LastID()
}

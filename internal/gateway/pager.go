package gateway

import (
	"context"
	"iter"
)

// PageOptions selects one page of a list endpoint. Page numbers start at 1.
type PageOptions struct {
	Page    int
	PerPage int
}

// PageFunc fetches a single page of records.
type PageFunc[T any] func(ctx context.Context, opts PageOptions) ([]T, error)

// Paginate returns the pages of a list endpoint, one request per page,
// starting at page 1. The sequence ends at the first empty page, which is not
// yielded, or after yielding the first error. The next page is requested only
// once the consumer has finished with the previous one.
// onPage, if non-nil, is called with the page number before each request.
func Paginate[T any](ctx context.Context, perPage int, fetch PageFunc[T], onPage func(page int)) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for page := 1; ; page++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if onPage != nil {
				onPage(page)
			}
			records, err := fetch(ctx, PageOptions{Page: page, PerPage: perPage})
			if err != nil {
				yield(nil, err)
				return
			}
			if len(records) == 0 {
				return
			}
			if !yield(records, nil) {
				return
			}
		}
	}
}

// Collect drains a page sequence into a single slice.
func Collect[T any](pages iter.Seq2[[]T, error]) ([]T, error) {
	var all []T
	for records, err := range pages {
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

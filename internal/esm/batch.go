package esm

import (
	"context"
)

// fetchAllByIDs resolves ids through fetch in contiguous chunks of at most
// batchSize, one chunk at a time. The upstream bulk endpoints accept any
// number of IDs in theory but are rate and payload limited in practice,
// sequential batching trades latency for upstream stability.
//
// Results are concatenated in chunk order. A chunk failure aborts the whole
// call, there is no partial-success return.
func fetchAllByIDs[T any](ctx context.Context, ids []string, batchSize int, fetch func(context.Context, []string) ([]T, error)) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	all := make([]T, 0, len(ids))

	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))

		batch, err := fetch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}

		all = append(all, batch...)
	}

	return all, nil
}

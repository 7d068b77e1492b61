package esm

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeIDs(n int) []string {
	ids := make([]string, 0, n)

	for i := 0; i < n; i++ {
		ids = append(ids, fmt.Sprintf("id-%03d", i))
	}

	return ids
}

func TestFetchAllByIDsChunking(t *testing.T) {
	ids := makeIDs(120)

	var chunks [][]string

	out, err := fetchAllByIDs(context.Background(), ids, 50, func(_ context.Context, batch []string) ([]string, error) {
		chunks = append(chunks, batch)

		return batch, nil
	})
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 50)
	assert.Len(t, chunks[1], 50)
	assert.Len(t, chunks[2], 20)

	// concatenation preserves input order
	assert.Equal(t, ids, out)
	assert.Equal(t, "id-050", chunks[1][0])
	assert.Equal(t, "id-100", chunks[2][0])
}

func TestFetchAllByIDsEmptyInput(t *testing.T) {
	calls := 0

	out, err := fetchAllByIDs(context.Background(), nil, 50, func(_ context.Context, _ []string) ([]int, error) {
		calls++

		return nil, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{}, out)
	assert.Zero(t, calls)
}

func TestFetchAllByIDsChunkFailureAborts(t *testing.T) {
	errBoom := errors.New("boom")

	calls := 0

	_, err := fetchAllByIDs(context.Background(), makeIDs(120), 50, func(_ context.Context, _ []string) ([]string, error) {
		calls++

		if calls == 2 {
			return nil, errBoom
		}

		return []string{"ok"}, nil
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, calls)
}

func TestFetchAllByIDsBatchSizeFallback(t *testing.T) {
	var chunks [][]string

	_, err := fetchAllByIDs(context.Background(), makeIDs(60), 0, func(_ context.Context, batch []string) ([]string, error) {
		chunks = append(chunks, batch)

		return batch, nil
	})
	require.NoError(t, err)

	// zero batch size falls back to the upstream default
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], defaultBatchSize)
}

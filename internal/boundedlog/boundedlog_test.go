package boundedlog

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	N int `json:"n"`
}

func TestListEmptyWhenFileMissing(t *testing.T) {
	l := New[entry](filepath.Join(t.TempDir(), "log.json"), nil, 10)

	got, err := l.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppendNewestFirst(t *testing.T) {
	ctx := context.Background()
	l := New[entry](filepath.Join(t.TempDir(), "log.json"), nil, 10)

	for i := 1; i <= 3; i++ {
		require.NoError(t, l.Append(ctx, entry{N: i}))
	}

	got, err := l.List()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []entry{{3}, {2}, {1}}, got)
}

func TestAppendEvictsOldestPastCap(t *testing.T) {
	ctx := context.Background()
	l := New[entry](filepath.Join(t.TempDir(), "log.json"), nil, 5)

	for i := 1; i <= 8; i++ {
		require.NoError(t, l.Append(ctx, entry{N: i}))
	}

	got, err := l.List()
	require.NoError(t, err)
	require.Len(t, got, 5)

	for i, e := range got {
		assert.Equal(t, 8-i, e.N, fmt.Sprintf("position %d", i))
	}
}

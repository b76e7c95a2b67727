package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/todoq/internal/model"
	"github.com/slok/todoq/internal/storage/memory"
)

func TestRepositoryFilterRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)

	// Nothing stored yet.
	_, err = repo.GetFilter(ctx)
	assert.ErrorIs(err, model.ErrNotFound)

	filter := model.Filter{Status: model.StatusCompleted, Tags: []string{"work"}}
	require.NoError(repo.SaveFilter(ctx, filter))

	got, err := repo.GetFilter(ctx)
	require.NoError(err)
	assert.Equal(filter, *got)

	// A second save replaces the first.
	filter2 := model.Filter{Status: model.StatusAll}
	require.NoError(repo.SaveFilter(ctx, filter2))

	got, err = repo.GetFilter(ctx)
	require.NoError(err)
	assert.Equal(filter2, *got)
}

package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledgehub/knowledgehub/storage/model"
)

func TestArticlesStorage(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner, err := s.UsersStorage().Create("alice", "wonderland", "user")
	require.NoError(t, err)
	articles := s.ArticlesStorage()

	a := &model.Article{
		Title:   "Title",
		Content: "Content",
		OwnerID: owner.ID,
	}
	require.NoError(t, articles.Create(ctx, a))
	assert.NotZero(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, "alice", a.OwnerUsername)

	got, err := articles.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Title", got.Title)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, "alice", got.OwnerUsername)
	assert.Nil(t, got.Summary)

	got.Content = "Changed"
	got.Tags = []string{"go", "db"}
	require.NoError(t, articles.Update(ctx, got))
	got, err = articles.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", got.Content)
	assert.Equal(t, []string{"go", "db"}, got.Tags)

	require.NoError(t, articles.SetSummary(ctx, a.ID, "short"))
	got, err = articles.Get(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Summary)
	assert.Equal(t, "short", *got.Summary)
	assert.Equal(t, "Changed", got.Content)

	require.NoError(t, articles.Delete(ctx, a.ID))
	var nf model.NotFoundError
	_, err = articles.Get(ctx, a.ID)
	assert.True(t, errors.As(err, &nf))
	err = articles.Delete(ctx, a.ID)
	assert.True(t, errors.As(err, &nf))

	got.Title = "Resurrected"
	err = articles.Update(ctx, got)
	assert.True(t, errors.As(err, &nf))
	_, err = articles.Get(ctx, a.ID)
	assert.True(t, errors.As(err, &nf))
}

func TestArticlesStorageList(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner, err := s.UsersStorage().Create("alice", "wonderland", "user")
	require.NoError(t, err)
	articles := s.ArticlesStorage()

	for i := 0; i < 3; i++ {
		require.NoError(
			t, articles.Create(
				ctx, &model.Article{
					Title:   fmt.Sprintf("a%d", i),
					Content: "c",
					OwnerID: owner.ID,
				},
			),
		)
	}

	count, err := articles.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	all, err := articles.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a2", all[0].Title)
	assert.Equal(t, "a0", all[2].Title)
	assert.Equal(t, "alice", all[1].OwnerUsername)

	window, err := articles.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "a1", window[0].Title)

	empty, err := articles.List(ctx, 5, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

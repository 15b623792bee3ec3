package sqlstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/navbryce/next-blog-be/db"
	"github.com/navbryce/next-blog-be/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPostsEmpty(t *testing.T) {
	database := dbtest.New(t)

	posts, err := database.GetPosts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestCreateAndGetPost(t *testing.T) {
	database := dbtest.New(t)
	ctx := context.Background()

	id, err := database.CreatePost(ctx, &db.CreatePost{Title: "Hello", Content: "World"})
	require.NoError(t, err)
	assert.Positive(t, id)

	post, err := database.GetPostById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, post.Id)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "World", post.Content)
	assert.False(t, post.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), post.CreatedAt, time.Minute)
}

func TestGetPostByIdNotFound(t *testing.T) {
	database := dbtest.New(t)

	post, err := database.GetPostById(context.Background(), 999999)
	assert.Nil(t, post)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestGetPostsNewestFirst(t *testing.T) {
	database := dbtest.New(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := database.CreatePost(ctx, &db.CreatePost{
			Title:   fmt.Sprintf("post %d", i),
			Content: "content",
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	posts, err := database.GetPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, len(ids))

	for i, post := range posts {
		assert.Equal(t, ids[len(ids)-1-i], post.Id)
		if i > 0 {
			assert.False(t, post.CreatedAt.After(posts[i-1].CreatedAt),
				"post %d is newer than the post listed before it", post.Id)
		}
	}
}

func TestDeletePost(t *testing.T) {
	database := dbtest.New(t)
	ctx := context.Background()

	before, err := database.GetPosts(ctx)
	require.NoError(t, err)

	id, err := database.CreatePost(ctx, &db.CreatePost{Title: "Hello", Content: "World"})
	require.NoError(t, err)
	require.NoError(t, database.DeletePost(ctx, id))

	_, err = database.GetPostById(ctx, id)
	assert.ErrorIs(t, err, db.ErrNotFound)

	after, err := database.GetPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestDeletePostNotFound(t *testing.T) {
	database := dbtest.New(t)
	ctx := context.Background()

	id, err := database.CreatePost(ctx, &db.CreatePost{Title: "Keep", Content: "me"})
	require.NoError(t, err)

	err = database.DeletePost(ctx, id+1000)
	assert.ErrorIs(t, err, db.ErrNotFound)

	posts, err := database.GetPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, id, posts[0].Id)
}

func TestCreatePostCanceledLeavesNoRow(t *testing.T) {
	database := dbtest.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := database.CreatePost(ctx, &db.CreatePost{Title: "Hello", Content: "World"})
	assert.Error(t, err)

	posts, err := database.GetPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPing(t *testing.T) {
	database := dbtest.New(t)
	assert.NoError(t, database.Ping(context.Background()))

	require.NoError(t, database.GetSQLDB().Close())
	assert.Error(t, database.Ping(context.Background()))
}

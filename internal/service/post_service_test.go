package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	svc := NewPostService(st.Posts())
	n := &recordingNotifier{}
	svc.SetNotifier(n)

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	post, err := svc.Create(ctx, CreatePostInput{Title: "Hello", Text: "World"})
	require.NoError(t, err)
	assert.Positive(t, post.ID)

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)

	require.Len(t, n.posts, 1)
	assert.Equal(t, post.ID, n.posts[0].ID)
}

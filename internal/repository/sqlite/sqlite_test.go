package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/quill/internal/domain"
	"github.com/vedran77/quill/internal/logging"
	"github.com/vedran77/quill/internal/repository"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared", logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func strPtr(s string) *string { return &s }

func TestUserRepo_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	users := openTestStore(t).Users()

	u := &domain.User{Username: strPtr("alice"), PasswordHash: strPtr("hash"), CreatedAt: time.Now()}
	require.NoError(t, users.Create(ctx, u))
	assert.Positive(t, u.ID)

	got, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", *got.PasswordHash)
	assert.Nil(t, got.EthAddress)

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", *byID.Username)

	missing, err := users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_AssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	users := openTestStore(t).Users()

	first := &domain.User{Username: strPtr("a"), PasswordHash: strPtr("h")}
	second := &domain.User{EthAddress: strPtr("0xabc")}
	require.NoError(t, users.Create(ctx, first))
	require.NoError(t, users.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)
}

func TestUserRepo_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	users := openTestStore(t).Users()

	require.NoError(t, users.Create(ctx, &domain.User{Username: strPtr("alice"), PasswordHash: strPtr("h")}))
	err := users.Create(ctx, &domain.User{Username: strPtr("alice"), PasswordHash: strPtr("h2")})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, users.Create(ctx, &domain.User{EthAddress: strPtr("0xAbC")}))
	err = users.Create(ctx, &domain.User{EthAddress: strPtr("0xAbC")})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	// Addresses are matched exactly as supplied.
	require.NoError(t, users.Create(ctx, &domain.User{EthAddress: strPtr("0xabc")}))

	got, err := users.GetByEthAddress(ctx, "0xAbC")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Username)
	assert.Nil(t, got.PasswordHash)
}

func TestPostRepo_CreateAndList(t *testing.T) {
	ctx := context.Background()
	posts := openTestStore(t).Posts()

	list, err := posts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, posts.Create(ctx, &domain.Post{Title: "one", Text: "first"}))
	require.NoError(t, posts.Create(ctx, &domain.Post{Title: "two", Text: "second"}))

	list, err = posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Title)
	assert.Equal(t, "second", list[1].Text)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestFileRepo_CreateAndListByUser(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	owner := &domain.User{Username: strPtr("carol"), PasswordHash: strPtr("h")}
	require.NoError(t, st.Users().Create(ctx, owner))

	files := st.Files()
	require.NoError(t, files.Create(ctx, &domain.File{CID: "bafy1", UserID: &owner.ID}))
	require.NoError(t, files.Create(ctx, &domain.File{CID: "bafy2"}))

	list, err := files.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bafy1", list[0].CID)
	require.NotNil(t, list[0].UserID)
	assert.Equal(t, owner.ID, *list[0].UserID)
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/quill/internal/domain"
)

func TestUploadService_LinksStoredUser(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	authSvc, _ := newAuthService(t, st)
	user, err := authSvc.Signup(ctx, SignupInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	store := &fakeContentStore{cid: "bafybeigdyr"}
	svc := NewUploadService(store, st.Files(), st.Users())
	n := &recordingNotifier{}
	svc.SetNotifier(n)

	resp, err := svc.UploadHTML(ctx, domain.UserSubject(user.ID), UploadHTMLInput{HTMLContent: "<h1>hi</h1>"})
	require.NoError(t, err)
	assert.Equal(t, "bafybeigdyr", resp.CID)

	require.Len(t, store.names, 1)
	assert.True(t, strings.HasSuffix(store.names[0], ".html"))
	assert.Equal(t, "<h1>hi</h1>", string(store.data[0]))

	files, err := svc.ListFiles(ctx, domain.UserSubject(user.ID))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "bafybeigdyr", files[0].CID)

	require.Len(t, n.files, 1)
	require.NotNil(t, n.files[0].UserID)
	assert.Equal(t, user.ID, *n.files[0].UserID)
}

func TestUploadService_AdminAndUnknownUsersAreUnlinked(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	n := &recordingNotifier{}
	svc := NewUploadService(&fakeContentStore{cid: "bafy"}, st.Files(), st.Users())
	svc.SetNotifier(n)

	_, err := svc.UploadHTML(ctx, domain.AdminSubject("admin"), UploadHTMLInput{HTMLContent: "x"})
	require.NoError(t, err)
	_, err = svc.UploadHTML(ctx, domain.UserSubject(999), UploadHTMLInput{HTMLContent: "y"})
	require.NoError(t, err)

	require.Len(t, n.files, 2)
	assert.Nil(t, n.files[0].UserID)
	assert.Nil(t, n.files[1].UserID)

	files, err := svc.ListFiles(ctx, domain.AdminSubject("admin"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestUploadService_StoreFailure(t *testing.T) {
	st := openStore(t)
	svc := NewUploadService(&fakeContentStore{err: errBoom}, st.Files(), st.Users())

	_, err := svc.UploadHTML(context.Background(), domain.AdminSubject("admin"), UploadHTMLInput{HTMLContent: "x"})
	assert.ErrorIs(t, err, errBoom)
}

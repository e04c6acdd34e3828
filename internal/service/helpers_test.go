package service

import (
	"context"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/quill/internal/auth"
	"github.com/vedran77/quill/internal/domain"
	"github.com/vedran77/quill/internal/logging"
	"github.com/vedran77/quill/internal/repository/sqlite"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.Open(context.Background(), "file:svc_"+t.Name()+"?mode=memory&cache=shared", logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newAuthService(t *testing.T, st *sqlite.Store, reserved ...string) (*AuthService, *auth.TokenIssuer) {
	t.Helper()
	issuer := auth.NewTokenIssuer(testSecret)
	svc := NewAuthService(st.Users(), auth.NewBcryptHasher(bcrypt.MinCost), auth.NewEthVerifier(), issuer, reserved...)
	return svc, issuer
}

type wallet struct {
	key     *secp256k1.PrivateKey
	address string
}

func newWallet(t *testing.T) wallet {
	t.Helper()
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return wallet{key: key, address: auth.PublicKeyAddress(key.PubKey())}
}

func (w wallet) sign(message string) string {
	compact := ecdsa.SignCompact(w.key, auth.PersonalMessageHash([]byte(message)), false)
	sig := append(append([]byte{}, compact[1:]...), compact[0])
	return "0x" + hex.EncodeToString(sig)
}

type fakeContentStore struct {
	mu    sync.Mutex
	cid   string
	err   error
	names []string
	data  [][]byte
}

func (f *fakeContentStore) Put(_ context.Context, name string, content []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.names = append(f.names, name)
	f.data = append(f.data, content)
	return f.cid, nil
}

type recordingNotifier struct {
	posts []*domain.Post
	files []*domain.File
}

func (n *recordingNotifier) NotifyNewPost(p *domain.Post)      { n.posts = append(n.posts, p) }
func (n *recordingNotifier) NotifyFileUploaded(f *domain.File) { n.files = append(n.files, f) }

var errBoom = errors.New("boom")

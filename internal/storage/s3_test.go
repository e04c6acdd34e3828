package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIPFSBucket mimics an S3 gateway that pins every object and reports the
// CID as x-amz-meta-cid.
type fakeIPFSBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	withCID bool
}

func (b *fakeIPFSBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		b.objects[r.URL.Path] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		if _, ok := b.objects[r.URL.Path]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if b.withCID {
			w.Header().Set("x-amz-meta-cid", "bafys3cid")
		}
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newS3Test(t *testing.T, withCID bool) (*S3Store, *fakeIPFSBucket) {
	t.Helper()
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	bucket := &fakeIPFSBucket{objects: map[string][]byte{}, withCID: withCID}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	store, err := NewS3Store(context.Background(), S3Config{
		Endpoint:  srv.URL,
		Bucket:    "quill",
		Region:    "us-east-1",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	return store, bucket
}

func TestS3Store_PutReturnsCIDFromMetadata(t *testing.T) {
	store, bucket := newS3Test(t, true)

	cid, err := store.Put(context.Background(), "doc.html", []byte("<b>x</b>"))
	require.NoError(t, err)
	assert.Equal(t, "bafys3cid", cid)

	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	assert.Contains(t, bucket.objects, "/quill/doc.html")
}

func TestS3Store_MissingCID(t *testing.T) {
	store, _ := newS3Test(t, false)

	_, err := store.Put(context.Background(), "doc.html", []byte("x"))
	assert.ErrorIs(t, err, ErrMissingCID)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Contains(t, contentType("a.html"), "text/html")
	assert.Equal(t, "application/octet-stream", contentType("noext"))
}

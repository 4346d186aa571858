package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()
	key := "images/a.png"

	ok, err := b.Stat(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Write(ctx, key, []byte("content"), "image/png"))
	ok, err = b.Stat(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := b.Open(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, []byte("content"), got)

	require.NoError(t, b.Remove(ctx, key))
	ok, err = b.Stat(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalBackend(t *testing.T) {
	b, err := NewLocalBackend(filepath.Join(t.TempDir(), "public"))
	require.NoError(t, err)
	exerciseBackend(t, b)
}

func TestLocalBackend_RemoveMissingFails(t *testing.T) {
	b, err := NewLocalBackend(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, b.Remove(context.Background(), "images/none.png"))
}

func TestBoltBackend(t *testing.T) {
	b, err := NewBoltBackend(filepath.Join(t.TempDir(), "assets.db"))
	require.NoError(t, err)
	defer b.Close()
	exerciseBackend(t, b)

	_, err = b.Open(context.Background(), "images/none.png")
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestStoreOverBolt(t *testing.T) {
	b, err := NewBoltBackend(filepath.Join(t.TempDir(), "assets.db"))
	require.NoError(t, err)
	defer b.Close()

	store := NewStore(b)
	ctx := context.Background()
	ref, err := store.Put(ctx, Upload{Data: pngOfSize(512)})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, ref))
	assert.NoError(t, store.Reclaim(ctx, ref, MissingIsSuccess))
}

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*in.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Backend(t *testing.T) {
	b := &S3Backend{client: &fakeS3{objects: map[string][]byte{}}, bucket: "wines"}
	exerciseBackend(t, b)

	_, err := b.Open(context.Background(), "images/none.png")
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestIsS3NotFound(t *testing.T) {
	assert.False(t, isS3NotFound(nil))
	assert.True(t, isS3NotFound(&types.NotFound{}))
	assert.True(t, isS3NotFound(&types.NoSuchKey{}))
	assert.False(t, isS3NotFound(errors.New("timeout")))
}

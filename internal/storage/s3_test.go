package storage

import (
	"bytes"
	"coachplus/coachlog/internal/config"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeS3 keeps objects in a map keyed by bucket/key.
type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3BlobStoreRoundTrip(t *testing.T) {
	fake := newFakeS3()
	store := newS3BlobStore(fake, "bucket", "coachlog")
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "savedSessions"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "savedSessions", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := fake.objects["bucket/coachlog/savedSessions.json"]; !ok {
		t.Fatalf("object stored under unexpected key: %v", fake.objects)
	}
	data, ok, err := store.Get(ctx, "savedSessions")
	if err != nil || !ok || string(data) != "[]" {
		t.Fatalf("get = %q, %v, %v", data, ok, err)
	}
	if err := store.Remove(ctx, "savedSessions"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "savedSessions"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestS3BlobStorePropagatesPutErrors(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("access denied")
	store := newS3BlobStore(fake, "bucket", "")
	if err := store.Set(context.Background(), "k", []byte("v")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestObjectKey(t *testing.T) {
	if got := ObjectKey("", "savedTemplates"); got != "savedTemplates.json" {
		t.Errorf("ObjectKey without prefix = %q", got)
	}
	if got := ObjectKey("team/a", "savedTemplates"); got != "team/a/savedTemplates.json" {
		t.Errorf("ObjectKey with prefix = %q", got)
	}
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		cfg  config.S3Config
		want string
	}{
		{config.S3Config{Endpoint: "localhost:9000"}, "http://localhost:9000"},
		{config.S3Config{Endpoint: "minio.internal:9000", UseSSL: true}, "https://minio.internal:9000"},
		{config.S3Config{Endpoint: "http://localhost:9000", UseSSL: true}, "http://localhost:9000"},
	}
	for _, tt := range tests {
		if got := endpointURL(tt.cfg); got != tt.want {
			t.Errorf("endpointURL(%+v) = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}

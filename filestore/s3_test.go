package filestore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

var fixedNow = time.UnixMilli(1714521600123)

func TestObjectName(t *testing.T) {
	tests := map[string]string{
		"photo.png":          "1714521600123_photo.png",
		"봄 소풍 사진.jpg":        "1714521600123_봄_소풍_사진.jpg",
		"C:\\Users\\me\\a b": "1714521600123_a_b",
		"../../etc/passwd":   "1714521600123_passwd",
		"":                   "1714521600123_file",
	}
	for in, want := range tests {
		assert.Equal(t, want, ObjectName(fixedNow, in), in)
	}
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakeS3{}
	store := newS3Store(fake, S3Config{
		Bucket:        "board",
		BasePath:      "uploads",
		Region:        "ap-northeast-2",
		PublicBaseURL: "https://cdn.example/",
	})
	store.now = func() time.Time { return fixedNow }

	url, err := store.Put(context.Background(), "현장 학습.png", strings.NewReader("PNGDATA"), 7, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "board", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "uploads/1714521600123_현장_학습.png", aws.ToString(fake.input.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, int64(7), aws.ToInt64(fake.input.ContentLength))
	assert.Equal(t, "PNGDATA", fake.body)
	assert.Equal(t, "https://cdn.example/uploads/1714521600123_%ED%98%84%EC%9E%A5_%ED%95%99%EC%8A%B5.png", url)
}

func TestS3Store_PutError(t *testing.T) {
	store := newS3Store(&fakeS3{err: errors.New("access denied")}, S3Config{Bucket: "board"})

	_, err := store.Put(context.Background(), "a.txt", strings.NewReader("x"), 1, "")
	assert.ErrorContains(t, err, "access denied")
}

func TestS3Store_PublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{"aws default", S3Config{Bucket: "board", Region: "ap-northeast-2"}, "https://board.s3.ap-northeast-2.amazonaws.com/k/a.png"},
		{"path style endpoint", S3Config{Bucket: "board", Endpoint: "http://localhost:9000/", UsePathStyle: true}, "http://localhost:9000/board/k/a.png"},
		{"virtual host endpoint", S3Config{Bucket: "board", Endpoint: "https://objects.example"}, "https://board.objects.example/k/a.png"},
		{"public base", S3Config{Bucket: "board", PublicBaseURL: "https://cdn.example"}, "https://cdn.example/k/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newS3Store(&fakeS3{}, tt.cfg).PublicURL("k/a.png"))
		})
	}
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{Region: "ap-northeast-2"})
	assert.Error(t, err)
}

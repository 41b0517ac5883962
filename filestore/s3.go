package filestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobStore accepts uploaded files and returns their public address.
type BlobStore interface {
	Put(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error)
}

// s3PutAPI is the subset of the S3 client the relay needs.
type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3 connection configuration
type S3Config struct {
	Bucket        string
	BasePath      string
	Region        string
	Endpoint      string // for S3-compatible services like MinIO
	PublicBaseURL string
	UsePathStyle  bool
}

// S3Store uploads files to an S3 bucket.
type S3Store struct {
	client s3PutAPI
	cfg    S3Config
	now    func() time.Time
}

// NewS3Store creates a new S3 upload relay using the default AWS credential chain.
func NewS3Store(ctx context.Context, s3Config S3Config) (*S3Store, error) {
	if s3Config.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not configured")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s3Config.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if s3Config.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(s3Config.Endpoint)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = s3Config.UsePathStyle
	})
	return newS3Store(client, s3Config), nil
}

func newS3Store(client s3PutAPI, cfg S3Config) *S3Store {
	return &S3Store{client: client, cfg: cfg, now: time.Now}
}

// Put stores the file under a timestamped key and returns its public URL.
func (s *S3Store) Put(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error) {
	key := s.key(ObjectName(s.now(), filename))

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// PublicURL returns the address a browser can load key from.
func (s *S3Store) PublicURL(key string) string {
	escaped := escapeKey(key)
	if base := strings.TrimRight(s.cfg.PublicBaseURL, "/"); base != "" {
		return base + "/" + escaped
	}
	if s.cfg.Endpoint != "" {
		ep := strings.TrimRight(s.cfg.Endpoint, "/")
		if s.cfg.UsePathStyle {
			return ep + "/" + s.cfg.Bucket + "/" + escaped
		}
		if u, err := url.Parse(ep); err == nil && u.Host != "" {
			u.Host = s.cfg.Bucket + "." + u.Host
			return strings.TrimRight(u.String(), "/") + "/" + escaped
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, escaped)
}

// key constructs the full S3 key from the object name
func (s *S3Store) key(name string) string {
	return strings.TrimPrefix(path.Join(s.cfg.BasePath, name), "/")
}

// ObjectName prefixes the upload's base name with a millisecond timestamp and
// replaces whitespace with underscores.
func ObjectName(now time.Time, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	base = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, base)
	return strconv.FormatInt(now.UnixMilli(), 10) + "_" + base
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

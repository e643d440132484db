package payload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"doc2file/internal/config"
	"doc2file/internal/convert"
)

// S3Store keeps payloads as S3 objects keyed by checksum (under an optional
// prefix). Uploads use the transfer manager so large payloads go multipart.
// Since the key is the content checksum, re-uploading an existing key writes
// identical bytes, which keeps Put idempotent without a pre-check.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewS3Store creates a payload store over the configured bucket. Credentials
// come from the standard AWS chain unless static ones are configured.
func NewS3Store(cfg config.PayloadConfig) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3_bucket required for s3 payload store")
	}

	ctx := context.Background()
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3Bucket,
		prefix:   strings.Trim(cfg.S3Prefix, "/"),
	}, nil
}

// key returns the object key for a checksum, applying the prefix if set.
// The prefix is applied at access time and never persisted.
func (s *S3Store) key(checksum string) string {
	if s.prefix != "" {
		return s.prefix + "/" + checksum
	}
	return checksum
}

// Put stores a payload under its checksum.
func (s *S3Store) Put(checksum string, r io.Reader, size int64) error {
	key := s.key(checksum)
	_, err := s.uploader.Upload(context.Background(), &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("uploading payload %s: %w", checksum, err)
	}
	return nil
}

// Get retrieves a payload by checksum and writes it to w.
func (s *S3Store) Get(checksum string, w io.Writer) error {
	key := s.key(checksum)
	resp, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return fmt.Errorf("payload not found: %s", checksum)
		}
		return fmt.Errorf("downloading payload %s: %w", checksum, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("reading payload %s: %w", checksum, err)
	}
	return nil
}

// ValidateSetup verifies the bucket is reachable.
func (s *S3Store) ValidateSetup() error {
	_, err := s.client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: &s.bucket,
	})
	if err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", s.bucket, err)
	}
	return nil
}

// Compile-time check that S3Store implements convert.PayloadStore
var _ convert.PayloadStore = (*S3Store)(nil)

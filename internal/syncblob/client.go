package syncblob

import (
	"bytes"
	"context"
	"errors"
	"io"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"bakeshop/m/internal/config"
)

// ErrNotConfigured is returned when no remote bucket/key is set up;
// callers surface a message and carry on with local state only.
var ErrNotConfigured = errors.New("remote sync is not configured")

// API is the slice of the S3 client the gateway needs: whole-object
// put and get against one bucket.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Client syncs the full dataset against a single object in an
// S3-compatible store. Push replaces the whole document, Pull fetches
// the latest; there is no merge and no retry.
type Client struct {
	api    API
	bucket string
	key    string
}

// New builds a Client from sync configuration.
func New(ctx context.Context, cfg config.SyncConfig) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Client{api: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

// NewWithAPI constructs a Client over an existing API, mostly for tests.
func NewWithAPI(api API, bucket, key string) *Client {
	return &Client{api: api, bucket: bucket, key: key}
}

// Push replaces the remote document with data.
func (c *Client) Push(ctx context.Context, data []byte) error {
	contentType := "application/json"
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &c.key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	return err
}

// Pull fetches the latest remote document.
func (c *Client) Pull(ctx context.Context) ([]byte, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{Bucket: &c.bucket, Key: &c.key})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

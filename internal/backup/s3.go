// Package backup pushes export snapshots to an S3-compatible bucket and pulls
// them back for import.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pablasso/planbook/internal/config"
)

// ErrNoBackup is returned by Pull when the bucket holds no snapshot yet.
var ErrNoBackup = errors.New("no backup found")

// objectAPI is the subset of *s3.Client the backup uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Client stores a single snapshot object at bucket/key.
type Client struct {
	api    objectAPI
	bucket string
	key    string
}

// New creates a client from cfg. Credentials come from the default AWS chain
// (environment, shared config, instance role).
func New(ctx context.Context, cfg config.BackupConfig) (*Client, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("backup.s3_bucket is not configured")
	}
	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3PathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})
	return newClient(client, cfg.S3Bucket, cfg.S3Key), nil
}

func newClient(api objectAPI, bucket, key string) *Client {
	if key == "" {
		key = "planbook/export.json"
	}
	return &Client{api: api, bucket: bucket, key: key}
}

// Location returns the s3:// URL of the snapshot object.
func (c *Client) Location() string {
	return fmt.Sprintf("s3://%s/%s", c.bucket, c.key)
}

// Push uploads data, replacing any previous snapshot.
func (c *Client) Push(ctx context.Context, data []byte) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(c.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", c.Location(), err)
	}
	return nil
}

// Pull downloads the snapshot. It returns ErrNoBackup when the object does
// not exist.
func (c *Client) Pull(ctx context.Context) ([]byte, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w at %s", ErrNoBackup, c.Location())
		}
		return nil, fmt.Errorf("failed to download %s: %w", c.Location(), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Location(), err)
	}
	return data, nil
}

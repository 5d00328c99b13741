// Package publish uploads rendered images to S3-compatible object storage.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// S3Publisher uploads objects to a single bucket
type S3Publisher struct {
	client   s3iface.S3API
	bucket   string
	prefix   string
	endpoint string
	region   string
	logger   core.Logger
}

// NewS3Publisher creates a publisher from the S3 settings in cfg. Static
// credentials are used when an access key is configured; otherwise the SDK's
// default credential chain applies.
func NewS3Publisher(cfg config.Config, logger core.Logger) (*S3Publisher, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}
	if cfg.S3Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.S3Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3PublisherWithClient(s3.New(sess), cfg, logger), nil
}

// NewS3PublisherWithClient creates a publisher around an existing client
func NewS3PublisherWithClient(client s3iface.S3API, cfg config.Config, logger core.Logger) *S3Publisher {
	return &S3Publisher{
		client:   client,
		bucket:   cfg.S3Bucket,
		prefix:   cfg.S3Prefix,
		endpoint: strings.TrimSuffix(cfg.S3Endpoint, "/"),
		region:   cfg.S3Region,
		logger:   logger,
	}
}

// Publish uploads data under the configured prefix and returns the object URL
func (p *S3Publisher) Publish(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key must not be empty")
	}
	fullKey := p.objectKey(key)

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(fullKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}

	if p.logger != nil {
		p.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", fullKey, p.bucket, size)
	}
	return p.objectURL(fullKey), nil
}

func (p *S3Publisher) objectKey(key string) string {
	if p.prefix == "" {
		return key
	}
	return path.Join(p.prefix, key)
}

func (p *S3Publisher) objectURL(key string) string {
	if p.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", p.endpoint, p.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}

package publisher

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Publisher uploads a sitemap and returns its public URL.
type Publisher interface {
	Publish(ctx context.Context, name string, xml []byte) (string, error)
}

// S3API is the subset of the S3 client used by S3Publisher.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config configures the S3 publisher.
type Config struct {
	Bucket string
	Region string
	Prefix string
	// PublicBaseURL is prepended to the object key in returned URLs. When
	// empty the virtual-hosted S3 URL is used.
	PublicBaseURL string
}

// S3Publisher writes sitemaps to an S3 bucket.
type S3Publisher struct {
	client S3API
	cfg    Config
}

// NewS3Publisher loads AWS credentials from the default chain.
func NewS3Publisher(ctx context.Context, cfg Config) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("SITEMAP_S3_BUCKET is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = awsCfg.Region
	}

	return NewS3PublisherWithClient(s3.NewFromConfig(awsCfg), cfg), nil
}

// NewS3PublisherWithClient uses an existing client.
func NewS3PublisherWithClient(client S3API, cfg Config) *S3Publisher {
	return &S3Publisher{client: client, cfg: cfg}
}

// Publish uploads xml under <prefix>/<name>.xml.
func (p *S3Publisher) Publish(ctx context.Context, name string, xml []byte) (string, error) {
	key := p.objectKey(name)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(xml),
		ContentType:  aws.String("application/xml; charset=utf-8"),
		CacheControl: aws.String("public, max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("put sitemap %s: %w", key, err)
	}

	return p.publicURL(key), nil
}

func (p *S3Publisher) objectKey(name string) string {
	name = strings.TrimSuffix(strings.Trim(name, "/"), ".xml")
	if name == "" {
		name = "sitemap"
	}
	key := name + ".xml"
	if prefix := strings.Trim(p.cfg.Prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

func (p *S3Publisher) publicURL(key string) string {
	if base := strings.TrimRight(p.cfg.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}
	if p.cfg.Region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", p.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.cfg.Bucket, p.cfg.Region, key)
}

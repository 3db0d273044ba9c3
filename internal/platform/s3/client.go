package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// maxDeleteBatch is the maximum number of keys a DeleteObjects call accepts.
const maxDeleteBatch = 1000

// Client wraps the S3 client.
type Client struct {
	s3     *s3.Client
	region string
}

// NewClient creates a new S3 client. An empty endpoint uses AWS; any other
// endpoint is addressed path-style, as most S3-compatible stores expect.
// Without an access key the default AWS credential chain is used.
func NewClient(endpoint, region, accessKey, secretKey string) (*Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{s3: client, region: region}, nil
}

// ListObjects lists every object key in a bucket under prefix.
func (c *Client) ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error) {
	var keys []string
	err := c.eachPage(ctx, bucketName, prefix, func(page []string) error {
		keys = append(keys, page...)
		return nil
	})
	return keys, err
}

// DeleteObjects deletes keys from a bucket, in batches of at most 1000.
// It returns the number of objects deleted, which is accurate even when an
// error is returned.
func (c *Client) DeleteObjects(ctx context.Context, bucketName string, keys []string) (int, error) {
	deleted := 0
	for start := 0; start < len(keys); start += maxDeleteBatch {
		end := min(start+maxDeleteBatch, len(keys))
		n, err := c.deleteBatch(ctx, bucketName, keys[start:end])
		deleted += n
		if err != nil {
			return deleted, err
		}
	}
	return deleted, nil
}

// PurgePrefix deletes every object under prefix and returns how many were
// deleted. A missing bucket has nothing to purge.
func (c *Client) PurgePrefix(ctx context.Context, bucketName, prefix string) (int, error) {
	if prefix == "" {
		return 0, errors.New("refusing to purge a bucket without a prefix")
	}

	deleted := 0
	err := c.eachPage(ctx, bucketName, prefix, func(page []string) error {
		n, err := c.DeleteObjects(ctx, bucketName, page)
		deleted += n
		return err
	})
	if err != nil && isNotFoundError(err) {
		return deleted, nil
	}
	return deleted, err
}

// eachPage calls fn with the keys of every ListObjectsV2 page under prefix.
func (c *Client) eachPage(ctx context.Context, bucketName, prefix string, fn func(keys []string) error) error {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucketName),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(c.s3, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list objects in bucket %s: %w", bucketName, err)
		}

		keys := make([]string, 0, len(page.Contents))
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
		if len(keys) == 0 {
			continue
		}
		if err := fn(keys); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) deleteBatch(ctx context.Context, bucketName string, keys []string) (int, error) {
	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}

	out, err := c.s3.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucketName),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete objects from bucket %s: %w", bucketName, err)
	}

	// Quiet mode only reports the keys that failed.
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return len(keys) - len(out.Errors), fmt.Errorf("failed to delete %d objects from bucket %s, first %s: %s",
			len(out.Errors), bucketName, aws.ToString(first.Key), aws.ToString(first.Message))
	}
	return len(keys), nil
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	// Check for typed S3 errors first
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket" || code == "404"
	}

	return false
}

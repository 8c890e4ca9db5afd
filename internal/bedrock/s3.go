package bedrock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/arn"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

// UploadDocument uploads a local file into the given bucket through the
// managed uploader, which switches to multipart transfer for large files.
// The object key defaults to the file's base name.
func (c *Clients) UploadDocument(ctx context.Context, bucketARN, filePath, key string) (*Upload, error) {
	if key == "" {
		key = filepath.Base(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, validate.Errorf("File not found: %s", filePath)
		}
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()

	bucket := arn.BucketNameFromARN(bucketARN)
	uploader := manager.NewUploader(c.S3)
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	}); err != nil {
		c.log().Error("upload document failed", "bucket", bucket, "key", key, "error", err)
		return nil, err
	}

	uri := fmt.Sprintf("s3://%s/%s", bucket, key)
	c.log().Info("uploaded document", "bucket", bucket, "key", key)
	return &Upload{S3URI: uri, Status: "UPLOADED"}, nil
}

// ListDocuments returns the objects under the given prefix, draining the
// paginator. An empty prefix lists the whole bucket.
func (c *Clients) ListDocuments(ctx context.Context, bucketARN, prefix string) ([]Document, error) {
	bucket := arn.BucketNameFromARN(bucketARN)

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var documents []Document
	paginator := s3.NewListObjectsV2Paginator(c.S3, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			c.log().Error("list documents failed", "bucket", bucket, "error", err)
			return nil, err
		}
		for _, object := range page.Contents {
			documents = append(documents, Document{
				Key:          aws.ToString(object.Key),
				Size:         aws.ToInt64(object.Size),
				LastModified: object.LastModified,
			})
		}
	}

	c.log().Info("listed documents", "bucket", bucket, "count", len(documents))
	return documents, nil
}

// CreateBucket creates an S3 bucket in the given region and blocks all
// public access on it. The region may differ from the default client
// region; it is applied per call.
func (c *Clients) CreateBucket(ctx context.Context, name, region string) (*Bucket, error) {
	withRegion := func(o *s3.Options) { o.Region = region }

	input := &s3.CreateBucketInput{
		Bucket: aws.String(name),
	}
	// us-east-1 rejects an explicit location constraint.
	if region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}

	if _, err := c.S3.CreateBucket(ctx, input, withRegion); err != nil {
		c.log().Error("create bucket failed", "bucket", name, "region", region, "error", err)
		return nil, err
	}

	if _, err := c.S3.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(name),
		PublicAccessBlockConfiguration: &s3types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(true),
			BlockPublicPolicy:     aws.Bool(true),
			IgnorePublicAcls:      aws.Bool(true),
			RestrictPublicBuckets: aws.Bool(true),
		},
	}, withRegion); err != nil {
		c.log().Error("block public access failed", "bucket", name, "error", err)
		return nil, err
	}

	c.log().Info("created bucket", "bucket", name, "region", region)
	return &Bucket{
		Name:   name,
		Region: region,
		ARN:    "arn:aws:s3:::" + name,
		Status: "CREATED",
	}, nil
}

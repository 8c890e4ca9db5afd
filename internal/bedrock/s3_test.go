package bedrock_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

// fakeS3 implements bedrock.S3API with per-method hooks. The multipart
// methods are never reached by these tests.
type fakeS3 struct {
	putObject    func(*s3.PutObjectInput) (*s3.PutObjectOutput, error)
	listObjects  func(*s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
	createBucket func(*s3.CreateBucketInput, []func(*s3.Options)) (*s3.CreateBucketOutput, error)
	putPAB       func(*s3.PutPublicAccessBlockInput) (*s3.PutPublicAccessBlockOutput, error)
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putObject == nil {
		return nil, errUnexpectedCall
	}
	return f.putObject(params)
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listObjects == nil {
		return nil, errUnexpectedCall
	}
	return f.listObjects(params)
}

func (f *fakeS3) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	if f.createBucket == nil {
		return nil, errUnexpectedCall
	}
	return f.createBucket(params, optFns)
}

func (f *fakeS3) PutPublicAccessBlock(ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error) {
	if f.putPAB == nil {
		return nil, errUnexpectedCall
	}
	return f.putPAB(params)
}

func (f *fakeS3) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errUnexpectedCall
}

func (f *fakeS3) UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errUnexpectedCall
}

func (f *fakeS3) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errUnexpectedCall
}

func (f *fakeS3) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errUnexpectedCall
}

func TestUploadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("document body"), 0644))

	var gotBucket, gotKey, gotBody string
	clients := &bedrock.Clients{
		S3: &fakeS3{
			putObject: func(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
				gotBucket = aws.ToString(input.Bucket)
				gotKey = aws.ToString(input.Key)
				body, err := io.ReadAll(input.Body)
				require.NoError(t, err)
				gotBody = string(body)
				return &s3.PutObjectOutput{}, nil
			},
		},
	}

	t.Run("key defaults to file name", func(t *testing.T) {
		record, err := clients.UploadDocument(context.Background(), "arn:aws:s3:::docs", path, "")
		require.NoError(t, err)
		assert.Equal(t, "s3://docs/report.pdf", record.S3URI)
		assert.Equal(t, "UPLOADED", record.Status)
		assert.Equal(t, "docs", gotBucket)
		assert.Equal(t, "report.pdf", gotKey)
		assert.Equal(t, "document body", gotBody)
	})

	t.Run("explicit key", func(t *testing.T) {
		record, err := clients.UploadDocument(context.Background(), "arn:aws:s3:::docs", path, "reports/2026/q3.pdf")
		require.NoError(t, err)
		assert.Equal(t, "s3://docs/reports/2026/q3.pdf", record.S3URI)
		assert.Equal(t, "reports/2026/q3.pdf", gotKey)
	})

	t.Run("missing file is a caller error", func(t *testing.T) {
		_, err := clients.UploadDocument(context.Background(), "arn:aws:s3:::docs", filepath.Join(dir, "absent.pdf"), "")
		require.Error(t, err)
		var inputErr *validate.Error
		assert.ErrorAs(t, err, &inputErr)
	})
}

func TestListDocumentsDrainsPaginator(t *testing.T) {
	calls := 0
	clients := &bedrock.Clients{
		S3: &fakeS3{
			listObjects: func(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
				calls++
				assert.Equal(t, "docs", aws.ToString(input.Bucket))
				assert.Equal(t, "reports/", aws.ToString(input.Prefix))
				if input.ContinuationToken == nil {
					return &s3.ListObjectsV2Output{
						Contents: []s3types.Object{
							{Key: aws.String("reports/a.pdf"), Size: aws.Int64(100)},
						},
						IsTruncated:           aws.Bool(true),
						NextContinuationToken: aws.String("page2"),
					}, nil
				}
				return &s3.ListObjectsV2Output{
					Contents: []s3types.Object{
						{Key: aws.String("reports/b.pdf"), Size: aws.Int64(200)},
					},
					IsTruncated: aws.Bool(false),
				}, nil
			},
		},
	}

	documents, err := clients.ListDocuments(context.Background(), "arn:aws:s3:::docs", "reports/")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, documents, 2)
	assert.Equal(t, "reports/a.pdf", documents[0].Key)
	assert.Equal(t, int64(200), documents[1].Size)
}

func TestCreateBucket(t *testing.T) {
	t.Run("us-east-1 omits location constraint", func(t *testing.T) {
		var created *s3.CreateBucketInput
		var blocked *s3.PutPublicAccessBlockInput
		clients := &bedrock.Clients{
			Region: "us-east-1",
			S3: &fakeS3{
				createBucket: func(input *s3.CreateBucketInput, optFns []func(*s3.Options)) (*s3.CreateBucketOutput, error) {
					created = input
					return &s3.CreateBucketOutput{}, nil
				},
				putPAB: func(input *s3.PutPublicAccessBlockInput) (*s3.PutPublicAccessBlockOutput, error) {
					blocked = input
					return &s3.PutPublicAccessBlockOutput{}, nil
				},
			},
		}

		record, err := clients.CreateBucket(context.Background(), "kb-docs", "us-east-1")
		require.NoError(t, err)
		assert.Equal(t, "kb-docs", record.Name)
		assert.Equal(t, "arn:aws:s3:::kb-docs", record.ARN)
		assert.Equal(t, "CREATED", record.Status)

		require.NotNil(t, created)
		assert.Nil(t, created.CreateBucketConfiguration)

		require.NotNil(t, blocked)
		cfg := blocked.PublicAccessBlockConfiguration
		require.NotNil(t, cfg)
		assert.True(t, aws.ToBool(cfg.BlockPublicAcls))
		assert.True(t, aws.ToBool(cfg.BlockPublicPolicy))
		assert.True(t, aws.ToBool(cfg.IgnorePublicAcls))
		assert.True(t, aws.ToBool(cfg.RestrictPublicBuckets))
	})

	t.Run("other regions set location constraint and override region", func(t *testing.T) {
		var created *s3.CreateBucketInput
		var capturedOptFns []func(*s3.Options)
		clients := &bedrock.Clients{
			Region: "us-east-1",
			S3: &fakeS3{
				createBucket: func(input *s3.CreateBucketInput, optFns []func(*s3.Options)) (*s3.CreateBucketOutput, error) {
					created = input
					capturedOptFns = optFns
					return &s3.CreateBucketOutput{}, nil
				},
				putPAB: func(input *s3.PutPublicAccessBlockInput) (*s3.PutPublicAccessBlockOutput, error) {
					return &s3.PutPublicAccessBlockOutput{}, nil
				},
			},
		}

		record, err := clients.CreateBucket(context.Background(), "kb-docs-eu", "eu-west-1")
		require.NoError(t, err)
		assert.Equal(t, "eu-west-1", record.Region)

		require.NotNil(t, created)
		require.NotNil(t, created.CreateBucketConfiguration)
		assert.Equal(t, s3types.BucketLocationConstraint("eu-west-1"), created.CreateBucketConfiguration.LocationConstraint)

		require.Len(t, capturedOptFns, 1)
		opts := s3.Options{Region: "us-east-1"}
		capturedOptFns[0](&opts)
		assert.Equal(t, "eu-west-1", opts.Region)
	})
}

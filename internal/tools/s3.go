package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/arn"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

// bucketARNFrom accepts a plain bucket name, an arn:aws:s3::: ARN or an
// s3:// URI and returns the ARN form.
func bucketARNFrom(value string) (string, error) {
	if strings.HasPrefix(value, "arn:aws:s3:::") || strings.HasPrefix(value, "s3://") {
		return arn.NormalizeS3(value)
	}
	return "arn:aws:s3:::" + value, nil
}

// UploadDocumentInput defines the input schema for upload_document_to_s3.
type UploadDocumentInput struct {
	LocalFilePath string `json:"local_file_path" jsonschema:"required,Path of the local file to upload"`
	BucketName    string `json:"bucket_name" jsonschema:"required,Target bucket name or ARN or s3:// URI"`
	S3Key         string `json:"s3_key,omitempty" jsonschema:"Object key (defaults to the file name)"`
}

// NewUploadDocumentHandler creates the upload_document_to_s3 handler.
func NewUploadDocumentHandler(deps *Dependencies) mcp.ToolHandlerFor[UploadDocumentInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UploadDocumentInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "upload_document_to_s3", func() (*bedrock.Upload, error) {
			filePath, err := validate.RequiredString(input.LocalFilePath, "local_file_path")
			if err != nil {
				return nil, err
			}
			bucketValue, err := validate.RequiredString(input.BucketName, "bucket_name")
			if err != nil {
				return nil, err
			}
			bucketARN, err := bucketARNFrom(bucketValue)
			if err != nil {
				return nil, err
			}
			return deps.Bedrock.UploadDocument(ctx, bucketARN, filePath, strings.TrimSpace(input.S3Key))
		})
	}
}

// ListDocumentsInput defines the input schema for list_s3_documents.
type ListDocumentsInput struct {
	BucketName string `json:"bucket_name" jsonschema:"required,Bucket name or ARN or s3:// URI"`
	Prefix     string `json:"prefix,omitempty" jsonschema:"Object key prefix filter"`
}

type documentList struct {
	Count     int                `json:"count"`
	Bucket    string             `json:"bucket"`
	Prefix    string             `json:"prefix,omitempty"`
	Documents []bedrock.Document `json:"documents"`
}

// NewListDocumentsHandler creates the list_s3_documents handler.
func NewListDocumentsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListDocumentsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDocumentsInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "list_s3_documents", func() (documentList, error) {
			bucketValue, err := validate.RequiredString(input.BucketName, "bucket_name")
			if err != nil {
				return documentList{}, err
			}
			bucketARN, err := bucketARNFrom(bucketValue)
			if err != nil {
				return documentList{}, err
			}

			documents, err := deps.Bedrock.ListDocuments(ctx, bucketARN, strings.TrimSpace(input.Prefix))
			if err != nil {
				return documentList{}, err
			}
			if documents == nil {
				documents = []bedrock.Document{}
			}
			return documentList{
				Count:     len(documents),
				Bucket:    arn.BucketNameFromARN(bucketARN),
				Prefix:    strings.TrimSpace(input.Prefix),
				Documents: documents,
			}, nil
		})
	}
}

// CreateBucketInput defines the input schema for create_s3_bucket.
type CreateBucketInput struct {
	BucketName string `json:"bucket_name" jsonschema:"required,Bucket name (3-63 characters per the S3 naming rules)"`
	Region     string `json:"region,omitempty" jsonschema:"AWS region for the bucket (default us-east-1)"`
}

// NewCreateBucketHandler creates the create_s3_bucket handler. The bucket
// is created with all public access blocked.
func NewCreateBucketHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateBucketInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateBucketInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "create_s3_bucket", func() (*bedrock.Bucket, error) {
			name, err := validate.BucketName(input.BucketName)
			if err != nil {
				return nil, err
			}
			region := validate.Region(input.Region, deps.Bedrock.Region)
			return deps.Bedrock.CreateBucket(ctx, name, region)
		})
	}
}

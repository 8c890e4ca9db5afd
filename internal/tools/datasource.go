package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/arn"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

// CreateDataSourceInput defines the input schema for create_data_source.
type CreateDataSourceInput struct {
	KnowledgeBaseID   string   `json:"knowledge_base_id" jsonschema:"required,Knowledge base id to attach to"`
	Name              string   `json:"name" jsonschema:"required,Data source name (1-100 characters)"`
	Description       string   `json:"description,omitempty" jsonschema:"Optional description"`
	SourceType        string   `json:"source_type,omitempty" jsonschema:"Source type (only S3 is supported)"`
	BucketARN         string   `json:"bucket_arn" jsonschema:"required,Source bucket as arn:aws:s3:::name or s3://name"`
	InclusionPrefixes []string `json:"inclusion_prefixes,omitempty" jsonschema:"Object key prefixes to include"`

	IngestionParams
}

// NewCreateDataSourceHandler creates the create_data_source handler.
func NewCreateDataSourceHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateDataSourceInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateDataSourceInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "create_data_source", func() (*bedrock.DataSource, error) {
			id, err := validate.RequiredString(input.KnowledgeBaseID, "knowledge_base_id")
			if err != nil {
				return nil, err
			}
			name, err := validate.Name(input.Name, "name")
			if err != nil {
				return nil, err
			}
			if input.SourceType != "" && input.SourceType != "S3" {
				return nil, validate.Errorf("Invalid source_type: %s. Only 'S3' is supported", input.SourceType)
			}
			bucketValue, err := validate.RequiredString(input.BucketARN, "bucket_arn")
			if err != nil {
				return nil, err
			}
			bucketARN, err := arn.NormalizeS3(bucketValue)
			if err != nil {
				return nil, err
			}
			ingestion, err := input.IngestionParams.spec()
			if err != nil {
				return nil, err
			}

			return deps.Bedrock.CreateDataSource(ctx, bedrock.CreateDataSourceParams{
				KnowledgeBaseID:   id,
				Name:              name,
				Description:       input.Description,
				BucketARN:         bucketARN,
				InclusionPrefixes: input.InclusionPrefixes,
				Ingestion:         ingestion,
			})
		})
	}
}

// ListDataSourcesInput defines the input schema for list_data_sources.
type ListDataSourcesInput struct {
	KnowledgeBaseID string `json:"knowledge_base_id" jsonschema:"required,Knowledge base id"`
}

type dataSourceList struct {
	Count       int                         `json:"count"`
	DataSources []bedrock.DataSourceSummary `json:"data_sources"`
}

// NewListDataSourcesHandler creates the list_data_sources handler.
func NewListDataSourcesHandler(deps *Dependencies) mcp.ToolHandlerFor[ListDataSourcesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDataSourcesInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "list_data_sources", func() (dataSourceList, error) {
			id, err := validate.RequiredString(input.KnowledgeBaseID, "knowledge_base_id")
			if err != nil {
				return dataSourceList{}, err
			}
			summaries, err := deps.Bedrock.ListDataSources(ctx, id)
			if err != nil {
				return dataSourceList{}, err
			}
			if summaries == nil {
				summaries = []bedrock.DataSourceSummary{}
			}
			return dataSourceList{Count: len(summaries), DataSources: summaries}, nil
		})
	}
}

// DeleteDataSourceInput defines the input schema for delete_data_source.
type DeleteDataSourceInput struct {
	KnowledgeBaseID string `json:"knowledge_base_id" jsonschema:"required,Knowledge base id"`
	DataSourceID    string `json:"data_source_id" jsonschema:"required,Data source id"`
}

// NewDeleteDataSourceHandler creates the delete_data_source handler.
func NewDeleteDataSourceHandler(deps *Dependencies) mcp.ToolHandlerFor[DeleteDataSourceInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteDataSourceInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "delete_data_source", func() (*bedrock.DataSource, error) {
			kbID, err := validate.RequiredString(input.KnowledgeBaseID, "knowledge_base_id")
			if err != nil {
				return nil, err
			}
			dsID, err := validate.RequiredString(input.DataSourceID, "data_source_id")
			if err != nil {
				return nil, err
			}
			return deps.Bedrock.DeleteDataSource(ctx, kbID, dsID)
		})
	}
}

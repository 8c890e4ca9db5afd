package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

// StartIngestionJobInput defines the input schema for start_ingestion_job.
type StartIngestionJobInput struct {
	KnowledgeBaseID string `json:"knowledge_base_id" jsonschema:"required,Knowledge base id"`
	DataSourceID    string `json:"data_source_id" jsonschema:"required,Data source id to synchronize"`
	Description     string `json:"description,omitempty" jsonschema:"Optional job description"`
}

// NewStartIngestionJobHandler creates the start_ingestion_job handler.
// The job runs asynchronously; poll get_ingestion_job for completion.
func NewStartIngestionJobHandler(deps *Dependencies) mcp.ToolHandlerFor[StartIngestionJobInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StartIngestionJobInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "start_ingestion_job", func() (*bedrock.IngestionJob, error) {
			kbID, err := validate.RequiredString(input.KnowledgeBaseID, "knowledge_base_id")
			if err != nil {
				return nil, err
			}
			dsID, err := validate.RequiredString(input.DataSourceID, "data_source_id")
			if err != nil {
				return nil, err
			}
			return deps.Bedrock.StartIngestionJob(ctx, kbID, dsID, input.Description)
		})
	}
}

// GetIngestionJobInput defines the input schema for get_ingestion_job.
type GetIngestionJobInput struct {
	KnowledgeBaseID string `json:"knowledge_base_id" jsonschema:"required,Knowledge base id"`
	DataSourceID    string `json:"data_source_id" jsonschema:"required,Data source id"`
	IngestionJobID  string `json:"ingestion_job_id" jsonschema:"required,Ingestion job id"`
}

// NewGetIngestionJobHandler creates the get_ingestion_job handler.
func NewGetIngestionJobHandler(deps *Dependencies) mcp.ToolHandlerFor[GetIngestionJobInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetIngestionJobInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "get_ingestion_job", func() (*bedrock.IngestionJob, error) {
			kbID, err := validate.RequiredString(input.KnowledgeBaseID, "knowledge_base_id")
			if err != nil {
				return nil, err
			}
			dsID, err := validate.RequiredString(input.DataSourceID, "data_source_id")
			if err != nil {
				return nil, err
			}
			jobID, err := validate.RequiredString(input.IngestionJobID, "ingestion_job_id")
			if err != nil {
				return nil, err
			}
			return deps.Bedrock.GetIngestionJob(ctx, kbID, dsID, jobID)
		})
	}
}

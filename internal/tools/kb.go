package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/arn"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/kbspec"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

// CreateKnowledgeBaseInput defines the input schema for create_knowledge_base.
type CreateKnowledgeBaseInput struct {
	Name                   string `json:"name" jsonschema:"required,Knowledge base name (1-100 characters)"`
	Description            string `json:"description" jsonschema:"required,Knowledge base description"`
	RoleARN                string `json:"role_arn" jsonschema:"required,IAM service role as arn:aws:iam::ACCOUNT:role/NAME or role/NAME shorthand"`
	StorageType            string `json:"storage_type,omitempty" jsonschema:"Storage type S3 or S3_VECTORS (default S3)"`
	BucketARN              string `json:"bucket_arn" jsonschema:"required,Storage bucket as arn:aws:s3:::name or s3://name"`
	EmbeddingModelARN      string `json:"embedding_model_arn,omitempty" jsonschema:"Embedding model ARN (required for S3_VECTORS)"`
	Region                 string `json:"region,omitempty" jsonschema:"AWS region override for this call"`
	MultimodalStorageS3URI string `json:"multimodal_storage_s3_uri,omitempty" jsonschema:"s3:// URI for supplemental multimodal data storage"`

	IngestionParams
}

// IngestionParams are the flat parsing and chunking parameters shared by
// create_knowledge_base and create_data_source.
type IngestionParams struct {
	ParsingStrategy             string `json:"parsing_strategy,omitempty" jsonschema:"BEDROCK_FOUNDATION_MODEL or BEDROCK_DATA_AUTOMATION"`
	ParsingModelARN             string `json:"parsing_model_arn,omitempty" jsonschema:"Parser model ARN (required for BEDROCK_FOUNDATION_MODEL)"`
	ParsingModality             string `json:"parsing_modality,omitempty" jsonschema:"Parsing modality such as MULTIMODAL"`
	ParsingPromptText           string `json:"parsing_prompt_text,omitempty" jsonschema:"Custom parsing prompt"`
	ChunkingStrategy            string `json:"chunking_strategy,omitempty" jsonschema:"FIXED_SIZE HIERARCHICAL SEMANTIC or NONE"`
	ChunkingMaxTokens           int    `json:"chunking_max_tokens,omitempty" jsonschema:"Max tokens per chunk (FIXED_SIZE and SEMANTIC)"`
	ChunkingOverlapPercentage   int    `json:"chunking_overlap_percentage,omitempty" jsonschema:"Chunk overlap percentage 0-100 (FIXED_SIZE)"`
	ChunkingOverlapTokens       int    `json:"chunking_overlap_tokens,omitempty" jsonschema:"Overlap tokens between layers (HIERARCHICAL)"`
	ChunkingBufferSize          int    `json:"chunking_buffer_size,omitempty" jsonschema:"Sentence buffer size (SEMANTIC)"`
	ChunkingBreakpointThreshold int    `json:"chunking_breakpoint_threshold,omitempty" jsonschema:"Breakpoint percentile threshold (SEMANTIC)"`
}

func (p IngestionParams) spec() (*kbspec.IngestionSpec, error) {
	return kbspec.ParseIngestionSpec(
		p.ParsingStrategy, p.ParsingModelARN, p.ParsingModality, p.ParsingPromptText,
		p.ChunkingStrategy, p.ChunkingMaxTokens, p.ChunkingOverlapPercentage,
		p.ChunkingOverlapTokens, p.ChunkingBufferSize, p.ChunkingBreakpointThreshold)
}

// NewCreateKnowledgeBaseHandler creates the create_knowledge_base handler.
func NewCreateKnowledgeBaseHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateKnowledgeBaseInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateKnowledgeBaseInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "create_knowledge_base", func() (*bedrock.KnowledgeBase, error) {
			name, err := validate.Name(input.Name, "name")
			if err != nil {
				return nil, err
			}
			description, err := validate.RequiredString(input.Description, "description")
			if err != nil {
				return nil, err
			}
			roleValue, err := validate.RequiredString(input.RoleARN, "role_arn")
			if err != nil {
				return nil, err
			}
			bucketValue, err := validate.RequiredString(input.BucketARN, "bucket_arn")
			if err != nil {
				return nil, err
			}

			storageType := input.StorageType
			if storageType == "" {
				storageType = string(kbspec.StorageS3)
			}
			mode, err := kbspec.ParseStorageMode(storageType)
			if err != nil {
				return nil, err
			}

			bucketARN, err := arn.NormalizeS3(bucketValue)
			if err != nil {
				return nil, err
			}
			roleARN, err := arn.NormalizeRole(ctx, roleValue, deps.Accounts)
			if err != nil {
				return nil, err
			}

			storage := kbspec.StorageSpec{
				Mode:                 mode,
				BucketARN:            bucketARN,
				EmbeddingModelARN:    input.EmbeddingModelARN,
				MultimodalStorageURI: input.MultimodalStorageS3URI,
			}
			if err := storage.Validate(); err != nil {
				return nil, err
			}

			// Ingestion configuration belongs to data sources. The parameters
			// are still validated here so the caller learns about a malformed
			// strategy before learning about the wrong tool.
			ingestion, err := input.IngestionParams.spec()
			if err != nil {
				return nil, err
			}
			if ingestion != nil {
				return nil, validate.Errorf("parsing and chunking configuration is applied per data source. " +
					"Pass these parameters to create_data_source instead")
			}

			return deps.Bedrock.CreateKnowledgeBase(ctx, bedrock.CreateKnowledgeBaseParams{
				Name:        name,
				Description: description,
				RoleARN:     roleARN,
				Storage:     storage,
				Region:      validate.Region(input.Region, deps.Bedrock.Region),
			})
		})
	}
}

// ListKnowledgeBasesInput defines the (empty) input schema for list_knowledge_bases.
type ListKnowledgeBasesInput struct{}

type knowledgeBaseList struct {
	Count          int                            `json:"count"`
	KnowledgeBases []bedrock.KnowledgeBaseSummary `json:"knowledge_bases"`
}

// NewListKnowledgeBasesHandler creates the list_knowledge_bases handler.
func NewListKnowledgeBasesHandler(deps *Dependencies) mcp.ToolHandlerFor[ListKnowledgeBasesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListKnowledgeBasesInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "list_knowledge_bases", func() (knowledgeBaseList, error) {
			summaries, err := deps.Bedrock.ListKnowledgeBases(ctx)
			if err != nil {
				return knowledgeBaseList{}, err
			}
			if summaries == nil {
				summaries = []bedrock.KnowledgeBaseSummary{}
			}
			return knowledgeBaseList{Count: len(summaries), KnowledgeBases: summaries}, nil
		})
	}
}

// GetKnowledgeBaseInput defines the input schema for get_knowledge_base.
type GetKnowledgeBaseInput struct {
	KnowledgeBaseID string `json:"knowledge_base_id" jsonschema:"required,Knowledge base id"`
}

// NewGetKnowledgeBaseHandler creates the get_knowledge_base handler.
func NewGetKnowledgeBaseHandler(deps *Dependencies) mcp.ToolHandlerFor[GetKnowledgeBaseInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetKnowledgeBaseInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "get_knowledge_base", func() (*bedrock.KnowledgeBaseDetail, error) {
			id, err := validate.RequiredString(input.KnowledgeBaseID, "knowledge_base_id")
			if err != nil {
				return nil, err
			}
			return deps.Bedrock.GetKnowledgeBase(ctx, id)
		})
	}
}

// UpdateKnowledgeBaseInput defines the input schema for update_knowledge_base.
type UpdateKnowledgeBaseInput struct {
	KnowledgeBaseID string `json:"knowledge_base_id" jsonschema:"required,Knowledge base id"`
	Name            string `json:"name,omitempty" jsonschema:"New name (1-100 characters)"`
	Description     string `json:"description,omitempty" jsonschema:"New description"`
	RoleARN         string `json:"role_arn,omitempty" jsonschema:"New IAM service role ARN or role/NAME shorthand"`
}

// NewUpdateKnowledgeBaseHandler creates the update_knowledge_base handler.
func NewUpdateKnowledgeBaseHandler(deps *Dependencies) mcp.ToolHandlerFor[UpdateKnowledgeBaseInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateKnowledgeBaseInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "update_knowledge_base", func() (*bedrock.KnowledgeBase, error) {
			id, err := validate.RequiredString(input.KnowledgeBaseID, "knowledge_base_id")
			if err != nil {
				return nil, err
			}
			if input.Name == "" && input.Description == "" && input.RoleARN == "" {
				return nil, validate.Errorf("at least one of name, description, or role_arn must be provided")
			}

			params := bedrock.UpdateKnowledgeBaseParams{ID: id, Description: input.Description}
			if input.Name != "" {
				params.Name, err = validate.Name(input.Name, "name")
				if err != nil {
					return nil, err
				}
			}
			if input.RoleARN != "" {
				params.RoleARN, err = arn.NormalizeRole(ctx, input.RoleARN, deps.Accounts)
				if err != nil {
					return nil, err
				}
			}

			return deps.Bedrock.UpdateKnowledgeBase(ctx, params)
		})
	}
}

// DeleteKnowledgeBaseInput defines the input schema for delete_knowledge_base.
type DeleteKnowledgeBaseInput struct {
	KnowledgeBaseID string `json:"knowledge_base_id" jsonschema:"required,Knowledge base id"`
}

// NewDeleteKnowledgeBaseHandler creates the delete_knowledge_base handler.
func NewDeleteKnowledgeBaseHandler(deps *Dependencies) mcp.ToolHandlerFor[DeleteKnowledgeBaseInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteKnowledgeBaseInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "delete_knowledge_base", func() (*bedrock.KnowledgeBase, error) {
			id, err := validate.RequiredString(input.KnowledgeBaseID, "knowledge_base_id")
			if err != nil {
				return nil, err
			}
			return deps.Bedrock.DeleteKnowledgeBase(ctx, id)
		})
	}
}

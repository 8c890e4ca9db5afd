package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

const defaultNumberOfResults = 5

// RetrieveInput defines the input schema for retrieve.
type RetrieveInput struct {
	KnowledgeBaseID string `json:"knowledge_base_id" jsonschema:"required,Knowledge base id to query"`
	Query           string `json:"query" jsonschema:"required,Natural language retrieval query"`
	NumberOfResults int    `json:"number_of_results,omitempty" jsonschema:"Max passages to return 1-100 (default 5)"`
}

// NewRetrieveHandler creates the retrieve handler. It runs a vector
// retrieval query against a knowledge base and returns ranked passages
// with their source location and score.
func NewRetrieveHandler(deps *Dependencies) mcp.ToolHandlerFor[RetrieveInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RetrieveInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "retrieve", func() (*bedrock.RetrieveResult, error) {
			id, err := validate.RequiredString(input.KnowledgeBaseID, "knowledge_base_id")
			if err != nil {
				return nil, err
			}
			query, err := validate.RequiredString(input.Query, "query")
			if err != nil {
				return nil, err
			}

			n := input.NumberOfResults
			if n == 0 {
				n = defaultNumberOfResults
			}
			if err := validate.ResultCount(n); err != nil {
				return nil, err
			}

			return deps.Bedrock.Retrieve(ctx, id, query, n)
		})
	}
}

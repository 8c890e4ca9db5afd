package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

// CreateRoleInput defines the input schema for create_bedrock_kb_role.
type CreateRoleInput struct {
	RoleName           string `json:"role_name" jsonschema:"required,IAM role name (1-64 characters)"`
	Region             string `json:"region,omitempty" jsonschema:"Region the trust policy is scoped to (default us-east-1)"`
	Description        string `json:"description,omitempty" jsonschema:"Optional role description"`
	MaxSessionDuration int    `json:"max_session_duration,omitempty" jsonschema:"Maximum session duration in seconds 3600-43200 (default 3600)"`
}

// NewCreateRoleHandler creates the create_bedrock_kb_role handler. The
// role trusts bedrock.amazonaws.com, scoped to knowledge bases of the
// caller's account in the given region.
func NewCreateRoleHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateRoleInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateRoleInput) (
		*mcp.CallToolResult, any, error,
	) {
		return run(deps, "create_bedrock_kb_role", func() (*bedrock.ServiceRole, error) {
			name, err := validate.RoleName(input.RoleName)
			if err != nil {
				return nil, err
			}

			duration := input.MaxSessionDuration
			if duration == 0 {
				duration = validate.MinSessionDuration
			}
			if err := validate.SessionDuration(duration); err != nil {
				return nil, err
			}

			return deps.Bedrock.CreateServiceRole(ctx, bedrock.CreateServiceRoleParams{
				RoleName:           name,
				Description:        input.Description,
				Region:             validate.Region(input.Region, deps.Bedrock.Region),
				MaxSessionDuration: int32(duration),
			})
		})
	}
}

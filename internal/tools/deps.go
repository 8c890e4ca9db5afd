// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/arn"
	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Bedrock  *bedrock.Clients
	Accounts arn.AccountResolver
	Logger   *slog.Logger
}

package tools

import (
	"encoding/json"
	"errors"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

// Envelope codes for the two locally produced error classes. Service
// errors carry the service's own error code instead.
const (
	codeValidation = "ValidationError"
	codeInternal   = "InternalError"
)

const internalMessage = "An internal error occurred while processing the request."

// userMessages maps AWS error codes to messages a caller can act on
// without reading the raw service response. Codes not listed here fall
// back to the raw service message.
var userMessages = map[string]string{
	"AccessDeniedException":       "Access denied. Check the IAM permissions of the current credentials.",
	"ResourceNotFoundException":   "The specified resource was not found.",
	"ValidationException":         "The request parameters failed service validation.",
	"ConflictException":           "The resource is in a conflicting state. Retry after the current operation completes.",
	"ThrottlingException":         "Request rate limit exceeded. Wait a moment and retry.",
	"ServiceUnavailableException": "The service is temporarily unavailable. Retry later.",
	"InternalServerException":     "The service reported an internal error. Retry later.",
	"InvalidParameterException":   "One or more request parameters are invalid.",
	"InvalidRequestException":     "The request is invalid in its current state.",
	"LimitExceededException":      "A service quota has been exceeded.",
	"ResourceInUseException":      "The resource is currently in use and cannot be modified.",
	"TooManyRequestsException":    "Too many requests. Slow down and retry.",
	"UnauthorizedException":       "The request is not authorized.",
	"BadRequestException":         "The request is malformed.",
	"NotFoundException":           "The requested entity does not exist.",
	"ForbiddenException":          "Access to the resource is forbidden.",
	"BucketAlreadyExists":         "The bucket name is already taken globally. Choose another name.",
	"BucketAlreadyOwnedByYou":     "A bucket with this name already exists in this account.",
	"NoSuchBucket":                "The specified bucket does not exist.",
	"EntityAlreadyExists":         "An IAM entity with this name already exists.",
}

// ErrorEnvelope is the JSON error payload of every failed tool call.
// Callers detect failure by the presence of the error field; the MCP
// result itself is always structurally successful.
type ErrorEnvelope struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Translate classifies err into an ErrorEnvelope. Caller-input errors keep
// their message verbatim; AWS service errors are mapped through
// userMessages with the raw message preserved in details; anything else
// becomes a generic internal error whose detail must only be logged.
func Translate(err error) ErrorEnvelope {
	var inputErr *validate.Error
	if errors.As(err, &inputErr) {
		return ErrorEnvelope{
			Error: inputErr.Message,
			Code:  codeValidation,
		}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		envelope := ErrorEnvelope{
			Code:    apiErr.ErrorCode(),
			Details: apiErr.ErrorMessage(),
		}
		if message, ok := userMessages[envelope.Code]; ok {
			envelope.Error = message
		} else {
			envelope.Error = apiErr.ErrorMessage()
		}
		var respErr *awshttp.ResponseError
		if errors.As(err, &respErr) {
			envelope.RequestID = respErr.ServiceRequestID()
		}
		return envelope
	}

	return ErrorEnvelope{
		Error: internalMessage,
		Code:  codeInternal,
	}
}

// run executes a handler body and wraps its outcome into a JSON text
// result. Failures are translated into an ErrorEnvelope; internal error
// detail is logged through the redacted pipeline and never returned.
func run[T any](deps *Dependencies, tool string, fn func() (T, error)) (*mcp.CallToolResult, any, error) {
	value, err := fn()
	if err != nil {
		envelope := Translate(err)
		if envelope.Code == codeInternal {
			deps.Logger.Error("tool failed", "tool", tool, "error", err)
		} else {
			deps.Logger.Warn("tool returned error", "tool", tool, "code", envelope.Code, "message", envelope.Error)
		}
		return jsonResult(envelope), nil, nil
	}
	return jsonResult(value), nil, nil
}

// jsonResult marshals v into an indented JSON text result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		data, _ = json.Marshal(ErrorEnvelope{Error: internalMessage, Code: codeInternal})
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

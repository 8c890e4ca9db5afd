package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slogmulti "github.com/samber/slog-multi"
)

func redactedLogger(buf *bytes.Buffer) *slog.Logger {
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(slogmulti.Pipe(RedactMiddleware()).Handler(handler))
}

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestRedactSensitiveKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "role arn", key: "role_arn"},
		{name: "bucket arn", key: "bucket_arn"},
		{name: "secret access key", key: "aws_secret_access_key"},
		{name: "session token", key: "session_token"},
		{name: "password", key: "db_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := redactedLogger(&buf)

			logger.Info("call", tt.key, "arn:aws:iam::123456789012:role/secret-role")

			line := logLine(t, &buf)
			assert.Equal(t, "***MASKED***", line[tt.key])
		})
	}
}

func TestRedactLeavesPlainKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := redactedLogger(&buf)

	logger.Info("listed knowledge bases", "knowledge_base_id", "KB123", "count", 3)

	line := logLine(t, &buf)
	assert.Equal(t, "KB123", line["knowledge_base_id"])
	assert.Equal(t, float64(3), line["count"])
}

func TestRedactARNInsideStringValue(t *testing.T) {
	var buf bytes.Buffer
	logger := redactedLogger(&buf)

	logger.Info("request failed",
		"params", `{KnowledgeBaseId: KB123 RoleArn: arn:aws:iam::123456789012:role/kb-role}`,
	)

	line := logLine(t, &buf)
	params := line["params"].(string)
	assert.NotContains(t, params, "123456789012")
	assert.Contains(t, params, "***MASKED***")
	assert.Contains(t, params, "KB123")
}

func TestRedactErrorValues(t *testing.T) {
	var buf bytes.Buffer
	logger := redactedLogger(&buf)

	logger.Error("create failed", "error", assert.AnError)

	line := logLine(t, &buf)
	assert.Equal(t, assert.AnError.Error(), line["error"])
}

func TestRedactMessageText(t *testing.T) {
	var buf bytes.Buffer
	logger := redactedLogger(&buf)

	logger.Info("assuming arn:aws:iam::123456789012:role/kb-role for ingestion")

	line := logLine(t, &buf)
	assert.NotContains(t, line["msg"], "123456789012")
}

package config

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

const mask = "***MASKED***"

// sensitiveKeywords marks attribute keys whose values must never reach a
// log sink. Matching is substring, case-insensitive, so bucket_arn and
// aws_secret_access_key are caught by their components.
var sensitiveKeywords = []string{
	"arn",
	"role_arn",
	"bucket_arn",
	"access_key",
	"secret",
	"password",
	"token",
	"credential",
	"authorization",
	"aws_access_key_id",
	"aws_secret_access_key",
	"session_token",
}

var (
	arnPattern = regexp.MustCompile(`arn:aws:[^:\s]+:[^:\s]*:[^:\s]*:[^\s,}"']+`)
	kvPattern  = regexp.MustCompile(`(?i)\b(arn|role_arn|bucket_arn|access_key|secret|password|token|credential|authorization|aws_access_key_id|aws_secret_access_key|session_token)\b["']?\s*[:=]\s*["']?[^,}\s"']+`)
)

// RedactMiddleware rewrites log records before they reach any handler:
// values under credential-like keys are replaced wholesale, and ARNs or
// key=value credential pairs embedded in string values are masked in
// place. Applied once, ahead of the fanout, so every sink sees the same
// redacted record.
func RedactMiddleware() slogmulti.Middleware {
	return slogmulti.NewHandleInlineMiddleware(
		func(ctx context.Context, record slog.Record, next func(context.Context, slog.Record) error) error {
			out := slog.NewRecord(record.Time, record.Level, maskText(record.Message), record.PC)
			record.Attrs(func(attr slog.Attr) bool {
				out.AddAttrs(maskAttr(attr))
				return true
			})
			return next(ctx, out)
		})
}

func maskAttr(attr slog.Attr) slog.Attr {
	if sensitiveKey(attr.Key) {
		return slog.String(attr.Key, mask)
	}

	value := attr.Value.Resolve()
	switch value.Kind() {
	case slog.KindString:
		return slog.String(attr.Key, maskText(value.String()))
	case slog.KindGroup:
		group := value.Group()
		masked := make([]any, 0, len(group))
		for _, member := range group {
			masked = append(masked, maskAttr(member))
		}
		return slog.Group(attr.Key, masked...)
	case slog.KindAny:
		if err, ok := value.Any().(error); ok {
			return slog.String(attr.Key, maskText(err.Error()))
		}
	}
	return attr
}

func maskText(s string) string {
	s = arnPattern.ReplaceAllString(s, "arn:aws:"+mask)
	s = kvPattern.ReplaceAllString(s, "$1="+mask)
	return s
}

func sensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

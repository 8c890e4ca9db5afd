// Package arn normalizes caller-supplied AWS resource references into the
// canonical ARN forms the Bedrock APIs require. S3 references may arrive
// as ARNs or s3:// URIs; IAM role references may omit the account id, in
// which case the caller's account is resolved through STS.
package arn

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

const (
	s3Prefix        = "arn:aws:s3:::"
	s3URIScheme     = "s3://"
	roleARNTemplate = "arn:aws:iam::%s:role/%s"
)

var roleARNPattern = regexp.MustCompile(`^arn:aws:iam::\d{12}:role/.+$`)

// AccountResolver returns the AWS account id of the current caller.
type AccountResolver interface {
	AccountID(ctx context.Context) (string, error)
}

// STSAPI is the subset of the STS client used for account resolution.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// STSResolver resolves the caller account id with one GetCallerIdentity
// round trip per lookup.
type STSResolver struct {
	Client STSAPI
}

func (r *STSResolver) AccountID(ctx context.Context) (string, error) {
	out, err := r.Client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("get caller identity: %w", err)
	}
	if out.Account == nil || *out.Account == "" {
		return "", fmt.Errorf("caller identity response carries no account id")
	}
	return *out.Account, nil
}

// NormalizeS3 converts an S3 bucket reference into ARN form. ARNs pass
// through unchanged; s3://bucket[/path] URIs become arn:aws:s3:::bucket
// with any object path discarded. Idempotent for valid input.
func NormalizeS3(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", validate.Errorf("S3 ARN or URI cannot be empty")
	}
	if strings.HasPrefix(trimmed, s3Prefix) {
		return trimmed, nil
	}
	if strings.HasPrefix(trimmed, s3URIScheme) {
		bucket, _, _ := strings.Cut(trimmed[len(s3URIScheme):], "/")
		if bucket == "" {
			return "", validate.Errorf("Invalid S3 URI format: %s. Bucket name is required.", trimmed)
		}
		if len(bucket) < 3 || len(bucket) > 63 {
			return "", validate.Errorf("Invalid bucket name length: %s. Must be 3-63 characters.", bucket)
		}
		return s3Prefix + bucket, nil
	}
	return "", validate.Errorf("Invalid S3 ARN or URI format: %s. "+
		"Must be either 'arn:aws:s3:::bucket-name' or 's3://bucket-name'", trimmed)
}

// NormalizeRole converts an IAM role reference into the full ARN form.
// arn:aws:iam::<account>:role/<name> passes through unchanged. The
// shorthands "arn:aws:iam::role/<name>" and "role/<name>" lack the account
// qualifier; the caller's account id is resolved and substituted. An STS
// failure propagates as-is and is never reported as a format error.
func NormalizeRole(ctx context.Context, value string, accounts AccountResolver) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", validate.Errorf("IAM role ARN cannot be empty")
	}
	if roleARNPattern.MatchString(trimmed) {
		return trimmed, nil
	}

	var roleName string
	switch {
	case strings.HasPrefix(trimmed, "arn:aws:iam::role/"):
		roleName = strings.TrimPrefix(trimmed, "arn:aws:iam::role/")
	case strings.HasPrefix(trimmed, "role/"):
		roleName = strings.TrimPrefix(trimmed, "role/")
	default:
		return "", validate.Errorf("Invalid IAM role ARN format: %s. "+
			"Must be either 'arn:aws:iam::ACCOUNT_ID:role/ROLE_NAME' or 'role/ROLE_NAME'", trimmed)
	}

	accountID, err := accounts.AccountID(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(roleARNTemplate, accountID, roleName), nil
}

// BucketNameFromARN extracts the bucket name from an arn:aws:s3::: ARN.
func BucketNameFromARN(bucketARN string) string {
	return strings.TrimPrefix(bucketARN, s3Prefix)
}

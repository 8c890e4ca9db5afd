// Package bedrock is the gateway to the AWS services behind the tool
// surface: Bedrock Agent (knowledge base management), Bedrock Agent
// Runtime (retrieval), S3, IAM and STS. Every operation accepts already
// validated, already built parameters, performs one logical API call
// (list operations drain the paginator), reshapes the response into a
// simplified record and propagates errors unchanged apart from logging.
package bedrock

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/arn"
)

const (
	connectTimeout = 10 * time.Second
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
)

// ManagementAPI is the subset of the Bedrock Agent client the gateway
// uses. The list methods also satisfy the SDK paginator interfaces.
type ManagementAPI interface {
	CreateKnowledgeBase(ctx context.Context, params *bedrockagent.CreateKnowledgeBaseInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.CreateKnowledgeBaseOutput, error)
	GetKnowledgeBase(ctx context.Context, params *bedrockagent.GetKnowledgeBaseInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.GetKnowledgeBaseOutput, error)
	UpdateKnowledgeBase(ctx context.Context, params *bedrockagent.UpdateKnowledgeBaseInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.UpdateKnowledgeBaseOutput, error)
	DeleteKnowledgeBase(ctx context.Context, params *bedrockagent.DeleteKnowledgeBaseInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.DeleteKnowledgeBaseOutput, error)
	ListKnowledgeBases(ctx context.Context, params *bedrockagent.ListKnowledgeBasesInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.ListKnowledgeBasesOutput, error)
	CreateDataSource(ctx context.Context, params *bedrockagent.CreateDataSourceInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.CreateDataSourceOutput, error)
	DeleteDataSource(ctx context.Context, params *bedrockagent.DeleteDataSourceInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.DeleteDataSourceOutput, error)
	ListDataSources(ctx context.Context, params *bedrockagent.ListDataSourcesInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.ListDataSourcesOutput, error)
	StartIngestionJob(ctx context.Context, params *bedrockagent.StartIngestionJobInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.StartIngestionJobOutput, error)
	GetIngestionJob(ctx context.Context, params *bedrockagent.GetIngestionJobInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.GetIngestionJobOutput, error)
}

// RuntimeAPI is the subset of the Bedrock Agent Runtime client in use.
type RuntimeAPI interface {
	Retrieve(ctx context.Context, params *bedrockagentruntime.RetrieveInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveOutput, error)
}

// S3API is the subset of the S3 client in use. It embeds the upload
// manager's client interface so the managed uploader can run against it.
type S3API interface {
	manager.UploadAPIClient
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutPublicAccessBlock(ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// IAMAPI is the subset of the IAM client in use.
type IAMAPI interface {
	CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error)
}

// Clients bundles the AWS clients behind the tool surface. The fields are
// interfaces so tests can substitute fakes.
type Clients struct {
	Management ManagementAPI
	Runtime    RuntimeAPI
	S3         S3API
	IAM        IAMAPI
	Accounts   arn.AccountResolver

	// Region is the default region the clients were built for. Individual
	// operations may override it per call.
	Region string

	logger *slog.Logger
}

// New builds the AWS clients for the given region. Credentials come from
// the default chain (environment, shared config, instance profile). The
// transport applies adaptive retries (3 attempts) for transient errors and
// bounds each call with a 10s connect / 30s request timeout; no further
// retry layer exists above it.
func New(ctx context.Context, region string, logger *slog.Logger) (*Clients, error) {
	httpClient := awshttp.NewBuildableClient().
		WithTimeout(requestTimeout).
		WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = connectTimeout
		})

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithRetryMode(aws.RetryModeAdaptive),
		awsconfig.WithRetryMaxAttempts(maxAttempts),
		awsconfig.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	stsClient := sts.NewFromConfig(cfg)
	logger.Info("initialized AWS clients", "region", region)

	return &Clients{
		Management: bedrockagent.NewFromConfig(cfg),
		Runtime:    bedrockagentruntime.NewFromConfig(cfg),
		S3:         s3.NewFromConfig(cfg),
		IAM:        iam.NewFromConfig(cfg),
		Accounts:   &arn.STSResolver{Client: stsClient},
		Region:     region,
		logger:     logger,
	}, nil
}

// WithLogger returns a copy of c that logs through logger. Used by tests
// building Clients from fakes.
func (c *Clients) WithLogger(logger *slog.Logger) *Clients {
	out := *c
	out.logger = logger
	return &out
}

func (c *Clients) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

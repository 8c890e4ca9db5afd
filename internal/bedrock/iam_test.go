package bedrock_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/bedrock"
)

type fakeIAM struct {
	createRole func(*iam.CreateRoleInput) (*iam.CreateRoleOutput, error)
}

func (f *fakeIAM) CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error) {
	if f.createRole == nil {
		return nil, errUnexpectedCall
	}
	return f.createRole(params)
}

type fakeAccounts struct {
	accountID string
	err       error
}

func (f *fakeAccounts) AccountID(ctx context.Context) (string, error) {
	return f.accountID, f.err
}

func TestCreateServiceRole(t *testing.T) {
	var captured *iam.CreateRoleInput
	clients := &bedrock.Clients{
		Region:   "us-east-1",
		Accounts: &fakeAccounts{accountID: "123456789012"},
		IAM: &fakeIAM{
			createRole: func(input *iam.CreateRoleInput) (*iam.CreateRoleOutput, error) {
				captured = input
				return &iam.CreateRoleOutput{
					Role: &iamtypes.Role{
						RoleName: input.RoleName,
						Arn:      aws.String("arn:aws:iam::123456789012:role/service-role/kb-role"),
						Path:     input.Path,
					},
				}, nil
			},
		},
	}

	record, err := clients.CreateServiceRole(context.Background(), bedrock.CreateServiceRoleParams{
		RoleName:           "kb-role",
		Description:        "Bedrock knowledge base service role",
		Region:             "eu-west-1",
		MaxSessionDuration: 7200,
	})
	require.NoError(t, err)
	assert.Equal(t, "kb-role", record.Name)
	assert.Equal(t, "arn:aws:iam::123456789012:role/service-role/kb-role", record.ARN)
	assert.Equal(t, "/service-role/", record.Path)
	assert.Equal(t, "CREATED", record.Status)

	require.NotNil(t, captured)
	assert.Equal(t, "/service-role/", aws.ToString(captured.Path))
	assert.Equal(t, int32(7200), aws.ToInt32(captured.MaxSessionDuration))

	var policy struct {
		Version   string `json:"Version"`
		Statement []struct {
			Effect    string `json:"Effect"`
			Principal struct {
				Service string `json:"Service"`
			} `json:"Principal"`
			Action    string `json:"Action"`
			Condition struct {
				StringEquals map[string]string `json:"StringEquals"`
				ArnLike      map[string]string `json:"ArnLike"`
			} `json:"Condition"`
		} `json:"Statement"`
	}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(captured.AssumeRolePolicyDocument)), &policy))
	assert.Equal(t, "2012-10-17", policy.Version)
	require.Len(t, policy.Statement, 1)

	statement := policy.Statement[0]
	assert.Equal(t, "Allow", statement.Effect)
	assert.Equal(t, "bedrock.amazonaws.com", statement.Principal.Service)
	assert.Equal(t, "sts:AssumeRole", statement.Action)
	assert.Equal(t, "123456789012", statement.Condition.StringEquals["aws:SourceAccount"])
	assert.Equal(t, "arn:aws:bedrock:eu-west-1:123456789012:knowledge-base/*", statement.Condition.ArnLike["aws:SourceArn"])
}

func TestCreateServiceRoleAccountLookupFailure(t *testing.T) {
	lookupErr := errors.New("sts unavailable")
	clients := &bedrock.Clients{
		Region:   "us-east-1",
		Accounts: &fakeAccounts{err: lookupErr},
		IAM:      &fakeIAM{},
	}

	_, err := clients.CreateServiceRole(context.Background(), bedrock.CreateServiceRoleParams{
		RoleName:           "kb-role",
		Region:             "us-east-1",
		MaxSessionDuration: 3600,
	})
	require.ErrorIs(t, err, lookupErr)
}

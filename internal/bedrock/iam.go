package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
)

const serviceRolePath = "/service-role/"

type trustPolicy struct {
	Version   string           `json:"Version"`
	Statement []trustStatement `json:"Statement"`
}

type trustStatement struct {
	Effect    string          `json:"Effect"`
	Principal trustPrincipal  `json:"Principal"`
	Action    string          `json:"Action"`
	Condition *trustCondition `json:"Condition,omitempty"`
}

type trustPrincipal struct {
	Service string `json:"Service"`
}

type trustCondition struct {
	StringEquals map[string]string `json:"StringEquals,omitempty"`
	ArnLike      map[string]string `json:"ArnLike,omitempty"`
}

// CreateServiceRoleParams carries validated input for a service role
// creation. Region scopes the trust policy's SourceArn condition; IAM
// itself is global.
type CreateServiceRoleParams struct {
	RoleName           string
	Description        string
	Region             string
	MaxSessionDuration int32
}

// CreateServiceRole creates an IAM role that the Bedrock service can
// assume on behalf of knowledge bases in this account and region. The
// trust policy is pinned to the caller's account and to knowledge base
// ARNs so the role cannot be assumed from another account.
func (c *Clients) CreateServiceRole(ctx context.Context, params CreateServiceRoleParams) (*ServiceRole, error) {
	accountID, err := c.Accounts.AccountID(ctx)
	if err != nil {
		c.log().Error("resolve account for role trust policy failed", "role_name", params.RoleName, "error", err)
		return nil, err
	}

	policy := trustPolicy{
		Version: "2012-10-17",
		Statement: []trustStatement{
			{
				Effect:    "Allow",
				Principal: trustPrincipal{Service: "bedrock.amazonaws.com"},
				Action:    "sts:AssumeRole",
				Condition: &trustCondition{
					StringEquals: map[string]string{
						"aws:SourceAccount": accountID,
					},
					ArnLike: map[string]string{
						"aws:SourceArn": fmt.Sprintf("arn:aws:bedrock:%s:%s:knowledge-base/*", params.Region, accountID),
					},
				},
			},
		},
	}
	policyDocument, err := json.Marshal(policy)
	if err != nil {
		return nil, fmt.Errorf("marshal trust policy: %w", err)
	}

	input := &iam.CreateRoleInput{
		RoleName:                 aws.String(params.RoleName),
		Path:                     aws.String(serviceRolePath),
		AssumeRolePolicyDocument: aws.String(string(policyDocument)),
		MaxSessionDuration:       aws.Int32(params.MaxSessionDuration),
	}
	if params.Description != "" {
		input.Description = aws.String(params.Description)
	}

	out, err := c.IAM.CreateRole(ctx, input)
	if err != nil {
		c.log().Error("create service role failed", "role_name", params.RoleName, "error", err)
		return nil, err
	}

	role := out.Role
	record := &ServiceRole{
		Name:   aws.ToString(role.RoleName),
		ARN:    aws.ToString(role.Arn),
		Path:   aws.ToString(role.Path),
		Status: "CREATED",
	}
	c.log().Info("created service role", "role_name", record.Name)
	return record, nil
}

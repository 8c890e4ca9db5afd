package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent/types"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/kbspec"
)

// CreateKnowledgeBaseParams carries normalized, validated input for a
// knowledge base creation. RoleARN must already be in full ARN form.
type CreateKnowledgeBaseParams struct {
	Name        string
	Description string
	RoleARN     string
	Storage     kbspec.StorageSpec

	// Region overrides the default client region for this call when set.
	Region string
}

// CreateKnowledgeBase creates a knowledge base and returns its identifiers.
func (c *Clients) CreateKnowledgeBase(ctx context.Context, params CreateKnowledgeBaseParams) (*KnowledgeBase, error) {
	input := &bedrockagent.CreateKnowledgeBaseInput{
		Name:                       aws.String(params.Name),
		RoleArn:                    aws.String(params.RoleARN),
		KnowledgeBaseConfiguration: params.Storage.KnowledgeBaseConfiguration(),
		StorageConfiguration:       params.Storage.StorageConfiguration(),
	}
	if params.Description != "" {
		input.Description = aws.String(params.Description)
	}

	var optFns []func(*bedrockagent.Options)
	if params.Region != "" && params.Region != c.Region {
		optFns = append(optFns, func(o *bedrockagent.Options) { o.Region = params.Region })
	}

	out, err := c.Management.CreateKnowledgeBase(ctx, input, optFns...)
	if err != nil {
		c.log().Error("create knowledge base failed", "name", params.Name, "error", err)
		return nil, err
	}

	kb := out.KnowledgeBase
	record := &KnowledgeBase{
		ID:     aws.ToString(kb.KnowledgeBaseId),
		Name:   aws.ToString(kb.Name),
		Status: string(kb.Status),
		ARN:    aws.ToString(kb.KnowledgeBaseArn),
	}
	c.log().Info("created knowledge base", "knowledge_base_id", record.ID, "status", record.Status)
	return record, nil
}

// ListKnowledgeBases returns every knowledge base in the account and
// region, draining the paginator.
func (c *Clients) ListKnowledgeBases(ctx context.Context) ([]KnowledgeBaseSummary, error) {
	var summaries []KnowledgeBaseSummary

	paginator := bedrockagent.NewListKnowledgeBasesPaginator(c.Management, &bedrockagent.ListKnowledgeBasesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			c.log().Error("list knowledge bases failed", "error", err)
			return nil, err
		}
		for _, item := range page.KnowledgeBaseSummaries {
			summaries = append(summaries, KnowledgeBaseSummary{
				ID:          aws.ToString(item.KnowledgeBaseId),
				Name:        aws.ToString(item.Name),
				Status:      string(item.Status),
				Description: aws.ToString(item.Description),
				UpdatedAt:   item.UpdatedAt,
			})
		}
	}

	c.log().Info("listed knowledge bases", "count", len(summaries))
	return summaries, nil
}

// GetKnowledgeBase returns the full record of one knowledge base.
func (c *Clients) GetKnowledgeBase(ctx context.Context, knowledgeBaseID string) (*KnowledgeBaseDetail, error) {
	out, err := c.Management.GetKnowledgeBase(ctx, &bedrockagent.GetKnowledgeBaseInput{
		KnowledgeBaseId: aws.String(knowledgeBaseID),
	})
	if err != nil {
		c.log().Error("get knowledge base failed", "knowledge_base_id", knowledgeBaseID, "error", err)
		return nil, err
	}

	kb := out.KnowledgeBase
	return &KnowledgeBaseDetail{
		ID:             aws.ToString(kb.KnowledgeBaseId),
		Name:           aws.ToString(kb.Name),
		Status:         string(kb.Status),
		Description:    aws.ToString(kb.Description),
		RoleARN:        aws.ToString(kb.RoleArn),
		ARN:            aws.ToString(kb.KnowledgeBaseArn),
		Storage:        storageRecord(kb.StorageConfiguration),
		Configuration:  configRecord(kb.KnowledgeBaseConfiguration),
		CreatedAt:      kb.CreatedAt,
		UpdatedAt:      kb.UpdatedAt,
		FailureReasons: kb.FailureReasons,
	}, nil
}

func storageRecord(cfg *types.StorageConfiguration) *KnowledgeBaseStorage {
	if cfg == nil {
		return nil
	}
	record := &KnowledgeBaseStorage{Type: string(cfg.Type)}
	if cfg.S3VectorsConfiguration != nil {
		record.BucketARN = aws.ToString(cfg.S3VectorsConfiguration.VectorBucketArn)
	}
	return record
}

func configRecord(cfg *types.KnowledgeBaseConfiguration) *KnowledgeBaseConfig {
	if cfg == nil {
		return nil
	}
	record := &KnowledgeBaseConfig{Type: string(cfg.Type)}
	if vector := cfg.VectorKnowledgeBaseConfiguration; vector != nil {
		record.EmbeddingModelARN = aws.ToString(vector.EmbeddingModelArn)
		if supplemental := vector.SupplementalDataStorageConfiguration; supplemental != nil {
			for _, location := range supplemental.StorageLocations {
				if location.S3Location != nil {
					record.MultimodalStorageURI = aws.ToString(location.S3Location.Uri)
					break
				}
			}
		}
	}
	return record
}

// UpdateKnowledgeBaseParams carries the fields of a partial update. Empty
// fields keep their current value.
type UpdateKnowledgeBaseParams struct {
	ID          string
	Name        string
	Description string
	RoleARN     string
}

// UpdateKnowledgeBase applies a partial update. The management API
// requires the complete record on update, so the current record is read
// first and the changed fields are overlaid onto it.
func (c *Clients) UpdateKnowledgeBase(ctx context.Context, params UpdateKnowledgeBaseParams) (*KnowledgeBase, error) {
	current, err := c.Management.GetKnowledgeBase(ctx, &bedrockagent.GetKnowledgeBaseInput{
		KnowledgeBaseId: aws.String(params.ID),
	})
	if err != nil {
		c.log().Error("read before update failed", "knowledge_base_id", params.ID, "error", err)
		return nil, err
	}

	kb := current.KnowledgeBase
	input := &bedrockagent.UpdateKnowledgeBaseInput{
		KnowledgeBaseId:            kb.KnowledgeBaseId,
		Name:                       kb.Name,
		Description:                kb.Description,
		RoleArn:                    kb.RoleArn,
		KnowledgeBaseConfiguration: kb.KnowledgeBaseConfiguration,
		StorageConfiguration:       kb.StorageConfiguration,
	}
	if params.Name != "" {
		input.Name = aws.String(params.Name)
	}
	if params.Description != "" {
		input.Description = aws.String(params.Description)
	}
	if params.RoleARN != "" {
		input.RoleArn = aws.String(params.RoleARN)
	}

	out, err := c.Management.UpdateKnowledgeBase(ctx, input)
	if err != nil {
		c.log().Error("update knowledge base failed", "knowledge_base_id", params.ID, "error", err)
		return nil, err
	}

	updated := out.KnowledgeBase
	record := &KnowledgeBase{
		ID:     aws.ToString(updated.KnowledgeBaseId),
		Name:   aws.ToString(updated.Name),
		Status: string(updated.Status),
		ARN:    aws.ToString(updated.KnowledgeBaseArn),
	}
	c.log().Info("updated knowledge base", "knowledge_base_id", record.ID, "status", record.Status)
	return record, nil
}

// DeleteKnowledgeBase deletes a knowledge base and returns its final status.
func (c *Clients) DeleteKnowledgeBase(ctx context.Context, knowledgeBaseID string) (*KnowledgeBase, error) {
	out, err := c.Management.DeleteKnowledgeBase(ctx, &bedrockagent.DeleteKnowledgeBaseInput{
		KnowledgeBaseId: aws.String(knowledgeBaseID),
	})
	if err != nil {
		c.log().Error("delete knowledge base failed", "knowledge_base_id", knowledgeBaseID, "error", err)
		return nil, err
	}

	record := &KnowledgeBase{
		ID:     aws.ToString(out.KnowledgeBaseId),
		Status: string(out.Status),
	}
	c.log().Info("deleted knowledge base", "knowledge_base_id", record.ID, "status", record.Status)
	return record, nil
}

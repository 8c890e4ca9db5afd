package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent/types"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/kbspec"
)

// CreateDataSourceParams carries normalized, validated input for a data
// source creation. BucketARN must already be in ARN form; Ingestion may be
// nil, in which case the service defaults apply.
type CreateDataSourceParams struct {
	KnowledgeBaseID   string
	Name              string
	Description       string
	BucketARN         string
	InclusionPrefixes []string
	Ingestion         *kbspec.IngestionSpec
}

// CreateDataSource attaches an S3 data source to a knowledge base.
func (c *Clients) CreateDataSource(ctx context.Context, params CreateDataSourceParams) (*DataSource, error) {
	s3Config := &types.S3DataSourceConfiguration{
		BucketArn: aws.String(params.BucketARN),
	}
	if len(params.InclusionPrefixes) > 0 {
		s3Config.InclusionPrefixes = params.InclusionPrefixes
	}

	input := &bedrockagent.CreateDataSourceInput{
		KnowledgeBaseId: aws.String(params.KnowledgeBaseID),
		Name:            aws.String(params.Name),
		DataSourceConfiguration: &types.DataSourceConfiguration{
			Type:            types.DataSourceTypeS3,
			S3Configuration: s3Config,
		},
		VectorIngestionConfiguration: params.Ingestion.VectorIngestionConfiguration(),
	}
	if params.Description != "" {
		input.Description = aws.String(params.Description)
	}

	out, err := c.Management.CreateDataSource(ctx, input)
	if err != nil {
		c.log().Error("create data source failed",
			"knowledge_base_id", params.KnowledgeBaseID, "name", params.Name, "error", err)
		return nil, err
	}

	ds := out.DataSource
	record := &DataSource{
		ID:     aws.ToString(ds.DataSourceId),
		Name:   aws.ToString(ds.Name),
		Status: string(ds.Status),
	}
	c.log().Info("created data source",
		"knowledge_base_id", params.KnowledgeBaseID, "data_source_id", record.ID, "status", record.Status)
	return record, nil
}

// ListDataSources returns every data source of a knowledge base, draining
// the paginator.
func (c *Clients) ListDataSources(ctx context.Context, knowledgeBaseID string) ([]DataSourceSummary, error) {
	var summaries []DataSourceSummary

	paginator := bedrockagent.NewListDataSourcesPaginator(c.Management, &bedrockagent.ListDataSourcesInput{
		KnowledgeBaseId: aws.String(knowledgeBaseID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			c.log().Error("list data sources failed", "knowledge_base_id", knowledgeBaseID, "error", err)
			return nil, err
		}
		for _, item := range page.DataSourceSummaries {
			summaries = append(summaries, DataSourceSummary{
				ID:          aws.ToString(item.DataSourceId),
				Name:        aws.ToString(item.Name),
				Status:      string(item.Status),
				Description: aws.ToString(item.Description),
				UpdatedAt:   item.UpdatedAt,
			})
		}
	}

	c.log().Info("listed data sources", "knowledge_base_id", knowledgeBaseID, "count", len(summaries))
	return summaries, nil
}

// DeleteDataSource detaches and deletes a data source from its knowledge
// base.
func (c *Clients) DeleteDataSource(ctx context.Context, knowledgeBaseID, dataSourceID string) (*DataSource, error) {
	out, err := c.Management.DeleteDataSource(ctx, &bedrockagent.DeleteDataSourceInput{
		KnowledgeBaseId: aws.String(knowledgeBaseID),
		DataSourceId:    aws.String(dataSourceID),
	})
	if err != nil {
		c.log().Error("delete data source failed",
			"knowledge_base_id", knowledgeBaseID, "data_source_id", dataSourceID, "error", err)
		return nil, err
	}

	record := &DataSource{
		ID:     aws.ToString(out.DataSourceId),
		Status: string(out.Status),
	}
	c.log().Info("deleted data source",
		"knowledge_base_id", knowledgeBaseID, "data_source_id", record.ID, "status", record.Status)
	return record, nil
}

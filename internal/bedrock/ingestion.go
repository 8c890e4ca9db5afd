package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent/types"
)

// StartIngestionJob begins synchronizing a data source into its knowledge
// base. The job runs asynchronously; the returned record carries the job
// id to poll with GetIngestionJob.
func (c *Clients) StartIngestionJob(ctx context.Context, knowledgeBaseID, dataSourceID, description string) (*IngestionJob, error) {
	input := &bedrockagent.StartIngestionJobInput{
		KnowledgeBaseId: aws.String(knowledgeBaseID),
		DataSourceId:    aws.String(dataSourceID),
	}
	if description != "" {
		input.Description = aws.String(description)
	}

	out, err := c.Management.StartIngestionJob(ctx, input)
	if err != nil {
		c.log().Error("start ingestion job failed",
			"knowledge_base_id", knowledgeBaseID, "data_source_id", dataSourceID, "error", err)
		return nil, err
	}

	record := ingestionRecord(out.IngestionJob)
	c.log().Info("started ingestion job",
		"knowledge_base_id", knowledgeBaseID, "data_source_id", dataSourceID,
		"ingestion_job_id", record.ID, "status", record.Status)
	return record, nil
}

// GetIngestionJob returns the status and document counters of a job.
func (c *Clients) GetIngestionJob(ctx context.Context, knowledgeBaseID, dataSourceID, jobID string) (*IngestionJob, error) {
	out, err := c.Management.GetIngestionJob(ctx, &bedrockagent.GetIngestionJobInput{
		KnowledgeBaseId: aws.String(knowledgeBaseID),
		DataSourceId:    aws.String(dataSourceID),
		IngestionJobId:  aws.String(jobID),
	})
	if err != nil {
		c.log().Error("get ingestion job failed",
			"knowledge_base_id", knowledgeBaseID, "ingestion_job_id", jobID, "error", err)
		return nil, err
	}
	return ingestionRecord(out.IngestionJob), nil
}

func ingestionRecord(job *types.IngestionJob) *IngestionJob {
	record := &IngestionJob{
		ID:     aws.ToString(job.IngestionJobId),
		Status: string(job.Status),
	}
	if stats := job.Statistics; stats != nil {
		record.Statistics = &IngestionStatistics{
			DocumentsScanned:  stats.NumberOfDocumentsScanned,
			NewDocuments:      stats.NumberOfNewDocumentsIndexed,
			ModifiedDocuments: stats.NumberOfModifiedDocumentsIndexed,
			DocumentsDeleted:  stats.NumberOfDocumentsDeleted,
			DocumentsFailed:   stats.NumberOfDocumentsFailed,
		}
	}
	return record
}

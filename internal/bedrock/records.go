package bedrock

import "time"

// The record types below are the simplified response shapes returned to
// tool callers. Identifiers and statuses use snake_case keys; fields the
// service did not populate are omitted.

// KnowledgeBase is the creation/update acknowledgment for a knowledge base.
type KnowledgeBase struct {
	ID     string `json:"knowledge_base_id"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status"`
	ARN    string `json:"arn,omitempty"`
}

// KnowledgeBaseSummary is one entry of a knowledge base listing.
type KnowledgeBaseSummary struct {
	ID          string     `json:"knowledge_base_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Description string     `json:"description,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// KnowledgeBaseDetail is the full record returned by a point read,
// including the storage and knowledge base configuration blocks.
type KnowledgeBaseDetail struct {
	ID             string                `json:"knowledge_base_id"`
	Name           string                `json:"name"`
	Status         string                `json:"status"`
	Description    string                `json:"description,omitempty"`
	RoleARN        string                `json:"role_arn,omitempty"`
	ARN            string                `json:"arn,omitempty"`
	Storage        *KnowledgeBaseStorage `json:"storage_configuration,omitempty"`
	Configuration  *KnowledgeBaseConfig  `json:"knowledge_base_configuration,omitempty"`
	CreatedAt      *time.Time            `json:"created_at,omitempty"`
	UpdatedAt      *time.Time            `json:"updated_at,omitempty"`
	FailureReasons []string              `json:"failure_reasons,omitempty"`
}

// KnowledgeBaseStorage describes where a knowledge base persists its data.
type KnowledgeBaseStorage struct {
	Type      string `json:"type"`
	BucketARN string `json:"bucket_arn,omitempty"`
}

// KnowledgeBaseConfig describes the knowledge base type and, for vector
// knowledge bases, the embedding and supplemental storage setup.
type KnowledgeBaseConfig struct {
	Type                 string `json:"type"`
	EmbeddingModelARN    string `json:"embedding_model_arn,omitempty"`
	MultimodalStorageURI string `json:"multimodal_storage_s3_uri,omitempty"`
}

// DataSource is the creation acknowledgment for a data source.
type DataSource struct {
	ID     string `json:"data_source_id"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status"`
}

// DataSourceSummary is one entry of a data source listing.
type DataSourceSummary struct {
	ID          string     `json:"data_source_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Description string     `json:"description,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// IngestionJob is the acknowledgment and status record of an ingestion job.
type IngestionJob struct {
	ID         string               `json:"ingestion_job_id"`
	Status     string               `json:"status"`
	Statistics *IngestionStatistics `json:"statistics,omitempty"`
}

// IngestionStatistics mirrors the service's job counters.
type IngestionStatistics struct {
	DocumentsScanned  int64 `json:"number_of_documents_scanned"`
	NewDocuments      int64 `json:"number_of_new_documents_indexed"`
	ModifiedDocuments int64 `json:"number_of_modified_documents_indexed"`
	DocumentsDeleted  int64 `json:"number_of_documents_deleted"`
	DocumentsFailed   int64 `json:"number_of_documents_failed"`
}

// RetrievalResult is one retrieved passage with its provenance and score.
type RetrievalResult struct {
	Content  string         `json:"content"`
	Location string         `json:"location,omitempty"`
	Score    float64        `json:"score,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RetrieveResult is the full response of a retrieval query.
type RetrieveResult struct {
	Query   string            `json:"query"`
	Results []RetrievalResult `json:"results"`
}

// Upload acknowledges a document upload with its resulting object URI.
type Upload struct {
	S3URI  string `json:"s3_uri"`
	Status string `json:"status"`
}

// Document is one entry of an S3 object listing.
type Document struct {
	Key          string     `json:"key"`
	Size         int64      `json:"size"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// Bucket acknowledges a bucket creation.
type Bucket struct {
	Name   string `json:"bucket_name"`
	Region string `json:"region"`
	ARN    string `json:"arn"`
	Status string `json:"status"`
}

// ServiceRole acknowledges an IAM service role creation.
type ServiceRole struct {
	Name   string `json:"role_name"`
	ARN    string `json:"role_arn"`
	Path   string `json:"path,omitempty"`
	Status string `json:"status"`
}

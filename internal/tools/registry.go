package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	// Knowledge base lifecycle
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_knowledge_base",
		Description: "Create a Bedrock knowledge base backed by an S3 or S3 Vectors bucket",
	}, NewCreateKnowledgeBaseHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_knowledge_bases",
		Description: "List all knowledge bases in the account and region",
	}, NewListKnowledgeBasesHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_knowledge_base",
		Description: "Get the full record of a knowledge base by id",
	}, NewGetKnowledgeBaseHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_knowledge_base",
		Description: "Update the name, description, or service role of a knowledge base",
	}, NewUpdateKnowledgeBaseHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_knowledge_base",
		Description: "Delete a knowledge base",
	}, NewDeleteKnowledgeBaseHandler(deps))

	// Data sources
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_data_source",
		Description: "Attach an S3 data source to a knowledge base, with optional parsing and chunking configuration",
	}, NewCreateDataSourceHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_data_sources",
		Description: "List the data sources of a knowledge base",
	}, NewListDataSourcesHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_data_source",
		Description: "Delete a data source from a knowledge base",
	}, NewDeleteDataSourceHandler(deps))

	// Ingestion
	mcp.AddTool(server, &mcp.Tool{
		Name:        "start_ingestion_job",
		Description: "Start synchronizing a data source into its knowledge base (asynchronous)",
	}, NewStartIngestionJobHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_ingestion_job",
		Description: "Get the status and document counters of an ingestion job",
	}, NewGetIngestionJobHandler(deps))

	// Retrieval
	mcp.AddTool(server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Run a retrieval query against a knowledge base and return ranked passages",
	}, NewRetrieveHandler(deps))

	// S3 documents and buckets
	mcp.AddTool(server, &mcp.Tool{
		Name:        "upload_document_to_s3",
		Description: "Upload a local file into an S3 bucket",
	}, NewUploadDocumentHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_s3_documents",
		Description: "List the objects of an S3 bucket, optionally under a prefix",
	}, NewListDocumentsHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_s3_bucket",
		Description: "Create an S3 bucket with all public access blocked",
	}, NewCreateBucketHandler(deps))

	// IAM
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_bedrock_kb_role",
		Description: "Create an IAM service role that Bedrock knowledge bases can assume",
	}, NewCreateRoleHandler(deps))
}

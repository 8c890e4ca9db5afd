package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
)

// Retrieve runs a retrieval query against a knowledge base and returns up
// to numberOfResults passages ranked by relevance.
func (c *Clients) Retrieve(ctx context.Context, knowledgeBaseID, query string, numberOfResults int) (*RetrieveResult, error) {
	out, err := c.Runtime.Retrieve(ctx, &bedrockagentruntime.RetrieveInput{
		KnowledgeBaseId: aws.String(knowledgeBaseID),
		RetrievalQuery: &types.KnowledgeBaseQuery{
			Text: aws.String(query),
		},
		RetrievalConfiguration: &types.KnowledgeBaseRetrievalConfiguration{
			VectorSearchConfiguration: &types.KnowledgeBaseVectorSearchConfiguration{
				NumberOfResults: aws.Int32(int32(numberOfResults)),
			},
		},
	})
	if err != nil {
		c.log().Error("retrieve failed", "knowledge_base_id", knowledgeBaseID, "error", err)
		return nil, err
	}

	results := make([]RetrievalResult, 0, len(out.RetrievalResults))
	for _, item := range out.RetrievalResults {
		result := RetrievalResult{
			Score: aws.ToFloat64(item.Score),
		}
		if item.Content != nil {
			result.Content = aws.ToString(item.Content.Text)
		}
		if loc := item.Location; loc != nil {
			if loc.S3Location != nil {
				result.Location = aws.ToString(loc.S3Location.Uri)
			} else {
				result.Location = string(loc.Type)
			}
		}
		if len(item.Metadata) > 0 {
			result.Metadata = make(map[string]any, len(item.Metadata))
			for key, doc := range item.Metadata {
				var value any
				if err := doc.UnmarshalSmithyDocument(&value); err != nil {
					continue
				}
				result.Metadata[key] = value
			}
		}
		results = append(results, result)
	}

	c.log().Info("retrieved passages", "knowledge_base_id", knowledgeBaseID, "count", len(results))
	return &RetrieveResult{Query: query, Results: results}, nil
}

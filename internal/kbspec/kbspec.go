// Package kbspec models the knowledge base configuration variants
// (storage mode, parsing strategy, chunking strategy) as tagged types and
// builds the nested bedrockagent structures from them. Builders are pure:
// absent optional fields are omitted rather than sent as zero values, and
// only the sub-object of the selected variant is emitted.
package kbspec

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent/types"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

// StorageMode selects where a knowledge base persists its data.
type StorageMode string

const (
	// StorageS3 is plain S3 object storage.
	StorageS3 StorageMode = "S3"
	// StorageS3Vectors is the S3 Vectors store; it requires an embedding
	// model and enables retrieval.
	StorageS3Vectors StorageMode = "S3_VECTORS"
)

// ParseStorageMode validates a caller-supplied storage type string.
func ParseStorageMode(value string) (StorageMode, error) {
	switch mode := StorageMode(value); mode {
	case StorageS3, StorageS3Vectors:
		return mode, nil
	default:
		return "", validate.Errorf("Invalid storage_type: %s. Must be 'S3' or 'S3_VECTORS'", value)
	}
}

// ParsingStrategy selects how documents are parsed during ingestion.
type ParsingStrategy string

const (
	ParsingFoundationModel ParsingStrategy = "BEDROCK_FOUNDATION_MODEL"
	ParsingDataAutomation  ParsingStrategy = "BEDROCK_DATA_AUTOMATION"
)

// ChunkingStrategy selects how parsed documents are split into chunks.
type ChunkingStrategy string

const (
	ChunkingFixedSize    ChunkingStrategy = "FIXED_SIZE"
	ChunkingHierarchical ChunkingStrategy = "HIERARCHICAL"
	ChunkingSemantic     ChunkingStrategy = "SEMANTIC"
	ChunkingNone         ChunkingStrategy = "NONE"
)

// StorageSpec is a validated storage variant. BucketARN is always the
// canonical ARN form. EmbeddingModelARN and MultimodalStorageURI are only
// meaningful for the vector variant.
type StorageSpec struct {
	Mode                 StorageMode
	BucketARN            string
	EmbeddingModelARN    string
	MultimodalStorageURI string
}

// Validate enforces the cross-field storage rules.
func (s StorageSpec) Validate() error {
	if s.Mode == StorageS3Vectors && s.EmbeddingModelARN == "" {
		return validate.Errorf("embedding_model_arn is required for S3_VECTORS storage type")
	}
	if s.MultimodalStorageURI != "" {
		uri := strings.TrimSpace(s.MultimodalStorageURI)
		if !strings.HasPrefix(uri, "s3://") {
			return validate.Errorf("multimodal_storage_s3_uri must start with 's3://'")
		}
		if len(uri) < len("s3://")+1 {
			return validate.Errorf("multimodal_storage_s3_uri must be a valid S3 URI")
		}
	}
	return nil
}

// StorageConfiguration builds the storage block. types.StorageConfiguration
// models S3-family buckets only through S3VectorsConfiguration; there is no
// plain-S3 member to carry the bucket ARN, so both modes use the vectors
// member and the Type field remains the discriminant.
func (s StorageSpec) StorageConfiguration() *types.StorageConfiguration {
	return &types.StorageConfiguration{
		Type: types.KnowledgeBaseStorageType(s.Mode),
		S3VectorsConfiguration: &types.S3VectorsConfiguration{
			VectorBucketArn: aws.String(s.BucketARN),
		},
	}
}

// KnowledgeBaseConfiguration builds the vector knowledge base block,
// including the supplemental multimodal storage location when set. Plain
// S3 storage needs no knowledge base configuration and yields nil.
func (s StorageSpec) KnowledgeBaseConfiguration() *types.KnowledgeBaseConfiguration {
	if s.Mode != StorageS3Vectors {
		return nil
	}
	vector := &types.VectorKnowledgeBaseConfiguration{
		EmbeddingModelArn: aws.String(s.EmbeddingModelARN),
	}
	if uri := strings.TrimSpace(s.MultimodalStorageURI); uri != "" {
		vector.SupplementalDataStorageConfiguration = &types.SupplementalDataStorageConfiguration{
			StorageLocations: []types.SupplementalDataStorageLocation{
				{
					Type:       types.SupplementalDataStorageLocationType("S3"),
					S3Location: &types.S3Location{Uri: aws.String(uri)},
				},
			},
		}
	}
	return &types.KnowledgeBaseConfiguration{
		Type:                             types.KnowledgeBaseTypeVector,
		VectorKnowledgeBaseConfiguration: vector,
	}
}

// ParsingSpec is a validated parsing variant. ModelARN is required for the
// foundation model strategy; Modality and PromptText are optional.
type ParsingSpec struct {
	Strategy   ParsingStrategy
	ModelARN   string
	Modality   string
	PromptText string
}

// ParseParsingSpec validates the flat parsing parameters. A blank strategy
// yields nil: the service default parser applies.
func ParseParsingSpec(strategy, modelARN, modality, promptText string) (*ParsingSpec, error) {
	if strategy == "" {
		return nil, nil
	}
	spec := &ParsingSpec{
		Strategy:   ParsingStrategy(strategy),
		ModelARN:   strings.TrimSpace(modelARN),
		Modality:   strings.TrimSpace(modality),
		PromptText: strings.TrimSpace(promptText),
	}
	switch spec.Strategy {
	case ParsingFoundationModel:
		if spec.ModelARN == "" {
			return nil, validate.Errorf("parsing_model_arn is required for BEDROCK_FOUNDATION_MODEL parsing strategy")
		}
	case ParsingDataAutomation:
	default:
		return nil, validate.Errorf("Invalid parsing_strategy: %s. "+
			"Must be 'BEDROCK_FOUNDATION_MODEL' or 'BEDROCK_DATA_AUTOMATION'", strategy)
	}
	return spec, nil
}

func (p *ParsingSpec) configuration() *types.ParsingConfiguration {
	cfg := &types.ParsingConfiguration{
		ParsingStrategy: types.ParsingStrategy(p.Strategy),
	}
	switch p.Strategy {
	case ParsingFoundationModel:
		foundation := &types.BedrockFoundationModelConfiguration{
			ModelArn: aws.String(p.ModelARN),
		}
		if p.Modality != "" {
			foundation.ParsingModality = types.ParsingModality(p.Modality)
		}
		if p.PromptText != "" {
			foundation.ParsingPrompt = &types.ParsingPrompt{
				ParsingPromptText: aws.String(p.PromptText),
			}
		}
		cfg.BedrockFoundationModelConfiguration = foundation
	case ParsingDataAutomation:
		automation := &types.BedrockDataAutomationConfiguration{}
		if p.Modality != "" {
			automation.ParsingModality = types.ParsingModality(p.Modality)
		}
		cfg.BedrockDataAutomationConfiguration = automation
	}
	return cfg
}

// ChunkingSpec is a validated chunking variant. Each field is meaningful
// only for its own strategy; zero means unset.
type ChunkingSpec struct {
	Strategy                      ChunkingStrategy
	MaxTokens                     int32
	OverlapPercentage             int32
	OverlapTokens                 int32
	BufferSize                    int32
	BreakpointPercentileThreshold int32
}

// ParseChunkingSpec validates the flat chunking parameters. A blank
// strategy yields nil: the service default chunking applies. Buffer size
// and breakpoint threshold are passed through without range checks,
// matching the service's own validation.
func ParseChunkingSpec(strategy string, maxTokens, overlapPercentage, overlapTokens, bufferSize, breakpointThreshold int) (*ChunkingSpec, error) {
	if strategy == "" {
		return nil, nil
	}
	spec := &ChunkingSpec{
		Strategy:                      ChunkingStrategy(strategy),
		MaxTokens:                     int32(maxTokens),
		OverlapPercentage:             int32(overlapPercentage),
		OverlapTokens:                 int32(overlapTokens),
		BufferSize:                    int32(bufferSize),
		BreakpointPercentileThreshold: int32(breakpointThreshold),
	}
	switch spec.Strategy {
	case ChunkingFixedSize, ChunkingHierarchical, ChunkingSemantic, ChunkingNone:
	default:
		return nil, validate.Errorf("Invalid chunking_strategy: %s. "+
			"Must be 'FIXED_SIZE', 'HIERARCHICAL', 'SEMANTIC', or 'NONE'", strategy)
	}
	if overlapPercentage < 0 || overlapPercentage > 100 {
		return nil, validate.Errorf("chunking_overlap_percentage must be between 0 and 100")
	}
	return spec, nil
}

func (c *ChunkingSpec) configuration() *types.ChunkingConfiguration {
	cfg := &types.ChunkingConfiguration{
		ChunkingStrategy: types.ChunkingStrategy(c.Strategy),
	}
	switch c.Strategy {
	case ChunkingFixedSize:
		if c.MaxTokens > 0 {
			cfg.FixedSizeChunkingConfiguration = &types.FixedSizeChunkingConfiguration{
				MaxTokens:         aws.Int32(c.MaxTokens),
				OverlapPercentage: aws.Int32(c.OverlapPercentage),
			}
		}
	case ChunkingHierarchical:
		hierarchical := &types.HierarchicalChunkingConfiguration{}
		if c.OverlapTokens > 0 {
			hierarchical.OverlapTokens = aws.Int32(c.OverlapTokens)
		}
		cfg.HierarchicalChunkingConfiguration = hierarchical
	case ChunkingSemantic:
		semantic := &types.SemanticChunkingConfiguration{}
		if c.MaxTokens > 0 {
			semantic.MaxTokens = aws.Int32(c.MaxTokens)
		}
		if c.BufferSize > 0 {
			semantic.BufferSize = aws.Int32(c.BufferSize)
		}
		if c.BreakpointPercentileThreshold > 0 {
			semantic.BreakpointPercentileThreshold = aws.Int32(c.BreakpointPercentileThreshold)
		}
		cfg.SemanticChunkingConfiguration = semantic
	}
	return cfg
}

// IngestionSpec pairs the optional parsing and chunking variants.
type IngestionSpec struct {
	Parsing  *ParsingSpec
	Chunking *ChunkingSpec
}

// ParseIngestionSpec validates the flat parsing/chunking parameters into
// an IngestionSpec, or nil when neither strategy is set.
func ParseIngestionSpec(parsingStrategy, parsingModelARN, parsingModality, parsingPromptText,
	chunkingStrategy string, maxTokens, overlapPercentage, overlapTokens, bufferSize, breakpointThreshold int) (*IngestionSpec, error) {

	parsing, err := ParseParsingSpec(parsingStrategy, parsingModelARN, parsingModality, parsingPromptText)
	if err != nil {
		return nil, err
	}
	chunking, err := ParseChunkingSpec(chunkingStrategy, maxTokens, overlapPercentage, overlapTokens, bufferSize, breakpointThreshold)
	if err != nil {
		return nil, err
	}
	if parsing == nil && chunking == nil {
		return nil, nil
	}
	return &IngestionSpec{Parsing: parsing, Chunking: chunking}, nil
}

// VectorIngestionConfiguration builds the ingestion block, or nil for an
// empty spec.
func (s *IngestionSpec) VectorIngestionConfiguration() *types.VectorIngestionConfiguration {
	if s == nil || (s.Parsing == nil && s.Chunking == nil) {
		return nil
	}
	cfg := &types.VectorIngestionConfiguration{}
	if s.Parsing != nil {
		cfg.ParsingConfiguration = s.Parsing.configuration()
	}
	if s.Chunking != nil {
		cfg.ChunkingConfiguration = s.Chunking.configuration()
	}
	return cfg
}

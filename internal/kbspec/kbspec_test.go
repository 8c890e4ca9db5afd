package kbspec

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStorageMode(t *testing.T) {
	mode, err := ParseStorageMode("S3")
	require.NoError(t, err)
	assert.Equal(t, StorageS3, mode)

	mode, err = ParseStorageMode("S3_VECTORS")
	require.NoError(t, err)
	assert.Equal(t, StorageS3Vectors, mode)

	_, err = ParseStorageMode("OPENSEARCH")
	require.EqualError(t, err, "Invalid storage_type: OPENSEARCH. Must be 'S3' or 'S3_VECTORS'")
}

func TestStorageSpecValidate(t *testing.T) {
	t.Run("vector storage requires embedding model", func(t *testing.T) {
		spec := StorageSpec{Mode: StorageS3Vectors, BucketARN: "arn:aws:s3:::b"}
		err := spec.Validate()
		require.EqualError(t, err, "embedding_model_arn is required for S3_VECTORS storage type")
	})

	t.Run("plain storage needs no embedding model", func(t *testing.T) {
		spec := StorageSpec{Mode: StorageS3, BucketARN: "arn:aws:s3:::b"}
		assert.NoError(t, spec.Validate())
	})

	t.Run("multimodal uri must be s3", func(t *testing.T) {
		spec := StorageSpec{
			Mode:                 StorageS3Vectors,
			BucketARN:            "arn:aws:s3:::b",
			EmbeddingModelARN:    "arn:aws:bedrock::aws:foundation-model/titan",
			MultimodalStorageURI: "https://bucket/path",
		}
		err := spec.Validate()
		require.EqualError(t, err, "multimodal_storage_s3_uri must start with 's3://'")
	})
}

func TestStorageSpecConfiguration(t *testing.T) {
	t.Run("plain storage emits no knowledge base configuration", func(t *testing.T) {
		spec := StorageSpec{Mode: StorageS3, BucketARN: "arn:aws:s3:::docs"}

		storage := spec.StorageConfiguration()
		assert.Equal(t, types.KnowledgeBaseStorageType("S3"), storage.Type)
		require.NotNil(t, storage.S3VectorsConfiguration)
		assert.Equal(t, "arn:aws:s3:::docs", aws.ToString(storage.S3VectorsConfiguration.VectorBucketArn))

		assert.Nil(t, spec.KnowledgeBaseConfiguration())
	})

	t.Run("vector storage emits vector configuration", func(t *testing.T) {
		spec := StorageSpec{
			Mode:              StorageS3Vectors,
			BucketARN:         "arn:aws:s3:::vectors",
			EmbeddingModelARN: "arn:aws:bedrock::aws:foundation-model/titan",
		}

		storage := spec.StorageConfiguration()
		assert.Equal(t, types.KnowledgeBaseStorageType("S3_VECTORS"), storage.Type)

		kbConfig := spec.KnowledgeBaseConfiguration()
		require.NotNil(t, kbConfig)
		assert.Equal(t, types.KnowledgeBaseTypeVector, kbConfig.Type)
		require.NotNil(t, kbConfig.VectorKnowledgeBaseConfiguration)
		assert.Equal(t, "arn:aws:bedrock::aws:foundation-model/titan",
			aws.ToString(kbConfig.VectorKnowledgeBaseConfiguration.EmbeddingModelArn))
		assert.Nil(t, kbConfig.VectorKnowledgeBaseConfiguration.SupplementalDataStorageConfiguration)
	})

	t.Run("multimodal uri emits supplemental storage", func(t *testing.T) {
		spec := StorageSpec{
			Mode:                 StorageS3Vectors,
			BucketARN:            "arn:aws:s3:::vectors",
			EmbeddingModelARN:    "arn:aws:bedrock::aws:foundation-model/titan",
			MultimodalStorageURI: "s3://supplemental/images",
		}

		kbConfig := spec.KnowledgeBaseConfiguration()
		supplemental := kbConfig.VectorKnowledgeBaseConfiguration.SupplementalDataStorageConfiguration
		require.NotNil(t, supplemental)
		require.Len(t, supplemental.StorageLocations, 1)
		assert.Equal(t, "s3://supplemental/images",
			aws.ToString(supplemental.StorageLocations[0].S3Location.Uri))
	})
}

func TestParseParsingSpec(t *testing.T) {
	t.Run("blank strategy yields nil", func(t *testing.T) {
		spec, err := ParseParsingSpec("", "", "", "")
		require.NoError(t, err)
		assert.Nil(t, spec)
	})

	t.Run("foundation model requires model arn", func(t *testing.T) {
		_, err := ParseParsingSpec("BEDROCK_FOUNDATION_MODEL", "", "", "")
		require.EqualError(t, err, "parsing_model_arn is required for BEDROCK_FOUNDATION_MODEL parsing strategy")
	})

	t.Run("data automation needs no model", func(t *testing.T) {
		spec, err := ParseParsingSpec("BEDROCK_DATA_AUTOMATION", "", "MULTIMODAL", "")
		require.NoError(t, err)
		require.NotNil(t, spec)
		assert.Equal(t, ParsingDataAutomation, spec.Strategy)
	})

	t.Run("unknown strategy rejected", func(t *testing.T) {
		_, err := ParseParsingSpec("TEXTRACT", "", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid parsing_strategy: TEXTRACT")
	})
}

func TestParseChunkingSpec(t *testing.T) {
	t.Run("blank strategy yields nil", func(t *testing.T) {
		spec, err := ParseChunkingSpec("", 0, 0, 0, 0, 0)
		require.NoError(t, err)
		assert.Nil(t, spec)
	})

	t.Run("unknown strategy rejected", func(t *testing.T) {
		_, err := ParseChunkingSpec("SENTENCE", 0, 0, 0, 0, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid chunking_strategy: SENTENCE")
	})

	t.Run("overlap percentage bounds enforced", func(t *testing.T) {
		_, err := ParseChunkingSpec("FIXED_SIZE", 300, 101, 0, 0, 0)
		require.EqualError(t, err, "chunking_overlap_percentage must be between 0 and 100")

		_, err = ParseChunkingSpec("FIXED_SIZE", 300, -1, 0, 0, 0)
		require.EqualError(t, err, "chunking_overlap_percentage must be between 0 and 100")
	})
}

// Each strategy must populate exactly its own sub-object.
func TestChunkingConfigurationExclusive(t *testing.T) {
	tests := []struct {
		strategy string
		check    func(t *testing.T, cfg *types.ChunkingConfiguration)
	}{
		{
			strategy: "FIXED_SIZE",
			check: func(t *testing.T, cfg *types.ChunkingConfiguration) {
				require.NotNil(t, cfg.FixedSizeChunkingConfiguration)
				assert.Nil(t, cfg.HierarchicalChunkingConfiguration)
				assert.Nil(t, cfg.SemanticChunkingConfiguration)
				assert.Equal(t, int32(300), aws.ToInt32(cfg.FixedSizeChunkingConfiguration.MaxTokens))
				assert.Equal(t, int32(20), aws.ToInt32(cfg.FixedSizeChunkingConfiguration.OverlapPercentage))
			},
		},
		{
			strategy: "HIERARCHICAL",
			check: func(t *testing.T, cfg *types.ChunkingConfiguration) {
				require.NotNil(t, cfg.HierarchicalChunkingConfiguration)
				assert.Nil(t, cfg.FixedSizeChunkingConfiguration)
				assert.Nil(t, cfg.SemanticChunkingConfiguration)
			},
		},
		{
			strategy: "SEMANTIC",
			check: func(t *testing.T, cfg *types.ChunkingConfiguration) {
				require.NotNil(t, cfg.SemanticChunkingConfiguration)
				assert.Nil(t, cfg.FixedSizeChunkingConfiguration)
				assert.Nil(t, cfg.HierarchicalChunkingConfiguration)
			},
		},
		{
			strategy: "NONE",
			check: func(t *testing.T, cfg *types.ChunkingConfiguration) {
				assert.Nil(t, cfg.FixedSizeChunkingConfiguration)
				assert.Nil(t, cfg.HierarchicalChunkingConfiguration)
				assert.Nil(t, cfg.SemanticChunkingConfiguration)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			spec, err := ParseChunkingSpec(tt.strategy, 300, 20, 60, 1, 95)
			require.NoError(t, err)

			cfg := spec.configuration()
			assert.Equal(t, types.ChunkingStrategy(tt.strategy), cfg.ChunkingStrategy)
			tt.check(t, cfg)
		})
	}
}

func TestVectorIngestionConfiguration(t *testing.T) {
	t.Run("nil spec yields nil", func(t *testing.T) {
		var spec *IngestionSpec
		assert.Nil(t, spec.VectorIngestionConfiguration())
	})

	t.Run("neither strategy yields nil spec", func(t *testing.T) {
		spec, err := ParseIngestionSpec("", "", "", "", "", 0, 0, 0, 0, 0)
		require.NoError(t, err)
		assert.Nil(t, spec)
	})

	t.Run("chunking only omits parsing block", func(t *testing.T) {
		spec, err := ParseIngestionSpec("", "", "", "", "FIXED_SIZE", 300, 20, 0, 0, 0)
		require.NoError(t, err)
		require.NotNil(t, spec)

		cfg := spec.VectorIngestionConfiguration()
		require.NotNil(t, cfg)
		assert.Nil(t, cfg.ParsingConfiguration)
		require.NotNil(t, cfg.ChunkingConfiguration)
	})

	t.Run("parsing only omits chunking block", func(t *testing.T) {
		spec, err := ParseIngestionSpec("BEDROCK_DATA_AUTOMATION", "", "", "", "", 0, 0, 0, 0, 0)
		require.NoError(t, err)
		require.NotNil(t, spec)

		cfg := spec.VectorIngestionConfiguration()
		require.NotNil(t, cfg)
		require.NotNil(t, cfg.ParsingConfiguration)
		assert.Nil(t, cfg.ChunkingConfiguration)
	})
}

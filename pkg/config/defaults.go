package config

const (
	defaultAPIListen = ":8080"

	defaultBlobRoot = "/var/lib/cvrag/blobs"

	defaultIngestBucket      = "cvs"
	defaultIngestSuffix      = ".pdf"
	defaultIngestConcurrency = 4

	defaultEventsTopic = "storage-events"
	defaultEventsGroup = "cvrag-ingest"

	defaultProvider = "ollama"
	defaultTarget   = "http://localhost:11434"

	defaultEmbeddingModel      = "embeddinggemma"
	defaultEmbeddingDimensions = 768

	defaultVectorProvider   = "sqlite"
	defaultVectorCollection = "cv_chunks"

	defaultGenerationModel = "llama3.2"

	defaultQueryTopK = 4
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Blob: BlobConfig{
			Root: defaultBlobRoot,
		},
		Ingest: IngestConfig{
			Bucket:      defaultIngestBucket,
			Suffix:      defaultIngestSuffix,
			Concurrency: defaultIngestConcurrency,
		},
		Events: EventsConfig{
			Enabled: false,
			Brokers: []string{"localhost:9092"},
			Topic:   defaultEventsTopic,
			Group:   defaultEventsGroup,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultProvider,
			Target:     defaultTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		VectorStore: VectorStoreConfig{
			Provider:   defaultVectorProvider,
			Collection: defaultVectorCollection,
			Dimensions: defaultEmbeddingDimensions,
		},
		Generation: GenerationConfig{
			Provider: defaultProvider,
			Target:   defaultTarget,
			Model:    defaultGenerationModel,
		},
		Query: QueryConfig{
			TopK: defaultQueryTopK,
		},
	}
}

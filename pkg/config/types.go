// Package config holds the cvrag configuration: defaults, config.toml
// loading, and environment/flag binding via viper.
package config

// Config is the full service configuration. The TOML layout uses sections
// for logical grouping.
type Config struct {
	API         APIConfig         `mapstructure:"api"`
	Blob        BlobConfig        `mapstructure:"blob"`
	Ingest      IngestConfig      `mapstructure:"ingest"`
	Events      EventsConfig      `mapstructure:"events"`
	Embedding   EmbeddingConfig   `mapstructure:"embedding"`
	VectorStore VectorStoreConfig `mapstructure:"vector_store"`
	Generation  GenerationConfig  `mapstructure:"generation"`
	Query       QueryConfig       `mapstructure:"query"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Listen string `mapstructure:"listen"`

	// AuthToken, when set, requires callers to present it as a bearer
	// token. Auth is transport policy; the pipelines never see it.
	AuthToken string `mapstructure:"auth_token"`
}

// BlobConfig holds blob storage settings.
type BlobConfig struct {
	// Root is the directory the filesystem fetcher resolves buckets under.
	Root string `mapstructure:"root"`
}

// IngestConfig holds ingestion pipeline settings.
type IngestConfig struct {
	// Bucket is the default bucket for CLI-triggered ingestion.
	Bucket string `mapstructure:"bucket"`

	// Suffix filters object names; non-matching objects are skipped.
	Suffix string `mapstructure:"suffix"`

	// Concurrency bounds parallel embedding calls per document.
	Concurrency int `mapstructure:"concurrency"`
}

// EventsConfig holds the Kafka storage-notification settings.
type EventsConfig struct {
	// Enabled turns the Kafka consumer on in `cvrag serve`.
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	Group   string   `mapstructure:"group"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `mapstructure:"provider"`
	Target     string `mapstructure:"target"`
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api_key"`
	Dimensions uint   `mapstructure:"dimensions"`
}

// VectorStoreConfig holds vector store settings.
type VectorStoreConfig struct {
	Provider   string `mapstructure:"provider"`
	Target     string `mapstructure:"target"`
	APIKey     string `mapstructure:"api_key"`
	Collection string `mapstructure:"collection"`

	// Dimensions must match embedding.dimensions; search compares query
	// and stored vectors directly.
	Dimensions uint `mapstructure:"dimensions"`
}

// GenerationConfig holds language-model provider settings.
type GenerationConfig struct {
	Provider string `mapstructure:"provider"`
	Target   string `mapstructure:"target"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
}

// QueryConfig holds query pipeline settings.
type QueryConfig struct {
	TopK int `mapstructure:"top_k"`
}

package main

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/ontology/pkg/ontology"
	"github.com/dmitrymomot/ontology/pkg/vectorizer"
)

// Embedding providers.
const (
	providerOpenAI = "openai"
	providerGoogle = "google"
)

// appConfig holds CLI settings. MongoDB connection settings live in mongo.Config.
type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Database    string `env:"ONTOLOGY_DATABASE" envDefault:"ontologies"`
	Collection  string `env:"ONTOLOGY_COLLECTION" envDefault:"anatomic_locations"`
	SearchIndex string `env:"ONTOLOGY_SEARCH_INDEX"`
	VectorIndex string `env:"ONTOLOGY_VECTOR_INDEX"`
	VectorPath  string `env:"ONTOLOGY_VECTOR_PATH" envDefault:"embedding_vector"`

	Provider    string `env:"EMBEDDING_PROVIDER" envDefault:"openai"`
	Model       string `env:"EMBEDDING_MODEL"`
	Dimensions  int    `env:"EMBEDDING_DIMENSIONS" envDefault:"1536"`
	Concurrency int    `env:"EMBEDDING_CONCURRENCY" envDefault:"1"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	GoogleAPIKey  string `env:"GOOGLE_API_KEY"`
}

// embeddingModel returns the configured model or the provider's default.
func (c appConfig) embeddingModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.provider() == providerGoogle {
		return vectorizer.GoogleTextMultilingualEmbedding002
	}
	return ontology.DefaultEmbeddingModel
}

func (c appConfig) provider() string {
	return strings.ToLower(strings.TrimSpace(c.Provider))
}

func (c appConfig) validate() error {
	switch c.provider() {
	case providerOpenAI, providerGoogle:
	default:
		return fmt.Errorf("unsupported EMBEDDING_PROVIDER %q", c.Provider)
	}
	if c.Dimensions <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be positive, got %d", c.Dimensions)
	}
	return nil
}

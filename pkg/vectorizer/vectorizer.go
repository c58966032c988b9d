package vectorizer

import "context"

// Request describes a single call to an embeddings endpoint.
// Empty Model and zero Dimensions fall back to the vectorizer's configuration.
type Request struct {
	Inputs     []string
	Model      string
	Dimensions int
}

// Vectorizer converts text to embeddings.
type Vectorizer interface {
	// Embed converts a single text to vector embedding.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch converts multiple texts to vector embeddings.
	// Returns embeddings in the same order as input texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Create sends exactly one embeddings request with per-call model and dimensions.
	// Returns one embedding per input, in input order.
	Create(ctx context.Context, req Request) ([][]float32, error)

	// Dimensions returns the vector size this implementation produces by default.
	Dimensions() int
}

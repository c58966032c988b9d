// Package vectorizer turns text into embedding vectors through hosted providers.
//
// OpenAI (openai-go) and Google (genai, Gemini API or Vertex AI) implement the
// same Vectorizer interface, so callers pick a provider at start-up:
//
//	v, err := vectorizer.NewOpenAI(apiKey,
//		vectorizer.WithOpenAIModel(vectorizer.OpenAITextEmbedding3Large),
//		vectorizer.WithOpenAIDimensions(1536),
//	)
//
//	g, err := vectorizer.NewGoogle(ctx, apiKey,
//		vectorizer.WithGoogleModel(vectorizer.GoogleTextEmbedding005),
//		vectorizer.WithGoogleDimensions(768),
//	)
//
// Embed and EmbedBatch use the model and size fixed at construction. Create sends
// exactly one request and lets the caller choose both per call:
//
//	vectors, err := v.Create(ctx, vectorizer.Request{
//		Inputs:     []string{"Left lung"},
//		Model:      vectorizer.OpenAITextEmbedding3Large,
//		Dimensions: 1536,
//	})
//
// Supported sizes:
//   - text-embedding-3-small: 1 to 1536
//   - text-embedding-3-large: 1 to 3072
//   - text-embedding-ada-002: 1536 only
//   - text-embedding-005, text-multilingual-embedding-002: 256, 768, 1536 or 3072
//
// Provider failures are classified into ErrInvalidAPIKey, ErrRateLimitExceeded,
// ErrModelNotSupported, ErrTextTooLong and ErrEmbeddingFailed, with the SDK error
// kept in the chain. Responses missing an embedding fail with
// ErrNoEmbeddingReturned, ErrEmbeddingCountMismatch or ErrEmptyEmbedding.
//
// The OpenAI client is built with SDK retries disabled; WithOpenAIMaxRetries
// turns them back on.
package vectorizer

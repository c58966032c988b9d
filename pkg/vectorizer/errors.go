package vectorizer

import "errors"

// Configuration errors, returned by constructors and request validation.
var (
	ErrInvalidAPIKey        = errors.New("vectorizer: invalid or missing API key")
	ErrModelNotSupported    = errors.New("vectorizer: model not supported")
	ErrInvalidDimensions    = errors.New("vectorizer: invalid dimensions for model")
	ErrClientCreationFailed = errors.New("vectorizer: create API client")
)

// Request errors. Provider failures that fit none of the specific kinds are
// reported as ErrEmbeddingFailed with the SDK error kept in the chain.
var (
	ErrBatchTooLarge     = errors.New("vectorizer: batch size exceeds limit")
	ErrTextTooLong       = errors.New("vectorizer: input exceeds token limit")
	ErrRateLimitExceeded = errors.New("vectorizer: rate limit exceeded")
	ErrEmbeddingFailed   = errors.New("vectorizer: create embedding")
)

// Response errors: the provider answered but not with one usable vector per input.
var (
	ErrNoEmbeddingReturned    = errors.New("vectorizer: no embedding returned")
	ErrEmbeddingCountMismatch = errors.New("vectorizer: embedding count does not match inputs")
	ErrEmptyEmbedding         = errors.New("vectorizer: empty embedding returned")
)

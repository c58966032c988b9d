package vectorizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI model constants.
const (
	OpenAITextEmbedding3Small = "text-embedding-3-small"
	OpenAITextEmbedding3Large = "text-embedding-3-large"
	OpenAITextEmbeddingAda002 = "text-embedding-ada-002"
)

// Native output sizes; text-embedding-3-* accept any smaller size via the dimensions parameter.
const (
	maxDimensionsSmall = 1536
	maxDimensionsLarge = 3072
	dimensionsAda002   = 1536
)

// Compile-time check that OpenAI implements Vectorizer.
var _ Vectorizer = (*OpenAI)(nil)

// OpenAI implements the Vectorizer interface using OpenAI's API.
type OpenAI struct {
	client     openai.Client
	model      string
	dimensions int
	maxBatch   int
	reqOpts    []option.RequestOption
}

// OpenAIOption is a functional option for configuring OpenAI.
type OpenAIOption func(*OpenAI)

// WithOpenAIModel sets the default model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(o *OpenAI) {
		o.model = model
	}
}

// WithOpenAIDimensions sets the default output dimensions.
// Only text-embedding-3-* models accept values below their native size.
func WithOpenAIDimensions(dims int) OpenAIOption {
	return func(o *OpenAI) {
		o.dimensions = dims
	}
}

// WithOpenAIMaxBatchSize sets the maximum number of inputs per request.
func WithOpenAIMaxBatchSize(size int) OpenAIOption {
	return func(o *OpenAI) {
		if size > 0 && size <= 2048 { // OpenAI API limit
			o.maxBatch = size
		}
	}
}

// WithOpenAIHTTPClient sets a custom HTTP client.
func WithOpenAIHTTPClient(client *http.Client) OpenAIOption {
	return func(o *OpenAI) {
		if client != nil {
			o.reqOpts = append(o.reqOpts, option.WithHTTPClient(client))
		}
	}
}

// WithOpenAIBaseURL points the client at a different API root,
// e.g. an Azure deployment, a proxy, or a test server.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(o *OpenAI) {
		if url != "" {
			if !strings.HasSuffix(url, "/") {
				url += "/"
			}
			o.reqOpts = append(o.reqOpts, option.WithBaseURL(url))
		}
	}
}

// WithOpenAIMaxRetries sets how many times the SDK retries a failed request.
// The default is 0: failures surface to the caller immediately.
func WithOpenAIMaxRetries(n int) OpenAIOption {
	return func(o *OpenAI) {
		if n >= 0 {
			o.reqOpts = append(o.reqOpts, option.WithMaxRetries(n))
		}
	}
}

// NewOpenAI creates a new OpenAI vectorizer.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	o := &OpenAI{
		model:    OpenAITextEmbedding3Small,
		maxBatch: 100,
		reqOpts:  []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)},
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.dimensions == 0 {
		d, err := nativeDimensions(o.model)
		if err != nil {
			return nil, err
		}
		o.dimensions = d
	}

	if err := validateOpenAIDimensions(o.model, o.dimensions); err != nil {
		return nil, err
	}

	o.client = openai.NewClient(o.reqOpts...)
	return o, nil
}

func nativeDimensions(model string) (int, error) {
	switch model {
	case OpenAITextEmbedding3Small:
		return maxDimensionsSmall, nil
	case OpenAITextEmbedding3Large:
		return maxDimensionsLarge, nil
	case OpenAITextEmbeddingAda002:
		return dimensionsAda002, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrModelNotSupported, model)
	}
}

// validateOpenAIDimensions checks dims against what the model can produce.
func validateOpenAIDimensions(model string, dims int) error {
	limit, err := nativeDimensions(model)
	if err != nil {
		return err
	}
	if model == OpenAITextEmbeddingAda002 && dims != dimensionsAda002 {
		return fmt.Errorf("%w: %s only produces %d dimensions, got %d",
			ErrInvalidDimensions, model, dimensionsAda002, dims)
	}
	if dims < 1 || dims > limit {
		return fmt.Errorf("%w: %s supports 1 to %d dimensions, got %d",
			ErrInvalidDimensions, model, limit, dims)
	}
	return nil
}

// Embed converts a single text to vector embedding.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := o.Create(ctx, Request{Inputs: []string{text}})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch converts multiple texts to vector embeddings.
// Returns embeddings in the same order as input texts.
func (o *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	return o.Create(ctx, Request{Inputs: texts})
}

// Create sends one embeddings request. Every input must come back with a
// non-empty embedding, otherwise an error is returned instead of a partial result.
func (o *OpenAI) Create(ctx context.Context, req Request) ([][]float32, error) {
	if len(req.Inputs) == 0 {
		return [][]float32{}, nil
	}
	if len(req.Inputs) > o.maxBatch {
		return nil, fmt.Errorf("%w: got %d texts, max is %d", ErrBatchTooLarge, len(req.Inputs), o.maxBatch)
	}

	model := req.Model
	if model == "" {
		model = o.model
	}
	dims := req.Dimensions
	if dims == 0 {
		dims = o.dimensions
		if model != o.model {
			dims, _ = nativeDimensions(model)
		}
	}
	if err := validateOpenAIDimensions(model, dims); err != nil {
		return nil, err
	}

	inputs := make([]string, len(req.Inputs))
	copy(inputs, req.Inputs)

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: inputs,
		},
	}
	// ada-002 rejects the dimensions parameter.
	if model != OpenAITextEmbeddingAda002 {
		params.Dimensions = openai.Int(int64(dims))
	}

	resp, err := o.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	if resp == nil || len(resp.Data) == 0 {
		return nil, ErrNoEmbeddingReturned
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d",
			ErrEmbeddingCountMismatch, len(inputs), len(resp.Data))
	}

	// Convert API response (float64) to our standard format (float32)
	result := make([][]float32, len(inputs))
	for i, data := range resp.Data {
		if len(data.Embedding) == 0 {
			return nil, fmt.Errorf("%w: at index %d", ErrEmptyEmbedding, i)
		}
		embedding := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			embedding[j] = float32(v)
		}
		result[i] = embedding
	}

	return result, nil
}

// Dimensions returns the vector size this implementation produces.
func (o *OpenAI) Dimensions() int {
	return o.dimensions
}

// classifyOpenAIError maps API status codes onto package errors.
// The original error stays in the chain so transport failures remain inspectable.
func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrInvalidAPIKey, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimitExceeded, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrModelNotSupported, err)
		case http.StatusBadRequest:
			if strings.Contains(strings.ToLower(apiErr.Message), "maximum context length") {
				return fmt.Errorf("%w: %w", ErrTextTooLong, err)
			}
		}
	}
	return fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
}

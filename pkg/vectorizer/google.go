package vectorizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"google.golang.org/genai"
)

// Google embedding models. Both accept 256, 768, 1536 or 3072 output dimensions.
const (
	GoogleTextEmbedding005             = "text-embedding-005"
	GoogleTextMultilingualEmbedding002 = "text-multilingual-embedding-002"
)

const (
	defaultDimensionsGoogle = 768
	maxBatchGoogle          = 100
)

var googleDimensions = []int{256, 768, 1536, 3072}

var _ Vectorizer = (*Google)(nil)

// Google embeds text with Gemini API or Vertex AI models through genai.
type Google struct {
	client     *genai.Client
	model      string
	dimensions int
	maxBatch   int
	backend    genai.Backend
	project    string
	location   string
}

// GoogleOption configures Google.
type GoogleOption func(*Google)

// WithGoogleModel sets the default model.
func WithGoogleModel(model string) GoogleOption {
	return func(g *Google) { g.model = model }
}

// WithGoogleDimensions sets the default output size.
func WithGoogleDimensions(dims int) GoogleOption {
	return func(g *Google) { g.dimensions = dims }
}

// WithGoogleMaxBatchSize caps inputs per request. Values outside 1..100 are ignored.
func WithGoogleMaxBatchSize(size int) GoogleOption {
	return func(g *Google) {
		if size > 0 && size <= maxBatchGoogle {
			g.maxBatch = size
		}
	}
}

// WithGoogleBackend selects Gemini API or Vertex AI.
func WithGoogleBackend(backend genai.Backend) GoogleOption {
	return func(g *Google) { g.backend = backend }
}

// WithGoogleProject sets the GCP project for Vertex AI.
func WithGoogleProject(project string) GoogleOption {
	return func(g *Google) { g.project = project }
}

// WithGoogleLocation sets the GCP region for Vertex AI.
func WithGoogleLocation(location string) GoogleOption {
	return func(g *Google) { g.location = location }
}

// NewGoogle creates a Gemini API vectorizer authenticated with apiKey.
// Defaults: text-multilingual-embedding-002 at 768 dimensions.
func NewGoogle(ctx context.Context, apiKey string, opts ...GoogleOption) (*Google, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	g := newGoogle(genai.BackendGeminiAPI, opts...)
	return g.connect(ctx, &genai.ClientConfig{
		APIKey:   apiKey,
		Backend:  g.backend,
		Project:  g.project,
		Location: g.location,
	})
}

// NewGoogleVertexAI creates a Vertex AI vectorizer using application default credentials.
func NewGoogleVertexAI(ctx context.Context, project, location string, opts ...GoogleOption) (*Google, error) {
	if project == "" || location == "" {
		return nil, fmt.Errorf("%w: vertex ai requires project and location", ErrClientCreationFailed)
	}

	g := newGoogle(genai.BackendVertexAI, append([]GoogleOption{
		WithGoogleProject(project),
		WithGoogleLocation(location),
	}, opts...)...)
	return g.connect(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  g.project,
		Location: g.location,
	})
}

func newGoogle(backend genai.Backend, opts ...GoogleOption) *Google {
	g := &Google{
		model:      GoogleTextMultilingualEmbedding002,
		dimensions: defaultDimensionsGoogle,
		maxBatch:   maxBatchGoogle,
		backend:    backend,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// connect validates the configuration before building the client.
func (g *Google) connect(ctx context.Context, cfg *genai.ClientConfig) (*Google, error) {
	if err := validateGoogleConfiguration(g.model, g.dimensions); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClientCreationFailed, err)
	}
	g.client = client
	return g, nil
}

func validateGoogleConfiguration(model string, dims int) error {
	switch model {
	case GoogleTextEmbedding005, GoogleTextMultilingualEmbedding002:
	default:
		return fmt.Errorf("%w: %s", ErrModelNotSupported, model)
	}
	if !slices.Contains(googleDimensions, dims) {
		return fmt.Errorf("%w: %s supports 256, 768, 1536 or 3072, got %d", ErrInvalidDimensions, model, dims)
	}
	return nil
}

// Embed returns the embedding of one text using the default model and size.
func (g *Google) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.Create(ctx, Request{Inputs: []string{text}})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in one request, preserving input order.
func (g *Google) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	return g.Create(ctx, Request{Inputs: texts})
}

// Create sends one EmbedContent call with per-request model and dimensions.
func (g *Google) Create(ctx context.Context, req Request) ([][]float32, error) {
	if len(req.Inputs) == 0 {
		return [][]float32{}, nil
	}
	if len(req.Inputs) > g.maxBatch {
		return nil, fmt.Errorf("%w: got %d texts, max is %d", ErrBatchTooLarge, len(req.Inputs), g.maxBatch)
	}

	model := req.Model
	if model == "" {
		model = g.model
	}
	dims := req.Dimensions
	if dims == 0 {
		dims = g.dimensions
	}
	if err := validateGoogleConfiguration(model, dims); err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, len(req.Inputs))
	for i, text := range req.Inputs {
		contents[i] = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(text)},
		}
	}

	d := int32(dims)
	config := &genai.EmbedContentConfig{OutputDimensionality: &d}

	resp, err := g.client.Models.EmbedContent(ctx, "models/"+model, contents, config)
	if err != nil {
		return nil, classifyGoogleError(err)
	}

	if resp == nil || len(resp.Embeddings) == 0 {
		return nil, ErrNoEmbeddingReturned
	}
	if len(resp.Embeddings) != len(req.Inputs) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d",
			ErrEmbeddingCountMismatch, len(req.Inputs), len(resp.Embeddings))
	}

	result := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("%w: at index %d", ErrEmptyEmbedding, i)
		}
		result[i] = emb.Values
	}

	return result, nil
}

// Dimensions returns the default output size.
func (g *Google) Dimensions() int {
	return g.dimensions
}

func classifyGoogleError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}

	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrInvalidAPIKey, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimitExceeded, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrModelNotSupported, err)
	default:
		return fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
}

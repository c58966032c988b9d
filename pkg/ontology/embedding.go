package ontology

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/ontology/core/logger"
	"github.com/dmitrymomot/ontology/pkg/vectorizer"
)

// Defaults for embedding requests.
const (
	DefaultEmbeddingModel      = vectorizer.OpenAITextEmbedding3Large
	DefaultEmbeddingDimensions = 1536
)

// EmbeddingClient sends one embeddings request. Every vectorizer.Vectorizer satisfies it.
type EmbeddingClient interface {
	Create(ctx context.Context, req vectorizer.Request) ([][]float32, error)
}

// EmbeddingCreator turns concepts into embedding vectors, one service request per concept.
type EmbeddingCreator struct {
	client      EmbeddingClient
	log         *slog.Logger
	concurrency int
}

// CreatorOption configures an EmbeddingCreator.
type CreatorOption func(*EmbeddingCreator)

// WithConcurrency lets CreateEmbeddings keep up to n requests in flight.
// Values below 2 keep requests strictly sequential, which is the default.
func WithConcurrency(n int) CreatorOption {
	return func(c *EmbeddingCreator) {
		c.concurrency = max(n, 1)
	}
}

// WithCreatorLogger sets the logger. Defaults to a discarding logger.
func WithCreatorLogger(log *slog.Logger) CreatorOption {
	return func(c *EmbeddingCreator) {
		if log != nil {
			c.log = log
		}
	}
}

// NewEmbeddingCreator wraps an embedding service client.
func NewEmbeddingCreator(client EmbeddingClient, opts ...CreatorOption) *EmbeddingCreator {
	c := &EmbeddingCreator{
		client:      client,
		log:         logger.Nop(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("embedding_creator"))
	return c
}

// EmbedOption overrides request parameters for a single call.
type EmbedOption func(*embedParams)

type embedParams struct {
	model      string
	dimensions int
}

// WithModel sets the embedding model. Defaults to DefaultEmbeddingModel.
func WithModel(model string) EmbedOption {
	return func(p *embedParams) {
		if model != "" {
			p.model = model
		}
	}
}

// WithDimensions sets the output vector length. Defaults to DefaultEmbeddingDimensions.
func WithDimensions(n int) EmbedOption {
	return func(p *embedParams) {
		if n > 0 {
			p.dimensions = n
		}
	}
}

func newEmbedParams(opts []EmbedOption) embedParams {
	p := embedParams{model: DefaultEmbeddingModel, dimensions: DefaultEmbeddingDimensions}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// TextForEmbedding returns the concept's embedding text flattened to a single line.
func (c *EmbeddingCreator) TextForEmbedding(concept Concept) string {
	return TextForEmbedding(concept)
}

// TextForEmbedding is the pure function behind EmbeddingCreator.TextForEmbedding.
// Every newline becomes a single space.
func TextForEmbedding(concept Concept) string {
	return strings.ReplaceAll(concept.TextForEmbedding(), "\n", " ")
}

// CreateEmbedding sends exactly one request for the concept and returns its vector.
func (c *EmbeddingCreator) CreateEmbedding(ctx context.Context, concept Concept, opts ...EmbedOption) ([]float32, error) {
	return c.embed(ctx, concept, newEmbedParams(opts))
}

// CreateEmbeddings embeds each concept with its own request and returns the
// vectors in input order. The first failure aborts the batch; no partial result is returned.
func (c *EmbeddingCreator) CreateEmbeddings(ctx context.Context, concepts []Concept, opts ...EmbedOption) ([][]float32, error) {
	if len(concepts) == 0 {
		return [][]float32{}, nil
	}

	p := newEmbedParams(opts)
	start := time.Now()
	vectors := make([][]float32, len(concepts))

	if c.concurrency <= 1 {
		for i, concept := range concepts {
			vec, err := c.embed(ctx, concept, p)
			if err != nil {
				return nil, err
			}
			vectors[i] = vec
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.concurrency)
		for i, concept := range concepts {
			g.Go(func() error {
				vec, err := c.embed(gctx, concept, p)
				if err != nil {
					return err
				}
				vectors[i] = vec
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	c.log.DebugContext(ctx, "Embeddings created",
		logger.Count("count", len(vectors)),
		logger.Model(p.model),
		logger.Elapsed(start),
	)
	return vectors, nil
}

func (c *EmbeddingCreator) embed(ctx context.Context, concept Concept, p embedParams) ([]float32, error) {
	text := TextForEmbedding(concept)

	vectors, err := c.client.Create(ctx, vectorizer.Request{
		Inputs:     []string{text},
		Model:      p.model,
		Dimensions: p.dimensions,
	})
	if err != nil {
		err = classifyServiceError(err)
		attrs := []any{
			logger.Error(err),
			logger.ConceptID(concept.ID),
			logger.Model(p.model),
			logger.Dimensions(p.dimensions),
		}
		// A canceled sibling of a failed batch request is not a failure of its own.
		if ctx.Err() != nil {
			c.log.DebugContext(ctx, "Embedding request canceled", attrs...)
		} else {
			c.log.ErrorContext(ctx, "Embedding request failed", attrs...)
		}
		return nil, err
	}

	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for concept %s", ErrEmbeddingService, concept.ID)
	}
	if got := len(vectors[0]); got != p.dimensions {
		return nil, fmt.Errorf("%w: expected %d dimensions for concept %s, got %d",
			ErrEmbeddingService, p.dimensions, concept.ID, got)
	}

	return vectors[0], nil
}

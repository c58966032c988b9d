package ontology

import (
	"context"

	"github.com/dmitrymomot/ontology/pkg/async"
)

// AsyncRepository exposes Repository operations as futures.
// Each call runs the blocking operation on its own goroutine; the caller
// suspends only when it awaits the result.
type AsyncRepository struct {
	repo *Repository
}

// NewAsyncRepository wraps a concept collection for asynchronous use.
func NewAsyncRepository(coll Collection, opts ...RepositoryOption) *AsyncRepository {
	return &AsyncRepository{repo: NewRepository(coll, opts...)}
}

// Async returns the asynchronous view of r. Both share configuration.
func (r *Repository) Async() *AsyncRepository {
	return &AsyncRepository{repo: r}
}

// Count resolves to the number of stored concepts.
func (a *AsyncRepository) Count(ctx context.Context) *async.Future[int64] {
	return async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (int64, error) {
		return a.repo.Count(ctx)
	})
}

// Concept resolves to the concept with the given id, or nil when absent.
func (a *AsyncRepository) Concept(ctx context.Context, id string) *async.Future[*Concept] {
	return async.Async(ctx, id, a.repo.Concept)
}

// Concepts resolves to the concepts matching ids.
func (a *AsyncRepository) Concepts(ctx context.Context, ids []string) *async.Future[[]Concept] {
	return async.Async(ctx, ids, a.repo.Concepts)
}

// RandomConcepts resolves to n sampled concepts.
func (a *AsyncRepository) RandomConcepts(ctx context.Context, n int) *async.Future[[]Concept] {
	return async.Async(ctx, n, a.repo.RandomConcepts)
}

type searchArgs struct {
	term  string
	limit int
}

// TextSearch resolves to at most limit concepts matching term.
func (a *AsyncRepository) TextSearch(ctx context.Context, term string, limit int) *async.Future[[]Concept] {
	return async.Async(ctx, searchArgs{term: term, limit: limit}, func(ctx context.Context, s searchArgs) ([]Concept, error) {
		return a.repo.TextSearch(ctx, s.term, s.limit)
	})
}

// VectorSearch resolves to at most limit concepts nearest to vector.
func (a *AsyncRepository) VectorSearch(ctx context.Context, vector []float32, limit int) *async.Future[[]Concept] {
	return async.Async(ctx, vector, func(ctx context.Context, v []float32) ([]Concept, error) {
		return a.repo.VectorSearch(ctx, v, limit)
	})
}

// AsyncEmbeddingCreator exposes EmbeddingCreator operations as futures.
type AsyncEmbeddingCreator struct {
	creator *EmbeddingCreator
}

// NewAsyncEmbeddingCreator wraps an embedding service client for asynchronous use.
func NewAsyncEmbeddingCreator(client EmbeddingClient, opts ...CreatorOption) *AsyncEmbeddingCreator {
	return &AsyncEmbeddingCreator{creator: NewEmbeddingCreator(client, opts...)}
}

// Async returns the asynchronous view of c. Both share configuration.
func (c *EmbeddingCreator) Async() *AsyncEmbeddingCreator {
	return &AsyncEmbeddingCreator{creator: c}
}

// TextForEmbedding is synchronous: it does no I/O.
func (a *AsyncEmbeddingCreator) TextForEmbedding(concept Concept) string {
	return TextForEmbedding(concept)
}

// CreateEmbedding resolves to the embedding of concept.
func (a *AsyncEmbeddingCreator) CreateEmbedding(ctx context.Context, concept Concept, opts ...EmbedOption) *async.Future[[]float32] {
	return async.Async(ctx, concept, func(ctx context.Context, c Concept) ([]float32, error) {
		return a.creator.CreateEmbedding(ctx, c, opts...)
	})
}

// CreateEmbeddings resolves to the embeddings of concepts, in input order.
func (a *AsyncEmbeddingCreator) CreateEmbeddings(ctx context.Context, concepts []Concept, opts ...EmbedOption) *async.Future[[][]float32] {
	return async.Async(ctx, concepts, func(ctx context.Context, cs []Concept) ([][]float32, error) {
		return a.creator.CreateEmbeddings(ctx, cs, opts...)
	})
}

package ontology

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/ontology/core/logger"
)

// DefaultVectorPath is the document field holding a concept's embedding.
const DefaultVectorPath = "embedding_vector"

// maxNumCandidates is the largest candidate pool Atlas accepts for $vectorSearch.
const maxNumCandidates = 10000

// searchPaths are the descriptive fields covered by Atlas Search queries.
var searchPaths = []string{"description", "synonyms", "definition"}

// Repository reads concepts from a document collection.
// It is safe for concurrent use as long as the collection is.
type Repository struct {
	coll        Collection
	log         *slog.Logger
	searchIndex string
	vectorIndex string
	vectorPath  string
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithSearchIndex makes TextSearch use the named Atlas Search index ($search)
// instead of the collection's text index ($text).
func WithSearchIndex(name string) RepositoryOption {
	return func(r *Repository) {
		r.searchIndex = name
	}
}

// WithVectorIndex enables VectorSearch against the named Atlas vector index.
func WithVectorIndex(name string) RepositoryOption {
	return func(r *Repository) {
		r.vectorIndex = name
	}
}

// WithVectorPath sets the field holding embeddings. Defaults to DefaultVectorPath.
func WithVectorPath(path string) RepositoryOption {
	return func(r *Repository) {
		if path != "" {
			r.vectorPath = path
		}
	}
}

// WithRepositoryLogger sets the logger. Defaults to a discarding logger.
func WithRepositoryLogger(log *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRepository wraps a concept collection. The caller owns the collection's lifecycle.
func NewRepository(coll Collection, opts ...RepositoryOption) *Repository {
	r := &Repository{
		coll:       coll,
		log:        logger.Nop(),
		vectorPath: DefaultVectorPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("repository"), logger.Collection(coll.Name()))
	return r
}

// Count returns the number of stored concepts.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, r.fail(ctx, err, "count")
	}
	return n, nil
}

// Concept looks up a concept by identifier.
// It returns nil and no error when nothing matches.
func (r *Repository) Concept(ctx context.Context, id string) (*Concept, error) {
	var c Concept
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}},
		options.FindOne().SetProjection(r.projection()),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		r.log.DebugContext(ctx, "Concept not found", logger.ConceptID(id))
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(ctx, err, "get concept", logger.ConceptID(id))
	}
	return &c, nil
}

// Concepts looks up several concepts at once. Unknown identifiers are skipped,
// duplicates collapse, and the result order is unspecified.
func (r *Repository) Concepts(ctx context.Context, ids []string) ([]Concept, error) {
	if len(ids) == 0 {
		return []Concept{}, nil
	}

	unique := slices.Clone(ids)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	cur, err := r.coll.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: unique}}}},
		options.Find().SetProjection(r.projection()),
	)
	if err != nil {
		return nil, r.fail(ctx, err, "get concepts", logger.ConceptIDs(unique))
	}
	return r.decodeAll(ctx, cur, "get concepts")
}

// RandomConcepts returns n concepts sampled by the store. Samples differ between calls.
// Fewer than n are returned only when the collection holds fewer documents.
func (r *Repository) RandomConcepts(ctx context.Context, n int) ([]Concept, error) {
	if n <= 0 {
		return []Concept{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: n}}}},
		{{Key: "$project", Value: r.projection()}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, r.fail(ctx, err, "random concepts", logger.Count("size", n))
	}
	return r.decodeAll(ctx, cur, "random concepts")
}

// TextSearch returns at most limit concepts matching term, best match first.
// Ranking is the store's relevance score.
func (r *Repository) TextSearch(ctx context.Context, term string, limit int) ([]Concept, error) {
	term = strings.TrimSpace(term)
	if term == "" || limit <= 0 {
		return []Concept{}, nil
	}

	var (
		cur *mongo.Cursor
		err error
	)
	if r.searchIndex != "" {
		pipeline := mongo.Pipeline{
			{{Key: "$search", Value: bson.D{
				{Key: "index", Value: r.searchIndex},
				{Key: "text", Value: bson.D{
					{Key: "query", Value: term},
					{Key: "path", Value: searchPaths},
				}},
			}}},
			{{Key: "$limit", Value: limit}},
			{{Key: "$project", Value: r.projection()}},
		}
		cur, err = r.coll.Aggregate(ctx, pipeline)
	} else {
		cur, err = r.coll.Find(ctx,
			bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: term}}}},
			options.Find().
				SetSort(bson.D{{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}}}).
				SetLimit(int64(limit)).
				SetProjection(r.projection()),
		)
	}
	if err != nil {
		return nil, r.fail(ctx, err, "text search", slog.String("term", term))
	}

	concepts, err := r.decodeAll(ctx, cur, "text search")
	if err != nil {
		return nil, err
	}
	// The store enforces the limit; this guards against engines that do not.
	if len(concepts) > limit {
		concepts = concepts[:limit]
	}
	return concepts, nil
}

// VectorSearch returns at most limit concepts nearest to vector using the
// configured Atlas vector index. The candidate pool is ten times the limit,
// capped at 10000.
func (r *Repository) VectorSearch(ctx context.Context, vector []float32, limit int) ([]Concept, error) {
	if r.vectorIndex == "" {
		return nil, ErrVectorSearchDisabled
	}
	if len(vector) == 0 || limit <= 0 {
		return []Concept{}, nil
	}
	limit = min(limit, maxNumCandidates)

	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: r.vectorIndex},
			{Key: "path", Value: r.vectorPath},
			{Key: "queryVector", Value: vector},
			{Key: "numCandidates", Value: min(limit*10, maxNumCandidates)},
			{Key: "limit", Value: limit},
		}}},
		{{Key: "$project", Value: r.projection()}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, r.fail(ctx, err, "vector search", logger.Dimensions(len(vector)))
	}
	return r.decodeAll(ctx, cur, "vector search")
}

// projection keeps stored embeddings out of decoded results.
func (r *Repository) projection() bson.D {
	return bson.D{{Key: r.vectorPath, Value: 0}}
}

func (r *Repository) decodeAll(ctx context.Context, cur *mongo.Cursor, operation string) ([]Concept, error) {
	concepts := []Concept{}
	if err := cur.All(ctx, &concepts); err != nil {
		return nil, r.fail(ctx, err, operation)
	}
	r.log.DebugContext(ctx, "Concepts fetched", logger.Action(operation), logger.Count("count", len(concepts)))
	return concepts, nil
}

func (r *Repository) fail(ctx context.Context, err error, operation string, attrs ...any) error {
	err = classifyStoreError(err, operation)
	r.log.ErrorContext(ctx, "Concept store operation failed",
		append([]any{logger.Action(operation), logger.Error(err)}, attrs...)...)
	return err
}

package ontology

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/ontology/core/logger"
)

// IndexResult summarizes one indexing run.
type IndexResult struct {
	RunID    string `json:"run_id"`
	Embedded int    `json:"embedded"`
	Matched  int64  `json:"matched"`
	Modified int64  `json:"modified"`
}

// Indexer embeds concepts and stores the vectors back on their documents,
// making them available to VectorSearch.
type Indexer struct {
	repo      *Repository
	creator   *EmbeddingCreator
	coll      WritableCollection
	path      string
	embedOpts []EmbedOption
	log       *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithIndexPath sets the field written with the vector. Defaults to DefaultVectorPath.
func WithIndexPath(path string) IndexerOption {
	return func(ix *Indexer) {
		if path != "" {
			ix.path = path
		}
	}
}

// WithIndexEmbedOptions sets the model and dimensions used for every concept.
func WithIndexEmbedOptions(opts ...EmbedOption) IndexerOption {
	return func(ix *Indexer) {
		ix.embedOpts = append(ix.embedOpts, opts...)
	}
}

// WithIndexerLogger sets the logger. Defaults to a discarding logger.
func WithIndexerLogger(log *slog.Logger) IndexerOption {
	return func(ix *Indexer) {
		if log != nil {
			ix.log = log
		}
	}
}

// NewIndexer wires a repository and an embedding creator to a writable collection.
// The collection is normally the one the repository reads from.
func NewIndexer(repo *Repository, creator *EmbeddingCreator, coll WritableCollection, opts ...IndexerOption) *Indexer {
	ix := &Indexer{
		repo:    repo,
		creator: creator,
		coll:    coll,
		path:    DefaultVectorPath,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	ix.log = ix.log.With(logger.Component("indexer"), logger.Collection(coll.Name()))
	return ix
}

// IndexConcepts embeds and stores the concepts with the given identifiers.
// Unknown identifiers are skipped.
func (ix *Indexer) IndexConcepts(ctx context.Context, ids []string) (IndexResult, error) {
	concepts, err := ix.repo.Concepts(ctx, ids)
	if err != nil {
		return IndexResult{}, err
	}
	return ix.Index(ctx, concepts)
}

// IndexRandom embeds and stores n randomly sampled concepts.
func (ix *Indexer) IndexRandom(ctx context.Context, n int) (IndexResult, error) {
	concepts, err := ix.repo.RandomConcepts(ctx, n)
	if err != nil {
		return IndexResult{}, err
	}
	return ix.Index(ctx, concepts)
}

// Index embeds concepts and writes all vectors in one bulk write.
// Nothing is written if any embedding fails.
func (ix *Indexer) Index(ctx context.Context, concepts []Concept) (IndexResult, error) {
	res := IndexResult{RunID: uuid.NewString()}
	log := ix.log.With(logger.ID("run_id", res.RunID))
	start := time.Now()

	if len(concepts) == 0 {
		log.InfoContext(ctx, "Nothing to index")
		return res, nil
	}

	vectors, err := ix.creator.CreateEmbeddings(ctx, concepts, ix.embedOpts...)
	if err != nil {
		log.ErrorContext(ctx, "Indexing aborted", logger.Error(err))
		return res, err
	}

	models := make([]mongo.WriteModel, len(concepts))
	for i, c := range concepts {
		models[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: c.ID}}).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{{Key: ix.path, Value: vectors[i]}}}})
	}

	out, err := ix.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		err = classifyStoreError(err, "store embeddings")
		log.ErrorContext(ctx, "Storing embeddings failed", logger.Error(err))
		return res, err
	}
	if out == nil {
		return res, fmt.Errorf("ontology: store embeddings: empty bulk write result")
	}

	res.Embedded = len(concepts)
	res.Matched = out.MatchedCount
	res.Modified = out.ModifiedCount

	log.InfoContext(ctx, "Concepts indexed",
		logger.Count("embedded", res.Embedded),
		slog.Int64("matched", res.Matched),
		slog.Int64("modified", res.Modified),
		logger.Elapsed(start),
	)
	return res, nil
}

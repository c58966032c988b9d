package main

import (
	"context"
	"fmt"
	"log/slog"

	driver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/ontology/core/config"
	"github.com/dmitrymomot/ontology/core/logger"
	"github.com/dmitrymomot/ontology/integration/database/mongo"
	"github.com/dmitrymomot/ontology/pkg/ontology"
	"github.com/dmitrymomot/ontology/pkg/vectorizer"
)

// app holds lazily built dependencies shared by subcommands.
// Fields left nil are built on first use.
type app struct {
	cfg appConfig
	log *slog.Logger

	client   *driver.Client
	coll     ontology.WritableCollection
	dbCheck  func(context.Context) error
	embedder vectorizer.Vectorizer
}

func (a *app) connect(ctx context.Context) error {
	if a.coll != nil {
		return nil
	}

	var dbCfg mongo.Config
	if err := config.Load(&dbCfg); err != nil {
		return err
	}

	client, err := mongo.New(ctx, dbCfg)
	if err != nil {
		return err
	}

	a.client = client
	a.coll = client.Database(a.cfg.Database).Collection(a.cfg.Collection)
	a.dbCheck = mongo.Healthcheck(client)
	return nil
}

// pingStore checks the concept store answers.
func (a *app) pingStore(ctx context.Context) error {
	if err := a.connect(ctx); err != nil {
		return err
	}
	if a.dbCheck == nil {
		return nil
	}
	return a.dbCheck(ctx)
}

// pingProvider sends one embedding request with the configured model and size.
func (a *app) pingProvider(ctx context.Context) error {
	v, err := a.vectorizer(ctx)
	if err != nil {
		return err
	}
	if _, err := v.Create(ctx, vectorizer.Request{
		Inputs:     []string{"ping"},
		Model:      a.cfg.embeddingModel(),
		Dimensions: a.cfg.Dimensions,
	}); err != nil {
		return fmt.Errorf("embedding provider %s: %w", a.cfg.provider(), err)
	}
	return nil
}

func (a *app) close(ctx context.Context) {
	if a.client == nil {
		return
	}
	if err := a.client.Disconnect(ctx); err != nil {
		a.log.WarnContext(ctx, "Disconnect failed", logger.Error(err))
	}
}

func (a *app) repository(ctx context.Context) (*ontology.Repository, error) {
	if err := a.connect(ctx); err != nil {
		return nil, err
	}
	return ontology.NewRepository(a.coll,
		ontology.WithSearchIndex(a.cfg.SearchIndex),
		ontology.WithVectorIndex(a.cfg.VectorIndex),
		ontology.WithVectorPath(a.cfg.VectorPath),
		ontology.WithRepositoryLogger(a.log),
	), nil
}

func (a *app) vectorizer(ctx context.Context) (vectorizer.Vectorizer, error) {
	if a.embedder != nil {
		return a.embedder, nil
	}

	var (
		v   vectorizer.Vectorizer
		err error
	)
	switch a.cfg.provider() {
	case providerGoogle:
		v, err = vectorizer.NewGoogle(ctx, a.cfg.GoogleAPIKey,
			vectorizer.WithGoogleModel(a.cfg.embeddingModel()),
			vectorizer.WithGoogleDimensions(a.cfg.Dimensions),
		)
	case providerOpenAI:
		v, err = vectorizer.NewOpenAI(a.cfg.OpenAIAPIKey,
			vectorizer.WithOpenAIModel(a.cfg.embeddingModel()),
			vectorizer.WithOpenAIDimensions(a.cfg.Dimensions),
			vectorizer.WithOpenAIBaseURL(a.cfg.OpenAIBaseURL),
		)
	default:
		err = fmt.Errorf("unsupported embedding provider %q", a.cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	a.embedder = v
	return v, nil
}

func (a *app) creator(ctx context.Context) (*ontology.EmbeddingCreator, error) {
	v, err := a.vectorizer(ctx)
	if err != nil {
		return nil, err
	}
	return ontology.NewEmbeddingCreator(v,
		ontology.WithConcurrency(a.cfg.Concurrency),
		ontology.WithCreatorLogger(a.log),
	), nil
}

func (a *app) embedOptions() []ontology.EmbedOption {
	return []ontology.EmbedOption{
		ontology.WithModel(a.cfg.embeddingModel()),
		ontology.WithDimensions(a.cfg.Dimensions),
	}
}

func (a *app) indexer(ctx context.Context) (*ontology.Indexer, error) {
	repo, err := a.repository(ctx)
	if err != nil {
		return nil, err
	}
	creator, err := a.creator(ctx)
	if err != nil {
		return nil, err
	}
	return ontology.NewIndexer(repo, creator, a.coll,
		ontology.WithIndexPath(a.cfg.VectorPath),
		ontology.WithIndexEmbedOptions(a.embedOptions()...),
		ontology.WithIndexerLogger(a.log),
	), nil
}

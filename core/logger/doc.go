// Package logger provides structured logging utilities built on Go's standard slog package.
//
// New builds a *slog.Logger from functional options with environment presets
// (development, staging, production), optional context attribute extraction,
// and a set of attribute helpers for the fields this module logs most often.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "ontology"),
//		logger.WithLevelString("debug"),
//	)
//
//	log.Info("Concepts fetched",
//		logger.Component("repository"),
//		logger.Collection("anatomic_locations"),
//		logger.Count("count", len(concepts)),
//	)
//
// # Context-Aware Logging
//
// Attributes can be pulled from the record's context on every call:
//
//	log := logger.New(
//		logger.WithProduction("ontology"),
//		logger.WithContextValue("run_id", runIDKey{}),
//	)
//	log.InfoContext(ctx, "Indexing started")
//
// # Attribute Helpers
//
// Helpers such as Error, ConceptID and Collection return an empty slog.Attr for
// nil or blank input, so they are safe to pass without checks:
//
//	log.Error("Embedding failed",
//		logger.Error(err),
//		logger.ConceptID(concept.ID),
//		logger.Model(model),
//		logger.Dimensions(dims),
//	)
//
// Use Nop for components that were not given a logger.
package logger

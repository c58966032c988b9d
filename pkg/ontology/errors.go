package ontology

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	// ErrConnectivity indicates the document store or the embedding service could
	// not be reached or timed out.
	ErrConnectivity = errors.New("ontology: backend unreachable")

	// ErrEmbeddingService indicates the embedding service failed or returned a
	// response without a usable embedding.
	ErrEmbeddingService = errors.New("ontology: embedding service error")

	// ErrVectorSearchDisabled is returned by VectorSearch when no vector index is configured.
	ErrVectorSearchDisabled = errors.New("ontology: vector search index not configured")
)

// classifyStoreError wraps a driver error with the operation name,
// tagging unreachable-store conditions with ErrConnectivity.
func classifyStoreError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("ontology: %s canceled: %w", operation, err)
	}

	if isConnectivityError(err) ||
		mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %s: %w", ErrConnectivity, operation, err)
	}

	return fmt.Errorf("ontology: %s: %w", operation, err)
}

// classifyServiceError wraps an embedding client error with ErrEmbeddingService,
// adding ErrConnectivity when the service could not be reached.
func classifyServiceError(err error) error {
	if err == nil {
		return nil
	}
	if isConnectivityError(err) {
		return fmt.Errorf("%w: %w: %w", ErrEmbeddingService, ErrConnectivity, err)
	}
	return fmt.Errorf("%w: %w", ErrEmbeddingService, err)
}

func isConnectivityError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

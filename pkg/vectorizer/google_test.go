package vectorizer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ontology/pkg/vectorizer"
)

func TestNewGoogleValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("requires api key", func(t *testing.T) {
		t.Parallel()
		_, err := vectorizer.NewGoogle(ctx, "")
		assert.ErrorIs(t, err, vectorizer.ErrInvalidAPIKey)
	})

	t.Run("rejects unsupported dimensions", func(t *testing.T) {
		t.Parallel()
		_, err := vectorizer.NewGoogle(ctx, "key", vectorizer.WithGoogleDimensions(1000))
		assert.ErrorIs(t, err, vectorizer.ErrInvalidDimensions)
	})

	t.Run("rejects unknown model", func(t *testing.T) {
		t.Parallel()
		_, err := vectorizer.NewGoogle(ctx, "key", vectorizer.WithGoogleModel("nope"))
		assert.ErrorIs(t, err, vectorizer.ErrModelNotSupported)
	})

	t.Run("vertex requires project and location", func(t *testing.T) {
		t.Parallel()
		_, err := vectorizer.NewGoogleVertexAI(ctx, "", "")
		assert.ErrorIs(t, err, vectorizer.ErrClientCreationFailed)
	})
}

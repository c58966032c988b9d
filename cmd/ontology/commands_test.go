package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/ontology/pkg/ontology"
	"github.com/dmitrymomot/ontology/pkg/vectorizer"
)

type mockCollection struct {
	mock.Mock
}

func (m *mockCollection) Name() string { return "anatomic_locations" }

func (m *mockCollection) CountDocuments(ctx context.Context, filter any, _ ...options.Lister[options.CountOptions]) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCollection) FindOne(ctx context.Context, filter any, _ ...options.Lister[options.FindOneOptions]) *mongo.SingleResult {
	args := m.Called(ctx, filter)
	return args.Get(0).(*mongo.SingleResult)
}

func (m *mockCollection) Find(ctx context.Context, filter any, _ ...options.Lister[options.FindOptions]) (*mongo.Cursor, error) {
	args := m.Called(ctx, filter)
	cur, _ := args.Get(0).(*mongo.Cursor)
	return cur, args.Error(1)
}

func (m *mockCollection) Aggregate(ctx context.Context, pipeline any, _ ...options.Lister[options.AggregateOptions]) (*mongo.Cursor, error) {
	args := m.Called(ctx, pipeline)
	cur, _ := args.Get(0).(*mongo.Cursor)
	return cur, args.Error(1)
}

func (m *mockCollection) BulkWrite(ctx context.Context, models []mongo.WriteModel, _ ...options.Lister[options.BulkWriteOptions]) (*mongo.BulkWriteResult, error) {
	args := m.Called(ctx, models)
	res, _ := args.Get(0).(*mongo.BulkWriteResult)
	return res, args.Error(1)
}

// constantEmbedder returns one vector per input, every component set to value.
type constantEmbedder struct {
	value float32
	err   error
}

func (e constantEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	v, err := e.Create(ctx, vectorizer.Request{Inputs: []string{text}})
	if err != nil {
		return nil, err
	}
	return v[0], nil
}

func (e constantEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return e.Create(ctx, vectorizer.Request{Inputs: texts})
}

func (e constantEmbedder) Create(_ context.Context, req vectorizer.Request) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	dims := req.Dimensions
	if dims == 0 {
		dims = e.Dimensions()
	}
	out := make([][]float32, len(req.Inputs))
	for i := range out {
		out[i] = make([]float32, dims)
		for j := range out[i] {
			out[i][j] = e.value
		}
	}
	return out, nil
}

func (constantEmbedder) Dimensions() int { return 1536 }

func cursorOf(t *testing.T, docs ...any) *mongo.Cursor {
	t.Helper()
	cur, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	require.NoError(t, err)
	return cur
}

var (
	lungDoc  = bson.M{"_id": "RID1301", "description": "lung", "region": "Thorax"}
	heartDoc = bson.M{"_id": "RID1385", "description": "heart", "region": "Thorax"}
)

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCommand(a)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCountCommand(t *testing.T) {
	t.Parallel()

	coll := &mockCollection{}
	coll.On("CountDocuments", mock.Anything, bson.D{}).Return(int64(42), nil)

	out, err := execute(t, &app{coll: coll}, "count")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
	coll.AssertExpectations(t)
}

func TestGetCommand(t *testing.T) {
	t.Parallel()

	t.Run("single concept", func(t *testing.T) {
		t.Parallel()

		coll := &mockCollection{}
		coll.On("FindOne", mock.Anything, mock.Anything).
			Return(mongo.NewSingleResultFromDocument(heartDoc, nil, nil))

		out, err := execute(t, &app{coll: coll}, "get", "RID1385")
		require.NoError(t, err)

		var c ontology.Concept
		require.NoError(t, json.Unmarshal([]byte(out), &c))
		assert.Equal(t, "RID1385", c.ID)
		assert.Equal(t, "heart", c.Name())
	})

	t.Run("unknown concept", func(t *testing.T) {
		t.Parallel()

		coll := &mockCollection{}
		coll.On("FindOne", mock.Anything, mock.Anything).
			Return(mongo.NewSingleResultFromDocument(bson.M{}, mongo.ErrNoDocuments, nil))

		_, err := execute(t, &app{coll: coll}, "get", "RID0000000")
		assert.ErrorContains(t, err, "RID0000000 not found")
	})

	t.Run("several concepts", func(t *testing.T) {
		t.Parallel()

		coll := &mockCollection{}
		coll.On("Find", mock.Anything, mock.Anything).Return(cursorOf(t, lungDoc, heartDoc), nil)

		out, err := execute(t, &app{coll: coll}, "get", "RID1301", "RID1385")
		require.NoError(t, err)

		var concepts []ontology.Concept
		require.NoError(t, json.Unmarshal([]byte(out), &concepts))
		assert.Len(t, concepts, 2)
	})
}

func TestRandomCommandRejectsBadCount(t *testing.T) {
	t.Parallel()

	_, err := execute(t, &app{coll: &mockCollection{}}, "random", "zero")
	assert.ErrorContains(t, err, "positive integer")
}

func TestSearchCommand(t *testing.T) {
	t.Parallel()

	coll := &mockCollection{}
	coll.On("Find", mock.Anything, bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: "lung"}}}}).
		Return(cursorOf(t, lungDoc), nil)

	out, err := execute(t, &app{coll: coll}, "search", "lung", "--limit", "3")
	require.NoError(t, err)

	var concepts []ontology.Concept
	require.NoError(t, json.Unmarshal([]byte(out), &concepts))
	require.Len(t, concepts, 1)
	assert.Equal(t, "RID1301", concepts[0].ID)
	coll.AssertExpectations(t)
}

func TestEmbedCommand(t *testing.T) {
	t.Parallel()

	t.Run("vectors", func(t *testing.T) {
		t.Parallel()

		coll := &mockCollection{}
		coll.On("Find", mock.Anything, mock.Anything).Return(cursorOf(t, lungDoc), nil)

		out, err := execute(t, &app{coll: coll, embedder: constantEmbedder{value: 0.5}}, "embed", "RID1301")
		require.NoError(t, err)

		var vectors map[string][]float32
		require.NoError(t, json.Unmarshal([]byte(out), &vectors))
		require.Len(t, vectors["RID1301"], 1536)
		assert.InDelta(t, 0.5, vectors["RID1301"][0], 1e-6)
	})

	t.Run("text only", func(t *testing.T) {
		t.Parallel()

		coll := &mockCollection{}
		coll.On("Find", mock.Anything, mock.Anything).Return(cursorOf(t, lungDoc), nil)

		out, err := execute(t, &app{coll: coll}, "embed", "--text", "RID1301")
		require.NoError(t, err)

		var texts map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &texts))
		assert.Equal(t, "lung Region: Thorax", texts["RID1301"])
	})

	t.Run("service failure", func(t *testing.T) {
		t.Parallel()

		coll := &mockCollection{}
		coll.On("Find", mock.Anything, mock.Anything).Return(cursorOf(t, lungDoc), nil)

		a := &app{coll: coll, embedder: constantEmbedder{err: vectorizer.ErrRateLimitExceeded}}
		_, err := execute(t, a, "embed", "RID1301")
		assert.ErrorIs(t, err, ontology.ErrEmbeddingService)
		assert.ErrorIs(t, err, vectorizer.ErrRateLimitExceeded)
	})
}

func TestIndexCommand(t *testing.T) {
	t.Parallel()

	coll := &mockCollection{}
	coll.On("Find", mock.Anything, mock.Anything).Return(cursorOf(t, lungDoc, heartDoc), nil)
	coll.On("BulkWrite", mock.Anything, mock.MatchedBy(func(models []mongo.WriteModel) bool {
		return len(models) == 2
	})).Return(&mongo.BulkWriteResult{MatchedCount: 2, ModifiedCount: 2}, nil)

	out, err := execute(t, &app{coll: coll, embedder: constantEmbedder{value: 1}}, "index", "RID1301", "RID1385")
	require.NoError(t, err)

	var res ontology.IndexResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 2, res.Embedded)
	assert.Equal(t, int64(2), res.Modified)
	coll.AssertExpectations(t)

	_, err = execute(t, &app{coll: &mockCollection{}}, "index")
	assert.ErrorContains(t, err, "--random")
}

func TestPingCommand(t *testing.T) {
	t.Parallel()

	healthy := func(context.Context) error { return nil }

	t.Run("provider answering", func(t *testing.T) {
		t.Parallel()

		a := &app{coll: &mockCollection{}, dbCheck: healthy, embedder: constantEmbedder{value: 1}}
		out, err := execute(t, a, "ping")
		require.NoError(t, err)
		assert.Equal(t, "OK\n", out)
	})

	t.Run("provider failing", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream down","type":"server_error"}}`))
		}))
		t.Cleanup(srv.Close)

		v, err := vectorizer.NewOpenAI("sk-test", vectorizer.WithOpenAIBaseURL(srv.URL))
		require.NoError(t, err)

		a := &app{coll: &mockCollection{}, dbCheck: healthy, embedder: v}
		out, err := execute(t, a, "ping")
		assert.ErrorIs(t, err, vectorizer.ErrEmbeddingFailed)
		assert.Empty(t, out)
	})

	t.Run("store failing", func(t *testing.T) {
		t.Parallel()

		errDown := errors.New("no reachable servers")
		a := &app{
			coll:     &mockCollection{},
			dbCheck:  func(context.Context) error { return errDown },
			embedder: constantEmbedder{value: 1},
		}
		_, err := execute(t, a, "ping")
		assert.ErrorIs(t, err, errDown)
	})
}

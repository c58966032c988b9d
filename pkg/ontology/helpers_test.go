package ontology_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/ontology/pkg/ontology"
	"github.com/dmitrymomot/ontology/pkg/vectorizer"
)

type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) Name() string {
	return "anatomic_locations"
}

func (m *MockCollection) CountDocuments(ctx context.Context, filter any, _ ...options.Lister[options.CountOptions]) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollection) FindOne(ctx context.Context, filter any, _ ...options.Lister[options.FindOneOptions]) *mongo.SingleResult {
	args := m.Called(ctx, filter)
	return args.Get(0).(*mongo.SingleResult)
}

func (m *MockCollection) Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error) {
	args := m.Called(ctx, filter, mergeFindOptions(opts))
	cur, _ := args.Get(0).(*mongo.Cursor)
	return cur, args.Error(1)
}

func (m *MockCollection) Aggregate(ctx context.Context, pipeline any, _ ...options.Lister[options.AggregateOptions]) (*mongo.Cursor, error) {
	args := m.Called(ctx, pipeline)
	cur, _ := args.Get(0).(*mongo.Cursor)
	return cur, args.Error(1)
}

func (m *MockCollection) BulkWrite(ctx context.Context, models []mongo.WriteModel, _ ...options.Lister[options.BulkWriteOptions]) (*mongo.BulkWriteResult, error) {
	args := m.Called(ctx, models)
	res, _ := args.Get(0).(*mongo.BulkWriteResult)
	return res, args.Error(1)
}

func mergeFindOptions(opts []options.Lister[options.FindOptions]) *options.FindOptions {
	merged := &options.FindOptions{}
	for _, l := range opts {
		for _, set := range l.List() {
			_ = set(merged)
		}
	}
	return merged
}

type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) Create(ctx context.Context, req vectorizer.Request) ([][]float32, error) {
	args := m.Called(ctx, req)
	vectors, _ := args.Get(0).([][]float32)
	return vectors, args.Error(1)
}

func cursorOf(t *testing.T, docs ...any) *mongo.Cursor {
	t.Helper()
	if docs == nil {
		docs = []any{}
	}
	cur, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	require.NoError(t, err)
	return cur
}

func vectorOf(dims int, value float32) []float32 {
	v := make([]float32, dims)
	for i := range v {
		v[i] = value
	}
	return v
}

var (
	brainDoc = bson.M{
		"_id":         "RID6434",
		"description": "brain",
		"region":      "Head",
		"synonyms":    bson.A{"encephalon"},
		"codes": bson.A{
			bson.M{"system": "SNOMED", "code": "12738006", "display": "Brain structure"},
		},
		"embedding_vector": bson.A{0.1, 0.2},
	}
	lungDoc = bson.M{
		"_id":            "RID1302",
		"description":    "lung",
		"region":         "Thorax",
		"containedByRef": bson.M{"id": "RID1243", "display": "thoracic cavity"},
	}
	heartDoc = bson.M{
		"_id":         "RID56",
		"description": "heart",
		"region":      "Thorax",
		"definition":  "Hollow muscular organ\nthat pumps blood",
	}

	brain = ontology.Concept{ID: "RID6434", Description: "brain", Region: "Head", Synonyms: []string{"encephalon"}}
	heart = ontology.Concept{ID: "RID56", Description: "heart", Region: "Thorax", Definition: "Hollow muscular organ\nthat pumps blood"}
	lung  = ontology.Concept{ID: "RID1302", Description: "lung", Region: "Thorax",
		ContainedBy: &ontology.Reference{ID: "RID1243", Display: "thoracic cavity"}}
)

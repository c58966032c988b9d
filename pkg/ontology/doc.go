// Package ontology reads anatomic location concepts from a MongoDB collection
// and turns them into embedding vectors through a hosted embedding service.
//
// The two halves are independent and meet only in calling code:
//
//   - Repository: count, point lookup, batch lookup, random sampling, text
//     search and vector search over stored concept documents.
//   - EmbeddingCreator: flattens a concept's descriptive text and requests one
//     embedding per concept from an EmbeddingClient (any vectorizer.Vectorizer).
//
// Both have asynchronous views (AsyncRepository, AsyncEmbeddingCreator) that run
// the same code on a goroutine and return an *async.Future.
//
// # Usage
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "ontologies")
//	if err != nil {
//		return err
//	}
//	repo := ontology.NewRepository(db.Collection("anatomic_locations"))
//
//	v, err := vectorizer.NewOpenAI(apiKey)
//	if err != nil {
//		return err
//	}
//	creator := ontology.NewEmbeddingCreator(v)
//
//	concept, err := repo.Concept(ctx, "RID56")
//	if err != nil {
//		return err
//	}
//	if concept == nil {
//		return nil // not found is not an error
//	}
//	vec, err := creator.CreateEmbedding(ctx, *concept, ontology.WithDimensions(1536))
//
// Asynchronously:
//
//	f := repo.Async().TextSearch(ctx, "brain", 5)
//	// ...
//	concepts, err := f.Await()
//
// # Errors
//
// ErrConnectivity marks an unreachable or timed-out store or service.
// ErrEmbeddingService marks any embedding failure, including a response
// without an embedding; network failures match both. Absent concepts and empty
// result sets are ordinary return values.
//
// # Batches
//
// CreateEmbeddings issues one request per concept, sequentially by default.
// WithConcurrency allows several in flight. Either way results keep input order
// and the first failure discards the whole batch.
package ontology

// Package async provides generic futures for running blocking calls on their own
// goroutine and collecting the result later.
//
// Future[U] holds the outcome of one computation started with Async. The caller
// suspends only when it asks for the result:
//
//	f := async.Async(ctx, "RID56", func(ctx context.Context, id string) (*ontology.Concept, error) {
//		return repo.Concept(ctx, id)
//	})
//
//	// other work
//
//	concept, err := f.Await()
//
// AwaitWithTimeout returns ErrTimeout when the deadline passes first, and
// AwaitContext stops waiting when its context is done. Neither stops the
// computation itself.
//
// WaitAll collects results in argument order and fails on the first error;
// WaitAny returns whichever future completes first. Exec, ExecAll and ExecAny are
// the same helpers for functions that only return an error.
//
// A Future is written once by its goroutine before its done channel is closed,
// so it is safe to await from several goroutines. A function whose context is
// already done is never started. Panics are recovered and returned as errors.
package async

package handlers

import (
	"context"

	"hybridrag/internal/indexer"
	"hybridrag/internal/rag"
	"hybridrag/internal/storage"
)

type fakeEngine struct {
	results *rag.SearchResults
	answer  *rag.Answer
	err     error

	gotQuery string
	gotAsk   rag.AskRequest
}

func (f *fakeEngine) Search(_ context.Context, query string) (*rag.SearchResults, error) {
	f.gotQuery = query
	return f.results, f.err
}

func (f *fakeEngine) Ask(_ context.Context, req rag.AskRequest) (*rag.Answer, error) {
	f.gotAsk = req
	return f.answer, f.err
}

type fakeIndexer struct {
	report   *indexer.Report
	err      error
	resetErr error

	resets int
	dirs   chan string
}

func (f *fakeIndexer) Reindex(ctx context.Context, dir string) (*indexer.Report, error) {
	f.resets++
	if f.resetErr != nil {
		return nil, f.resetErr
	}
	return f.IndexAll(ctx, dir)
}

func (f *fakeIndexer) IndexAll(_ context.Context, dir string) (*indexer.Report, error) {
	if f.dirs != nil {
		f.dirs <- dir
	}
	return f.report, f.err
}

type fakeCatalog struct {
	count   int
	sources []storage.SourceRecord
	err     error
}

func (f *fakeCatalog) Count(context.Context) (int, error) { return f.count, f.err }

func (f *fakeCatalog) Sources(context.Context) ([]storage.SourceRecord, error) {
	return f.sources, f.err
}

type fakeChecker struct {
	exists bool
	err    error
}

func (f *fakeChecker) CollectionExists(context.Context, string) (bool, error) {
	return f.exists, f.err
}

package hackrx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lavesh00/HackRx-6/cache"
	"github.com/lavesh00/HackRx-6/chunker"
	"github.com/lavesh00/HackRx-6/clause"
	"github.com/lavesh00/HackRx-6/llm"
	"github.com/lavesh00/HackRx-6/parser"
	"github.com/lavesh00/HackRx-6/query"
	"github.com/lavesh00/HackRx-6/reasoning"
	"github.com/lavesh00/HackRx-6/retrieval"
	"github.com/lavesh00/HackRx-6/store"
)

const policyText = `SECTION 1: GRACE PERIOD
A grace period of thirty days is allowed for payment of renewal premium.
During the grace period the coverage continues without a break in policy.

SECTION 2: WAITING PERIODS
Pre-existing diseases are covered after a waiting period of thirty-six months
of continuous coverage from the first policy inception. Cataract surgery has
a waiting period of twenty-four months.

SECTION 3: MATERNITY
Maternity expenses including childbirth and lawful medical termination of
pregnancy are covered after twenty-four months of continuous coverage, limited
to two deliveries during the lifetime of the insured person.`

// fakeStore keeps documents, chunks, and vectors in maps so the whole
// pipeline can run without sqlite.
type fakeStore struct {
	mu         sync.Mutex
	docs       map[string]store.Document
	chunks     map[string][]store.Chunk
	nextChunk  int64
	embeddings map[int64][]float32
	qaLogs     []store.QALog
	noResults  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:       map[string]store.Document{},
		chunks:     map[string][]store.Chunk{},
		embeddings: map[int64][]float32{},
	}
}

func (f *fakeStore) HasDocument(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	return ok && doc.Status == "indexed" && len(f.chunks[id]) > 0, nil
}

func (f *fakeStore) UpsertDocument(_ context.Context, doc store.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeStore) UpdateDocumentStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.docs[id]
	doc.Status = status
	f.docs[id] = doc
	return nil
}

func (f *fakeStore) InsertChunks(_ context.Context, docID string, contents []string) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, len(contents))
	for i, content := range contents {
		f.nextChunk++
		ids[i] = f.nextChunk
		f.chunks[docID] = append(f.chunks[docID], store.Chunk{
			ID: f.nextChunk, DocumentID: docID, Content: content, Position: i,
		})
	}
	return ids, nil
}

func (f *fakeStore) InsertEmbedding(_ context.Context, chunkID int64, embedding []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeddings[chunkID] = embedding
	return nil
}

func (f *fakeStore) VectorSearch(_ context.Context, docID string, _ []float32, k int, _ float64) ([]store.RetrievalResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.noResults {
		return nil, nil
	}
	var out []store.RetrievalResult
	for _, c := range f.chunks[docID] {
		if len(out) >= k {
			break
		}
		out = append(out, store.RetrievalResult{
			ChunkID: c.ID, DocumentID: docID, Content: c.Content,
			Position: c.Position, Score: 0.9,
		})
	}
	return out, nil
}

func (f *fakeStore) LogQA(_ context.Context, q store.QALog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.qaLogs = append(f.qaLogs, q)
	return nil
}

func (f *fakeStore) RemoveDocument(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	delete(f.chunks, id)
	return nil
}

func (f *fakeStore) Stats(context.Context) (*store.DBStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &store.DBStats{Documents: len(f.docs), QALogged: len(f.qaLogs)}, nil
}

func (f *fakeStore) Close() error { return nil }

// fakeLLM echoes the question back as the answer and embeds everything to
// the same unit vector.
type fakeLLM struct {
	mu            sync.Mutex
	generateCalls int
	generateErr   error
}

func (f *fakeLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	f.generateCalls++
	f.mu.Unlock()
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	question := req.Prompt
	if i := strings.LastIndex(question, "QUESTION: "); i >= 0 {
		question = question[i+len("QUESTION: "):]
	}
	if i := strings.Index(question, "\n"); i >= 0 {
		question = question[:i]
	}
	return &llm.GenerateResponse{
		Content:     "echo " + question,
		TotalTokens: 100,
	}, nil
}

func (f *fakeLLM) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0, 0}
	}
	return out, nil
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generateCalls
}

func newTestEngine(st *fakeStore, model *fakeLLM) *engine {
	cfg := DefaultConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &engine{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		cache:   cache.NewMemory(64, time.Hour),
		fetcher: parser.NewFetcher(),
		parsers: parser.NewRegistry(),
		chunkr: chunker.New(chunker.Config{
			TargetSize: cfg.ChunkSize,
			Overlap:    cfg.ChunkOverlap,
		}),
		expander:  query.NewExpander(cfg.MaxQueryVariations),
		embed:     model,
		retriever: retrieval.NewEngine(st, model, logger),
		matcher:   clause.NewMatcher(),
		answerer:  reasoning.NewAnswerer(model, "test-model"),
	}
}

func newPolicyServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, policyText)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestProcessDocumentQueriesOrder(t *testing.T) {
	srv, _ := newPolicyServer(t)
	e := newTestEngine(newFakeStore(), &fakeLLM{})

	questions := []string{
		"What is the grace period for premium payment?",
		"What is the waiting period for pre-existing diseases?",
		"Does this policy cover maternity expenses?",
	}
	answers, err := e.ProcessDocumentQueries(context.Background(), srv.URL, questions)
	if err != nil {
		t.Fatalf("ProcessDocumentQueries() error = %v", err)
	}
	if len(answers) != len(questions) {
		t.Fatalf("got %d answers for %d questions", len(answers), len(questions))
	}
	for i, q := range questions {
		if !strings.Contains(strings.ToLower(answers[i]), strings.ToLower(strings.TrimSuffix(q, "?"))) {
			t.Errorf("answers[%d] = %q does not correspond to question %q", i, answers[i], q)
		}
	}
}

func TestProcessDocumentQueriesValidation(t *testing.T) {
	e := newTestEngine(newFakeStore(), &fakeLLM{})
	ctx := context.Background()

	long := strings.Repeat("x", 501)
	many := make([]string, 21)
	for i := range many {
		many[i] = "What is covered?"
	}

	tests := []struct {
		name      string
		url       string
		questions []string
	}{
		{"empty url", "", []string{"What is covered?"}},
		{"relative url", "policies/p.pdf", []string{"What is covered?"}},
		{"unsupported scheme", "ftp://example.com/p.pdf", []string{"What is covered?"}},
		{"schemeless url", "example.com/p.pdf", []string{"What is covered?"}},
		{"no questions", "http://example.com/p.pdf", nil},
		{"too many questions", "http://example.com/p.pdf", many},
		{"question too short", "http://example.com/p.pdf", []string{"no"}},
		{"question too long", "http://example.com/p.pdf", []string{long}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.ProcessDocumentQueries(ctx, tt.url, tt.questions)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestRepeatedQuestionServedFromCache(t *testing.T) {
	srv, hits := newPolicyServer(t)
	model := &fakeLLM{}
	e := newTestEngine(newFakeStore(), model)
	ctx := context.Background()

	questions := []string{"What is the grace period for premium payment?"}
	if _, err := e.ProcessDocumentQueries(ctx, srv.URL, questions); err != nil {
		t.Fatalf("first run error = %v", err)
	}
	first := model.calls()
	if first != 1 {
		t.Fatalf("first run made %d generate calls, want 1", first)
	}

	if _, err := e.ProcessDocumentQueries(ctx, srv.URL, questions); err != nil {
		t.Fatalf("second run error = %v", err)
	}
	if got := model.calls(); got != first {
		t.Errorf("second run made %d extra generate calls, want 0", got-first)
	}
	if *hits != 1 {
		t.Errorf("document fetched %d times, want 1 (doc cache)", *hits)
	}
}

func TestAnswerErrorFallback(t *testing.T) {
	srv, _ := newPolicyServer(t)
	e := newTestEngine(newFakeStore(), &fakeLLM{generateErr: errors.New("model down")})

	answers, err := e.ProcessDocumentQueries(context.Background(), srv.URL,
		[]string{"What is the grace period for premium payment?"})
	if err != nil {
		t.Fatalf("ProcessDocumentQueries() error = %v", err)
	}
	if answers[0] != answerError {
		t.Errorf("answers[0] = %q, want the apology fallback", answers[0])
	}
}

func TestNoRetrievalResults(t *testing.T) {
	srv, _ := newPolicyServer(t)
	st := newFakeStore()
	st.noResults = true
	e := newTestEngine(st, &fakeLLM{})

	answers, err := e.ProcessDocumentQueries(context.Background(), srv.URL,
		[]string{"What is the grace period for premium payment?"})
	if err != nil {
		t.Fatalf("ProcessDocumentQueries() error = %v", err)
	}
	if answers[0] != answerNotFound {
		t.Errorf("answers[0] = %q, want the not-found fallback", answers[0])
	}
}

func TestProcessDocumentLogsQA(t *testing.T) {
	srv, _ := newPolicyServer(t)
	st := newFakeStore()
	e := newTestEngine(st, &fakeLLM{})

	if _, err := e.ProcessDocumentQueries(context.Background(), srv.URL,
		[]string{"What is the grace period for premium payment?"}); err != nil {
		t.Fatalf("ProcessDocumentQueries() error = %v", err)
	}
	if len(st.qaLogs) != 1 {
		t.Fatalf("logged %d QA rows, want 1", len(st.qaLogs))
	}
	if st.qaLogs[0].QueryType != string(query.TypeGrace) {
		t.Errorf("logged query type = %q, want %q", st.qaLogs[0].QueryType, query.TypeGrace)
	}
	if st.qaLogs[0].TotalTokens != 100 {
		t.Errorf("logged tokens = %d, want 100", st.qaLogs[0].TotalTokens)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ChunkSize != 1200 || cfg.ChunkOverlap != 250 {
		t.Errorf("chunking defaults = %d/%d, want 1200/250", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.EmbeddingDim != 384 {
		t.Errorf("embedding dim = %d, want 384", cfg.EmbeddingDim)
	}
	if cfg.ConcurrentQuestions != 3 {
		t.Errorf("concurrent questions = %d, want 3", cfg.ConcurrentQuestions)
	}
	if cfg.DocCacheTTL != 7200*time.Second || cfg.QACacheTTL != 3600*time.Second {
		t.Errorf("cache TTLs = %v/%v, want 2h/1h", cfg.DocCacheTTL, cfg.QACacheTTL)
	}
}

func TestValidateRequestBoundary(t *testing.T) {
	ok := fmt.Sprintf("%s?", strings.Repeat("x", 499))
	if err := validateRequest("http://example.com/p.pdf", []string{ok}); err != nil {
		t.Errorf("500-char question rejected: %v", err)
	}
	if err := validateRequest("http://example.com/p.pdf", []string{"abc"}); err != nil {
		t.Errorf("3-char question rejected: %v", err)
	}
}

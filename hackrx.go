// Package hackrx answers natural-language questions about insurance policy
// documents. It fetches and parses a document, indexes it for vector search,
// and runs each question through query expansion, two-pass retrieval, clause
// re-ranking, and an LLM answerer.
package hackrx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lavesh00/HackRx-6/cache"
	"github.com/lavesh00/HackRx-6/chunker"
	"github.com/lavesh00/HackRx-6/clause"
	"github.com/lavesh00/HackRx-6/llm"
	"github.com/lavesh00/HackRx-6/normalizer"
	"github.com/lavesh00/HackRx-6/parser"
	"github.com/lavesh00/HackRx-6/query"
	"github.com/lavesh00/HackRx-6/reasoning"
	"github.com/lavesh00/HackRx-6/retrieval"
	"github.com/lavesh00/HackRx-6/store"
)

// Request validation bounds.
const (
	maxQuestions   = 20
	minQuestionLen = 3
	maxQuestionLen = 500
)

// Fallback answers returned in place of failures so one bad question never
// sinks the batch.
const (
	answerNotFound = "I couldn't find relevant information in the document to answer this question."
	answerError    = "I apologize, but I encountered an error while processing this question. Please try again."
)

// Pipeline is the main entry point for the QA engine.
type Pipeline interface {
	// ProcessDocumentQueries indexes the document at documentURL (or reuses
	// the cached index) and answers every question against it. Answers are
	// returned in question order; per-question failures yield fallback text.
	ProcessDocumentQueries(ctx context.Context, documentURL string, questions []string) ([]string, error)

	// ProcessDocument fetches, parses, and indexes a document without
	// answering anything. Returns the document ID.
	ProcessDocument(ctx context.Context, documentURL string) (string, error)

	// RemoveDocument deletes a document and all derived data.
	RemoveDocument(ctx context.Context, documentID string) error

	// Stats reports row counts for health and diagnostics.
	Stats(ctx context.Context) (*store.DBStats, error)

	// Close releases the store, cache, and other resources.
	Close() error
}

// documentStore is the slice of the store the engine uses directly. Vector
// search goes through the retrieval engine instead.
type documentStore interface {
	HasDocument(ctx context.Context, id string) (bool, error)
	UpsertDocument(ctx context.Context, doc store.Document) error
	UpdateDocumentStatus(ctx context.Context, id, status string) error
	InsertChunks(ctx context.Context, docID string, contents []string) ([]int64, error)
	InsertEmbedding(ctx context.Context, chunkID int64, embedding []float32) error
	LogQA(ctx context.Context, q store.QALog) error
	RemoveDocument(ctx context.Context, id string) error
	Stats(ctx context.Context) (*store.DBStats, error)
	Close() error
}

type engine struct {
	cfg    Config
	logger *slog.Logger

	store     documentStore
	cache     cache.Cache
	fetcher   *parser.Fetcher
	parsers   *parser.Registry
	chunkr    *chunker.Chunker
	expander  *query.Expander
	embed     retrieval.Embedder
	retriever *retrieval.Engine
	matcher   *clause.Matcher
	answerer  *reasoning.Answerer
}

// New creates a Pipeline from configuration.
func New(cfg Config) (Pipeline, error) {
	if cfg.EmbeddingDim == 0 {
		cfg.EmbeddingDim = 384
	}

	s, err := store.New(cfg.resolveDBPath(), cfg.EmbeddingDim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	chatProvider, err := llm.NewProvider(llm.Config{
		Provider: cfg.Chat.Provider,
		Model:    cfg.Chat.Model,
		BaseURL:  cfg.Chat.BaseURL,
		APIKey:   cfg.Chat.APIKey,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating chat provider: %w", err)
	}
	embedProvider, err := llm.NewProvider(llm.Config{
		Provider: cfg.Embedding.Provider,
		Model:    cfg.Embedding.Model,
		BaseURL:  cfg.Embedding.BaseURL,
		APIKey:   cfg.Embedding.APIKey,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating embedding provider: %w", err)
	}

	driverCfg := llm.DefaultDriverConfig()
	if cfg.LLMRateLimit > 0 {
		driverCfg.RateLimit = cfg.LLMRateLimit
	}
	if cfg.MaxDailyTokens > 0 {
		driverCfg.MaxDailyTokens = cfg.MaxDailyTokens
	}
	chat := llm.NewDriver(chatProvider, driverCfg)
	embed := llm.NewDriver(embedProvider, driverCfg)

	maxTTL := cfg.DocCacheTTL
	if cfg.QACacheTTL > maxTTL {
		maxTTL = cfg.QACacheTTL
	}
	c, err := cache.Open(cfg.Cache.Backend, cfg.Cache.RedisURL, cfg.Cache.MaxEntries, maxTTL)
	if err != nil {
		s.Close()
		return nil, err
	}

	logger := slog.Default()
	return &engine{
		cfg:     cfg,
		logger:  logger,
		store:   s,
		cache:   c,
		fetcher: parser.NewFetcher(),
		parsers: parser.NewRegistry(),
		chunkr: chunker.New(chunker.Config{
			TargetSize: cfg.ChunkSize,
			Overlap:    cfg.ChunkOverlap,
		}),
		expander:  query.NewExpander(cfg.MaxQueryVariations),
		embed:     embed,
		retriever: retrieval.NewEngine(s, embed, logger),
		matcher:   clause.NewMatcher(),
		answerer:  reasoning.NewAnswerer(chat, cfg.Chat.Model),
	}, nil
}

func (e *engine) ProcessDocumentQueries(ctx context.Context, documentURL string, questions []string) ([]string, error) {
	if err := validateRequest(documentURL, questions); err != nil {
		return nil, err
	}

	docID, err := e.ProcessDocument(ctx, documentURL)
	if err != nil {
		return nil, err
	}

	answers := make([]string, len(questions))
	g, gctx := errgroup.WithContext(ctx)
	limit := e.cfg.ConcurrentQuestions
	if limit <= 0 {
		limit = 3
	}
	g.SetLimit(limit)

	for i, q := range questions {
		g.Go(func() error {
			text, err := e.answerQuestion(gctx, docID, q)
			switch {
			case err == nil:
			case errors.Is(err, ErrNoResults):
				text = answerNotFound
			default:
				e.logger.Error("question failed", "doc", docID, "question", q, "error", err)
				text = answerError
			}
			answers[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return answers, nil
}

func validateRequest(documentURL string, questions []string) error {
	if strings.TrimSpace(documentURL) == "" {
		return fmt.Errorf("%w: document URL is required", ErrInvalidRequest)
	}
	u, err := url.Parse(documentURL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: document URL must be an absolute http(s) URL", ErrInvalidRequest)
	}
	if len(questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrInvalidRequest)
	}
	if len(questions) > maxQuestions {
		return fmt.Errorf("%w: at most %d questions per request", ErrInvalidRequest, maxQuestions)
	}
	for i, q := range questions {
		n := len(strings.TrimSpace(q))
		if n < minQuestionLen || n > maxQuestionLen {
			return fmt.Errorf("%w: question %d must be %d-%d characters", ErrInvalidRequest, i+1, minQuestionLen, maxQuestionLen)
		}
	}
	return nil
}

// ProcessDocument is idempotent: a document already indexed under the same
// content hash is reused, first via the URL cache and then via the store.
func (e *engine) ProcessDocument(ctx context.Context, documentURL string) (string, error) {
	docKey := cache.DocKey(documentURL)
	if docID, ok, err := e.cache.Get(ctx, docKey); err == nil && ok {
		if indexed, err := e.store.HasDocument(ctx, docID); err == nil && indexed {
			return docID, nil
		}
	}

	data, contentType, err := e.fetcher.Fetch(ctx, documentURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentNotFound, err)
	}

	docID := store.DocumentID(data)
	if indexed, err := e.store.HasDocument(ctx, docID); err == nil && indexed {
		e.cacheSet(ctx, docKey, docID, e.cfg.DocCacheTTL)
		return docID, nil
	}

	format := parser.DetectFormat(data, contentType, documentURL)
	p, err := e.parsers.Get(format)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	contentHash := sha256.Sum256(data)
	doc := store.Document{
		ID:          docID,
		URL:         documentURL,
		Format:      format,
		ContentHash: hex.EncodeToString(contentHash[:]),
		Status:      "processing",
	}
	if err := e.store.UpsertDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("upserting document: %w", err)
	}

	start := time.Now()
	res, err := p.Parse(ctx, data)
	if err != nil {
		e.store.UpdateDocumentStatus(ctx, docID, "error")
		return "", fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	doc.ParseMethod = res.Method
	if meta, err := json.Marshal(parser.Analyze(res)); err == nil {
		doc.Metadata = string(meta)
	}
	if err := e.store.UpsertDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("upserting document: %w", err)
	}

	text := normalizer.Normalize(res.Text)
	chunks := e.chunkr.Chunk(text)
	if len(chunks) == 0 {
		e.store.UpdateDocumentStatus(ctx, docID, "error")
		return "", fmt.Errorf("%w: no usable text after chunking", ErrParsingFailed)
	}

	chunkIDs, err := e.store.InsertChunks(ctx, docID, chunks)
	if err != nil {
		e.store.UpdateDocumentStatus(ctx, docID, "error")
		return "", fmt.Errorf("inserting chunks: %w", err)
	}

	embedded, err := e.indexChunks(ctx, chunks, chunkIDs)
	if err != nil {
		e.store.UpdateDocumentStatus(ctx, docID, "error")
		return "", err
	}

	if err := e.store.UpdateDocumentStatus(ctx, docID, "indexed"); err != nil {
		return "", fmt.Errorf("updating status: %w", err)
	}
	e.cacheSet(ctx, docKey, docID, e.cfg.DocCacheTTL)

	e.logger.Info("document indexed",
		"doc", docID, "format", format, "chunks", len(chunks),
		"embedded", embedded, "elapsed", time.Since(start).Round(time.Millisecond))
	return docID, nil
}

// indexChunks embeds chunk contents in batches and stores the vectors. A
// failed batch is retried one text at a time so a single poisoned chunk
// costs only itself. Returns the number of chunks embedded.
func (e *engine) indexChunks(ctx context.Context, chunks []string, chunkIDs []int64) (int, error) {
	batchSize := e.cfg.EmbeddingBatchSize
	if batchSize <= 0 {
		batchSize = 32
	}

	embedded := 0
	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		vectors, err := e.embed.Embed(ctx, batch)
		if err != nil {
			if errors.Is(err, llm.ErrQuotaExhausted) {
				return embedded, fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
			}
			e.logger.Warn("batch embedding failed, retrying per chunk",
				"batch_start", start, "error", err)
			vectors = make([][]float32, len(batch))
			for i, text := range batch {
				single, err := e.embed.Embed(ctx, []string{text})
				if err != nil || len(single) != 1 {
					e.logger.Warn("chunk embedding failed, skipping",
						"chunk", chunkIDs[start+i], "error", err)
					continue
				}
				vectors[i] = single[0]
			}
		}

		for i, vec := range vectors {
			if vec == nil {
				continue
			}
			if err := e.store.InsertEmbedding(ctx, chunkIDs[start+i], vec); err != nil {
				return embedded, fmt.Errorf("inserting embedding: %w", err)
			}
			embedded++
		}
	}

	if embedded == 0 {
		return 0, fmt.Errorf("%w: no chunks could be embedded", ErrEmbeddingFailed)
	}
	return embedded, nil
}

// answerQuestion runs one question through the full retrieval and reasoning
// path, consulting and populating the QA cache.
func (e *engine) answerQuestion(ctx context.Context, docID, question string) (string, error) {
	qaKey := cache.QAKey(docID, question)
	if cached, ok, err := e.cache.Get(ctx, qaKey); err == nil && ok {
		return cached, nil
	}

	qtype := query.Classify(question)
	variants := e.expander.Expand(question)

	results, err := e.retriever.Search(ctx, docID, variants)
	if err != nil {
		if errors.Is(err, llm.ErrQuotaExhausted) {
			return "", fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
		}
		return "", fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(results) == 0 {
		e.cacheSet(ctx, qaKey, answerNotFound, e.cfg.QACacheTTL)
		return "", ErrNoResults
	}

	candidates := make([]clause.Candidate, len(results))
	for i, r := range results {
		candidates[i] = clause.Candidate{ID: r.ChunkID, Content: r.Content, Similarity: r.Score}
	}
	confidences := make(map[int64]float64)
	for _, m := range e.matcher.Match(question, candidates) {
		confidences[m.ID] = m.Confidence
	}

	fused := retrieval.Fuse(results, confidences, qtype)
	if len(fused) == 0 {
		e.cacheSet(ctx, qaKey, answerNotFound, e.cfg.QACacheTTL)
		return "", ErrNoResults
	}

	ans, err := e.answerer.Answer(ctx, question, qtype, fused)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrBlocked):
			return "", fmt.Errorf("%w: %v", ErrLLMBlocked, err)
		case errors.Is(err, llm.ErrQuotaExhausted):
			return "", fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
		default:
			return "", fmt.Errorf("%w: %v", ErrLLMRequestFailed, err)
		}
	}

	if err := e.store.LogQA(ctx, store.QALog{
		DocumentID:  docID,
		Question:    question,
		Answer:      ans.Text,
		QueryType:   string(qtype),
		Confidence:  ans.Confidence,
		TotalTokens: ans.TotalTokens,
	}); err != nil {
		e.logger.Warn("qa log failed", "doc", docID, "error", err)
	}

	e.cacheSet(ctx, qaKey, ans.Text, e.cfg.QACacheTTL)
	return ans.Text, nil
}

func (e *engine) cacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := e.cache.Set(ctx, key, value, ttl); err != nil {
		e.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

func (e *engine) RemoveDocument(ctx context.Context, documentID string) error {
	return e.store.RemoveDocument(ctx, documentID)
}

func (e *engine) Stats(ctx context.Context) (*store.DBStats, error) {
	return e.store.Stats(ctx)
}

func (e *engine) Close() error {
	cerr := e.cache.Close()
	serr := e.store.Close()
	if serr != nil {
		return serr
	}
	return cerr
}

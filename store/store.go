// Package store wraps the SQLite database holding documents, chunks, and
// vector embeddings, using sqlite-vec for KNN search.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	sqlite_vec.Auto()
}

// Document represents a row in the documents table. The ID is the first 16
// hex characters of the SHA-256 of the raw document bytes.
type Document struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Format      string `json:"format"`
	ContentHash string `json:"content_hash"`
	ParseMethod string `json:"parse_method"`
	Status      string `json:"status"`
	Metadata    string `json:"metadata,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Chunk represents a row in the chunks table.
type Chunk struct {
	ID          int64  `json:"id"`
	DocumentID  string `json:"document_id"`
	Content     string `json:"content"`
	Position    int    `json:"position"`
	CharCount   int    `json:"char_count"`
	ContentHash string `json:"content_hash"`
}

// QALog represents a row in the qa_log audit table.
type QALog struct {
	DocumentID       string  `json:"document_id"`
	Question         string  `json:"question"`
	Answer           string  `json:"answer"`
	QueryType        string  `json:"query_type"`
	Confidence       float64 `json:"confidence"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
}

// RetrievalResult holds a chunk with its vector similarity score.
type RetrievalResult struct {
	ChunkID    int64   `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Content    string  `json:"content"`
	Position   int     `json:"position"`
	Score      float64 `json:"score"`
}

// Store wraps the SQLite database for all persistence.
type Store struct {
	db           *sql.DB
	embeddingDim int
}

// New opens (or creates) a SQLite database at the given path and initialises
// the schema including the sqlite-vec virtual table.
func New(dbPath string, embeddingDim int) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL(embeddingDim)); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Connection pool settings for SQLite.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db, embeddingDim: embeddingDim}

	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// EmbeddingDim returns the configured embedding dimension.
func (s *Store) EmbeddingDim() int {
	return s.embeddingDim
}

// --- Document operations ---

// UpsertDocument inserts or updates a document record.
func (s *Store) UpsertDocument(ctx context.Context, doc Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, url, format, content_hash, parse_method, status, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			format = excluded.format,
			content_hash = excluded.content_hash,
			parse_method = excluded.parse_method,
			status = excluded.status,
			metadata = excluded.metadata,
			updated_at = CURRENT_TIMESTAMP
	`, doc.ID, doc.URL, doc.Format, doc.ContentHash, doc.ParseMethod, doc.Status, doc.Metadata)
	return err
}

// GetDocument retrieves a document by ID. Returns sql.ErrNoRows when absent.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	doc := &Document{}
	var metadata sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, format, content_hash, parse_method, status, metadata, created_at, updated_at
		FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &doc.URL, &doc.Format, &doc.ContentHash,
		&doc.ParseMethod, &doc.Status, &metadata, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	doc.Metadata = metadata.String
	return doc, nil
}

// HasDocument reports whether a document is fully indexed: present with
// status "indexed" and at least one embedded chunk.
func (s *Store) HasDocument(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM documents d
		WHERE d.id = ? AND d.status = 'indexed'
		  AND EXISTS (
			SELECT 1 FROM chunks c
			JOIN vec_chunks v ON v.chunk_id = c.id
			WHERE c.document_id = d.id
		  )
	`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateDocumentStatus updates just the status field.
func (s *Store) UpdateDocumentStatus(ctx context.Context, id, status string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE documents SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id)
	return err
}

// RemoveDocument deletes a document, its chunks, and their embeddings.
func (s *Store) RemoveDocument(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM vec_chunks WHERE chunk_id IN (
				SELECT id FROM chunks WHERE document_id = ?
			)`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM chunks WHERE document_id = ?", id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM documents WHERE id = ?", id); err != nil {
			return err
		}
		return nil
	})
}

// --- Chunk operations ---

// InsertChunks inserts a batch of chunks and returns their database IDs.
func (s *Store) InsertChunks(ctx context.Context, docID string, contents []string) ([]int64, error) {
	ids := make([]int64, len(contents))

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO chunks (document_id, content, position, char_count, content_hash)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, content := range contents {
			hash := sha256.Sum256([]byte(content))
			res, err := stmt.ExecContext(ctx,
				docID, content, i, len(content), hex.EncodeToString(hash[:]))
			if err != nil {
				return err
			}
			ids[i], err = res.LastInsertId()
			if err != nil {
				return err
			}
		}
		return nil
	})

	return ids, err
}

// GetChunksByDocument returns all chunks for a document in position order.
func (s *Store) GetChunksByDocument(ctx context.Context, docID string) ([]Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, content, position, char_count, content_hash
		FROM chunks WHERE document_id = ? ORDER BY position
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Content,
			&c.Position, &c.CharCount, &c.ContentHash); err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// --- Embedding operations ---

// InsertEmbedding stores a vector embedding for a chunk.
func (s *Store) InsertEmbedding(ctx context.Context, chunkID int64, embedding []float32) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO vec_chunks (chunk_id, embedding) VALUES (?, ?)",
		chunkID, serializeFloat32(embedding))
	return err
}

// VectorSearch performs a KNN search over one document's chunks, returning
// up to k results with cosine similarity of at least threshold. The KNN runs
// over all documents, so the candidate pool is overfetched before filtering.
func (s *Store) VectorSearch(ctx context.Context, docID string, queryEmbedding []float32, k int, threshold float64) ([]RetrievalResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.chunk_id, v.distance, c.content, c.position, c.document_id
		FROM vec_chunks v
		JOIN chunks c ON c.id = v.chunk_id
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance
	`, serializeFloat32(queryEmbedding), k*4)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RetrievalResult
	for rows.Next() {
		var r RetrievalResult
		var distance float64
		if err := rows.Scan(&r.ChunkID, &distance, &r.Content, &r.Position, &r.DocumentID); err != nil {
			return nil, err
		}
		if r.DocumentID != docID {
			continue
		}
		// Cosine distance to similarity.
		r.Score = 1.0 - distance
		if r.Score < threshold {
			continue
		}
		results = append(results, r)
		if len(results) >= k {
			break
		}
	}
	return results, rows.Err()
}

// --- QA log ---

// LogQA writes an entry to the question-answer audit log.
func (s *Store) LogQA(ctx context.Context, q QALog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO qa_log (document_id, question, answer, query_type, confidence,
			prompt_tokens, completion_tokens, total_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, q.DocumentID, q.Question, q.Answer, q.QueryType, q.Confidence,
		q.PromptTokens, q.CompletionTokens, q.TotalTokens)
	return err
}

// --- Diagnostics ---

// DBStats holds counts of key database objects.
type DBStats struct {
	Documents  int `json:"documents"`
	Chunks     int `json:"chunks"`
	Embeddings int `json:"embeddings"`
	QALogged   int `json:"qa_logged"`
}

// Stats returns counts of documents, chunks, embeddings, and logged answers.
func (s *Store) Stats(ctx context.Context) (*DBStats, error) {
	stats := &DBStats{}
	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM documents", &stats.Documents},
		{"SELECT COUNT(*) FROM chunks", &stats.Chunks},
		{"SELECT COUNT(*) FROM vec_chunks", &stats.Embeddings},
		{"SELECT COUNT(*) FROM qa_log", &stats.QALogged},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("counting %s: %w", q.query, err)
		}
	}
	return stats, nil
}

// --- helpers ---

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// serializeFloat32 converts a float32 slice to little-endian bytes for sqlite-vec.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// DocumentID derives the canonical document ID from raw document bytes:
// the first 16 hex characters of the SHA-256 digest.
func DocumentID(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])[:16]
}

package hackrx

import "errors"

var (
	// ErrInvalidRequest is returned for a malformed document URL or question list.
	ErrInvalidRequest = errors.New("hackrx: invalid request")

	// ErrUnsupportedFormat is returned for document MIME types with no parser.
	ErrUnsupportedFormat = errors.New("hackrx: unsupported document format")

	// ErrParsingFailed is returned when document download or extraction fails.
	ErrParsingFailed = errors.New("hackrx: parsing failed")

	// ErrEmbeddingFailed is returned when embedding generation fails for all chunks.
	ErrEmbeddingFailed = errors.New("hackrx: embedding generation failed")

	// ErrIndexUnavailable is returned when the vector index cannot be reached.
	ErrIndexUnavailable = errors.New("hackrx: vector index unavailable")

	// ErrNoResults is returned when retrieval yields no matching chunks.
	ErrNoResults = errors.New("hackrx: no results found")

	// ErrLLMBlocked is returned when the LLM refuses a prompt on safety grounds
	// after the permitted retry.
	ErrLLMBlocked = errors.New("hackrx: LLM response blocked")

	// ErrQuotaExhausted is returned when the daily token budget is at or past
	// its hard stop.
	ErrQuotaExhausted = errors.New("hackrx: daily token budget exhausted")

	// ErrLLMRequestFailed is returned when an LLM request fails after retries.
	ErrLLMRequestFailed = errors.New("hackrx: LLM request failed")

	// ErrDocumentNotFound is returned when a document ID does not exist.
	ErrDocumentNotFound = errors.New("hackrx: document not found")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("hackrx: invalid configuration")
)

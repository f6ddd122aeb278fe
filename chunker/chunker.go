// Package chunker splits normalized document text into retrieval-sized
// pieces. Splitting prefers structural boundaries (section markers injected
// by the normalizer), then paragraph boundaries, then sentence boundaries,
// and falls back to character windows cut at word boundaries for pathological
// unbroken text.
package chunker

import (
	"regexp"
	"strings"
)

// Config controls the chunking behaviour. Sizes are in characters.
type Config struct {
	TargetSize int // Preferred chunk size.
	Overlap    int // Trailing text carried into the next chunk.
	MinSize    int // Chunks shorter than this are merged or dropped.
}

// Chunker converts normalized document text into chunks.
type Chunker struct {
	cfg Config
}

// New returns a Chunker with the given configuration.
// Zero-value fields are replaced with sensible defaults.
func New(cfg Config) *Chunker {
	if cfg.TargetSize == 0 {
		cfg.TargetSize = 1200
	}
	if cfg.Overlap == 0 {
		cfg.Overlap = 250
	}
	if cfg.MinSize == 0 {
		cfg.MinSize = 75
	}
	return &Chunker{cfg: cfg}
}

// hardCap is the absolute upper bound on chunk length: 1.5x the target.
func (c *Chunker) hardCap() int {
	return c.cfg.TargetSize + c.cfg.TargetSize/2
}

// sectionMarkerRe matches the structural markers the normalizer injects, plus
// page tags from the parser. Sections are split immediately before a marker.
var sectionMarkerRe = regexp.MustCompile(`\n(?:SECTION\b|SUBSECTION:|CLAUSE\s|SUB-CLAUSE\s|[A-Z]+ SECTION:|TABLE\s|SCHEDULE\s|PAGE \d+:|=== TABLE ===)`)

// Chunk splits text into chunks of roughly TargetSize characters. Every
// returned chunk is at least MinSize and at most 1.5x TargetSize characters.
func (c *Chunker) Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for _, sec := range splitSections(text) {
		if len(sec) <= c.cfg.TargetSize {
			chunks = c.appendChunk(chunks, sec)
			continue
		}
		for _, frag := range c.splitSection(sec) {
			chunks = c.appendChunk(chunks, frag)
		}
	}
	return chunks
}

// splitSection breaks an oversized section into chunks by accumulating
// paragraphs up to TargetSize. Consecutive chunks share a sentence-aware
// overlap of up to Overlap characters.
func (c *Chunker) splitSection(sec string) []string {
	var chunks []string
	var cur strings.Builder
	overlap := ""
	hasContent := false // cur holds more than carried-over overlap

	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" && hasContent {
			chunks = append(chunks, s)
			overlap = sentenceOverlap(s, c.cfg.Overlap)
		}
		cur.Reset()
		hasContent = false
	}

	for _, para := range splitParagraphs(sec) {
		// A paragraph that alone exceeds the target is split on sentence
		// boundaries (character windows as a last resort).
		if len(para) > c.cfg.TargetSize {
			flush()
			pieces := c.splitOversized(para, overlap)
			chunks = append(chunks, pieces...)
			if n := len(chunks); n > 0 {
				overlap = sentenceOverlap(chunks[n-1], c.cfg.Overlap)
			}
			continue
		}

		if hasContent && cur.Len()+len(para)+2 > c.cfg.TargetSize {
			flush()
		}
		if cur.Len() == 0 && overlap != "" {
			cur.WriteString(overlap)
			cur.WriteString("\n\n")
		}
		if cur.Len() > 0 && !strings.HasSuffix(cur.String(), "\n\n") {
			cur.WriteString("\n\n")
		}
		cur.WriteString(para)
		hasContent = true
	}
	flush()

	return chunks
}

// splitOversized handles a single paragraph longer than TargetSize: sentence
// accumulation first, raw character windows for sentences that are themselves
// too long (e.g. tables flattened onto one line).
func (c *Chunker) splitOversized(para, initialOverlap string) []string {
	var chunks []string
	var cur strings.Builder
	overlap := initialOverlap
	hasContent := false

	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" && hasContent {
			chunks = append(chunks, s)
			overlap = sentenceOverlap(s, c.cfg.Overlap)
		}
		cur.Reset()
		hasContent = false
	}

	for _, sent := range splitSentences(para) {
		if len(sent) > c.cfg.TargetSize {
			flush()
			pieces := c.splitByChars(sent)
			chunks = append(chunks, pieces...)
			if n := len(chunks); n > 0 {
				overlap = sentenceOverlap(chunks[n-1], c.cfg.Overlap)
			}
			continue
		}

		if hasContent && cur.Len()+len(sent)+1 > c.cfg.TargetSize {
			flush()
		}
		if cur.Len() == 0 && overlap != "" {
			cur.WriteString(overlap)
			cur.WriteString(" ")
		}
		if cur.Len() > 0 && !strings.HasSuffix(cur.String(), " ") {
			cur.WriteString(" ")
		}
		cur.WriteString(sent)
		hasContent = true
	}
	flush()

	return chunks
}

// splitByChars cuts text into TargetSize windows with Overlap characters of
// carry-over, moving each cut back to the nearest word boundary so words are
// never split mid-way.
func (c *Chunker) splitByChars(text string) []string {
	var chunks []string
	start := 0
	for start < len(text) {
		end := start + c.cfg.TargetSize
		if end >= len(text) {
			if chunk := strings.TrimSpace(text[start:]); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}
		// Back the cut up to a word boundary when one exists in the window.
		if cut := strings.LastIndexByte(text[start:end], ' '); cut > 0 {
			end = start + cut
		}
		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// The next window begins Overlap characters before the cut, advanced
		// to the start of the next whole word.
		next := end - c.cfg.Overlap
		if next <= start {
			next = end
		}
		if idx := strings.IndexByte(text[next:end], ' '); idx >= 0 {
			next += idx + 1
		} else {
			next = end
		}
		start = next
	}
	return chunks
}

// appendChunk enforces the size floor: fragments shorter than MinSize are
// merged into the previous chunk when that fits under the cap, otherwise
// dropped as noise (stray headings, page artifacts).
func (c *Chunker) appendChunk(chunks []string, frag string) []string {
	frag = strings.TrimSpace(frag)
	if frag == "" {
		return chunks
	}
	if len(frag) >= c.cfg.MinSize {
		return append(chunks, frag)
	}
	if n := len(chunks); n > 0 && len(chunks[n-1])+len(frag)+1 <= c.hardCap() {
		chunks[n-1] = chunks[n-1] + "\n" + frag
		return chunks
	}
	return chunks
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// splitSections splits text at structural markers, keeping each marker with
// the text that follows it.
func splitSections(text string) []string {
	locs := sectionMarkerRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var sections []string
	prev := 0
	for _, loc := range locs {
		if s := strings.TrimSpace(text[prev:loc[0]]); s != "" {
			sections = append(sections, s)
		}
		prev = loc[0]
	}
	if s := strings.TrimSpace(text[prev:]); s != "" {
		sections = append(sections, s)
	}
	return sections
}

// splitParagraphs splits text on blank-line boundaries.
func splitParagraphs(text string) []string {
	raw := strings.Split(text, "\n\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences is a simple sentence tokeniser. It splits on
// period/question-mark/exclamation followed by whitespace or end of string.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		cur.WriteRune(runes[i])
		if runes[i] == '.' || runes[i] == '?' || runes[i] == '!' {
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				s := strings.TrimSpace(cur.String())
				if s != "" {
					sentences = append(sentences, s)
				}
				cur.Reset()
			}
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// sentenceOverlap returns trailing whole sentences of text totalling at most
// maxChars, falling back to a word-boundary suffix when the final sentence is
// itself longer than the budget.
func sentenceOverlap(text string, maxChars int) string {
	if maxChars <= 0 || text == "" {
		return ""
	}
	sentences := splitSentences(text)

	var picked []string
	total := 0
	for i := len(sentences) - 1; i >= 0; i-- {
		s := sentences[i]
		if total+len(s)+1 > maxChars {
			break
		}
		picked = append([]string{s}, picked...)
		total += len(s) + 1
	}
	if len(picked) > 0 {
		return strings.Join(picked, " ")
	}

	// Last sentence alone exceeds the budget: take a word-boundary suffix.
	if len(text) <= maxChars {
		return text
	}
	tail := text[len(text)-maxChars:]
	if idx := strings.IndexByte(tail, ' '); idx >= 0 && idx < len(tail)-1 {
		tail = tail[idx+1:]
	}
	return strings.TrimSpace(tail)
}

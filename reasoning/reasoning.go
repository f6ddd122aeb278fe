// Package reasoning turns ranked context chunks into final answers using
// type-conditioned prompts and decoding settings.
package reasoning

import (
	"context"
	"fmt"

	"github.com/lavesh00/HackRx-6/llm"
	"github.com/lavesh00/HackRx-6/query"
	"github.com/lavesh00/HackRx-6/retrieval"
)

// Generator is the generation half of the LLM driver.
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error)
}

// Answer is the final output for one question.
type Answer struct {
	Text         string     `json:"text"`
	Confidence   float64    `json:"confidence"`
	QuestionType query.Type `json:"question_type"`
	ChunksUsed   int        `json:"chunks_used"`
	TotalTokens  int        `json:"total_tokens"`
}

// Answerer generates answers from retrieved context.
type Answerer struct {
	gen   Generator
	model string
}

func NewAnswerer(gen Generator, model string) *Answerer {
	return &Answerer{gen: gen, model: model}
}

// generationConfig returns decoding settings per question type. Factual
// lookups decode almost greedily; exclusion and definition answers get more
// output room because they quote longer passages.
func generationConfig(qtype query.Type) llm.GenerationConfig {
	cfg := llm.GenerationConfig{
		Temperature:     0.10,
		TopP:            0.80,
		TopK:            10,
		MaxOutputTokens: 2048,
	}
	switch qtype {
	case query.TypeNumerical, query.TypeUIN:
		cfg.Temperature = 0.05
		cfg.TopK = 5
	case query.TypeExclusion:
		cfg.MaxOutputTokens = 3000
	case query.TypeDefinition, query.TypeCoverage:
		cfg.MaxOutputTokens = 2500
	}
	return cfg
}

// Answer prompts the model with the fused context and post-processes the
// response into a clean, scored answer.
func (a *Answerer) Answer(ctx context.Context, question string, qtype query.Type, chunks []retrieval.FusedResult) (*Answer, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("reasoning: no context chunks for question")
	}

	prompt := buildPrompt(question, qtype, buildContext(chunks))
	resp, err := a.gen.Generate(ctx, llm.GenerateRequest{
		Model:  a.model,
		System: systemPrompt,
		Prompt: prompt,
		Config: generationConfig(qtype),
	})
	if err != nil {
		return nil, fmt.Errorf("reasoning: generate: %w", err)
	}

	text := postProcess(resp.Content, qtype)
	return &Answer{
		Text:         text,
		Confidence:   scoreAnswer(text, qtype),
		QuestionType: qtype,
		ChunksUsed:   len(chunks),
		TotalTokens:  resp.TotalTokens,
	}, nil
}

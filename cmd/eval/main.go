// Command eval runs the policy QA dataset against a live pipeline and
// prints a scored report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	hackrx "github.com/lavesh00/HackRx-6"
	"github.com/lavesh00/HackRx-6/eval"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML or JSON)")
	docURL := flag.String("doc", "", "URL of the policy document to evaluate against")
	jsonOut := flag.Bool("json", false, "Print the full report as JSON")
	timeout := flag.Duration("timeout", 15*time.Minute, "Overall evaluation timeout")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if *docURL == "" {
		fmt.Fprintln(os.Stderr, "usage: eval -doc <document-url> [-config <path>] [-json]")
		os.Exit(2)
	}

	cfg := hackrx.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = hackrx.LoadConfig(*configPath)
		if err != nil {
			slog.Error("loading config", "error", err)
			os.Exit(1)
		}
	}
	if cfg.Chat.APIKey == "" {
		cfg.Chat.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	pipeline, err := hackrx.New(cfg)
	if err != nil {
		slog.Error("creating pipeline", "error", err)
		os.Exit(1)
	}
	defer pipeline.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := eval.NewEvaluator(pipeline).Run(ctx, eval.PolicyDataset(*docURL))
	if err != nil {
		slog.Error("evaluation failed", "error", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			slog.Error("encoding report", "error", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("dataset:   %s\n", report.Dataset)
	fmt.Printf("tests:     %d (passed %d, failed %d)\n",
		report.TotalTests, report.Passed, report.Failed)
	fmt.Printf("recall:    %.2f mean fact recall\n", report.MeanFactRecall)
	fmt.Printf("runtime:   %s\n", report.RunTime.Round(time.Millisecond))
	for _, r := range report.Results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Printf("  [%s] %.2f %s\n", status, r.FactRecall, r.Question)
		if len(r.MissingFacts) > 0 {
			fmt.Printf("         missing: %v\n", r.MissingFacts)
		}
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}

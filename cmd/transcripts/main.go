package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jmorrow/granola-flow/internal/config"
	"github.com/jmorrow/granola-flow/internal/logger"
	"github.com/jmorrow/granola-flow/internal/query"
)

const usage = `Granola Transcript CLI
List, search, view, and export your Granola meeting transcripts.

Usage:
    transcripts                     List all transcripts
    transcripts --export            Export all to markdown
    transcripts --export-docx       Export all to Word documents
    transcripts --id <doc_id>       Show specific transcript
    transcripts --search <term>     Search transcripts
`

func main() {
	ctx := context.Background()

	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	q := query.New(cfg, log, os.Stdout)

	args := os.Args[1:]
	switch {
	case len(args) == 0:
		err = q.List(ctx)
	case args[0] == "--export":
		err = q.ExportAll(ctx)
	case args[0] == "--export-docx":
		err = q.ExportAllDocx(ctx)
	case args[0] == "--id" && len(args) > 1:
		err = q.Show(ctx, args[1])
	case args[0] == "--search" && len(args) > 1:
		err = q.Search(ctx, strings.Join(args[1:], " "))
	default:
		fmt.Print(usage)
		return
	}

	if err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
}

func configPath() string {
	if path := os.Getenv("GRANOLA_FLOW_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

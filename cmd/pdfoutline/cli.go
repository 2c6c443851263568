package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/batch"
	"github.com/fwojciec/pdfoutline/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *config.Config
	Processor *batch.Processor
	Ranker    pdfoutline.Ranker
	Outlines  pdfoutline.OutlineService
	Now       func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `short:"C" type:"path" help:"Config file (default ~/.pdfoutline/config.yaml)"`
	Verbose  bool   `short:"v" help:"Log debug output"`
	NoCache  bool   `help:"Do not read or write the outline and embedding cache"`
	Embedder string `help:"Embedder to rank with (tfidf, gemini, openai)"`
	Limit    int    `short:"n" help:"Number of sections to rank (default 10)"`

	Outline    OutlineCmd    `cmd:"" help:"Extract the outline of every PDF in a directory"`
	Rank       RankCmd       `cmd:"" help:"Rank outline sections for the persona in a directory"`
	ClearCache ClearCacheCmd `cmd:"" name:"clear-cache" help:"Remove cached outlines"`
}

// apply overrides cfg with flags that were set.
func (c *CLI) apply(cfg *config.Config) error {
	if c.Embedder != "" {
		cfg.Embedder.Type = c.Embedder
	}
	if c.Limit != 0 {
		cfg.Rank.Limit = c.Limit
	}
	return cfg.Validate()
}

// OutlineCmd is the "outline" subcommand.
type OutlineCmd struct {
	Input  string `arg:"" optional:"" type:"path" help:"Directory of PDF files (default /app/input)"`
	Output string `arg:"" optional:"" type:"path" help:"Directory for outline files (default /app/output)"`
	Print  bool   `short:"p" help:"Print each outline"`
}

// RankCmd is the "rank" subcommand.
type RankCmd struct {
	Input   string `arg:"" optional:"" type:"path" help:"Directory of PDF files and persona.json (default /app/input)"`
	Output  string `arg:"" optional:"" type:"path" help:"Directory for the ranking report (default /app/output)"`
	Persona string `type:"path" help:"Persona file (default <input>/persona.json)"`
	Report  string `help:"Report file name (default challenge1b_output.json)"`
}

// ClearCacheCmd is the "clear-cache" subcommand.
type ClearCacheCmd struct{}

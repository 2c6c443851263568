package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/batch"
	"github.com/fwojciec/pdfoutline/config"
	"github.com/fwojciec/pdfoutline/gemini"
	"github.com/fwojciec/pdfoutline/openai"
	"github.com/fwojciec/pdfoutline/outline"
	"github.com/fwojciec/pdfoutline/pdf"
	"github.com/fwojciec/pdfoutline/rank"
	pdfslog "github.com/fwojciec/pdfoutline/slog"
	"github.com/fwojciec/pdfoutline/sqlite"
	"github.com/fwojciec/pdfoutline/tfidf"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path, used when --config is not given. Set before calling Run().
	ConfigPath string

	// Clock used for report timestamps.
	Now func() time.Time

	// SQLite database backing the caches. Nil when caching is disabled.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	path, err := config.DefaultPath()
	if err != nil {
		path = "pdfoutline.yaml"
	}
	return &Main{
		ConfigPath: path,
		Now:        time.Now,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pdfoutline"),
		kong.Description("Extract PDF outlines and rank their sections for a persona."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pdfoutline --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	configPath := cli.Config
	if configPath == "" {
		configPath = m.ConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %s", configPath, pdfoutline.ErrorMessage(err))
	}
	if err := cli.apply(cfg); err != nil {
		return err
	}
	deps.Config = cfg

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if dbPath := cfg.Cache.DBPath(); dbPath != "" && !cli.NoCache {
		if err := m.openDB(dbPath); err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s to use a different cache path, or pass --no-cache\n", config.DBEnv)
			return err
		}
		defer m.Close()
		deps.Outlines = pdfslog.NewLoggingOutlineService(sqlite.NewOutlineService(m.DB), logger)
	}

	opts := cfg.Outline.Options()
	deps.Processor = &batch.Processor{
		Reader:      pdfslog.NewLoggingDocumentReader(pdf.NewReader(), logger),
		Outliner:    outline.NewBuilder(opts),
		Cache:       deps.Outlines,
		Salt:        opts.Key(),
		Concurrency: cfg.Concurrency,
	}

	if cmd == "rank" {
		embedder, err := m.newEmbedder(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Use --embedder tfidf to rank offline\n")
			return err
		}
		deps.Ranker = pdfslog.NewLoggingRanker(rank.NewRanker(embedder, cfg.Rank.Limit), logger)
	}

	return kongCtx.Run(deps)
}

// openDB opens the cache database at path, creating its directory.
func (m *Main) openDB(path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open cache at %q: %w", path, err)
	}
	return nil
}

// newEmbedder builds the configured embedder. Remote embedders are wrapped
// with the vector cache when a database is open.
func (m *Main) newEmbedder(ctx context.Context, cfg *config.Config, logger *slog.Logger) (pdfoutline.Embedder, error) {
	var next pdfoutline.Embedder
	var model string

	switch cfg.Embedder.Type {
	case config.EmbedderTFIDF:
		return pdfslog.NewLoggingEmbedder(tfidf.NewEmbedder(), config.EmbedderTFIDF, logger), nil

	case config.EmbedderGemini:
		gc := cfg.Embedder.Gemini
		apiKey := gc.APIKey()
		if apiKey == "" {
			return nil, fmt.Errorf("%s not set. Get a key at https://aistudio.google.com/apikey", gc.APIKeyEnv)
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		e := gemini.NewEmbedder(client.Models, gc.EmbedderConfig())
		next = e
		model = fmt.Sprintf("gemini/%s/%d", e.Model(), gc.Dimensions)

	case config.EmbedderOpenAI:
		oc := cfg.Embedder.OpenAI.EmbedderConfig()
		if oc.APIKey == "" && oc.BaseURL == "" {
			return nil, fmt.Errorf("%s not set", cfg.Embedder.OpenAI.APIKeyEnv)
		}
		e := openai.NewEmbedder(oc)
		next = e
		model = fmt.Sprintf("openai/%s/%d", e.Model(), oc.Dimensions)

	default:
		return nil, pdfoutline.Errorf(pdfoutline.EINVALID, "unknown embedder %q", cfg.Embedder.Type)
	}

	embedder := pdfslog.NewLoggingEmbedder(next, cfg.Embedder.Type, logger)
	if m.DB == nil {
		return embedder, nil
	}
	return sqlite.NewEmbeddingCache(m.DB, embedder, model), nil
}

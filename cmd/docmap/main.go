package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/analyze"
	"github.com/fwojciec/docmap/crawl"
	"github.com/fwojciec/docmap/fs"
	"github.com/fwojciec/docmap/gemini"
	"github.com/fwojciec/docmap/goquery"
	docmaphttp "github.com/fwojciec/docmap/http"
	"github.com/fwojciec/docmap/openai"
	dmslog "github.com/fwojciec/docmap/slog"
	"github.com/fwojciec/docmap/sqlite"
	"github.com/fwojciec/docmap/tiktoken"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin supplies URLs when none are given as arguments.
	Stdin io.Reader

	// Getenv looks up API keys. Defaults to os.Getenv.
	Getenv func(string) string

	// Services for end-to-end testing. When set they replace the
	// model client and tokenizer built from flags.
	Completer docmap.Completer
	Tokenizer docmap.Tokenizer

	// closers are released when Run returns.
	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:  os.Stdin,
		Getenv: os.Getenv,
	}
}

// Close releases resources opened by Run.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docmap"),
		kong.Description("Map documentation sites into module and submodule structures"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(yamlLoader),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	urls := cli.URLs
	if len(urls) == 0 {
		if urls, err = readURLs(m.Stdin); err != nil {
			return fmt.Errorf("failed to read URLs from stdin: %w", err)
		}
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given. Pass them as arguments or one per line on stdin")
	}

	defer m.Close()
	deps, err := m.wire(ctx, cli, stdout, stderr)
	if err != nil {
		return err
	}

	cmd := &AnalyzeCmd{URLs: urls}
	return cmd.Run(deps)
}

// wire builds the services selected by flags.
func (m *Main) wire(ctx context.Context, cli *CLI, stdout, stderr io.Writer) (*Dependencies, error) {
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	completer, err := m.completer(ctx, cli, stderr)
	if err != nil {
		return nil, err
	}

	tokenizer := m.Tokenizer
	if tokenizer == nil {
		model := cli.Model
		if cli.Provider != "openai" {
			model = tiktoken.DefaultModel
		}
		t, err := tiktoken.NewTokenizer(model)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer: %w", err)
		}
		tokenizer = t
	}

	store, err := m.cache(cli)
	if err != nil {
		return nil, err
	}
	var cache docmap.Cache = store

	opts := []docmaphttp.Option{docmaphttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, docmaphttp.WithUserAgent(cli.UserAgent))
	}
	var fetcher docmap.Fetcher = docmaphttp.NewFetcher(opts...)
	m.closers = append(m.closers, fetcher)

	var logf crawl.LogFunc
	if cli.Verbose {
		if n, err := store.Len(ctx); err == nil {
			logger.Info("cache open", "backend", cli.Cache, "entries", n)
		}
		fetcher = dmslog.NewLoggingFetcher(fetcher, logger)
		completer = dmslog.NewLoggingCompleter(completer, logger)
		cache = dmslog.NewLoggingCache(cache, logger)
		logf = func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		}
	}

	retryDelays := crawl.BackoffDelays(cli.Retries)
	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       goquery.NewLinkSelector(),
		RetryDelays: retryDelays,
		Logf:        logf,
		RateLimiter: crawl.NewDomainLimiter(cli.RPS),
		Depth:       cli.Depth,
		MaxPages:    cli.MaxPages,
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Writer: fs.NewWriter(cli.Out),
	}
	deps.Pipeline = &analyze.Pipeline{
		Source:      crawler,
		Fetcher:     fetcher,
		Extractor:   goquery.NewSectionExtractor(),
		Tokenizer:   tokenizer,
		Cache:       cache,
		Inferrer:    analyze.NewAdapter(completer),
		MaxTokens:   cli.MaxTokens,
		Delay:       cli.Delay,
		RetryDelays: retryDelays,
		Progress:    deps.progress,
	}
	return deps, nil
}

// completer builds the model client for the selected provider.
func (m *Main) completer(ctx context.Context, cli *CLI, stderr io.Writer) (docmap.Completer, error) {
	if m.Completer != nil {
		return m.Completer, nil
	}
	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	switch cli.Provider {
	case "gemini":
		apiKey := getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "Hint: Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewCompleter(client, cli.Model), nil
	default:
		apiKey := getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "Hint: Get an API key at https://platform.openai.com/api-keys")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return openai.NewCompleter(apiKey, cli.Model), nil
	}
}

// countingCache is a cache store that reports its entry count.
type countingCache interface {
	docmap.Cache
	Len(ctx context.Context) (int, error)
}

// cache opens the selected cache store.
func (m *Main) cache(cli *CLI) (countingCache, error) {
	switch cli.Cache {
	case "sqlite":
		db := sqlite.NewDB(cli.CacheDB)
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache database at %q: %w", cli.CacheDB, err)
		}
		m.closers = append(m.closers, db)
		return sqlite.NewCache(db), nil
	default:
		c := fs.NewCache(cli.CacheDir)
		if err := c.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache directory %q: %w", cli.CacheDir, err)
		}
		return c, nil
	}
}

// readURLs reads one URL per line, skipping blank lines and # comments.
func readURLs(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

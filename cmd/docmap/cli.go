package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/analyze"
)

// Dependencies holds injected services for commands.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Pipeline *analyze.Pipeline
	Writer   docmap.ModuleWriter
}

// CLI defines the command-line interface structure for kong.
type CLI struct {
	URLs   []string        `arg:"" optional:"" name:"url" help:"Documentation site URLs (read from stdin when omitted)"`
	Config kong.ConfigFlag `help:"YAML file with flag defaults"`

	Depth     int           `default:"2" env:"DOCMAP_DEPTH" help:"Maximum link depth to crawl"`
	MaxPages  int           `default:"50" env:"DOCMAP_MAX_PAGES" help:"Maximum pages to crawl per site"`
	MaxTokens int           `default:"2000" env:"DOCMAP_MAX_TOKENS" help:"Maximum tokens per chunk"`
	Delay     time.Duration `default:"2s" env:"DOCMAP_DELAY" help:"Wait after each model call"`
	Timeout   time.Duration `default:"10s" env:"DOCMAP_TIMEOUT" help:"HTTP fetch timeout"`
	Retries   int           `default:"0" env:"DOCMAP_RETRIES" help:"Retries for failed page fetches"`
	RPS       float64       `name:"rps" default:"0" env:"DOCMAP_RPS" help:"Requests per second per domain (0 disables limiting)"`
	UserAgent string        `env:"DOCMAP_USER_AGENT" help:"User-Agent header for page fetches"`

	Provider string `default:"openai" enum:"openai,gemini" env:"DOCMAP_PROVIDER" help:"Model provider (openai, gemini)"`
	Model    string `env:"DOCMAP_MODEL" help:"Model name (defaults per provider)"`

	Cache    string `default:"fs" enum:"fs,sqlite" env:"DOCMAP_CACHE" help:"Inference cache backend (fs, sqlite)"`
	CacheDir string `default:"cache" env:"DOCMAP_CACHE_DIR" help:"Directory for the fs cache"`
	CacheDB  string `name:"cache-db" default:"cache.db" env:"DOCMAP_CACHE_DB" help:"Database file for the sqlite cache"`

	Out     string `default:"." env:"DOCMAP_OUT" help:"Directory for module structure files"`
	Verbose bool   `short:"v" env:"DOCMAP_VERBOSE" help:"Log fetches, model calls and cache lookups"`
}

// AnalyzeCmd maps each site and writes its module structure.
type AnalyzeCmd struct {
	URLs []string
}

// Run analyzes every URL in turn. A failing site is reported and skipped.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	for _, siteURL := range c.URLs {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(deps.Stderr, "Analyzing %s\n", siteURL)
		result, err := deps.Pipeline.Analyze(deps.Ctx, siteURL)
		if err != nil {
			if deps.Ctx.Err() != nil {
				return deps.Ctx.Err()
			}
			fmt.Fprintf(deps.Stderr, "Warning: %s: %s\n", siteURL, docmap.ErrorMessage(err))
			continue
		}

		path, err := deps.Writer.WriteModules(deps.Ctx, siteURL, result.Modules)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "Warning: %s: %s\n", siteURL, docmap.ErrorMessage(err))
			continue
		}

		fmt.Fprintf(deps.Stdout, "%s: %d pages, %d chunks (%d cached, %d failed), %d modules -> %s\n",
			siteURL, result.Pages, result.Chunks, result.Cached, result.Failed, len(result.Modules), path)
	}
	return nil
}

// progress prints failures and per-chunk progress to stderr.
func (d *Dependencies) progress(ev analyze.Event) {
	switch ev.Type {
	case analyze.EventCrawled:
		fmt.Fprintf(d.Stderr, "  crawled %d pages\n", ev.Pages)
	case analyze.EventPageFailed:
		fmt.Fprintf(d.Stderr, "  Warning: %s: %s\n", ev.URL, docmap.ErrorMessage(ev.Err))
	case analyze.EventNoContent:
		fmt.Fprintf(d.Stderr, "  Warning: no content extracted from %d pages\n", ev.Pages)
	case analyze.EventChunkCached, analyze.EventChunkInferred:
		fmt.Fprintf(d.Stderr, "  [%d/%d] %s\n", ev.Chunk, ev.Chunks, ev.Type)
	case analyze.EventChunkFailed:
		fmt.Fprintf(d.Stderr, "  [%d/%d] Warning: %s\n", ev.Chunk, ev.Chunks, ev.Message)
	case analyze.EventCacheFailed:
		d.Logger.Warn("cache", "err", ev.Err)
	}
}

package analyze

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/crawl"
)

// Pipeline defaults.
const (
	DefaultMaxTokens = 2000
	DefaultDelay     = 2 * time.Second
)

// EventType identifies a pipeline progress event.
type EventType int

const (
	// EventCrawled reports the number of pages discovered for a site.
	EventCrawled EventType = iota
	// EventPageFailed reports a page that could not be fetched or extracted.
	EventPageFailed
	// EventNoContent reports a site whose pages produced no text.
	EventNoContent
	// EventChunkCached reports a chunk answered from the cache.
	EventChunkCached
	// EventChunkInferred reports a chunk answered by the model.
	EventChunkInferred
	// EventChunkFailed reports a chunk the model could not answer.
	EventChunkFailed
	// EventCacheFailed reports a cache read or write error.
	EventCacheFailed
)

func (t EventType) String() string {
	switch t {
	case EventCrawled:
		return "crawled"
	case EventPageFailed:
		return "page failed"
	case EventNoContent:
		return "no content"
	case EventChunkCached:
		return "chunk cached"
	case EventChunkInferred:
		return "chunk inferred"
	case EventChunkFailed:
		return "chunk failed"
	case EventCacheFailed:
		return "cache failed"
	default:
		return "unknown"
	}
}

// Event reports pipeline progress.
type Event struct {
	Type EventType
	// URL is the site for site-level events and the page for EventPageFailed.
	URL   string
	Pages int
	// Chunk is 1-based; Chunks is the total for the site.
	Chunk  int
	Chunks int
	// Message describes a failed chunk.
	Message string
	Err     error
}

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event Event)

// Result holds the outcome of analyzing one site.
type Result struct {
	URL       string
	Pages     int
	Extracted int
	Chunks    int
	Cached    int
	Inferred  int
	Failed    int
	Modules   []docmap.MergedModule
}

// Pipeline analyzes documentation sites one at a time.
type Pipeline struct {
	Source    docmap.URLSource
	Fetcher   docmap.Fetcher
	Extractor docmap.SectionExtractor
	Tokenizer docmap.Tokenizer
	Cache     docmap.Cache
	Inferrer  docmap.Inferrer

	// MaxTokens bounds each chunk. Zero means DefaultMaxTokens.
	MaxTokens int

	// Delay is waited after every model call, successful or not.
	Delay time.Duration

	// RetryDelays are the waits between page fetch attempts.
	RetryDelays []time.Duration

	Progress ProgressFunc

	// Sleep waits for d or until ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Analyze crawls siteURL, extracts and chunks its text, infers modules for
// every chunk and merges them. Pages and chunks that fail are reported
// through Progress and skipped. Returns ENOTFOUND if no text was extracted.
func (p *Pipeline) Analyze(ctx context.Context, siteURL string) (*Result, error) {
	pages, err := p.Source.Discover(ctx, siteURL)
	if err != nil {
		return nil, err
	}
	result := &Result{URL: siteURL, Pages: len(pages)}
	p.emit(Event{Type: EventCrawled, URL: siteURL, Pages: len(pages)})

	text, err := p.collect(ctx, pages, result)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		p.emit(Event{Type: EventNoContent, URL: siteURL, Pages: len(pages)})
		return nil, docmap.Errorf(docmap.ENOTFOUND, "no content extracted from %s", siteURL)
	}

	maxTokens := p.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	chunks, err := docmap.ChunkText(p.Tokenizer, text, maxTokens)
	if err != nil {
		return nil, err
	}
	result.Chunks = len(chunks)

	var records []docmap.ModuleRecord
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev := Event{URL: siteURL, Chunk: i + 1, Chunks: len(chunks)}

		cached, err := p.Cache.Get(ctx, chunk)
		if err == nil {
			result.Cached++
			records = append(records, cached...)
			ev.Type = EventChunkCached
			p.emit(ev)
			continue
		}
		if docmap.ErrorCode(err) != docmap.ENOTFOUND {
			p.emit(Event{Type: EventCacheFailed, URL: siteURL, Chunk: i + 1, Chunks: len(chunks), Err: err})
		}

		inf := p.Inferrer.Infer(ctx, chunk)
		if inf.OK() {
			if err := p.Cache.Put(ctx, chunk, inf.Records); err != nil {
				p.emit(Event{Type: EventCacheFailed, URL: siteURL, Chunk: i + 1, Chunks: len(chunks), Err: err})
			}
			result.Inferred++
			records = append(records, inf.Records...)
			ev.Type = EventChunkInferred
			p.emit(ev)
		} else {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result.Failed++
			ev.Type = EventChunkFailed
			ev.Message = inf.Modules()[0].Description
			ev.Err = inf.Err
			p.emit(ev)
		}

		if err := p.sleep(ctx, p.Delay); err != nil {
			return nil, err
		}
	}

	result.Modules = docmap.MergeModules(records)
	return result, nil
}

// collect fetches and extracts every page, returning the concatenated text.
func (p *Pipeline) collect(ctx context.Context, pages []string, result *Result) (string, error) {
	var sb strings.Builder
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		html, err := crawl.FetchWithRetryDelays(ctx, page, p.Fetcher.Fetch, nil, p.RetryDelays)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			p.emit(Event{Type: EventPageFailed, URL: page, Err: err})
			continue
		}

		sections, err := p.Extractor.Extract(html)
		if err != nil {
			p.emit(Event{Type: EventPageFailed, URL: page, Err: err})
			continue
		}
		result.Extracted++
		sb.WriteString(docmap.FormatSections(sections))
	}
	return sb.String(), nil
}

func (p *Pipeline) emit(ev Event) {
	if p.Progress != nil {
		p.Progress(ev)
	}
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
